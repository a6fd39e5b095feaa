package pageshot

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Image is a rendered screenshot as PNG bytes.
type Image []byte

// Result contains the result of a screenshot capture.
type Result struct {
	TargetURL  string // URL the capture was requested for
	LandingURL string // URL the browser ended up on after redirects
	Image      Image
	Width      int // effective capture width in pixels
	Height     int // effective capture height in pixels
}

// SaveToFolder writes the image to folder under a name derived from the
// target URL and now, creating the folder if needed. An empty image is
// refused before any path is touched, so a failed capture never leaves a
// zero-byte file behind.
func (r *Result) SaveToFolder(folder string, now time.Time) (filename string, err error) {
	if len(r.Image) == 0 {
		return "", fmt.Errorf("refusing to save empty image for %s", r.TargetURL)
	}

	if err := os.MkdirAll(folder, os.ModePerm); err != nil {
		return "", fmt.Errorf("creating folder %s: %w", folder, err)
	}

	filename = filepath.Join(folder, URLToFilename(r.TargetURL, now))
	if err := os.WriteFile(filename, r.Image, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}

	return filename, nil
}
