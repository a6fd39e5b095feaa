package pageshot

import (
	"errors"
	"fmt"
	"strings"
)

// Default viewport used when the caller specifies neither explicit
// dimensions nor a full-page capture.
const (
	DefaultViewportWidth  = 2560
	DefaultViewportHeight = 1600
)

// Request describes a single capture. Exactly one of (Width, Height) or
// FullPage is in effect: a full-page request leaves the viewport at the
// browser default and captures the whole scrollable document instead.
type Request struct {
	URL      string // page to capture, including scheme
	Width    int    // viewport width in pixels
	Height   int    // viewport height in pixels
	FullPage bool   // capture the entire scrollable page
}

// NewRequest returns a Request for rawURL at the default viewport.
func NewRequest(rawURL string) Request {
	return Request{
		URL:    NormalizeURL(rawURL),
		Width:  DefaultViewportWidth,
		Height: DefaultViewportHeight,
	}
}

func (r Request) validate() error {
	if r.URL == "" {
		return errors.New("capture request has no URL")
	}
	if r.FullPage {
		return nil
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("invalid viewport %dx%d: dimensions must be positive", r.Width, r.Height)
	}
	return nil
}

// NormalizeURL prepends https:// when the target lacks an http:// or
// https:// prefix. No further validation happens here; a malformed URL
// surfaces as a navigation error from the driver.
func NormalizeURL(target string) string {
	if target == "" || hasScheme(target) {
		return target
	}
	return "https://" + target
}

// hasScheme checks if the target has a scheme
func hasScheme(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}
