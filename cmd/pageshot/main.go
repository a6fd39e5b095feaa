package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	pageshot "github.com/pageshot/pageshot"
	"github.com/root4loot/goutils/log"
)

func init() {
	log.Init("pageshot")
}

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		fmt.Print(usage)
		os.Exit(1)
	}

	if cfg.ShowHelp {
		fmt.Print(usage)
		os.Exit(0)
	}

	if cfg.ShowVersion {
		fmt.Println("pageshot", pageshot.Version)
		os.Exit(0)
	}

	pageshot.SetLogLevel(cfg.Options)

	capturer, err := pageshot.NewWithOptions(cfg.Options)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	result, err := capturer.Capture(context.Background(), cfg.Request)
	if err != nil {
		handleCaptureError(cfg.Request.URL, err)
		os.Exit(2)
	}

	if cfg.Caption {
		result.Image = withCaption(result)
	}

	fn, err := result.SaveToFolder(cfg.OutFolder, time.Now())
	if err != nil {
		log.Errorf("Error saving screenshot for %s: %v", cfg.Request.URL, err)
		os.Exit(2)
	}

	fmt.Printf("%s %dx%d\n", fn, result.Width, result.Height)
}

// withCaption imprints the page origin below the image. AddCaption derives
// the origin from the URL itself, so the landing URL is passed through as-is.
// Caption failures are not fatal; the plain screenshot is still worth saving.
func withCaption(result *pageshot.Result) pageshot.Image {
	captionURL := result.LandingURL
	if captionURL == "" {
		captionURL = result.TargetURL
	}

	img, err := result.Image.AddCaption(captionURL)
	if err != nil {
		log.Warnf("Could not add caption for %s: %v", captionURL, err)
		return result.Image
	}

	return img
}

func handleCaptureError(target string, err error) {
	switch {
	case isDNSError(err):
		log.Errorf("DNS lookup failed for %s", target)
	case isTimeoutError(err):
		log.Errorf("Timed out capturing screenshot for %s", target)
	default:
		log.Errorf("Error capturing screenshot for %s: %s", target, unwrapError(err))
	}
}

func isDNSError(err error) bool {
	if err == nil {
		return false
	}

	errMessage := getFullErrorMessage(err)
	return strings.Contains(errMessage, "net::ERR_NAME_NOT_RESOLVED") ||
		strings.Contains(errMessage, "no such host")
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errMessage := getFullErrorMessage(err)
	return strings.Contains(errMessage, "context deadline exceeded") ||
		strings.Contains(errMessage, "timeout")
}

func getFullErrorMessage(err error) string {
	var sb strings.Builder
	for err != nil {
		sb.WriteString(err.Error())
		err = errors.Unwrap(err)
		if err != nil {
			sb.WriteString(" | ")
		}
	}
	return sb.String()
}

func unwrapError(err error) string {
	rootErr := err
	for {
		unwrappedErr := errors.Unwrap(rootErr)
		if unwrappedErr == nil {
			break
		}
		rootErr = unwrappedErr
	}
	return rootErr.Error()
}
