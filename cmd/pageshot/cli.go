package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	pageshot "github.com/pageshot/pageshot"
)

const usage = `USAGE:
  pageshot [options] <url> [<width>x<height> | fullpage]

ARGUMENTS:
  <url>                      page to capture (assumes https when no scheme is given)
  <width>x<height>           viewport size in pixels, e.g. 1280x960        (Default: 2560x1600)
  fullpage                   capture the entire scrollable page

CONFIGURATIONS:
  -d,   --driver             browser driver (rod, chromedp)                (Default: rod)
  -to,  --timeout            screenshot timeout                            (Default: 30 seconds)
  -ua,  --user-agent         specify user agent                            (Default: browser UA)
  -dc,  --delay-capture      delay before capture (seconds)                (Default: 0)
  -rce, --respect-cert-err   respect certificate errors                    (Default: false)
  -uh,  --use-http2          use HTTP2                                     (Default: false)

OUTPUT:
  -o,   --outfolder          save image to specified folder                (Default: current directory)
  -cap, --caption            imprint page origin below the image           (Default: false)
  -s,   --silence            silence output
  -v,   --verbose            verbose output
        --version            display version
`

// cliConfig holds one fully parsed invocation: the capture request plus
// everything that only concerns the command itself.
type cliConfig struct {
	Request     pageshot.Request
	Options     pageshot.Options
	OutFolder   string
	Caption     bool
	ShowHelp    bool
	ShowVersion bool
}

// usageError marks argument problems the user can fix by reading the usage.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

var sizePattern = regexp.MustCompile(`^(\d+)x(\d+)$`)

// parseArgs interprets args (without the program name). It never prints and
// never exits, so tests can feed it arbitrary slices.
func parseArgs(args []string) (*cliConfig, error) {
	cfg := &cliConfig{Options: pageshot.NewOptions()}

	var respectCertErrors, useHTTP2 bool

	fs := flag.NewFlagSet("pageshot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// CONFIGURATIONS
	fs.StringVar(&cfg.Options.Driver, "driver", cfg.Options.Driver, "")
	fs.StringVar(&cfg.Options.Driver, "d", cfg.Options.Driver, "")
	fs.IntVar(&cfg.Options.Timeout, "timeout", cfg.Options.Timeout, "")
	fs.IntVar(&cfg.Options.Timeout, "to", cfg.Options.Timeout, "")
	fs.StringVar(&cfg.Options.UserAgent, "user-agent", cfg.Options.UserAgent, "")
	fs.StringVar(&cfg.Options.UserAgent, "ua", cfg.Options.UserAgent, "")
	fs.IntVar(&cfg.Options.DelayBeforeCapture, "delay-capture", cfg.Options.DelayBeforeCapture, "")
	fs.IntVar(&cfg.Options.DelayBeforeCapture, "dc", cfg.Options.DelayBeforeCapture, "")
	fs.BoolVar(&respectCertErrors, "respect-cert-err", false, "")
	fs.BoolVar(&respectCertErrors, "rce", false, "")
	fs.BoolVar(&useHTTP2, "use-http2", false, "")
	fs.BoolVar(&useHTTP2, "uh", false, "")

	// OUTPUT
	fs.StringVar(&cfg.OutFolder, "outfolder", ".", "")
	fs.StringVar(&cfg.OutFolder, "o", ".", "")
	fs.BoolVar(&cfg.Caption, "caption", false, "")
	fs.BoolVar(&cfg.Caption, "cap", false, "")
	fs.BoolVar(&cfg.Options.Silence, "silence", false, "")
	fs.BoolVar(&cfg.Options.Silence, "s", false, "")
	fs.BoolVar(&cfg.Options.Verbose, "verbose", false, "")
	fs.BoolVar(&cfg.Options.Verbose, "v", false, "")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cfg.ShowHelp = true
			return cfg, nil
		}
		return nil, &usageError{err.Error()}
	}

	cfg.Options.IgnoreCertificateErrors = !respectCertErrors
	cfg.Options.DisableHTTP2 = !useHTTP2

	if cfg.ShowVersion {
		return cfg, nil
	}

	rest := fs.Args()
	switch len(rest) {
	case 0:
		cfg.ShowHelp = true
	case 1:
		cfg.Request = pageshot.NewRequest(rest[0])
	case 2:
		req, err := requestForSize(rest[0], rest[1])
		if err != nil {
			return nil, err
		}
		cfg.Request = req
	default:
		return nil, &usageError{"too many arguments"}
	}

	return cfg, nil
}

// requestForSize builds the request for a two-argument invocation, where the
// second argument is either the literal "fullpage" or a <width>x<height> size.
func requestForSize(rawURL, size string) (pageshot.Request, error) {
	req := pageshot.NewRequest(rawURL)

	if strings.EqualFold(size, "fullpage") {
		req.FullPage = true
		req.Width, req.Height = 0, 0
		return req, nil
	}

	m := sizePattern.FindStringSubmatch(size)
	if m == nil {
		return pageshot.Request{}, &usageError{fmt.Sprintf("invalid size %s: expected <width>x<height> (e.g. 1280x960) or fullpage", size)}
	}

	width, err := strconv.Atoi(m[1])
	if err != nil {
		return pageshot.Request{}, &usageError{fmt.Sprintf("invalid width %s: %v", m[1], err)}
	}

	height, err := strconv.Atoi(m[2])
	if err != nil {
		return pageshot.Request{}, &usageError{fmt.Sprintf("invalid height %s: %v", m[2], err)}
	}

	if width <= 0 || height <= 0 {
		return pageshot.Request{}, &usageError{fmt.Sprintf("invalid size %s: width and height must be positive", size)}
	}

	req.Width, req.Height = width, height
	return req, nil
}
