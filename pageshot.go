package pageshot

import (
	"context"

	"github.com/root4loot/goutils/log"
)

// Options contains options for captures.
type Options struct {
	Driver                  string // capture driver, rod or chromedp
	Timeout                 int    // timeout for the whole capture (seconds)
	UserAgent               string // user agent, empty for the browser default
	DelayBeforeCapture      int    // extra wait after load before capturing (seconds)
	IgnoreCertificateErrors bool   // ignore certificate errors
	DisableHTTP2            bool   // disable HTTP2
	Headless                bool   // run the browser headless
	Verbose                 bool   // verbose logging
	Silence                 bool   // silence output
}

// NewOptions returns an Options struct initialized with default values.
func NewOptions() Options {
	return Options{
		Driver:                  DriverRod,
		Timeout:                 30,
		DelayBeforeCapture:      0,
		IgnoreCertificateErrors: true,
		DisableHTTP2:            true,
		Headless:                true,
	}
}

// Capturer takes screenshots through a configured driver.
type Capturer struct {
	Options Options
	driver  Driver
}

// New creates a Capturer with default options.
func New() (*Capturer, error) {
	return NewWithOptions(NewOptions())
}

// NewWithOptions creates a Capturer with the provided options.
func NewWithOptions(o Options) (*Capturer, error) {
	d, err := NewDriver(o)
	if err != nil {
		return nil, err
	}
	return &Capturer{Options: o, driver: d}, nil
}

// Capture takes a screenshot of req.URL and returns the result.
func (c *Capturer) Capture(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	log.Debugf("Attempting capture on %s", req.URL)
	return c.driver.Capture(ctx, req)
}

// SetLogLevel sets the log level based on the options.
func SetLogLevel(o Options) {
	if o.Silence {
		log.SetLevel(log.FatalLevel)
	} else if o.Verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}
