package pageshot

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/root4loot/goutils/log"
)

func init() {
	RegisterDriver(DriverRod, func(o Options) (Driver, error) {
		return &rodDriver{options: o}, nil
	})
}

// rodDriver drives a Chrome or Chromium through go-rod. A fresh browser is
// launched per capture and torn down when the capture returns.
type rodDriver struct {
	options Options
}

func (d *rodDriver) Capture(ctx context.Context, req Request) (*Result, error) {
	if d.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(d.options.Timeout)*time.Second)
		defer cancel()
	}

	bin, _ := launcher.LookPath()

	l := launcher.New().
		Context(ctx).
		Headless(d.options.Headless).
		Bin(bin).
		NoSandbox(true)

	if d.options.UserAgent != "" {
		l.Set("user-agent", d.options.UserAgent)
	}

	if d.options.IgnoreCertificateErrors {
		l.Set("ignore-certificate-errors", "true")
	}

	if d.options.DisableHTTP2 {
		l.Set("disable-http2", "true")
	}

	browserURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(browserURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	page = page.Context(ctx)

	if !req.FullPage {
		viewport := &proto.EmulationSetDeviceMetricsOverride{
			Width:             req.Width,
			Height:            req.Height,
			DeviceScaleFactor: 1,
			Mobile:            false,
		}
		if err := page.SetViewport(viewport); err != nil {
			return nil, fmt.Errorf("setting %dx%d viewport: %w", req.Width, req.Height, err)
		}
	}

	if err := page.Navigate(req.URL); err != nil {
		return nil, fmt.Errorf("navigating to %s: %w", req.URL, err)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for %s to load: %w", req.URL, err)
	}

	if d.options.DelayBeforeCapture > 0 {
		time.Sleep(time.Duration(d.options.DelayBeforeCapture) * time.Second)
	}

	result := &Result{TargetURL: req.URL, Width: req.Width, Height: req.Height}

	if info, err := page.Info(); err == nil {
		result.LandingURL = info.URL
		if result.LandingURL != req.URL {
			log.Debugf("%s landed on %s", req.URL, result.LandingURL)
		}
	}

	if req.FullPage {
		if err := fitViewportToDocument(page); err != nil {
			return nil, fmt.Errorf("sizing viewport for %s: %w", req.URL, err)
		}
	}

	result.Image, err = page.Screenshot(false, nil)
	if err != nil {
		return nil, fmt.Errorf("capturing screenshot of %s: %w", req.URL, err)
	}

	if req.FullPage {
		result.Width, result.Height = rodDocumentSize(page)
	}

	return result, nil
}

// fitViewportToDocument grows the viewport to the document's scrollable size
// so a plain capture takes in the whole page. The override stays in place
// through the capture, so the document size read afterwards matches the
// captured image.
func fitViewportToDocument(page *rod.Page) error {
	obj, err := page.Eval(`() => ({ width: document.documentElement.scrollWidth, height: document.documentElement.scrollHeight })`)
	if err != nil {
		return err
	}

	return page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             obj.Value.Get("width").Int(),
		Height:            obj.Value.Get("height").Int(),
		DeviceScaleFactor: 1,
		Mobile:            false,
	})
}

// rodDocumentSize reports the rendered document's client dimensions. The
// status line is the only consumer, so evaluation failures degrade to zero
// values instead of failing the capture.
func rodDocumentSize(page *rod.Page) (width, height int) {
	obj, err := page.Eval(`() => ({ width: document.documentElement.clientWidth, height: document.documentElement.clientHeight })`)
	if err != nil {
		log.Warnf("Could not read document size: %v", err)
		return 0, 0
	}
	return obj.Value.Get("width").Int(), obj.Value.Get("height").Int()
}
