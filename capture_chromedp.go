package pageshot

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/root4loot/goutils/log"
)

func init() {
	RegisterDriver(DriverChromedp, func(o Options) (Driver, error) {
		return &chromedpDriver{options: o}, nil
	})
}

const (
	// networkIdleAfter is how long the page must stay free of in-flight
	// requests before a capture proceeds.
	networkIdleAfter = 500 * time.Millisecond

	// maxNetworkIdleWait caps the idle wait so pages that poll or stream
	// forever still get captured.
	maxNetworkIdleWait = 5 * time.Second
)

// chromedpDriver drives a Chrome or Chromium through chromedp.
type chromedpDriver struct {
	options Options
}

func (d *chromedpDriver) Capture(ctx context.Context, req Request) (*Result, error) {
	if d.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(d.options.Timeout)*time.Second)
		defer cancel()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", d.options.Headless),
	)

	if d.options.IgnoreCertificateErrors {
		opts = append(opts, chromedp.Flag("ignore-certificate-errors", true))
	}

	if d.options.DisableHTTP2 {
		opts = append(opts, chromedp.Flag("disable-http2", true))
	}

	if d.options.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(d.options.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	// The listener must be installed before navigation starts or the first
	// requests go uncounted.
	idle := waitNetworkIdle(cctx, networkIdleAfter)

	navigate := chromedp.Tasks{}
	if !req.FullPage {
		navigate = append(navigate, chromedp.EmulateViewport(int64(req.Width), int64(req.Height)))
	}
	navigate = append(navigate, chromedp.Navigate(req.URL))

	if err := chromedp.Run(cctx, navigate); err != nil {
		return nil, fmt.Errorf("navigating to %s: %w", req.URL, err)
	}

	select {
	case <-idle:
	case <-time.After(maxNetworkIdleWait):
		log.Debugf("%s still has network activity, capturing anyway", req.URL)
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for %s to settle: %w", req.URL, ctx.Err())
	}

	if d.options.DelayBeforeCapture > 0 {
		time.Sleep(time.Duration(d.options.DelayBeforeCapture) * time.Second)
	}

	result := &Result{TargetURL: req.URL, Width: req.Width, Height: req.Height}

	var size struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}

	capture := chromedp.Tasks{chromedp.Location(&result.LandingURL)}
	if req.FullPage {
		capture = append(capture,
			chromedp.FullScreenshot((*[]byte)(&result.Image), 100),
			chromedp.Evaluate(`({ width: document.documentElement.clientWidth, height: document.documentElement.clientHeight })`, &size),
		)
	} else {
		capture = append(capture, chromedp.CaptureScreenshot((*[]byte)(&result.Image)))
	}

	if err := chromedp.Run(cctx, capture); err != nil {
		return nil, fmt.Errorf("capturing screenshot of %s: %w", req.URL, err)
	}

	if req.FullPage {
		result.Width, result.Height = size.Width, size.Height
	}

	if result.LandingURL != "" && result.LandingURL != req.URL {
		log.Debugf("%s landed on %s", req.URL, result.LandingURL)
	}

	return result, nil
}

// waitNetworkIdle returns a channel that closes once the page has had no
// in-flight network requests for idleAfter. Request bookkeeping follows the
// CDP network events, so the listener is installed up front and navigation
// must happen afterwards.
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) <-chan struct{} {
	idleChan := make(chan struct{})
	var activeReqs int32
	var timer *time.Timer
	var timerMutex sync.Mutex
	var once sync.Once

	startTimer := func() {
		timerMutex.Lock()
		defer timerMutex.Unlock()

		if timer != nil {
			timer.Stop()
		}

		timer = time.AfterFunc(idleAfter, func() {
			if atomic.LoadInt32(&activeReqs) == 0 {
				once.Do(func() { close(idleChan) })
			}
		})
	}

	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent:
			atomic.AddInt32(&activeReqs, 1)
		case *network.EventLoadingFinished, *network.EventLoadingFailed:
			if atomic.AddInt32(&activeReqs, -1) == 0 {
				startTimer()
			}
		}
	})

	return idleChan
}
