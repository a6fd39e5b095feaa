package pageshot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Names of the built-in drivers.
const (
	DriverRod      = "rod"
	DriverChromedp = "chromedp"
)

// Driver captures a screenshot of a single page. Implementations own the
// browser lifecycle for the duration of one Capture call.
type Driver interface {
	Capture(ctx context.Context, req Request) (*Result, error)
}

// DriverConstructor constructs a Driver from capture options.
type DriverConstructor func(o Options) (Driver, error)

var (
	driverMu sync.RWMutex
	drivers  = map[string]DriverConstructor{}
)

// RegisterDriver registers a named driver constructor. Names are lower-cased
// internally. Registering an existing name overwrites the previous
// constructor.
func RegisterDriver(name string, ctor DriverConstructor) {
	if name == "" || ctor == nil {
		return
	}
	driverMu.Lock()
	defer driverMu.Unlock()
	drivers[strings.ToLower(name)] = ctor
}

// NewDriver constructs the driver named in o.Driver, defaulting to rod. It
// returns an error naming the registered alternatives when the driver is
// unknown.
func NewDriver(o Options) (Driver, error) {
	name := strings.ToLower(strings.TrimSpace(o.Driver))
	if name == "" {
		name = DriverRod
	}

	driverMu.RLock()
	ctor, ok := drivers[name]
	driverMu.RUnlock()
	if !ok || ctor == nil {
		return nil, fmt.Errorf("unknown driver %q: available drivers are %s", name, strings.Join(Drivers(), ", "))
	}

	d, err := ctor(o)
	if err != nil {
		return nil, fmt.Errorf("constructing driver %q: %w", name, err)
	}
	return d, nil
}

// Drivers returns the registered driver names, sorted.
func Drivers() []string {
	driverMu.RLock()
	defer driverMu.RUnlock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
