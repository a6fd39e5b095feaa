package pageshot

import (
	"fmt"
	"strings"
	"time"
)

// URLToFilename derives the output filename for a capture of rawURL taken at
// now. The name combines the URL's last path segment (with dots dashed), a
// calendar date and an epoch-millisecond stamp:
//
//	https://www.google.com/foo/  ->  foo-2020-04-27-1588021576101.png
//	https://www.google.com       ->  www-google-com-2020-04-27-1588021576101.png
//
// The date component follows now's wall-clock calendar fields while the
// millisecond stamp is rebuilt from its UTC fields. An empty rawURL yields an
// empty name.
func URLToFilename(rawURL string, now time.Time) string {
	if rawURL == "" {
		return ""
	}

	trimmed := strings.TrimSuffix(rawURL, "/")
	dashed := strings.ReplaceAll(trimmed, ".", "-")

	segment := dashed
	if i := strings.LastIndex(dashed, "/"); i >= 0 {
		segment = dashed[i+1:]
	}

	return fmt.Sprintf("%s-%s-%d.png", segment, dateStamp(now), epochMillisUTC(now))
}

// dateStamp formats now's own calendar fields as YYYY-MM-DD.
func dateStamp(now time.Time) string {
	return fmt.Sprintf("%d-%02d-%02d", now.Year(), int(now.Month()), now.Day())
}

// epochMillisUTC rebuilds the instant from now's UTC calendar fields at
// millisecond precision and returns it as milliseconds since the Unix epoch.
// Sub-millisecond precision is dropped to match the stamp's resolution.
func epochMillisUTC(now time.Time) int64 {
	u := now.UTC()
	millis := u.Nanosecond() / int(time.Millisecond)
	rebuilt := time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), millis*int(time.Millisecond), time.UTC)
	return rebuilt.UnixMilli()
}
