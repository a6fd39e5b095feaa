package pageshot

import (
	"testing"
	"time"
)

// 2020-04-27T21:06:16.101Z, 1588021576101 milliseconds after the epoch.
var captureInstant = time.Date(2020, 4, 27, 21, 6, 16, 101*int(time.Millisecond), time.UTC)

func TestURLToFilename(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"empty URL", "", ""},
		{"path with trailing slash", "https://www.google.com/foo/", "foo-2020-04-27-1588021576101.png"},
		{"path without trailing slash", "https://www.google.com/foo", "foo-2020-04-27-1588021576101.png"},
		{"bare domain", "https://www.google.com", "www-google-com-2020-04-27-1588021576101.png"},
		{"deep path", "https://example.com/a/b/index.html", "index-html-2020-04-27-1588021576101.png"},
		{"no scheme", "www.google.com", "www-google-com-2020-04-27-1588021576101.png"},
		{"double trailing slash keeps one", "https://example.com/foo//", "-2020-04-27-1588021576101.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := URLToFilename(tt.url, captureInstant)
			if got != tt.want {
				t.Errorf("Expected filename to be %s, got %s", tt.want, got)
			}
		})
	}
}

// The date component follows the local calendar while the millisecond stamp
// is rebuilt from UTC fields, so the same instant viewed from another zone
// changes the date but never the stamp.
func TestURLToFilenameZoneAsymmetry(t *testing.T) {
	east := time.FixedZone("UTC+7", 7*60*60)
	sameInstant := captureInstant.In(east)

	if !sameInstant.Equal(captureInstant) {
		t.Fatalf("Test instants diverged: %v vs %v", sameInstant, captureInstant)
	}

	got := URLToFilename("https://www.google.com/foo/", sameInstant)
	want := "foo-2020-04-28-1588021576101.png"
	if got != want {
		t.Errorf("Expected filename to be %s, got %s", want, got)
	}
}

func TestURLToFilenameTruncatesToMillis(t *testing.T) {
	justAfter := captureInstant.Add(999 * time.Microsecond)

	got := URLToFilename("https://www.google.com/foo/", justAfter)
	want := "foo-2020-04-27-1588021576101.png"
	if got != want {
		t.Errorf("Expected sub-millisecond precision to be dropped, got %s", got)
	}
}

func TestURLToFilenameDeterministic(t *testing.T) {
	first := URLToFilename("https://example.com/foo", captureInstant)
	second := URLToFilename("https://example.com/foo", captureInstant)

	if first != second {
		t.Errorf("Expected identical filenames for the same URL and instant, got %s and %s", first, second)
	}
}
