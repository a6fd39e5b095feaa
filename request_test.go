package pageshot

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"no scheme", "www.google.com", "https://www.google.com"},
		{"http scheme kept", "http://example.com", "http://example.com"},
		{"https scheme kept", "https://example.com", "https://example.com"},
		{"path without scheme", "example.com/robots.txt", "https://example.com/robots.txt"},
		{"unrelated scheme is not recognized", "ftp://example.com", "https://ftp://example.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeURL(tt.url)
			if got != tt.want {
				t.Errorf("Expected NormalizeURL(%q) to be %s, got %s", tt.url, tt.want, got)
			}
		})
	}
}

func TestNewRequest(t *testing.T) {
	req := NewRequest("example.com")

	if req.URL != "https://example.com" {
		t.Errorf("Expected URL to be https://example.com, got %s", req.URL)
	}

	if req.Width != DefaultViewportWidth || req.Height != DefaultViewportHeight {
		t.Errorf("Expected default viewport %dx%d, got %dx%d",
			DefaultViewportWidth, DefaultViewportHeight, req.Width, req.Height)
	}

	if req.FullPage {
		t.Error("Expected FullPage to be false by default")
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"default viewport", NewRequest("example.com"), false},
		{"explicit viewport", Request{URL: "https://example.com", Width: 1280, Height: 960}, false},
		{"fullpage without dimensions", Request{URL: "https://example.com", FullPage: true}, false},
		{"missing URL", Request{Width: 100, Height: 100}, true},
		{"zero width", Request{URL: "https://example.com", Width: 0, Height: 100}, true},
		{"negative height", Request{URL: "https://example.com", Width: 100, Height: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.validate()
			if tt.wantErr && err == nil {
				t.Error("Expected an error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}
