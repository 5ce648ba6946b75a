package region

import (
	"net/url"
	"strings"
	"testing"
)

func TestResolveServerURL(t *testing.T) {
	resolver := NewResolver(nil)

	tests := []struct {
		name     string
		baseURL  string
		region   string
		expected string
	}{
		{"cloud host gets region and production", "https://myproject.livekit.cloud", "eu", "https://myproject.eu.production.livekit.cloud/"},
		{"staging environment preserved", "https://myproject.staging.livekit.cloud", "eu", "https://myproject.eu.staging.livekit.cloud/"},
		{"unmanaged host untouched", "https://example.com", "us", "https://example.com/"},
		{"empty region is identity", "https://myproject.livekit.cloud", "", "https://myproject.livekit.cloud/"},
		{"ws scheme preserved", "wss://myproject.livekit.cloud", "ap", "wss://myproject.ap.production.livekit.cloud/"},
		{"path and query preserved", "https://myproject.livekit.cloud/rtc?room=abcd", "us", "https://myproject.us.production.livekit.cloud/rtc?room=abcd"},
		{"port preserved", "https://myproject.livekit.cloud:7880", "eu", "https://myproject.eu.production.livekit.cloud:7880/"},
		{"unmanaged host with path untouched", "https://example.com/api/v1", "eu", "https://example.com/api/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.ResolveServerURL(tt.baseURL, tt.region)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestResolveServerURL_InvalidURL(t *testing.T) {
	resolver := NewResolver(nil)

	for _, baseURL := range []string{"", "not a url", "://missing-scheme", "relative/path"} {
		t.Run(baseURL, func(t *testing.T) {
			if _, err := resolver.ResolveServerURL(baseURL, "eu"); err == nil {
				t.Errorf("expected error for %q", baseURL)
			}
		})
	}
}

func TestResolveServerURL_RegionIsSecondLabel(t *testing.T) {
	resolver := NewResolver(nil)

	for _, r := range []string{"eu", "us", "ap", "in"} {
		resolved, err := resolver.ResolveServerURL("https://myproject.livekit.cloud", r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		u, err := url.Parse(resolved)
		if err != nil {
			t.Fatalf("resolved url does not parse: %v", err)
		}
		labels := strings.Split(u.Hostname(), ".")
		if len(labels) < 2 || labels[1] != r {
			t.Errorf("expected second label %q in %q", r, u.Hostname())
		}
	}
}

func TestResolveServerURL_Override(t *testing.T) {
	resolver := NewResolver(map[string]string{
		"eu": "https://eu-gateway.confera.io",
	})

	got, err := resolver.ResolveServerURL("https://myproject.livekit.cloud", "eu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://eu-gateway.confera.io/" {
		t.Errorf("expected override url, got %s", got)
	}

	// other regions still go through the rewrite
	got, err = resolver.ResolveServerURL("https://myproject.livekit.cloud", "us")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://myproject.us.production.livekit.cloud/" {
		t.Errorf("expected rewrite for non-overridden region, got %s", got)
	}
}
