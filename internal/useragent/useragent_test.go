package useragent

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		name        string
		ua          string
		wantBrowser string
		wantOS      string
	}{
		{
			"chrome on windows",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Chrome 120",
			"Windows",
		},
		{
			"firefox on linux",
			"Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/119.0",
			"Firefox 119",
			"Linux",
		},
		{
			"edge on windows",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.2210.91",
			"Edge 120",
			"Windows",
		},
		{
			"safari on macos",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
			"Safari 17",
			"macOS",
		},
		{
			"chrome on android",
			"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			"Chrome 120",
			"Android",
		},
		{
			"ipad",
			"Mozilla/5.0 (iPad; CPU OS 17_1) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1",
			"Safari 17",
			"iOS",
		},
		{
			"safari without version token is not safari",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Safari/537.36",
			"Unknown",
			"Linux",
		},
		{"empty", "", "Unknown", "Unknown"},
		{"garbage", "curl/8.4.0", "Unknown", "Unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			browser, os := Parse(tc.ua)
			if browser != tc.wantBrowser {
				t.Errorf("browser = %q, want %q", browser, tc.wantBrowser)
			}
			if os != tc.wantOS {
				t.Errorf("os = %q, want %q", os, tc.wantOS)
			}
		})
	}
}

func TestParseEdgeBeforeChrome(t *testing.T) {
	// Edge UAs also carry a Chrome token; Edge must win.
	browser, _ := Parse("Mozilla/5.0 Chrome/120.0.0.0 Safari/537.36 Edg/120.0.2210.91")
	if browser != "Edge 120" {
		t.Errorf("browser = %q, want Edge 120", browser)
	}
}
