// Package useragent reduces a raw User-Agent string to the coarse
// browser and OS categories stored on each event.
package useragent

import (
	"regexp"
	"strings"
)

var (
	firefoxVersion = regexp.MustCompile(`Firefox/(\d+)`)
	edgeVersion    = regexp.MustCompile(`Edg/(\d+)`)
	chromeVersion  = regexp.MustCompile(`Chrome/(\d+)`)
	safariVersion  = regexp.MustCompile(`Version/(\d+)`)
)

// Parse categorizes a User-Agent string. Unrecognized input yields
// "Unknown" for either field; it never fails. Order matters: Edge and
// Chrome both advertise Safari tokens, and Safari is only reported when
// a Version/ token is present.
func Parse(ua string) (browser, os string) {
	browser = "Unknown"
	os = "Unknown"

	switch {
	case strings.Contains(ua, "Firefox/"):
		browser = withMajor("Firefox", firefoxVersion, ua)
	case strings.Contains(ua, "Edg/"):
		browser = withMajor("Edge", edgeVersion, ua)
	case strings.Contains(ua, "Chrome/"):
		browser = withMajor("Chrome", chromeVersion, ua)
	case strings.Contains(ua, "Safari/") && strings.Contains(ua, "Version/"):
		browser = withMajor("Safari", safariVersion, ua)
	}

	switch {
	case strings.Contains(ua, "Windows"):
		os = "Windows"
	case strings.Contains(ua, "Mac OS X"):
		os = "macOS"
	case strings.Contains(ua, "Android"):
		os = "Android"
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"):
		os = "iOS"
	case strings.Contains(ua, "Linux"):
		os = "Linux"
	}

	return browser, os
}

func withMajor(name string, version *regexp.Regexp, ua string) string {
	if m := version.FindStringSubmatch(ua); m != nil {
		return name + " " + m[1]
	}
	return name
}
