package model

import "time"

// Window is one of the preset query time ranges.
type Window string

const (
	Window1h  Window = "1h"
	Window24h Window = "24h"
	Window7d  Window = "7d"
	Window30d Window = "30d"
)

// ParseWindow maps a range string to a preset. Unrecognized values fall
// back to the 24h window rather than erroring.
func ParseWindow(s string) Window {
	switch Window(s) {
	case Window1h, Window24h, Window7d, Window30d:
		return Window(s)
	default:
		return Window24h
	}
}

// Duration returns the span of the window.
func (w Window) Duration() time.Duration {
	switch w {
	case Window1h:
		return time.Hour
	case Window7d:
		return 7 * 24 * time.Hour
	case Window30d:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}
