package model

import "time"

// ErrorEvent is a single error occurrence as written to the event store.
// Events are append-only: once written they are never mutated or deleted,
// and every aggregate view is derived from them.
type ErrorEvent struct {
	Fingerprint string `json:"fingerprint"`
	Message     string `json:"message"`
	TopFrames   string `json:"topFrames"`
	URL         string `json:"url"`
	Browser     string `json:"browser"`
	OS          string `json:"os"`
	Type        string `json:"type"`      // "error", "unhandledrejection", ...
	ProjectID   string `json:"projectId"` // defaults to "default"
}

// ErrorGroup is the aggregate view of all events sharing a fingerprint
// within a time window. Message and TopFrames are representative display
// values taken from the earliest event in the window.
type ErrorGroup struct {
	Fingerprint string    `json:"fingerprint"`
	Message     string    `json:"message"`
	TopFrames   string    `json:"topFrames"`
	Count       int64     `json:"count"`
	FirstSeen   time.Time `json:"firstSeen"`
	LastSeen    time.Time `json:"lastSeen"`
}

// DimensionCount is a grouped count for a single dimension value
// (a URL, a browser, an OS).
type DimensionCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// TimeBucket is an hourly slice of a group's time series.
type TimeBucket struct {
	Bucket time.Time `json:"bucket"`
	Count  int64     `json:"count"`
}

// ErrorDetail is an ErrorGroup expanded with per-dimension breakdowns
// and an hourly time series.
type ErrorDetail struct {
	ErrorGroup
	URLs       []DimensionCount `json:"urls"`
	Browsers   []DimensionCount `json:"browsers"`
	OSes       []DimensionCount `json:"oses"`
	Timeseries []TimeBucket     `json:"timeseries"`
}
