package model

import "time"

// EventWriter provides the append-only write side of the event store.
type EventWriter interface {
	AppendEvent(event *ErrorEvent) error
}

// EventQuerier provides the read-side building blocks the aggregation
// layer composes. Every query is scoped to events newer than now-window.
type EventQuerier interface {
	ListGroups(window time.Duration, limit int) ([]ErrorGroup, error)
	GroupByFingerprint(fingerprint string, window time.Duration) (*ErrorGroup, error)
	TopURLs(fingerprint string, window time.Duration, limit int) ([]DimensionCount, error)
	TopBrowsers(fingerprint string, window time.Duration, limit int) ([]DimensionCount, error)
	TopOSes(fingerprint string, window time.Duration, limit int) ([]DimensionCount, error)
	Timeseries(fingerprint string, window time.Duration) ([]TimeBucket, error)
	TotalEventCount() (int64, error)
}

// EventStore is the full store contract.
type EventStore interface {
	EventWriter
	EventQuerier
}
