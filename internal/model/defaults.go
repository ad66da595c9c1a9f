package model

// Normalization limits and defaults applied at ingestion time.
const (
	// MaxMessageLen caps message length after redaction.
	MaxMessageLen = 256
	// MaxURLLen caps the raw-string fallback for unparseable URLs.
	MaxURLLen = 256
	// TopFrameCount is how many call-site lines of a stack are kept.
	TopFrameCount = 3

	// DefaultType is used when a payload omits its event type.
	DefaultType = "error"
	// DefaultProjectID is used when a payload omits its project.
	DefaultProjectID = "default"
)

// Aggregation caps.
const (
	// GroupListLimit caps the number of groups returned by a listing.
	GroupListLimit = 50
	// BreakdownLimit caps each per-dimension breakdown in a detail view.
	BreakdownLimit = 10
)
