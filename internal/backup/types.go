package backup

import (
	"context"
	"time"
)

// Config controls periodic snapshots of the error-event database.
// Events are never deleted from the live store, so every snapshot is a
// self-contained copy of all history up to the snapshot time.
type Config struct {
	Enabled   bool
	Interval  time.Duration
	LocalDir  string
	KeepLast  int
	BucketURL string

	S3Endpoint     string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3SessionToken string
	S3UseSSL       bool
}

// Snapshotter is the minimal event-store contract the manager needs.
type Snapshotter interface {
	DBPath() string
	SnapshotTo(dstPath string) error
}

// Uploader uploads one snapshot artifact.
type Uploader interface {
	UploadFile(ctx context.Context, localPath string) error
}
