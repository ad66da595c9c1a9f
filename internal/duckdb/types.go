package duckdb

import "github.com/flaregun-dev/flaregun/internal/model"

// Type aliases re-export model types so duckdb.Store method signatures
// read naturally at call sites without a second import.
type ErrorEvent = model.ErrorEvent
type ErrorGroup = model.ErrorGroup
type DimensionCount = model.DimensionCount
type TimeBucket = model.TimeBucket
