// Package importer bulk-loads error events from newline-delimited JSON
// into the event store. It is the restore path for exported event logs
// and a convenient way to seed a fresh store.
package importer

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/flaregun-dev/flaregun/internal/model"
)

const (
	// DefaultMaxLineSize is the maximum size (in bytes) of a single input line.
	DefaultMaxLineSize = 1024 * 1024 // 1MB
)

// Config holds tunable parameters for an import run.
type Config struct {
	MaxLineSize int
}

// Result summarizes one import run.
type Result struct {
	Imported int
	Skipped  int
}

// Importer reads NDJSON events from a reader and appends them to a store.
type Importer struct {
	store       model.EventWriter
	maxLineSize int
}

// New creates an Importer writing to store.
func New(store model.EventWriter, conf ...Config) *Importer {
	maxLineSize := DefaultMaxLineSize
	if len(conf) > 0 && conf[0].MaxLineSize > 0 {
		maxLineSize = conf[0].MaxLineSize
	}
	return &Importer{
		store:       store,
		maxLineSize: maxLineSize,
	}
}

// Run consumes r line by line until EOF or context cancellation.
// Undecodable lines and events missing required fields are counted as
// skipped rather than aborting the run; store failures abort.
func (imp *Importer) Run(ctx context.Context, r io.Reader) (Result, error) {
	var res Result

	scanner := bufio.NewScanner(r)
	buf := make([]byte, imp.maxLineSize)
	scanner.Buffer(buf, imp.maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		event, ok := decodeEvent(line)
		if !ok {
			res.Skipped++
			continue
		}

		if err := imp.store.AppendEvent(event); err != nil {
			return res, fmt.Errorf("append event: %w", err)
		}
		res.Imported++
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return res, fmt.Errorf("input line exceeded max size (%d bytes)", imp.maxLineSize)
		}
		return res, fmt.Errorf("read input: %w", err)
	}
	return res, nil
}

// decodeEvent parses one NDJSON line into a storable event. Events carry
// the same shape as stored rows, so only fill-in defaults are applied.
func decodeEvent(line string) (*model.ErrorEvent, bool) {
	var event model.ErrorEvent
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		log.Printf("importer: skipping undecodable line: %v", err)
		return nil, false
	}
	if event.Fingerprint == "" || event.Message == "" {
		return nil, false
	}
	if event.Type == "" {
		event.Type = model.DefaultType
	}
	if event.ProjectID == "" {
		event.ProjectID = model.DefaultProjectID
	}
	return &event, true
}
