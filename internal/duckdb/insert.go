package duckdb

import (
	"context"
	"fmt"
	"time"
)

// AppendEvent writes one immutable event row. The timestamp is assigned
// here, not taken from the client, so the event log's ordering reflects
// ingestion time. Each accepted submission contributes a count of 1.
func (s *Store) AppendEvent(event *ErrorEvent) error {
	return s.appendEventAt(event, time.Now())
}

// appendEventAt is the timestamp-explicit insert; tests use it to place
// events at known points in a query window.
func (s *Store) appendEventAt(event *ErrorEvent, ts time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.QueryTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (fingerprint, message, top_frames, url, browser, os, type, project_id, count, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		event.Fingerprint, event.Message, event.TopFrames, event.URL,
		event.Browser, event.OS, event.Type, event.ProjectID, ts,
	)
	if err != nil {
		return fmt.Errorf("appending event (fingerprint=%s): %w", event.Fingerprint, err)
	}
	return nil
}
