package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"
)

// queryCtx returns a context with the store's configured query timeout.
func (s *Store) queryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.QueryTimeout)
}

// ListGroups aggregates events newer than now-window into one row per
// fingerprint, ordered by descending summed count. Message and frames
// come from the earliest event so the displayed text is stable while a
// group keeps occurring. Grouping is by fingerprint alone: redaction or
// truncation can produce differing message text for the same fault.
func (s *Store) ListGroups(window time.Duration, limit int) ([]ErrorGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()
	cutoff := time.Now().Add(-window)

	rows, err := s.db.QueryContext(ctx, `
		SELECT fingerprint,
			arg_min(message, timestamp) AS message,
			arg_min(top_frames, timestamp) AS top_frames,
			CAST(SUM(count) AS BIGINT) AS count,
			MIN(timestamp) AS first_seen,
			MAX(timestamp) AS last_seen
		FROM events
		WHERE timestamp >= ?
		GROUP BY fingerprint
		ORDER BY count DESC
		LIMIT ?`, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ErrorGroup
	for rows.Next() {
		var g ErrorGroup
		if err := rows.Scan(&g.Fingerprint, &g.Message, &g.TopFrames, &g.Count, &g.FirstSeen, &g.LastSeen); err != nil {
			log.Printf("duckdb scan error (ListGroups): %v", err)
			continue
		}
		results = append(results, g)
	}
	return results, rows.Err()
}

// GroupByFingerprint resolves the single group for a fingerprint within
// the window. A fingerprint with no events yields (nil, nil): absence is
// a normal outcome, not an error.
func (s *Store) GroupByFingerprint(fingerprint string, window time.Duration) (*ErrorGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()
	cutoff := time.Now().Add(-window)

	var g ErrorGroup
	err := s.db.QueryRowContext(ctx, `
		SELECT fingerprint,
			arg_min(message, timestamp) AS message,
			arg_min(top_frames, timestamp) AS top_frames,
			CAST(SUM(count) AS BIGINT) AS count,
			MIN(timestamp) AS first_seen,
			MAX(timestamp) AS last_seen
		FROM events
		WHERE fingerprint = ? AND timestamp >= ?
		GROUP BY fingerprint`, fingerprint, cutoff,
	).Scan(&g.Fingerprint, &g.Message, &g.TopFrames, &g.Count, &g.FirstSeen, &g.LastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// TopURLs returns the URL breakdown for a fingerprint within the window.
func (s *Store) TopURLs(fingerprint string, window time.Duration, limit int) ([]DimensionCount, error) {
	return s.topDimension("url", fingerprint, window, limit)
}

// TopBrowsers returns the browser breakdown for a fingerprint within the window.
func (s *Store) TopBrowsers(fingerprint string, window time.Duration, limit int) ([]DimensionCount, error) {
	return s.topDimension("browser", fingerprint, window, limit)
}

// TopOSes returns the OS breakdown for a fingerprint within the window.
func (s *Store) TopOSes(fingerprint string, window time.Duration, limit int) ([]DimensionCount, error) {
	return s.topDimension("os", fingerprint, window, limit)
}

// topDimension groups one fingerprint's events by a single column. The
// column name is always one of the fixed callers above, never input.
func (s *Store) topDimension(column, fingerprint string, window time.Duration, limit int) ([]DimensionCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()
	cutoff := time.Now().Add(-window)

	query := fmt.Sprintf(`
		SELECT %s AS value, CAST(SUM(count) AS BIGINT) AS count
		FROM events
		WHERE fingerprint = ? AND timestamp >= ?
		GROUP BY value
		ORDER BY count DESC, value ASC
		LIMIT ?`, column)

	rows, err := s.db.QueryContext(ctx, query, fingerprint, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DimensionCount
	for rows.Next() {
		var item DimensionCount
		if err := rows.Scan(&item.Value, &item.Count); err != nil {
			log.Printf("duckdb scan error (topDimension %s): %v", column, err)
			continue
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

// Timeseries returns hourly occurrence counts for a fingerprint within
// the window, ordered by ascending bucket start.
func (s *Store) Timeseries(fingerprint string, window time.Duration) ([]TimeBucket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()
	cutoff := time.Now().Add(-window)

	rows, err := s.db.QueryContext(ctx, `
		SELECT date_trunc('hour', timestamp) AS bucket,
			CAST(SUM(count) AS BIGINT) AS count
		FROM events
		WHERE fingerprint = ? AND timestamp >= ?
		GROUP BY bucket
		ORDER BY bucket ASC`, fingerprint, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []TimeBucket
	for rows.Next() {
		var tb TimeBucket
		if err := rows.Scan(&tb.Bucket, &tb.Count); err != nil {
			log.Printf("duckdb scan error (Timeseries): %v", err)
			continue
		}
		results = append(results, tb)
	}
	return results, rows.Err()
}

// TotalEventCount returns the total number of events in the log.
func (s *Store) TotalEventCount() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	return count, err
}
