package duckdb

import (
	"testing"
	"time"
)

func TestListGroups(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	for i := 0; i < 3; i++ {
		appendAt(t, store, &ErrorEvent{Fingerprint: "aaaaaaaa", Message: "frequent"}, now.Add(-time.Duration(i)*time.Minute))
	}
	appendAt(t, store, &ErrorEvent{Fingerprint: "bbbbbbbb", Message: "rare"}, now.Add(-time.Minute))

	groups, err := store.ListGroups(time.Hour, 50)
	if err != nil {
		t.Fatalf("ListGroups: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("ListGroups returned %d groups, want 2", len(groups))
	}
	if groups[0].Fingerprint != "aaaaaaaa" || groups[0].Count != 3 {
		t.Errorf("groups[0] = %+v, want fingerprint aaaaaaaa count 3", groups[0])
	}
	if groups[1].Fingerprint != "bbbbbbbb" || groups[1].Count != 1 {
		t.Errorf("groups[1] = %+v, want fingerprint bbbbbbbb count 1", groups[1])
	}
	for _, g := range groups {
		if g.FirstSeen.After(g.LastSeen) {
			t.Errorf("group %s: FirstSeen %v after LastSeen %v", g.Fingerprint, g.FirstSeen, g.LastSeen)
		}
	}
}

func TestListGroupsWindowExcludesOldEvents(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	appendAt(t, store, &ErrorEvent{Fingerprint: "aaaaaaaa", Message: "recent"}, now.Add(-30*time.Minute))
	appendAt(t, store, &ErrorEvent{Fingerprint: "bbbbbbbb", Message: "stale"}, now.Add(-2*time.Hour))

	groups, err := store.ListGroups(time.Hour, 50)
	if err != nil {
		t.Fatalf("ListGroups: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("ListGroups returned %d groups, want 1", len(groups))
	}
	if groups[0].Fingerprint != "aaaaaaaa" {
		t.Errorf("groups[0].Fingerprint = %q, want aaaaaaaa", groups[0].Fingerprint)
	}
}

func TestListGroupsLimit(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	for i := 0; i < 5; i++ {
		fp := string(rune('a'+i)) + "0000000"
		appendAt(t, store, &ErrorEvent{Fingerprint: fp, Message: "x"}, now)
	}

	groups, err := store.ListGroups(time.Hour, 3)
	if err != nil {
		t.Fatalf("ListGroups: %v", err)
	}
	if len(groups) != 3 {
		t.Errorf("ListGroups returned %d groups, want 3", len(groups))
	}
}

func TestListGroupsMergesDifferingMessages(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	// Redaction can make two occurrences of the same fault carry
	// different text; the fingerprint alone decides the group.
	appendAt(t, store, &ErrorEvent{Fingerprint: "aaaaaaaa", Message: "user [REDACTED] not found"}, now.Add(-2*time.Minute))
	appendAt(t, store, &ErrorEvent{Fingerprint: "aaaaaaaa", Message: "user [REDACTED] missing"}, now.Add(-time.Minute))

	groups, err := store.ListGroups(time.Hour, 50)
	if err != nil {
		t.Fatalf("ListGroups: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("ListGroups returned %d groups, want 1", len(groups))
	}
	if groups[0].Count != 2 {
		t.Errorf("count = %d, want 2", groups[0].Count)
	}
	if groups[0].Message != "user [REDACTED] not found" {
		t.Errorf("message = %q, want the earliest event's text", groups[0].Message)
	}
}

func TestGroupByFingerprintAbsent(t *testing.T) {
	store := newTestStore(t)

	group, err := store.GroupByFingerprint("deadbeef", time.Hour)
	if err != nil {
		t.Fatalf("GroupByFingerprint: %v", err)
	}
	if group != nil {
		t.Errorf("group = %+v, want nil for unknown fingerprint", group)
	}
}

func TestTopDimensions(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	events := []struct {
		url     string
		browser string
		os      string
	}{
		{"https://a.test/x", "Chrome 120", "Linux"},
		{"https://a.test/x", "Chrome 120", "Windows"},
		{"https://a.test/y", "Firefox 119", "Linux"},
	}
	for i, e := range events {
		appendAt(t, store, &ErrorEvent{
			Fingerprint: "aaaaaaaa", Message: "boom",
			URL: e.url, Browser: e.browser, OS: e.os,
		}, now.Add(-time.Duration(i)*time.Minute))
	}
	// A different fingerprint must not leak into the breakdown.
	appendAt(t, store, &ErrorEvent{Fingerprint: "bbbbbbbb", Message: "other", URL: "https://a.test/x"}, now)

	urls, err := store.TopURLs("aaaaaaaa", time.Hour, 10)
	if err != nil {
		t.Fatalf("TopURLs: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("TopURLs returned %d values, want 2", len(urls))
	}
	if urls[0].Value != "https://a.test/x" || urls[0].Count != 2 {
		t.Errorf("urls[0] = %+v, want https://a.test/x count 2", urls[0])
	}

	browsers, err := store.TopBrowsers("aaaaaaaa", time.Hour, 10)
	if err != nil {
		t.Fatalf("TopBrowsers: %v", err)
	}
	if len(browsers) != 2 || browsers[0].Value != "Chrome 120" {
		t.Errorf("browsers = %+v, want Chrome 120 first", browsers)
	}

	oses, err := store.TopOSes("aaaaaaaa", time.Hour, 10)
	if err != nil {
		t.Fatalf("TopOSes: %v", err)
	}
	if len(oses) != 2 || oses[0].Value != "Linux" {
		t.Errorf("oses = %+v, want Linux first", oses)
	}
}

func TestTopDimensionLimit(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	for i := 0; i < 12; i++ {
		appendAt(t, store, &ErrorEvent{
			Fingerprint: "aaaaaaaa", Message: "boom",
			URL: "https://a.test/page-" + string(rune('a'+i)),
		}, now)
	}

	urls, err := store.TopURLs("aaaaaaaa", time.Hour, 10)
	if err != nil {
		t.Fatalf("TopURLs: %v", err)
	}
	if len(urls) != 10 {
		t.Errorf("TopURLs returned %d values, want 10", len(urls))
	}
}

func TestTimeseries(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	appendAt(t, store, &ErrorEvent{Fingerprint: "aaaaaaaa", Message: "boom"}, now.Add(-3*time.Hour))
	appendAt(t, store, &ErrorEvent{Fingerprint: "aaaaaaaa", Message: "boom"}, now.Add(-3*time.Hour))
	appendAt(t, store, &ErrorEvent{Fingerprint: "aaaaaaaa", Message: "boom"}, now.Add(-time.Hour))

	buckets, err := store.Timeseries("aaaaaaaa", 24*time.Hour)
	if err != nil {
		t.Fatalf("Timeseries: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("Timeseries returned %d buckets, want 2", len(buckets))
	}
	for i := 1; i < len(buckets); i++ {
		if !buckets[i-1].Bucket.Before(buckets[i].Bucket) {
			t.Errorf("buckets not ascending: %v then %v", buckets[i-1].Bucket, buckets[i].Bucket)
		}
	}
	if buckets[0].Count != 2 || buckets[1].Count != 1 {
		t.Errorf("bucket counts = %d, %d, want 2, 1", buckets[0].Count, buckets[1].Count)
	}
}
