// Package fingerprint derives the stable identifier that groups error
// occurrences. It is the single source of truth for grouping identity:
// the capture SDK, the ingestion server, and any later re-fingerprinting
// of queued events must all go through Hash.
package fingerprint

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	offsetBasis uint32 = 0x811c9dc5
	prime       uint32 = 0x01000193
)

// frameMarker matches a "name@file:line" style frame line.
var frameMarker = regexp.MustCompile(`^\w+@`)

// Hash returns the 8-hex-digit FNV-1a fingerprint for an error, computed
// over the message concatenated with the normalized top stack frame.
// It is deterministic and collision-resistant enough for grouping; it is
// not a cryptographic hash.
func Hash(message, stack string) string {
	h := offsetBasis
	for _, b := range []byte(message + TopFrame(stack)) {
		h ^= uint32(b)
		h *= prime
	}
	return fmt.Sprintf("%08x", h)
}

// TopFrame extracts the first line of a stack trace that looks like a
// call site. When no line matches the heuristic it falls back to the
// second raw line; an empty stack yields "".
func TopFrame(stack string) string {
	if stack == "" {
		return ""
	}
	lines := strings.Split(stack, "\n")
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); isCallSite(trimmed) {
			return trimmed
		}
	}
	if len(lines) > 1 {
		return strings.TrimSpace(lines[1])
	}
	return ""
}

// TopFrames reduces a stack trace to its first n call-site lines, each
// trimmed, joined by newlines. Lines that do not look like call sites
// are skipped entirely.
func TopFrames(stack string, n int) string {
	if stack == "" || n <= 0 {
		return ""
	}
	var frames []string
	for _, line := range strings.Split(stack, "\n") {
		trimmed := strings.TrimSpace(line)
		if !isCallSite(trimmed) {
			continue
		}
		frames = append(frames, trimmed)
		if len(frames) == n {
			break
		}
	}
	return strings.Join(frames, "\n")
}

func isCallSite(line string) bool {
	return strings.HasPrefix(line, "at ") || frameMarker.MatchString(line)
}
