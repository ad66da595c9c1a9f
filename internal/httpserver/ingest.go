package httpserver

import (
	"log"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/flaregun-dev/flaregun/internal/fingerprint"
	"github.com/flaregun-dev/flaregun/internal/model"
	"github.com/flaregun-dev/flaregun/internal/redact"
	"github.com/flaregun-dev/flaregun/internal/useragent"
	"github.com/gin-gonic/gin"
)

// errorPayload is the submission body accepted from the capture SDK.
type errorPayload struct {
	Fingerprint string `json:"fingerprint"`
	Message     string `json:"message"`
	Stack       string `json:"stack"`
	URL         string `json:"url"`
	Type        string `json:"type"`
	ProjectID   string `json:"projectId"`
}

// handleIngest accepts one error submission, normalizes and redacts it,
// and appends a single immutable event. Every failure response still
// carries the CORS headers set by the middleware so browser-side
// reporters can observe the status.
func (s *Server) handleIngest(c *gin.Context) {
	clientKey := c.GetHeader("CF-Connecting-IP")
	if clientKey == "" {
		clientKey = c.ClientIP()
	}
	if clientKey == "" {
		clientKey = "unknown"
	}
	if s.limiter.Limited(clientKey) {
		c.String(http.StatusTooManyRequests, "Rate limited")
		return
	}

	var payload errorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.String(http.StatusBadRequest, "Bad Request")
		return
	}
	if payload.Fingerprint == "" || payload.Message == "" {
		c.String(http.StatusBadRequest, "Missing fields")
		return
	}

	event := newEvent(payload, c.GetHeader("User-Agent"))

	if err := s.store.AppendEvent(event); err != nil {
		log.Printf("ingest: append failed (fingerprint=%s): %v", event.Fingerprint, err)
		c.String(http.StatusBadGateway, "Store unavailable")
		return
	}

	c.Status(http.StatusNoContent)
}

// newEvent normalizes a validated payload into the event row to append:
// fields are truncated, the stack is reduced to its top call sites, the
// URL loses query and fragment, absent type/project fall back to their
// defaults, and every free-text field is redacted before it can reach
// the store.
func newEvent(payload errorPayload, ua string) *model.ErrorEvent {
	browser, os := useragent.Parse(ua)

	event := &model.ErrorEvent{
		Fingerprint: payload.Fingerprint,
		Message:     redact.Redact(truncate(payload.Message, model.MaxMessageLen)),
		TopFrames:   redact.Redact(fingerprint.TopFrames(payload.Stack, model.TopFrameCount)),
		URL:         redact.Redact(stripQuery(payload.URL)),
		Browser:     browser,
		OS:          os,
		Type:        payload.Type,
		ProjectID:   payload.ProjectID,
	}
	if event.Type == "" {
		event.Type = model.DefaultType
	}
	if event.ProjectID == "" {
		event.ProjectID = model.DefaultProjectID
	}
	return event
}

// stripQuery reduces a URL to origin+path, dropping query and fragment.
// Malformed input falls back to a truncated raw string.
func stripQuery(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return truncate(raw, model.MaxURLLen)
	}
	return u.Scheme + "://" + u.Host + u.Path
}

// truncate caps s at n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
