// Package capture is the client-side instrumentation layer: it turns
// failures in a host application into redacted, fingerprinted payloads
// and delivers them to the ingestion endpoint without ever blocking or
// throwing back into the host.
package capture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/flaregun-dev/flaregun/internal/fingerprint"
	"github.com/flaregun-dev/flaregun/internal/model"
	"github.com/flaregun-dev/flaregun/internal/redact"
)

const (
	defaultQueueSize   = 64
	defaultSendTimeout = 5 * time.Second
	defaultCloseGrace  = 2 * time.Second
)

// Payload is one outgoing error report.
type Payload struct {
	Fingerprint string `json:"fingerprint"`
	Message     string `json:"message"`
	Stack       string `json:"stack"`
	URL         string `json:"url,omitempty"`
	Type        string `json:"type"`
	ProjectID   string `json:"projectId"`
}

// Config configures a capture client. Endpoint is required; everything
// else has working defaults.
type Config struct {
	Endpoint  string
	ProjectID string
	URL       string // reported source location, origin+path

	// BeforeSend may inspect and modify an outgoing payload, or return
	// nil to suppress the send entirely.
	BeforeSend func(*Payload) *Payload

	HTTPClient *http.Client
	QueueSize  int
}

// Client captures failures and ships them to the ingestion endpoint.
// All configuration is explicit instance state; there are no package
// globals. The zero value is unusable — construct with New.
type Client struct {
	cfg   Config
	httpc *http.Client

	mu     sync.Mutex
	armed  bool
	queue  chan Payload
	done   chan struct{}
	closed bool
	wg     sync.WaitGroup
}

// New creates an unarmed client. Call Arm before capturing.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("capture: endpoint is required")
	}
	if cfg.ProjectID == "" {
		cfg.ProjectID = model.DefaultProjectID
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultSendTimeout}
	}
	return &Client{
		cfg:   cfg,
		httpc: httpc,
		queue: make(chan Payload, cfg.QueueSize),
		done:  make(chan struct{}),
	}, nil
}

// Arm starts the delivery worker and enables capturing. Calling Arm on
// an armed client is a no-op.
func (c *Client) Arm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.armed || c.closed {
		return
	}
	c.armed = true
	c.wg.Add(1)
	go c.deliver()
}

// Disarm disables capturing. It is idempotent and safe to call on a
// client that was never armed; captures after Disarm are no-ops.
func (c *Client) Disarm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armed = false
}

// Close disarms the client and drains queued payloads, waiting up to a
// short grace period for in-flight sends. It is idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.armed = false
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-time.After(defaultCloseGrace):
		return errors.New("capture: close timed out with sends in flight")
	}
}

// CaptureError reports a synchronous failure. The current goroutine's
// stack is attached. Nil errors are ignored; capture on an unarmed or
// closed client is a no-op.
func (c *Client) CaptureError(err error) {
	if err == nil {
		return
	}
	c.capture(err.Error(), string(debug.Stack()), "error")
}

// Recover reports a panic in the calling goroutine and suppresses it.
// Use it deferred at the top of goroutines whose failures would
// otherwise escape:
//
//	defer client.Recover()
func (c *Client) Recover() {
	if r := recover(); r != nil {
		c.capture(fmt.Sprint(r), string(debug.Stack()), "unhandledrejection")
	}
}

// Go runs fn on a new goroutine and reports its escaped failures — a
// returned error or a panic — as asynchronous rejections.
func (c *Client) Go(fn func() error) {
	go func() {
		defer c.Recover()
		if err := fn(); err != nil {
			c.capture(err.Error(), string(debug.Stack()), "unhandledrejection")
		}
	}()
}

// capture builds, redacts, and enqueues a payload. It never blocks:
// when the queue is full the report is dropped, which is acceptable for
// fire-and-forget delivery.
func (c *Client) capture(message, stack, eventType string) {
	c.captureFrom(message, stack, c.cfg.URL, eventType)
}

func (c *Client) captureFrom(message, stack, url, eventType string) {
	c.mu.Lock()
	armed := c.armed
	c.mu.Unlock()
	if !armed {
		return
	}

	p := Payload{
		Fingerprint: fingerprint.Hash(message, stack),
		Message:     redact.Redact(truncate(message, model.MaxMessageLen)),
		Stack:       redact.Redact(stack),
		URL:         redact.Redact(url),
		Type:        eventType,
		ProjectID:   c.cfg.ProjectID,
	}

	if c.cfg.BeforeSend != nil {
		modified := c.cfg.BeforeSend(&p)
		if modified == nil {
			return // suppressed: no send, no side effects
		}
		p = *modified
	}

	select {
	case c.queue <- p:
	default:
	}
}

// deliver ships queued payloads until Close. Send failures are dropped
// silently: transport is best-effort and must never disturb the host.
func (c *Client) deliver() {
	defer c.wg.Done()
	for {
		select {
		case p := <-c.queue:
			c.send(p)
		case <-c.done:
			// Final drain so Close flushes what is already queued.
			for {
				select {
				case p := <-c.queue:
					c.send(p)
				default:
					return
				}
			}
		}
	}
}

func (c *Client) send(p Payload) {
	body, err := json.Marshal(p)
	if err != nil {
		return
	}
	resp, err := c.httpc.Post(c.cfg.Endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return
	}
	resp.Body.Close()
}

// truncate caps s at n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xc0 == 0x80 {
		n--
	}
	return s[:n]
}
