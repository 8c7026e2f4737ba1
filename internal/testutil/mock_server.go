// Package testutil provides HTTP fixtures for data source tests.
package testutil

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// MockServer is a configurable HTTP server that serves one data document.
type MockServer struct {
	Server *httptest.Server

	// Configuration
	Body        []byte        // Document served on every path
	ContentType string        // Content-Type header value
	Status      int           // Response status (default 200)
	Latency     time.Duration // Artificial latency per request
	DropFirst   int           // Close the connection on the first N requests

	// Tracking
	RequestCount atomic.Int64
	DroppedConns atomic.Int64
	BytesServed  atomic.Int64
	mu           sync.Mutex
	userAgents   []string

	// Internal
	CustomHandler http.HandlerFunc
}

// MockServerOption is a function that configures a MockServer.
type MockServerOption func(*MockServer)

// WithHandler replaces the document handler.
func WithHandler(h http.HandlerFunc) MockServerOption {
	return func(m *MockServer) {
		m.CustomHandler = h
	}
}

// WithBody sets the served document.
func WithBody(body []byte) MockServerOption {
	return func(m *MockServer) {
		m.Body = body
	}
}

// WithContentType sets the Content-Type header.
func WithContentType(ct string) MockServerOption {
	return func(m *MockServer) {
		m.ContentType = ct
	}
}

// WithStatus makes every request answer with status.
func WithStatus(status int) MockServerOption {
	return func(m *MockServer) {
		m.Status = status
	}
}

// WithLatency adds artificial latency per request.
func WithLatency(d time.Duration) MockServerOption {
	return func(m *MockServer) {
		m.Latency = d
	}
}

// WithDropFirst closes the connection without a response on the first n
// requests, which clients see as a transport error.
func WithDropFirst(n int) MockServerOption {
	return func(m *MockServer) {
		m.DropFirst = n
	}
}

func newMockServer(opts []MockServerOption) *MockServer {
	m := &MockServer{
		ContentType: "application/json",
		Status:      http.StatusOK,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewMockServerT creates a mock server that is closed with the test. The
// test is skipped when no IPv4 listener can be bound.
func NewMockServerT(t *testing.T, opts ...MockServerOption) *MockServer {
	t.Helper()
	m := newMockServer(opts)
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("tcp4 listener unavailable: %v", err)
		return nil
	}
	m.Server = start(ln, http.HandlerFunc(m.handleRequest))
	t.Cleanup(m.Close)
	return m
}

// start serves handler on an IPv4 listener to avoid IPv6 issues in
// sandboxed environments.
func start(ln net.Listener, handler http.Handler) *httptest.Server {
	srv := &httptest.Server{
		Listener: ln,
		Config:   &http.Server{Handler: handler},
	}
	srv.Start()
	return srv
}

// URL returns the server's URL.
func (m *MockServer) URL() string {
	return m.Server.URL
}

// Close shuts down the mock server.
func (m *MockServer) Close() {
	if m.Server != nil {
		m.Server.Close()
	}
}

// Stats returns a summary of server statistics.
func (m *MockServer) Stats() MockServerStats {
	return MockServerStats{
		TotalRequests: m.RequestCount.Load(),
		DroppedConns:  m.DroppedConns.Load(),
		BytesServed:   m.BytesServed.Load(),
	}
}

// MockServerStats contains server statistics.
type MockServerStats struct {
	TotalRequests int64
	DroppedConns  int64
	BytesServed   int64
}

// UserAgents returns the User-Agent of every request seen so far.
func (m *MockServer) UserAgents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.userAgents...)
}

func (m *MockServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	n := m.RequestCount.Add(1)
	m.mu.Lock()
	m.userAgents = append(m.userAgents, r.Header.Get("User-Agent"))
	m.mu.Unlock()

	if n <= int64(m.DropFirst) {
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				m.DroppedConns.Add(1)
				_ = conn.Close()
				return
			}
		}
	}

	if m.Latency > 0 {
		time.Sleep(m.Latency)
	}

	if m.CustomHandler != nil {
		m.CustomHandler(w, r)
		return
	}

	if m.Status != http.StatusOK {
		http.Error(w, http.StatusText(m.Status), m.Status)
		return
	}

	w.Header().Set("Content-Type", m.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(m.Body)))
	w.WriteHeader(http.StatusOK)
	written, _ := w.Write(m.Body)
	m.BytesServed.Add(int64(written))
}
