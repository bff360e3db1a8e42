package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

// TCPWriter mirrors log lines to a log collector's TCP input (Logstash and
// compatible) without ever blocking the request path: while the collector is
// unreachable, writes are dropped and a reconnect is attempted after a
// cool-down window.
type TCPWriter struct {
	addr        string
	dialTimeout time.Duration
	retryAfter  time.Duration

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	closed    bool
}

func NewTCPWriter(addr string) (*TCPWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logging: empty collector address")
	}
	return &TCPWriter{
		addr:        addr,
		dialTimeout: 2 * time.Second,
		retryAfter:  5 * time.Second,
	}, nil
}

// Write implements io.Writer. It always reports success to the caller; a
// failed forward drops the line and schedules a reconnect.
func (w *TCPWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	line := make([]byte, len(p))
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}
	if w.conn == nil && !w.dialLocked() {
		return len(p), nil
	}

	_ = w.conn.SetWriteDeadline(time.Now().Add(time.Second))
	if _, err := w.conn.Write(line); err != nil {
		_ = w.conn.Close()
		w.conn = nil
		w.nextRetry = time.Now().Add(w.retryAfter)
	}
	return len(p), nil
}

func (w *TCPWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}

func (w *TCPWriter) dialLocked() bool {
	if !w.nextRetry.IsZero() && time.Now().Before(w.nextRetry) {
		return false
	}
	conn, err := net.DialTimeout("tcp", w.addr, w.dialTimeout)
	if err != nil {
		w.nextRetry = time.Now().Add(w.retryAfter)
		return false
	}
	w.conn = conn
	w.nextRetry = time.Time{}
	return true
}
