package internal

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/fastget/fastget/utils/sockopt"
)

// Conn carries one in-flight request from Send to Receive. It is owned
// by a single logical request; the only cross-goroutine hand-off is the
// background send publishing its result through sendDone, which Receive
// joins before touching the socket.
type Conn struct {
	host    string
	request []byte
	addr    unix.Sockaddr

	fd          int // -1 once closed or never opened
	ipv6        bool
	compression bool
	timeout     time.Duration

	// result of the backgrounded connect/send, nil when sent inline
	sendDone chan error

	log *zap.Logger
}

// release drops the per-request text and address. They are needed only
// until the request bytes reach the kernel; every terminal outcome of
// the send phase calls this exactly once.
func (c *Conn) release() {
	c.host = ""
	c.request = nil
	c.addr = nil
}

// closeSocket closes fd and marks it invalid. Safe to call on an
// already-invalid socket.
func (c *Conn) closeSocket() {
	if c.fd >= 0 {
		unix.Close(c.fd)
		c.fd = -1
	}
}

// tryFastOpen attempts the zero-RTT send. On success the request is
// already with the kernel and the transient resources are dropped; the
// caller proceeds straight to Receive. Any error here is the expected
// signal to fall back, never a terminal failure.
func (c *Conn) tryFastOpen() error {
	if !sockopt.FastOpenSupported() {
		return sockopt.ErrFastOpenUnsupported
	}
	if err := sockopt.FastOpen(c.fd, c.request, c.addr); err != nil {
		return err
	}
	c.log.Debug("fast open send accepted or in progress", zap.Int("bytes", len(c.request)))
	c.release()
	return nil
}

// connectAndSend is the classic fallback path, run inline or on a
// background goroutine. Resources are released on every return; on
// failure the socket is closed and invalidated so Receive rejects it.
func (c *Conn) connectAndSend() error {
	defer c.release()

	if err := unix.Connect(c.fd, c.addr); err != nil {
		c.log.Debug("connect failed", zap.Error(err))
		c.closeSocket()
		return fmt.Errorf("%w: %v", ErrConnect, err)
	}
	if _, err := unix.Write(c.fd, c.request); err != nil {
		c.log.Debug("send failed", zap.Error(err))
		c.closeSocket()
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	c.log.Debug("request sent", zap.Int("bytes", len(c.request)))
	return nil
}
