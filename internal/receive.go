package internal

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/fastget/fastget/internal/buffer"
	"github.com/fastget/fastget/internal/gzipbody"
	"github.com/fastget/fastget/utils/sockopt"
)

const (
	// initial spare capacity when the caller hands over an empty buffer
	initialCapacity = 4096

	// kernel receive buffer hint
	recvBufferSize = 64 * 1024

	// slack on top of the declared content length when pre-growing
	lengthHeadroom = 16

	headerEndLen = 4 // len("\r\n\r\n")
)

var (
	headerEnd  = []byte("\r\n\r\n")
	statusOK   = []byte("HTTP/1.1 200 OK\r\n")
	lengthMark = []byte("\ncontent-length:")
)

// Receive drains the response into buf and validates it. A backgrounded
// send is joined first, bounded by the configured timeout and ctx; once
// the join succeeds the socket is closed and invalidated on every exit
// path. If the join itself times out, ownership of the socket never
// transfers from the sending goroutine and Receive returns without
// touching it (see joinSend). On success buf holds the complete
// response, already decompressed when the request negotiated gzip.
func (c *Conn) Receive(ctx context.Context, buf *buffer.Buffer) error {
	if c.sendDone != nil {
		if err := c.joinSend(ctx); err != nil {
			return err
		}
	}
	if c.fd < 0 {
		return ErrNotSent
	}

	// advisory, like the sender-side tuning
	if c.timeout > 0 {
		if err := sockopt.SetRecvTimeout(c.fd, c.timeout); err != nil {
			c.log.Debug("receive timeout not applied", zap.Error(err))
		}
	}
	if err := sockopt.SetRecvBuffer(c.fd, recvBufferSize); err != nil {
		c.log.Debug("receive buffer hint not applied", zap.Error(err))
	}

	if buf.Free() == 0 {
		buf.EnsureFree(initialCapacity)
	}

	boundary := -1
	contentLength := 0
	for buf.Free() > 0 {
		n, err := unix.Read(c.fd, buf.Tail())
		if n <= 0 {
			if err != nil {
				c.log.Debug("read stopped", zap.Error(err))
			}
			break
		}
		buf.Advance(n)

		if boundary < 0 {
			if i := bytes.Index(buf.Bytes(), headerEnd); i >= 0 {
				boundary = i
				if cl := scanContentLength(buf.Bytes()[:boundary]); cl > 0 {
					contentLength = cl
					// one large pre-grow instead of many small reads
					buf.EnsureFree(cl + lengthHeadroom)
					c.log.Debug("pre-sized from declared length", zap.Int("contentLength", cl))
				}
			}
		}
	}
	c.closeSocket()

	if buf.Len() == 0 {
		return ErrEmptyResponse
	}
	if boundary < 0 {
		return ErrNoHeaderEnd
	}
	if contentLength > 0 && buf.Len() != boundary+headerEndLen+contentLength {
		return fmt.Errorf("%w: declared %d, received %d",
			ErrContentLength, contentLength, buf.Len()-boundary-headerEndLen)
	}
	if !bytes.HasPrefix(buf.Bytes(), statusOK) {
		// deliberately strict: redirects, other 2xx and HTTP/1.0 all fail
		line := buf.Bytes()
		if i := bytes.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
		}
		return fmt.Errorf("%w: %q", ErrInvalidResponse, bytes.TrimRight(line, "\r"))
	}
	c.log.Debug("response received", zap.Int("bytes", buf.Len()))

	if c.compression {
		return gzipbody.Decode(buf, boundary)
	}
	return nil
}

// joinSend waits for the backgrounded connect/send to publish its
// result. The socket must not be read before this returns nil.
//
// On the deadline and ctx branches the sender is still running and
// still owns the socket, so closing here would race it; the socket is
// deliberately left to the abandoned goroutine (it closes it itself on
// its failure paths) and sendDone stays set, so a later Receive may
// still join it.
func (c *Conn) joinSend(ctx context.Context) error {
	var deadline <-chan time.Time
	if c.timeout > 0 {
		t := time.NewTimer(c.timeout)
		defer t.Stop()
		deadline = t.C
	}
	select {
	case err := <-c.sendDone:
		c.sendDone = nil
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSendJoin, err)
		}
		return nil
	case <-deadline:
		return fmt.Errorf("%w: no result within %v", ErrSendJoin, c.timeout)
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrSendJoin, ctx.Err())
	}
}

// scanContentLength extracts the declared body length from the header
// section, case-insensitively. Returns 0 when absent or unparseable.
func scanContentLength(head []byte) int {
	lower := bytes.ToLower(head)
	i := bytes.Index(lower, lengthMark)
	if i < 0 {
		return 0
	}
	value := head[i+len(lengthMark):]
	if j := bytes.IndexByte(value, '\r'); j >= 0 {
		value = value[:j]
	}
	n, err := strconv.Atoi(string(bytes.TrimSpace(value)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
