package internal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/fastget/fastget/internal/gzipbody"
	"github.com/fastget/fastget/utils/sockopt"
)

const httpPort = 80

// Options configures a single request. The zero value asks for an IPv4,
// unbounded, inline-sent, compression-enabled exchange on port 80.
type Options struct {
	// IPv6 resolves the host to an IPv6 address instead of IPv4.
	IPv6 bool

	// Timeout bounds the connect, the background-send join and each
	// receive. Zero means unbounded.
	Timeout time.Duration

	// Port overrides the standard HTTP port. Zero means 80.
	Port int

	// BackgroundSend runs the classic connect/send fallback on its own
	// goroutine so the caller can do other work before Receive.
	BackgroundSend bool

	// DisableFastOpen skips the speculative zero-RTT send and goes
	// straight to the classic connect/send path.
	DisableFastOpen bool

	// DisableCompression leaves Accept-Encoding out even when a decoder
	// is available.
	DisableCompression bool

	// Logger receives debug-level traces of every connection phase.
	// Nil means no logging.
	Logger *zap.Logger
}

// Send resolves host, opens and tunes a socket, and pushes the GET
// request for path down it, preferring a fast-open send and falling
// back to connect-then-send (optionally backgrounded). The returned
// Conn owns the socket and must be passed to Receive next. Exactly one
// of the three send strategies runs per call, and every failure path
// leaves no socket or resolver result behind.
func Send(ctx context.Context, host, path string, extra http.Header, opts Options) (*Conn, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	compression := gzipbody.Available() && !opts.DisableCompression
	request, err := buildRequest(host, path, extra, compression)
	if err != nil {
		return nil, err
	}

	c := &Conn{
		host:        host,
		request:     request,
		fd:          -1,
		ipv6:        opts.IPv6,
		compression: compression,
		timeout:     opts.Timeout,
		log:         log,
	}

	port := opts.Port
	if port == 0 {
		port = httpPort
	}
	log.Debug("resolving", zap.String("host", host), zap.Bool("ipv6", opts.IPv6))
	addr, err := resolve(ctx, host, opts.IPv6, port)
	if err != nil {
		c.release()
		return nil, err
	}
	c.addr = addr

	family := unix.AF_INET
	if opts.IPv6 {
		family = unix.AF_INET6
	}
	fd, err := unix.Socket(family, unix.SOCK_STREAM, 0)
	if err != nil {
		c.release()
		return nil, fmt.Errorf("%w: %v", ErrSocket, err)
	}
	unix.CloseOnExec(fd)
	c.fd = fd
	log.Debug("socket created", zap.Int("fd", fd))

	// advisory tuning, never fatal
	if err := sockopt.TuneLatency(fd); err != nil {
		log.Debug("latency tuning not fully applied", zap.Error(err))
	}
	if opts.Timeout > 0 {
		if err := sockopt.SetConnectTimeout(fd, opts.Timeout); err != nil {
			log.Debug("connect timeout not applied", zap.Error(err))
		}
	}

	if opts.DisableFastOpen {
		log.Debug("fast open disabled, using classic connect")
	} else if err := c.tryFastOpen(); err == nil {
		return c, nil
	} else {
		log.Debug("fast open unavailable, using classic connect", zap.Error(err))
	}

	if opts.BackgroundSend {
		c.sendDone = make(chan error, 1)
		go func() { c.sendDone <- c.connectAndSend() }()
		log.Debug("connect/send running in background")
		return c, nil
	}
	if err := c.connectAndSend(); err != nil {
		return nil, err
	}
	return c, nil
}
