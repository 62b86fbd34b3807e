// Package sockopt wraps the platform-specific socket tuning used by the
// client: latency options, kernel timeouts, and the TCP Fast Open send.
// Capabilities that only exist on some platforms are registered by
// build-tagged files at init time and report unsupported elsewhere.
package sockopt

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// ErrFastOpenUnsupported is returned by FastOpen on platforms without a
// registered implementation. Callers are expected to fall back to a
// classic connect/send sequence.
var ErrFastOpenUnsupported = errors.New("sockopt: tcp fast open not supported")

// fastOpen is set by platform files that can attempt a zero-RTT send.
var fastOpen func(fd int, payload []byte, sa unix.Sockaddr) error

// FastOpenSupported reports whether the running platform can attempt a
// fast-open send at all.
func FastOpenSupported() bool { return fastOpen != nil }

// FastOpen attempts to hand payload to the kernel inside the
// connection-establishing packet. A nil return means the data was either
// sent or queued behind an in-progress handshake; in both cases the
// socket needs no further connect or send calls. A non-nil return means
// nothing was sent and the socket is still unconnected.
func FastOpen(fd int, payload []byte, sa unix.Sockaddr) error {
	if fastOpen == nil {
		return ErrFastOpenUnsupported
	}
	return fastOpen(fd, payload, sa)
}

// TuneLatency applies best-effort low-latency options: TCP_NODELAY plus
// whatever the platform offers on top (TCP_QUICKACK on Linux). The
// returned error aggregates any options that could not be applied and is
// advisory only.
func TuneLatency(fd int) error {
	err := unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
	return errors.Join(err, tuneLatencyExtra(fd))
}

// SetRecvTimeout bounds blocking reads on fd.
func SetRecvTimeout(fd int, d time.Duration) error {
	tv := unix.NsecToTimeval(int64(d))
	return unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv)
}

// SetRecvBuffer asks the kernel for a receive buffer of n bytes, turning
// many small reads into few large ones. A hint, not a guarantee.
func SetRecvBuffer(fd int, n int) error {
	return unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_RCVBUF, n)
}
