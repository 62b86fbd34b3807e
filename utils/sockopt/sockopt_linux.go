//go:build linux

package sockopt

import (
	"time"

	"golang.org/x/sys/unix"
)

// Queue hint passed with TCP_FASTOPEN. Client sockets don't strictly
// need it, but some kernels only hand out fast-open cookies when set.
const fastOpenQueueLen = 5

var _ = func() error { // make sure this executes before func init()
	fastOpen = fastOpenLinux
	return nil
}()

func fastOpenLinux(fd int, payload []byte, sa unix.Sockaddr) error {
	unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_FASTOPEN, fastOpenQueueLen)

	// The sendto must not block behind the handshake; EINPROGRESS and
	// EAGAIN mean the kernel accepted the payload for delivery once the
	// connection completes.
	if err := unix.SetNonblock(fd, true); err == nil {
		defer unix.SetNonblock(fd, false)
	}

	err := unix.Sendto(fd, payload, unix.MSG_FASTOPEN, sa)
	if err == nil || err == unix.EINPROGRESS || err == unix.EAGAIN {
		return nil
	}
	return err
}

func tuneLatencyExtra(fd int) error {
	return unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_QUICKACK, 1)
}

// SetConnectTimeout bounds connection establishment. Linux takes the
// value in milliseconds through TCP_USER_TIMEOUT.
func SetConnectTimeout(fd int, d time.Duration) error {
	return unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_USER_TIMEOUT, int(d/time.Millisecond))
}
