//go:build darwin

package sockopt

import (
	"time"

	"golang.org/x/sys/unix"
)

// No MSG_FASTOPEN on darwin, so no fast-open registration here; callers
// take the classic connect/send path.

func tuneLatencyExtra(fd int) error {
	return nil // no TCP_QUICKACK equivalent
}

// SetConnectTimeout bounds connection establishment. Darwin takes whole
// seconds through TCP_CONNECTIONTIMEOUT, floored at one second so a
// sub-second request timeout still produces a bounded connect.
func SetConnectTimeout(fd int, d time.Duration) error {
	sec := int(d / time.Second)
	if sec == 0 {
		sec = 1
	}
	return unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_CONNECTIONTIMEOUT, sec)
}
