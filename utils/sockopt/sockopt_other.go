//go:build unix && !linux && !darwin

package sockopt

import "time"

func tuneLatencyExtra(fd int) error { return nil }

// SetConnectTimeout is a no-op where no per-socket connect timeout
// option exists; the receive timeout still bounds the exchange.
func SetConnectTimeout(fd int, d time.Duration) error { return nil }
