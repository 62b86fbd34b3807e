// Package fastget is a minimal single-shot HTTP/1.1 client: one GET
// request to one host, the whole response buffered, the connection
// closed. It trades generality for startup latency — the request is
// serialized upfront and, where the platform allows, rides inside the
// connection-establishing packet via TCP Fast Open, with a classic
// connect/send fallback that can run in the background. Gzip-encoded
// bodies are decompressed in place and the response headers rewritten
// to match.
//
// No TLS, no redirects, no pooling, no methods besides GET.
package fastget

import (
	"context"
	"net/http"

	"github.com/fastget/fastget/internal"
	"github.com/fastget/fastget/internal/buffer"
)

type Conn = internal.Conn
type Options = internal.Options
type Header = http.Header

// Buffer is the caller-owned response buffer reused as the final output.
type Buffer = buffer.Buffer

// NewBuffer returns an empty response buffer with the given capacity.
func NewBuffer(capacity int) *Buffer {
	return buffer.New(capacity)
}

// Send issues the request; see internal.Send. Pass the returned Conn to
// its Receive method to collect the response.
func Send(ctx context.Context, host, path string, extra Header, opts Options) (*Conn, error) {
	return internal.Send(ctx, host, path, extra, opts)
}
