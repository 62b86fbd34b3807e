package internal

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"

	"golang.org/x/net/http/httpguts"
)

// buildRequest serializes the full GET request upfront so every send
// strategy, fast-open included, can push it to the kernel in one call:
//
//	GET / HTTP/1.1\r\n
//	Host: example.com\r\n
//	Connection: close\r\n
//	Accept-Encoding: gzip\r\n    (only when a decoder is available)
//	X-Extra: v\r\n
//	\r\n
//
// Extra header keys are written in sorted order so the wire bytes are
// deterministic for a given request.
func buildRequest(host, path string, extra http.Header, compression bool) ([]byte, error) {
	var b bytes.Buffer
	b.Grow(64)

	b.WriteString("GET ")
	b.WriteString(path)
	b.WriteString(" HTTP/1.1\r\nHost: ")
	b.WriteString(host)
	b.WriteString("\r\n")

	// the server must not keep the connection around
	b.WriteString("Connection: close\r\n")

	if compression {
		b.WriteString("Accept-Encoding: gzip\r\n")
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !httpguts.ValidHeaderFieldName(k) {
			return nil, fmt.Errorf("%w: bad field name %q", ErrHeader, k)
		}
		for _, v := range extra[k] {
			if !httpguts.ValidHeaderFieldValue(v) {
				return nil, fmt.Errorf("%w: bad value for %q", ErrHeader, k)
			}
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(v)
			b.WriteString("\r\n")
		}
	}

	b.WriteString("\r\n")
	return b.Bytes(), nil
}
