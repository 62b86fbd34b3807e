// Package gzipbody rewrites a fully buffered HTTP response whose body
// arrived gzip-compressed: the body is inflated in place of the original
// and the headers are rewritten to describe the decompressed payload.
package gzipbody

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fastget/fastget/internal/buffer"
)

var (
	// ErrFormat means the headers announced gzip but the body does not
	// start with a gzip stream.
	ErrFormat = errors.New("gzipbody: body is not a valid gzip stream")

	// ErrDecompress means the inflate engine rejected the stream.
	ErrDecompress = errors.New("gzipbody: decompression failed")
)

const (
	// Margin added on top of the trailer size field, and the assumed
	// compression ratio when the trailer is unusable. Text payloads
	// typically compress 3-5x.
	sizeMargin    = 64
	fallbackRatio = 5

	headerEndLen = 4 // len("\r\n\r\n")
)

var (
	encodingMarker = []byte("\ncontent-encoding: gzip")
	encodingPrefix = []byte("content-encoding:")
	lengthPrefix   = []byte("content-length:")
	crlf           = []byte("\r\n")
)

// Available reports whether a decompression backend is present. The
// inflate engine is compiled in, so this always holds; the hook exists
// so callers treat compression as a probed capability rather than a
// hard assumption.
func Available() bool { return true }

// Encoded reports whether the header section declares a gzip body. Only
// the bytes before the header terminator may be passed in, so a body
// that happens to contain the marker can never trigger a decode.
func Encoded(head []byte) bool {
	return bytes.Contains(bytes.ToLower(head), encodingMarker)
}

// EstimateSize guesses the decompressed size of a gzip stream for buffer
// pre-sizing. The trailer's size field is authoritative for payloads
// under 4GiB; it wraps beyond that and reads zero for empty streams, so
// the guess falls back to a fixed ratio of the compressed size. Returns
// 0 if data does not look like gzip at all.
func EstimateSize(data []byte) int {
	if len(data) < 10 || data[0] != 0x1f || data[1] != 0x8b {
		return 0
	}
	if len(data) > 18 {
		if isize := binary.LittleEndian.Uint32(data[len(data)-4:]); isize > 0 {
			return int(isize) + sizeMargin
		}
	}
	return len(data) * fallbackRatio
}

// Decode inflates the body of the buffered response when the headers
// declare gzip encoding, then swaps in a rebuilt response whose headers
// match the decompressed body. headerEnd is the offset of the header
// terminator within buf. The no-encoding case is a successful no-op.
// buf is either replaced wholesale or left untouched, never partially
// rewritten.
func Decode(buf *buffer.Buffer, headerEnd int) error {
	head := buf.Bytes()[:headerEnd]
	if !Encoded(head) {
		return nil
	}

	body := buf.Bytes()[headerEnd+headerEndLen:]
	if len(body) == 0 {
		return nil
	}
	if len(body) < 2 || body[0] != 0x1f || body[1] != 0x8b {
		return ErrFormat
	}

	decompressed, err := inflate(body)
	if err != nil {
		return err
	}

	rebuilt := buffer.New(headerEnd + headerEndLen + decompressed.Len() + sizeMargin)
	for _, line := range bytes.Split(head, crlf) {
		lower := bytes.ToLower(line)
		if bytes.HasPrefix(lower, encodingPrefix) {
			continue
		}
		if bytes.HasPrefix(lower, lengthPrefix) {
			rebuilt.AppendString("Content-Length: " + strconv.Itoa(decompressed.Len()))
			rebuilt.Append(crlf)
			continue
		}
		rebuilt.Append(line)
		rebuilt.Append(crlf)
	}
	rebuilt.Append(crlf)
	rebuilt.Append(decompressed.Bytes())

	buf.Set(rebuilt.Bytes())
	return nil
}

// inflate runs the engine incrementally into an estimated-size buffer,
// growing the output by half its current length whenever the engine
// fills it with input still pending. The estimate is a sizing hint only.
func inflate(body []byte) (*buffer.Buffer, error) {
	estimated := EstimateSize(body)
	if estimated == 0 {
		estimated = len(body) * fallbackRatio
	}

	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	defer zr.Close()

	out := buffer.New(estimated)
	for {
		if out.Free() == 0 {
			grow := out.Len() / 2
			if grow < sizeMargin {
				grow = sizeMargin
			}
			out.EnsureFree(grow)
		}
		n, err := zr.Read(out.Tail())
		out.Advance(n)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
		}
	}
}
