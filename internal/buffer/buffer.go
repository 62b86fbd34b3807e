package buffer

// Buffer is a growable byte buffer shaped for socket receive loops:
// reads land directly in the spare capacity through Tail/Advance, and the
// caller steers growth with EnsureFree. Growth is geometric unless the
// caller asks for more up front (e.g. a declared content length), which
// keeps reallocation count low on large responses.
type Buffer struct {
	b []byte
}

// New returns a Buffer with the given initial capacity and zero length.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{b: make([]byte, 0, capacity)}
}

func (b *Buffer) Len() int { return len(b.b) }

func (b *Buffer) Cap() int { return cap(b.b) }

// Free reports the spare capacity available without reallocating.
func (b *Buffer) Free() int { return cap(b.b) - len(b.b) }

// Bytes returns the accumulated contents. The slice is only valid until
// the next mutating call.
func (b *Buffer) Bytes() []byte { return b.b }

func (b *Buffer) String() string { return string(b.b) }

// Tail returns the writable spare capacity. After filling some prefix of
// it, call Advance with the number of bytes written.
func (b *Buffer) Tail() []byte { return b.b[len(b.b):cap(b.b)] }

// Advance extends the length by n bytes previously written into Tail.
func (b *Buffer) Advance(n int) {
	if n < 0 || n > b.Free() {
		panic("buffer: Advance out of range")
	}
	b.b = b.b[:len(b.b)+n]
}

// EnsureFree reallocates if needed so that at least n bytes of spare
// capacity are available. Existing contents are preserved.
func (b *Buffer) EnsureFree(n int) {
	if b.Free() >= n {
		return
	}
	newCap := 2 * cap(b.b)
	if newCap < len(b.b)+n {
		newCap = len(b.b) + n
	}
	grown := make([]byte, len(b.b), newCap)
	copy(grown, b.b)
	b.b = grown
}

func (b *Buffer) Append(p []byte) {
	b.EnsureFree(len(p))
	b.b = append(b.b, p...)
}

func (b *Buffer) AppendString(s string) {
	b.EnsureFree(len(s))
	b.b = append(b.b, s...)
}

// Set replaces the contents wholesale, taking ownership of p. Used when a
// consumer rebuilds the response and must swap it in atomically.
func (b *Buffer) Set(p []byte) { b.b = p }

func (b *Buffer) Reset() { b.b = b.b[:0] }
