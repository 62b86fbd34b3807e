package buffer

import (
	"bytes"
	"testing"
)

func TestAppendGrows(t *testing.T) {
	b := New(4)
	b.AppendString("hello")
	b.Append([]byte(" world"))
	if got := b.String(); got != "hello world" {
		t.Errorf("got %q", got)
	}
	if b.Len() != 11 {
		t.Errorf("Len = %d, want 11", b.Len())
	}
	if b.Cap() < b.Len() {
		t.Errorf("Cap %d < Len %d", b.Cap(), b.Len())
	}
}

func TestEnsureFreePreservesContents(t *testing.T) {
	b := New(8)
	b.AppendString("abc")
	b.EnsureFree(1 << 16)
	if b.Free() < 1<<16 {
		t.Errorf("Free = %d, want >= %d", b.Free(), 1<<16)
	}
	if b.String() != "abc" {
		t.Errorf("contents lost: %q", b.String())
	}
}

func TestEnsureFreeNoopWhenRoomy(t *testing.T) {
	b := New(64)
	b.AppendString("x")
	before := b.Cap()
	b.EnsureFree(8)
	if b.Cap() != before {
		t.Errorf("Cap changed %d -> %d without need", before, b.Cap())
	}
}

func TestTailAdvance(t *testing.T) {
	b := New(16)
	n := copy(b.Tail(), "data")
	b.Advance(n)
	if b.String() != "data" {
		t.Errorf("got %q", b.String())
	}
	if b.Free() != 12 {
		t.Errorf("Free = %d, want 12", b.Free())
	}
}

func TestAdvanceOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New(4).Advance(5)
}

func TestSetReplacesWholesale(t *testing.T) {
	b := New(4)
	b.AppendString("old")
	b.Set([]byte("replacement"))
	if !bytes.Equal(b.Bytes(), []byte("replacement")) {
		t.Errorf("got %q", b.Bytes())
	}
}

func TestGeometricGrowth(t *testing.T) {
	b := New(16)
	b.Advance(16)
	b.EnsureFree(1)
	if b.Cap() < 32 {
		t.Errorf("Cap = %d, want at least doubled", b.Cap())
	}
}
