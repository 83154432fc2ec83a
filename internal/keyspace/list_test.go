package keyspace

import (
	"bytes"
	"testing"
)

func bb(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func TestRPush(t *testing.T) {
	ks := New()
	n, err := ks.RPush("k", bb("a", "b", "c"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("length = %d, want 3", n)
	}

	got, err := ks.LRange("k", 0, -1)
	if err != nil {
		t.Fatalf("LRange: %v", err)
	}
	want := bb("a", "b", "c")
	assertEqualByteSlices(t, got, want)
}

// LPUSH k x y z followed by a full range read yields [z, y, x]: each
// supplied value is pushed onto the head in turn, so the last one supplied
// ends up closest to the head.
func TestLPushOrdering(t *testing.T) {
	ks := New()
	if _, err := ks.LPush("k", bb("x", "y", "z")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := ks.LRange("k", 0, -1)
	if err != nil {
		t.Fatalf("LRange: %v", err)
	}
	want := bb("z", "y", "x")
	assertEqualByteSlices(t, got, want)
}

func TestLLenMissingKey(t *testing.T) {
	ks := New()
	n, err := ks.LLen("missing")
	if err != nil || n != 0 {
		t.Fatalf("LLen(missing) = %d, %v, want 0, nil", n, err)
	}
}

func TestLRangeNegativeIndices(t *testing.T) {
	ks := New()
	ks.RPush("k", bb("a", "b", "c", "d"))

	got, err := ks.LRange("k", -2, -1)
	if err != nil {
		t.Fatalf("LRange: %v", err)
	}
	assertEqualByteSlices(t, got, bb("c", "d"))
}

func TestLRangeOutOfBounds(t *testing.T) {
	ks := New()
	ks.RPush("k", bb("a"))

	got, err := ks.LRange("k", 5, 10)
	if err != nil {
		t.Fatalf("LRange: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestLPopOneAndN(t *testing.T) {
	ks := New()
	ks.RPush("k", bb("a", "b", "c"))

	v, ok, err := ks.LPopOne("k")
	if err != nil || !ok || string(v) != "a" {
		t.Fatalf("LPopOne = %q, %v, %v", v, ok, err)
	}

	got, err := ks.LPopN("k", 10)
	if err != nil {
		t.Fatalf("LPopN: %v", err)
	}
	assertEqualByteSlices(t, got, bb("b", "c"))

	if typ := ks.TypeOf("k"); typ != "none" {
		t.Errorf("TypeOf after draining list = %q, want none", typ)
	}
}

func TestLPopOneEmptyKey(t *testing.T) {
	ks := New()
	_, ok, err := ks.LPopOne("missing")
	if err != nil || ok {
		t.Fatalf("LPopOne(missing) = ok=%v err=%v, want false, nil", ok, err)
	}
}

func assertEqualByteSlices(t *testing.T, got, want [][]byte) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d elements, want %d: %v vs %v", len(got), len(want), got, want)
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Errorf("element %d = %q, want %q", i, got[i], want[i])
		}
	}
}
