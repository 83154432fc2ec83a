package keyspace

import (
	"testing"
	"time"
)

func TestSetGetString(t *testing.T) {
	ks := New()
	ks.SetString("k", []byte("v"), NoTTL)

	val, ok, err := ks.GetString("k")
	if err != nil || !ok {
		t.Fatalf("GetString: ok=%v err=%v", ok, err)
	}
	if string(val) != "v" {
		t.Errorf("got %q, want %q", val, "v")
	}
}

func TestGetStringMissing(t *testing.T) {
	ks := New()
	_, ok, err := ks.GetString("missing")
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v, want ok=false err=nil", ok, err)
	}
}

func TestStringExpiry(t *testing.T) {
	ks := New()
	ks.SetString("k", []byte("v"), time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok, err := ks.GetString("k")
	if err != nil || ok {
		t.Fatalf("expected expired key to read as missing, got ok=%v err=%v", ok, err)
	}
	if typ := ks.TypeOf("k"); typ != "none" {
		t.Errorf("TypeOf after expiry = %q, want none", typ)
	}
}

func TestTypeOf(t *testing.T) {
	ks := New()
	ks.SetString("s", []byte("v"), NoTTL)
	ks.RPush("l", [][]byte{[]byte("a")})
	ks.XAdd("x", "1-1", []Field{{Name: []byte("f"), Value: []byte("v")}})

	cases := map[string]string{"s": "string", "l": "list", "x": "stream", "nope": "none"}
	for key, want := range cases {
		if got := ks.TypeOf(key); got != want {
			t.Errorf("TypeOf(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestWrongType(t *testing.T) {
	ks := New()
	ks.SetString("k", []byte("v"), NoTTL)

	if _, err := ks.LLen("k"); err != ErrWrongType {
		t.Errorf("LLen on string key: got %v, want ErrWrongType", err)
	}
	if _, _, err := ks.GetString("k2"); err != nil {
		t.Errorf("unexpected error on fresh key: %v", err)
	}
	ks.RPush("l", [][]byte{[]byte("a")})
	if _, _, err := ks.GetString("l"); err != ErrWrongType {
		t.Errorf("GetString on list key: got %v, want ErrWrongType", err)
	}
}

func TestFlushAll(t *testing.T) {
	ks := New()
	ks.SetString("a", []byte("1"), NoTTL)
	ks.SetString("b", []byte("2"), NoTTL)
	ks.FlushAll()

	if typ := ks.TypeOf("a"); typ != "none" {
		t.Errorf("TypeOf(a) after FlushAll = %q, want none", typ)
	}
	if typ := ks.TypeOf("b"); typ != "none" {
		t.Errorf("TypeOf(b) after FlushAll = %q, want none", typ)
	}
}
