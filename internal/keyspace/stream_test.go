package keyspace

import "testing"

func fields(pairs ...string) []Field {
	out := make([]Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Field{Name: []byte(pairs[i]), Value: []byte(pairs[i+1])})
	}
	return out
}

func TestXAddExplicitID(t *testing.T) {
	ks := New()
	id, err := ks.XAdd("s", "5-5", fields("temp", "36"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "5-5" {
		t.Errorf("got %s, want 5-5", id)
	}
}

func TestXAddMonotonicity(t *testing.T) {
	ks := New()
	if _, err := ks.XAdd("s", "5-5", fields("a", "1")); err != nil {
		t.Fatalf("first XAdd: %v", err)
	}

	_, err := ks.XAdd("s", "5-5", fields("a", "1"))
	if err != ErrStreamIDTooSmall {
		t.Errorf("equal ID: got %v, want ErrStreamIDTooSmall", err)
	}

	_, err = ks.XAdd("s", "5-4", fields("a", "1"))
	if err != ErrStreamIDTooSmall {
		t.Errorf("smaller ID: got %v, want ErrStreamIDTooSmall", err)
	}

	if _, err := ks.XAdd("s", "5-6", fields("a", "1")); err != nil {
		t.Errorf("larger ID should succeed, got %v", err)
	}
}

func TestXAddZeroID(t *testing.T) {
	ks := New()
	_, err := ks.XAdd("s", "0-0", fields("a", "1"))
	if err != ErrStreamIDZero {
		t.Errorf("got %v, want ErrStreamIDZero", err)
	}
}

func TestXAddInvalidID(t *testing.T) {
	ks := New()
	_, err := ks.XAdd("s", "not-an-id", fields("a", "1"))
	if err != ErrInvalidStreamID {
		t.Errorf("got %v, want ErrInvalidStreamID", err)
	}
}

func TestXAddSeqAutoGeneration(t *testing.T) {
	ks := New()
	id1, err := ks.XAdd("s", "5-*", fields("a", "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id1.String() != "5-0" {
		t.Errorf("first auto-seq = %s, want 5-0", id1)
	}

	id2, err := ks.XAdd("s", "5-*", fields("a", "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id2.String() != "5-1" {
		t.Errorf("second auto-seq = %s, want 5-1", id2)
	}
}

func TestXAddBareStarRejected(t *testing.T) {
	ks := New()
	_, err := ks.XAdd("s", "*", fields("a", "1"))
	if err != ErrInvalidStreamID {
		t.Errorf("got %v, want ErrInvalidStreamID", err)
	}
}

func TestXAddAutoSeqOnEmptyStreamZeroMs(t *testing.T) {
	ks := New()
	id, err := ks.XAdd("t", "0-*", fields("f", "v"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "0-1" {
		t.Errorf("got %s, want 0-1", id)
	}

	id2, err := ks.XAdd("t", "0-*", fields("f", "v"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id2.String() != "0-2" {
		t.Errorf("got %s, want 0-2", id2)
	}

	id3, err := ks.XAdd("t", "1-*", fields("f", "v"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id3.String() != "1-0" {
		t.Errorf("got %s, want 1-0", id3)
	}
}

func TestStreamLen(t *testing.T) {
	ks := New()
	ks.XAdd("s", "1-1", fields("a", "1"))
	ks.XAdd("s", "2-1", fields("a", "1"))

	n, err := ks.StreamLen("s")
	if err != nil || n != 2 {
		t.Errorf("StreamLen = %d, %v, want 2, nil", n, err)
	}
}
