package wordcodec_test

import (
	"testing"

	"github.com/xle-project/scaffoldc/core/wordcodec"
)

func TestUintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0x7f, 0x80, 0xff, 0x1234, 0xffffffff, 0x1000_0000_0000_0001}
	w := wordcodec.NewWriter()
	for _, v := range values {
		w.PutUint(v)
	}
	r := wordcodec.NewReader(w.Bytes())
	for _, want := range values {
		got, err := r.GetUint()
		if err != nil {
			t.Fatalf("GetUint: %v", err)
		}
		if got != want {
			t.Fatalf("GetUint() = %#x, want %#x", got, want)
		}
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestIntRoundTripNegative(t *testing.T) {
	values := []int64{0, -1, 1, -128, 127, -1000000, 1000000}
	w := wordcodec.NewWriter()
	for _, v := range values {
		w.PutInt(v)
	}
	r := wordcodec.NewReader(w.Bytes())
	for _, want := range values {
		got, err := r.GetInt()
		if err != nil {
			t.Fatalf("GetInt: %v", err)
		}
		if got != want {
			t.Fatalf("GetInt() = %d, want %d", got, want)
		}
	}
}
