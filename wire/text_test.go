package wire

import (
	"errors"
	"testing"

	caperr "github.com/wippyai/capwire/errors"
)

// textSeg lays out a list pointer at word 0 followed by the raw bytes
// padded to a word boundary.
func textSeg(raw []byte) []byte {
	body := make([]byte, (len(raw)+7)&^7)
	copy(body, raw)
	return append(seg(listWord(0, elemByte1, uint32(len(raw)))), body...)
}

func TestReadText(t *testing.T) {
	r := NewFlatReader(textSeg([]byte{'h', 'i', 0x00}))
	got, err := r.ReadText(0)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}

func TestReadTextMissingTerminator(t *testing.T) {
	r := NewFlatReader(textSeg([]byte{'h', 'i'}))
	_, err := r.ReadText(0)
	if !errors.Is(err, &caperr.Error{Phase: caperr.PhaseText, Kind: caperr.KindMalformedText}) {
		t.Errorf("got %v, want text/malformed_text", err)
	}
}

func TestReadTextEmptyList(t *testing.T) {
	// Zero-length byte list: not even a terminator.
	r := NewFlatReader(seg(listWord(0, elemByte1, 0)))
	_, err := r.ReadText(0)
	if !errors.Is(err, &caperr.Error{Phase: caperr.PhaseText, Kind: caperr.KindMalformedText}) {
		t.Errorf("got %v, want text/malformed_text", err)
	}
}

func TestReadTextOnlyTerminator(t *testing.T) {
	r := NewFlatReader(textSeg([]byte{0x00}))
	got, err := r.ReadText(0)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestReadTextNull(t *testing.T) {
	r := NewFlatReader(seg(0))
	got, err := r.ReadText(0)
	if err != nil {
		t.Fatalf("null text: %v", err)
	}
	if got != "" {
		t.Errorf("null text: got %q", got)
	}
}

func TestReadTextList(t *testing.T) {
	// Pointer list of three text values, the middle one null.
	hello := append([]byte("hello"), 0)
	world := append([]byte("world"), 0)
	helloBody := make([]byte, 8)
	copy(helloBody, hello)
	worldBody := make([]byte, 8)
	copy(worldBody, world)

	buf := seg(
		listWord(0, elemPointer, 3),
		listWord(2, elemByte1, uint32(len(hello))), // word 1 -> body at word 4
		0,
		listWord(1, elemByte1, uint32(len(world))), // word 3 -> body at word 5
	)
	buf = append(buf, helloBody...)
	buf = append(buf, worldBody...)

	r := NewFlatReader(buf)
	got, err := r.ReadTextList(0)
	if err != nil {
		t.Fatalf("ReadTextList: %v", err)
	}
	want := []string{"hello", "", "world"}
	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadTextListUnterminatedElement(t *testing.T) {
	bad := []byte("oops") // no NUL
	body := make([]byte, 8)
	copy(body, bad)
	buf := append(seg(
		listWord(0, elemPointer, 1),
		listWord(0, elemByte1, uint32(len(bad))),
	), body...)

	r := NewFlatReader(buf)
	_, err := r.ReadTextList(0)
	if !errors.Is(err, &caperr.Error{Phase: caperr.PhaseText, Kind: caperr.KindMalformedText}) {
		t.Errorf("got %v, want text/malformed_text", err)
	}
}
