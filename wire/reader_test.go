package wire

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	caperr "github.com/wippyai/capwire/errors"
)

func TestFarPointerRoundTrip(t *testing.T) {
	// Segment 0's root is a far pointer into segment 1 at word 2, where a
	// struct with one data word lives. It must decode identically to the
	// same struct inlined as the root of a flat message.
	value := uint64(0x0102030405060708)
	framed := frame(
		seg(farWord(1, 2)),
		seg(0, 0, structWord(0, 1, 0), value),
	)
	flat := seg(structWord(0, 1, 0), value)

	readValue := func(r *Reader) uint64 {
		t.Helper()
		got, err := ReadRoot(r, func(_ *Reader, s Struct) (uint64, error) {
			return s.Uint64(0, 0), nil
		})
		if err != nil {
			t.Fatalf("ReadRoot: %v", err)
		}
		return got
	}

	fr, err := NewReader(framed)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if got, want := readValue(fr), readValue(NewFlatReader(flat)); got != want {
		t.Errorf("far decode: got %#x, inline decode: %#x", got, want)
	}
}

func TestFarPointerRestoresSegment(t *testing.T) {
	r, err := NewReader(frame(
		seg(farWord(1, 0)),
		seg(structWord(0, 1, 0), 1),
	))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := ReadRoot(r, identity); err != nil {
		t.Fatalf("ReadRoot: %v", err)
	}
	if r.seg != 0 {
		t.Errorf("current segment after decode: got %d, want 0", r.seg)
	}
}

func TestFarPointerRestoresSegmentOnError(t *testing.T) {
	// The landed struct pointer walks out of bounds; the segment switch
	// must still be undone on the error path.
	r, err := NewReader(frame(
		seg(farWord(1, 0)),
		seg(structWord(100, 1, 0)),
	))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := ReadRoot(r, identity); err == nil {
		t.Fatal("expected bounds error")
	}
	if r.seg != 0 {
		t.Errorf("current segment after failed decode: got %d, want 0", r.seg)
	}
}

func TestFarPointerChainDepthCeiling(t *testing.T) {
	// A chain of far pointers hopping within one segment: word i points at
	// word i+1, terminating in a struct pointer. Each hop costs one depth
	// level, the final struct costs one more.
	const hops = 10
	words := make([]uint64, hops+2)
	for i := 0; i < hops; i++ {
		words[i] = farWord(0, uint32(i+1))
	}
	words[hops] = structWord(0, 1, 0)
	body := seg(words...)

	// One level short: fails at exactly the ceiling.
	r := NewFlatReader(body, WithDepthLimit(hops))
	_, err := ReadRoot(r, identity)
	if !errors.Is(err, &caperr.Error{Phase: caperr.PhaseStruct, Kind: caperr.KindBudget}) {
		t.Errorf("at ceiling: got %v, want struct/budget", err)
	}

	// Exactly enough depth succeeds.
	r = NewFlatReader(body, WithDepthLimit(hops+1))
	if _, err := ReadRoot(r, identity); err != nil {
		t.Errorf("one above ceiling: %v", err)
	}
	if r.depth != hops+1 {
		t.Errorf("depth not restored: got %d, want %d", r.depth, hops+1)
	}
}

func TestFarPointerLoopTerminates(t *testing.T) {
	// Two far pointers referencing each other would loop forever without
	// the depth budget.
	r, err := NewReader(frame(
		seg(farWord(1, 0)),
		seg(farWord(0, 0)),
	))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	_, err = ReadRoot(r, identity)
	if !errors.Is(err, &caperr.Error{Phase: caperr.PhasePointer, Kind: caperr.KindBudget}) {
		t.Errorf("got %v, want pointer/budget", err)
	}
}

func TestDoubleFarPointerUnsupported(t *testing.T) {
	r, err := NewReader(frame(
		seg(farWideWord(1, 0)),
		seg(0, 0),
	))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	_, err = ReadRoot(r, identity)
	if !errors.Is(err, &caperr.Error{Phase: caperr.PhasePointer, Kind: caperr.KindUnsupported}) {
		t.Errorf("got %v, want pointer/unsupported", err)
	}
}

func TestFarPointerBadSegment(t *testing.T) {
	r := NewFlatReader(seg(farWord(5, 0)))
	_, err := ReadRoot(r, identity)
	if !errors.Is(err, &caperr.Error{Phase: caperr.PhasePointer, Kind: caperr.KindTruncated}) {
		t.Errorf("got %v, want pointer/truncated", err)
	}
}

func TestReadLimitEnforced(t *testing.T) {
	// A struct with 8 pointers costs 8*8+8 = 72 read units.
	words := make([]uint64, 9)
	words[0] = structWord(0, 0, 8)
	r := NewFlatReader(seg(words...), WithReadLimit(71))
	_, err := ReadRoot(r, identity)
	if !errors.Is(err, &caperr.Error{Phase: caperr.PhaseStruct, Kind: caperr.KindBudget}) {
		t.Errorf("got %v, want struct/budget", err)
	}
}

func TestReadBudgetNotRestored(t *testing.T) {
	// Budgets are consumed for the whole decode session; two sequential
	// decodes accumulate cost.
	body := seg(structWord(0, 0, 1), 0)
	r := NewFlatReader(body)
	before := r.read
	for i := 0; i < 2; i++ {
		if _, err := ReadRoot(r, identity); err != nil {
			t.Fatalf("decode %d: %v", i, err)
		}
	}
	if before-r.read != 2*(WordSize+1) {
		t.Errorf("cumulative charge: got %d, want %d", before-r.read, 2*(WordSize+1))
	}
}

func TestWithLoggerTracesFarHops(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r, err := NewReader(frame(
		seg(farWord(1, 0)),
		seg(structWord(0, 1, 0), 1),
	), WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := ReadRoot(r, identity); err != nil {
		t.Fatalf("ReadRoot: %v", err)
	}
	if logs.FilterMessageSnippet("far hop").Len() == 0 {
		t.Error("far hop not traced through the configured logger")
	}
}

func TestSegmentAccessor(t *testing.T) {
	r, err := NewReader(frame(seg(1), seg(2, 3)))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.NumSegments() != 2 {
		t.Fatalf("NumSegments: got %d, want 2", r.NumSegments())
	}
	s, err := r.Segment(1)
	if err != nil {
		t.Fatalf("Segment(1): %v", err)
	}
	if s.Len() != 16 {
		t.Errorf("segment 1 length: got %d, want 16", s.Len())
	}
	if _, err := r.Segment(2); err == nil {
		t.Error("Segment(2): expected error")
	}
}
