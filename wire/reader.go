package wire

import (
	"go.uber.org/zap"

	"github.com/wippyai/capwire/errors"
	"github.com/wippyai/capwire/wire/internal/bits"
)

// Reader owns the traversal state for decoding one message: the segment
// list, the currently selected segment, and the two monotonically consumed
// budgets that bound total work.
//
// A Reader is not safe for concurrent use: traversal mutates the current
// segment and the budgets as ordered state. Independent Readers over
// independent messages are fully isolated.
type Reader struct {
	segs  []Segment
	seg   int   // current segment, save/restored around far-pointer hops
	read  int64 // remaining read budget in bytes, never restored
	depth int   // remaining recursion depth, restored on exit
	log   *zap.Logger
}

// Option configures a Reader at construction.
type Option func(*Reader)

// WithReadLimit overrides the cumulative read budget in bytes.
func WithReadLimit(n int64) Option {
	return func(r *Reader) { r.read = n }
}

// WithDepthLimit overrides the recursion depth budget.
func WithDepthLimit(n int) Option {
	return func(r *Reader) { r.depth = n }
}

// WithLogger sets a logger for decode tracing.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.log = l
		}
	}
}

func newReader(segs []Segment, opts ...Option) *Reader {
	r := &Reader{
		segs:  segs,
		read:  DefaultReadLimit,
		depth: DefaultDepthLimit,
		log:   Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewReader parses the multi-segment framing header in buf and returns a
// Reader positioned at segment 0. Segment bodies are aliased, not copied;
// the caller must not mutate buf while the Reader is in use.
func NewReader(buf []byte, opts ...Option) (*Reader, error) {
	segs, err := splitSegments(buf)
	if err != nil {
		return nil, err
	}
	return newReader(segs, opts...), nil
}

// NewFlatReader treats buf as a single unframed segment.
func NewFlatReader(buf []byte, opts ...Option) *Reader {
	return newReader([]Segment{{data: buf}}, opts...)
}

// NumSegments returns the number of segments in the message.
func (r *Reader) NumSegments() int {
	return len(r.segs)
}

// Segment returns the segment with the given ID.
func (r *Reader) Segment(id int) (Segment, error) {
	if id < 0 || id >= len(r.segs) {
		return Segment{}, errors.Truncated(errors.PhasePointer, "segment %d does not exist (message has %d)", id, len(r.segs))
	}
	return r.segs[id], nil
}

// cur returns the currently selected segment.
func (r *Reader) cur() Segment {
	return r.segs[r.seg]
}

// debugf emits a trace event through the Reader's logger. The level check
// keeps the nop-logger default free of formatting cost.
func (r *Reader) debugf(format string, args ...any) {
	if r.log.Core().Enabled(zap.DebugLevel) {
		r.log.Sugar().Debugf(format, args...)
	}
}

// word reads the 64-bit pointer word at byte offset off in the current
// segment.
func (r *Reader) word(off int) (uint64, error) {
	data := r.cur().data
	if off < 0 || off+WordSize > len(data) {
		return 0, errors.Truncated(errors.PhasePointer, "pointer word at %d, segment %d is %d bytes", off, r.seg, len(data))
	}
	return bits.U64(data, off), nil
}

// enter claims one level of recursion depth and cost bytes of read budget.
// The returned func restores the depth level; read budget is the call's own
// legitimate cost and is never given back.
func (r *Reader) enter(phase errors.Phase, cost int64) (func(), error) {
	if r.depth <= 0 {
		return nil, errors.DepthExhausted(phase)
	}
	if cost > r.read {
		return nil, errors.ReadExhausted(phase, cost)
	}
	r.depth--
	r.read -= cost
	return func() { r.depth++ }, nil
}

// enterFar follows a single-word far pointer: it validates the target and
// switches the current segment. The returned func restores the previous
// segment and the depth level, and must run on every exit path.
func (r *Reader) enterFar(p pointer) (func(), error) {
	if p.farWide {
		return nil, errors.Unsupported(errors.PhasePointer, "double-far pointer")
	}
	if int(p.farSeg) >= len(r.segs) {
		return nil, errors.Truncated(errors.PhasePointer, "far pointer targets segment %d, message has %d", p.farSeg, len(r.segs))
	}
	if r.depth <= 0 {
		return nil, errors.DepthExhausted(errors.PhasePointer)
	}
	r.depth--
	prev := r.seg
	r.seg = int(p.farSeg)
	r.debugf("far hop: segment %d -> %d, word %d", prev, p.farSeg, p.farOff)
	return func() {
		r.seg = prev
		r.depth++
	}, nil
}

// body resolves a struct or list pointer's signed word offset against the
// word following the pointer itself, returning the absolute byte offset.
func body(p pointer, wordOff int) int64 {
	return int64(wordOff) + WordSize + p.off*WordSize
}

// resolve reads the pointer word at byte offset off in the current segment
// and classifies it, transparently following far pointers across segments.
// Each far hop consumes one level of depth budget, so a hostile chain of
// landing pads terminates at the depth ceiling rather than looping forever.
//
// On success (err == nil, null == false) the current segment is the one the
// pointer landed in, wordOff is the landed word's offset there, and the
// caller must run restore on every exit path once decoding under the
// pointer completes. For a null pointer or an error, any segment switches
// have already been undone and restore is nil.
func (r *Reader) resolve(off int) (p pointer, wordOff int, null bool, restore func(), err error) {
	var hops []func()
	unwind := func() {
		for i := len(hops) - 1; i >= 0; i-- {
			hops[i]()
		}
	}
	for {
		if off < 0 {
			unwind()
			return pointer{}, 0, true, nil, nil
		}
		w, rerr := r.word(off)
		if rerr != nil {
			unwind()
			return pointer{}, 0, false, nil, rerr
		}
		p = parsePointer(w)
		switch p.kind {
		case kindNull:
			unwind()
			return p, 0, true, nil, nil
		case kindFar:
			hop, herr := r.enterFar(p)
			if herr != nil {
				unwind()
				return pointer{}, 0, false, nil, herr
			}
			hops = append(hops, hop)
			off = int(p.farOff) * WordSize
		default:
			if len(hops) == 0 {
				return p, off, false, func() {}, nil
			}
			return p, off, false, unwind, nil
		}
	}
}
