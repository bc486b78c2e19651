package wire

import (
	"github.com/wippyai/capwire/errors"
	"github.com/wippyai/capwire/wire/internal/bits"
)

// Segment is a zero-copy view over one contiguous region of a message
// buffer. Segment bodies are never copied; the view aliases the buffer the
// Reader was constructed with for the Reader's whole lifetime.
type Segment struct {
	data []byte
}

// Len returns the segment length in bytes.
func (s Segment) Len() int {
	return len(s.data)
}

// Data returns the raw bytes of the segment.
func (s Segment) Data() []byte {
	return s.data
}

// splitSegments parses the multi-segment framing header and returns views
// of the segment bodies.
//
// The header is a uint32 segment count minus one, followed by one uint32
// length per segment in words, the whole header padded to a multiple of 8
// bytes. Bodies follow immediately, concatenated in declared order.
func splitSegments(buf []byte) ([]Segment, error) {
	if len(buf) < 4 {
		return nil, errors.Truncated(errors.PhaseFrame, "buffer too short for segment count (%d bytes)", len(buf))
	}
	count := uint64(bits.U32(buf, 0)) + 1

	// count+1 uint32s, padded to a word boundary.
	headerLen := (4 + 4*count + 7) &^ 7
	if headerLen > uint64(len(buf)) {
		return nil, errors.Truncated(errors.PhaseFrame, "segment table needs %d bytes, buffer is %d", headerLen, len(buf))
	}

	segs := make([]Segment, count)
	offset := headerLen
	for i := uint64(0); i < count; i++ {
		words := uint64(bits.U32(buf, int(4+4*i)))
		length := words * WordSize
		if length > MaxMessageBytes {
			return nil, errors.Oversize(errors.PhaseFrame, "segment length", int64(length), MaxMessageBytes)
		}
		if offset+length > uint64(len(buf)) {
			return nil, errors.Truncated(errors.PhaseFrame, "segment %d ends at %d, buffer is %d bytes", i, offset+length, len(buf))
		}
		segs[i] = Segment{data: buf[offset : offset+length]}
		offset += length
	}
	return segs, nil
}
