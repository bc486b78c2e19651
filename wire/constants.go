package wire

// WordSize is the allocation unit of the wire encoding. All offsets and
// section lengths in pointer words are expressed in 8-byte words.
const WordSize = 8

// Limits applied to every size computation in the decoder. They bound the
// worst-case memory and CPU a hostile message can claim, independent of how
// small the actual buffer is.
const (
	// MaxMessageBytes caps every declared segment, struct, and list size.
	MaxMessageBytes = 64 << 20

	// DefaultReadLimit is the cumulative number of bytes one Reader may
	// claim to traverse before decoding fails.
	DefaultReadLimit = 64 << 20

	// DefaultDepthLimit bounds pointer recursion, including far-pointer
	// hops between segments.
	DefaultDepthLimit = 128
)

// Pointer word tags (bits 0-1 of a pointer word).
const (
	tagStruct = 0
	tagList   = 1
	tagFar    = 2
	tagOther  = 3
)

// elemSize is the 3-bit element-size tag of a list pointer (bits 32-34).
type elemSize uint8

const (
	elemVoid      elemSize = 0
	elemBit       elemSize = 1
	elemByte1     elemSize = 2
	elemByte2     elemSize = 3
	elemByte4     elemSize = 4
	elemByte8     elemSize = 5
	elemPointer   elemSize = 6
	elemComposite elemSize = 7
)

// dataBytes returns the per-element data width for fixed-width tags.
func (e elemSize) dataBytes() int {
	switch e {
	case elemByte1:
		return 1
	case elemByte2:
		return 2
	case elemByte4:
		return 4
	case elemByte8:
		return 8
	default:
		return 0
	}
}

func (e elemSize) String() string {
	switch e {
	case elemVoid:
		return "void"
	case elemBit:
		return "bit"
	case elemByte1:
		return "1-byte"
	case elemByte2:
		return "2-byte"
	case elemByte4:
		return "4-byte"
	case elemByte8:
		return "8-byte"
	case elemPointer:
		return "pointer"
	case elemComposite:
		return "composite"
	default:
		return "unknown"
	}
}
