package wire

import (
	"github.com/wippyai/capwire/wire/internal/bits"
)

// pointerKind is the decoded classification of a pointer word.
type pointerKind uint8

const (
	kindNull pointerKind = iota
	kindStruct
	kindList
	kindFar
	kindOther
)

func (k pointerKind) String() string {
	switch k {
	case kindNull:
		return "null"
	case kindStruct:
		return "struct"
	case kindList:
		return "list"
	case kindFar:
		return "far"
	default:
		return "other"
	}
}

// pointer is a pointer word decoded once into an explicit sum over the four
// wire-level shapes. Only the fields for the decoded kind are meaningful.
// Values are transient and stack-scoped; nothing holds one across calls.
type pointer struct {
	kind pointerKind

	// Struct and list pointers: signed word offset relative to the word
	// following the pointer itself (two's complement in 30 bits).
	off int64

	// Struct pointers, and composite list tag words.
	dataWords uint16
	ptrCount  uint16

	// List pointers.
	elem  elemSize
	count uint32 // 29-bit element count (word count for composite lists)

	// Far pointers.
	farWide bool   // double-word landing pad, unsupported
	farOff  uint32 // 29-bit unsigned word offset in the target segment
	farSeg  uint32 // target segment ID
}

// parsePointer decodes a raw 64-bit pointer word. An all-zero word is the
// null reference, distinct from a zero-offset struct pointer only by the
// whole word being zero.
func parsePointer(w uint64) pointer {
	if w == 0 {
		return pointer{kind: kindNull}
	}
	switch w & 3 {
	case tagStruct:
		return pointer{
			kind:      kindStruct,
			off:       bits.Signed(bits.Field(w, 2, 30), 30),
			dataWords: uint16(bits.Field(w, 32, 16)),
			ptrCount:  uint16(bits.Field(w, 48, 16)),
		}
	case tagList:
		return pointer{
			kind:  kindList,
			off:   bits.Signed(bits.Field(w, 2, 30), 30),
			elem:  elemSize(bits.Field(w, 32, 3)),
			count: uint32(bits.Field(w, 35, 29)),
		}
	case tagFar:
		return pointer{
			kind:    kindFar,
			farWide: bits.Field(w, 2, 1) != 0,
			farOff:  uint32(bits.Field(w, 3, 29)),
			farSeg:  uint32(bits.Field(w, 32, 32)),
		}
	default:
		return pointer{kind: kindOther}
	}
}
