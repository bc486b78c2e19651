package wire

import (
	"encoding/binary"
)

// Test helpers for composing raw messages word by word.

// structWord encodes a struct pointer: signed word offset to the data
// section, data word count, pointer word count.
func structWord(off int32, dataWords, ptrs uint16) uint64 {
	return uint64(tagStruct) | uint64(uint32(off)<<2) | uint64(dataWords)<<32 | uint64(ptrs)<<48
}

// listWord encodes a list pointer: signed word offset to the body, element
// size tag, element count (word count for composite lists).
func listWord(off int32, elem elemSize, count uint32) uint64 {
	return uint64(tagList) | uint64(uint32(off)<<2) | uint64(elem)<<32 | uint64(count)<<35
}

// farWord encodes a single-word far pointer to a word offset in another
// segment.
func farWord(seg, wordOff uint32) uint64 {
	return uint64(tagFar) | uint64(wordOff)<<3 | uint64(seg)<<32
}

// farWideWord encodes a double-word far pointer (unsupported by the
// decoder).
func farWideWord(seg, wordOff uint32) uint64 {
	return farWord(seg, wordOff) | 4
}

// seg lays out words as a little-endian byte buffer.
func seg(words ...uint64) []byte {
	buf := make([]byte, len(words)*WordSize)
	for i, w := range words {
		binary.LittleEndian.PutUint64(buf[i*WordSize:], w)
	}
	return buf
}

// frame prepends the multi-segment header to the given segment bodies.
func frame(segs ...[]byte) []byte {
	header := make([]byte, 4+4*len(segs))
	binary.LittleEndian.PutUint32(header, uint32(len(segs)-1))
	for i, s := range segs {
		binary.LittleEndian.PutUint32(header[4+4*i:], uint32(len(s)/WordSize))
	}
	for len(header)%WordSize != 0 {
		header = append(header, 0)
	}
	out := header
	for _, s := range segs {
		out = append(out, s...)
	}
	return out
}
