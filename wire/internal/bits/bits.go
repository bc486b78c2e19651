// Package bits provides fixed-width little-endian reads and bit-field
// extraction over byte buffers. Callers are responsible for bounds checks;
// these functions assume the requested range is in bounds.
package bits

import "encoding/binary"

// U8 reads a byte at off.
func U8(b []byte, off int) uint8 {
	return b[off]
}

// U16 reads a little-endian uint16 at off.
func U16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off:])
}

// U32 reads a little-endian uint32 at off.
func U32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}

// U64 reads a little-endian uint64 at off.
func U64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off:])
}

// Bit reads bit number bit (0 = least significant) of the byte at off.
func Bit(b []byte, off int, bit uint) bool {
	return (b[off]>>bit)&1 != 0
}

// Field extracts width bits of w starting at bit lo (0 = least significant).
func Field(w uint64, lo, width uint) uint64 {
	return (w >> lo) & (1<<width - 1)
}

// Signed reinterprets a width-bit field as two's complement.
func Signed(v uint64, width uint) int64 {
	if v&(1<<(width-1)) != 0 {
		return int64(v&(1<<(width-1)-1)) - int64(1)<<(width-1)
	}
	return int64(v)
}

// HostLittleEndian reports whether the host stores integers little-endian.
// Scalar list bulk copies are only implemented for little-endian hosts.
var HostLittleEndian = binary.NativeEndian.Uint16([]byte{0x01, 0x02}) == 0x0201
