package bits

import (
	"testing"
)

func TestFixedWidthReads(t *testing.T) {
	buf := []byte{0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11, 0xFF}

	if got := U8(buf, 8); got != 0xFF {
		t.Errorf("U8: got %#x", got)
	}
	if got := U16(buf, 0); got != 0x7788 {
		t.Errorf("U16: got %#x", got)
	}
	if got := U32(buf, 2); got != 0x33445566 {
		t.Errorf("U32: got %#x", got)
	}
	if got := U64(buf, 0); got != 0x1122334455667788 {
		t.Errorf("U64: got %#x", got)
	}
}

func TestBit(t *testing.T) {
	buf := []byte{0b01000001}
	if !Bit(buf, 0, 0) {
		t.Error("bit 0 should be set")
	}
	if Bit(buf, 0, 1) {
		t.Error("bit 1 should be clear")
	}
	if !Bit(buf, 0, 6) {
		t.Error("bit 6 should be set")
	}
}

func TestField(t *testing.T) {
	w := uint64(0xFEDCBA9876543210)
	tests := []struct {
		lo, width uint
		want      uint64
	}{
		{0, 4, 0x0},
		{4, 4, 0x1},
		{0, 64, w},
		{32, 16, 0xBA98},
		{35, 29, w >> 35},
		{2, 30, (w >> 2) & 0x3FFFFFFF},
	}
	for _, tt := range tests {
		if got := Field(w, tt.lo, tt.width); got != tt.want {
			t.Errorf("Field(%d, %d): got %#x, want %#x", tt.lo, tt.width, got, tt.want)
		}
	}
}

func TestSigned(t *testing.T) {
	tests := []struct {
		v     uint64
		width uint
		want  int64
	}{
		{0, 30, 0},
		{1, 30, 1},
		{0x3FFFFFFF, 30, -1}, // all 30 bits set
		{0x20000000, 30, -1 << 29},
		{0x1FFFFFFF, 30, 1<<29 - 1},
		{0x1FFFFFFF, 29, -1},
		{0xFF, 8, -1},
		{0x7F, 8, 127},
	}
	for _, tt := range tests {
		if got := Signed(tt.v, tt.width); got != tt.want {
			t.Errorf("Signed(%#x, %d): got %d, want %d", tt.v, tt.width, got, tt.want)
		}
	}
}
