package wire

import (
	"unsafe"

	"github.com/wippyai/capwire/errors"
	"github.com/wippyai/capwire/wire/internal/bits"
)

// Scalar enumerates the fixed-width element types a non-pointer list can
// decode into. The element width must match the list's declared size tag
// exactly; the decoder never coerces between widths.
type Scalar interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// PointerFunc decodes one element of a pointer list, given the absolute
// byte offset of the element's pointer word in the current segment.
type PointerFunc[T any] func(*Reader, int) (T, error)

// listLayout is the resolved shape of a list body in one segment.
type listLayout struct {
	data  []byte // segment bytes
	off   int    // absolute byte offset of the list body
	elem  elemSize
	count int
}

// resolveList classifies the pointer at off as a list, chasing far
// pointers. The returned restore func must run after element decoding
// completes; it is nil when null is true or err is non-nil.
func (r *Reader) resolveList(off int) (listLayout, bool, func(), error) {
	p, wordOff, null, restore, err := r.resolve(off)
	if err != nil {
		return listLayout{}, false, nil, err
	}
	if null {
		return listLayout{}, true, nil, nil
	}
	if p.kind != kindList {
		restore()
		return listLayout{}, false, nil, errors.TagMismatch(errors.PhaseList, "list pointer", p.kind.String()+" pointer")
	}
	seg := r.cur()
	bodyOff := body(p, wordOff)
	if bodyOff < 0 || bodyOff > int64(seg.Len()) {
		restore()
		return listLayout{}, false, nil, errors.Truncated(errors.PhaseList,
			"list body at %d, segment %d is %d bytes", bodyOff, r.seg, seg.Len())
	}
	return listLayout{data: seg.data, off: int(bodyOff), elem: p.elem, count: int(p.count)}, false, restore, nil
}

// span verifies that n bytes of list body lie within the segment.
func (l listLayout) span(n int64) error {
	if int64(l.off)+n > int64(len(l.data)) {
		return errors.Truncated(errors.PhaseList,
			"list body spans [%d, %d), segment is %d bytes", l.off, int64(l.off)+n, len(l.data))
	}
	return nil
}

// BitList is a lazy boolean-indexable view over a packed-bit region of a
// segment. Construction validates bounds eagerly; indexing allocates
// nothing.
type BitList struct {
	data []byte
	off  int
	n    int
}

// Len returns the number of booleans in the list.
func (b BitList) Len() int {
	return b.n
}

// At returns element i. Out-of-range indices read as false.
func (b BitList) At(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}
	return bits.Bit(b.data, b.off+i/8, uint(i%8))
}

// ReadBitList decodes the pointer at off as a list of bit-packed booleans.
// A null pointer yields the empty view.
func (r *Reader) ReadBitList(off int) (BitList, error) {
	l, null, restore, err := r.resolveList(off)
	if err != nil {
		return BitList{}, err
	}
	if null {
		return BitList{}, nil
	}
	defer restore()
	if l.elem != elemBit {
		return BitList{}, errors.TagMismatch(errors.PhaseList, "bit list", l.elem.String()+" list")
	}
	nbytes := (int64(l.count) + 7) / 8
	if err := l.span(nbytes); err != nil {
		return BitList{}, err
	}
	release, err := r.enter(errors.PhaseList, nbytes)
	if err != nil {
		return BitList{}, err
	}
	defer release()
	return BitList{data: l.data, off: l.off, n: l.count}, nil
}

// ReadScalarList decodes the pointer at off as a list of fixed-width
// scalars, materializing a freshly allocated slice with a single bulk copy.
// The declared element-size tag must match T's width exactly. A null
// pointer yields a nil slice.
//
// The bulk copy relies on the host sharing the wire's little-endian layout;
// big-endian hosts fail explicitly rather than silently mis-decode.
func ReadScalarList[T Scalar](r *Reader, off int) ([]T, error) {
	l, null, restore, err := r.resolveList(off)
	if err != nil {
		return nil, err
	}
	if null {
		return nil, nil
	}
	defer restore()
	var zero T
	width := int(unsafe.Sizeof(zero))
	if l.elem.dataBytes() != width {
		return nil, errors.TagMismatch(errors.PhaseList,
			listTagName(width), l.elem.String()+" list")
	}
	if !bits.HostLittleEndian {
		return nil, errors.Unsupported(errors.PhaseList, "scalar list byte-swap on big-endian host")
	}
	total := int64(l.count) * int64(width)
	if total > MaxMessageBytes {
		return nil, errors.Oversize(errors.PhaseList, "scalar list bytes", total, MaxMessageBytes)
	}
	if err := l.span(total); err != nil {
		return nil, err
	}
	release, err := r.enter(errors.PhaseList, total)
	if err != nil {
		return nil, err
	}
	defer release()
	out := make([]T, l.count)
	if l.count > 0 {
		dst := unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), total)
		copy(dst, l.data[l.off:int64(l.off)+total])
	}
	return out, nil
}

func listTagName(width int) string {
	switch width {
	case 1:
		return "1-byte list"
	case 2:
		return "2-byte list"
	case 4:
		return "4-byte list"
	default:
		return "8-byte list"
	}
}

// ReadPointerList decodes the pointer at off as a list of pointers,
// resolving each element through fn. The whole pointer section is charged
// against the read budget before any element decodes, so a huge declared
// count fails fast even when individual elements are cheap. A null pointer
// yields a nil slice.
func ReadPointerList[T any](r *Reader, off int, fn PointerFunc[T]) ([]T, error) {
	l, null, restore, err := r.resolveList(off)
	if err != nil {
		return nil, err
	}
	if null {
		return nil, nil
	}
	defer restore()
	if l.elem != elemPointer {
		return nil, errors.TagMismatch(errors.PhaseList, "pointer list", l.elem.String()+" list")
	}
	total := int64(l.count) * WordSize
	if total > MaxMessageBytes {
		return nil, errors.Oversize(errors.PhaseList, "pointer list bytes", total, MaxMessageBytes)
	}
	// Charge for the whole pointer section before any validation that
	// depends on the actual body, so a huge declared count fails on the
	// budget regardless of what follows the pointer.
	release, err := r.enter(errors.PhaseList, total)
	if err != nil {
		return nil, err
	}
	defer release()
	if err := l.span(total); err != nil {
		return nil, err
	}
	out := make([]T, l.count)
	for i := range out {
		out[i], err = fn(r, l.off+i*WordSize)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadStructList decodes the pointer at off as an inline composite list:
// structs stored contiguously after a single shared tag word, rather than
// as a list of pointers. fn receives each element's layout window. A null
// pointer yields a nil slice.
func ReadStructList[T any](r *Reader, off int, fn StructFunc[T]) ([]T, error) {
	l, null, restore, err := r.resolveList(off)
	if err != nil {
		return nil, err
	}
	if null {
		return nil, nil
	}
	defer restore()
	if l.elem != elemComposite {
		return nil, errors.TagMismatch(errors.PhaseList, "composite list", l.elem.String()+" list")
	}
	shape, err := compositeShape(l)
	if err != nil {
		return nil, err
	}
	release, err := r.enter(errors.PhaseList, (int64(l.count)+1)*WordSize)
	if err != nil {
		return nil, err
	}
	defer release()

	out := make([]T, shape.itemCount)
	for i := range out {
		out[i], err = fn(r, shape.element(l, i))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// composite is the shared per-element layout of an inline composite list,
// decoded from the list body's leading tag word.
type composite struct {
	itemCount int
	itemWords int
	dataLen   int // bytes
	ptrs      int
}

// element returns the layout window of element i.
func (c composite) element(l listLayout, i int) Struct {
	elemOff := l.off + WordSize + i*c.itemWords*WordSize
	return Struct{
		data:    l.data,
		dataOff: elemOff,
		dataLen: c.dataLen,
		ptrOff:  elemOff + c.dataLen,
		ptrs:    c.ptrs,
	}
}

// compositeShape validates an inline composite list body. The list
// pointer's count field declares the total word count of the element area
// excluding the tag word; the tag word is struct-shaped with the element
// count reusing the offset field position.
func compositeShape(l listLayout) (composite, error) {
	totalWords := int64(l.count)
	if totalWords*WordSize > MaxMessageBytes {
		return composite{}, errors.Oversize(errors.PhaseList, "composite list bytes", totalWords*WordSize, MaxMessageBytes)
	}
	if err := l.span((totalWords + 1) * WordSize); err != nil {
		return composite{}, err
	}
	tag := parsePointer(bits.U64(l.data, l.off))
	if tag.kind != kindStruct {
		return composite{}, errors.TagMismatch(errors.PhaseList, "struct-shaped composite tag word", tag.kind.String()+" pointer")
	}
	itemCount := tag.off
	itemWords := int64(tag.dataWords) + int64(tag.ptrCount)
	if itemWords == 0 {
		return composite{}, errors.SizeMismatch("composite element size is zero")
	}
	if itemCount < 0 || itemWords*itemCount != totalWords {
		return composite{}, errors.SizeMismatch(
			"%d elements of %d words do not reconstruct the declared %d words", itemCount, itemWords, totalWords)
	}
	return composite{
		itemCount: int(itemCount),
		itemWords: int(itemWords),
		dataLen:   int(tag.dataWords) * WordSize,
		ptrs:      int(tag.ptrCount),
	}, nil
}

// ReadVoidListLen decodes the pointer at off as a void list and returns its
// element count. Void elements occupy no bytes; only the count is encoded.
func (r *Reader) ReadVoidListLen(off int) (int, error) {
	l, null, restore, err := r.resolveList(off)
	if err != nil {
		return 0, err
	}
	if null {
		return 0, nil
	}
	defer restore()
	if l.elem != elemVoid {
		return 0, errors.TagMismatch(errors.PhaseList, "void list", l.elem.String()+" list")
	}
	release, err := r.enter(errors.PhaseList, 0)
	if err != nil {
		return 0, err
	}
	defer release()
	return l.count, nil
}

// byteList decodes a 1-byte scalar list, reporting whether the pointer was
// present. Text and data accessors share this path; only text applies NUL
// post-processing.
func (r *Reader) byteList(off int) ([]byte, bool, error) {
	l, null, restore, err := r.resolveList(off)
	if err != nil {
		return nil, false, err
	}
	if null {
		return nil, false, nil
	}
	defer restore()
	if l.elem != elemByte1 {
		return nil, false, errors.TagMismatch(errors.PhaseList, "1-byte list", l.elem.String()+" list")
	}
	total := int64(l.count)
	if total > MaxMessageBytes {
		return nil, false, errors.Oversize(errors.PhaseList, "byte list length", total, MaxMessageBytes)
	}
	if err := l.span(total); err != nil {
		return nil, false, err
	}
	release, err := r.enter(errors.PhaseList, total)
	if err != nil {
		return nil, false, err
	}
	defer release()
	out := make([]byte, l.count)
	copy(out, l.data[l.off:int64(l.off)+total])
	return out, true, nil
}

// ReadData decodes the pointer at off as an opaque byte blob. A null
// pointer yields a nil slice.
func (r *Reader) ReadData(off int) ([]byte, error) {
	b, _, err := r.byteList(off)
	return b, err
}
