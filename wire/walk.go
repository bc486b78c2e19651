package wire

import (
	"github.com/wippyai/capwire/errors"
	"github.com/wippyai/capwire/wire/internal/bits"
)

// NodeKind classifies one value in a schema-less walk.
type NodeKind uint8

const (
	NodeNull NodeKind = iota
	NodeStruct
	NodeVoidList
	NodeBitList
	NodeScalarList
	NodePointerList
	NodeStructList
)

func (k NodeKind) String() string {
	switch k {
	case NodeNull:
		return "null"
	case NodeStruct:
		return "struct"
	case NodeVoidList:
		return "void list"
	case NodeBitList:
		return "bit list"
	case NodeScalarList:
		return "scalar list"
	case NodePointerList:
		return "pointer list"
	case NodeStructList:
		return "struct list"
	default:
		return "unknown"
	}
}

// Node is one decoded value in a schema-less walk of a message: the
// physical shape of the data without any field semantics. Tooling uses it
// to inspect messages whose schema is unknown.
type Node struct {
	Kind NodeKind

	// Data holds the struct data section as raw words, or scalar list
	// elements zero-extended to 64 bits.
	Data []uint64

	// Children holds the struct pointer section, or the elements of a
	// pointer or composite list.
	Children []Node

	// Bools holds bit list elements.
	Bools []bool

	// Width is the scalar list element width in bytes.
	Width int

	// Count is the void list length.
	Count int
}

// Walk decodes the pointer at byte offset off in the current segment into a
// generic tree, dispatching on the actual pointer and element-size tags
// rather than a schema-declared expectation. It runs under the same budgets
// and bounds checks as typed decoding.
func (r *Reader) Walk(off int) (Node, error) {
	p, wordOff, null, restore, err := r.resolve(off)
	if err != nil {
		return Node{}, err
	}
	if null {
		return Node{Kind: NodeNull}, nil
	}
	defer restore()
	switch p.kind {
	case kindStruct:
		return r.walkStruct(p, wordOff)
	case kindList:
		return r.walkList(p, wordOff)
	default:
		return Node{}, errors.TagMismatch(errors.PhasePointer, "struct or list pointer", p.kind.String()+" pointer")
	}
}

// WalkRoot walks the message's root pointer in segment 0.
func (r *Reader) WalkRoot() (Node, error) {
	return r.Walk(0)
}

func (r *Reader) walkStruct(p pointer, wordOff int) (Node, error) {
	layout, err := r.structLayout(p, wordOff)
	if err != nil {
		return Node{}, err
	}
	release, err := r.enter(errors.PhaseStruct, int64(p.ptrCount)*WordSize+int64(p.ptrCount))
	if err != nil {
		return Node{}, err
	}
	defer release()

	n := Node{Kind: NodeStruct}
	for off := 0; off+WordSize <= layout.DataLen(); off += WordSize {
		n.Data = append(n.Data, layout.Uint64(off, 0))
	}
	for i := 0; i < layout.PtrCount(); i++ {
		child, err := r.Walk(layout.Ptr(i))
		if err != nil {
			return Node{}, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func (r *Reader) walkList(p pointer, wordOff int) (Node, error) {
	seg := r.cur()
	bodyOff := body(p, wordOff)
	if bodyOff < 0 || bodyOff > int64(seg.Len()) {
		return Node{}, errors.Truncated(errors.PhaseList,
			"list body at %d, segment %d is %d bytes", bodyOff, r.seg, seg.Len())
	}
	l := listLayout{data: seg.data, off: int(bodyOff), elem: p.elem, count: int(p.count)}

	switch l.elem {
	case elemVoid:
		release, err := r.enter(errors.PhaseList, 0)
		if err != nil {
			return Node{}, err
		}
		defer release()
		return Node{Kind: NodeVoidList, Count: l.count}, nil

	case elemBit:
		nbytes := (int64(l.count) + 7) / 8
		if err := l.span(nbytes); err != nil {
			return Node{}, err
		}
		release, err := r.enter(errors.PhaseList, nbytes)
		if err != nil {
			return Node{}, err
		}
		defer release()
		n := Node{Kind: NodeBitList, Bools: make([]bool, l.count)}
		for i := range n.Bools {
			n.Bools[i] = bits.Bit(l.data, l.off+i/8, uint(i%8))
		}
		return n, nil

	case elemByte1, elemByte2, elemByte4, elemByte8:
		width := l.elem.dataBytes()
		total := int64(l.count) * int64(width)
		if total > MaxMessageBytes {
			return Node{}, errors.Oversize(errors.PhaseList, "scalar list bytes", total, MaxMessageBytes)
		}
		if err := l.span(total); err != nil {
			return Node{}, err
		}
		release, err := r.enter(errors.PhaseList, total)
		if err != nil {
			return Node{}, err
		}
		defer release()
		n := Node{Kind: NodeScalarList, Width: width, Data: make([]uint64, l.count)}
		for i := 0; i < l.count; i++ {
			off := l.off + i*width
			switch width {
			case 1:
				n.Data[i] = uint64(bits.U8(l.data, off))
			case 2:
				n.Data[i] = uint64(bits.U16(l.data, off))
			case 4:
				n.Data[i] = uint64(bits.U32(l.data, off))
			default:
				n.Data[i] = bits.U64(l.data, off)
			}
		}
		return n, nil

	case elemPointer:
		total := int64(l.count) * WordSize
		if total > MaxMessageBytes {
			return Node{}, errors.Oversize(errors.PhaseList, "pointer list bytes", total, MaxMessageBytes)
		}
		release, err := r.enter(errors.PhaseList, total)
		if err != nil {
			return Node{}, err
		}
		defer release()
		if err := l.span(total); err != nil {
			return Node{}, err
		}
		n := Node{Kind: NodePointerList, Children: make([]Node, l.count)}
		for i := range n.Children {
			child, err := r.Walk(l.off + i*WordSize)
			if err != nil {
				return Node{}, err
			}
			n.Children[i] = child
		}
		return n, nil

	case elemComposite:
		shape, err := compositeShape(l)
		if err != nil {
			return Node{}, err
		}
		release, err := r.enter(errors.PhaseList, (int64(l.count)+1)*WordSize)
		if err != nil {
			return Node{}, err
		}
		defer release()
		n := Node{Kind: NodeStructList, Children: make([]Node, shape.itemCount)}
		for i := range n.Children {
			elem := shape.element(l, i)
			child := Node{Kind: NodeStruct}
			for off := 0; off+WordSize <= elem.DataLen(); off += WordSize {
				child.Data = append(child.Data, elem.Uint64(off, 0))
			}
			for j := 0; j < elem.PtrCount(); j++ {
				grand, err := r.Walk(elem.Ptr(j))
				if err != nil {
					return Node{}, err
				}
				child.Children = append(child.Children, grand)
			}
			n.Children[i] = child
		}
		return n, nil

	default:
		return Node{}, errors.TagMismatch(errors.PhaseList, "known element-size tag", l.elem.String())
	}
}
