package wire

import (
	"github.com/wippyai/capwire/errors"
)

// ReadText decodes the pointer at off as a text value: a 1-byte list whose
// final byte must be a NUL terminator, which is stripped from the result.
// A null pointer decodes to "" without error; a present list that is empty
// or lacks the terminator is a format error.
func (r *Reader) ReadText(off int) (string, error) {
	b, present, err := r.byteList(off)
	if err != nil {
		return "", err
	}
	if !present {
		return "", nil
	}
	if len(b) == 0 {
		return "", errors.MalformedText("text list is empty, terminator required")
	}
	if b[len(b)-1] != 0 {
		return "", errors.MalformedText("text list ends with 0x%02x, not NUL", b[len(b)-1])
	}
	return string(b[:len(b)-1]), nil
}

// ReadTextList decodes the pointer at off as a list of text values. NUL
// handling is identical to ReadText for every element; null elements decode
// to "".
func (r *Reader) ReadTextList(off int) ([]string, error) {
	return ReadPointerList(r, off, func(r *Reader, off int) (string, error) {
		return r.ReadText(off)
	})
}
