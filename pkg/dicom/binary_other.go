package dicom

import (
	"strconv"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/buffer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

// Other holds the bulk VRs OB, OD, OF, OL, OW and the unknown VR UN. They are
// read and written as raw values or text only.
//
// OW is held as bytes in host order words, so its Count is a byte count.
type Other[T buffer.Numeric] struct {
	binaryCore[T]
}

func newOther[T buffer.Numeric](t tag.Tag, v vr.VR, parse func(string) (T, error), format func(T) string) *Other[T] {
	a := &Other[T]{}
	a.binaryCore = newBinaryCore(newAttribute(t, v), parse, format)
	return a
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	return byte(v), err
}

func formatByte(b byte) string {
	return strconv.FormatUint(uint64(b), 10)
}

// bytesOf converts raw byte slices as well as word slices into host order
// bytes
func bytesOf(v any) ([]byte, bool) {
	switch x := v.(type) {
	case []uint16:
		return buffer.Encode(x, buffer.Native), true
	case []int16:
		return buffer.Encode(x, buffer.Native), true
	}
	return nil, false
}

// NewOB creates an other byte (OB) attribute
func NewOB(t tag.Tag) *Other[byte] {
	return newOther(t, vr.OB, parseByte, formatByte)
}

// NewUN creates an attribute of unknown VR
func NewUN(t tag.Tag) *Other[byte] {
	return newOther(t, vr.UN, parseByte, formatByte)
}

// NewOW creates an other word (OW) attribute. []uint16 and []int16 values
// are accepted by SetValues.
func NewOW(t tag.Tag) *Other[byte] {
	a := newOther(t, vr.OW, parseByte, formatByte)
	a.convert = bytesOf
	return a
}

// NewOL creates an other long (OL) attribute
func NewOL(t tag.Tag) *Other[uint32] {
	return newOther(t, vr.OL, parseInteger[uint32], formatInteger[uint32])
}

// NewOF creates an other float (OF) attribute
func NewOF(t tag.Tag) *Other[float32] {
	f := NewFL(t)
	return newOther(t, vr.OF, f.parse, f.format)
}

// NewOD creates an other double (OD) attribute. []float32 values are widened
// by SetValues.
func NewOD(t tag.Tag) *Other[float64] {
	f := NewFD(t)
	a := newOther(t, vr.OD, f.parse, f.format)
	a.convert = func(v any) ([]float64, bool) {
		x, ok := v.([]float32)
		if !ok {
			return nil, false
		}
		values := make([]float64, len(x))
		for i, v32 := range x {
			values[i] = float64(v32)
		}
		return values, true
	}
	return a
}

// Bytes returns the values in host byte order, loading a pending reference
func (a *Other[T]) Bytes() ([]byte, error) {
	values, err := a.Slice()
	if err != nil {
		return nil, err
	}
	return a.encodeValues(values, buffer.Native), nil
}

// Copy returns an independent copy
func (a *Other[T]) Copy(bool) Attribute {
	return &Other[T]{binaryCore: a.clone()}
}
