package dicom

import (
	"fmt"
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/buffer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

type fixedInteger interface {
	constraints.Integer
	buffer.Numeric
}

// Integer holds the integer VRs: AT, SL, SS, UL and US. Every integer width
// converts in and out as long as the value is exactly representable.
type Integer[T fixedInteger] struct {
	binaryCore[T]
}

// narrow converts v to D, reporting whether the value survived unchanged
func narrow[D, S constraints.Integer](v S) (D, bool) {
	d := D(v)
	return d, S(d) == v && (d < 0) == (v < 0)
}

func newInteger[T fixedInteger](t tag.Tag, v vr.VR) *Integer[T] {
	a := &Integer[T]{}
	a.binaryCore = newBinaryCore(newAttribute(t, v), parseInteger[T], formatInteger[T])
	return a
}

func parseInteger[T fixedInteger](s string) (T, error) {
	var zero T
	if zero-1 < 0 {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, err
		}
		t, ok := narrow[T](v)
		if !ok {
			return 0, fmt.Errorf("%d out of range", v)
		}
		return t, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	t, ok := narrow[T](v)
	if !ok {
		return 0, fmt.Errorf("%d out of range", v)
	}
	return t, nil
}

func formatInteger[T fixedInteger](v T) string {
	var zero T
	if zero-1 < 0 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}

// NewUS creates an unsigned short (US) attribute
func NewUS(t tag.Tag) *Integer[uint16] { return newInteger[uint16](t, vr.US) }

// NewSS creates a signed short (SS) attribute
func NewSS(t tag.Tag) *Integer[int16] { return newInteger[int16](t, vr.SS) }

// NewUL creates an unsigned long (UL) attribute
func NewUL(t tag.Tag) *Integer[uint32] { return newInteger[uint32](t, vr.UL) }

// NewSL creates a signed long (SL) attribute
func NewSL(t tag.Tag) *Integer[int32] { return newInteger[int32](t, vr.SL) }

// NewAT creates an attribute tag (AT) attribute. Each value is a tag packed
// as group<<16 | element, written group first then element with each half in
// the syntax byte order.
func NewAT(t tag.Tag) *Integer[uint32] {
	a := newInteger[uint32](t, vr.AT)
	a.parse = func(s string) (uint32, error) {
		v, err := tag.Parse(s)
		if err != nil {
			return 0, err
		}
		return v.Uint32(), nil
	}
	a.format = func(v uint32) string { return fmt.Sprintf("%08X", v) }
	a.encode = encodeAT
	a.decode = decodeAT
	a.convert = func(v any) ([]uint32, bool) {
		switch x := v.(type) {
		case tag.Tag:
			return []uint32{x.Uint32()}, true
		case []tag.Tag:
			values := make([]uint32, len(x))
			for i, tg := range x {
				values[i] = tg.Uint32()
			}
			return values, true
		}
		return nil, false
	}
	return a
}

func encodeAT(values []uint32, e buffer.Endian) []byte {
	bb := buffer.New(e)
	for _, v := range values {
		bb.WriteUint16(uint16(v >> 16))
		bb.WriteUint16(uint16(v))
	}
	return bb.Bytes()
}

func decodeAT(p []byte, e buffer.Endian) []uint32 {
	bb := buffer.FromBytes(p, e)
	values := make([]uint32, 0, len(p)/4)
	for bb.Remaining() >= 4 {
		g, _ := bb.ReadUint16()
		el, _ := bb.ReadUint16()
		values = append(values, uint32(g)<<16|uint32(el))
	}
	return values
}

// TryGetTag returns an AT value as a tag
func (a *Integer[T]) TryGetTag(i int) (tag.Tag, bool) {
	v, ok := a.TryGetUInt32(i)
	return tag.FromUint32(v), ok
}

// Copy returns an independent copy
func (a *Integer[T]) Copy(bool) Attribute {
	return &Integer[T]{binaryCore: a.clone()}
}

func (a *Integer[T]) setNarrowed(i int, ok bool, v T, raw any) error {
	if !ok {
		return a.dataError(raw, "value out of range for "+string(a.vr))
	}
	return a.setValue(i, v)
}

func (a *Integer[T]) appendNarrowed(ok bool, v T, raw any) error {
	if !ok {
		return a.dataError(raw, "value out of range for "+string(a.vr))
	}
	return a.appendValue(v)
}

func tryGet[D constraints.Integer, T fixedInteger](a *Integer[T], i int) (D, bool) {
	v, ok := a.at(i)
	if !ok {
		return 0, false
	}
	return narrow[D](v)
}

func (a *Integer[T]) TryGetInt16(i int) (int16, bool) { return tryGet[int16](a, i) }
func (a *Integer[T]) TryGetInt32(i int) (int32, bool) { return tryGet[int32](a, i) }
func (a *Integer[T]) TryGetInt64(i int) (int64, bool) { return tryGet[int64](a, i) }
func (a *Integer[T]) TryGetUInt16(i int) (uint16, bool) { return tryGet[uint16](a, i) }
func (a *Integer[T]) TryGetUInt32(i int) (uint32, bool) { return tryGet[uint32](a, i) }
func (a *Integer[T]) TryGetUInt64(i int) (uint64, bool) { return tryGet[uint64](a, i) }

func (a *Integer[T]) SetInt16(i int, v int16) error {
	x, ok := narrow[T](v)
	return a.setNarrowed(i, ok, x, v)
}

func (a *Integer[T]) SetInt32(i int, v int32) error {
	x, ok := narrow[T](v)
	return a.setNarrowed(i, ok, x, v)
}

func (a *Integer[T]) SetInt64(i int, v int64) error {
	x, ok := narrow[T](v)
	return a.setNarrowed(i, ok, x, v)
}

func (a *Integer[T]) SetUInt16(i int, v uint16) error {
	x, ok := narrow[T](v)
	return a.setNarrowed(i, ok, x, v)
}

func (a *Integer[T]) SetUInt32(i int, v uint32) error {
	x, ok := narrow[T](v)
	return a.setNarrowed(i, ok, x, v)
}

func (a *Integer[T]) SetUInt64(i int, v uint64) error {
	x, ok := narrow[T](v)
	return a.setNarrowed(i, ok, x, v)
}

func (a *Integer[T]) AppendInt16(v int16) error {
	x, ok := narrow[T](v)
	return a.appendNarrowed(ok, x, v)
}

func (a *Integer[T]) AppendInt32(v int32) error {
	x, ok := narrow[T](v)
	return a.appendNarrowed(ok, x, v)
}

func (a *Integer[T]) AppendInt64(v int64) error {
	x, ok := narrow[T](v)
	return a.appendNarrowed(ok, x, v)
}

func (a *Integer[T]) AppendUInt16(v uint16) error {
	x, ok := narrow[T](v)
	return a.appendNarrowed(ok, x, v)
}

func (a *Integer[T]) AppendUInt32(v uint32) error {
	x, ok := narrow[T](v)
	return a.appendNarrowed(ok, x, v)
}

func (a *Integer[T]) AppendUInt64(v uint64) error {
	x, ok := narrow[T](v)
	return a.appendNarrowed(ok, x, v)
}
