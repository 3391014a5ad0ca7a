// Package dicom implements the DICOM attribute value model: typed attributes
// for every VR, their binary encoding, and the tag ordered collection that
// owns them.
package dicom

import (
	"reflect"
	"strings"
	"time"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/buffer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/uid"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

// Attribute is a single data element: a tag bound to one VR plus its values.
//
// Every representation (integers of each width, floats, strings, dates,
// UIDs) has a TryGet, Set and Append form. A VR that does not support a
// representation returns ErrInvalidType from Set/Append and false from
// TryGet. TryGet never fails loudly; when the value does not fit the target
// the truncated value is still returned alongside false.
type Attribute interface {
	Tag() tag.Tag
	VR() vr.VR
	ValueType() reflect.Type

	Count() int
	StreamLength() uint32
	IsNull() bool
	IsEmpty() bool
	SetNullValue()
	SetEmptyValue()

	Copy(copyBinary bool) Attribute
	Equal(other Attribute) bool

	Values() any
	SetValues(v any) error
	SetStringValue(s string) error
	String() string

	ByteBuffer(ts transfer.Syntax, specificCharacterSet string) (*buffer.ByteBuffer, error)
	CalculateWriteLength(ts transfer.Syntax, opts WriteOptions) uint32
	Dump(sb *strings.Builder, prefix string, opts DumpOptions)

	TryGetInt16(i int) (int16, bool)
	TryGetInt32(i int) (int32, bool)
	TryGetInt64(i int) (int64, bool)
	TryGetUInt16(i int) (uint16, bool)
	TryGetUInt32(i int) (uint32, bool)
	TryGetUInt64(i int) (uint64, bool)
	TryGetFloat32(i int) (float32, bool)
	TryGetFloat64(i int) (float64, bool)
	TryGetString(i int) (string, bool)
	TryGetDateTime(i int) (time.Time, bool)
	TryGetUID(i int) (*uid.UID, bool)

	SetInt16(i int, v int16) error
	SetInt32(i int, v int32) error
	SetInt64(i int, v int64) error
	SetUInt16(i int, v uint16) error
	SetUInt32(i int, v uint32) error
	SetUInt64(i int, v uint64) error
	SetFloat32(i int, v float32) error
	SetFloat64(i int, v float64) error
	SetString(i int, v string) error
	SetDateTime(i int, v time.Time) error
	SetUID(i int, v *uid.UID) error

	AppendInt16(v int16) error
	AppendInt32(v int32) error
	AppendInt64(v int64) error
	AppendUInt16(v uint16) error
	AppendUInt32(v uint32) error
	AppendUInt64(v uint64) error
	AppendFloat32(v float32) error
	AppendFloat64(v float64) error
	AppendString(v string) error
	AppendDateTime(v time.Time) error
	AppendUID(v *uid.UID) error

	bind(s *Settings)
}

// attribute carries identity and the owning collection's settings. Its
// methods are the unsupported defaults every VR family overrides selectively.
type attribute struct {
	tag tag.Tag
	vr  vr.VR
	ctx *Settings // owned by the collection, nil when detached
}

func newAttribute(t tag.Tag, v vr.VR) attribute {
	return attribute{tag: t, vr: v}
}

// Tag returns the attribute tag
func (a *attribute) Tag() tag.Tag { return a.tag }

// VR returns the attribute value representation
func (a *attribute) VR() vr.VR { return a.vr }

func (a *attribute) bind(s *Settings) { a.ctx = s }

func (a *attribute) settings() *Settings {
	if a.ctx != nil {
		return a.ctx
	}
	return &DefaultSettings
}

func (a *attribute) unsupported(repr string) error {
	return invalidType(a.tag, a.vr, repr)
}

func (a *attribute) indexError(i, count int) error {
	return &IndexError{Tag: a.tag, Index: i, Count: count}
}

func (a *attribute) dataError(value any, reason string) error {
	return dataError(a.tag, a.vr, value, reason)
}

func (a *attribute) TryGetInt16(int) (int16, bool) { return 0, false }
func (a *attribute) TryGetInt32(int) (int32, bool) { return 0, false }
func (a *attribute) TryGetInt64(int) (int64, bool) { return 0, false }
func (a *attribute) TryGetUInt16(int) (uint16, bool) { return 0, false }
func (a *attribute) TryGetUInt32(int) (uint32, bool) { return 0, false }
func (a *attribute) TryGetUInt64(int) (uint64, bool) { return 0, false }
func (a *attribute) TryGetFloat32(int) (float32, bool) { return 0, false }
func (a *attribute) TryGetFloat64(int) (float64, bool) { return 0, false }
func (a *attribute) TryGetString(int) (string, bool) { return "", false }
func (a *attribute) TryGetDateTime(int) (time.Time, bool) { return time.Time{}, false }
func (a *attribute) TryGetUID(int) (*uid.UID, bool) { return nil, false }
func (a *attribute) SetInt16(int, int16) error { return a.unsupported("int16") }
func (a *attribute) SetInt32(int, int32) error { return a.unsupported("int32") }
func (a *attribute) SetInt64(int, int64) error { return a.unsupported("int64") }
func (a *attribute) SetUInt16(int, uint16) error { return a.unsupported("uint16") }
func (a *attribute) SetUInt32(int, uint32) error { return a.unsupported("uint32") }
func (a *attribute) SetUInt64(int, uint64) error { return a.unsupported("uint64") }
func (a *attribute) SetFloat32(int, float32) error { return a.unsupported("float32") }
func (a *attribute) SetFloat64(int, float64) error { return a.unsupported("float64") }
func (a *attribute) SetString(int, string) error { return a.unsupported("string") }
func (a *attribute) SetDateTime(int, time.Time) error { return a.unsupported("date/time") }
func (a *attribute) SetUID(int, *uid.UID) error { return a.unsupported("uid") }
func (a *attribute) SetStringValue(string) error { return a.unsupported("string") }
func (a *attribute) AppendInt16(int16) error { return a.unsupported("int16") }
func (a *attribute) AppendInt32(int32) error { return a.unsupported("int32") }
func (a *attribute) AppendInt64(int64) error { return a.unsupported("int64") }
func (a *attribute) AppendUInt16(uint16) error { return a.unsupported("uint16") }
func (a *attribute) AppendUInt32(uint32) error { return a.unsupported("uint32") }
func (a *attribute) AppendUInt64(uint64) error { return a.unsupported("uint64") }
func (a *attribute) AppendFloat32(float32) error { return a.unsupported("float32") }
func (a *attribute) AppendFloat64(float64) error { return a.unsupported("float64") }
func (a *attribute) AppendString(string) error { return a.unsupported("string") }
func (a *attribute) AppendDateTime(time.Time) error { return a.unsupported("date/time") }
func (a *attribute) AppendUID(*uid.UID) error { return a.unsupported("uid") }

// writeLength is the encoded element size: tag, VR and length header plus
// the even value length
func writeLength(v vr.VR, ts transfer.Syntax, streamLength uint32) uint32 {
	length := 4 + streamLength
	if ts.IsExplicitVR() {
		length += 2
		if v.IsExplicitLength() {
			length += 2
		} else {
			length += 6
		}
	} else {
		length += 4
	}
	return even(length)
}

func even(n uint32) uint32 {
	return n + n%2
}

func dumpLine(sb *strings.Builder, prefix string, t tag.Tag, v vr.VR, value string, opts DumpOptions) {
	if opts.ShortenLongValues && len(value) > 64 {
		value = value[:61] + "..."
	}
	line := prefix + "[" + t.String() + "] " + string(v) + " " + t.Name() + ": " + value
	if opts.Restrict80Chars && len(line) > 80 {
		line = line[:77] + "..."
	}
	sb.WriteString(line)
	sb.WriteString("\n")
}
