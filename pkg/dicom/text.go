package dicom

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/buffer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/charset"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

// Text holds the character VRs. Multi valued VRs keep one string per
// backslash delimited value; LT, ST, UT and UR keep the whole text as a
// single value.
//
// A null attribute (present, zero length) has count 1 and no values; an
// empty attribute (absent) has count 0 and no values.
type Text struct {
	attribute
	values []string
	count  int

	// check validates one value when value validation is enabled
	check func(string) error
	// convert accepts extra value types in SetValues
	convert func(any) ([]string, bool)
}

func newText(t tag.Tag, v vr.VR) *Text {
	return &Text{attribute: newAttribute(t, v), check: validators[v]}
}

// NewAE creates an application entity (AE) attribute
func NewAE(t tag.Tag) *Text { return newText(t, vr.AE) }

// NewAS creates an age string (AS) attribute
func NewAS(t tag.Tag) *Text { return newText(t, vr.AS) }

// NewCS creates a code string (CS) attribute
func NewCS(t tag.Tag) *Text { return newText(t, vr.CS) }

// NewLO creates a long string (LO) attribute
func NewLO(t tag.Tag) *Text { return newText(t, vr.LO) }

// NewLT creates a long text (LT) attribute
func NewLT(t tag.Tag) *Text { return newText(t, vr.LT) }

// NewPN creates a person name (PN) attribute
func NewPN(t tag.Tag) *Text { return newText(t, vr.PN) }

// NewSH creates a short string (SH) attribute
func NewSH(t tag.Tag) *Text { return newText(t, vr.SH) }

// NewST creates a short text (ST) attribute
func NewST(t tag.Tag) *Text { return newText(t, vr.ST) }

// NewUC creates an unlimited characters (UC) attribute
func NewUC(t tag.Tag) *Text { return newText(t, vr.UC) }

// NewUR creates a universal resource (UR) attribute
func NewUR(t tag.Tag) *Text { return newText(t, vr.UR) }

// NewUT creates an unlimited text (UT) attribute
func NewUT(t tag.Tag) *Text { return newText(t, vr.UT) }

func (a *Text) text() *Text { return a }

func (a *Text) ValueType() reflect.Type {
	return reflect.TypeOf([]string(nil))
}

func (a *Text) Count() int {
	return a.count
}

func (a *Text) IsNull() bool {
	return a.count == 1 && len(a.values) == 0
}

func (a *Text) IsEmpty() bool {
	return a.count == 0 && len(a.values) == 0
}

func (a *Text) SetNullValue() {
	a.values, a.count = nil, 1
}

func (a *Text) SetEmptyValue() {
	a.values, a.count = nil, 0
}

func (a *Text) set(values []string) {
	a.values, a.count = values, len(values)
	a.nullIfBlank()
}

// nullIfBlank stores a lone empty value as null, which is how it encodes
func (a *Text) nullIfBlank() {
	if len(a.values) == 0 || (len(a.values) == 1 && a.values[0] == "") {
		a.SetNullValue()
	}
}

// StreamLength is the even length of the encoded text. With a specific
// character set in effect the text is encoded to measure it.
func (a *Text) StreamLength() uint32 {
	if len(a.values) == 0 {
		return 0
	}
	s := a.String()
	n := len(s)
	if cs := a.settings().SpecificCharacterSet; cs != "" && a.vr.UsesCharacterSet() {
		n = charset.EncodedLength(s, cs)
	}
	return even(uint32(n))
}

func (a *Text) String() string {
	return strings.Join(a.values, `\`)
}

func (a *Text) split(s string) []string {
	if !a.vr.IsMultiValue() {
		return []string{s}
	}
	return strings.Split(s, `\`)
}

func (a *Text) trim(s string) string {
	cut := " \x00"
	if pad := a.vr.PadChar(); pad != 0 && pad != ' ' {
		cut += string(pad)
	}
	if !a.vr.IsMultiValue() {
		return strings.TrimRight(s, cut)
	}
	return strings.Trim(s, cut)
}

// ValidateString checks s, possibly holding several backslash delimited
// values, against the VR length limit and content rules enabled in the
// owning collection's settings
func (a *Text) ValidateString(s string) error {
	settings := a.settings()
	for _, p := range a.split(s) {
		p = strings.TrimSpace(p)
		if settings.ValidateVRLengths {
			if limit := a.vr.MaxLength(); limit > 0 && uint32(len(p)) > limit && !a.isRange(p) {
				return a.dataError(p, fmt.Sprintf("length %d exceeds %d", len(p), limit))
			}
		}
		if settings.ValidateVRValues && a.check != nil && p != "" {
			if err := a.check(p); err != nil {
				return a.dataError(p, err.Error())
			}
		}
	}
	return nil
}

func (a *Text) isRange(s string) bool {
	switch a.vr {
	case vr.DA, vr.TM, vr.DT:
		return strings.Contains(s, "-")
	}
	return false
}

// SetStringValue replaces all values with the backslash delimited s. An
// empty string sets the null value.
func (a *Text) SetStringValue(s string) error {
	if s == "" {
		a.SetNullValue()
		return nil
	}
	if err := a.ValidateString(s); err != nil {
		return err
	}
	a.set(a.split(s))
	return nil
}

// SetString writes value i; i equal to Count, or any i on a null attribute,
// appends
func (a *Text) SetString(i int, s string) error {
	if err := a.ValidateString(s); err != nil {
		return err
	}
	if i == a.count || a.IsNull() {
		return a.appendValue(s)
	}
	if i < 0 || i > a.count {
		return a.indexError(i, a.count)
	}
	a.values[i] = s
	a.nullIfBlank()
	return nil
}

func (a *Text) AppendString(s string) error {
	if err := a.ValidateString(s); err != nil {
		return err
	}
	return a.appendValue(s)
}

func (a *Text) appendValue(s string) error {
	if !a.vr.IsMultiValue() && len(a.values) > 0 {
		return a.dataError(s, string(a.vr)+" holds a single value")
	}
	a.values = append(a.values, s)
	a.count = len(a.values)
	a.nullIfBlank()
	return nil
}

func (a *Text) TryGetString(i int) (string, bool) {
	if i < 0 || i >= len(a.values) {
		return "", false
	}
	return a.values[i], true
}

// Strings returns a copy of the values
func (a *Text) Strings() []string {
	return slices.Clone(a.values)
}

func (a *Text) Values() any {
	return a.Strings()
}

// SetValues accepts nil (null), []string, string, any type the VR formats,
// and finally the fmt.Sprint form of v
func (a *Text) SetValues(v any) error {
	switch x := v.(type) {
	case nil:
		a.SetNullValue()
		return nil
	case []string:
		for _, s := range x {
			if err := a.ValidateString(s); err != nil {
				return err
			}
		}
		a.set(slices.Clone(x))
		return nil
	case string:
		return a.SetStringValue(x)
	}
	if a.convert != nil {
		if values, ok := a.convert(v); ok {
			return a.SetValues(values)
		}
	}
	return a.SetStringValue(fmt.Sprint(v))
}

// SetBuffer decodes raw value bytes, trimming padding, NUL and spaces before
// splitting
func (a *Text) SetBuffer(bb *buffer.ByteBuffer, specificCharacterSet string) error {
	s := string(bb.Bytes())
	if a.vr.UsesCharacterSet() {
		var err error
		if s, err = charset.Decode(bb.Bytes(), specificCharacterSet); err != nil {
			return fmt.Errorf("%s: %w", a.tag, err)
		}
	}
	s = a.trim(s)
	if s == "" {
		a.SetNullValue()
		return nil
	}
	a.set(a.split(s))
	return nil
}

// ByteBuffer encodes the text, through the character set when the VR uses
// one, padded to even length with the VR pad character
func (a *Text) ByteBuffer(ts transfer.Syntax, specificCharacterSet string) (*buffer.ByteBuffer, error) {
	if specificCharacterSet == "" {
		specificCharacterSet = a.settings().SpecificCharacterSet
	}
	bb := buffer.New(ts.Endian())
	s := a.String()
	if a.vr.UsesCharacterSet() {
		b, err := charset.Encode(s, specificCharacterSet)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.tag, err)
		}
		bb.Append(b)
	} else {
		bb.Append([]byte(s))
	}
	bb.PadEven(a.vr.PadChar())
	return bb, nil
}

// EncodedString is the value as it would read back after encoding
func (a *Text) EncodedString(ts transfer.Syntax, specificCharacterSet string) (string, error) {
	bb, err := a.ByteBuffer(ts, specificCharacterSet)
	if err != nil {
		return "", err
	}
	c := newText(a.tag, a.vr)
	if err := c.SetBuffer(bb, specificCharacterSet); err != nil {
		return "", err
	}
	return c.String(), nil
}

func (a *Text) CalculateWriteLength(ts transfer.Syntax, _ WriteOptions) uint32 {
	return writeLength(a.vr, ts, a.StreamLength())
}

func (a *Text) Dump(sb *strings.Builder, prefix string, opts DumpOptions) {
	dumpLine(sb, prefix, a.tag, a.vr, a.String(), opts)
}

// Equal compares values of the same VR. Null and empty both hold no values
// and compare equal.
func (a *Text) Equal(other Attribute) bool {
	o, ok := other.(interface{ text() *Text })
	if !ok {
		return false
	}
	ot := o.text()
	if a.vr != ot.vr {
		return false
	}
	if a.IsNull() && ot.IsNull() {
		return true
	}
	return slices.Equal(a.values, ot.values)
}

func (a *Text) clone() Text {
	c := *a
	c.ctx = nil
	c.values = slices.Clone(a.values)
	return c
}

// Copy returns an independent copy
func (a *Text) Copy(bool) Attribute {
	c := a.clone()
	return &c
}
