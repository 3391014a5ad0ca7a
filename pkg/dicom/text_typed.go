package dicom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/datetime"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/uid"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

// Temporal holds the DA, TM and DT VRs
type Temporal struct {
	Text
	parse  func(string) (time.Time, error)
	format func(time.Time) string
}

func newTemporal(t tag.Tag, v vr.VR, parse func(string) (time.Time, error), format func(time.Time) string) *Temporal {
	a := &Temporal{Text: *newText(t, v), parse: parse, format: format}
	a.convert = func(v any) ([]string, bool) {
		switch x := v.(type) {
		case time.Time:
			return []string{a.format(x)}, true
		case []time.Time:
			values := make([]string, len(x))
			for i, tm := range x {
				values[i] = a.format(tm)
			}
			return values, true
		}
		return nil, false
	}
	return a
}

// NewDA creates a date (DA) attribute
func NewDA(t tag.Tag) *Temporal {
	return newTemporal(t, vr.DA, datetime.ParseDA, datetime.FormatDA)
}

// NewTM creates a time (TM) attribute
func NewTM(t tag.Tag) *Temporal {
	return newTemporal(t, vr.TM, datetime.ParseTM, datetime.FormatTM)
}

// NewDT creates a date time (DT) attribute. Values outside UTC are written
// with their offset.
func NewDT(t tag.Tag) *Temporal {
	return newTemporal(t, vr.DT, datetime.ParseDT, func(v time.Time) string {
		return datetime.FormatDT(v, v.Location() != time.UTC)
	})
}

func (a *Temporal) TryGetDateTime(i int) (time.Time, bool) {
	s, ok := a.TryGetString(i)
	if !ok {
		return time.Time{}, false
	}
	v, err := a.parse(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return v, true
}

func (a *Temporal) SetDateTime(i int, v time.Time) error {
	return a.SetString(i, a.format(v))
}

func (a *Temporal) AppendDateTime(v time.Time) error {
	return a.AppendString(a.format(v))
}

// Copy returns an independent copy
func (a *Temporal) Copy(bool) Attribute {
	c := *a
	c.Text = a.clone()
	return &c
}

// UniqueIdentifier holds the UI VR
type UniqueIdentifier struct {
	Text
}

// NewUI creates a unique identifier (UI) attribute
func NewUI(t tag.Tag) *UniqueIdentifier {
	a := &UniqueIdentifier{Text: *newText(t, vr.UI)}
	a.convert = func(v any) ([]string, bool) {
		switch x := v.(type) {
		case *uid.UID:
			return []string{x.String()}, true
		case uid.UID:
			return []string{x.UID}, true
		case []*uid.UID:
			values := make([]string, len(x))
			for i, u := range x {
				values[i] = u.String()
			}
			return values, true
		}
		return nil, false
	}
	return a
}

// TryGetUID resolves value i against the registries. An empty value yields
// (nil, true); an index out of range yields (nil, false).
func (a *UniqueIdentifier) TryGetUID(i int) (*uid.UID, bool) {
	s, ok := a.TryGetString(i)
	if !ok {
		return nil, false
	}
	if s == "" {
		return nil, true
	}
	return uid.Resolve(s), true
}

func (a *UniqueIdentifier) SetUID(i int, v *uid.UID) error {
	return a.SetString(i, v.String())
}

func (a *UniqueIdentifier) AppendUID(v *uid.UID) error {
	return a.AppendString(v.String())
}

// Copy returns an independent copy
func (a *UniqueIdentifier) Copy(bool) Attribute {
	return &UniqueIdentifier{Text: a.clone()}
}

// IntegerString holds the IS VR
type IntegerString struct {
	Text
}

// NewIS creates an integer string (IS) attribute
func NewIS(t tag.Tag) *IntegerString {
	a := &IntegerString{Text: *newText(t, vr.IS)}
	a.convert = formatAny
	return a
}

func (a *IntegerString) tryGetInt(i int) (int64, bool) {
	s, ok := a.TryGetString(i)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return v, err == nil
}

func tryGetIS[D fixedInteger](a *IntegerString, i int) (D, bool) {
	v, ok := a.tryGetInt(i)
	if !ok {
		return 0, false
	}
	return narrow[D](v)
}

func (a *IntegerString) TryGetInt16(i int) (int16, bool) { return tryGetIS[int16](a, i) }
func (a *IntegerString) TryGetInt32(i int) (int32, bool) { return tryGetIS[int32](a, i) }
func (a *IntegerString) TryGetInt64(i int) (int64, bool) { return tryGetIS[int64](a, i) }
func (a *IntegerString) TryGetUInt16(i int) (uint16, bool) { return tryGetIS[uint16](a, i) }
func (a *IntegerString) TryGetUInt32(i int) (uint32, bool) { return tryGetIS[uint32](a, i) }
func (a *IntegerString) TryGetUInt64(i int) (uint64, bool) { return tryGetIS[uint64](a, i) }

func (a *IntegerString) TryGetFloat64(i int) (float64, bool) {
	v, ok := a.tryGetInt(i)
	return float64(v), ok
}

func (a *IntegerString) SetInt16(i int, v int16) error { return a.SetString(i, strconv.FormatInt(int64(v), 10)) }
func (a *IntegerString) SetInt32(i int, v int32) error { return a.SetString(i, strconv.FormatInt(int64(v), 10)) }
func (a *IntegerString) SetInt64(i int, v int64) error { return a.SetString(i, strconv.FormatInt(v, 10)) }
func (a *IntegerString) SetUInt16(i int, v uint16) error { return a.SetString(i, strconv.FormatUint(uint64(v), 10)) }
func (a *IntegerString) SetUInt32(i int, v uint32) error { return a.SetString(i, strconv.FormatUint(uint64(v), 10)) }
func (a *IntegerString) SetUInt64(i int, v uint64) error { return a.SetString(i, strconv.FormatUint(v, 10)) }
func (a *IntegerString) AppendInt16(v int16) error { return a.AppendString(strconv.FormatInt(int64(v), 10)) }
func (a *IntegerString) AppendInt32(v int32) error { return a.AppendString(strconv.FormatInt(int64(v), 10)) }
func (a *IntegerString) AppendInt64(v int64) error { return a.AppendString(strconv.FormatInt(v, 10)) }
func (a *IntegerString) AppendUInt16(v uint16) error { return a.AppendString(strconv.FormatUint(uint64(v), 10)) }
func (a *IntegerString) AppendUInt32(v uint32) error { return a.AppendString(strconv.FormatUint(uint64(v), 10)) }
func (a *IntegerString) AppendUInt64(v uint64) error { return a.AppendString(strconv.FormatUint(v, 10)) }

// Copy returns an independent copy
func (a *IntegerString) Copy(bool) Attribute {
	return &IntegerString{Text: a.clone()}
}

// DecimalString holds the DS VR
type DecimalString struct {
	Text
}

// NewDS creates a decimal string (DS) attribute
func NewDS(t tag.Tag) *DecimalString {
	a := &DecimalString{Text: *newText(t, vr.DS)}
	a.convert = formatAny
	return a
}

// FormatDS renders v in the shortest form that reads back exactly, reducing
// precision when that form exceeds the 16 character DS limit
func FormatDS(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	for p := 15; len(s) > 16 && p > 0; p-- {
		s = strconv.FormatFloat(v, 'g', p, 64)
	}
	return s
}

// FormatDS32 renders a float32 directly so it reads back bit exact
func FormatDS32(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func (a *DecimalString) TryGetFloat32(i int) (float32, bool) {
	s, ok := a.TryGetString(i)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	return float32(v), err == nil
}

func (a *DecimalString) TryGetFloat64(i int) (float64, bool) {
	s, ok := a.TryGetString(i)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

// TryGetInt64 succeeds for integral values only
func (a *DecimalString) TryGetInt64(i int) (int64, bool) {
	v, ok := a.TryGetFloat64(i)
	if !ok || v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
		return int64(v), false
	}
	return int64(v), true
}

func (a *DecimalString) TryGetInt32(i int) (int32, bool) {
	v, ok := a.TryGetInt64(i)
	if !ok {
		return int32(v), false
	}
	return narrow[int32](v)
}

func (a *DecimalString) SetFloat32(i int, v float32) error { return a.SetString(i, FormatDS32(v)) }
func (a *DecimalString) SetFloat64(i int, v float64) error { return a.SetString(i, FormatDS(v)) }
func (a *DecimalString) AppendFloat32(v float32) error { return a.AppendString(FormatDS32(v)) }
func (a *DecimalString) AppendFloat64(v float64) error { return a.AppendString(FormatDS(v)) }
func (a *DecimalString) SetInt32(i int, v int32) error { return a.SetString(i, strconv.FormatInt(int64(v), 10)) }
func (a *DecimalString) SetInt64(i int, v int64) error { return a.SetString(i, strconv.FormatInt(v, 10)) }
func (a *DecimalString) AppendInt32(v int32) error { return a.AppendString(strconv.FormatInt(int64(v), 10)) }
func (a *DecimalString) AppendInt64(v int64) error { return a.AppendString(strconv.FormatInt(v, 10)) }

// Copy returns an independent copy
func (a *DecimalString) Copy(bool) Attribute {
	return &DecimalString{Text: a.clone()}
}

// formatAny renders numeric values and slices for IS and DS
func formatAny(v any) ([]string, bool) {
	switch x := v.(type) {
	case float32:
		return []string{FormatDS32(x)}, true
	case float64:
		return []string{FormatDS(x)}, true
	case []float32:
		values := make([]string, len(x))
		for i, f := range x {
			values[i] = FormatDS32(f)
		}
		return values, true
	case []float64:
		values := make([]string, len(x))
		for i, f := range x {
			values[i] = FormatDS(f)
		}
		return values, true
	case []int:
		values := make([]string, len(x))
		for i, n := range x {
			values[i] = strconv.Itoa(n)
		}
		return values, true
	case []int32:
		values := make([]string, len(x))
		for i, n := range x {
			values[i] = strconv.FormatInt(int64(n), 10)
		}
		return values, true
	case []int64:
		values := make([]string, len(x))
		for i, n := range x {
			values[i] = strconv.FormatInt(n, 10)
		}
		return values, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return []string{fmt.Sprint(x)}, true
	}
	return nil, false
}
