package dicom

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/buffer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

// Float holds the floating point VRs FL (float32) and FD (float64)
type Float[T constraints.Float] struct {
	binaryCore[T]
}

func newFloat[T constraints.Float](t tag.Tag, v vr.VR) *Float[T] {
	bits := buffer.Size[T]() * 8
	a := &Float[T]{}
	a.binaryCore = newBinaryCore(newAttribute(t, v),
		func(s string) (T, error) {
			f, err := strconv.ParseFloat(s, bits)
			return T(f), err
		},
		func(f T) string { return strconv.FormatFloat(float64(f), 'g', -1, bits) },
	)
	return a
}

// NewFL creates a single precision float (FL) attribute
func NewFL(t tag.Tag) *Float[float32] { return newFloat[float32](t, vr.FL) }

// NewFD creates a double precision float (FD) attribute
func NewFD(t tag.Tag) *Float[float64] { return newFloat[float64](t, vr.FD) }

// Copy returns an independent copy
func (a *Float[T]) Copy(bool) Attribute {
	return &Float[T]{binaryCore: a.clone()}
}

func (a *Float[T]) single() bool {
	return buffer.Size[T]() == 4
}

// TryGetFloat32 on FD only compares against ±MaxFloat32, so values that
// would round to infinity near the limit are still reported as fitting.
func (a *Float[T]) TryGetFloat32(i int) (float32, bool) {
	v, ok := a.at(i)
	if !ok {
		return 0, false
	}
	f := float64(v)
	if a.single() {
		return float32(f), !math.IsInf(f, 0) && !math.IsNaN(f)
	}
	return float32(f), f >= -math.MaxFloat32 && f <= math.MaxFloat32
}

func (a *Float[T]) TryGetFloat64(i int) (float64, bool) {
	v, ok := a.at(i)
	if !ok {
		return 0, false
	}
	f := float64(v)
	if a.single() {
		return f, !math.IsInf(f, 0) && !math.IsNaN(f)
	}
	return f, true
}

func (a *Float[T]) SetFloat32(i int, v float32) error {
	return a.setValue(i, T(v))
}

func (a *Float[T]) SetFloat64(i int, v float64) error {
	if err := a.checkRange(v); err != nil {
		return err
	}
	return a.setValue(i, T(v))
}

func (a *Float[T]) AppendFloat32(v float32) error {
	return a.appendValue(T(v))
}

func (a *Float[T]) AppendFloat64(v float64) error {
	if err := a.checkRange(v); err != nil {
		return err
	}
	return a.appendValue(T(v))
}

// checkRange rejects finite doubles outside the float32 range for FL
func (a *Float[T]) checkRange(v float64) error {
	if a.single() && !math.IsInf(v, 0) && math.Abs(v) > math.MaxFloat32 {
		return a.dataError(v, "value out of range for "+string(a.vr))
	}
	return nil
}
