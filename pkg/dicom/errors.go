package dicom

import (
	"errors"
	"fmt"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

// Common errors
var (
	ErrInvalidType     = errors.New("dicom: invalid type for attribute")
	ErrInvalidVR       = errors.New("dicom: tag VR does not match attribute")
	ErrData            = errors.New("dicom: invalid attribute data")
	ErrIndexOutOfRange = errors.New("dicom: index out of range")
	ErrOutOfRangeTag   = errors.New("dicom: tag outside collection range")
	ErrTagMismatch     = errors.New("dicom: attribute tag does not match key")
)

// DataError is a value that failed VR validation or conversion
type DataError struct {
	Tag    tag.Tag
	VR     vr.VR
	Value  string
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%s %s: invalid value %q: %s", e.Tag, e.VR, e.Value, e.Reason)
}

func (e *DataError) Unwrap() error {
	return ErrData
}

// IndexError is an index outside [0, count]
type IndexError struct {
	Tag   tag.Tag
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d]", e.Tag, e.Index, e.Count)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// OutOfRangeTagError is a tag outside a collection's [start, end] bounds
type OutOfRangeTagError struct {
	Tag   tag.Tag
	Start tag.Tag
	End   tag.Tag
}

func (e *OutOfRangeTagError) Error() string {
	return fmt.Sprintf("tag %s outside collection range %s-%s", e.Tag, e.Start, e.End)
}

func (e *OutOfRangeTagError) Unwrap() error {
	return ErrOutOfRangeTag
}

func invalidType(t tag.Tag, v vr.VR, repr string) error {
	return fmt.Errorf("%w: %s %s does not support %s", ErrInvalidType, t, v, repr)
}

func dataError(t tag.Tag, v vr.VR, value any, reason string) error {
	return &DataError{Tag: t, VR: v, Value: fmt.Sprint(value), Reason: reason}
}
