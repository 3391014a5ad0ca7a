package dicom

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/buffer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

// FileReference locates value bytes that are still on disk
type FileReference struct {
	Path   string
	Offset int64
	Length uint32
	Endian buffer.Endian // byte order of the bytes in the file
}

func (r *FileReference) String() string {
	return fmt.Sprintf("%s@%d+%d", r.Path, r.Offset, r.Length)
}

// Referencer is implemented by attributes whose values may stay on disk
// until first use
type Referencer interface {
	Reference() *FileReference
	SetReference(ref *FileReference)
	Load() error
}

// binaryCore stores fixed width values either in memory or as a pending file
// reference. Exactly one of values and ref is in use at a time.
type binaryCore[T buffer.Numeric] struct {
	attribute
	values []T
	ref    *FileReference

	parse  func(string) (T, error)
	format func(T) string
	// encode and decode replace the plain fixed width codec (AT)
	encode func([]T, buffer.Endian) []byte
	decode func([]byte, buffer.Endian) []T
	// convert accepts extra value types in SetValues
	convert func(any) ([]T, bool)
}

func newBinaryCore[T buffer.Numeric](a attribute, parse func(string) (T, error), format func(T) string) binaryCore[T] {
	return binaryCore[T]{attribute: a, parse: parse, format: format}
}

func (b *binaryCore[T]) core() *binaryCore[T] { return b }

func (b *binaryCore[T]) size() int {
	return buffer.Size[T]()
}

func (b *binaryCore[T]) unit() int {
	return b.vr.UnitSize()
}

// ValueType returns the slice type held in memory
func (b *binaryCore[T]) ValueType() reflect.Type {
	return reflect.TypeOf([]T(nil))
}

// Count is the number of values, computed from the reference length when the
// values have not been loaded. A null attribute counts as one value.
func (b *binaryCore[T]) Count() int {
	if b.IsNull() {
		return 1
	}
	if b.ref != nil {
		return int(b.ref.Length) / b.size()
	}
	return len(b.values)
}

// StreamLength is the content length rounded up to even
func (b *binaryCore[T]) StreamLength() uint32 {
	if b.ref != nil {
		return even(b.ref.Length)
	}
	return even(uint32(len(b.values) * b.size()))
}

func (b *binaryCore[T]) IsNull() bool {
	if b.ref != nil {
		return b.ref.Length == 0
	}
	return b.values != nil && len(b.values) == 0
}

func (b *binaryCore[T]) IsEmpty() bool {
	return b.ref == nil && b.values == nil
}

func (b *binaryCore[T]) SetNullValue() {
	b.values, b.ref = []T{}, nil
}

func (b *binaryCore[T]) SetEmptyValue() {
	b.values, b.ref = nil, nil
}

// Reference returns the pending file reference, nil once loaded
func (b *binaryCore[T]) Reference() *FileReference {
	return b.ref
}

// SetReference defers the values to a byte range of a file
func (b *binaryCore[T]) SetReference(ref *FileReference) {
	b.values, b.ref = nil, ref
}

// Load reads a pending file reference into memory. Loading is done at most
// once; after it succeeds the reference is dropped.
func (b *binaryCore[T]) Load() error {
	if b.ref == nil {
		return nil
	}
	bb, err := b.readReference()
	if err != nil {
		return err
	}
	bb.SwapTo(buffer.Native, b.unit())
	b.values = b.decodeBytes(bb.Bytes(), buffer.Native)
	slog.Debug("loaded file reference", "tag", b.tag, "vr", b.vr, "ref", b.ref.String())
	b.ref = nil
	return nil
}

// readReference returns the referenced bytes in the file byte order
func (b *binaryCore[T]) readReference() (*buffer.ByteBuffer, error) {
	f, err := os.Open(b.ref.Path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", b.tag, err)
	}
	defer f.Close()
	if _, err := f.Seek(b.ref.Offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("load %s: seek %d: %w", b.tag, b.ref.Offset, err)
	}
	bb := buffer.New(b.ref.Endian)
	if err := bb.CopyFrom(f, int(b.ref.Length)); err != nil {
		return nil, fmt.Errorf("load %s: %w", b.tag, err)
	}
	return bb, nil
}

func (b *binaryCore[T]) decodeBytes(p []byte, e buffer.Endian) []T {
	if b.decode != nil {
		return b.decode(p, e)
	}
	return buffer.Decode[T](p, e)
}

func (b *binaryCore[T]) encodeValues(values []T, e buffer.Endian) []byte {
	if b.encode != nil {
		return b.encode(values, e)
	}
	return buffer.Encode(values, e)
}

// SetBuffer replaces the values with the raw content of bb
func (b *binaryCore[T]) SetBuffer(bb *buffer.ByteBuffer) {
	c := bb.Clone()
	c.SwapTo(buffer.Native, b.unit())
	if b.decode != nil {
		b.values = b.decode(c.Bytes(), buffer.Native)
	} else {
		b.values = buffer.Values[T](c)
	}
	b.ref = nil
}

// Slice returns the values, loading them first if needed
func (b *binaryCore[T]) Slice() ([]T, error) {
	if err := b.Load(); err != nil {
		return nil, err
	}
	return b.values, nil
}

// at loads and bounds checks; false on either failure
func (b *binaryCore[T]) at(i int) (T, bool) {
	var zero T
	if err := b.Load(); err != nil {
		slog.Warn("unable to load value", "tag", b.tag, "error", err)
		return zero, false
	}
	if i < 0 || i >= len(b.values) {
		return zero, false
	}
	return b.values[i], true
}

func (b *binaryCore[T]) setValue(i int, v T) error {
	if err := b.Load(); err != nil {
		return err
	}
	switch {
	case i == len(b.values):
		b.values = append(b.values, v)
	case i < 0 || i > len(b.values):
		return b.indexError(i, len(b.values))
	default:
		b.values[i] = v
	}
	return nil
}

func (b *binaryCore[T]) appendValue(v T) error {
	if err := b.Load(); err != nil {
		return err
	}
	b.values = append(b.values, v)
	return nil
}

func (b *binaryCore[T]) parseValue(s string) (T, error) {
	v, err := b.parse(strings.TrimSpace(s))
	if err != nil {
		var zero T
		return zero, b.dataError(s, err.Error())
	}
	return v, nil
}

// SetStringValue parses backslash separated values. An empty string leaves
// an empty, non nil slice.
func (b *binaryCore[T]) SetStringValue(s string) error {
	if s == "" {
		b.SetNullValue()
		return nil
	}
	parts := strings.Split(s, `\`)
	values := make([]T, 0, len(parts))
	for _, p := range parts {
		v, err := b.parseValue(p)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	b.values, b.ref = values, nil
	return nil
}

func (b *binaryCore[T]) SetString(i int, s string) error {
	v, err := b.parseValue(s)
	if err != nil {
		return err
	}
	return b.setValue(i, v)
}

func (b *binaryCore[T]) AppendString(s string) error {
	v, err := b.parseValue(s)
	if err != nil {
		return err
	}
	return b.appendValue(v)
}

func (b *binaryCore[T]) TryGetString(i int) (string, bool) {
	v, ok := b.at(i)
	if !ok {
		return "", false
	}
	return b.format(v), true
}

// Values returns the loaded []T, or nil when the reference cannot be read
func (b *binaryCore[T]) Values() any {
	values, err := b.Slice()
	if err != nil {
		slog.Warn("unable to load values", "tag", b.tag, "error", err)
		return nil
	}
	return values
}

// SetValues accepts nil (null), []T, a single T, a string, any type the VR
// converts, and finally anything whose fmt.Sprint form parses
func (b *binaryCore[T]) SetValues(v any) error {
	switch x := v.(type) {
	case nil:
		b.SetNullValue()
		return nil
	case []T:
		b.values, b.ref = slices.Clone(x), nil
		return nil
	case T:
		b.values, b.ref = []T{x}, nil
		return nil
	case string:
		return b.SetStringValue(x)
	}
	if b.convert != nil {
		if values, ok := b.convert(v); ok {
			b.values, b.ref = values, nil
			return nil
		}
	}
	var values []T
	for _, p := range strings.Split(fmt.Sprint(v), `\`) {
		x, err := b.parse(strings.TrimSpace(p))
		if err != nil {
			return b.unsupported(fmt.Sprintf("%T", v))
		}
		values = append(values, x)
	}
	b.values, b.ref = values, nil
	return nil
}

// ByteBuffer encodes the values, or the still referenced file bytes, in the
// syntax byte order padded with a zero byte to even length
func (b *binaryCore[T]) ByteBuffer(ts transfer.Syntax, _ string) (*buffer.ByteBuffer, error) {
	var bb *buffer.ByteBuffer
	if b.ref != nil {
		var err error
		if bb, err = b.readReference(); err != nil {
			return nil, err
		}
	} else {
		bb = buffer.FromBytes(b.encodeValues(b.values, buffer.Native), buffer.Native)
	}
	bb.PadEven(0)
	bb.SwapTo(ts.Endian(), b.unit())
	return bb, nil
}

// Reader streams the content in host byte order without loading a pending
// reference into the attribute
func (b *binaryCore[T]) Reader() (io.ReadCloser, error) {
	if b.ref == nil {
		return io.NopCloser(bytes.NewReader(b.encodeValues(b.values, buffer.Native))), nil
	}
	if b.ref.Endian != buffer.Native && b.unit() > 1 {
		bb, err := b.readReference()
		if err != nil {
			return nil, err
		}
		bb.SwapTo(buffer.Native, b.unit())
		return io.NopCloser(bb.Reader()), nil
	}
	f, err := os.Open(b.ref.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", b.tag, err)
	}
	return &sectionReader{
		SectionReader: io.NewSectionReader(f, b.ref.Offset, int64(b.ref.Length)),
		f:             f,
	}, nil
}

type sectionReader struct {
	*io.SectionReader
	f *os.File
}

func (s *sectionReader) Close() error {
	return s.f.Close()
}

func (b *binaryCore[T]) CalculateWriteLength(ts transfer.Syntax, _ WriteOptions) uint32 {
	return writeLength(b.vr, ts, b.StreamLength())
}

func (b *binaryCore[T]) String() string {
	if b.ref != nil {
		return fmt.Sprintf("Binary tag %s of length %d at offset %d stored in file", b.tag, b.ref.Length, b.ref.Offset)
	}
	switch b.vr {
	case vr.OW, vr.OD, vr.OF:
		return fmt.Sprintf("%s of length %d", b.tag, b.StreamLength())
	}
	parts := make([]string, len(b.values))
	for i, v := range b.values {
		parts[i] = b.format(v)
	}
	return strings.Join(parts, `\`)
}

func (b *binaryCore[T]) Dump(sb *strings.Builder, prefix string, opts DumpOptions) {
	dumpLine(sb, prefix, b.tag, b.vr, b.String(), opts)
}

// Equal compares content. OB and OW compare equal to each other; any other
// VR only matches itself.
func (b *binaryCore[T]) Equal(other Attribute) bool {
	o, ok := other.(interface{ core() *binaryCore[T] })
	if !ok {
		return false
	}
	ob := o.core()
	if b.vr != ob.vr && !(isOBOW(b.vr) && isOBOW(ob.vr)) {
		return false
	}
	switch {
	case b.IsNull() && ob.IsNull(), b.IsEmpty() && ob.IsEmpty():
		return true
	case b.IsNull() || ob.IsNull() || b.IsEmpty() || ob.IsEmpty():
		return false
	case b.ref != nil && b.ref == ob.ref:
		return true
	case b.ref == nil && ob.ref == nil && len(b.values) == len(ob.values) && &b.values[0] == &ob.values[0]:
		return true
	}
	if err := b.Load(); err != nil {
		return false
	}
	if err := ob.Load(); err != nil {
		return false
	}
	return slices.Equal(b.values, ob.values)
}

func isOBOW(v vr.VR) bool {
	return v == vr.OB || v == vr.OW
}

// clone copies the values and shares the immutable file reference. The copy
// is detached from any collection.
func (b *binaryCore[T]) clone() binaryCore[T] {
	c := *b
	c.ctx = nil
	c.values = slices.Clone(b.values)
	return c
}
