// Package buffer provides an endian aware byte container used to encode and
// decode attribute values.
package buffer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Endian is a byte order tag carried with encoded bytes
type Endian int

const (
	LittleEndian Endian = iota
	BigEndian
)

// Native is the byte order of the host
var Native = func() Endian {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	if b[0] == 1 {
		return LittleEndian
	}
	return BigEndian
}()

// Order reads, writes and appends primitives in one byte order
type Order interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// ByteOrder returns the encoding/binary order for the endian
func (e Endian) ByteOrder() Order {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (e Endian) String() string {
	if e == BigEndian {
		return "BigEndian"
	}
	return "LittleEndian"
}

// ByteBuffer holds bytes in a known byte order with a read cursor
type ByteBuffer struct {
	data   []byte
	endian Endian
	pos    int
}

// New creates an empty buffer
func New(endian Endian) *ByteBuffer {
	return &ByteBuffer{endian: endian}
}

// FromBytes wraps b without copying
func FromBytes(b []byte, endian Endian) *ByteBuffer {
	return &ByteBuffer{data: b, endian: endian}
}

// Endian returns the byte order of the buffered data
func (b *ByteBuffer) Endian() Endian {
	return b.endian
}

// Len returns the number of buffered bytes
func (b *ByteBuffer) Len() int {
	return len(b.data)
}

// Bytes returns the buffered bytes
func (b *ByteBuffer) Bytes() []byte {
	return b.data
}

// Clone returns an independent copy
func (b *ByteBuffer) Clone() *ByteBuffer {
	return &ByteBuffer{data: bytes.Clone(b.data), endian: b.endian}
}

// Reset clears the buffer, keeping its byte order
func (b *ByteBuffer) Reset() {
	b.data = b.data[:0]
	b.pos = 0
}

// Append adds raw bytes
func (b *ByteBuffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

// Swap reverses every unit sized word in place and flips the recorded byte
// order. A unit of 1 (or less) is a no-op.
func (b *ByteBuffer) Swap(unit int) {
	if unit > 1 {
		for i := 0; i+unit <= len(b.data); i += unit {
			w := b.data[i : i+unit]
			for l, r := 0, unit-1; l < r; l, r = l+1, r-1 {
				w[l], w[r] = w[r], w[l]
			}
		}
	}
	if b.endian == LittleEndian {
		b.endian = BigEndian
	} else {
		b.endian = LittleEndian
	}
}

// SwapTo converts the buffer to the target byte order using unit sized words
func (b *ByteBuffer) SwapTo(target Endian, unit int) {
	if b.endian != target {
		b.Swap(unit)
	}
}

// PadEven appends pad when the length is odd
func (b *ByteBuffer) PadEven(pad byte) {
	if len(b.data)%2 == 1 {
		b.data = append(b.data, pad)
	}
}

// CopyFrom reads exactly n bytes from r, appending them to the buffer
func (b *ByteBuffer) CopyFrom(r io.Reader, n int) error {
	start := len(b.data)
	b.data = append(b.data, make([]byte, n)...)
	if _, err := io.ReadFull(r, b.data[start:]); err != nil {
		b.data = b.data[:start]
		return fmt.Errorf("copy %d bytes: %w", n, err)
	}
	return nil
}

// WriteTo writes the buffered bytes to w
func (b *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.data)
	return int64(n), err
}

// Reader returns a reader over the buffered bytes
func (b *ByteBuffer) Reader() io.Reader {
	return bytes.NewReader(b.data)
}

// SetString replaces the contents with s padded to even length with pad
func (b *ByteBuffer) SetString(s string, pad byte) {
	b.data = append(b.data[:0], s...)
	b.pos = 0
	b.PadEven(pad)
}

// String returns the buffered bytes as a string
func (b *ByteBuffer) String() string {
	return string(b.data)
}

// WriteUint16 appends v in the buffer byte order
func (b *ByteBuffer) WriteUint16(v uint16) {
	b.data = b.endian.ByteOrder().AppendUint16(b.data, v)
}

// WriteUint32 appends v in the buffer byte order
func (b *ByteBuffer) WriteUint32(v uint32) {
	b.data = b.endian.ByteOrder().AppendUint32(b.data, v)
}

// WriteUint64 appends v in the buffer byte order
func (b *ByteBuffer) WriteUint64(v uint64) {
	b.data = b.endian.ByteOrder().AppendUint64(b.data, v)
}

// WriteFloat32 appends v in the buffer byte order
func (b *ByteBuffer) WriteFloat32(v float32) {
	b.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 appends v in the buffer byte order
func (b *ByteBuffer) WriteFloat64(v float64) {
	b.WriteUint64(math.Float64bits(v))
}

// Remaining returns the number of unread bytes
func (b *ByteBuffer) Remaining() int {
	return len(b.data) - b.pos
}

func (b *ByteBuffer) next(n int) ([]byte, error) {
	if b.Remaining() < n {
		return nil, io.ErrUnexpectedEOF
	}
	p := b.data[b.pos : b.pos+n]
	b.pos += n
	return p, nil
}

// ReadUint16 reads the next value in the buffer byte order
func (b *ByteBuffer) ReadUint16() (uint16, error) {
	p, err := b.next(2)
	if err != nil {
		return 0, err
	}
	return b.endian.ByteOrder().Uint16(p), nil
}

// ReadUint32 reads the next value in the buffer byte order
func (b *ByteBuffer) ReadUint32() (uint32, error) {
	p, err := b.next(4)
	if err != nil {
		return 0, err
	}
	return b.endian.ByteOrder().Uint32(p), nil
}

// ReadUint64 reads the next value in the buffer byte order
func (b *ByteBuffer) ReadUint64() (uint64, error) {
	p, err := b.next(8)
	if err != nil {
		return 0, err
	}
	return b.endian.ByteOrder().Uint64(p), nil
}

// ReadFloat32 reads the next value in the buffer byte order
func (b *ByteBuffer) ReadFloat32() (float32, error) {
	v, err := b.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads the next value in the buffer byte order
func (b *ByteBuffer) ReadFloat64() (float64, error) {
	v, err := b.ReadUint64()
	return math.Float64frombits(v), err
}

// Numeric is the set of fixed width values a buffer can hold
type Numeric interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~uint64 | ~int64 | ~float32 | ~float64
}

// Encode writes values in the given byte order
func Encode[T Numeric](values []T, endian Endian) []byte {
	var buf bytes.Buffer
	buf.Grow(binary.Size(values))
	// fixed width slices never fail to encode into a bytes.Buffer
	_ = binary.Write(&buf, endian.ByteOrder(), values)
	return buf.Bytes()
}

// Decode reads as many whole values of T as b holds. Trailing bytes that do
// not fill a value are ignored.
func Decode[T Numeric](b []byte, endian Endian) []T {
	var zero T
	size := binary.Size(zero)
	values := make([]T, len(b)/size)
	if len(values) == 0 {
		return values
	}
	_ = binary.Read(bytes.NewReader(b[:len(values)*size]), endian.ByteOrder(), values)
	return values
}

// Values decodes the buffer contents as T
func Values[T Numeric](b *ByteBuffer) []T {
	return Decode[T](b.data, b.endian)
}

// Size returns the encoded width of T in bytes
func Size[T Numeric]() int {
	var zero T
	return binary.Size(zero)
}
