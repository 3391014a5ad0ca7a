package dicom

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/buffer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

func TestUS_EncodeDecode(t *testing.T) {
	for _, ts := range []transfer.Syntax{transfer.ExplicitVRLittleEndian, transfer.ImplicitVRLittleEndian, transfer.ExplicitVRBigEndian} {
		t.Run(ts.Name(), func(t *testing.T) {
			us := NewUS(tag.SelectorUSValue)
			require.NoError(t, us.SetValues([]uint16{1, 2, 3}))

			bb, err := us.ByteBuffer(ts, "")
			require.NoError(t, err)
			assert.Equal(t, 6, bb.Len())

			a, err := NewAttributeFromBuffer(tag.SelectorUSValue, vr.US, bb, "")
			require.NoError(t, err)
			assert.Equal(t, 3, a.Count())
			v, ok := a.TryGetUInt16(1)
			assert.True(t, ok)
			assert.Equal(t, uint16(2), v)
			assert.True(t, us.Equal(a))
		})
	}
}

func TestUS_ByteOrder(t *testing.T) {
	us := NewUS(tag.SelectorUSValue)
	require.NoError(t, us.AppendUInt16(0x0102))

	le, err := us.ByteBuffer(transfer.ExplicitVRLittleEndian, "")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x01}, le.Bytes())

	be, err := us.ByteBuffer(transfer.ExplicitVRBigEndian, "")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, be.Bytes())

	// encoding never disturbs the stored values
	v, ok := us.TryGetUInt16(0)
	assert.True(t, ok)
	assert.Equal(t, uint16(0x0102), v)
}

func TestInteger_RangeRejection(t *testing.T) {
	us := NewUS(tag.SelectorUSValue)
	require.NoError(t, us.AppendUInt16(7))

	err := us.SetUInt64(0, 0x1_0000_0000)
	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
	assert.ErrorIs(t, err, ErrData)

	assert.ErrorIs(t, us.SetUInt32(0, 0x10000), ErrData)
	assert.ErrorIs(t, us.AppendInt32(-1), ErrData)
	assert.ErrorIs(t, us.AppendInt16(-1), ErrData)

	// failed writes leave the value untouched
	assert.Equal(t, 1, us.Count())
	v, ok := us.TryGetUInt16(0)
	assert.True(t, ok)
	assert.Equal(t, uint16(7), v)

	require.NoError(t, us.SetInt64(0, 65535))
	v, _ = us.TryGetUInt16(0)
	assert.Equal(t, uint16(65535), v)

	ss := NewSS(tag.SelectorSSValue)
	assert.ErrorIs(t, ss.AppendUInt16(0x8000), ErrData)
	assert.ErrorIs(t, ss.AppendInt32(-32769), ErrData)
	require.NoError(t, ss.AppendInt32(-32768))
}

func TestInteger_TryGetNarrowing(t *testing.T) {
	ss := NewSS(tag.SelectorSSValue)
	require.NoError(t, ss.SetValues([]int16{-1, 300}))

	u16, ok := ss.TryGetUInt16(0)
	assert.False(t, ok)
	assert.Equal(t, uint16(0xFFFF), u16, "truncated value is still returned")

	i64, ok := ss.TryGetInt64(0)
	assert.True(t, ok)
	assert.Equal(t, int64(-1), i64)

	u64, ok := ss.TryGetUInt64(1)
	assert.True(t, ok)
	assert.Equal(t, uint64(300), u64)

	_, ok = ss.TryGetInt16(2)
	assert.False(t, ok, "index out of range")

	ul := NewUL(tag.SelectorULValue)
	require.NoError(t, ul.AppendUInt32(0x80000000))
	_, ok = ul.TryGetInt32(0)
	assert.False(t, ok)
	i64, ok = ul.TryGetInt64(0)
	assert.True(t, ok)
	assert.Equal(t, int64(0x80000000), i64)

	assert.Equal(t, int32(-5), GetInt32(ul, 3, -5))
	assert.Equal(t, uint32(0x80000000), GetUInt32(ul, 0, 0))
}

func TestInteger_SetIndex(t *testing.T) {
	sl := NewSL(tag.SelectorSLValue)
	require.NoError(t, sl.SetInt32(0, 10), "index equal to count appends")
	require.NoError(t, sl.SetInt32(1, 20))
	require.NoError(t, sl.SetInt32(0, 11))
	assert.Equal(t, []int32{11, 20}, sl.Values())

	var idxErr *IndexError
	require.ErrorAs(t, sl.SetInt32(5, 1), &idxErr)
	assert.Equal(t, 5, idxErr.Index)
	assert.ErrorIs(t, sl.SetInt32(-1, 1), ErrIndexOutOfRange)
}

func TestBinary_Strings(t *testing.T) {
	us := NewUS(tag.SelectorUSValue)
	require.NoError(t, us.SetStringValue(`1\ 2\3`))
	assert.Equal(t, []uint16{1, 2, 3}, us.Values())
	assert.Equal(t, `1\2\3`, us.String())

	s, ok := us.TryGetString(2)
	assert.True(t, ok)
	assert.Equal(t, "3", s)

	err := us.SetStringValue(`1\x`)
	assert.ErrorIs(t, err, ErrData)
	assert.Equal(t, 3, us.Count(), "failed parse leaves values unchanged")

	assert.ErrorIs(t, us.AppendString("70000"), ErrData)
	require.NoError(t, us.AppendString("4"))
	assert.Equal(t, 4, us.Count())

	require.NoError(t, us.SetStringValue(""))
	assert.True(t, us.IsNull())
	assert.Equal(t, 1, us.Count())
	assert.Equal(t, uint32(0), us.StreamLength())
}

func TestBinary_SetValues(t *testing.T) {
	us := NewUS(tag.SelectorUSValue)

	require.NoError(t, us.SetValues(uint16(5)))
	assert.Equal(t, []uint16{5}, us.Values())

	require.NoError(t, us.SetValues(`6\7`))
	assert.Equal(t, []uint16{6, 7}, us.Values())

	require.NoError(t, us.SetValues(8), "int falls back to its text form")
	assert.Equal(t, []uint16{8}, us.Values())

	assert.ErrorIs(t, us.SetValues(1.5), ErrInvalidType)
	assert.ErrorIs(t, us.SetValues(struct{}{}), ErrInvalidType)

	src := []uint16{1, 2}
	require.NoError(t, us.SetValues(src))
	src[0] = 99
	assert.Equal(t, []uint16{1, 2}, us.Values(), "SetValues copies the slice")

	require.NoError(t, us.SetValues(nil))
	assert.True(t, us.IsNull())
}

func TestBinary_Unsupported(t *testing.T) {
	us := NewUS(tag.SelectorUSValue)
	assert.ErrorIs(t, us.AppendFloat64(1), ErrInvalidType)
	assert.ErrorIs(t, us.SetUID(0, nil), ErrInvalidType)
	_, ok := us.TryGetDateTime(0)
	assert.False(t, ok)

	ob := NewOB(tag.SelectorOBValue)
	assert.ErrorIs(t, ob.AppendInt32(1), ErrInvalidType)
	_, ok = ob.TryGetUInt16(0)
	assert.False(t, ok)
}

func TestFloat_FL(t *testing.T) {
	fl := NewFL(tag.SelectorFLValue)
	require.NoError(t, fl.AppendFloat32(1.5))
	require.NoError(t, fl.AppendFloat64(-2.25))

	v, ok := fl.TryGetFloat64(1)
	assert.True(t, ok)
	assert.Equal(t, -2.25, v)

	assert.ErrorIs(t, fl.AppendFloat64(1e39), ErrData)
	assert.Equal(t, 2, fl.Count())

	require.NoError(t, fl.AppendFloat32(float32(math.Inf(1))))
	_, ok = fl.TryGetFloat32(2)
	assert.False(t, ok)

	assert.Equal(t, `1.5\-2.25\+Inf`, fl.String())
}

func TestFloat_FDFloat32Boundary(t *testing.T) {
	fd := NewFD(tag.SelectorFDValue)
	require.NoError(t, fd.SetValues([]float64{1.25, math.MaxFloat32, 3.5e38, -math.MaxFloat32}))

	f, ok := fd.TryGetFloat32(0)
	assert.True(t, ok)
	assert.Equal(t, float32(1.25), f)

	f, ok = fd.TryGetFloat32(1)
	assert.True(t, ok)
	assert.Equal(t, float32(math.MaxFloat32), f)

	_, ok = fd.TryGetFloat32(2)
	assert.False(t, ok)

	_, ok = fd.TryGetFloat32(3)
	assert.True(t, ok)

	// values just above MaxFloat32 would round down into range, but the
	// check compares against the limit itself
	require.NoError(t, fd.SetFloat64(0, math.MaxFloat32*(1+1e-9)))
	_, ok = fd.TryGetFloat32(0)
	assert.False(t, ok)

	assert.Equal(t, float32(-1), GetFloat32(fd, 2, -1))
}

func TestFloat_RoundTripString(t *testing.T) {
	fd := NewFD(tag.SelectorFDValue)
	require.NoError(t, fd.AppendFloat64(0.1))
	s, ok := fd.TryGetString(0)
	assert.True(t, ok)
	assert.Equal(t, "0.1", s)

	fl := NewFL(tag.SelectorFLValue)
	require.NoError(t, fl.AppendFloat32(0.1))
	s, _ = fl.TryGetString(0)
	assert.Equal(t, "0.1", s)
}

func TestAT_RawBytesRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ts   transfer.Syntax
		raw  []byte
	}{
		{"little endian", transfer.ExplicitVRLittleEndian, []byte{0x28, 0x00, 0x10, 0x00, 0x20, 0x00, 0x0D, 0x00}},
		{"big endian", transfer.ExplicitVRBigEndian, []byte{0x00, 0x28, 0x00, 0x10, 0x00, 0x20, 0x00, 0x0D}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bb := buffer.FromBytes(append([]byte(nil), tt.raw...), tt.ts.Endian())
			a, err := NewAttributeFromBuffer(tag.FrameIncrementPointer, vr.AT, bb, "")
			require.NoError(t, err)

			at := a.(*Integer[uint32])
			first, ok := at.TryGetTag(0)
			assert.True(t, ok)
			assert.Equal(t, tag.Rows, first)
			second, ok := at.TryGetTag(1)
			assert.True(t, ok)
			assert.Equal(t, tag.StudyInstanceUID, second)

			out, err := a.ByteBuffer(tt.ts, "")
			require.NoError(t, err)
			assert.Equal(t, tt.raw, out.Bytes())
		})
	}
}

func TestAT_Values(t *testing.T) {
	at := NewAT(tag.DimensionIndexPointer)
	require.NoError(t, at.SetValues(tag.PixelData))
	assert.Equal(t, "7FE00010", at.String())

	require.NoError(t, at.SetStringValue(`(0028,0010)\00280011`))
	assert.Equal(t, 2, at.Count())
	got, _ := at.TryGetTag(1)
	assert.Equal(t, tag.Columns, got)

	require.NoError(t, at.SetValues([]tag.Tag{tag.Rows}))
	v, ok := at.TryGetUInt32(0)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x00280010), v)
}

func TestOther_OBOWEquality(t *testing.T) {
	ob := NewOB(tag.SelectorOBValue)
	require.NoError(t, ob.SetValues([]byte{1, 2, 3, 4}))

	ow := NewOW(tag.SelectorOWValue)
	require.NoError(t, ow.SetValues([]byte{1, 2, 3, 4}))
	assert.True(t, ob.Equal(ow))
	assert.True(t, ow.Equal(ob))

	un := NewUN(tag.New(0x0009, 0x1001))
	require.NoError(t, un.SetValues([]byte{1, 2, 3, 4}))
	assert.False(t, ob.Equal(un), "UN is not cross equal to OB")

	other := NewOB(tag.SelectorOBValue)
	require.NoError(t, other.SetValues([]byte{1, 2, 3, 5}))
	assert.False(t, ob.Equal(other))
}

func TestOther_OWWords(t *testing.T) {
	ow := NewOW(tag.SelectorOWValue)
	require.NoError(t, ow.SetValues([]uint16{0x0102, 0x0304}))
	assert.Equal(t, 4, ow.Count(), "OW counts bytes")

	le, err := ow.ByteBuffer(transfer.ExplicitVRLittleEndian, "")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x01, 0x04, 0x03}, le.Bytes())

	be, err := ow.ByteBuffer(transfer.ExplicitVRBigEndian, "")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, be.Bytes())

	back, err := NewAttributeFromBuffer(tag.SelectorOWValue, vr.OW, be, "")
	require.NoError(t, err)
	assert.True(t, ow.Equal(back))
	assert.Contains(t, ow.String(), "of length 4")
}

func TestOther_ODWidensFloat32(t *testing.T) {
	od := NewOD(tag.SelectorODValue)
	require.NoError(t, od.SetValues([]float32{0.5, 2}))
	assert.Equal(t, []float64{0.5, 2}, od.Values())
	assert.Equal(t, uint32(16), od.StreamLength())
}

func TestBinary_EvenPadding(t *testing.T) {
	ob := NewOB(tag.SelectorOBValue)
	require.NoError(t, ob.SetValues([]byte{1, 2, 3}))
	assert.Equal(t, uint32(4), ob.StreamLength())
	assert.Equal(t, 3, ob.Count())

	bb, err := ob.ByteBuffer(transfer.ExplicitVRLittleEndian, "")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 0}, bb.Bytes())
	assert.Equal(t, 3, ob.Count(), "padding is not stored")

	// explicit: tag 4 + VR 2 + reserved 2 + length 4 + value 4
	assert.Equal(t, uint32(16), ob.CalculateWriteLength(transfer.ExplicitVRLittleEndian, WriteOptions{}))
	assert.Equal(t, uint32(12), ob.CalculateWriteLength(transfer.ImplicitVRLittleEndian, WriteOptions{}))

	us := NewUS(tag.SelectorUSValue)
	require.NoError(t, us.AppendUInt16(1))
	assert.Equal(t, uint32(10), us.CalculateWriteLength(transfer.ExplicitVRLittleEndian, WriteOptions{}))
}

func writeFixture(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.bin")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestBinary_FileReferenceOddLength(t *testing.T) {
	path := writeFixture(t, []byte{0xAA, 0xBB, 0xCC, 1, 2, 3, 4, 5, 0xDD})

	ob := NewOB(tag.SelectorOBValue)
	ob.SetReference(&FileReference{Path: path, Offset: 3, Length: 5, Endian: buffer.LittleEndian})

	assert.Equal(t, 5, ob.Count())
	assert.Equal(t, uint32(6), ob.StreamLength())
	assert.False(t, ob.IsNull())
	assert.False(t, ob.IsEmpty())
	assert.Contains(t, ob.String(), "stored in file")

	bb, err := ob.ByteBuffer(transfer.ExplicitVRLittleEndian, "")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 0}, bb.Bytes())
	assert.NotNil(t, ob.Reference(), "encoding does not load the reference")

	values, err := ob.Slice()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, values)
	assert.Nil(t, ob.Reference())
	assert.Equal(t, uint32(6), ob.StreamLength())

	bb, err = ob.ByteBuffer(transfer.ExplicitVRLittleEndian, "")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 0}, bb.Bytes())
}

func TestBinary_FileReferenceLoadsOnce(t *testing.T) {
	path := writeFixture(t, []byte{0x00, 0x01, 0x00, 0x02, 0x00, 0x03})

	us := NewUS(tag.SelectorUSValue)
	us.SetReference(&FileReference{Path: path, Length: 6, Endian: buffer.BigEndian})
	assert.Equal(t, 3, us.Count())

	first, err := us.Slice()
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2, 3}, first)

	require.NoError(t, os.Remove(path))

	second, err := us.Slice()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	v, ok := us.TryGetUInt16(2)
	assert.True(t, ok)
	assert.Equal(t, uint16(3), v)
}

func TestBinary_FileReferenceMissing(t *testing.T) {
	us := NewUS(tag.SelectorUSValue)
	ref := &FileReference{Path: filepath.Join(t.TempDir(), "missing"), Length: 4, Endian: buffer.LittleEndian}
	us.SetReference(ref)

	_, err := us.Slice()
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, ok := us.TryGetUInt16(0)
	assert.False(t, ok)
	assert.Same(t, ref, us.Reference(), "a failed load keeps the reference")
	assert.Error(t, us.AppendUInt16(1))
}

func TestBinary_FileReferenceReader(t *testing.T) {
	path := writeFixture(t, []byte{9, 9, 1, 0, 2, 0})

	us := NewUS(tag.SelectorUSValue)
	us.SetReference(&FileReference{Path: path, Offset: 2, Length: 4, Endian: buffer.LittleEndian})
	r, err := us.Reader()
	require.NoError(t, err)
	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, buffer.Encode([]uint16{1, 2}, buffer.Native), raw)
	assert.NotNil(t, us.Reference(), "streaming does not load")
}

func TestBinary_FileReferenceEquality(t *testing.T) {
	path := writeFixture(t, []byte{1, 2, 3, 4})
	ref := &FileReference{Path: path, Length: 4, Endian: buffer.LittleEndian}

	a := NewOB(tag.SelectorOBValue)
	a.SetReference(ref)
	b := a.Copy(true).(*Other[byte])
	assert.Same(t, ref, b.Reference(), "copies share the file reference")
	assert.True(t, a.Equal(b))
	assert.NotNil(t, a.Reference(), "shared references compare without loading")

	c := NewOB(tag.SelectorOBValue)
	require.NoError(t, c.SetValues([]byte{1, 2, 3, 4}))
	assert.True(t, a.Equal(c))
	assert.Nil(t, a.Reference())
}

func TestBinary_CopyIsIndependent(t *testing.T) {
	us := NewUS(tag.SelectorUSValue)
	require.NoError(t, us.SetValues([]uint16{1, 2}))
	cp := us.Copy(false)
	require.NoError(t, cp.SetUInt16(0, 9))

	v, _ := us.TryGetUInt16(0)
	assert.Equal(t, uint16(1), v)
	assert.False(t, us.Equal(cp))
}

func TestBinary_NullAndEmptyEquality(t *testing.T) {
	a, b := NewUL(tag.SelectorULValue), NewUL(tag.SelectorULValue)
	assert.True(t, a.Equal(b), "both empty")

	a.SetNullValue()
	assert.False(t, a.Equal(b), "null against empty")

	b.SetNullValue()
	assert.True(t, a.Equal(b), "both null")

	require.NoError(t, b.AppendUInt32(1))
	assert.False(t, a.Equal(b))
	assert.False(t, b.Equal(NewSL(tag.SelectorSLValue)))
}
