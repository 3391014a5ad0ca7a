package dicom

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
)

func encode(t *testing.T, c *Collection, ts transfer.Syntax, opts WriteOptions) []byte {
	t.Helper()
	var buf bytes.Buffer
	n, err := EncodeCollection(&buf, c, ts, opts)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	return buf.Bytes()
}

func TestEncode_ElementHeaders(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.SetValue(tag.PatientID, "AB"))

	tests := []struct {
		name string
		ts   transfer.Syntax
		want []byte
	}{
		{"explicit little", transfer.ExplicitVRLittleEndian, []byte{0x10, 0x00, 0x20, 0x00, 'L', 'O', 0x02, 0x00, 'A', 'B'}},
		{"implicit little", transfer.ImplicitVRLittleEndian, []byte{0x10, 0x00, 0x20, 0x00, 0x02, 0x00, 0x00, 0x00, 'A', 'B'}},
		{"explicit big", transfer.ExplicitVRBigEndian, []byte{0x00, 0x10, 0x00, 0x20, 'L', 'O', 0x00, 0x02, 'A', 'B'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encode(t, c, tt.ts, WriteOptions{}))
		})
	}
}

func TestEncode_BinaryValues(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.SetValue(tag.Rows, uint16(0x0102)))
	require.NoError(t, c.SetValue(tag.SelectorOBValue, []byte{1, 2}))

	assert.Equal(t, []byte{
		0x28, 0x00, 0x10, 0x00, 'U', 'S', 0x02, 0x00, 0x02, 0x01,
		0x72, 0x00, 0x65, 0x00, 'O', 'B', 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 1, 2,
	}, encode(t, c, transfer.ExplicitVRLittleEndian, WriteOptions{}))

	assert.Equal(t, []byte{
		0x00, 0x28, 0x00, 0x10, 'U', 'S', 0x00, 0x02, 0x01, 0x02,
		0x00, 0x72, 0x00, 0x65, 'O', 'B', 0x00, 0x00, 0x00, 0x00, 0x00, 0x02, 1, 2,
	}, encode(t, c, transfer.ExplicitVRBigEndian, WriteOptions{}))
}

func TestEncode_SkipsEmptyWritesNull(t *testing.T) {
	c := NewCollection()
	_, err := c.Get(tag.StudyDate)
	require.NoError(t, err)
	pn, err := c.Get(tag.PatientName)
	require.NoError(t, err)
	pn.SetNullValue()

	got := encode(t, c, transfer.ExplicitVRLittleEndian, WriteOptions{})
	assert.Equal(t, []byte{0x10, 0x00, 0x10, 0x00, 'P', 'N', 0x00, 0x00}, got)
}

func TestEncode_GroupLengths(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.SetValue(tag.PatientName, "X"))
	require.NoError(t, c.SetValue(tag.PatientID, "AB"))
	require.NoError(t, c.SetValue(tag.New(0x0010, 0x0000), uint32(1234)))

	opts := WriteOptions{WriteGroupLengths: true}
	got := encode(t, c, transfer.ExplicitVRLittleEndian, opts)
	require.Len(t, got, 32)
	assert.Equal(t, []byte{0x10, 0x00, 0x00, 0x00, 'U', 'L', 0x04, 0x00, 20, 0x00, 0x00, 0x00}, got[:12])
	assert.Equal(t, []byte{0x10, 0x00, 0x10, 0x00, 'P', 'N', 0x02, 0x00, 'X', ' '}, got[12:22])

	without := encode(t, c, transfer.ExplicitVRLittleEndian, WriteOptions{})
	assert.Len(t, without, 20, "stored group lengths are never written")
}

func referencedImages(t *testing.T) *Collection {
	t.Helper()
	c := NewCollection()
	sq := NewSQ(tag.ReferencedImageSequence)
	require.NoError(t, c.Add(sq))
	require.NoError(t, sq.AddItem().SetValue(tag.ReferencedSOPInstanceUID, "1.2"))
	return c
}

func TestEncode_SequenceDefinedLength(t *testing.T) {
	c := referencedImages(t)
	want := []byte{
		0x08, 0x00, 0x40, 0x11, 'S', 'Q', 0x00, 0x00, 0x14, 0x00, 0x00, 0x00,
		0xFE, 0xFF, 0x00, 0xE0, 0x0C, 0x00, 0x00, 0x00,
		0x08, 0x00, 0x55, 0x11, 'U', 'I', 0x04, 0x00, '1', '.', '2', 0x00,
	}
	assert.Equal(t, want, encode(t, c, transfer.ExplicitVRLittleEndian, WriteOptions{}))

	sq, _ := c.TryGet(tag.ReferencedImageSequence)
	assert.Equal(t, uint32(20), sq.StreamLength())
	bb, err := sq.ByteBuffer(transfer.ExplicitVRLittleEndian, "")
	require.NoError(t, err)
	assert.Equal(t, want[12:], bb.Bytes())
}

func TestEncode_SequenceUndefinedLength(t *testing.T) {
	c := referencedImages(t)
	opts := WriteOptions{UndefinedLengthSequences: true}
	want := []byte{
		0x08, 0x00, 0x40, 0x11, 'S', 'Q', 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFE, 0xFF, 0x00, 0xE0, 0xFF, 0xFF, 0xFF, 0xFF,
		0x08, 0x00, 0x55, 0x11, 'U', 'I', 0x04, 0x00, '1', '.', '2', 0x00,
		0xFE, 0xFF, 0x0D, 0xE0, 0x00, 0x00, 0x00, 0x00,
		0xFE, 0xFF, 0xDD, 0xE0, 0x00, 0x00, 0x00, 0x00,
	}
	assert.Equal(t, want, encode(t, c, transfer.ExplicitVRLittleEndian, opts))
	assert.Equal(t, uint32(48), c.CalculateWriteLength(tag.Min, tag.Max, transfer.ExplicitVRLittleEndian, opts))
}

func TestEncode_SequenceImplicit(t *testing.T) {
	c := referencedImages(t)
	want := []byte{
		0x08, 0x00, 0x40, 0x11, 0x14, 0x00, 0x00, 0x00,
		0xFE, 0xFF, 0x00, 0xE0, 0x0C, 0x00, 0x00, 0x00,
		0x08, 0x00, 0x55, 0x11, 0x04, 0x00, 0x00, 0x00, '1', '.', '2', 0x00,
	}
	assert.Equal(t, want, encode(t, c, transfer.ImplicitVRLittleEndian, WriteOptions{}))
}

func TestEncode_LengthMatchesCalculation(t *testing.T) {
	c := patient(t)
	require.NoError(t, c.SetValue(tag.PixelData, []byte{1, 2, 3}))
	require.NoError(t, c.SetValue(tag.PixelSpacing, []float64{0.5, 0.25}))
	require.NoError(t, c.SetValue(tag.SelectorFDValue, 1.5))
	require.NoError(t, c.SetValue(tag.SelectorUTValue, "free text"))
	nested := NewSQ(tag.ReferencedImageSequence)
	require.NoError(t, c.Add(nested))
	item := nested.AddItem()
	require.NoError(t, item.SetValue(tag.ReferencedSOPInstanceUID, "1.2.840.10008.5.1.4.1.1.2"))
	inner := NewSQ(tag.ReferencedImageSequence)
	require.NoError(t, item.Add(inner))
	require.NoError(t, inner.AddItem().SetValue(tag.InstanceNumber, 7))
	empty := NewSQ(tag.New(0x0008, 0x1115))
	empty.SetNullValue()
	require.NoError(t, c.Add(empty))

	syntaxes := []transfer.Syntax{
		transfer.ExplicitVRLittleEndian,
		transfer.ImplicitVRLittleEndian,
		transfer.ExplicitVRBigEndian,
	}
	options := []WriteOptions{
		{},
		{WriteGroupLengths: true},
		{UndefinedLengthSequences: true},
		{WriteGroupLengths: true, UndefinedLengthSequences: true},
	}
	for _, ts := range syntaxes {
		for _, opts := range options {
			got := encode(t, c, ts, opts)
			assert.Len(t, got, int(c.CalculateWriteLength(tag.Min, tag.Max, ts, opts)), "%s %+v", ts.Name(), opts)
			assert.Zero(t, len(got)%2)
		}
	}
}

func TestEncode_ShortLengthOverflow(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.SetValue(tag.SelectorUSValue, make([]uint16, 40000)))

	var buf bytes.Buffer
	_, err := EncodeCollection(&buf, c, transfer.ExplicitVRLittleEndian, WriteOptions{})
	assert.ErrorContains(t, err, "exceeds 16 bit length field")

	buf.Reset()
	_, err = EncodeCollection(&buf, c, transfer.ImplicitVRLittleEndian, WriteOptions{})
	assert.NoError(t, err, "implicit VR lengths are 32 bit")
}
