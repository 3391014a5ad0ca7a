package dicom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/buffer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/uid"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

func TestFactory_NullAndEmptyEveryVR(t *testing.T) {
	private := tag.New(0x0009, 0x1010)
	for v, ctor := range constructors {
		t.Run(string(v), func(t *testing.T) {
			a := ctor(private)
			assert.Equal(t, v, a.VR())
			assert.Equal(t, private, a.Tag())
			assert.True(t, a.IsEmpty(), "new attributes are empty")
			assert.Equal(t, 0, a.Count())

			a.SetNullValue()
			assert.True(t, a.IsNull())
			assert.False(t, a.IsEmpty())
			assert.Equal(t, 1, a.Count())
			assert.Equal(t, uint32(0), a.StreamLength())
			assert.Equal(t, v.HeaderLength(true), a.CalculateWriteLength(transfer.ExplicitVRLittleEndian, WriteOptions{}))
			assert.Equal(t, uint32(8), a.CalculateWriteLength(transfer.ImplicitVRLittleEndian, WriteOptions{}))

			bb, err := a.ByteBuffer(transfer.ExplicitVRLittleEndian, "")
			require.NoError(t, err)
			assert.Equal(t, 0, bb.Len())

			cp := a.Copy(true)
			assert.True(t, cp.IsNull())
			assert.True(t, a.Equal(cp))

			a.SetEmptyValue()
			assert.True(t, a.IsEmpty())
			assert.False(t, a.IsNull())
			assert.Equal(t, 0, a.Count())
		})
	}
}

func TestFactory_DictionaryVR(t *testing.T) {
	tests := []struct {
		tag tag.Tag
		vr  vr.VR
	}{
		{tag.PatientName, vr.PN},
		{tag.Rows, vr.US},
		{tag.PixelData, vr.OW},
		{tag.StudyDate, vr.DA},
		{tag.SOPInstanceUID, vr.UI},
		{tag.ReferencedImageSequence, vr.SQ},
		{tag.New(0x0028, 0x0000), vr.UL},
		{tag.New(0x0009, 0x0010), vr.LO},
		{tag.New(0x0009, 0x1010), vr.UN},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.vr, NewAttribute(tt.tag).VR(), tt.tag.String())
	}
}

func TestFactory_NewAttributeVR(t *testing.T) {
	_, err := NewAttributeVR(tag.PatientName, vr.US)
	assert.ErrorIs(t, err, ErrInvalidVR)

	_, err = NewAttributeVR(tag.PatientName, vr.VR("XX"))
	assert.ErrorIs(t, err, ErrInvalidVR)

	a, err := NewAttributeVR(tag.PatientName, vr.UN)
	require.NoError(t, err)
	assert.Equal(t, vr.UN, a.VR())

	a, err = NewAttributeVR(tag.PixelData, vr.OB)
	require.NoError(t, err)
	assert.Equal(t, vr.OB, a.VR())

	a, err = NewAttributeVR(tag.New(0x0009, 0x1010), vr.DS)
	require.NoError(t, err)
	assert.IsType(t, &DecimalString{}, a)
}

func TestFactory_FromBuffer(t *testing.T) {
	pn, err := NewAttributeFromBuffer(tag.PatientName, vr.PN, buffer.FromBytes([]byte("Doe^J "), buffer.LittleEndian), "")
	require.NoError(t, err)
	assert.Equal(t, "Doe^J", pn.String())

	rows, err := NewAttributeFromBuffer(tag.Rows, vr.US, buffer.FromBytes([]byte{0x01, 0x00}, buffer.BigEndian), "")
	require.NoError(t, err)
	assert.Equal(t, uint16(256), GetUInt16(rows, 0, 0))

	_, err = NewAttributeFromBuffer(tag.ReferencedImageSequence, vr.SQ, buffer.New(buffer.LittleEndian), "")
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = NewAttributeFromBuffer(tag.Rows, vr.PN, buffer.New(buffer.LittleEndian), "")
	assert.ErrorIs(t, err, ErrInvalidVR)
}

func TestFactory_FromReference(t *testing.T) {
	path := writeFixture(t, []byte{1, 0, 2, 0, 3, 0})
	ref := &FileReference{Path: path, Offset: 0, Length: 6, Endian: buffer.LittleEndian}

	a, err := NewAttributeFromReference(tag.SelectorUSValue, vr.US, ref)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Count())
	assert.Equal(t, uint16(3), GetUInt16(a, 2, 0))

	_, err = NewAttributeFromReference(tag.PatientName, vr.PN, ref)
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestGetters_Defaults(t *testing.T) {
	rows := NewUS(tag.Rows)
	require.NoError(t, rows.AppendUInt16(512))

	assert.Equal(t, uint16(512), GetUInt16(rows, 0, 1))
	assert.Equal(t, uint16(1), GetUInt16(rows, 1, 1))
	assert.Equal(t, int16(512), GetInt16(rows, 0, 0))
	assert.Equal(t, int32(512), GetInt32(rows, 0, 0))
	assert.Equal(t, int64(512), GetInt64(rows, 0, 0))
	assert.Equal(t, uint32(512), GetUInt32(rows, 0, 0))
	assert.Equal(t, uint64(512), GetUInt64(rows, 0, 0))
	assert.Equal(t, "512", GetString(rows, 0, ""))

	fl := NewFL(tag.SelectorFLValue)
	require.NoError(t, fl.AppendFloat32(0.5))
	assert.Equal(t, float32(0.5), GetFloat32(fl, 0, 0))
	assert.Equal(t, float64(0.5), GetFloat64(fl, 0, 0))
	assert.Equal(t, float64(-1), GetFloat64(fl, 3, -1))

	def := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, def, GetDateTime(rows, 0, def))
	assert.Nil(t, GetUID(rows, 0, nil))

	ui := NewUI(tag.SOPClassUID)
	require.NoError(t, ui.SetStringValue("1.2.840.10008.5.1.4.1.1.2"))
	got := GetUID(ui, 0, nil)
	require.NotNil(t, got)
	assert.Equal(t, "1.2.840.10008.5.1.4.1.1.2", got.String())
	assert.Equal(t, uid.TypeSOPClass, got.Type)
}

func TestValidate_Requirements(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.SetValue(tag.SOPClassUID, "1.2.840.10008.5.1.4.1.1.2"))
	_, err := c.Get(tag.SOPInstanceUID)
	require.NoError(t, err)

	result := c.Validate(append(SOPCommonRequirements, PatientRequirements...)...)
	assert.False(t, result.IsValid())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, tag.SOPInstanceUID, result.Errors[0].Tag)
	assert.Equal(t, "Required attribute is empty", result.Errors[0].Message)
	assert.Len(t, result.Warnings, 2)

	require.NoError(t, c.SetValue(tag.SOPInstanceUID, uid.New()))
	require.NoError(t, c.SetSpecificCharacterSet("ISO_IR 100"))
	result = c.Validate(SOPCommonRequirements...)
	assert.True(t, result.IsValid())
	assert.False(t, result.HasErrors())
}

func TestValidate_RelaxedValues(t *testing.T) {
	c := NewCollection(WithSettings(Settings{}))
	require.NoError(t, c.SetValue(tag.Modality, "ct"))
	require.NoError(t, c.SetValue(tag.StationName, "A VERY LONG STATION NAME"))

	result := c.Validate()
	assert.True(t, result.IsValid())
	assert.True(t, result.HasWarnings())
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, tag.Modality, result.Warnings[0].Tag)
	assert.Equal(t, tag.StationName, result.Warnings[1].Tag)
}
