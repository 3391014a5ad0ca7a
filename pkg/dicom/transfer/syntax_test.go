package transfer

import (
	"testing"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/buffer"
	"github.com/stretchr/testify/assert"
)

func TestSyntaxProperties(t *testing.T) {
	tests := []struct {
		ts       Syntax
		explicit bool
		endian   buffer.Endian
	}{
		{ImplicitVRLittleEndian, false, buffer.LittleEndian},
		{ExplicitVRLittleEndian, true, buffer.LittleEndian},
		{ExplicitVRBigEndian, true, buffer.BigEndian},
		{JPEG2000, true, buffer.LittleEndian},
	}
	for _, tt := range tests {
		t.Run(tt.ts.Name(), func(t *testing.T) {
			assert.Equal(t, tt.explicit, tt.ts.IsExplicitVR())
			assert.Equal(t, tt.endian, tt.ts.Endian())
		})
	}
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("1.2.840.10008.1.2.1")
	assert.True(t, ok)
	assert.Equal(t, ExplicitVRLittleEndian, s)
	assert.Equal(t, "Explicit VR Little Endian", s.Name())

	s, ok = Lookup("1.2.3")
	assert.False(t, ok)
	assert.Equal(t, "1.2.3", s.Name())
	assert.Len(t, All(), 14)
	assert.True(t, DeflatedExplicitVR.IsDeflated())
}
