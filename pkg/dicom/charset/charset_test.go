package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerm(t *testing.T) {
	assert.Equal(t, "", Term(""))
	assert.Equal(t, "", Term("ISO_IR 6"))
	assert.Equal(t, "ISO_IR 100", Term("ISO_IR 100"))
	assert.Equal(t, "ISO 2022 IR 87", Term(`\ISO 2022 IR 87`))
	assert.Equal(t, "ISO 2022 IR 87", Term(`ISO 2022 IR 6\ISO 2022 IR 87`))
	assert.True(t, IsDefault(""))
	assert.False(t, IsDefault("ISO_IR 192"))
}

func TestLatin1RoundTrip(t *testing.T) {
	b, err := Encode("Müller^Jürgen", "ISO_IR 100")
	require.NoError(t, err)
	assert.Len(t, b, 13, "one byte per character in latin-1")

	s, err := Decode(b, "ISO_IR 100")
	require.NoError(t, err)
	assert.Equal(t, "Müller^Jürgen", s)
}

func TestUTF8AndDefault(t *testing.T) {
	assert.Equal(t, 15, EncodedLength("Müller^Jürgen", "ISO_IR 192"))
	assert.Equal(t, 15, EncodedLength("Müller^Jürgen", ""))

	s, err := Decode([]byte("ABC"), "")
	require.NoError(t, err)
	assert.Equal(t, "ABC", s)
}

func TestLookupFallback(t *testing.T) {
	enc, err := Lookup("ISO_IR 203")
	require.NoError(t, err)
	assert.NotNil(t, enc)

	enc, err = Lookup("utf-8")
	require.NoError(t, err)
	assert.NotNil(t, enc)

	_, err = Lookup("NOT A CHARSET")
	assert.Error(t, err)
}

func TestJapanese(t *testing.T) {
	b, err := Encode("ﾔﾏﾀﾞ", "ISO_IR 13")
	require.NoError(t, err)
	assert.Len(t, b, 4, "half width katakana are single byte in shift-jis")
	s, err := Decode(b, "ISO_IR 13")
	require.NoError(t, err)
	assert.Equal(t, "ﾔﾏﾀﾞ", s)
}
