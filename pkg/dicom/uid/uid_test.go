package uid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	u := Resolve(CTImageStorage)
	assert.Equal(t, TypeSOPClass, u.Type)
	assert.Equal(t, "CT Image Storage", u.Name)

	u = Resolve("1.2.840.10008.1.2.1")
	assert.Equal(t, TypeTransferSyntax, u.Type)
	assert.Equal(t, "Explicit VR Little Endian", u.Name)

	u = Resolve("1.2.3.4")
	assert.Equal(t, TypeUnknown, u.Type)
	assert.Equal(t, "1.2.3.4", u.UID)
	assert.Equal(t, "1.2.3.4", u.Description())

	_, ok := Lookup("1.2.3.4")
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	a, b := New(), New()
	assert.NotEqual(t, a.UID, b.UID)
	assert.True(t, strings.HasPrefix(a.UID, Root))
	assert.True(t, IsValid(a.UID), a.UID)
	assert.LessOrEqual(t, len(a.UID), MaxLength)
}

func TestFromHash(t *testing.T) {
	a, err := FromHash(map[string]string{"study": "1"})
	require.NoError(t, err)
	b, err := FromHash(map[string]string{"study": "1"})
	require.NoError(t, err)
	c, err := FromHash(map[string]string{"study": "2"})
	require.NoError(t, err)
	assert.Equal(t, a.UID, b.UID)
	assert.NotEqual(t, a.UID, c.UID)
	assert.True(t, IsValid(a.UID))

	_, err = FromHash(make(chan int))
	assert.Error(t, err)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("1.2.840.10008.1.2"))
	assert.True(t, IsValid("0.1"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("1..2"))
	assert.False(t, IsValid("1.02"))
	assert.False(t, IsValid("1.2."))
	assert.False(t, IsValid("1.a"))
	assert.False(t, IsValid(strings.Repeat("1", 65)))
}
