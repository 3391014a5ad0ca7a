package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/uid"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRoot(context.Background(), "abc123")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "ERROR"))
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "abc123\n", out)
}

func TestSampleDumpConvert(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "sample.dcm")
	_, err := run(t, "sample", "-o", explicit, "-s", "explicit", "--rows", "4", "--cols", "4")
	require.NoError(t, err)

	out, err := run(t, "dump", "-f", explicit, "-s", "explicit", "--format", "json")
	require.NoError(t, err)
	var attrs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &attrs))
	byName := map[string]map[string]any{}
	for _, a := range attrs {
		name, _ := a["name"].(string)
		byName[name] = a
	}
	require.Contains(t, byName, "PatientID")
	assert.Equal(t, []any{"DCMCTL-0001"}, byName["PatientID"]["value"])
	assert.Equal(t, "US", byName["Rows"]["vr"])

	big := filepath.Join(dir, "sample-big.dcm")
	_, err = run(t, "convert", "-i", explicit, "-o", big, "--from", "explicit", "--to", "big", "--group-lengths")
	require.NoError(t, err)

	out, err = run(t, "dump", big, "-s", "big", "--validate")
	require.NoError(t, err)
	assert.Contains(t, out, "(0010,0020)")
	assert.Contains(t, out, "DCMCTL-0001")
	assert.Contains(t, out, "(0010,0000)")

	_, err = run(t, "convert", "-i", explicit, "-o", explicit)
	assert.ErrorContains(t, err, "refusing to overwrite")
}

func TestDump_Errors(t *testing.T) {
	_, err := run(t, "dump")
	assert.ErrorContains(t, err, "file path is required")

	path := filepath.Join(t.TempDir(), "x.dcm")
	require.NoError(t, os.WriteFile(path, []byte{0x10, 0x00}, 0o644))
	_, err = run(t, "dump", path, "-s", "explicit")
	assert.ErrorContains(t, err, "parse error")

	_, err = run(t, "dump", path, "-s", "1.2.3")
	assert.ErrorContains(t, err, "1.2.3")
}

func TestUID(t *testing.T) {
	out, err := run(t, "uid", "-n", "3")
	require.NoError(t, err)
	lines := strings.Fields(out)
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.True(t, uid.IsValid(l), l)
		assert.True(t, strings.HasPrefix(l, "2.25."), l)
	}

	a, err := run(t, "uid", "--hash", "accession-42")
	require.NoError(t, err)
	b, err := run(t, "uid", "--hash", "accession-42")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	out, err = run(t, "uid", uid.CTImageStorage)
	require.NoError(t, err)
	assert.Contains(t, out, "CT Image Storage")

	_, err = run(t, "uid", "not-a-uid")
	assert.ErrorContains(t, err, "invalid UID")
}
