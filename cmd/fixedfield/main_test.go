package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rawbytedev/fixedfield/byteview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const packetSchema = `
name = "packet"

[[fields]]
name = "id"
type = "uint16"
endian = "big"

[[fields]]
name = "name"
type = "text"
length = 4

[[fields]]
name = "vals"
type = "array"
count = 3
elem = { type = "int8" }
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "packet.toml", packetSchema)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"describe", "-schema", schema}, &stdout, &stderr))

	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(stdout.String()), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	assert.Equal(t, [][]string{
		{"PATH", "KIND", "OFFSET", "LENGTH"},
		{"packet", "struct", "0", "9"},
		{"id", "uint16", "0", "2"},
		{"name", "text", "2", "4"},
		{"vals", "array", "6", "3"},
		{"vals[]", "int8", "6", "1"},
	}, rows)
}

func TestEncodeThenDecode(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "packet.toml", packetSchema)
	values := writeFile(t, dir, "rec.yaml", "id: 258\nname: ab\nvals: [1, -2, 3]\n")
	image := filepath.Join(dir, "image.bin")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{
		"encode", "-schema", schema, "-in", image, "-values", values, "-offset", "2",
	}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "record encoded")

	data, err := os.ReadFile(image)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 1, 2, 'a', 'b', 0, 0, 1, 0xfe, 3}, data)

	stdout.Reset()
	require.NoError(t, run([]string{
		"decode", "-schema", schema, "-in", image, "-offset", "2",
	}, &stdout, &stderr))
	assert.Equal(t, "id: 258\nname: ab\nvals: [1, -2, 3]\n", stdout.String())
}

func TestEncodeToSeparateOutput(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "packet.toml", packetSchema)
	values := writeFile(t, dir, "rec.yaml", "id: 1\nname: xyz\nvals: [0, 0, 7]\n")
	image := writeFile(t, dir, "image.bin", strings.Repeat("\xff", 12))
	out := filepath.Join(dir, "out.bin")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{
		"encode", "-schema", schema, "-in", image, "-values", values, "-out", out,
	}, &stdout, &stderr))

	orig, err := os.ReadFile(image)
	require.NoError(t, err)
	assert.Equal(t, []byte(strings.Repeat("\xff", 12)), orig)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 'x', 'y', 'z', 0, 0, 0, 7, 0xff, 0xff, 0xff}, data)
}

func TestDecodeTrace(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "packet.toml", packetSchema)
	image := writeFile(t, dir, "image.bin", "\x00\x05hi\x00\x00\x01\x02\x03")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{
		"decode", "-schema", schema, "-in", image, "-trace", "-v",
	}, &stdout, &stderr))
	assert.Equal(t, "id: 5\nname: hi\nvals: [1, 2, 3]\n", stdout.String())
	assert.Contains(t, stderr.String(), "read uint16")
	assert.Contains(t, stderr.String(), "read int8")
	assert.Contains(t, stderr.String(), "schema loaded")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "packet.toml", packetSchema)
	short := writeFile(t, dir, "short.bin", "\x00\x01")
	var stdout, stderr bytes.Buffer

	require.ErrorIs(t, run(nil, &stdout, &stderr), errUsage)
	require.ErrorIs(t, run([]string{"explode"}, &stdout, &stderr), errUsage)
	require.ErrorIs(t, run([]string{"describe"}, &stdout, &stderr), errUsage)
	require.ErrorIs(t, run([]string{"decode", "-schema", schema}, &stdout, &stderr), errUsage)
	require.ErrorIs(t, run([]string{"encode", "-schema", schema, "-in", short}, &stdout, &stderr), errUsage)
	require.Error(t, run([]string{"decode", "-schema", schema, "-in", short, "-offset", "-1"}, &stdout, &stderr))

	err := run([]string{"decode", "-schema", schema, "-in", short}, &stdout, &stderr)
	require.ErrorIs(t, err, byteview.ErrOutOfBounds)

	missing := writeFile(t, dir, "partial.yaml", "id: 1\n")
	err = run([]string{"encode", "-schema", schema, "-in", short, "-values", missing}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"name"`)
}
