package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReverseFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.bf2")
	require.NoError(t, os.WriteFile(path, []byte("5 23 hail eris pineal"), 0o644))

	written, err := reverseFiles([]string{path, filepath.Join(dir, "plain.bf")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected a .bf2 file")
	require.Equal(t, []string{filepath.Join(dir, "hello.bf")}, written)

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	require.Equal(t, "+[-].", string(data))
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "add.bf")
	require.NoError(t, os.WriteFile(path, []byte("+."), 0o644))

	var out bytes.Buffer
	convertCmd.SetOut(&out)
	defer convertCmd.SetOut(nil)
	require.NoError(t, convertCmd.RunE(convertCmd, []string{path}))
	require.Equal(t, filepath.Join(dir, "add.bf2")+"\n", out.String())

	data, err := os.ReadFile(filepath.Join(dir, "add.bf2"))
	require.NoError(t, err)
	require.Equal(t, "5pineal", string(data))
}
