package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCmd_Host(t *testing.T) {
	out, err := execute(t, "run", "--dimx", "3", "--dimy", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "small_struct: PASSED")
	assert.Contains(t, out, "small_struct_2: PASSED")
}

func TestRunCmd_Config(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dimX: 2\ndimY: 2\nintStart: 7\n"), 0o644))

	out, err := execute(t, "run", "--config", path, "--dimy", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "small_struct: PASSED")

	_, err = execute(t, "run", "--dimx", "0")
	assert.Error(t, err)

	_, err = execute(t, "run", "--device", "Vulkan")
	assert.Error(t, err)
}

func TestLayoutCmd(t *testing.T) {
	out, err := execute(t, "layout")
	require.NoError(t, err)
	assert.Contains(t, out, "typedef struct small_struct {")
	assert.Contains(t, out, "  C  size=16 align=8 i@0 l@8")
	assert.Contains(t, out, "  Go size=16 align=8 i@0 l@8")
	assert.Contains(t, out, "padding 4 bytes, match true")
}
