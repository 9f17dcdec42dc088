// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package read

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cpuidg/internal/coproc"
	"cpuidg/internal/cpuid"
	"cpuidg/internal/device"
	"cpuidg/internal/render"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var a53Values = map[string]uint32{
	"midr":    0x410fd034,
	"ctr":     0x84448004,
	"mpidr":   0x80000000,
	"id_pfr0": 0x00000131,
	"clidr":   0x0a200023,
}

func testCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{Use: cmdName}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

func record(t *testing.T) []byte {
	t.Helper()
	var rec cpuid.Record32
	cpuid.Capture32(coproc.NewSnapshot(a53Values), &rec)
	data, err := cpuid.Append(nil, &rec)
	require.NoError(t, err)
	return data
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRunHexFirstEightBytes(t *testing.T) {
	dev := device.New32(coproc.NewSnapshot(a53Values))
	cmd, stdout, stderr := testCmd()
	require.NoError(t, run(cmd, dev, 8, render.FormatHex, ""))
	assert.Equal(t, string(render.HexDump(record(t)[:8])), stdout.String())
	assert.Empty(t, stderr.String())
	assert.False(t, dev.Busy(), "read must close the device")
}

func TestRunRaw(t *testing.T) {
	dev := device.New32(coproc.NewSnapshot(a53Values))
	cmd, stdout, _ := testCmd()
	require.NoError(t, run(cmd, dev, dev.Size(), render.FormatRaw, ""))
	assert.Equal(t, record(t), stdout.Bytes())
}

func TestRunRawOversizedLength(t *testing.T) {
	dev := device.New32(coproc.NewSnapshot(a53Values))
	cmd, stdout, _ := testCmd()
	require.NoError(t, run(cmd, dev, 1<<20, render.FormatRaw, ""))
	assert.Len(t, stdout.Bytes(), cpuid.Record32Size)
}

func TestRunRawWriteFailure(t *testing.T) {
	dev := device.New32(coproc.NewSnapshot(a53Values))
	cmd, _, stderr := testCmd()
	cmd.SetOut(failingWriter{})
	err := run(cmd, dev, dev.Size(), render.FormatRaw, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, stderr.String(), "short read")
	assert.False(t, dev.Busy())
}

func TestRunRawToFile(t *testing.T) {
	dev := device.New32(coproc.NewSnapshot(a53Values))
	cmd, stdout, _ := testCmd()
	path := filepath.Join(t.TempDir(), "record.bin")
	require.NoError(t, run(cmd, dev, dev.Size(), render.FormatRaw, path))
	assert.Empty(t, stdout.Bytes())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, record(t), data)
}

func TestRunBusy(t *testing.T) {
	dev := device.New32(coproc.NewSnapshot(a53Values))
	f, err := dev.Open()
	require.NoError(t, err)
	defer f.Close()

	cmd, stdout, _ := testCmd()
	err = run(cmd, dev, dev.Size(), render.FormatTxt, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, device.ErrBusy)
	assert.Empty(t, stdout.String())
}

func TestRunText(t *testing.T) {
	dev := device.New32(coproc.NewSnapshot(a53Values))
	cmd, stdout, _ := testCmd()
	require.NoError(t, run(cmd, dev, 8, render.FormatTxt, ""))
	out := stdout.String()
	assert.Contains(t, out, "Transferred:  8\n")
	assert.Contains(t, out, "0x410fd034")
	assert.Contains(t, out, "0x84448004")
	assert.NotContains(t, out, "tcmtr")
}

func TestRunJSONNegativeLength(t *testing.T) {
	dev := device.New32(coproc.NewSnapshot(a53Values))
	cmd, stdout, stderr := testCmd()
	require.NoError(t, run(cmd, dev, -5, render.FormatJson, ""))
	assert.Contains(t, stdout.String(), "\"Transferred\"")
	assert.NotContains(t, stdout.String(), "0x410fd034")
	assert.Empty(t, stderr.String())
}

func TestRunYamlToFile(t *testing.T) {
	dev := device.New64()
	cmd, stdout, _ := testCmd()
	path := filepath.Join(t.TempDir(), "record.yaml")
	require.NoError(t, run(cmd, dev, dev.Size(), render.FormatYaml, path))
	assert.Empty(t, stdout.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id_aa64mmfr1")
}

func TestRunXlsx(t *testing.T) {
	dev := device.New32(coproc.NewSnapshot(a53Values))
	cmd, _, stderr := testCmd()
	path := filepath.Join(t.TempDir(), "record.xlsx")
	require.NoError(t, run(cmd, dev, dev.Size(), render.FormatXlsx, path))
	assert.FileExists(t, path)
	assert.Contains(t, stderr.String(), path)
}

func TestLengthFlagHasNoFixedDefault(t *testing.T) {
	flag := Cmd.Flags().Lookup(flagLengthName)
	require.NotNil(t, flag)
	assert.Empty(t, flag.DefValue)
	for _, group := range getFlagGroups() {
		for _, f := range group.Flags {
			if f.Name == flagLengthName {
				assert.Contains(t, f.Help, "(default: record size)")
			}
		}
	}
}
