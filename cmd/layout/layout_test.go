// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"bytes"
	"path/filepath"
	"testing"

	"cpuidg/internal/cpuid"
	"cpuidg/internal/render"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunText(t *testing.T) {
	var stdout bytes.Buffer
	cmd := &cobra.Command{Use: cmdName}
	cmd.SetOut(&stdout)
	require.NoError(t, run(cmd, cpuid.Arch64, render.FormatTxt, ""))
	out := stdout.String()
	assert.Contains(t, out, "id_aa64pfr0")
	assert.Contains(t, out, "dczid")
}

func TestRunUnknownArch(t *testing.T) {
	cmd := &cobra.Command{Use: cmdName}
	assert.Error(t, run(cmd, "x86", render.FormatTxt, ""))
}

func TestRunXlsx(t *testing.T) {
	var stderr bytes.Buffer
	cmd := &cobra.Command{Use: cmdName}
	cmd.SetErr(&stderr)
	path := filepath.Join(t.TempDir(), "layout.xlsx")
	require.NoError(t, run(cmd, cpuid.Arch32, render.FormatXlsx, path))
	assert.FileExists(t, path)
	assert.Contains(t, stderr.String(), path)
}

func TestValidateFlags(t *testing.T) {
	defer func(arch, format string) { flagArch, flagFormat = arch, format }(flagArch, flagFormat)

	flagArch, flagFormat = cpuid.Arch32, render.FormatJson
	assert.NoError(t, validateFlags(Cmd, nil))
	flagArch = "riscv"
	assert.Error(t, validateFlags(Cmd, nil))
	flagArch, flagFormat = cpuid.Arch64, render.FormatRaw
	assert.Error(t, validateFlags(Cmd, nil))
}

func TestDefaultArch(t *testing.T) {
	assert.Contains(t, []string{cpuid.Arch32, cpuid.Arch64}, defaultArch())
}
