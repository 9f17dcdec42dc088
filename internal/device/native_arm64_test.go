// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

//go:build arm64

package device

import (
	"testing"

	"cpuidg/internal/cpuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeArm64(t *testing.T) {
	node, err := Native()
	require.NoError(t, err)
	assert.Equal(t, cpuid.Arch64, node.Arch())
	assert.Equal(t, cpuid.Record64Size, node.Size())
}
