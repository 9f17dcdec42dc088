// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

//go:build !arm && !arm64

package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNativeUnsupported(t *testing.T) {
	node, err := Native()
	assert.Nil(t, node)
	assert.ErrorIs(t, err, ErrUnsupportedArch)
	assert.Empty(t, NativeArch)
}
