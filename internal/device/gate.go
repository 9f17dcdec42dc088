// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package device

import "sync/atomic"

// Gate admits at most one holder at a time. Acquire never blocks.
type Gate struct {
	holders atomic.Int32
}

// Acquire moves the gate from closed to open. It fails if any holder exists.
func (g *Gate) Acquire() bool {
	return g.holders.CompareAndSwap(0, 1)
}

// Release drops one holder unconditionally.
func (g *Gate) Release() {
	g.holders.Add(-1)
}

// Held reports whether a holder currently has the gate.
func (g *Gate) Held() bool {
	return g.holders.Load() != 0
}
