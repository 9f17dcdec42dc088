// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package exporter

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cpuidg/internal/coproc"
	"cpuidg/internal/cpuid"
	"cpuidg/internal/device"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNode() *device.Device[cpuid.Record32] {
	return device.New32(coproc.NewSnapshot(map[string]uint32{
		"midr":  0x410fd034,
		"ctr":   0x84448004,
		"clidr": 0x0a200023,
	}))
}

func TestCollectRegisters(t *testing.T) {
	node := newTestNode()
	c := NewCollector(node)
	assert.Equal(t, 24, testutil.CollectAndCount(c, "cpuidg_register"))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.reads))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.busy))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.shortReads))
	assert.False(t, node.Busy(), "collector must close its handle")
}

func TestCollectBusy(t *testing.T) {
	node := newTestNode()
	held, err := node.Open()
	require.NoError(t, err)

	c := NewCollector(node)
	assert.Equal(t, 0, testutil.CollectAndCount(c, "cpuidg_register"))
	assert.Equal(t, 1, testutil.CollectAndCount(c, "cpuidg_record_size_bytes"))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.busy))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.reads))

	require.NoError(t, held.Close())
	assert.Equal(t, 24, testutil.CollectAndCount(c, "cpuidg_register"))
}

func TestCollect64(t *testing.T) {
	c := NewCollector(device.New64())
	// 21 four-byte fields plus two words for each of the 12 eight-byte fields
	assert.Equal(t, 45, testutil.CollectAndCount(c, "cpuidg_register"))
}

func TestRegisterWords(t *testing.T) {
	wide := cpuid.Value{Field: cpuid.Field{Name: "id_aa64pfr0", Width: 8}, Value: 0x8000000100000003}
	words := registerWords(wide)
	require.Len(t, words, 2)
	assert.Equal(t, word{"lo", 0x00000003}, words[0])
	assert.Equal(t, word{"hi", 0x80000001}, words[1])

	narrow := cpuid.Value{Field: cpuid.Field{Name: "midr", Width: 4}, Value: 0x410fd034}
	assert.Equal(t, []word{{"lo", 0x410fd034}}, registerWords(narrow))
}

func TestRepeatedCollect(t *testing.T) {
	node := newTestNode()
	c := NewCollector(node)
	for range 1000 {
		require.Equal(t, 24, testutil.CollectAndCount(c, "cpuidg_register"))
	}
	assert.Equal(t, 1000.0, testutil.ToFloat64(c.reads))
	assert.False(t, node.Busy())
}

func TestHandler(t *testing.T) {
	srv, err := NewServer(":0", NewCollector(newTestNode()))
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `field="midr"`)
	assert.Contains(t, string(body), `word="lo"`)
	assert.Contains(t, string(body), `cpuidg_record_size_bytes{arch="arm"} 96`)
	assert.Contains(t, string(body), `cpuidg_reads_total{arch="arm"} 1`)
}
