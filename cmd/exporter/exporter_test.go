// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package exporter

import (
	"bytes"
	"log/slog"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"cpuidg/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFlags(t *testing.T) {
	defer func(listen string) { flagListen = listen }(flagListen)
	defer func(snapshot, arch string) { common.FlagSnapshot, common.FlagArch = snapshot, arch }(common.FlagSnapshot, common.FlagArch)
	common.FlagSnapshot, common.FlagArch = "", ""

	flagListen = ":9464"
	assert.NoError(t, validateFlags(Cmd, nil))
	flagListen = "127.0.0.1:0"
	assert.NoError(t, validateFlags(Cmd, nil))
	flagListen = "9464"
	assert.Error(t, validateFlags(Cmd, nil))
}

func TestValidateFlagsMissingSnapshot(t *testing.T) {
	defer func(snapshot string) { common.FlagSnapshot = snapshot }(common.FlagSnapshot)
	common.FlagSnapshot = "/nonexistent/regs.yaml"
	assert.Error(t, validateFlags(Cmd, nil))
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &logs
}

func TestServeStopsOnSignal(t *testing.T) {
	logs := captureLog(t)
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux(), ReadHeaderTimeout: time.Second}
	sigChannel := make(chan os.Signal, 1)
	sigChannel <- syscall.SIGTERM

	result := make(chan error, 1)
	go func() { result <- serve(server, sigChannel) }()
	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after a signal")
	}
	// serve waits for the shutdown goroutine, so its log lines are complete
	out := logs.String()
	assert.Contains(t, out, "received signal")
	assert.Contains(t, out, "metrics server stopped")
	assert.NotContains(t, out, "failed to shut down")
}

func TestServeListenError(t *testing.T) {
	captureLog(t)
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	server := &http.Server{Addr: busy.Addr().String(), Handler: http.NewServeMux(), ReadHeaderTimeout: time.Second}
	result := make(chan error, 1)
	go func() { result <- serve(server, make(chan os.Signal)) }()
	select {
	case err := <-result:
		assert.Error(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after a listen error")
	}
}
