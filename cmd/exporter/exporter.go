// Package exporter is a subcommand of the root command. It serves the
// identification registers as Prometheus metrics.
package exporter

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cpuidg/internal/common"
	"cpuidg/internal/exporter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const cmdName = "exporter"

var examples = []string{
	fmt.Sprintf("  Serve on the default port:          $ %s %s", common.AppName, cmdName),
	fmt.Sprintf("  Serve a snapshot on localhost only: $ %s %s --listen 127.0.0.1:9464 --snapshot regs.yaml", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Serve the identification registers as Prometheus metrics",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

var flagListen string

const flagListenName = "listen"

const shutdownTimeout = 5 * time.Second

func init() {
	Cmd.Flags().StringVar(&flagListen, flagListenName, ":9464", "")
	common.AddSourceFlags(Cmd)

	Cmd.SetUsageFunc(usageFunc)
}

func usageFunc(cmd *cobra.Command) error {
	return common.UsageFunc(cmd, []common.FlagGroup{
		{
			GroupName: "Options",
			Flags: []common.Flag{
				{
					Name: flagListenName,
					Help: "address the /metrics endpoint listens on",
				},
			},
		},
		common.GetSourceFlagGroup(),
	})
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if _, _, err := net.SplitHostPort(flagListen); err != nil {
		err = errors.Wrapf(err, "invalid --%s address", flagListenName)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	if err := common.ValidateSourceFlags(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	node, err := common.OpenNode(common.FlagSnapshot, common.FlagArch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	server, err := exporter.NewServer(flagListen, exporter.NewCollector(node))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChannel)
	slog.Info("starting metrics server", slog.String("address", flagListen), slog.String("arch", node.Arch()))
	fmt.Fprintf(cmd.ErrOrStderr(), "Serving metrics at http://%s/metrics\n", flagListen)
	if err := serve(server, sigChannel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// serve runs server until it fails or a signal arrives on sigChannel. It
// returns only after a signal-triggered shutdown has finished.
func serve(server *http.Server, sigChannel <-chan os.Signal) error {
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case sig := <-sigChannel:
			slog.Info("received signal", slog.String("signal", sig.String()))
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				slog.Error("failed to shut down metrics server", slog.String("error", err.Error()))
			}
		case <-stop:
		}
	}()
	err := server.ListenAndServe()
	close(stop)
	<-done
	if err != nil && err != http.ErrServerClosed {
		slog.Error("metrics server ListenAndServe error", slog.String("error", err.Error()))
		return err
	}
	slog.Info("metrics server stopped")
	return nil
}
