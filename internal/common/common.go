// Package common defines data structures and functions that are used by multiple
// application commands, e.g., read, layout, exporter.
package common

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cpuidg/internal/coproc"
	"cpuidg/internal/cpuid"
	"cpuidg/internal/device"
	"cpuidg/internal/util"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var AppName = filepath.Base(os.Args[0])

// AppContext represents the application context that can be accessed from all commands.
type AppContext struct {
	Timestamp   string // Timestamp is the application start time, used in output file names.
	OutputDir   string // OutputDir is the directory where the application will write output files.
	LogFilePath string // LogFilePath is the log file, empty when logging to syslog or stdout.
	Version     string // Version is the version of the application.
	Debug       bool
}

type Flag struct {
	Name string
	Help string
}
type FlagGroup struct {
	GroupName string
	Flags     []Flag
}

var (
	FlagSnapshot string
	FlagArch     string
	FlagFormat   string
)

const (
	FlagSnapshotName = "snapshot"
	FlagArchName     = "arch"
	FlagFormatName   = "format"
)

// ErrUnknownArch is returned for an --arch value that names no record variant.
var ErrUnknownArch = errors.New("unknown architecture")

// Archs are the record variants selectable with --arch.
var Archs = []string{cpuid.Arch32, cpuid.Arch64}

// AddSourceFlags adds the flags that select where register values come from.
func AddSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&FlagSnapshot, FlagSnapshotName, "", "")
	cmd.Flags().StringVar(&FlagArch, FlagArchName, "", "")
}

// GetSourceFlagGroup returns the help for the flags added by AddSourceFlags.
func GetSourceFlagGroup() FlagGroup {
	return FlagGroup{
		GroupName: "Register Source Options",
		Flags: []Flag{
			{
				Name: FlagSnapshotName,
				Help: "replay register values from a YAML file instead of reading this CPU",
			},
			{
				Name: FlagArchName,
				Help: fmt.Sprintf("record variant for --%s, one of: %s (default: %s)", FlagSnapshotName, strings.Join(Archs, ", "), cpuid.Arch32),
			},
		},
	}
}

// ValidateSourceFlags checks the register source flags.
func ValidateSourceFlags(cmd *cobra.Command) error {
	if FlagArch != "" && !slices.Contains(Archs, FlagArch) {
		return errors.Wrapf(ErrUnknownArch, "--%s must be one of: %s", FlagArchName, strings.Join(Archs, ", "))
	}
	if cmd.Flags().Lookup(FlagArchName).Changed && FlagSnapshot == "" {
		return fmt.Errorf("--%s requires --%s", FlagArchName, FlagSnapshotName)
	}
	if FlagSnapshot != "" {
		exists, err := util.FileExists(FlagSnapshot)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("snapshot file %s does not exist", FlagSnapshot)
		}
	}
	return nil
}

// OpenNode returns the device the register source flags select: a snapshot
// replay when --snapshot is set, the native device otherwise.
func OpenNode(snapshotPath, arch string) (device.Node, error) {
	if snapshotPath == "" {
		node, err := device.Native()
		if err != nil {
			return nil, errors.Wrapf(err, "use --%s to replay recorded registers", FlagSnapshotName)
		}
		slog.Info("using native device", slog.String("arch", node.Arch()))
		return node, nil
	}
	snapshot, err := coproc.LoadSnapshot(snapshotPath)
	if err != nil {
		return nil, err
	}
	if arch == "" {
		arch = cpuid.Arch32
	}
	slog.Info("using register snapshot", slog.String("path", snapshotPath), slog.String("arch", arch))
	switch arch {
	case cpuid.Arch32:
		return device.New32(snapshot), nil
	case cpuid.Arch64:
		slog.Warn("64-bit capture reads no registers, snapshot values are ignored", slog.String("path", snapshotPath))
		return device.New64(), nil
	}
	return nil, errors.Wrap(ErrUnknownArch, arch)
}

// ValidateFormat checks that format is one of options.
func ValidateFormat(format string, options []string) error {
	if !slices.Contains(options, format) {
		return fmt.Errorf("format options are: %s", strings.Join(options, ", "))
	}
	return nil
}

// UsageFunc prints the command's flags by group, followed by the global flags.
func UsageFunc(cmd *cobra.Command, groups []FlagGroup) error {
	cmd.Printf("Usage: %s [flags]\n\n", cmd.CommandPath())
	if cmd.Example != "" {
		cmd.Printf("Examples:\n%s\n\n", cmd.Example)
	}
	cmd.Println("Flags:")
	for _, group := range groups {
		cmd.Printf("  %s:\n", group.GroupName)
		for _, flag := range group.Flags {
			flagDefault := ""
			if cmd.Flags().Lookup(flag.Name).DefValue != "" {
				flagDefault = fmt.Sprintf(" (default: %s)", cmd.Flags().Lookup(flag.Name).DefValue)
			}
			cmd.Printf("    --%-20s %s%s\n", flag.Name, flag.Help, flagDefault)
		}
	}
	cmd.Println("\nGlobal Flags:")
	cmd.Parent().PersistentFlags().VisitAll(func(pf *pflag.Flag) {
		flagDefault := ""
		if pf.DefValue != "" {
			flagDefault = fmt.Sprintf(" (default: %s)", pf.DefValue)
		}
		cmd.Printf("  --%-20s %s%s\n", pf.Name, pf.Usage, flagDefault)
	})
	return nil
}

// GetAppContext returns the context set up by the root command.
func GetAppContext(cmd *cobra.Command) AppContext {
	if cmd.Parent() == nil || cmd.Parent().Context() == nil {
		return AppContext{}
	}
	appContext, _ := cmd.Parent().Context().Value(AppContext{}).(AppContext)
	return appContext
}

// WriteOutput writes data to path, or to the output directory under a name
// derived from the command and format when path is empty. It returns the
// path written.
func WriteOutput(appContext AppContext, path, cmdName, format string, data []byte) (string, error) {
	if path == "" {
		if err := util.CreateDirectoryIfNotExists(appContext.OutputDir, 0755); err != nil { // #nosec G301
			return "", errors.Wrapf(err, "failed to create output directory %s", appContext.OutputDir)
		}
		path = filepath.Join(appContext.OutputDir, fmt.Sprintf("%s_%s.%s", AppName, cmdName, format))
	}
	if err := os.WriteFile(path, data, 0644); err != nil { // #nosec G306
		return "", errors.Wrapf(err, "failed to write %s", path)
	}
	slog.Info("wrote output", slog.String("path", path), slog.Int("bytes", len(data)))
	return path, nil
}
