// Package read is a subcommand of the root command. It opens the device, reads the
// identification record once and prints it.
package read

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"cpuidg/internal/common"
	"cpuidg/internal/cpuid"
	"cpuidg/internal/device"
	"cpuidg/internal/render"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const cmdName = "read"

var examples = []string{
	fmt.Sprintf("  Decode the full record:              $ %s %s", common.AppName, cmdName),
	fmt.Sprintf("  First 8 bytes (main ID, cache type): $ %s %s --length 8 --format hex", common.AppName, cmdName),
	fmt.Sprintf("  Save the raw record:                 $ %s %s --format raw --output record.bin", common.AppName, cmdName),
	fmt.Sprintf("  Replay a register snapshot:          $ %s %s --snapshot regs.yaml --format json", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Read the CPU identification record",
	Long:          "",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

var (
	flagLength int
	flagOutput string
	flagForce  bool
)

const (
	flagLengthName = "length"
	flagOutputName = "output"
	flagForceName  = "force"
)

func init() {
	Cmd.Flags().IntVar(&flagLength, flagLengthName, 0, "")
	// the real default is the record size, known only once the device is open
	Cmd.Flags().Lookup(flagLengthName).DefValue = ""
	Cmd.Flags().StringVar(&common.FlagFormat, common.FlagFormatName, render.FormatTxt, "")
	Cmd.Flags().StringVar(&flagOutput, flagOutputName, "", "")
	Cmd.Flags().BoolVar(&flagForce, flagForceName, false, "")
	common.AddSourceFlags(Cmd)

	Cmd.SetUsageFunc(usageFunc)
}

func usageFunc(cmd *cobra.Command) error {
	return common.UsageFunc(cmd, getFlagGroups())
}

func getFlagGroups() []common.FlagGroup {
	var groups []common.FlagGroup
	flags := []common.Flag{
		{
			Name: flagLengthName,
			Help: "number of bytes to request, clamped to the record size; zero or negative reads nothing (default: record size)",
		},
		{
			Name: common.FlagFormatName,
			Help: fmt.Sprintf("choose output format from: %s", strings.Join(render.RecordFormats, ", ")),
		},
		{
			Name: flagOutputName,
			Help: "write output to this file instead of stdout",
		},
		{
			Name: flagForceName,
			Help: "allow raw output to a terminal",
		},
	}
	groups = append(groups, common.FlagGroup{
		GroupName: "Options",
		Flags:     flags,
	})
	groups = append(groups, common.GetSourceFlagGroup())
	return groups
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if err := common.ValidateFormat(common.FlagFormat, render.RecordFormats); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	if err := common.ValidateSourceFlags(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	if common.FlagFormat == render.FormatRaw && flagOutput == "" && !flagForce && term.IsTerminal(int(os.Stdout.Fd())) {
		err := fmt.Errorf("refusing to write raw bytes to a terminal, use --%s or --%s", flagOutputName, flagForceName)
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
	length := flagLength
	if !cmd.Flags().Lookup(flagLengthName).Changed {
		length = node.Size()
	}
	err = run(cmd, node, length, common.FlagFormat, flagOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// run performs one open/read/close cycle on node and writes the result.
func run(cmd *cobra.Command, node device.Node, length int, format, output string) error {
	f, err := node.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open device")
	}
	defer f.Close()

	if format == render.FormatRaw {
		return readRaw(cmd, node, f, length, output)
	}

	buf := make(device.Buffer, min(max(length, 0), node.Size()))
	n := f.Read(buf, length)
	reportTransfer(cmd.ErrOrStderr(), node, length, n)
	data := buf[:n]

	var out []byte
	switch format {
	case render.FormatHex:
		out = render.HexDump(data)
	default:
		tables := []render.Table{
			render.SummaryTable(render.Summary{
				Arch:        node.Arch(),
				RecordSize:  node.Size(),
				Requested:   length,
				Transferred: n,
			}),
			render.RegistersTable(cpuid.Decode(node.Layout(), data)),
		}
		out, err = render.Tables(format, tables)
		if err != nil {
			return err
		}
	}
	if format == render.FormatXlsx {
		path, err := common.WriteOutput(common.GetAppContext(cmd), output, cmdName, format, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report: %s\n", path)
		return nil
	}
	if output != "" {
		_, err = common.WriteOutput(common.GetAppContext(cmd), output, cmdName, format, out)
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// readRaw streams the record bytes straight to the output, so a failing
// writer shows up as a short transfer.
func readRaw(cmd *cobra.Command, node device.Node, f device.File, length int, output string) error {
	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		file, err := os.Create(output) // #nosec G304
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", output)
		}
		defer file.Close()
		w = file
	}
	dst := &device.WriterDestination{W: w}
	n := f.Read(dst, length)
	reportTransfer(cmd.ErrOrStderr(), node, length, n)
	if dst.Err != nil {
		return errors.Wrap(dst.Err, "failed to write record")
	}
	return nil
}

// reportTransfer logs the read and warns when fewer bytes arrived than the
// clamped request.
func reportTransfer(w io.Writer, node device.Node, requested, transferred int) {
	expected := min(max(requested, 0), node.Size())
	slog.Info("device read", slog.String("arch", node.Arch()), slog.Int("requested", requested), slog.Int("transferred", transferred))
	if transferred < expected {
		fmt.Fprintf(w, "Warning: short read, %d of %d bytes transferred\n", transferred, expected)
	}
}
