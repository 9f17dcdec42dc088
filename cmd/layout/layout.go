// Package layout is a subcommand of the root command. It prints the field
// offsets and widths of the identification record.
package layout

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"cpuidg/internal/common"
	"cpuidg/internal/cpuid"
	"cpuidg/internal/device"
	"cpuidg/internal/render"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const cmdName = "layout"

var examples = []string{
	fmt.Sprintf("  Layout of the native record:    $ %s %s", common.AppName, cmdName),
	fmt.Sprintf("  64-bit layout as YAML:          $ %s %s --arch arm64 --format yaml", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Show the identification record layout",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

var (
	flagArch   string
	flagFormat string
	flagOutput string
)

const (
	flagArchName   = "arch"
	flagFormatName = "format"
	flagOutputName = "output"
)

func init() {
	Cmd.Flags().StringVar(&flagArch, flagArchName, defaultArch(), "")
	Cmd.Flags().StringVar(&flagFormat, flagFormatName, render.FormatTxt, "")
	Cmd.Flags().StringVar(&flagOutput, flagOutputName, "", "")

	Cmd.SetUsageFunc(usageFunc)
}

// defaultArch is the native variant, or the 32-bit one when this build has none.
func defaultArch() string {
	if device.NativeArch == "" {
		return cpuid.Arch32
	}
	return device.NativeArch
}

func usageFunc(cmd *cobra.Command) error {
	return common.UsageFunc(cmd, []common.FlagGroup{
		{
			GroupName: "Options",
			Flags: []common.Flag{
				{
					Name: flagArchName,
					Help: fmt.Sprintf("record variant, one of: %s", strings.Join(common.Archs, ", ")),
				},
				{
					Name: flagFormatName,
					Help: fmt.Sprintf("choose output format from: %s", strings.Join(render.TableFormats, ", ")),
				},
				{
					Name: flagOutputName,
					Help: "write output to this file instead of stdout",
				},
			},
		},
	})
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if !slices.Contains(common.Archs, flagArch) {
		err := errors.Wrapf(common.ErrUnknownArch, "--%s must be one of: %s", flagArchName, strings.Join(common.Archs, ", "))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	if err := common.ValidateFormat(flagFormat, render.TableFormats); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	err := run(cmd, flagArch, flagFormat, flagOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func run(cmd *cobra.Command, arch, format, output string) error {
	fields, err := cpuid.Layout(arch)
	if err != nil {
		return err
	}
	out, err := render.Tables(format, []render.Table{render.LayoutTable(fields)})
	if err != nil {
		return err
	}
	if output != "" || format == render.FormatXlsx {
		path, err := common.WriteOutput(common.GetAppContext(cmd), output, cmdName, format, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Layout: %s\n", path)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
