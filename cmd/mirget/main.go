// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command mirget extracts the return-oriented gadgets of every
// version of a synthesized program.
//
// Usage:
//
//	mirget <programDir>
//
// Each subdirectory of programDir is a program version holding one
// machine IR dump per function. mirget writes the version's gadgets,
// as a JSON array, to a "gadgets" file in the same directory,
// replacing any previous one.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/divsynth/benchagg/mir"
)

var rootCmd = &cobra.Command{
	Use:          "mirget <programDir>",
	Short:        "Extract gadgets from machine IR function dumps",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		return mir.ExtractDir(args[0], logger)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
