/*
 * Lox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/krotik/lox/cli/tool"
	"github.com/krotik/lox/config"
)

var (
	logFile  string
	logLevel string
	quiet    bool
	fmtExt   string
)

func newInterpreter() *tool.CLIInterpreter {
	interpreter := tool.NewCLIInterpreter()

	interpreter.LogFile = &logFile
	interpreter.LogLevel = &logLevel

	config.Config[config.LogQuiet] = quiet

	return interpreter
}

var rootCmd = &cobra.Command{
	Use:   "lox [script]",
	Short: "Lox interpreter",
	Long: `lox is a tree-walking interpreter for the Lox language.

Lox is a small dynamically typed language with first-class functions,
lexical scoping, closures and single inheritance.

Run without arguments to get an interactive console, or pass a script
file to execute it.`,
	Version:       config.ProductVersion,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch len(args) {
		case 0:
			exit(newInterpreter().Interact())
		case 1:
			exit(newInterpreter().RunFile(args[0]))
		default:
			usage()
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Execute a Lox script file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exit(newInterpreter().RunFile(args[0]))
		return nil
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exit(newInterpreter().Interact())
		return nil
	},
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [dir]",
	Short: "Format all Lox files in a directory structure",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := os.Getwd()
		if len(args) == 1 {
			dir = args[0]
		}
		if err := tool.Format(dir, fmtExt, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(tool.StatusCompile)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "logfile", "", "Log to a file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "loglevel", "Info", "Logging level (Debug, Info, Error)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress all log output")

	fmtCmd.Flags().StringVar(&fmtExt, "ext", ".lox", "Extension for Lox files")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(fmtCmd)
}

func exit(status int) {
	if status != tool.StatusOk {
		os.Exit(status)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: lox [script]")
	os.Exit(tool.StatusUsage)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		usage()
	}
}
