// Package cmd implements the vscope CLI commands.
//
// A root command dispatches to subcommands registered from init functions
// (run, config).
package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string, out io.Writer) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "vscope",
	Short: "vscope - component scopes and a deterministic scheduler",
	Long: `vscope mounts components on an in-memory DOM and drives their
update, render and teardown work through a single-threaded scheduler.

Use "vscope <command> --help" for more information about a command.`,
	Usage: "vscope <command> [dir]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
	slices.SortFunc(rootCmd.SubCommands, func(a, b *Command) int {
		return strings.Compare(a.Name, b.Name)
	})
}

// Execute runs the CLI with the given arguments, writing output to out.
func Execute(args []string, out io.Writer) error {
	// Handle no arguments
	if len(args) == 0 {
		printHelp(out, rootCmd)
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp(out, rootCmd)
		return nil
	case "-v", "--version", "version":
		fmt.Fprintf(out, "vscope version %s (built %s)\n", Version, BuildTime)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		printHelp(out, rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(out, cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs, out)
}

// projectDir returns the directory argument of a command, defaulting to the
// current directory.
func projectDir(args []string) (string, error) {
	switch len(args) {
	case 0:
		return ".", nil
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("expected at most one directory argument, got %d", len(args))
	}
}

func printHelp(out io.Writer, cmd *Command) {
	fmt.Fprintln(out, cmd.Long)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %s\n", cmd.Usage)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(out, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Flags:")
	fmt.Fprintln(out, "  -h, --help           Show help for a command")
	fmt.Fprintln(out, "  -v, --version        Show version information")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintln(out, "  vscope.yaml or vscope.toml in the project directory (yaml wins)")
}

func printCommandHelp(out io.Writer, cmd *Command) {
	fmt.Fprintln(out, cmd.Long)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %s\n", cmd.Usage)
}
