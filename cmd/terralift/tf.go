package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terralift/terralift/pkg/commands"
)

func supportedCommands() string {
	names := make([]string, 0, len(commands.Table))
	for name := range commands.Table {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// newTfCommand is the root invocation form: the subcommand runs against the
// project-wide default stack.
func newTfCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tf <command> [args...]",
		Short: "Run a terraform command against the default stack",
		Long:  fmt.Sprintf("Run one of the supported terraform commands (%s) against the default stack.", supportedCommands()),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			return a.dispatcher.RunRoot(cmd.Context(), args[0], args[1:])
		},
	}
}

// newTfActionCommand is the action invocation form: the first positional
// argument names the stack the subcommand runs against.
func newTfActionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tf-action <action> <command> [args...]",
		Short: "Run a terraform command against a named stack",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			return a.dispatcher.RunAction(cmd.Context(), args[0], args[1], args[2:])
		},
	}
}
