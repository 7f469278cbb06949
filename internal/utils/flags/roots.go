// Package flags provides helpers for binding standardized flags to Cobra commands.
package flags

import "github.com/spf13/cobra"

const (
	// DefaultRootFlagName exposes the shared project root flag name.
	DefaultRootFlagName = "root"
	// DefaultRootFlagUsage describes the shared project root flag purpose.
	DefaultRootFlagUsage = "Project directories or glob patterns to check (repeatable)"
)

// BindRootFlags attaches the repeatable --root flag to command. Binding twice keeps the existing flag.
func BindRootFlags(command *cobra.Command) {
	if command == nil || command.Flags().Lookup(DefaultRootFlagName) != nil {
		return
	}
	command.Flags().StringArray(DefaultRootFlagName, nil, DefaultRootFlagUsage)
}

// ChangedRoots returns the --root values given on the command line, or nil when the flag was not set.
func ChangedRoots(command *cobra.Command) []string {
	if command == nil {
		return nil
	}
	flag := command.Flags().Lookup(DefaultRootFlagName)
	if flag == nil || !flag.Changed {
		return nil
	}
	roots, rootsError := command.Flags().GetStringArray(DefaultRootFlagName)
	if rootsError != nil {
		return nil
	}
	return roots
}
