package check

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/depdoc/internal/reconcile"
	"github.com/temirov/depdoc/internal/utils/flags"
	pathutils "github.com/temirov/depdoc/internal/utils/path"
)

const (
	commandUseConstant              = "check [directories...]"
	commandShortDescriptionConstant = "Verify dep-doc.toml against package.json or Cargo.toml"
	commandLongDescriptionConstant  = "check compares the dependencies declared in package.json or Cargo.toml with the entries documented in dep-doc.toml and reports undocumented, stale, or mis-scoped dependencies. Directories may be glob patterns."
	formatFlagNameConstant          = "format"
	formatFlagDescriptionConstant   = "Report format."
	colorFlagNameConstant           = "color"
	colorFlagDescriptionConstant    = "Colorize the text report."
	watchFlagNameConstant           = "watch"
	watchFlagShorthandConstant      = "w"
	watchFlagDescriptionConstant    = "Re-run the check whenever a manifest or dep-doc.toml changes."
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current check configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the check cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Checker               VerdictChecker
	HomeExpander          *pathutils.HomeExpander
}

// Build constructs the cobra command for the dependency documentation check.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.Run,
	}

	builder.BindFlags(command)

	return command, nil
}

// BindFlags registers the check flags on command's local flag set so other commands can run the check.
func (builder *CommandBuilder) BindFlags(command *cobra.Command) {
	if command == nil {
		return
	}
	defaults := DefaultConfiguration()
	flagSet := command.Flags()
	flags.AddChoiceFlag(flagSet, formatFlagNameConstant, string(defaults.Format), outputFormatNames(), formatFlagDescriptionConstant)
	flags.AddChoiceFlag(flagSet, colorFlagNameConstant, string(defaults.Color), colorModeNames(), colorFlagDescriptionConstant)
	flags.AddToggleFlag(flagSet, nil, watchFlagNameConstant, watchFlagShorthandConstant, defaults.Watch, watchFlagDescriptionConstant)
	flags.BindRootFlags(command)
}

// Run executes the check for command. Flags that command does not define fall back to configuration.
func (builder *CommandBuilder) Run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	checker := builder.Checker
	if checker == nil {
		checker = reconcile.NewReconciler(nil, logger)
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	service := NewService(checker, pathutils.NewRootExpander(builder.HomeExpander), command.OutOrStdout(), command.ErrOrStderr(), logger)
	return service.Run(executionContext, options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (Options, error) {
	configuration := builder.resolveConfiguration()
	options := Options{
		Roots:  configuration.rootEntries(),
		Format: configuration.Format,
		Color:  configuration.Color,
		Watch:  configuration.Watch,
	}

	explicitRoots := sanitizeRoots(arguments)
	explicitRoots = append(explicitRoots, sanitizeRoots(flags.ChangedRoots(command))...)
	if len(explicitRoots) > 0 {
		options.Roots = explicitRoots
	}

	if formatFlag := changedFlag(command, formatFlagNameConstant); formatFlag != nil {
		format, formatError := ParseOutputFormat(formatFlag.Value.String())
		if formatError != nil {
			return Options{}, formatError
		}
		options.Format = format
	}

	if colorFlag := changedFlag(command, colorFlagNameConstant); colorFlag != nil {
		colorMode, colorError := ParseColorMode(colorFlag.Value.String())
		if colorError != nil {
			return Options{}, colorError
		}
		options.Color = colorMode
	}

	if watchFlag := changedFlag(command, watchFlagNameConstant); watchFlag != nil {
		watchEnabled, watchError := flags.ParseToggle(watchFlag.Value.String())
		if watchError != nil {
			return Options{}, watchError
		}
		options.Watch = watchEnabled
	}

	return options, nil
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func changedFlag(command *cobra.Command, flagName string) *pflag.Flag {
	if command == nil {
		return nil
	}
	flag := command.Flags().Lookup(flagName)
	if flag == nil || !flag.Changed {
		return nil
	}
	return flag
}

func outputFormatNames() []string {
	names := make([]string, 0, len(OutputFormats()))
	for _, format := range OutputFormats() {
		names = append(names, string(format))
	}
	return names
}

func colorModeNames() []string {
	names := make([]string, 0, len(ColorModes()))
	for _, mode := range ColorModes() {
		names = append(names, string(mode))
	}
	return names
}
