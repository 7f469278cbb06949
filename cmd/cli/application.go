package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/depdoc/internal/check"
	"github.com/temirov/depdoc/internal/utils"
	"github.com/temirov/depdoc/internal/utils/flags"
)

const (
	applicationNameConstant                 = "depdoc"
	applicationShortDescriptionConstant     = "Audit dep-doc.toml against the project manifest"
	applicationLongDescriptionConstant      = "depdoc verifies that every dependency declared in package.json or Cargo.toml is documented in dep-doc.toml with a purpose and the matching scope. Running depdoc without a subcommand checks the configured base directory."
	versionTemplateConstant                 = "depdoc version: {{.Version}}\n"
	versionLineTemplateConstant             = "depdoc version: %s\n"
	versionCommandNameConstant              = "version"
	versionCommandShortDescriptionConstant  = "Print the depdoc version"
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML, JSON, or TOML)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	runFlagNameConstant                     = "run"
	runFlagUsageConstant                    = "Run the check (default behavior)."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	checkConfigurationKeyConstant           = "check"
	legacyBaseDirectoryEnvironmentConstant  = "DEPDOC_BASE_DIR"
	environmentPrefixConstant               = "DEPDOC"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandDebugMessageConstant         = "depdoc CLI executed"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentsConstant               = "arguments"
	defaultConfigurationSearchPathConstant  = "."
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Check  check.Configuration            `mapstructure:"check"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	checkBuilder          *check.CommandBuilder
	versionResolver       func() string
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())
	configurationLoader.AddEnvironmentAlias(check.BaseDirectoryKey(checkConfigurationKeyConstant), legacyBaseDirectoryEnvironmentConstant)

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
		versionResolver:     resolveVersion,
	}

	application.checkBuilder = &check.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() check.Configuration {
			return application.configuration.Check
		},
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetVersionTemplate(versionTemplateConstant)
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.Flags().Bool(runFlagNameConstant, false, runFlagUsageConstant)
	_ = cobraCommand.Flags().MarkHidden(runFlagNameConstant)
	application.checkBuilder.BindFlags(cobraCommand)

	checkCommand, checkBuildError := application.checkBuilder.Build()
	if checkBuildError == nil {
		cobraCommand.AddCommand(checkCommand)
	}

	cobraCommand.AddCommand(&cobra.Command{
		Use:   versionCommandNameConstant,
		Short: versionCommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return nil
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			_, writeError := fmt.Fprintf(command.OutOrStdout(), versionLineTemplateConstant, application.versionResolver())
			return writeError
		},
	})

	application.rootCommand = cobraCommand

	return application
}

// SetOutputs redirects the report and diagnostic streams of every command.
func (application *Application) SetOutputs(output io.Writer, errorOutput io.Writer) {
	application.rootCommand.SetOut(output)
	application.rootCommand.SetErr(errorOutput)
}

// ExecuteContext runs the command hierarchy with arguments and flushes the logger afterwards.
func (application *Application) ExecuteContext(executionContext context.Context, arguments []string) error {
	application.rootCommand.Version = application.versionResolver()
	application.rootCommand.SetArgs(flags.NormalizeToggleArguments(arguments))

	executionError := application.rootCommand.ExecuteContext(executionContext)
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute runs the command line of the current process. Interrupts cancel watch mode.
func (application *Application) Execute() error {
	executionContext, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return application.ExecuteContext(executionContext, os.Args[1:])
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range check.DefaultConfigurationValues(checkConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Strings(logFieldArgumentsConstant, arguments),
	)
	return application.checkBuilder.Run(command, arguments)
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
