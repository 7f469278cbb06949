package utils

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorOldConstant              = "."
	environmentKeySeparatorNewConstant              = "_"
	listValueSeparatorConstant                      = ","
	configurationReadErrorTemplateConstant          = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant     = "failed to parse configuration: %w"
	embeddedConfigurationMergeErrorTemplateConstant = "failed to merge embedded configuration: %w"
	environmentBindingErrorTemplateConstant         = "failed to bind environment for %s: %w"
)

// ConfigurationLoader wraps Viper to load structured configuration files and environment overrides.
type ConfigurationLoader struct {
	configurationName         string
	configurationType         string
	environmentPrefix         string
	searchPaths               []string
	environmentKeyReplacer    *strings.Replacer
	embeddedConfiguration     []byte
	embeddedConfigurationType string
	environmentAliases        map[string][]string
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// NewConfigurationLoader creates a loader that searches known paths and respects an environment prefix.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName:      configurationName,
		configurationType:      configurationType,
		environmentPrefix:      environmentPrefix,
		searchPaths:            slices.Clone(searchPaths),
		environmentKeyReplacer: strings.NewReplacer(environmentKeySeparatorOldConstant, environmentKeySeparatorNewConstant),
		environmentAliases:     map[string][]string{},
	}
}

// SetEmbeddedConfiguration stores configuration data merged beneath the configuration file.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	if loader == nil {
		return
	}
	loader.embeddedConfigurationType = strings.TrimSpace(configurationType)
	loader.embeddedConfiguration = nil
	if len(configurationData) > 0 {
		loader.embeddedConfiguration = bytes.Clone(configurationData)
	}
}

// AddEnvironmentAlias binds additional unprefixed environment variables to configurationKey.
// The prefixed variable derived from the key keeps precedence over the aliases.
func (loader *ConfigurationLoader) AddEnvironmentAlias(configurationKey string, environmentVariableNames ...string) {
	if loader == nil || len(configurationKey) == 0 {
		return
	}
	for _, environmentVariableName := range environmentVariableNames {
		if trimmedName := strings.TrimSpace(environmentVariableName); len(trimmedName) > 0 {
			loader.environmentAliases[configurationKey] = append(loader.environmentAliases[configurationKey], trimmedName)
		}
	}
}

// LoadConfiguration decodes into targetConfiguration with precedence
// environment > configuration file > embedded configuration > defaultValues.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigName(loader.configurationName)
	viperInstance.SetConfigType(loader.configurationType)

	if mergeError := loader.mergeEmbeddedConfiguration(viperInstance); mergeError != nil {
		return LoadedConfiguration{}, mergeError
	}
	if bindError := loader.bindEnvironment(viperInstance); bindError != nil {
		return LoadedConfiguration{}, bindError
	}
	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}
	if readError := loader.mergeConfigurationFile(viperInstance, configurationFilePath); readError != nil {
		return LoadedConfiguration{}, readError
	}

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(listValueSeparatorConstant),
	))
	if unmarshalError := viperInstance.Unmarshal(targetConfiguration, decodeHook); unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}

func (loader *ConfigurationLoader) mergeEmbeddedConfiguration(viperInstance *viper.Viper) error {
	if len(loader.embeddedConfiguration) == 0 {
		return nil
	}

	embeddedType := loader.embeddedConfigurationType
	if len(embeddedType) == 0 {
		embeddedType = loader.configurationType
	}
	viperInstance.SetConfigType(embeddedType)
	defer viperInstance.SetConfigType(loader.configurationType)

	if mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.embeddedConfiguration)); mergeError != nil {
		return fmt.Errorf(embeddedConfigurationMergeErrorTemplateConstant, mergeError)
	}
	return nil
}

func (loader *ConfigurationLoader) bindEnvironment(viperInstance *viper.Viper) error {
	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	viperInstance.SetEnvKeyReplacer(loader.environmentKeyReplacer)
	viperInstance.AutomaticEnv()

	for configurationKey, aliases := range loader.environmentAliases {
		environmentNames := append([]string{loader.prefixedEnvironmentName(configurationKey)}, aliases...)
		if bindError := viperInstance.BindEnv(append([]string{configurationKey}, environmentNames...)...); bindError != nil {
			return fmt.Errorf(environmentBindingErrorTemplateConstant, configurationKey, bindError)
		}
	}
	return nil
}

// mergeConfigurationFile merges an explicit file, or the first match in the search paths.
// A missing searched file is not an error; a missing explicit file is.
func (loader *ConfigurationLoader) mergeConfigurationFile(viperInstance *viper.Viper, configurationFilePath string) error {
	for _, searchPath := range loader.searchPaths {
		viperInstance.AddConfigPath(searchPath)
	}
	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	}

	readError := viperInstance.MergeInConfig()
	var notFoundError viper.ConfigFileNotFoundError
	if readError != nil && !errors.As(readError, &notFoundError) {
		return fmt.Errorf(configurationReadErrorTemplateConstant, readError)
	}
	return nil
}

func (loader *ConfigurationLoader) prefixedEnvironmentName(configurationKey string) string {
	environmentKey := loader.environmentKeyReplacer.Replace(strings.ToUpper(configurationKey))
	if len(loader.environmentPrefix) == 0 {
		return environmentKey
	}
	return strings.ToUpper(loader.environmentPrefix) + environmentKeySeparatorNewConstant + environmentKey
}
