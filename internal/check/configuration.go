package check

import "strings"

const (
	configurationBaseDirectoryKeyConstant = "base_dir"
	configurationRootsKeyConstant         = "roots"
	configurationFormatKeyConstant        = "format"
	configurationColorKeyConstant         = "color"
	configurationWatchKeyConstant         = "watch"
	configurationKeySeparatorConstant     = "."
	defaultBaseDirectoryConstant          = "."
)

// Configuration captures persistent settings for the check command.
type Configuration struct {
	BaseDirectory string       `mapstructure:"base_dir"`
	Roots         []string     `mapstructure:"roots"`
	Format        OutputFormat `mapstructure:"format"`
	Color         ColorMode    `mapstructure:"color"`
	Watch         bool         `mapstructure:"watch"`
}

// DefaultConfiguration returns baseline configuration values for the check command.
func DefaultConfiguration() Configuration {
	return Configuration{
		BaseDirectory: defaultBaseDirectoryConstant,
		Roots:         []string{},
		Format:        OutputFormatText,
		Color:         ColorModeAuto,
		Watch:         false,
	}
}

// DefaultConfigurationValues exposes the defaults as Viper keys nested under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		ConfigurationKey(prefix, configurationBaseDirectoryKeyConstant): defaults.BaseDirectory,
		ConfigurationKey(prefix, configurationRootsKeyConstant):         defaults.Roots,
		ConfigurationKey(prefix, configurationFormatKeyConstant):        string(defaults.Format),
		ConfigurationKey(prefix, configurationColorKeyConstant):         string(defaults.Color),
		ConfigurationKey(prefix, configurationWatchKeyConstant):         defaults.Watch,
	}
}

// BaseDirectoryKey returns the Viper key of the base directory setting nested under prefix.
func BaseDirectoryKey(prefix string) string {
	return ConfigurationKey(prefix, configurationBaseDirectoryKeyConstant)
}

// ConfigurationKey joins prefix and key with the Viper separator.
func ConfigurationKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration Configuration) sanitize() Configuration {
	sanitized := configuration
	sanitized.BaseDirectory = strings.TrimSpace(configuration.BaseDirectory)
	sanitized.Roots = sanitizeRoots(configuration.Roots)
	if len(sanitized.Format) == 0 {
		sanitized.Format = OutputFormatText
	}
	if len(sanitized.Color) == 0 {
		sanitized.Color = ColorModeAuto
	}
	return sanitized
}

// rootEntries lists the configured roots, falling back to the base directory.
func (configuration Configuration) rootEntries() []string {
	if len(configuration.Roots) > 0 {
		return append([]string{}, configuration.Roots...)
	}
	if len(configuration.BaseDirectory) > 0 {
		return []string{configuration.BaseDirectory}
	}
	return []string{defaultBaseDirectoryConstant}
}

func sanitizeRoots(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
