package check

import (
	"errors"
	"fmt"
	"strings"
)

const (
	outputFormatTextStringConstant          = "text"
	outputFormatJSONStringConstant          = "json"
	outputFormatYAMLStringConstant          = "yaml"
	colorModeAutoStringConstant             = "auto"
	colorModeAlwaysStringConstant           = "always"
	colorModeNeverStringConstant            = "never"
	unsupportedOutputFormatTemplateConstant = "unsupported output format %q (expected text, json, or yaml)"
	unsupportedColorModeTemplateConstant    = "unsupported color mode %q (expected auto, always, or never)"
)

// ErrCheckFailed signals that at least one project root failed the audit. The
// report has already been written when it is returned.
var ErrCheckFailed = errors.New("dependency documentation check failed")

// OutputFormat selects how verdicts are rendered.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatText OutputFormat = OutputFormat(outputFormatTextStringConstant)
	OutputFormatJSON OutputFormat = OutputFormat(outputFormatJSONStringConstant)
	OutputFormatYAML OutputFormat = OutputFormat(outputFormatYAMLStringConstant)
)

// OutputFormats lists the supported output formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{OutputFormatText, OutputFormatJSON, OutputFormatYAML}
}

// ParseOutputFormat normalizes rawValue. An empty value selects text.
func ParseOutputFormat(rawValue string) (OutputFormat, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		return OutputFormatText, nil
	}
	for _, candidate := range OutputFormats() {
		if string(candidate) == normalizedValue {
			return candidate, nil
		}
	}
	return "", fmt.Errorf(unsupportedOutputFormatTemplateConstant, rawValue)
}

// UnmarshalText lets configuration decoding validate output formats.
func (format *OutputFormat) UnmarshalText(text []byte) error {
	parsedFormat, parseError := ParseOutputFormat(string(text))
	if parseError != nil {
		return parseError
	}
	*format = parsedFormat
	return nil
}

// ColorMode controls ANSI styling of the text report.
type ColorMode string

// Supported color modes.
const (
	ColorModeAuto   ColorMode = ColorMode(colorModeAutoStringConstant)
	ColorModeAlways ColorMode = ColorMode(colorModeAlwaysStringConstant)
	ColorModeNever  ColorMode = ColorMode(colorModeNeverStringConstant)
)

// ColorModes lists the supported color modes.
func ColorModes() []ColorMode {
	return []ColorMode{ColorModeAuto, ColorModeAlways, ColorModeNever}
}

// ParseColorMode normalizes rawValue. An empty value selects auto.
func ParseColorMode(rawValue string) (ColorMode, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		return ColorModeAuto, nil
	}
	for _, candidate := range ColorModes() {
		if string(candidate) == normalizedValue {
			return candidate, nil
		}
	}
	return "", fmt.Errorf(unsupportedColorModeTemplateConstant, rawValue)
}

// UnmarshalText lets configuration decoding validate color modes.
func (mode *ColorMode) UnmarshalText(text []byte) error {
	parsedMode, parseError := ParseColorMode(string(text))
	if parseError != nil {
		return parseError
	}
	*mode = parsedMode
	return nil
}

// Options captures one resolved invocation of the check workflow.
type Options struct {
	Roots  []string
	Format OutputFormat
	Color  ColorMode
	Watch  bool
}
