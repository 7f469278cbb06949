package check_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/depdoc/internal/check"
)

func TestParseOutputFormat(testInstance *testing.T) {
	testCases := []struct {
		name           string
		rawValue       string
		expectedFormat check.OutputFormat
		expectError    bool
	}{
		{name: "empty_defaults_to_text", rawValue: "", expectedFormat: check.OutputFormatText},
		{name: "text", rawValue: "text", expectedFormat: check.OutputFormatText},
		{name: "json_mixed_case", rawValue: " JSON ", expectedFormat: check.OutputFormatJSON},
		{name: "yaml", rawValue: "yaml", expectedFormat: check.OutputFormatYAML},
		{name: "unsupported", rawValue: "xml", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			format, parseError := check.ParseOutputFormat(testCase.rawValue)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				require.Contains(testInstance, parseError.Error(), "unsupported output format")
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedFormat, format)

			var decoded check.OutputFormat
			require.NoError(testInstance, decoded.UnmarshalText([]byte(testCase.rawValue)))
			require.Equal(testInstance, testCase.expectedFormat, decoded)
		})
	}
}

func TestParseColorMode(testInstance *testing.T) {
	testCases := []struct {
		name         string
		rawValue     string
		expectedMode check.ColorMode
		expectError  bool
	}{
		{name: "empty_defaults_to_auto", rawValue: "", expectedMode: check.ColorModeAuto},
		{name: "always", rawValue: "Always", expectedMode: check.ColorModeAlways},
		{name: "never", rawValue: "never", expectedMode: check.ColorModeNever},
		{name: "unsupported", rawValue: "sometimes", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			var decoded check.ColorMode
			decodeError := decoded.UnmarshalText([]byte(testCase.rawValue))
			if testCase.expectError {
				require.Error(testInstance, decodeError)
				return
			}
			require.NoError(testInstance, decodeError)
			require.Equal(testInstance, testCase.expectedMode, decoded)
		})
	}
}

func TestDefaultConfigurationValues(testInstance *testing.T) {
	defaults := check.DefaultConfigurationValues("check")
	require.Equal(testInstance, map[string]any{
		"check.base_dir": ".",
		"check.roots":    []string{},
		"check.format":   "text",
		"check.color":    "auto",
		"check.watch":    false,
	}, defaults)
	require.Equal(testInstance, "check.base_dir", check.BaseDirectoryKey("check"))
	require.Equal(testInstance, "base_dir", check.BaseDirectoryKey(""))
}
