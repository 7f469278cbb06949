package flags

import (
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestAddToggleFlagParsesValues(t *testing.T) {
	testCases := []struct {
		name            string
		arguments       []string
		expectedValue   bool
		expectedChanged bool
	}{
		{name: "DefaultFalse", arguments: []string{}, expectedValue: false, expectedChanged: false},
		{name: "ImplicitTrue", arguments: []string{"--watch"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitYes", arguments: []string{"--watch", "yes"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitTrueUppercase", arguments: []string{"--watch", "TRUE"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitNo", arguments: []string{"--watch", "no"}, expectedValue: false, expectedChanged: true},
		{name: "ExplicitFalseUppercase", arguments: []string{"--watch", "FALSE"}, expectedValue: false, expectedChanged: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			command := &cobra.Command{}

			var watchValue bool
			AddToggleFlag(command.Flags(), &watchValue, "watch", "", false, "Re-run when files change")

			normalizedArguments := NormalizeToggleArguments(testCase.arguments)
			parseError := command.ParseFlags(normalizedArguments)
			require.NoError(t, parseError)

			require.Equal(t, testCase.expectedValue, watchValue)

			flag := command.Flags().Lookup("watch")
			require.NotNil(t, flag)
			require.Equal(t, testCase.expectedChanged, flag.Changed)
		})
	}
}

func TestAddToggleFlagRejectsInvalidValues(t *testing.T) {
	command := &cobra.Command{}

	var watchValue bool
	AddToggleFlag(command.Flags(), &watchValue, "watch", "", false, "Re-run when files change")

	normalizedArguments := NormalizeToggleArguments([]string{"--watch", "maybe"})
	parseError := command.ParseFlags(normalizedArguments)
	require.Error(t, parseError)

	require.Equal(t, false, watchValue)

	flag := command.Flags().Lookup("watch")
	require.NotNil(t, flag)
	require.False(t, flag.Changed)
}

func TestNormalizeToggleArgumentsHandlesShorthand(t *testing.T) {
	command := &cobra.Command{}

	var watchValue bool
	AddToggleFlag(command.Flags(), &watchValue, "watch", "w", false, "Re-run when files change")

	normalizedArguments := NormalizeToggleArguments([]string{"-w", "no"})
	parseError := command.ParseFlags(normalizedArguments)
	require.NoError(t, parseError)

	require.False(t, watchValue)

	flag := command.Flags().Lookup("watch")
	require.NotNil(t, flag)
	require.True(t, flag.Changed)
}

func TestParseToggle(testInstance *testing.T) {
	testCases := []struct {
		rawValue      string
		expectedValue bool
		expectError   bool
	}{
		{rawValue: "", expectedValue: true},
		{rawValue: " On ", expectedValue: true},
		{rawValue: "y", expectedValue: true},
		{rawValue: "1", expectedValue: true},
		{rawValue: "off", expectedValue: false},
		{rawValue: "N", expectedValue: false},
		{rawValue: "0", expectedValue: false},
		{rawValue: "sometimes", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.rawValue), func(testInstance *testing.T) {
			enabled, parseError := ParseToggle(testCase.rawValue)
			if testCase.expectError {
				require.ErrorContains(testInstance, parseError, testCase.rawValue)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedValue, enabled)
		})
	}
}
