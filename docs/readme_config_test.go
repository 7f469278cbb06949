package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/depdoc/cmd/cli"
	"github.com/temirov/depdoc/internal/check"
	"github.com/temirov/depdoc/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	readmeSnippetFileNameConstant    = "config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
	readmeEnvironmentPrefixConstant  = "DEPDOCREADME"
)

func TestReadmeConfigurationLoads(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	snippetContent := strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])

	snippetPath := filepath.Join(testInstance.TempDir(), readmeSnippetFileNameConstant)
	require.NoError(testInstance, os.WriteFile(snippetPath, []byte(snippetContent), 0o600))

	loader := utils.NewConfigurationLoader("config", "yaml", readmeEnvironmentPrefixConstant, nil)
	loader.SetEmbeddedConfiguration(cli.EmbeddedDefaultConfiguration())

	var configuration cli.ApplicationConfiguration
	metadata, loadError := loader.LoadConfiguration(snippetPath, check.DefaultConfigurationValues("check"), &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, snippetPath, metadata.ConfigFileUsed)

	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.Equal(testInstance, []string{"packages/*", "crates/core"}, configuration.Check.Roots)
	require.Equal(testInstance, check.OutputFormatText, configuration.Check.Format)
	require.Equal(testInstance, check.ColorModeAuto, configuration.Check.Color)
	require.False(testInstance, configuration.Check.Watch)
}
