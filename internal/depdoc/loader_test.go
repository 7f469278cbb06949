package depdoc_test

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/depdoc/internal/depdoc"
	"github.com/temirov/depdoc/internal/filesystem"
	"github.com/temirov/depdoc/internal/shared"
)

const (
	loaderSubtestNameTemplateConstant = "%d_%s"
	validDocumentationContentConstant = `
[[dependency]]
name = "serde"
purpose = "Serialize"
scope = "prod"

[[dependency]]
name = "serde_json"
purpose = "Fixtures"
scope = "dev"   # test data only
`
	duplicateDocumentationContentConstant = `
[[dependency]]
name = "cc"
purpose = "Compile C shims"
scope = "prod"

[[dependency]]
name = "  cc "
purpose = "Compile C shims"
scope = "build"
`
)

func writeDocumentation(testInstance *testing.T, content string) string {
	testInstance.Helper()
	baseDirectory := testInstance.TempDir()
	writeError := os.WriteFile(filepath.Join(baseDirectory, shared.DocumentationFileNameConstant), []byte(strings.TrimSpace(content)+"\n"), 0o600)
	require.NoError(testInstance, writeError)
	return baseDirectory
}

func TestLoaderLoadValidDocumentation(testInstance *testing.T) {
	baseDirectory := writeDocumentation(testInstance, validDocumentationContentConstant)

	documentation, loadError := depdoc.NewLoader(filesystem.OSFileSystem{}).Load(baseDirectory)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"serde", "serde_json"}, documentation.Names)
	require.Equal(testInstance, map[string]shared.Scope{
		"serde":      shared.ScopeProd,
		"serde_json": shared.ScopeDev,
	}, documentation.Scopes)
	require.Len(testInstance, documentation.Entries, 2)
	require.Equal(testInstance, "Fixtures", documentation.Entries[1].Purpose)
}

func TestLoaderLoadCollapsesDuplicateNames(testInstance *testing.T) {
	baseDirectory := writeDocumentation(testInstance, duplicateDocumentationContentConstant)

	documentation, loadError := depdoc.NewLoader(nil).Load(baseDirectory)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"cc"}, documentation.Names)
	require.Equal(testInstance, shared.ScopeBuild, documentation.Scopes["cc"])
}

func TestLoaderLoadAcceptsWhitespaceValues(testInstance *testing.T) {
	baseDirectory := writeDocumentation(testInstance, `
[[dependency]]
name = " lodash "
purpose = " "
scope = "prod"
`)

	documentation, loadError := depdoc.NewLoader(nil).Load(baseDirectory)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"lodash"}, documentation.Names)
	require.Equal(testInstance, shared.ScopeProd, documentation.Scopes["lodash"])
	require.Equal(testInstance, depdoc.Entry{Name: " lodash ", Purpose: " ", Scope: shared.ScopeProd}, documentation.Entries[0])
}

func TestLoaderLoadReportsSchemaViolations(testInstance *testing.T) {
	testCases := []struct {
		name               string
		content            string
		expectedViolations []depdoc.Violation
	}{
		{
			name: "missing_scope",
			content: `
[[dependency]]
name = "lodash"
purpose = "Utility lib"
# scope missing
`,
			expectedViolations: []depdoc.Violation{
				{Path: "dependency.0.scope", Message: "Required"},
			},
		},
		{
			name: "unknown_field",
			content: `
[[dependency]]
name = "serde"
purpose = "Serialize"
scope = "prod"
extra = "nope"
`,
			expectedViolations: []depdoc.Violation{
				{Path: "dependency.0", Message: "Unrecognized key(s) in object: 'extra'"},
			},
		},
		{
			name:    "empty_dependency_list",
			content: `dependency = []`,
			expectedViolations: []depdoc.Violation{
				{Path: "dependency", Message: "dep-doc.toml must have at least one [[dependency]] entry"},
			},
		},
		{
			name:    "missing_dependency_key",
			content: `title = "dependencies"`,
			expectedViolations: []depdoc.Violation{
				{Path: "dependency", Message: "Required"},
			},
		},
		{
			name:    "dependency_not_array",
			content: `dependency = "serde"`,
			expectedViolations: []depdoc.Violation{
				{Path: "dependency", Message: "Expected array, received string"},
			},
		},
		{
			name:    "entry_not_table",
			content: `dependency = ["serde"]`,
			expectedViolations: []depdoc.Violation{
				{Path: "dependency.0", Message: "Expected object, received string"},
			},
		},
		{
			name: "wrong_types_and_values",
			content: `
[[dependency]]
name = "serde"
purpose = "Serialize"
scope = "prod"

[[dependency]]
name = 5
purpose = ""
scope = "test"
`,
			expectedViolations: []depdoc.Violation{
				{Path: "dependency.1.name", Message: "Expected string, received number"},
				{Path: "dependency.1.purpose", Message: "purpose must be non-empty"},
				{Path: "dependency.1.scope", Message: "Invalid enum value. Expected 'prod' | 'dev' | 'build', received 'test'"},
			},
		},
		{
			name: "empty_entry_and_sorted_unknown_keys",
			content: `
[[dependency]]

[[dependency]]
name = ""
purpose = "Blank name"
scope = "dev"
zeta = 1
alpha = true
`,
			expectedViolations: []depdoc.Violation{
				{Path: "dependency.0.name", Message: "Required"},
				{Path: "dependency.0.purpose", Message: "Required"},
				{Path: "dependency.0.scope", Message: "Required"},
				{Path: "dependency.1.name", Message: "name must be non-empty"},
				{Path: "dependency.1", Message: "Unrecognized key(s) in object: 'alpha', 'zeta'"},
			},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(loaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			baseDirectory := writeDocumentation(testInstance, testCase.content)

			_, loadError := depdoc.NewLoader(filesystem.OSFileSystem{}).Load(baseDirectory)
			require.Error(testInstance, loadError)

			var validationError *depdoc.SchemaValidationError
			require.ErrorAs(testInstance, loadError, &validationError)
			require.Equal(testInstance, testCase.expectedViolations, validationError.Violations)
			require.True(testInstance, strings.HasPrefix(loadError.Error(), "Invalid dep-doc schema:\n"))
			for _, violation := range testCase.expectedViolations {
				require.Contains(testInstance, loadError.Error(), fmt.Sprintf("- %s: %s", violation.Path, violation.Message))
			}
		})
	}
}

func TestLoaderLoadMissingFile(testInstance *testing.T) {
	baseDirectory := testInstance.TempDir()

	_, loadError := depdoc.NewLoader(filesystem.OSFileSystem{}).Load(baseDirectory)
	require.Error(testInstance, loadError)

	var notFoundError *depdoc.FileNotFoundError
	require.ErrorAs(testInstance, loadError, &notFoundError)
	require.True(testInstance, errors.Is(loadError, fs.ErrNotExist))
	require.Equal(testInstance, depdoc.Path(baseDirectory)+" not found", loadError.Error())
}

func TestLoaderLoadMalformedToml(testInstance *testing.T) {
	baseDirectory := writeDocumentation(testInstance, "[[dependency]\nname = ")

	_, loadError := depdoc.NewLoader(filesystem.OSFileSystem{}).Load(baseDirectory)
	require.Error(testInstance, loadError)

	var parseError *depdoc.ParseError
	require.ErrorAs(testInstance, loadError, &parseError)
	require.Equal(testInstance, depdoc.Path(baseDirectory), parseError.Path)

	var validationError *depdoc.SchemaValidationError
	require.False(testInstance, errors.As(loadError, &validationError))
}

func TestViolationStringUsesRootForEmptyPath(testInstance *testing.T) {
	violation := depdoc.Violation{Message: "Expected object, received array"}
	require.Equal(testInstance, "- (root): Expected object, received array", violation.String())
}
