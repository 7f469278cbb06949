package depdoc

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/temirov/depdoc/internal/filesystem"
	"github.com/temirov/depdoc/internal/shared"
)

// Entry is a single validated [[dependency]] record.
type Entry struct {
	Name    string
	Purpose string
	Scope   shared.Scope
}

// Documentation is the deduplicated view of the documentation file.
type Documentation struct {
	Entries []Entry
	Names   []string
	Scopes  map[string]shared.Scope
}

// Loader reads and validates dep-doc.toml files.
type Loader struct {
	fileSystem shared.FileSystem
}

// NewLoader constructs a Loader backed by the provided file system.
func NewLoader(fileSystem shared.FileSystem) *Loader {
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}
	return &Loader{fileSystem: fileSystem}
}

// Path returns the location of the documentation file inside baseDirectory.
func Path(baseDirectory string) string {
	return filepath.Join(baseDirectory, shared.DocumentationFileNameConstant)
}

// Load reads the documentation file from baseDirectory and validates it.
func (loader *Loader) Load(baseDirectory string) (Documentation, error) {
	documentationPath := Path(baseDirectory)

	if _, statError := loader.fileSystem.Stat(documentationPath); statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return Documentation{}, &FileNotFoundError{Path: documentationPath}
		}
		return Documentation{}, &ReadError{Path: documentationPath, Cause: statError}
	}

	content, readError := loader.fileSystem.ReadFile(documentationPath)
	if readError != nil {
		return Documentation{}, &ReadError{Path: documentationPath, Cause: readError}
	}

	documentation, parseError := Parse(content)
	if parseError != nil {
		var validationError *SchemaValidationError
		if errors.As(parseError, &validationError) {
			return Documentation{}, validationError
		}
		return Documentation{}, &ParseError{Path: documentationPath, Cause: parseError}
	}

	return documentation, nil
}

// Parse decodes TOML content and validates it against the documentation schema.
func Parse(content []byte) (Documentation, error) {
	document := map[string]any{}
	if decodeError := toml.Unmarshal(content, &document); decodeError != nil {
		return Documentation{}, decodeError
	}

	entries, violations := validateDocument(document)
	if len(violations) > 0 {
		return Documentation{}, &SchemaValidationError{Violations: violations}
	}

	return buildDocumentation(entries), nil
}

// buildDocumentation collapses entries into a set of trimmed names; a later
// occurrence of a name overwrites the scope recorded for an earlier one.
func buildDocumentation(entries []Entry) Documentation {
	scopes := make(map[string]shared.Scope, len(entries))
	for _, entry := range entries {
		scopes[strings.TrimSpace(entry.Name)] = entry.Scope
	}

	names := make([]string, 0, len(scopes))
	for name := range scopes {
		names = append(names, name)
	}
	sort.Strings(names)

	return Documentation{
		Entries: entries,
		Names:   names,
		Scopes:  scopes,
	}
}
