package manifest

import (
	"encoding/json"

	"github.com/temirov/depdoc/internal/shared"
)

type packageJSONDocument struct {
	Dependencies    map[string]json.RawMessage `json:"dependencies"`
	DevDependencies map[string]json.RawMessage `json:"devDependencies"`
}

// PackageJSONReader reads Node-style manifests.
type PackageJSONReader struct {
	fileSystem shared.FileSystem
}

// NewPackageJSONReader constructs a PackageJSONReader backed by the provided file system.
func NewPackageJSONReader(fileSystem shared.FileSystem) *PackageJSONReader {
	return &PackageJSONReader{fileSystem: resolveFileSystem(fileSystem)}
}

// Read maps dependencies to prod and devDependencies to dev; a name listed in
// both keeps prod.
func (reader *PackageJSONReader) Read(baseDirectory string) (Inventory, error) {
	manifestPath := Path(baseDirectory, shared.ManifestLabelPackageJSON)

	content, readError := readManifest(reader.fileSystem, manifestPath)
	if readError != nil {
		return Inventory{}, readError
	}

	var document packageJSONDocument
	if decodeError := json.Unmarshal(content, &document); decodeError != nil {
		return Inventory{}, &ParseError{Path: manifestPath, Cause: decodeError}
	}

	assignments := scopeAssignments{}
	for name := range document.Dependencies {
		assignments.assignIfAbsent(name, shared.ScopeProd)
	}
	for name := range document.DevDependencies {
		assignments.assignIfAbsent(name, shared.ScopeDev)
	}

	return assignments.inventory(shared.ManifestLabelPackageJSON), nil
}
