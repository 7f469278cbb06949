package manifest

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/temirov/depdoc/internal/shared"
)

// cargoDocument captures only the dependency tables; values may be version
// strings or inline tables and are never inspected.
type cargoDocument struct {
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

// CargoTOMLReader reads Rust-style manifests.
type CargoTOMLReader struct {
	fileSystem shared.FileSystem
}

// NewCargoTOMLReader constructs a CargoTOMLReader backed by the provided file system.
func NewCargoTOMLReader(fileSystem shared.FileSystem) *CargoTOMLReader {
	return &CargoTOMLReader{fileSystem: resolveFileSystem(fileSystem)}
}

// Read processes dependencies, dev-dependencies, then build-dependencies. prod
// always wins; between dev and build the first table processed wins.
func (reader *CargoTOMLReader) Read(baseDirectory string) (Inventory, error) {
	manifestPath := Path(baseDirectory, shared.ManifestLabelCargoTOML)

	content, readError := readManifest(reader.fileSystem, manifestPath)
	if readError != nil {
		return Inventory{}, readError
	}

	var document cargoDocument
	if decodeError := toml.Unmarshal(content, &document); decodeError != nil {
		return Inventory{}, &ParseError{Path: manifestPath, Cause: decodeError}
	}

	assignments := scopeAssignments{}
	tables := []struct {
		entries map[string]any
		scope   shared.Scope
	}{
		{entries: document.Dependencies, scope: shared.ScopeProd},
		{entries: document.DevDependencies, scope: shared.ScopeDev},
		{entries: document.BuildDependencies, scope: shared.ScopeBuild},
	}
	for _, table := range tables {
		for name := range table.entries {
			assignments.assignProdOverriding(name, table.scope)
		}
	}

	return assignments.inventory(shared.ManifestLabelCargoTOML), nil
}
