package manifest

import (
	"path/filepath"

	"github.com/temirov/depdoc/internal/filesystem"
	"github.com/temirov/depdoc/internal/shared"
)

// Reader extracts an Inventory from the manifest stored in a project directory.
type Reader interface {
	Read(baseDirectory string) (Inventory, error)
}

// Detector decides which manifest strategy applies to a project directory.
type Detector struct {
	fileSystem shared.FileSystem
}

// NewDetector constructs a Detector backed by the provided file system.
func NewDetector(fileSystem shared.FileSystem) *Detector {
	return &Detector{fileSystem: resolveFileSystem(fileSystem)}
}

// Detect returns the label of the first supported manifest present in baseDirectory.
func (detector *Detector) Detect(baseDirectory string) (shared.ManifestLabel, error) {
	for _, label := range shared.ManifestLabels() {
		if filesystem.FileExists(detector.fileSystem, Path(baseDirectory, label)) {
			return label, nil
		}
	}
	return "", ErrNoManifestFound
}

// LabelOrDefault reports the detected label, falling back to package.json when no manifest exists.
func (detector *Detector) LabelOrDefault(baseDirectory string) shared.ManifestLabel {
	label, detectionError := detector.Detect(baseDirectory)
	if detectionError != nil {
		return shared.ManifestLabelPackageJSON
	}
	return label
}

// NewReaders returns the reading strategy for every supported manifest label.
func NewReaders(fileSystem shared.FileSystem) map[shared.ManifestLabel]Reader {
	resolvedFileSystem := resolveFileSystem(fileSystem)
	return map[shared.ManifestLabel]Reader{
		shared.ManifestLabelPackageJSON: &PackageJSONReader{fileSystem: resolvedFileSystem},
		shared.ManifestLabelCargoTOML:   &CargoTOMLReader{fileSystem: resolvedFileSystem},
	}
}

// Path returns the location of the manifest identified by label inside baseDirectory.
func Path(baseDirectory string, label shared.ManifestLabel) string {
	return filepath.Join(baseDirectory, label.FileName())
}

func resolveFileSystem(fileSystem shared.FileSystem) shared.FileSystem {
	if fileSystem == nil {
		return filesystem.OSFileSystem{}
	}
	return fileSystem
}

func readManifest(fileSystem shared.FileSystem, manifestPath string) ([]byte, error) {
	content, readError := fileSystem.ReadFile(manifestPath)
	if readError != nil {
		return nil, &ParseError{Path: manifestPath, Cause: readError}
	}
	return content, nil
}
