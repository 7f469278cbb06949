package filesystem

import (
	"io/fs"
	"os"

	"github.com/temirov/depdoc/internal/shared"
)

// OSFileSystem implements shared.FileSystem using the operating system primitives.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads file contents.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FileExists reports whether path can be stat-ed through the provided file system.
func FileExists(fileSystem shared.FileSystem, path string) bool {
	if fileSystem == nil {
		return false
	}
	_, statError := fileSystem.Stat(path)
	return statError == nil
}
