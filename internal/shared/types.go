package shared

import (
	"fmt"
	"io/fs"
	"strings"
)

const (
	scopeProdStringConstant          = "prod"
	scopeDevStringConstant           = "dev"
	scopeBuildStringConstant         = "build"
	unsupportedScopeTemplateConstant = "unsupported dependency scope %q"

	// DocumentationFileNameConstant names the dependency documentation file resolved inside a project directory.
	DocumentationFileNameConstant = "dep-doc.toml"
)

// Scope classifies the context a dependency is used in.
type Scope string

// Supported dependency scopes.
const (
	ScopeProd  Scope = Scope(scopeProdStringConstant)
	ScopeDev   Scope = Scope(scopeDevStringConstant)
	ScopeBuild Scope = Scope(scopeBuildStringConstant)
)

// Scopes lists every supported scope in precedence order.
func Scopes() []Scope {
	return []Scope{ScopeProd, ScopeDev, ScopeBuild}
}

// ParseScope converts a raw value into a Scope, rejecting anything outside the enumeration.
func ParseScope(rawValue string) (Scope, error) {
	for _, candidate := range Scopes() {
		if string(candidate) == rawValue {
			return candidate, nil
		}
	}
	return "", fmt.Errorf(unsupportedScopeTemplateConstant, rawValue)
}

// ManifestLabel identifies the manifest type a verdict was computed against.
type ManifestLabel string

// Supported manifest labels.
const (
	ManifestLabelPackageJSON ManifestLabel = "package.json"
	ManifestLabelCargoTOML   ManifestLabel = "Cargo.toml"
)

// FileName returns the file name backing the manifest label.
func (label ManifestLabel) FileName() string {
	return string(label)
}

// ManifestLabels lists supported manifests in detection order.
func ManifestLabels() []ManifestLabel {
	return []ManifestLabel{ManifestLabelPackageJSON, ManifestLabelCargoTOML}
}

// IsManifestFileName reports whether the file name belongs to a supported manifest.
func IsManifestFileName(fileName string) bool {
	for _, label := range ManifestLabels() {
		if strings.EqualFold(label.FileName(), fileName) {
			return true
		}
	}
	return false
}

// FileSystem exposes the read-only filesystem operations required by the audit.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}
