package manifest

import (
	"errors"
	"fmt"
)

const (
	noManifestFoundMessageConstant     = "No package.json or Cargo.toml found."
	manifestParseErrorTemplateConstant = "unable to parse %s: %v"
)

// ErrNoManifestFound reports that neither supported manifest exists in the project directory.
var ErrNoManifestFound = errors.New(noManifestFoundMessageConstant)

// ParseError reports that a manifest is missing, unreadable, or syntactically invalid.
type ParseError struct {
	Path  string
	Cause error
}

// Error describes the failure together with its cause.
func (parseError *ParseError) Error() string {
	return fmt.Sprintf(manifestParseErrorTemplateConstant, parseError.Path, parseError.Cause)
}

// Unwrap exposes the underlying cause.
func (parseError *ParseError) Unwrap() error {
	return parseError.Cause
}
