package depdoc

import (
	"fmt"
	"io/fs"
	"strings"
)

const (
	fileNotFoundTemplateConstant        = "%s not found"
	fileReadErrorTemplateConstant       = "unable to read %s: %v"
	documentParseErrorTemplateConstant  = "unable to parse %s: %v"
	schemaValidationHeaderConstant      = "Invalid dep-doc schema:"
	schemaViolationLineTemplateConstant = "- %s: %s"
	rootViolationPathConstant           = "(root)"
	violationLineSeparatorConstant      = "\n"
)

// FileNotFoundError reports that the documentation file is absent.
type FileNotFoundError struct {
	Path string
}

// Error describes the missing file.
func (notFoundError *FileNotFoundError) Error() string {
	return fmt.Sprintf(fileNotFoundTemplateConstant, notFoundError.Path)
}

// Is allows errors.Is comparisons against fs.ErrNotExist.
func (notFoundError *FileNotFoundError) Is(target error) bool {
	return target == fs.ErrNotExist
}

// ReadError reports that the documentation file exists but could not be read.
type ReadError struct {
	Path  string
	Cause error
}

// Error describes the read failure.
func (readError *ReadError) Error() string {
	return fmt.Sprintf(fileReadErrorTemplateConstant, readError.Path, readError.Cause)
}

// Unwrap exposes the underlying cause.
func (readError *ReadError) Unwrap() error {
	return readError.Cause
}

// ParseError reports that the documentation file is not valid TOML.
type ParseError struct {
	Path  string
	Cause error
}

// Error describes the syntax failure.
func (parseError *ParseError) Error() string {
	return fmt.Sprintf(documentParseErrorTemplateConstant, parseError.Path, parseError.Cause)
}

// Unwrap exposes the underlying cause.
func (parseError *ParseError) Unwrap() error {
	return parseError.Cause
}

// Violation describes a single schema rule broken at a dotted path.
type Violation struct {
	Path    string
	Message string
}

// String renders the violation as a diagnostic line.
func (violation Violation) String() string {
	path := violation.Path
	if len(path) == 0 {
		path = rootViolationPathConstant
	}
	return fmt.Sprintf(schemaViolationLineTemplateConstant, path, violation.Message)
}

// SchemaValidationError aggregates every violation found in the documentation file.
type SchemaValidationError struct {
	Violations []Violation
}

// Error renders the header followed by one line per violation.
func (validationError *SchemaValidationError) Error() string {
	lines := make([]string, 0, len(validationError.Violations)+1)
	lines = append(lines, schemaValidationHeaderConstant)
	for _, violation := range validationError.Violations {
		lines = append(lines, violation.String())
	}
	return strings.Join(lines, violationLineSeparatorConstant)
}
