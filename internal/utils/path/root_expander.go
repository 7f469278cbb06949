package pathutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	globMetaCharactersConstant           = "*?[{"
	rootGlobErrorTemplateConstant        = "unable to expand root pattern %q: %w"
	unmatchedRootPatternTemplateConstant = "no directories match %q"
)

// ErrInvalidRootPattern reports a glob pattern doublestar cannot parse.
var ErrInvalidRootPattern = errors.New("invalid root pattern")

// UnmatchedPatternError reports a glob pattern that resolved to no directories.
type UnmatchedPatternError struct {
	Pattern string
}

func (unmatchedError UnmatchedPatternError) Error() string {
	return fmt.Sprintf(unmatchedRootPatternTemplateConstant, unmatchedError.Pattern)
}

// RootExpander turns configured root entries into concrete project directories.
type RootExpander struct {
	homeExpander *HomeExpander
}

// NewRootExpander constructs a RootExpander. A nil homeExpander uses the operating system home directory.
func NewRootExpander(homeExpander *HomeExpander) *RootExpander {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &RootExpander{homeExpander: homeExpander}
}

// Expand trims entries, expands variables and a leading tilde, then resolves glob patterns to the
// directories they match. Plain entries pass through unchecked so a missing
// directory surfaces as a failed audit rather than a resolution error.
// Duplicates are dropped while first-seen order is kept.
func (expander *RootExpander) Expand(rootEntries []string) ([]string, error) {
	homeExpander := NewHomeExpander()
	if expander != nil && expander.homeExpander != nil {
		homeExpander = expander.homeExpander
	}

	expandedRoots := make([]string, 0, len(rootEntries))
	seenRoots := make(map[string]struct{}, len(rootEntries))

	for _, rootEntry := range rootEntries {
		trimmedEntry := strings.TrimSpace(rootEntry)
		if len(trimmedEntry) == 0 {
			continue
		}

		expandedEntry := homeExpander.Expand(trimmedEntry)
		candidates := []string{expandedEntry}
		if isGlobPattern(expandedEntry) {
			matchedDirectories, globError := globDirectories(expandedEntry)
			if globError != nil {
				return nil, globError
			}
			candidates = matchedDirectories
		}

		for _, candidate := range candidates {
			comparisonKey := comparisonPath(canonicalizePath(candidate))
			if _, seen := seenRoots[comparisonKey]; seen {
				continue
			}
			seenRoots[comparisonKey] = struct{}{}
			expandedRoots = append(expandedRoots, candidate)
		}
	}

	return expandedRoots, nil
}

func isGlobPattern(candidate string) bool {
	return strings.ContainsAny(candidate, globMetaCharactersConstant)
}

func globDirectories(pattern string) ([]string, error) {
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRootPattern, pattern)
	}

	matches, globError := doublestar.FilepathGlob(pattern)
	if globError != nil {
		return nil, fmt.Errorf(rootGlobErrorTemplateConstant, pattern, globError)
	}

	directories := make([]string, 0, len(matches))
	for _, match := range matches {
		matchInfo, statError := os.Stat(match)
		if statError != nil || !matchInfo.IsDir() {
			continue
		}
		directories = append(directories, match)
	}
	if len(directories) == 0 {
		return nil, UnmatchedPatternError{Pattern: pattern}
	}

	sort.Strings(directories)
	return directories, nil
}

func canonicalizePath(path string) string {
	cleanedPath := filepath.Clean(path)
	absolutePath, absoluteError := filepath.Abs(cleanedPath)
	if absoluteError == nil {
		return filepath.Clean(absolutePath)
	}
	return cleanedPath
}

func comparisonPath(path string) string {
	comparison := filepath.Clean(path)
	if runtime.GOOS == "windows" {
		comparison = strings.ToLower(comparison)
	}
	return comparison
}
