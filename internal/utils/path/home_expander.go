package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const tildeConstant = "~"

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// EnvironmentLookup resolves an environment variable, reporting whether it is set.
type EnvironmentLookup func(name string) (string, bool)

// HomeExpander resolves "~" prefixes and $VARIABLE references in configured root paths.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	environmentLookup     EnvironmentLookup
	resolveHome           func() string
}

// NewHomeExpander constructs a HomeExpander backed by the process environment.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom home directory provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	return NewHomeExpanderWithEnvironment(provider, os.LookupEnv)
}

// NewHomeExpanderWithEnvironment constructs a HomeExpander with custom home and environment lookups.
func NewHomeExpanderWithEnvironment(provider HomeDirectoryProvider, lookup EnvironmentLookup) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	expander := &HomeExpander{homeDirectoryProvider: provider, environmentLookup: lookup}
	expander.resolveHome = sync.OnceValue(func() string {
		homeDirectory, homeError := expander.homeDirectoryProvider()
		if homeError != nil {
			return ""
		}
		return homeDirectory
	})
	return expander
}

// Expand substitutes $VARIABLE and ${VARIABLE} references, then resolves a leading "~" or "~/".
// Unset variables are kept as $VARIABLE. "~user" forms are not resolved.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || len(candidatePath) == 0 {
		return candidatePath
	}

	expandedPath := candidatePath
	if strings.Contains(expandedPath, "$") {
		expandedPath = os.Expand(expandedPath, expander.lookupVariable)
	}

	remainder, hasTilde := strings.CutPrefix(expandedPath, tildeConstant)
	if !hasTilde {
		return expandedPath
	}
	if len(remainder) > 0 && remainder[0] != '/' && remainder[0] != os.PathSeparator {
		return expandedPath
	}

	homeDirectory := expander.resolveHome()
	if len(homeDirectory) == 0 {
		return expandedPath
	}
	return filepath.Join(homeDirectory, remainder)
}

func (expander *HomeExpander) lookupVariable(name string) string {
	if value, isSet := expander.environmentLookup(name); isSet {
		return value
	}
	return "$" + name
}
