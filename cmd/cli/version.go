package cli

import (
	"runtime/debug"
	"strings"
)

const (
	unknownVersionConstant    = "unknown"
	develBuildVersionConstant = "(devel)"
)

// applicationVersion is injected at build time through
// -ldflags "-X github.com/temirov/depdoc/cmd/cli.applicationVersion=<version>".
var applicationVersion string

var buildInfoReader = debug.ReadBuildInfo

func resolveVersion() string {
	if trimmedVersion := strings.TrimSpace(applicationVersion); len(trimmedVersion) > 0 {
		return trimmedVersion
	}
	buildInfo, buildInfoAvailable := buildInfoReader()
	if !buildInfoAvailable || buildInfo == nil {
		return unknownVersionConstant
	}
	moduleVersion := strings.TrimSpace(buildInfo.Main.Version)
	if len(moduleVersion) == 0 || moduleVersion == develBuildVersionConstant {
		return unknownVersionConstant
	}
	return moduleVersion
}
