// Package cli constructs the depdoc command-line interface. It wires the Cobra
// command hierarchy, the Viper-backed configuration loader with its embedded
// defaults, and zap diagnostics around the dependency documentation check.
package cli
