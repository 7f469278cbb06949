// Package manifest detects which package manifest a project declares and
// extracts its dependency inventory.
//
// Two strategies exist: package.json (dependencies, devDependencies) and
// Cargo.toml (dependencies, dev-dependencies, build-dependencies). Detection
// prefers package.json when both are present.
package manifest
