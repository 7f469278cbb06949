// Package shared defines the vocabulary used across the dependency documentation
// audit: dependency scopes, manifest labels, and the filesystem seam.
package shared
