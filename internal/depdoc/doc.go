// Package depdoc loads the dependency documentation file (dep-doc.toml) and
// validates it against a strict schema.
//
// Every [[dependency]] entry must carry exactly the name, purpose, and scope
// fields. Violations are reported together through SchemaValidationError so a
// caller can surface every problem in a single run.
package depdoc
