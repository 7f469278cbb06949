// Package check wires the dependency documentation audit into the depdoc CLI.
//
// CommandBuilder assembles the Cobra command, Service resolves project roots,
// runs the reconciler for each of them, renders text, JSON, or YAML reports,
// and optionally keeps watching the roots for manifest or documentation edits.
package check
