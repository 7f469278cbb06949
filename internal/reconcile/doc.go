// Package reconcile compares a project's dependency documentation with its
// manifest and produces a Verdict.
//
// Check is the single entry point of the audit. It never returns an error:
// every failure is captured in Verdict.Errors, and error reporting is mutually
// exclusive with the missing, extra, and scope mismatch lists.
package reconcile
