// Package diagnostic provides structured errors, warnings and notes produced
// while compiling record declarations.
//
// Key capabilities:
//   - Stable machine-readable codes ("init_without_default", ...)
//   - Record/field attribution for every message
//   - Did-you-mean suggestions for misspelled field names
//   - Sentinel causes so callers can use errors.Is on the combined error
package diagnostic
