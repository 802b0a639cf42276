// Package match provides identifier normalization and edit-distance ranking
// used to produce "did you mean" suggestions for misspelled field, record
// and function names in declarations.
//
// Key functions:
//   - NormalizeIdent: folds CamelCase/snake_case identifiers for comparison
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks candidate names closest to an unknown one
package match
