// Package plan turns validated record declarations into a generation plan
// consumed by code generation.
//
// Resolution pipeline:
//  1. Analyze packages → type graph
//  2. Load YAML declarations → schema.Resolve
//  3. For each record:
//     - Classify fields as required arguments, options or computed fields
//     - Name the generated declarations and check them against the package scope
//     - Hoist validator and factory calls into package variables
//     - Render field types relative to the record package and collect imports
//  4. Emit diagnostics (schema errors, name conflicts)
package plan
