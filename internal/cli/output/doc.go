// Package output renders hashgen command results.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: aligned tables built from structs, slices and maps
//   - json.go, yaml.go: machine-readable output
//   - progress.go: merge-phase progress bar for interactive terminals
package output
