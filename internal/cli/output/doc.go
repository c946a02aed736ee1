// Package output renders command results for linearcli.
//
//   - items.go: launcher item lists built from cached and searched entities
//   - formatter.go: Formatter interface and factory
//   - json.go: JSON output, 4-space indent by default
//   - yaml.go: YAML output
//   - table.go: aligned text tables for terminals
//   - progress.go: avatar download progress bar
package output
