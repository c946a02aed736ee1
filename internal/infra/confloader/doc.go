// Package confloader loads layered runtime settings with koanf.
//
// Priority (highest to lowest):
//
//  1. Overrides (command-line flags)
//  2. Environment variables
//  3. Settings file (YAML, optional)
//  4. Defaults
package confloader
