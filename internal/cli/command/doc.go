// Package command defines the linearcli commands using urfave/cli/v2.
//
//   - root.go: App, global flags, per-run environment
//   - sync.go: init and sync
//   - config.go: writing and showing cache keys
//   - issue.go: create and search
//   - list.go: launcher lists of cached teams, projects and users
//
// Every command except help and init needs a stored API key. Without one
// it prints how to run init and exits successfully.
package command
