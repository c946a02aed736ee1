// Package config holds linearcli's runtime settings.
//
// Settings control how the CLI runs (where the cache lives, which
// endpoint it talks to, logging) and are distinct from the cached Linear
// data in internal/storage/cache. They are read from
// <home>/settings.yaml, LINEARCLI_* environment variables, and global
// flags.
package config
