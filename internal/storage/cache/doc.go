// Package cache persists the linearcli cache document.
//
// The cache is a single JSON file (data.json) holding the API key, the
// synced teams, users, projects and states, and their lookup indexes.
// It is loaded whole at the start of a command and written back whole.
// There is no locking: concurrent invocations race and the last writer wins.
package cache
