// Package domain defines the core domain models for linearcli.
//
// Domain models are plain values without IO dependencies:
//
//   - Team, WorkflowState, User, Project, Issue: Linear entities as cached
//     or returned by the API
//   - Config: the cache aggregate and its derived lookup indexes
//   - Errors: domain-specific error definitions
package domain
