// Package service provides the linearcli domain services.
//
//   - queries.go: GraphQL documents, request builders, cursor pagination
//   - sync.go: SyncService, refreshing cached teams, states, users,
//     avatars and projects
//   - issue.go: IssueService, issue creation and search
//
// Services talk to Linear through the Querier interface and never touch
// the cache file; callers load and save the Config around them.
package service
