// Package connection provides the HTTP transport for linearcli.
//
//   - request.go: GraphQL request, response envelope, error types
//   - http.go: Client posting requests to the GraphQL endpoint
//   - download.go: atomic file writes for downloaded avatars
//
// Requests carry their parameters as GraphQL variables; documents are
// never assembled by string interpolation.
package connection
