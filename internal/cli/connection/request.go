package connection

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Request is one GraphQL document with its named variables.
type Request struct {
	// OperationName is used for logging only.
	OperationName string
	Query         string
	Variables     map[string]any
}

// NewRequest creates a request for a document.
func NewRequest(operation, query string) Request {
	return Request{OperationName: operation, Query: query}
}

// Var returns a copy of the request with the variable set. A nil value is
// sent as JSON null.
func (r Request) Var(name string, value any) Request {
	vars := make(map[string]any, len(r.Variables)+1)
	for k, v := range r.Variables {
		vars[k] = v
	}
	vars[name] = value
	r.Variables = vars
	return r
}

// body is the wire form of a request.
type body struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

func (r Request) body() body {
	return body{Query: r.Query, Variables: r.Variables}
}

// envelope is the top level of every GraphQL response.
type envelope struct {
	Data   json.RawMessage     `json:"data"`
	Errors []GraphQLErrorEntry `json:"errors"`
}

// GraphQLErrorEntry is one element of a response's errors array.
type GraphQLErrorEntry struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// GraphQLError is returned when a 200 response carries errors.
type GraphQLError struct {
	Operation string
	Errors    []GraphQLErrorEntry
}

func (e *GraphQLError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, entry := range e.Errors {
		msgs = append(msgs, entry.Message)
	}
	return fmt.Sprintf("graphql %s: %s", e.Operation, strings.Join(msgs, "; "))
}

// StatusError is returned for any non-200 HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}
