package service

import (
	"context"

	"github.com/yndnr/linearcli/internal/cli/connection"
	"github.com/yndnr/linearcli/internal/core/domain"
)

// Querier executes GraphQL requests. *connection.Client implements it.
type Querier interface {
	Do(ctx context.Context, req connection.Request, out any) error
}

// PageSize is the page size used for cursor pagination.
const PageSize = 100

// SearchLimit caps the number of issues a search returns.
const SearchLimit = 100

const viewerQuery = `query Me {
    viewer {
        id
    }
}`

const teamsQuery = `query Teams {
    teams {
        nodes {
            id
            name
        }
    }
}`

const statesQuery = `query States($teamId: ID!) {
    workflowStates(filter: { team: { id: { eq: $teamId } } }) {
        nodes {
            id
            name
            team {
                id
            }
        }
    }
}`

const usersQuery = `query Users($first: Int!, $after: String) {
    users(first: $first, after: $after) {
        nodes {
            id
            name
            avatarUrl
        }
        pageInfo {
            hasNextPage
            endCursor
        }
    }
}`

const projectsQuery = `query Projects($first: Int!, $after: String) {
    projects(first: $first, after: $after) {
        nodes {
            id
            name
            teams {
                nodes {
                    id
                }
            }
            slugId
        }
        pageInfo {
            hasNextPage
            endCursor
        }
    }
}`

const searchIssuesQuery = `query Issues($query: String!, $first: Int!) {
    issueSearch(first: $first, query: $query) {
        nodes {
            id
            title
            description
            identifier
            project {
                id
                name
            }
        }
    }
}`

const issueCreateMutation = `mutation IssueCreate($input: IssueCreateInput!) {
    issueCreate(input: $input) {
        success
        issue {
            id
            title
            identifier
        }
    }
}`

func viewerRequest() connection.Request {
	return connection.NewRequest("Me", viewerQuery)
}

func teamsRequest() connection.Request {
	return connection.NewRequest("Teams", teamsQuery)
}

func statesRequest(teamID string) connection.Request {
	return connection.NewRequest("States", statesQuery).Var("teamId", teamID)
}

// pageRequest sets first/after on a paginated document. An empty cursor
// requests the first page.
func pageRequest(operation, query string) func(after string) connection.Request {
	return func(after string) connection.Request {
		req := connection.NewRequest(operation, query).Var("first", PageSize)
		if after != "" {
			req = req.Var("after", after)
		}
		return req
	}
}

func searchRequest(query string) connection.Request {
	return connection.NewRequest("Issues", searchIssuesQuery).
		Var("query", query).
		Var("first", SearchLimit)
}

func issueCreateRequest(in domain.IssueInput) connection.Request {
	input := map[string]any{
		"title":       in.Title,
		"description": in.Description,
		"teamId":      in.TeamID,
		"stateId":     in.StateID,
		"assigneeId":  in.AssigneeID,
	}
	if in.ProjectID != "" {
		input["projectId"] = in.ProjectID
	}
	return connection.NewRequest("IssueCreate", issueCreateMutation).Var("input", input)
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type page[T any] struct {
	Nodes    []T      `json:"nodes"`
	PageInfo pageInfo `json:"pageInfo"`
}

// fetchAll follows the cursor of a paginated connection field until
// hasNextPage is false and returns every node in page order.
func fetchAll[T any](ctx context.Context, api Querier, field string, build func(after string) connection.Request) ([]T, error) {
	all := make([]T, 0)
	after := ""
	for {
		var data map[string]page[T]
		if err := api.Do(ctx, build(after), &data); err != nil {
			return nil, err
		}
		p, ok := data[field]
		if !ok {
			return nil, domain.ErrUnexpectedResponse.WithDetailsf("response has no %q field", field)
		}
		all = append(all, p.Nodes...)
		if !p.PageInfo.HasNextPage {
			return all, nil
		}
		if p.PageInfo.EndCursor == "" || p.PageInfo.EndCursor == after {
			return nil, domain.ErrUnexpectedResponse.WithDetailsf("%s: next page without a new cursor", field)
		}
		after = p.PageInfo.EndCursor
	}
}

// projectNode is the wire shape of a project; teams arrive as a connection.
type projectNode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Teams struct {
		Nodes []domain.TeamRef `json:"nodes"`
	} `json:"teams"`
	SlugID string `json:"slugId"`
}

func (n projectNode) toDomain() domain.Project {
	teams := n.Teams.Nodes
	if teams == nil {
		teams = []domain.TeamRef{}
	}
	return domain.Project{ID: n.ID, Name: n.Name, Teams: teams, SlugID: n.SlugID}
}
