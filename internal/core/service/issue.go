package service

import (
	"context"

	"github.com/yndnr/linearcli/internal/core/domain"
)

// IssueService creates and searches issues.
type IssueService struct {
	api Querier
}

// NewIssueService creates an IssueService.
func NewIssueService(api Querier) *IssueService {
	return &IssueService{api: api}
}

// ResolveIssueInput fills unset fields of in from the cache: the default
// team, that team's "Todo" state, the viewer as assignee, and the default
// description. It performs no network calls.
func ResolveIssueInput(cfg *domain.Config, in domain.IssueInput) (domain.IssueInput, error) {
	if in.Title == "" {
		return in, domain.ErrMissingArgument.WithDetails("title")
	}
	if in.TeamID == "" {
		in.TeamID = cfg.DefaultTeamID()
		if in.TeamID == "" {
			return in, domain.ErrDefaultTeamMissing.WithDetails("run 'linearcli config default_team <team_id>'")
		}
	}
	if in.StateID == "" {
		id, err := cfg.StateID(in.TeamID, domain.DefaultStateName)
		if err != nil {
			return in, err
		}
		in.StateID = id
	}
	if in.AssigneeID == "" {
		if cfg.Me == "" {
			return in, domain.ErrIdentityMissing.WithDetails("run 'linearcli sync me'")
		}
		in.AssigneeID = cfg.Me
	}
	if in.Description == "" {
		in.Description = domain.DefaultIssueDescription
	}
	return in, nil
}

// Create resolves defaults, sends the issueCreate mutation, and returns
// the new issue's identifier (e.g. "ENG-123").
func (s *IssueService) Create(ctx context.Context, cfg *domain.Config, in domain.IssueInput) (string, error) {
	resolved, err := ResolveIssueInput(cfg, in)
	if err != nil {
		return "", err
	}

	var data struct {
		IssueCreate *struct {
			Success bool `json:"success"`
			Issue   *struct {
				ID         string `json:"id"`
				Title      string `json:"title"`
				Identifier string `json:"identifier"`
			} `json:"issue"`
		} `json:"issueCreate"`
	}
	if err := s.api.Do(ctx, issueCreateRequest(resolved), &data); err != nil {
		return "", err
	}

	if data.IssueCreate == nil {
		return "", domain.ErrUnexpectedResponse.WithDetails("issueCreate missing")
	}
	if !data.IssueCreate.Success {
		return "", domain.ErrIssueCreateFailed.WithDetails(resolved.Title)
	}
	if data.IssueCreate.Issue == nil || data.IssueCreate.Issue.Identifier == "" {
		return "", domain.ErrUnexpectedResponse.WithDetails("issue identifier missing")
	}
	return data.IssueCreate.Issue.Identifier, nil
}

// Search runs a full-text issue search and returns up to SearchLimit
// issues visible to the caller.
func (s *IssueService) Search(ctx context.Context, query string) ([]domain.Issue, error) {
	var data struct {
		IssueSearch page[domain.Issue] `json:"issueSearch"`
	}
	if err := s.api.Do(ctx, searchRequest(query), &data); err != nil {
		return nil, err
	}
	issues := data.IssueSearch.Nodes
	if issues == nil {
		issues = []domain.Issue{}
	}
	return issues, nil
}
