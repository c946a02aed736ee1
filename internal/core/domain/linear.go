package domain

import (
	"bytes"
	"encoding/json"
)

// Team is an organizational grouping that owns workflow states.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamRef references a team by id only.
type TeamRef struct {
	ID string `json:"id"`
}

// WorkflowState is a named issue status scoped to one team.
type WorkflowState struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Team TeamRef `json:"team"`
}

// User is a member of the workspace.
type User struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

// HasAvatar reports whether the user has an avatar to download.
func (u User) HasAvatar() bool {
	return u.AvatarURL != nil && *u.AvatarURL != ""
}

// Project is a unit of work that may span several teams.
//
// On disk teams keep the GraphQL connection shape {"nodes": [...]}, so
// caches written by earlier linear tools stay readable both ways. A flat
// list is also accepted on read.
type Project struct {
	ID     string
	Name   string
	Teams  []TeamRef
	SlugID string
}

type teamConnection struct {
	Nodes []TeamRef `json:"nodes"`
}

type projectDoc struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Teams  json.RawMessage `json:"teams"`
	SlugID string          `json:"slugId"`
}

// MarshalJSON writes teams as {"nodes": [...]}.
func (p Project) MarshalJSON() ([]byte, error) {
	nodes := p.Teams
	if nodes == nil {
		nodes = []TeamRef{}
	}
	teams, err := json.Marshal(teamConnection{Nodes: nodes})
	if err != nil {
		return nil, err
	}
	return json.Marshal(projectDoc{ID: p.ID, Name: p.Name, Teams: teams, SlugID: p.SlugID})
}

// UnmarshalJSON reads teams as either {"nodes": [...]} or a flat list.
func (p *Project) UnmarshalJSON(data []byte) error {
	var doc projectDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*p = Project{ID: doc.ID, Name: doc.Name, SlugID: doc.SlugID}

	raw := bytes.TrimSpace(doc.Teams)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '[':
		return json.Unmarshal(raw, &p.Teams)
	default:
		var conn teamConnection
		if err := json.Unmarshal(raw, &conn); err != nil {
			return err
		}
		p.Teams = conn.Nodes
	}
	return nil
}

// IssueProject is the project summary attached to a search result.
type IssueProject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Issue is an issue returned by a search.
type Issue struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	Identifier  string        `json:"identifier"`
	Project     *IssueProject `json:"project"`
}

// NoProject labels search results without a project.
const NoProject = "No Project"

// Subtitle renders "<project name> <description>" for launcher output.
func (i Issue) Subtitle() string {
	project := NoProject
	if i.Project != nil && i.Project.Name != "" {
		project = i.Project.Name
	}
	description := ""
	if i.Description != nil {
		description = *i.Description
	}
	return project + " " + description
}

// DefaultIssueDescription is used when create is called without a description.
const DefaultIssueDescription = "Created by miscript"

// DefaultStateName is the state new issues land in when none is given.
const DefaultStateName = "Todo"

// IssueInput holds the optional fields of an issue to create. Empty
// strings mean "use the default".
type IssueInput struct {
	Title       string
	ProjectID   string
	TeamID      string
	AssigneeID  string
	StateID     string
	Description string
}
