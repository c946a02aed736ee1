package domain

import "encoding/json"

// Top-level keys of the cache document.
const (
	KeyAPIKey          = "apikey"
	KeyDefaultTeam     = "default_team"
	KeyMe              = "me"
	KeyTeams           = "teams"
	KeyUsers           = "users"
	KeyProjects        = "projects"
	KeyStates          = "states"
	KeyTeamsToProjects = "teams_to_projects"
	KeyProjectsByID    = "projects_by_id"
	KeyStatesByTeam    = "states_by_team"
)

// Config is the cached state of one linearcli installation.
//
// A nil slice or map means the category was never synced; an empty one
// means it was synced and came back empty. Keys written with Set that
// linearcli does not know about are kept in Extra and written back as-is.
type Config struct {
	APIKey      string
	DefaultTeam *string
	Me          string

	Teams    []Team
	Users    []User
	Projects []Project
	States   []WorkflowState

	TeamsToProjects map[string][]string
	ProjectsByID    map[string]Project
	StatesByTeam    map[string]map[string]string

	Extra map[string]json.RawMessage
}

// HasAPIKey reports whether an API key is stored.
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// DefaultTeamID returns the default team id, or "" if unset.
func (c *Config) DefaultTeamID() string {
	if c.DefaultTeam == nil {
		return ""
	}
	return *c.DefaultTeam
}

// Clone returns a shallow copy. Sync replaces slices and maps wholesale,
// so the copy can be mutated without touching the original.
func (c *Config) Clone() *Config {
	cp := *c
	if c.DefaultTeam != nil {
		v := *c.DefaultTeam
		cp.DefaultTeam = &v
	}
	return &cp
}

// StateID looks up the id of the named state for a team.
func (c *Config) StateID(teamID, name string) (string, error) {
	byName, ok := c.StatesByTeam[teamID]
	if !ok {
		return "", ErrStateNotFound.WithDetailsf("team %s has no synced states", teamID)
	}
	id, ok := byName[name]
	if !ok {
		return "", ErrStateNotFound.WithDetailsf("team %s has no %q state", teamID, name)
	}
	return id, nil
}

// ProjectsForTeam returns the projects linked to a team, in index order.
// A team absent from the index is an error rather than an empty result.
func (c *Config) ProjectsForTeam(teamID string) ([]Project, error) {
	ids, ok := c.TeamsToProjects[teamID]
	if !ok {
		return nil, ErrTeamProjectsNotFound.WithDetails(teamID)
	}
	projects := make([]Project, 0, len(ids))
	for _, id := range ids {
		p, ok := c.ProjectsByID[id]
		if !ok {
			return nil, ErrProjectNotFound.WithDetails(id)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// Set assigns one top-level key. Keys populated by sync cannot be set.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyAPIKey:
		c.APIKey = value
	case KeyDefaultTeam:
		c.DefaultTeam = &value
	case KeyMe:
		c.Me = value
	case KeyTeams, KeyUsers, KeyProjects, KeyStates,
		KeyTeamsToProjects, KeyProjectsByID, KeyStatesByTeam:
		return ErrConfigKeyReadOnly.WithDetails(key)
	default:
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		if c.Extra == nil {
			c.Extra = make(map[string]json.RawMessage)
		}
		c.Extra[key] = raw
	}
	return nil
}

// BuildStatesByTeam indexes states as team id -> state name -> state id.
func BuildStatesByTeam(states []WorkflowState) map[string]map[string]string {
	index := make(map[string]map[string]string)
	for _, s := range states {
		byName, ok := index[s.Team.ID]
		if !ok {
			byName = make(map[string]string)
			index[s.Team.ID] = byName
		}
		byName[s.Name] = s.ID
	}
	return index
}

// BuildProjectIndexes builds the team -> project ids and id -> project
// indexes. Project ids keep their fetch order within each team.
func BuildProjectIndexes(projects []Project) (map[string][]string, map[string]Project) {
	teamsToProjects := make(map[string][]string)
	byID := make(map[string]Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
		for _, t := range p.Teams {
			teamsToProjects[t.ID] = append(teamsToProjects[t.ID], p.ID)
		}
	}
	return teamsToProjects, byID
}

// MarshalJSON writes known keys that are set plus all extra keys.
func (c Config) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(c.Extra)+10)
	for k, v := range c.Extra {
		doc[k] = v
	}
	if c.APIKey != "" {
		doc[KeyAPIKey] = c.APIKey
	}
	if c.DefaultTeam != nil {
		doc[KeyDefaultTeam] = *c.DefaultTeam
	}
	if c.Me != "" {
		doc[KeyMe] = c.Me
	}
	if c.Teams != nil {
		doc[KeyTeams] = c.Teams
	}
	if c.Users != nil {
		doc[KeyUsers] = c.Users
	}
	if c.Projects != nil {
		doc[KeyProjects] = c.Projects
	}
	if c.States != nil {
		doc[KeyStates] = c.States
	}
	if c.TeamsToProjects != nil {
		doc[KeyTeamsToProjects] = c.TeamsToProjects
	}
	if c.ProjectsByID != nil {
		doc[KeyProjectsByID] = c.ProjectsByID
	}
	if c.StatesByTeam != nil {
		doc[KeyStatesByTeam] = c.StatesByTeam
	}
	return json.Marshal(doc)
}

// UnmarshalJSON reads a cache document. JSON null is treated as absent.
func (c *Config) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*c = Config{}

	fields := map[string]any{
		KeyAPIKey:          &c.APIKey,
		KeyDefaultTeam:     &c.DefaultTeam,
		KeyMe:              &c.Me,
		KeyTeams:           &c.Teams,
		KeyUsers:           &c.Users,
		KeyProjects:        &c.Projects,
		KeyStates:          &c.States,
		KeyTeamsToProjects: &c.TeamsToProjects,
		KeyProjectsByID:    &c.ProjectsByID,
		KeyStatesByTeam:    &c.StatesByTeam,
	}
	for key, raw := range doc {
		target, known := fields[key]
		if !known {
			if c.Extra == nil {
				c.Extra = make(map[string]json.RawMessage)
			}
			c.Extra[key] = raw
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return ErrCacheCorrupt.WithDetails(key).WithCause(err)
		}
	}
	return nil
}
