package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/yndnr/linearcli/internal/core/domain"
	"github.com/yndnr/linearcli/internal/telemetry/logger"
)

// Scope selects which categories a sync refreshes.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeMe       Scope = "me"
	ScopeTeams    Scope = "teams"
	ScopeStates   Scope = "states"
	ScopeUsers    Scope = "users"
	ScopeAvatars  Scope = "avatars"
	ScopeProjects Scope = "projects"
)

// Scopes lists every valid scope in execution order, "all" first.
var Scopes = []Scope{ScopeAll, ScopeMe, ScopeTeams, ScopeStates, ScopeUsers, ScopeAvatars, ScopeProjects}

// ParseScope validates a scope name. Empty means all.
func ParseScope(s string) (Scope, error) {
	if s == "" {
		return ScopeAll, nil
	}
	for _, scope := range Scopes {
		if string(scope) == strings.ToLower(s) {
			return scope, nil
		}
	}
	names := make([]string, len(Scopes))
	for i, scope := range Scopes {
		names[i] = string(scope)
	}
	return "", domain.ErrInvalidArgument.WithDetailsf("unknown sync scope %q (want one of %s)", s, strings.Join(names, ", "))
}

// AvatarDownloader fetches an avatar image to a file.
type AvatarDownloader interface {
	Download(ctx context.Context, url, path string) error
}

// Progress receives avatar download progress.
type Progress interface {
	SetTotal(total int64)
	Increment(n int64)
	Finish()
}

// SyncService refreshes the cached reference data from Linear.
type SyncService struct {
	api           Querier
	avatars       AvatarDownloader
	iconPath      func(userID string) string
	out           io.Writer
	avatarWorkers int
	progress      Progress
}

// SyncOption configures a SyncService.
type SyncOption func(*SyncService)

// WithReporter sets where human-readable progress lines are written.
func WithReporter(w io.Writer) SyncOption {
	return func(s *SyncService) {
		s.out = w
	}
}

// WithAvatarWorkers sets how many avatars download at once. Values below
// one mean one.
func WithAvatarWorkers(n int) SyncOption {
	return func(s *SyncService) {
		s.avatarWorkers = max(n, 1)
	}
}

// WithProgress reports avatar downloads to p.
func WithProgress(p Progress) SyncOption {
	return func(s *SyncService) {
		s.progress = p
	}
}

// NewSyncService creates a SyncService. iconPath maps a user id to the
// file its avatar is written to.
func NewSyncService(api Querier, avatars AvatarDownloader, iconPath func(string) string, opts ...SyncOption) *SyncService {
	s := &SyncService{
		api:           api,
		avatars:       avatars,
		iconPath:      iconPath,
		out:           io.Discard,
		avatarWorkers: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type syncStep struct {
	scope Scope
	label string
	run   func(ctx context.Context, cfg *domain.Config) error
}

func (s *SyncService) steps() []syncStep {
	return []syncStep{
		{ScopeMe, "Me", s.syncMe},
		{ScopeTeams, "Teams", s.syncTeams},
		{ScopeStates, "States", s.syncStates},
		{ScopeUsers, "Users", s.syncUsers},
		{ScopeAvatars, "Avatars", s.syncAvatars},
		{ScopeProjects, "Projects", s.syncProjects},
	}
}

// Sync runs the steps selected by scope against a copy of cfg and copies
// the result back only when every step succeeded. On error cfg is left
// as it was.
func (s *SyncService) Sync(ctx context.Context, cfg *domain.Config, scope Scope) error {
	next := cfg.Clone()
	log := logger.FromContext(ctx).With("scope", string(scope))

	for _, step := range s.steps() {
		if scope != ScopeAll && scope != step.scope {
			continue
		}
		fmt.Fprintf(s.out, "Syncing %s\n", step.label)
		log.Debug("sync step started", "step", string(step.scope))
		if err := step.run(ctx, next); err != nil {
			return errors.Wrapf(err, "sync %s", step.scope)
		}
	}

	*cfg = *next
	return nil
}

func (s *SyncService) syncMe(ctx context.Context, cfg *domain.Config) error {
	var data struct {
		Viewer *struct {
			ID string `json:"id"`
		} `json:"viewer"`
	}
	if err := s.api.Do(ctx, viewerRequest(), &data); err != nil {
		return err
	}
	if data.Viewer == nil || data.Viewer.ID == "" {
		return domain.ErrUnexpectedResponse.WithDetails("viewer id missing")
	}
	cfg.Me = data.Viewer.ID
	return nil
}

func (s *SyncService) syncTeams(ctx context.Context, cfg *domain.Config) error {
	var data struct {
		Teams page[domain.Team] `json:"teams"`
	}
	if err := s.api.Do(ctx, teamsRequest(), &data); err != nil {
		return err
	}
	teams := data.Teams.Nodes
	if teams == nil {
		teams = []domain.Team{}
	}
	cfg.Teams = teams

	if cfg.DefaultTeam == nil && len(teams) > 0 {
		first := teams[0]
		fmt.Fprintf(s.out, "Setting default team to: %s (%s)\n", first.Name, first.ID)
		fmt.Fprintln(s.out, "Change with linearcli config default_team <team_id>")
		id := first.ID
		cfg.DefaultTeam = &id
	}
	return nil
}

func (s *SyncService) syncStates(ctx context.Context, cfg *domain.Config) error {
	if cfg.Teams == nil {
		return domain.ErrTeamsNotSynced.WithDetails("run 'linearcli sync teams' first")
	}

	states := make([]domain.WorkflowState, 0)
	for _, team := range cfg.Teams {
		var data struct {
			WorkflowStates page[domain.WorkflowState] `json:"workflowStates"`
		}
		if err := s.api.Do(ctx, statesRequest(team.ID), &data); err != nil {
			return errors.Wrapf(err, "team %s", team.ID)
		}
		states = append(states, data.WorkflowStates.Nodes...)
	}

	cfg.States = states
	cfg.StatesByTeam = domain.BuildStatesByTeam(states)
	return nil
}

func (s *SyncService) syncUsers(ctx context.Context, cfg *domain.Config) error {
	users, err := fetchAll[domain.User](ctx, s.api, "users", pageRequest("Users", usersQuery))
	if err != nil {
		return err
	}
	cfg.Users = users
	return nil
}

func (s *SyncService) syncAvatars(ctx context.Context, cfg *domain.Config) error {
	if cfg.Users == nil {
		return domain.ErrUsersNotSynced.WithDetails("run 'linearcli sync users' first")
	}

	pending := make([]domain.User, 0, len(cfg.Users))
	for _, u := range cfg.Users {
		if u.HasAvatar() {
			pending = append(pending, u)
		}
	}
	if s.progress != nil {
		s.progress.SetTotal(int64(len(pending)))
		defer s.progress.Finish()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.avatarWorkers)
	for _, u := range pending {
		u := u
		g.Go(func() error {
			if err := s.avatars.Download(gctx, *u.AvatarURL, s.iconPath(u.ID)); err != nil {
				return errors.Wrapf(err, "avatar of user %s", u.ID)
			}
			if s.progress != nil {
				s.progress.Increment(1)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *SyncService) syncProjects(ctx context.Context, cfg *domain.Config) error {
	nodes, err := fetchAll[projectNode](ctx, s.api, "projects", pageRequest("Projects", projectsQuery))
	if err != nil {
		return err
	}

	projects := make([]domain.Project, len(nodes))
	for i, n := range nodes {
		projects[i] = n.toDomain()
	}
	teamsToProjects, byID := domain.BuildProjectIndexes(projects)

	cfg.Projects = projects
	cfg.TeamsToProjects = teamsToProjects
	cfg.ProjectsByID = byID
	return nil
}
