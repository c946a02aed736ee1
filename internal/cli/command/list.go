package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/linearcli/internal/cli/output"
	"github.com/yndnr/linearcli/internal/core/domain"
)

// ListTeamsCommand lists synced teams.
func ListTeamsCommand() *cli.Command {
	return &cli.Command{
		Name:   "listteams",
		Usage:  "Lists all synced teams",
		Action: listAction(listTeams),
	}
}

// ListProjectsForTeamCommand lists the synced projects of one team.
func ListProjectsForTeamCommand() *cli.Command {
	return &cli.Command{
		Name:            "listprojectsforteam",
		Usage:           "Lists the synced projects of a team",
		ArgsUsage:       "<team_id>",
		SkipFlagParsing: true,
		Action:          listAction(listProjectsForTeam),
	}
}

// ListProjectSlugsCommand lists synced projects by slug.
func ListProjectSlugsCommand() *cli.Command {
	return &cli.Command{
		Name:   "listprojectslugs",
		Usage:  "Lists all synced projects with their slugs",
		Action: listAction(listProjectSlugs),
	}
}

// ListUsersCommand lists synced users with their avatar paths.
func ListUsersCommand() *cli.Command {
	return &cli.Command{
		Name:   "listusers",
		Usage:  "Lists all synced users",
		Action: listAction(listUsers),
	}
}

type lister func(c *cli.Context, env *appEnv, cfg *domain.Config) (output.ItemList, error)

// listAction wraps a cache-only lister with the API key check and rendering.
func listAction(fn lister) cli.ActionFunc {
	return func(c *cli.Context) error {
		env := envFrom(c)

		cfg, ok, err := env.loadWithKey(c)
		if err != nil || !ok {
			return err
		}

		items, err := fn(c, env, cfg)
		if err != nil {
			return err
		}
		return env.render(c, items)
	}
}

func listTeams(_ *cli.Context, _ *appEnv, cfg *domain.Config) (output.ItemList, error) {
	if cfg.Teams == nil {
		return output.ItemList{}, domain.ErrTeamsNotSynced.WithDetails("run 'linearcli sync teams'")
	}
	return output.TeamItems(cfg.Teams), nil
}

func listProjectsForTeam(c *cli.Context, _ *appEnv, cfg *domain.Config) (output.ItemList, error) {
	teamID := c.Args().First()
	if teamID == "" {
		return output.ItemList{}, missingArgument(c, "team_id")
	}
	projects, err := cfg.ProjectsForTeam(teamID)
	if err != nil {
		return output.ItemList{}, err
	}
	return output.ProjectItems(projects), nil
}

func listProjectSlugs(_ *cli.Context, _ *appEnv, cfg *domain.Config) (output.ItemList, error) {
	if cfg.Projects == nil {
		return output.ItemList{}, domain.ErrProjectsNotSynced.WithDetails("run 'linearcli sync projects'")
	}
	return output.ProjectSlugItems(cfg.Projects), nil
}

func listUsers(_ *cli.Context, env *appEnv, cfg *domain.Config) (output.ItemList, error) {
	if cfg.Users == nil {
		return output.ItemList{}, domain.ErrUsersNotSynced.WithDetails("run 'linearcli sync users'")
	}
	return output.UserItems(cfg.Users, env.store.IconPath), nil
}
