package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/linearcli/internal/cli/output"
	"github.com/yndnr/linearcli/internal/core/domain"
	"github.com/yndnr/linearcli/internal/core/service"
)

// CreateCommand creates an issue and prints its identifier.
func CreateCommand() *cli.Command {
	return &cli.Command{
		Name: "create",
		Usage: "Creates an issue. Only title is required; team defaults to default_team, " +
			"state to the team's Todo state, and assignee to you",
		ArgsUsage:       "<title> [project_id] [team_id] [assignee_id] [state_id] [description]",
		SkipFlagParsing: true,
		Action:          runCreate,
	}
}

// SearchCommand searches every issue visible to the API key.
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:            "search",
		Usage:           "Searches for issues in Linear",
		ArgsUsage:       "<query>",
		SkipFlagParsing: true,
		Action:          runSearch,
	}
}

func runCreate(c *cli.Context) error {
	env := envFrom(c)

	cfg, ok, err := env.loadWithKey(c)
	if err != nil || !ok {
		return err
	}

	args := c.Args()
	if args.First() == "" {
		return missingArgument(c, "title")
	}
	in := domain.IssueInput{
		Title:       args.Get(0),
		ProjectID:   args.Get(1),
		TeamID:      args.Get(2),
		AssigneeID:  args.Get(3),
		StateID:     args.Get(4),
		Description: args.Get(5),
	}

	client, err := env.client(cfg.APIKey)
	if err != nil {
		return err
	}
	identifier, err := service.NewIssueService(client).Create(env.context(c), cfg, in)
	if err != nil {
		return err
	}
	env.log.Debug("issue created", "identifier", identifier)

	fmt.Fprint(c.App.Writer, identifier)
	return nil
}

func runSearch(c *cli.Context) error {
	env := envFrom(c)

	cfg, ok, err := env.loadWithKey(c)
	if err != nil || !ok {
		return err
	}

	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return missingArgument(c, "query")
	}

	client, err := env.client(cfg.APIKey)
	if err != nil {
		return err
	}
	issues, err := service.NewIssueService(client).Search(env.context(c), query)
	if err != nil {
		return err
	}
	return env.render(c, output.IssueItems(issues, query))
}
