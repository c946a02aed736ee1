package command

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/linearcli/internal/cli/output"
	"github.com/yndnr/linearcli/internal/core/domain"
	"github.com/yndnr/linearcli/internal/core/service"
)

// InitCommand stores an API key and syncs everything.
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Initializes the CLI. Without an apikey the stored one is reused",
		ArgsUsage: "[apikey]",
		Action:    runInit,
	}
}

// SyncCommand refreshes one category of cached data, or all of them.
func SyncCommand() *cli.Command {
	names := make([]string, 0, len(service.Scopes)-1)
	for _, s := range service.Scopes[1:] {
		names = append(names, string(s))
	}
	return &cli.Command{
		Name:      "sync",
		Usage:     "Syncs the local data with Linear",
		ArgsUsage: "[" + strings.Join(names, "|") + "]",
		Action:    runSync,
	}
}

func runInit(c *cli.Context) error {
	env := envFrom(c)

	cfg, err := env.store.Load()
	if err != nil {
		return err
	}
	if apiKey := c.Args().First(); apiKey != "" {
		cfg.APIKey = apiKey
	}
	if !cfg.HasAPIKey() {
		return errors.WithHint(domain.ErrAPIKeyMissing, "pass one: linearcli init <apikey>")
	}

	return env.sync(c, cfg, service.ScopeAll)
}

func runSync(c *cli.Context) error {
	env := envFrom(c)

	cfg, ok, err := env.loadWithKey(c)
	if err != nil || !ok {
		return err
	}

	scope, err := service.ParseScope(c.Args().First())
	if err != nil {
		return err
	}

	return env.sync(c, cfg, scope)
}

// sync runs the requested steps and saves the cache once they all succeed.
func (e *appEnv) sync(c *cli.Context, cfg *domain.Config, scope service.Scope) error {
	client, err := e.client(cfg.APIKey)
	if err != nil {
		return err
	}

	opts := []service.SyncOption{
		service.WithReporter(c.App.Writer),
		service.WithAvatarWorkers(e.settings.AvatarWorkers),
	}
	if isTerminal(c.App.ErrWriter) {
		opts = append(opts, service.WithProgress(output.NewProgressBar(c.App.ErrWriter, "Avatars")))
	}

	svc := service.NewSyncService(client, client, e.store.IconPath, opts...)
	if err := svc.Sync(e.context(c), cfg, scope); err != nil {
		return err
	}

	if err := e.store.Save(cfg); err != nil {
		return err
	}
	e.log.Debug("cache saved", "path", e.store.Path(), "scope", string(scope))
	return nil
}
