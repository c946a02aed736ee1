package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yndnr/linearcli/internal/cli/config"
	"github.com/yndnr/linearcli/internal/cli/connection"
	"github.com/yndnr/linearcli/internal/cli/output"
	"github.com/yndnr/linearcli/internal/core/domain"
	"github.com/yndnr/linearcli/internal/infra/buildinfo"
	"github.com/yndnr/linearcli/internal/infra/tlsroots"
	"github.com/yndnr/linearcli/internal/storage/cache"
	"github.com/yndnr/linearcli/internal/telemetry/logger"
	"github.com/yndnr/linearcli/internal/telemetry/metric"
)

const envKey = "env"

// NoAPIKeyMessage is printed when a command needs an API key and none is stored.
const NoAPIKeyMessage = "No apikey found. Please run 'linearcli init [apikey]'"

const description = `Reference data (me, teams, states, users, avatars, projects) is cached
in <home>/data.json by init and sync, so lookups and issue creation need
no extra round trips.

Config keys:
   default_team   The id of the default team to use when creating issues.`

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:        "linearcli",
		Usage:       "Linear from the command line",
		UsageText:   "linearcli [global options] command [command args]",
		Description: description,
		Version:     buildinfo.String(),
		Flags:       globalFlags(),
		Commands: []*cli.Command{
			InitCommand(),
			SyncCommand(),
			ConfigCommand(),
			CreateCommand(),
			SearchCommand(),
			ListTeamsCommand(),
			ListProjectsForTeamCommand(),
			ListProjectSlugsCommand(),
			ListUsersCommand(),
		},
		Before:          setup,
		After:           teardown,
		Action:          rootAction,
		CommandNotFound: commandNotFound,
		Metadata:        map[string]any{},
	}
}

// globalFlags returns the global CLI flags. Environment variables are
// handled by the settings loader, not by the flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "home",
			Usage: "Directory holding data.json, icons/ and settings.yaml (default ~/.linear)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format for lists and search: json, yaml, table",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log requests at debug level",
		},
	}
}

// appEnv is everything a command needs, resolved once per run.
type appEnv struct {
	settings *config.Settings
	store    *cache.Store
	log      logger.Logger
	format   output.Format
	metrics  *metric.Registry
}

func setup(c *cli.Context) error {
	overrides := map[string]any{}
	if c.IsSet("home") {
		overrides["home"] = c.String("home")
	}
	if c.IsSet("output") {
		overrides["output"] = c.String("output")
	}
	if c.Bool("verbose") {
		overrides["log.level"] = "debug"
	}

	settings, err := config.Load(overrides)
	if err != nil {
		return errors.Wrap(err, "load settings")
	}

	logCfg := settings.LoggerConfig()
	logCfg.Output = c.App.ErrWriter
	log, err := logger.New(logCfg)
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	format, err := output.ParseFormat(settings.Output)
	if err != nil {
		return err
	}

	env := &appEnv{
		settings: settings,
		store:    cache.NewStore(settings.Home),
		log:      log,
		format:   format,
	}
	if settings.MetricsFile != "" {
		env.metrics = metric.NewRegistry()
	}
	c.App.Metadata[envKey] = env
	log.Debug("settings loaded", "home", settings.Home, "endpoint", settings.Endpoint)
	return nil
}

// teardown writes the metrics textfile. It also runs when setup failed.
func teardown(c *cli.Context) error {
	env, ok := c.App.Metadata[envKey].(*appEnv)
	if !ok || env.metrics == nil || !c.Args().Present() {
		return nil
	}
	env.metrics.MarkRun(c.Args().First(), time.Now())
	return env.metrics.WriteTextfile(env.settings.MetricsFile)
}

func envFrom(c *cli.Context) *appEnv {
	return c.App.Metadata[envKey].(*appEnv)
}

func (e *appEnv) context(c *cli.Context) context.Context {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithLogger(ctx, e.log)
}

func (e *appEnv) client(apiKey string) (*connection.Client, error) {
	transport, err := tlsroots.Transport(e.settings.CAFile)
	if err != nil {
		return nil, errors.WithHint(err, "check the ca_file setting")
	}
	opts := []connection.Option{
		connection.WithEndpoint(e.settings.Endpoint),
		connection.WithTimeout(e.settings.Timeout),
		connection.WithRateLimit(e.settings.RateLimit),
		connection.WithTransport(transport),
	}
	if e.metrics != nil {
		opts = append(opts, connection.WithRecorder(e.metrics))
	}
	return connection.NewClient(apiKey, opts...), nil
}

// loadWithKey loads the cache. When no API key is stored it prints the
// init guidance and reports false.
func (e *appEnv) loadWithKey(c *cli.Context) (*domain.Config, bool, error) {
	cfg, err := e.store.Load()
	if err != nil {
		return nil, false, err
	}
	if !cfg.HasAPIKey() {
		fmt.Fprintln(c.App.Writer, NoAPIKeyMessage)
		return nil, false, nil
	}
	return cfg, true, nil
}

func (e *appEnv) render(c *cli.Context, data any) error {
	return output.NewFormatter(e.format).Format(c.App.Writer, data)
}

func rootAction(c *cli.Context) error {
	if c.Args().Present() {
		commandNotFound(c, c.Args().First())
		return nil
	}
	return cli.ShowAppHelp(c)
}

func commandNotFound(c *cli.Context, name string) {
	rest := c.Args().Tail()
	if c.Args().First() != name {
		rest = nil
	}
	fmt.Fprintf(c.App.Writer, "Dont understand: %s %s\n", name, strings.Join(rest, " "))
}

func missingArgument(c *cli.Context, name string) error {
	err := domain.ErrMissingArgument.WithDetails(name)
	return errors.WithHintf(err, "usage: linearcli %s %s", c.Command.Name, c.Command.ArgsUsage)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
