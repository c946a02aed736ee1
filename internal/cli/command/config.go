package command

import (
	"encoding/json"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/linearcli/internal/core/domain"
	"github.com/yndnr/linearcli/internal/telemetry/logger"
)

// ConfigCommand sets a top-level cache key, or shows the cache.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:      "config",
		Usage:     "Sets a config value (e.g. default_team), or 'config show' prints the cache",
		ArgsUsage: "<key> <value> | show",
		// values such as "-1" are data, not flags
		SkipFlagParsing: true,
		Action:          runConfig,
	}
}

func runConfig(c *cli.Context) error {
	env := envFrom(c)

	cfg, ok, err := env.loadWithKey(c)
	if err != nil || !ok {
		return err
	}

	args := c.Args()
	switch {
	case args.Len() == 1 && args.First() == "show":
		return configShow(c, cfg)
	case args.Len() == 0:
		return missingArgument(c, "key")
	case args.Len() == 1:
		return missingArgument(c, "value")
	case args.Len() > 2:
		return domain.ErrInvalidArgument.WithDetailsf("config takes a key and one value, got %d arguments", args.Len())
	}

	key, value := args.Get(0), args.Get(1)
	if err := env.store.Set(key, value); err != nil {
		return err
	}
	env.log.Debug("config key set", "key", key)
	return nil
}

// configShow prints the cache with the API key masked.
func configShow(c *cli.Context, cfg *domain.Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if key, ok := doc[domain.KeyAPIKey].(string); ok {
		masked := logger.RedactString(key)
		if masked == key {
			masked = "***"
		}
		doc[domain.KeyAPIKey] = masked
	}
	return envFrom(c).render(c, doc)
}
