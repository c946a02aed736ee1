package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/yndnr/linearcli/internal/cli/command"
	"github.com/yndnr/linearcli/internal/infra/shutdown"
)

func main() {
	ctx, stop := shutdown.NewHandler().Context(context.Background())

	err := command.App().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
