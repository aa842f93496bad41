package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/critfail/cli/cmd/repl"
	"github.com/ardnew/critfail/log"
)

// Repl starts an interactive roll session.
type Repl struct {
	Seed *uint64 `help:"Seed the dice for reproducible rolls." placeholder:"N"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cacheDir := variable(ctx, CacheIdentifier)
	if cacheDir != "" {
		if err := os.MkdirAll(cacheDir, 0o700); err != nil {
			log.WarnContext(ctx, "history will not be saved",
				slog.String("cache_dir", cacheDir),
				slog.Any("error", err),
			)

			cacheDir = ""
		}
	}

	return repl.Run(
		ctx,
		cacheDir,
		newRoller(r.Seed),
		log.With(slog.String("component", "repl")),
	)
}
