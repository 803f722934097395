package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/grocery/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve exposes the product and item services as a JSON HTTP API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.services(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := server.NewAPI(r.products, r.items,
		server.RequestLogger(r.logger),
		server.Recoverer(r.logger),
		server.RateLimiter(cmd.Float("rate"), cmd.Int("burst")),
	)
	return server.ListenAndServe(ctx, cmd.String("addr"), api, r.logger)
}
