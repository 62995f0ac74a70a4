package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/robmorgan/liftoff/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the site backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			srv := server.New(cfg.Server, nil, ctx.log())
			err = srv.ListenAndServe(runCtx, fmt.Sprintf(":%d", cfg.Server.Port))
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
