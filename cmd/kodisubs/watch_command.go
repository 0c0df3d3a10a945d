package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"kodisubs/internal/decision"
	"kodisubs/internal/logging"
	"kodisubs/internal/scan"
	"kodisubs/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [ADDRESS]",
		Short: "Follow Kodi's JSON-RPC feed and process newly scanned movies",
		Long: `Follow Kodi's JSON-RPC websocket feed and set subtitle tracks for movies
as library scans add them. Runs unattended: only safe automatic choices are
made and files with existing settings are left alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			address := cfg.Watch.Address
			if len(args) == 1 {
				address = args[0]
			}

			target, err := ctx.targetLanguage()
			if err != nil {
				return err
			}
			inspector, err := ctx.newInspector(logger)
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			// Unattended, so never prompt and never revisit configured
			// files.
			opts := scan.Options{UpdateOnly: true, FastMode: true}
			resolver := decision.NewAutomatic(logging.WithComponent(logger, "decide"))
			orchestrator := scan.New(store, ctx.newReconciler(store, logger), inspector, resolver, target, opts, logging.WithComponent(logger, "scan"), io.Discard)

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			listener := watch.New(address, func(ctx context.Context, paths []string) error {
				_, err := orchestrator.Run(ctx, paths)
				return err
			}, logging.WithComponent(logger, "watch"))

			return listener.Run(runCtx)
		},
	}
	return cmd
}
