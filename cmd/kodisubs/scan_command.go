package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"kodisubs/internal/decision"
	"kodisubs/internal/logging"
	"kodisubs/internal/scan"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var updateOnly bool
	var fastMode bool
	var quiet bool
	var audio bool
	var automatic bool

	cmd := &cobra.Command{
		Use:   "scan FILE...",
		Short: "Set subtitle and audio tracks for the given movie files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := scan.Options{
				UpdateOnly: cfg.Scan.UpdateOnly,
				FastMode:   cfg.Scan.FastMode,
				Audio:      cfg.Scan.Audio,
			}
			auto := cfg.Scan.Automatic
			if cmd.Flags().Changed("update-only") {
				opts.UpdateOnly = updateOnly
			}
			if cmd.Flags().Changed("fast-mode") {
				opts.FastMode = fastMode
			}
			if cmd.Flags().Changed("audio") {
				opts.Audio = audio
			}
			if cmd.Flags().Changed("automatic") {
				auto = automatic
			}

			// Quiet means unattended: take only safe actions and do not
			// touch files that were already configured.
			if quiet {
				auto = true
				opts.UpdateOnly = true
				opts.FastMode = true
				opts.Audio = false
			}
			if !auto && !isatty.IsTerminal(os.Stdin.Fd()) {
				logger.Info("stdin is not a terminal, switching to automatic mode")
				auto = true
			}

			var resolver decision.Resolver
			if auto {
				resolver = decision.NewAutomatic(logging.WithComponent(logger, "decide"))
			} else {
				resolver = decision.NewConsole(os.Stdin, os.Stdout)
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

			out := cmd.OutOrStdout()
			if quiet {
				out = nil
			}
			orchestrator := scan.New(store, ctx.newReconciler(store, logger), inspector, resolver, target, opts, logging.WithComponent(logger, "scan"), out)

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			_, err = orchestrator.Run(runCtx, args)
			return err
		},
	}

	cmd.Flags().BoolVarP(&updateOnly, "update-only", "u", false, "Skip files that already have a configured track")
	cmd.Flags().BoolVarP(&fastMode, "fast-mode", "f", false, "Skip files whose audio already plays in the preferred language")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "No prompts, no output; implies --update-only, --fast-mode and disables --audio")
	cmd.Flags().BoolVarP(&audio, "audio", "a", false, "Also offer non-default audio tracks")
	cmd.Flags().BoolVar(&automatic, "automatic", false, "Answer every prompt with the safe default")

	return cmd
}
