package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"coffee-edition/internal/app"
	"coffee-edition/internal/config"
	"coffee-edition/internal/env"
	"coffee-edition/internal/logger"
	"coffee-edition/internal/telemetry"
)

var envFile string

func main() {
	root := &cobra.Command{
		Use:   "coffee",
		Short: "Coffee Edition 3D outfit viewer",
		Long: `coffee - Coffee Edition 3D outfit viewer

Shows the outfit model with its item panels and the sound bar.

Controls:
  Mouse drag   - Rotate model (keeps spinning after release)
  Click panel  - Open the item's shop page
  Sound bar    - Previous, play/pause, next
  Esc          - Toggle console ("cmd help" lists commands)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.Load(envFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env", env.DefaultFile, "dotenv file to load before reading COFFEE_* settings")
	root.AddCommand(probeCmd(), catalogCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runViewer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogFile)

	shutdown, err := telemetry.Setup(ctx, cfg.OTelEndpoint)
	if err != nil {
		log.Warn("telemetry disabled: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("telemetry shutdown: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	log.Info("coffee edition starting (%dx%d)", cfg.Width, cfg.Height)
	return a.Run()
}
