package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"teamboard/internal/di"
	"teamboard/internal/infrastructure/config"
)

// NewRootCmd builds the daemon command
func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "teamboardd",
		Short: "Board storage daemon for teamboard",
		Long: `teamboardd owns the boards. It stores them on disk (markdown files or
sqlite) and serves them over HTTP on a unix socket, or on TCP when
daemon.address is set. It runs until interrupted.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := newLoader(configPath)
			if err != nil {
				return err
			}
			cfg, err := loader.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, loader.GetConfigPath())
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	return cmd
}

// Execute runs the daemon command
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "teamboardd: %v\n", err)
		os.Exit(1)
	}
}

func newLoader(path string) (*config.Loader, error) {
	if path != "" {
		return config.LoadFrom(path), nil
	}
	loader, err := config.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader, nil
}

func serve(ctx context.Context, cfg *config.Config, configFile string) error {
	container, cleanup, err := di.InitializeDaemon(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize daemon: %w", err)
	}
	defer cleanup()
	defer container.Logger.Sync()

	container.Logger.Info("teamboard daemon starting",
		zap.String("driver", cfg.Storage.Driver),
		zap.String("config", configFile))

	if err := container.Server.Start(ctx); err != nil {
		container.Logger.Error("daemon stopped with error", zap.Error(err))
		return err
	}
	container.Logger.Info("teamboard daemon stopped")
	return nil
}
