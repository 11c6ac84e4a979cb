package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	clientcmd "github.com/rzbill/tally/internal/cmd/client"
	serverrun "github.com/rzbill/tally/internal/cmd/server"
	cfgpkg "github.com/rzbill/tally/internal/config"
	logpkg "github.com/rzbill/tally/pkg/log"
	"github.com/spf13/cobra"
)

func main() {
	// initialize logger for CLI; respects TALLY_LOG_LEVEL for both CLI and
	// server start output
	level := os.Getenv("TALLY_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "tally",
		Short: "Tally event tracker CLI",
		Long:  "Tally records visit and purchase events and answers trailing-window statistics. This CLI manages the server and basic operations.",
	}

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start tally server (HTTP)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			httpAddr, _ := cmd.Flags().GetString("http")
			configPath, _ := cmd.Flags().GetString("config")
			store, _ := cmd.Flags().GetString("store")
			redisAddr, _ := cmd.Flags().GetString("redis")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfgpkg.FromEnv(&cfg)
			if store != "" {
				cfg.Store = store
			}
			if redisAddr != "" {
				cfg.Redis.Addr = redisAddr
			}
			if logLevel != "" {
				_ = os.Setenv("TALLY_LOG_LEVEL", logLevel)
			}
			if logFormat != "" {
				_ = os.Setenv("TALLY_LOG_FORMAT", logFormat)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := serverrun.Run(ctx, serverrun.Options{
				HTTPAddr: httpAddr,
				Config:   cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	serverStartCmd.Flags().String("http", ":8080", "HTTP listen address")
	serverStartCmd.Flags().String("config", "", "Path to JSON config file (optional)")
	serverStartCmd.Flags().String("store", "", "Ledger store: memory|redis (overrides config)")
	serverStartCmd.Flags().String("redis", "", "Redis address for the redis store (overrides config)")
	serverStartCmd.Flags().String("log-level", os.Getenv("TALLY_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("TALLY_LOG_FORMAT"), "Log format: text|json (default text)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	// client commands
	rootCmd.AddCommand(clientcmd.NewTrackCommand(apiURL))
	rootCmd.AddCommand(clientcmd.NewStatsCommand(apiURL))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func apiURL() string {
	if v := os.Getenv("TALLY_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}
