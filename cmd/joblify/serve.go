package main

import (
	"fmt"
	"log/slog"

	"github.com/joblify/employer-console/internal/config"
	"github.com/joblify/employer-console/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	Long: `Start an HTTP server that exposes the employer dashboard at its URL paths
and proxies every action to the job-board API with the caller's token.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

// serverConfig resolves the server settings for cmd.
func serverConfig(cmd *cobra.Command) (server.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return server.Config{}, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return server.Config{}, fmt.Errorf("invalid JWT configuration: %w", err)
	}

	level := slog.LevelInfo
	if verbose || cfg.Verbose {
		level = slog.LevelDebug
	}

	return server.Config{
		Port:           cfg.Port,
		APIURL:         cfg.APIURL,
		Timeout:        cfg.Timeout(),
		AllowedOrigins: cfg.AllowedOrigins,
		JWT:            jwtCfg,
		Logger:         slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})),
	}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := serverConfig(cmd)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
