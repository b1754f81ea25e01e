package main

import (
	"log/slog"

	"github.com/joblify/employer-console/internal/api"
	"github.com/joblify/employer-console/internal/auth"
	"github.com/joblify/employer-console/internal/config"
	"github.com/joblify/employer-console/internal/dashboard"
	"github.com/joblify/employer-console/internal/observability"
	"github.com/spf13/cobra"
)

// app is what every command needs: resolved config, the stored session and
// an API client that sends it.
type app struct {
	cfg     *config.Config
	session *auth.Session
	client  *api.Client
	logger  *slog.Logger
	printer *observability.Printer
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if verbose {
		cfg.Verbose = true
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	session, err := auth.LoadSession(cfg.TokenFile)
	if err != nil {
		return nil, err
	}

	opts := api.DefaultOptions()
	opts.Timeout = cfg.Timeout()
	opts.Logger = logger
	client, err := api.New(cfg.APIURL, session, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("console configured", "api_url", cfg.APIURL, "token_file", cfg.TokenFile, "authenticated", session.IsAuthenticated())

	return &app{
		cfg:     cfg,
		session: session,
		client:  client,
		logger:  logger,
		printer: observability.NewPrinter(cmd.OutOrStdout()),
	}, nil
}

// newAuthedApp is newApp for commands that need a stored token.
func newAuthedApp(cmd *cobra.Command) (*app, error) {
	a, err := newApp(cmd)
	if err != nil {
		return nil, err
	}
	if !a.session.IsAuthenticated() {
		return nil, errNotLoggedIn
	}
	return a, nil
}

func (a *app) dashboard() *dashboard.Dashboard {
	return dashboard.New(a.client, a.logger)
}

// show prints s, or fails with its error when the view could not load.
func (a *app) show(s *dashboard.Screen) error {
	a.printer.PrintScreen(s)
	if s.Error != "" {
		return screenError(s.Error)
	}
	return nil
}
