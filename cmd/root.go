/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/openclassroom/client/config"
	"github.com/openclassroom/client/internal/api"
	"github.com/openclassroom/client/internal/events"
	"github.com/openclassroom/client/internal/session"
	"github.com/openclassroom/client/internal/tokenstore"
	"github.com/openclassroom/client/internal/transport"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "openclassroom",
	Short: "Client for the online classroom management API",
	Long: `Client for the online classroom management API.

Sign in once with "openclassroom login"; the session is persisted and
reused by every other command until you sign out or it expires.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// app bundles the client stack shared by every command: config, token
// store, event bus, API client, and the session core built on them.
type app struct {
	cfg    config.Config
	tokens tokenstore.Store
	bus    *events.Bus
	client *api.Client
	svc    *session.Service
	state  *session.State
}

func newApp() (*app, error) {
	cfg := config.LoadConfig()

	tokens, err := tokenstore.OpenFileStore(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}

	bus := events.NewBus()
	client := api.NewClient(cfg.APIBaseURL, transport.New(tokens, bus, nil), cfg.HTTPTimeout)
	svc := session.NewService(client, tokens)

	return &app{
		cfg:    cfg,
		tokens: tokens,
		bus:    bus,
		client: client,
		svc:    svc,
		state:  session.NewState(svc, tokens, bus),
	}, nil
}
