/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/openclassroom/client/internal/api"
	"github.com/openclassroom/client/internal/events"
	"github.com/openclassroom/client/internal/web"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser front end",
	Long: `Serve the browser front end. Usage:

	openclassroom serve
`,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
			os.Exit(1)
		}

		app.bus.Subscribe(func(ev events.Event) {
			if ev.Kind == events.SessionExpired {
				slog.Warn("session expired, browser will land on /login")
			}
		})

		srv, err := web.New(app.cfg, web.Deps{
			State:      app.state,
			Service:    app.svc,
			Classrooms: api.NewClassroomService(app.client),
			Courses:    api.NewCourseService(app.client),
			Tasks:      api.NewTaskService(app.client),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
			os.Exit(1)
		}

		// Pick up a persisted session before the first page render.
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		app.state.Hydrate(ctx)
		cancel()

		fmt.Printf("listening on http://localhost:%d\n", app.cfg.ServerPort)
		if err := srv.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
