package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/jcarver/wellpath/mockapi"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local mock API server with demo data",
	Long: `Starts the built-in WellPath mock server. It serves the full API
against a fixed in-memory dataset, with a demo login of admin/password.
Point the client at it with --api http://localhost:<port>/api.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := appConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		mock, err := mockapi.New(mockapi.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("initialize mock server: %w", err)
		}

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})
		r.Mount("/api", mock.Router())

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", servePort),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		fmt.Fprintf(cmd.OutOrStdout(),
			"Mock WellPath API on http://localhost:%d/api (login: admin / password)\n", servePort)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
}
