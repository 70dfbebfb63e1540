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

	"github.com/spf13/cobra"

	"senametas/config"
	"senametas/storage"
	"senametas/web"
)

var (
	servePort   int
	serveDBPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the quota upload/read HTTP API",
	Long: `Start a local HTTP server exposing workbook uploads and paginated
collection reads.

POST /upload replaces each sheet's collection with the newly extracted
snapshot; GET /collections/{name}/records serves stored records with
offset/limit pagination.`,
	Example: `
  # Start on default port
  senametas serve

  # Custom port and database path
  senametas serve --port 9090 --db ./senametas.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		port := servePort
		if !cmd.Flags().Changed("port") {
			port = cfg.Server.Port
		}
		dbPath := serveDBPath
		if !cmd.Flags().Changed("db") {
			dbPath = cfg.Database.Path
		}

		store, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: web.NewServer(store, *cfg),
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		fmt.Printf("Listening on http://localhost:%d\n", port)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port for the API server (overrides config)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "./senametas.db", "Path to local SQLite database (overrides config)")
}
