package cmd

import (
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/bunken-app/bunken/lookup/cinii"
	"github.com/bunken-app/bunken/lookup/ndl"
	"github.com/bunken-app/bunken/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the bibliography over HTTP",
	Long: `Run the HTTP API: reference CRUD, bibliography and citation
rendering, JSON import/export, and ISBN/article lookups.

The listen address comes from BUNKEN_LISTEN (default :8080).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	httpClient := &http.Client{Timeout: cfg.LookupTimeout}
	srv, err := server.New(
		db,
		ndl.NewClient(ndl.WithHTTPClient(httpClient)),
		cinii.NewClient(cinii.WithHTTPClient(httpClient), cinii.WithAppID(cfg.CiNiiAppID)),
		slog.Default(),
	)
	if err != nil {
		return err
	}

	slog.Info("listening", "addr", cfg.Listen, "db", cfg.DBPath)
	return http.ListenAndServe(cfg.Listen, srv.Router())
}
