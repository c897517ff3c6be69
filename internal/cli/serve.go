package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentalhub/rentalhub/internal/auth"
	"github.com/rentalhub/rentalhub/internal/logging"
	"github.com/rentalhub/rentalhub/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the rentalhub HTTP API server.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")

	return cmd
}

func runServe(port int) error {
	cfg := auth.ConfigFromEnv()
	if cfg.JWTSecret == "" {
		return fmt.Errorf("RH_JWT_SECRET must be set")
	}
	logging.Setup(cfg.DevMode)

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	server := web.NewServer(database, cfg)
	return server.ListenAndServe(port)
}
