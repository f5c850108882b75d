package cmd

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"github.com/sorinciupitu/extrase-trezorerie/internal/api"
	"github.com/sorinciupitu/extrase-trezorerie/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the statement import HTTP API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			return fmt.Errorf("failed to create upload directory: %w", err)
		}

		db, err := store.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()

		h := &api.Handler{
			Log:           Log,
			Transactions:  store.NewTransactionStore(db),
			Balances:      store.NewBalanceStore(db),
			UploadDir:     cfg.UploadDir,
			MaxUploadSize: cfg.MaxUploadSizeBytes,
		}

		app := fiber.New(fiber.Config{
			BodyLimit: int(cfg.MaxUploadSizeBytes),
		})
		h.RegisterRoutes(app)

		Log.WithField("port", cfg.Port).Info("starting server")
		return app.Listen(":" + cfg.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
