package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/frozen33/inventory/internal/auth"
	"github.com/frozen33/inventory/internal/config"
	"github.com/frozen33/inventory/internal/inventory"
	"github.com/frozen33/inventory/internal/server"
	"github.com/frozen33/inventory/internal/service"
	"github.com/frozen33/inventory/internal/session"
	"github.com/frozen33/inventory/internal/storage/sqlite"
	"github.com/frozen33/inventory/pkg/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the calculator HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if cfg.TokenSecret == "" {
		return fmt.Errorf("token_secret must be set (TILEBILL_TOKEN_SECRET)")
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.ListenAddr = listen
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	svc := service.NewBillService(store, inventory.NewSQLResolver(store.DB()))
	tokens := auth.NewTokenManager(cfg.TokenSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	srv := server.New(svc, session.NewStore())

	// h2c allows HTTP/2 without TLS behind a terminating proxy.
	handler := h2c.NewHandler(srv.Handler(tokens), &http2.Server{})

	slog.Info("Server starting", "address", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
