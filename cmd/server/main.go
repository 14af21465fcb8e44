package main

import (
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"splitzy/internal/api"
	"splitzy/internal/auth"
	"splitzy/internal/config"
	"splitzy/internal/service"
	"splitzy/internal/storage/sqlite"
	"splitzy/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	server := api.NewServer(
		service.NewAuthService(authenticator, jwtManager),
		service.NewUserService(store),
		service.NewGroupService(store),
		service.NewExpenseService(store),
		service.NewSettlementService(store),
		jwtManager,
	)

	// h2c allows HTTP/2 without TLS, for local and reverse-proxied deployments.
	handler := h2c.NewHandler(server.Handler(), &http2.Server{})

	slog.Info("Starting server", "bind", cfg.Bind, "db", cfg.DBPath)
	if err := http.ListenAndServe(cfg.Bind, handler); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
