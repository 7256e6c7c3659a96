package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/vendortrack/internal/app"
	"github.com/MrJamesThe3rd/vendortrack/internal/config"
	vtHttp "github.com/MrJamesThe3rd/vendortrack/internal/http"
	catalogHandler "github.com/MrJamesThe3rd/vendortrack/internal/http/catalog"
	eventHandler "github.com/MrJamesThe3rd/vendortrack/internal/http/event"
	exportHandler "github.com/MrJamesThe3rd/vendortrack/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/vendortrack/internal/http/importcsv"
	userHandler "github.com/MrJamesThe3rd/vendortrack/internal/http/user"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err, "storage", cfg.Storage.Driver)
		os.Exit(1)
	}
	defer a.Close()

	router := vtHttp.New(vtHttp.Handlers{
		Products: catalogHandler.NewHandler(a.Products),
		Import:   importHandler.NewHandler(a.Import, a.Products),
		Events:   eventHandler.NewHandler(a.Events),
		Export:   exportHandler.NewHandler(a.Export, a.Events),
		User:     userHandler.NewHandler(a.Users),
	}, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("starting server", "port", server.Addr, "storage", cfg.Storage.Driver)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
