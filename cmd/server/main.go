package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"siakad/internal/config"
	"siakad/internal/db"
	"siakad/internal/http/router"
)

func main() {
	cfg := config.MustLoad()

	sqlDB, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.Migrate(context.Background(), sqlDB); err != nil {
		slog.Error("migrate", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handler, err := router.New(cfg, sqlDB)
	if err != nil {
		slog.Error("build router", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("listening", slog.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
