// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/config"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/database"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/handler"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/logger"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/repository"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/service"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "hotel-booking")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// ── 1. Connect to PostgreSQL ──────────────────────────────────────────
	pool, err := database.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	defer pool.Close()
	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatal("database schema", zap.Error(err))
	}
	log.Info("connected to PostgreSQL", zap.String("host", cfg.DB.Host), zap.String("db", cfg.DB.DBName))

	// ── 2. Wire up layers ────────────────────────────────────────────────
	store := repository.NewBookingStore(pool)
	for _, seed := range cfg.SeedRooms {
		room, err := store.CreateRoom(ctx, seed.Name, seed.Capacity)
		if err != nil {
			log.Fatal("seed room", zap.String("name", seed.Name), zap.Error(err))
		}
		log.Info("room seeded", zap.Stringer("room_id", room.ID), zap.String("name", room.Name), zap.Int("capacity", room.Capacity))
	}
	bookingSvc := service.NewBookingService(store, log)
	bookingHandler := handler.NewBookingHandler(bookingSvc, log)

	// ── 3. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler.NewRouter(bookingHandler, cfg.JWTSecret, log),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	log.Info("server stopped")
}
