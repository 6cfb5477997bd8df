package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/taskboard-be/internal/api"
	"github.com/isdelr/taskboard-be/internal/auth"
	"github.com/isdelr/taskboard-be/internal/config"
	"github.com/isdelr/taskboard-be/internal/database"
	"github.com/isdelr/taskboard-be/internal/logger"
	"github.com/isdelr/taskboard-be/internal/monitoring"
	"github.com/isdelr/taskboard-be/internal/services"
	"github.com/isdelr/taskboard-be/internal/stores"
	"github.com/isdelr/taskboard-be/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.Env)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up stores and services
	userStore := stores.NewUserStore(db)
	boardStore := stores.NewBoardStore(db)
	taskStore := stores.NewTaskStore(db)

	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(userStore, boardStore)
	boardService := services.NewBoardService(boardStore, taskStore, eventService)
	taskService := services.NewTaskService(taskStore, boardStore, eventService)
	accessService := services.NewAccessService(boardStore, taskStore)

	// Set up and run the overdue-task sweeper
	sweeper, err := monitoring.NewOverdueSweeper(taskStore, eventService, cfg.OverdueCron)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize overdue sweeper")
	}
	go sweeper.Run()

	// Set up router
	router := api.NewRouter(hub, tokenService, userService, boardService, taskService, eventService, accessService, cfg)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
