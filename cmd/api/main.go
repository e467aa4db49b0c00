package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"stickynotes/cmd/internal/config"
	"stickynotes/cmd/internal/domain/sqlite"
	"stickynotes/cmd/internal/domain/sqlite/repository"
	"stickynotes/cmd/internal/http/handler"
	"stickynotes/cmd/internal/http/server"
	"stickynotes/cmd/internal/service"
	"stickynotes/cmd/internal/utils/tokens"
	"stickynotes/cmd/internal/utils/uid"
	"stickynotes/cmd/internal/utils/validators"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads env vars depending on environment
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	if err = uid.Init(cfg.NodeID); err != nil {
		log.Fatalf("%v", err)
	}

	// Init SQLite, the process must not serve without a working store
	db, err := sqlite.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database at %s: %v", cfg.DatabasePath, err)
	}
	defer func() {
		if err := sqlite.Close(db); err != nil {
			log.Errorf("failed to close database: %v", err)
		}
	}()

	validate := validators.New()
	verifier := tokens.NewVerifier(cfg.JWTSecret)
	issuer := tokens.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)

	// Gettings repos
	noteRepo := repository.NewNoteRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Getting services
	noteService := service.NewNoteService(noteRepo, validate)
	userService := service.NewUserService(userRepo, issuer, validate)

	e := server.New(&server.Options{
		NoteRoutes:   handler.NewNoteDefault(noteService),
		UserRoutes:   handler.NewUserDefault(userService),
		Verifier:     verifier,
		BodyLimit:    cfg.BodyLimit,
		AllowOrigins: cfg.AllowOrigins,
	})

	go func() {
		log.Infof("server running on port %s (%s)", cfg.Port, cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}
