package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shinyyama/spool-backend/internal/config"
	"github.com/shinyyama/spool-backend/internal/mirror"
	"github.com/shinyyama/spool-backend/internal/server"
	"github.com/shinyyama/spool-backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var catalogMirror service.CatalogMirror
	if cfg.MirrorEnabled() {
		gcs, err := mirror.NewGCSMirror(ctx, cfg.StorageBucket, cfg.StoragePrefix, cfg.CredentialsFile)
		if err != nil {
			log.Fatalf("mirror init error: %v", err)
		}
		defer gcs.Close()
		catalogMirror = gcs
		log.Printf("catalog mirror enabled bucket=%s prefix=%s", cfg.StorageBucket, cfg.StoragePrefix)
	}

	srv := server.New(cfg, catalogMirror)
	addr := ":" + cfg.Port

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server on %s catalog=%s", addr, cfg.CatalogRoot())
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	case <-ctx.Done():
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
