package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"

	"Mergington-App/internal/application"
	"Mergington-App/internal/config"
	"Mergington-App/internal/logger"
	"Mergington-App/internal/repository"
	"Mergington-App/internal/router"
	"Mergington-App/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込み失敗: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewStructured(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: cfg.App.Name,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ロガーの初期化失敗: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	gin.SetMode(cfg.Server.Mode)

	log.Info("starting server", map[string]interface{}{
		"environment": cfg.App.Environment,
		"port":        cfg.Server.Port,
	})

	// リポジトリ・サービスの初期化
	activitiesRepo := repository.NewJSONFileActivitiesRepository(afero.NewOsFs(), cfg.Activities.File)
	activitiesService := application.NewActivitiesService(activitiesRepo, log.Named("activities"), application.ServiceOptions{
		EnforceCapacity: cfg.Activities.EnforceCapacity,
	})
	// 読み込み失敗時は空のディレクトリで起動を続ける
	if _, err := activitiesService.Load(context.Background()); err != nil {
		log.Warn("starting with an empty activity directory", map[string]interface{}{
			"file": cfg.Activities.File,
		})
	}

	staticFS, err := resolveStaticFS(cfg.Server.StaticDir)
	if err != nil {
		log.WithError(err).Error("static assets unavailable", nil)
		os.Exit(1)
	}

	engine := router.New(router.Dependencies{
		ServiceName:       cfg.App.Name,
		ActivitiesService: activitiesService,
		Logger:            log,
		StaticFS:          staticFS,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("http server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server failed", nil)
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed", nil)
		return
	}
	log.Info("server stopped gracefully", nil)
}

// resolveStaticFS 指定ディレクトリがあればディスクから、無ければ埋め込みアセットを配信する
func resolveStaticFS(dir string) (http.FileSystem, error) {
	if dir != "" {
		return gin.Dir(dir, false), nil
	}
	return web.StaticFS()
}
