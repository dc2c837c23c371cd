package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/audit"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/config"
	dbpkg "github.com/BruksfildServices01/dogtrainer-admin/internal/db"
	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/lock"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/routes"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/timezone"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/validators"
)

func main() {

	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	if err := validators.RegisterBindings(); err != nil {
		log.Fatalf("failed to register validators: %v", err)
	}

	db := dbpkg.NewDB(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	locker := newLocker(ctx, cfg)
	overrides := loadOverrides(cfg.FamilyOverridesFile)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)
	defer auditDispatcher.Close()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Locker:    locker,
		Audit:     auditDispatcher,
		History:   auditLogger,
		Overrides: overrides,
		Location:  timezone.Location(cfg.Timezone),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func newLocker(ctx context.Context, cfg *config.Config) lock.Locker {
	if cfg.RedisURL == "" {
		slog.Warn("REDIS_URL not set, per-email lock is single-instance only")
		return lock.NewLocalLocker()
	}

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rdb, err := lock.Dial(dialCtx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	return lock.NewRedisLocker(rdb)
}

func loadOverrides(path string) domainClient.OverrideTable {
	if path == "" {
		return domainClient.NewOverrideTable()
	}

	table, err := domainClient.LoadOverrides(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("family overrides file not found, using empty table", "path", path)
		return domainClient.NewOverrideTable()
	}
	if err != nil {
		log.Fatalf("failed to load family overrides: %v", err)
	}

	slog.Info("family overrides loaded", "path", path, "rules", table.Len())
	return table
}
