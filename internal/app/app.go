package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/data/db"
	"github.com/yungbote/sales-backend/internal/data/snapshot"
	httpx "github.com/yungbote/sales-backend/internal/http"
	"github.com/yungbote/sales-backend/internal/observability"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
	"github.com/yungbote/sales-backend/internal/reports"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *httpx.Server
	Cfg      Config
	Repos    Repos
	Services Services
	Reports  reports.Service
	Metrics  *observability.Metrics

	dbService    *db.Service
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbService, err := db.NewService(cfg.DB, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init db: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := dbService.AutoMigrateAll(); err != nil {
			_ = dbService.Close()
			log.Sync()
			return nil, fmt.Errorf("db automigrate: %w", err)
		}
	}
	theDB := dbService.DB()

	metrics := observability.Init(log, cfg.Metrics)
	otelShutdown := observability.InitOTel(context.Background(), log, cfg.Otel)

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, reposet)
	reportService := reports.New(snapshot.NewGormSource(theDB, dbService.ReadTxOptions(), log), log, metrics)
	handlerset := wireHandlers(log, serviceset, reportService)
	server := wireServer(log, cfg, metrics, handlerset)

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Reports:      reportService,
		Metrics:      metrics,
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches background collectors. It is safe to call more than once.
func (a *App) Start(ctx context.Context) {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.Metrics.StartDBCollector(ctx, a.Log, a.DB, a.Cfg.Metrics.ScrapeInterval)
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := a.Cfg.Addr()
	a.Log.Info("HTTP server listening", "addr", addr)
	return a.Server.Run(addr)
}

// Shutdown drains the HTTP server and flushes traces, bounded by ctx.
func (a *App) Shutdown(ctx context.Context) error {
	if a == nil {
		return nil
	}
	var firstErr error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			firstErr = fmt.Errorf("http shutdown: %w", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("otel shutdown: %w", err)
		}
	}
	return firstErr
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil && a.Log != nil {
			a.Log.Warn("db close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
