// Package server initializes and runs the PicShare web application.
// It opens the database and runs migrations, builds the storage gateway and
// services, and serves HTTP until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/picshare/internal/dbx"
	"github.com/dmitrijs2005/picshare/internal/filex"
	"github.com/dmitrijs2005/picshare/internal/logging"
	"github.com/dmitrijs2005/picshare/internal/server/config"
	"github.com/dmitrijs2005/picshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/picshare/internal/server/services"
	"github.com/dmitrijs2005/picshare/internal/server/storage"
	"github.com/dmitrijs2005/picshare/internal/server/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *web.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogFormat, os.Stdout)

	db, err := dbx.Open(ctx, repomanager.DriverName, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	stagingDir, err := filex.EnsureDir(c.UploadDir)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("upload dir error: %w", err)
	}

	gw, err := storage.New(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	us := services.NewUserService(db, rm, c)
	up := services.NewUploadService(gw, stagingDir, logger.With("module", "upload"))
	gs := services.NewGalleryService(gw)

	h := web.NewHandler(us, up, gs, c, logger.With("module", "web"))
	srv := web.NewHTTPServer(c.EndpointAddrHTTP, web.NewRouter(h), logger, c.ShutdownTimeout)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage_driver", app.config.StorageDriver, "bucket", app.config.S3Bucket)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
