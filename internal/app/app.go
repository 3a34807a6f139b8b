package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/taskwallet/backend/internal/config"
	"github.com/taskwallet/backend/internal/handlers"
	"github.com/taskwallet/backend/internal/notify"
	"github.com/taskwallet/backend/internal/pg"
	"github.com/taskwallet/backend/internal/repo"
	"github.com/taskwallet/backend/internal/service"
	"github.com/taskwallet/backend/pkg/blob"
	"github.com/taskwallet/backend/pkg/clients"
	"github.com/taskwallet/backend/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories
	hub  *notify.Hub

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn)
	a.hub = notify.NewHub(newForwarder(cfg))
	a.srv = service.New(a.repo, txManager, a.hub)

	proofStorage, err := newProofStorage(ctx, cfg)
	if err != nil {
		zap.L().Error("blob storage init failed: ", zap.Error(err))
		return fmt.Errorf("can't init blob storage: %w", err)
	}
	a.api = handlers.New(a.srv, a.hub, proofStorage)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

// newForwarder returns nil when no webhook is configured; the hub treats a
// nil forwarder as in-process delivery only.
func newForwarder(cfg *config.Config) notify.ForwarderI {
	if cfg.NotifyWebhook == "" {
		return nil
	}
	return notify.NewForwarder(cfg.NotifyWebhook, clients.NewHTTPClient())
}

// newProofStorage returns nil when no blob endpoint is configured; deposit
// claims are then accepted without proof images.
func newProofStorage(ctx context.Context, cfg *config.Config) (blob.Storage, error) {
	if cfg.BlobEndpoint == "" {
		return nil, nil
	}
	return blob.NewS3(ctx, blob.Options{
		Endpoint:   cfg.BlobEndpoint,
		Region:     cfg.BlobRegion,
		Bucket:     cfg.BlobBucket,
		AccessKey:  cfg.BlobAccessKey,
		SecretKey:  cfg.BlobSecretKey,
		PublicBase: cfg.BlobPublicBase,
	})
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
		a.hub.Close()
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
