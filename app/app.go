// Package app wires configuration, the object store, the virtual filesystem and the HTTP server.
package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/bucketfs/api"
	"github.com/rise-and-shine/bucketfs/http/server"
	"github.com/rise-and-shine/bucketfs/http/server/middleware"
	"github.com/rise-and-shine/bucketfs/meta"
	"github.com/rise-and-shine/bucketfs/observability/logger"
	"github.com/rise-and-shine/bucketfs/observability/metrics"
	"github.com/rise-and-shine/bucketfs/observability/tracing"
	"github.com/rise-and-shine/bucketfs/vfs"
)

const shutdownTimeout = 30 * time.Second

// Run starts the service and blocks until SIGINT or SIGTERM, or until the server fails.
func Run(cfg Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	meta.SetServiceInfo(cfg.Service.Name, cfg.Service.Version)
	logger.SetGlobal(cfg.Logger)
	log := logger.Named("app")
	defer func() { _ = logger.Sync() }()

	shutdownTracer, err := tracing.InitGlobalTracer(ctx, cfg.Tracing)
	if err != nil {
		return errx.Wrap(err)
	}
	defer func() {
		if err := shutdownTracer(); err != nil {
			log.Warnx(err)
		}
	}()

	m := metrics.New()

	store, err := newStore(ctx, cfg.Store, m)
	if err != nil {
		return errx.Wrap(err)
	}

	fs := vfs.New(store, cfg.VFS, logger.Global())
	checkConnectivity(ctx, fs, cfg.Store, log)

	srv := newHTTPServer(cfg.HTTPServer, fs, m)

	errCh := make(chan error, 1)
	go func() {
		log.With("address", cfg.HTTPServer.Address()).Info("http server started")
		errCh <- srv.Start()
	}()

	select {
	case err = <-errCh:
		return errx.Wrap(err)
	case <-ctx.Done():
	}

	log.Info("shutting down")

	done := make(chan error, 1)
	go func() { done <- srv.Stop() }()

	select {
	case err = <-done:
		return errx.Wrap(err)
	case <-time.After(shutdownTimeout):
		return errx.New("http server did not stop in time", errx.WithDetails(errx.D{"timeout": shutdownTimeout.String()}))
	}
}

func newHTTPServer(cfg server.Config, fs *vfs.FS, m *metrics.Metrics) *server.HTTPServer {
	log := logger.Global()

	srv := server.NewHTTPServer(cfg, []server.Middleware{
		middleware.NewRecoveryMW(log),
		middleware.NewCORSMW(cfg.CORSAllowOrigins),
		middleware.NewTracingMW(),
		middleware.NewMetricsMW(m),
		middleware.NewTimeoutMW(cfg.HandleTimeout, api.UploadPath),
		middleware.NewMetaInjectMW(),
		middleware.NewLoggerMW(log),
		middleware.NewErrorHandlerMW(api.ErrorOptions(cfg.HideErrorDetails)),
	})
	srv.RegisterRouter(api.Router(fs, m))

	return srv
}
