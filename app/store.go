package app

import (
	"context"

	"github.com/avast/retry-go/v4"
	"github.com/code19m/errx"
	"golang.org/x/time/rate"

	"github.com/rise-and-shine/bucketfs/objstore"
	"github.com/rise-and-shine/bucketfs/objstore/memstore"
	"github.com/rise-and-shine/bucketfs/objstore/miniowr"
	"github.com/rise-and-shine/bucketfs/observability/logger"
	"github.com/rise-and-shine/bucketfs/observability/metrics"
)

// newStore builds the configured backend and wraps it with throttling and instrumentation.
func newStore(ctx context.Context, cfg StoreConfig, m *metrics.Metrics) (objstore.ObjectStore, error) {
	var (
		store objstore.ObjectStore
		err   error
	)

	switch cfg.Driver {
	case DriverMemory:
		store = memstore.New()
	case DriverMinio:
		if cfg.Minio == nil {
			return nil, errx.New("minio driver selected without minio configuration")
		}
		store, err = miniowr.New(ctx, *cfg.Minio)
		if err != nil {
			return nil, errx.Wrap(err)
		}
	default:
		return nil, errx.New("unknown store driver", errx.WithDetails(errx.D{"driver": cfg.Driver}))
	}

	if cfg.RateLimit > 0 {
		store = objstore.Throttle(store, rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst))
	}

	if m != nil {
		store = m.InstrumentStore(store)
	}
	return store, nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

// checkConnectivity pings the store with backoff. A failure is logged, not returned:
// the service still starts and reports the problem through the health endpoint.
func checkConnectivity(ctx context.Context, p pinger, cfg StoreConfig, log logger.Logger) bool {
	log = log.Named("connectivity")

	err := retry.Do(
		func() error {
			return p.Ping(ctx)
		},
		retry.Attempts(cfg.ConnectAttempts),
		retry.Delay(cfg.ConnectDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.With("attempt", n+1, "max_attempts", cfg.ConnectAttempts).Warnx(err)
		}),
		retry.Context(ctx),
	)
	if err != nil {
		log.With("driver", cfg.Driver).Warnx(err)
		return false
	}

	log.With("driver", cfg.Driver).Info("connected to the object store")
	return true
}
