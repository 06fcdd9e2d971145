package app

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/bucketfs/http/server"
	"github.com/rise-and-shine/bucketfs/objstore"
	"github.com/rise-and-shine/bucketfs/observability/logger"
	"github.com/rise-and-shine/bucketfs/observability/metrics"
	"github.com/rise-and-shine/bucketfs/vfs"
)

func TestNewStore(t *testing.T) {
	t.Run("memory driver is throttled and instrumented", func(t *testing.T) {
		m := metrics.New()
		store, err := newStore(t.Context(), StoreConfig{Driver: DriverMemory, RateLimit: 1000, RateBurst: 10}, m)
		require.NoError(t, err)

		require.NoError(t, store.PutEmpty(t.Context(), "a/"))
		assert.Equal(t, objstore.DefaultDeleteBatchLimit, store.DeleteBatchLimit())
	})

	t.Run("minio driver without configuration", func(t *testing.T) {
		_, err := newStore(t.Context(), StoreConfig{Driver: DriverMinio}, nil)
		require.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := newStore(t.Context(), StoreConfig{Driver: "ftp"}, nil)
		require.Error(t, err)
	})
}

type flakyPinger struct {
	failures int
	calls    int
}

func (f *flakyPinger) Ping(context.Context) error {
	f.calls++
	if f.calls <= f.failures {
		return errx.New("store unreachable")
	}
	return nil
}

func TestCheckConnectivity(t *testing.T) {
	cfg := StoreConfig{Driver: DriverMemory, ConnectAttempts: 3, ConnectDelay: time.Millisecond}

	t.Run("recovers after retries", func(t *testing.T) {
		p := &flakyPinger{failures: 2}
		assert.True(t, checkConnectivity(t.Context(), p, cfg, logger.Nop()))
		assert.Equal(t, 3, p.calls)
	})

	t.Run("gives up without failing", func(t *testing.T) {
		p := &flakyPinger{failures: 10}
		assert.False(t, checkConnectivity(t.Context(), p, cfg, logger.Nop()))
		assert.Equal(t, 3, p.calls)
	})
}

func TestNewHTTPServer_ServesHealth(t *testing.T) {
	m := metrics.New()
	store, err := newStore(t.Context(), StoreConfig{Driver: DriverMemory}, m)
	require.NoError(t, err)

	srv := newHTTPServer(server.Config{
		Host:             "localhost",
		Port:             8080,
		BodyLimit:        4 << 20,
		HandleTimeout:    time.Second,
		CORSAllowOrigins: "*",
	}, vfs.New(store, vfs.Config{}, logger.Nop()), m)

	resp, err := srv.Test(httptest.NewRequest("GET", "/api/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}
