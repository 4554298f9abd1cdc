package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	t.Run("defaults are applied", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "memory")

		cfg, err := ReadConfig(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)

		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, 8080, cfg.HTTP.Port)
		assert.Equal(t, 2*time.Minute, cfg.HTTP.RequestTimeout)
		assert.Equal(t, []string{"*"}, cfg.HTTP.CorsAllowedOrigins)
		assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
		assert.Equal(t, "car_search_db", cfg.Store.MongoDatabase)
		assert.Equal(t, "cars.exported", cfg.Nats.ExportSubject)
		assert.False(t, cfg.ArchiveEnabled())
		assert.False(t, cfg.EventsEnabled())
	})

	t.Run("values are read from the env file", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		content := "STORE_DRIVER=mongo\nMONGODB_URI=mongodb://localhost:27017\nHTTP_PORT=9000\nCORS_ALLOWED_ORIGINS=http://a.test,http://b.test\n"
		require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
		t.Cleanup(func() {
			for _, key := range []string{"STORE_DRIVER", "MONGODB_URI", "HTTP_PORT", "CORS_ALLOWED_ORIGINS"} {
				os.Unsetenv(key)
			}
		})

		cfg, err := ReadConfig(envFile)
		require.NoError(t, err)

		assert.Equal(t, StoreDriverMongo, cfg.Store.Driver)
		assert.Equal(t, "mongodb://localhost:27017", cfg.Store.MongoURI)
		assert.Equal(t, 9000, cfg.HTTP.Port)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.CorsAllowedOrigins)
	})

	t.Run("mongo driver requires a uri", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")
		t.Setenv("MONGODB_URI", "")

		_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})

	t.Run("unknown driver is rejected", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "postgres")

		_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})

	t.Run("export bucket requires a region", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("AWS_S3_EXPORT_BUCKET", "car-exports")
		t.Setenv("AWS_REGION", "")

		_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})

	t.Run("archive and events switch on with their settings", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("AWS_S3_EXPORT_BUCKET", "car-exports")
		t.Setenv("AWS_REGION", "us-east-1")
		t.Setenv("NATS_URL", "nats://localhost:4222")

		cfg, err := ReadConfig(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.True(t, cfg.ArchiveEnabled())
		assert.True(t, cfg.EventsEnabled())
	})
}
