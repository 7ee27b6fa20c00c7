package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_PORT", "IS_PROD", "DB_DRIVER", "DB_PATH", "JWT_SECRET", "JWT_TTL",
		"REDIS_ADDR", "REDIS_DB", "FEED_CACHE_TTL", "STORAGE_BACKEND", "UPLOAD_DIR",
		"MAX_UPLOAD_SIZE", "CORS_ORIGIN",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.False(t, cfg.IsProd)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 60*time.Second, cfg.FeedCacheTTL)
	assert.Equal(t, StorageLocal, cfg.StorageBackend)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(10_000_000), cfg.MaxUploadSize)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "http://localhost:5173", cfg.CORSOrigin)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("IS_PROD", "true")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("FEED_CACHE_TTL", "nonsense")
	t.Setenv("MAX_UPLOAD_SIZE", "2 MiB")
	t.Setenv("REDIS_DB", "3")

	cfg := LoadConfig()
	assert.True(t, cfg.IsProd)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 60*time.Second, cfg.FeedCacheTTL, "unparseable values fall back")
	assert.Equal(t, int64(2<<20), cfg.MaxUploadSize)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DBDriver:       DriverMySQL,
			DBHost:         "db",
			DBName:         "ideas",
			JWTSecret:      "s",
			StorageBackend: StorageLocal,
			UploadDir:      "uploads",
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"no host", func(c *Config) { c.DBHost = "" }, "DB_HOST"},
		{"sqlite without path", func(c *Config) { c.DBDriver = DriverSQLite; c.DBPath = "" }, "DB_PATH"},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, "DB_DRIVER"},
		{"minio without bucket", func(c *Config) { c.StorageBackend = StorageMinio }, "S3_BUCKET"},
		{"unknown backend", func(c *Config) { c.StorageBackend = "ftp" }, "STORAGE_BACKEND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDSN(t *testing.T) {
	c := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "n", DBPath: "app.db"}

	c.DBDriver = DriverMySQL
	assert.Equal(t, "u:p@tcp(h:1)/n?parseTime=true", c.DSN())

	c.DBDriver = DriverPostgres
	assert.Equal(t, "host=h port=1 user=u password=p dbname=n sslmode=disable", c.DSN())

	c.DBDriver = DriverSQLite
	assert.Equal(t, "app.db?_pragma=foreign_keys(1)", c.DSN())
}
