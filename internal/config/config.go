package config

import (
	"errors"  // Error construction
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // String manipulation
	"time"    // Durations for token and cache TTLs

	"github.com/dustin/go-humanize" // Human readable byte sizes
	"github.com/joho/godotenv"      // For loading .env files
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported storage backends
const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	IsProd         bool          // Is production environment
	DBDriver       string        // Database driver: mysql, postgres or sqlite
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	DBPath         string        // SQLite database file
	JWTSecret      string        // JWT secret key
	JWTTTL         time.Duration // Lifetime of issued tokens
	RedisAddr      string        // Redis server address
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	FeedCacheTTL   time.Duration // How long the public feed stays cached
	StorageBackend string        // Upload storage backend: local or minio
	UploadDir      string        // Directory for the local backend
	MaxUploadSize  int64         // Maximum upload body in bytes
	S3Endpoint     string        // MinIO/S3 endpoint
	S3AccessKey    string        // MinIO/S3 access key
	S3SecretKey    string        // MinIO/S3 secret key
	S3Bucket       string        // MinIO/S3 bucket
	CORSOrigin     string        // Allowed browser origin
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),                               // Application port
		IsProd:         os.Getenv("IS_PROD") == "true",                           // Is production environment
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),        // Database driver
		DBUser:         os.Getenv("DB_USER"),                                     // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),                                 // Database password
		DBHost:         os.Getenv("DB_HOST"),                                     // Database host
		DBPort:         os.Getenv("DB_PORT"),                                     // Database port
		DBName:         os.Getenv("DB_NAME"),                                     // Database name
		DBPath:         getEnv("DB_PATH", "ideahub.db"),                          // SQLite file
		JWTSecret:      os.Getenv("JWT_SECRET"),                                  // JWT secret key
		JWTTTL:         getDuration("JWT_TTL", 24*time.Hour),                     // Token lifetime
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),                   // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),                                  // Redis password
		RedisDB:        redisDB,                                                  // Redis database number
		FeedCacheTTL:   getDuration("FEED_CACHE_TTL", 60*time.Second),            // Feed cache lifetime
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageLocal)), // Storage backend
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),                          // Local upload directory
		MaxUploadSize:  getBytes("MAX_UPLOAD_SIZE", 10*humanize.MByte),           // Upload size limit
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),                                 // MinIO endpoint
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),                               // MinIO access key
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),                               // MinIO secret key
		S3Bucket:       os.Getenv("S3_BUCKET"),                                   // MinIO bucket
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:5173"),           // Frontend origin
	}
}

// Validate reports configuration that would prevent the server from starting
func (c *Config) Validate() error {
	var missing []string // Names of missing keys
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			missing = append(missing, "DB_HOST", "DB_NAME")
		}
	case DriverSQLite:
		if c.DBPath == "" {
			missing = append(missing, "DB_PATH")
		}
	default:
		return errors.New("unsupported DB_DRIVER: " + c.DBDriver)
	}
	switch c.StorageBackend {
	case StorageLocal:
		if c.UploadDir == "" {
			missing = append(missing, "UPLOAD_DIR")
		}
	case StorageMinio:
		if c.S3Endpoint == "" || c.S3AccessKey == "" || c.S3SecretKey == "" || c.S3Bucket == "" {
			missing = append(missing, "S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET")
		}
	default:
		return errors.New("unsupported STORAGE_BACKEND: " + c.StorageBackend)
	}
	if len(missing) > 0 {
		return errors.New("missing " + strings.Join(missing, ", ") + " in env")
	}
	return nil
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
			" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
	case DriverSQLite:
		return c.DBPath + "?_pragma=foreign_keys(1)"
	default:
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
	}
}

// getEnv returns the variable or a fallback when unset
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// getDuration parses a Go duration such as "24h", falling back on error
func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// getBytes parses a size such as "10MB", falling back on error
func getBytes(key string, fallback int64) int64 {
	n, err := humanize.ParseBytes(os.Getenv(key))
	if err != nil || n == 0 {
		return fallback
	}
	return int64(n)
}
