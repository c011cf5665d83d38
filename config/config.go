package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration. Values come from the
// environment (optionally a .env file) with sensible defaults.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MinIO object storage for the downloaded audio archive. Leaving the
	// endpoint empty disables archiving.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// YtdlpPath is the external downloader binary.
	YtdlpPath string
	// SongDir is where the downloader leaves audio files and their
	// .info.json sidecars.
	SongDir string
	// SocketTimeoutSec is passed to the downloader as --socket-timeout.
	SocketTimeoutSec int
	// Retries is passed to the downloader as --retries.
	Retries int

	DefaultSearchResults int
	MaxSearchResults     int
	MaxLastPlayed        int

	// CycleInterval is how often the ingestion worker polls the queue when
	// idle. Enqueues wake it immediately.
	CycleInterval time.Duration

	LogPath string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "seanify"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "seanify-songs"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),

		YtdlpPath:        getEnv("YTDLP_PATH", "yt-dlp"),
		SongDir:          getEnv("SONG_DIR", "songs"),
		SocketTimeoutSec: getEnvInt("YT_TIMEOUT_SEC", 3),
		Retries:          getEnvInt("YT_RETRIES", 3),

		DefaultSearchResults: getEnvInt("DEFAULT_SEARCH_RESULTS", 30),
		MaxSearchResults:     getEnvInt("MAX_SEARCH_RESULTS", 30),
		MaxLastPlayed:        getEnvInt("MAX_LAST_PLAYED", 30),

		CycleInterval: time.Duration(getEnvInt("CYCLE_INTERVAL_SEC", 5)) * time.Second,

		LogPath: getEnv("LOG_PATH", ""),
	}
}

// Validate checks the loaded configuration for values the pipeline cannot
// run with. Called once at bootstrap; errors are fatal.
func (c *Config) Validate() error {
	if c.SocketTimeoutSec < 1 {
		return fmt.Errorf("YT_TIMEOUT_SEC must be at least 1, got %d", c.SocketTimeoutSec)
	}
	if c.Retries < 0 {
		return fmt.Errorf("YT_RETRIES must not be negative, got %d", c.Retries)
	}
	if c.MaxSearchResults < 1 {
		return fmt.Errorf("MAX_SEARCH_RESULTS must be at least 1, got %d", c.MaxSearchResults)
	}
	if c.DefaultSearchResults < 1 || c.DefaultSearchResults > c.MaxSearchResults {
		return fmt.Errorf("DEFAULT_SEARCH_RESULTS must be within [1, %d], got %d",
			c.MaxSearchResults, c.DefaultSearchResults)
	}
	if c.MaxLastPlayed < 1 {
		return fmt.Errorf("MAX_LAST_PLAYED must be at least 1, got %d", c.MaxLastPlayed)
	}
	if c.SongDir == "" {
		return fmt.Errorf("SONG_DIR must not be empty")
	}
	if c.CycleInterval < time.Second {
		return fmt.Errorf("CYCLE_INTERVAL_SEC must be at least 1, got %s", c.CycleInterval)
	}
	return nil
}
