package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	API   APIConfig
	Store StoreConfig
	UI    UIConfig
}

type AppConfig struct {
	Environment        string
	LogFilePath        string
	HubLogFilePath     string
	BridgePort         string
	BridgeJWTSecret    string // empty leaves the bridge unauthenticated
	CorsAllowedOrigins string
}

type APIConfig struct {
	BaseURL     string
	Timeout     time.Duration
	BypassNgrok bool
}

type StoreConfig struct {
	KVDriver      string // "memory", "redis", "sqlite" or "postgres"
	KVDSN         string
	RedisURL      string
	NatsURL       string // empty disables cross-process session sync
	SessionSecret string
}

type UIConfig struct {
	BlobTTL    time.Duration
	ToastTTL   time.Duration
	UploadTick time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/console.log"),
			HubLogFilePath:     getEnv("HUB_LOG_FILE_PATH", "logs/hub.log"),
			BridgePort:         getEnv("BRIDGE_PORT", "4300"),
			BridgeJWTSecret:    getEnv("BRIDGE_JWT_SECRET", ""),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		API: APIConfig{
			BaseURL:     strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
			Timeout:     time.Duration(getEnvAsInt("API_TIMEOUT_SECONDS", 60)) * time.Second,
			BypassNgrok: getEnvAsBool("API_NGROK_BYPASS", true),
		},
		Store: StoreConfig{
			KVDriver:      getEnv("KV_DRIVER", "memory"),
			KVDSN:         getEnv("KV_DSN", "console.db"),
			RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			NatsURL:       getEnv("NATS_URL", ""),
			SessionSecret: getEnv("SESSION_SECRET", ""),
		},
		UI: UIConfig{
			BlobTTL:    time.Duration(getEnvAsInt("BLOB_TTL_SECONDS", 60)) * time.Second,
			ToastTTL:   time.Duration(getEnvAsInt("TOAST_TTL_SECONDS", 5)) * time.Second,
			UploadTick: time.Duration(getEnvAsInt("UPLOAD_TICK_MS", 300)) * time.Millisecond,
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
