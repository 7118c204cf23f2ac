package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host     string `mapstructure:"SERVER_HOST"`
	Port     int    `mapstructure:"SERVER_PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"DB_HOST"`
	Port     int    `mapstructure:"DB_PORT"`
	User     string `mapstructure:"DB_USER"`
	Password string `mapstructure:"DB_PASSWORD"`
	DBName   string `mapstructure:"DB_NAME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     int    `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"JWT_SECRET"`
	AccessExpiryMin  int    `mapstructure:"JWT_ACCESS_EXPIRY_MINUTES"`
	RefreshExpiryMin int    `mapstructure:"JWT_REFRESH_EXPIRY_MINUTES"`
}

type GoogleAPIConfig struct {
	ClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	ClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	RedirectURI  string `mapstructure:"GOOGLE_REDIRECT_URI"`
}

// EngineConfig holds tunables for the scheduling engine
type EngineConfig struct {
	DefaultDurationMinutes int `mapstructure:"ENGINE_DEFAULT_DURATION_MINUTES"`
	MaxSuggestions         int `mapstructure:"ENGINE_MAX_SUGGESTIONS"`
	BestTimeCacheTTLMin    int `mapstructure:"ENGINE_BESTTIME_CACHE_TTL_MINUTES"`
}

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	GoogleAPI GoogleAPIConfig
	Engine    EngineConfig
}

var instance *Config

// Load reads .env (if present) plus environment variables into the
// package-level config. Must be called once at startup before Get.
func Load() (*Config, error) {
	// .env is optional; real environments rely on injected env vars
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 7070)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "meetsync")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ACCESS_EXPIRY_MINUTES", 60)
	v.SetDefault("JWT_REFRESH_EXPIRY_MINUTES", 10080)
	v.SetDefault("ENGINE_DEFAULT_DURATION_MINUTES", 60)
	v.SetDefault("ENGINE_MAX_SUGGESTIONS", 5)
	v.SetDefault("ENGINE_BESTTIME_CACHE_TTL_MINUTES", 10)

	cfg := &Config{
		Server: ServerConfig{
			Host:     v.GetString("SERVER_HOST"),
			Port:     v.GetInt("SERVER_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:           v.GetString("JWT_SECRET"),
			AccessExpiryMin:  v.GetInt("JWT_ACCESS_EXPIRY_MINUTES"),
			RefreshExpiryMin: v.GetInt("JWT_REFRESH_EXPIRY_MINUTES"),
		},
		GoogleAPI: GoogleAPIConfig{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURI:  v.GetString("GOOGLE_REDIRECT_URI"),
		},
		Engine: EngineConfig{
			DefaultDurationMinutes: v.GetInt("ENGINE_DEFAULT_DURATION_MINUTES"),
			MaxSuggestions:         v.GetInt("ENGINE_MAX_SUGGESTIONS"),
			BestTimeCacheTTLMin:    v.GetInt("ENGINE_BESTTIME_CACHE_TTL_MINUTES"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	instance = cfg
	return cfg, nil
}

// Get returns the loaded config. Panics if Load was never called.
func Get() *Config {
	if instance == nil {
		panic("config: Get called before Load")
	}
	return instance
}

// GetSafe returns the loaded config and whether it has been initialized
func GetSafe() (*Config, bool) {
	if instance == nil {
		return nil, false
	}
	return instance, true
}
