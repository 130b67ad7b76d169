package config

import (
	"time"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	API       APIConfig       `yaml:"api"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	Sessions  SessionConfig   `yaml:"sessions"`
	Cache     CacheConfig     `yaml:"cache"`
	Redis     *RedisConfig    `yaml:"redis"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Locale    LocaleConfig    `yaml:"locale"`
}

type ServerConfig struct {
	Port        int                `yaml:"port"`
	ExternalURL string             `yaml:"external_url"`
	Debug       *ServerDebugConfig `yaml:"debug"`
}

var DefaultServerConfig = ServerConfig{
	Port: 8080,
}

type ServerDebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

var DefaultDebugConfig = ServerDebugConfig{
	Enabled: false,
	Host:    "localhost",
	Port:    5123,
}

// APIConfig points the console at the Shuul backend it administers.
// BaseURL is the bare origin; the api client appends the versioned
// /api/v1 path itself.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

var DefaultAPIConfig = APIConfig{
	Timeout: 30 * time.Second,
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var DefaultLogConfig = LogConfig{
	Level:  "info",
	Format: "text",
}

type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	ExposedHeaders   []string `yaml:"exposed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAgeSeconds    int      `yaml:"max_age_seconds"`
}

var DefaultCORSConfig = CORSConfig{
	AllowedOrigins: []string{"http://localhost:5173"},
	AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
	AllowedHeaders: []string{"*"},
	MaxAgeSeconds:  300,
}

type SessionConfig struct {
	Store    string        `yaml:"store"`
	Lifetime time.Duration `yaml:"lifetime"`
	Name     string        `yaml:"name"`
	Secure   bool          `yaml:"secure"`
}

var DefaultSessionConfig = SessionConfig{
	Store:    "memory",
	Lifetime: 24 * time.Hour,
	Name:     "shuul_console_session",
	Secure:   true,
}

type CacheConfig struct {
	Type string `yaml:"type"` // "memory" or "redis"
}

type RedisConfig struct {
	Address      string               `yaml:"address"`
	Username     string               `yaml:"username"`
	Password     string               `yaml:"password"`
	Sentinel     *RedisSentinelConfig `yaml:"sentinel"`
	SessionIndex int                  `yaml:"session_index"`
	CacheIndex   int                  `yaml:"cache_index"`
}

var DefaultRedisConfig = RedisConfig{
	SessionIndex: 0,
	CacheIndex:   1,
}

type RedisSentinelConfig struct {
	MasterName        string   `yaml:"master_name"`
	SentinelAddresses []string `yaml:"addresses"`
	SentinelPassword  string   `yaml:"password"`
	SentinelUsername  string   `yaml:"username"`
}

// DashboardConfig controls how long aggregate reads are cached before the
// console asks the backend again.
type DashboardConfig struct {
	CounterTTL time.Duration `yaml:"counter_ttl"`
	ChartTTL   time.Duration `yaml:"chart_ttl"`
}

var DefaultDashboardConfig = DashboardConfig{
	CounterTTL: 30 * time.Second,
	ChartTTL:   time.Minute,
}

type LocaleConfig struct {
	Default string `yaml:"default"`
}

var DefaultLocaleConfig = LocaleConfig{
	Default: "en",
}
