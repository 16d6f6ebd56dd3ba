package questhub

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	Web    WebConfig    `toml:"web"`
	DB     DBConfig     `toml:"db"`
	Spaces SpacesConfig `toml:"spaces"`
	Oracle OracleConfig `toml:"oracle"`
	Legacy LegacyConfig `toml:"legacy"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type WebConfig struct {
	Addr string `toml:"addr"`
	// AllowOrigins is the comma-separated CORS allowlist for the web client.
	AllowOrigins string `toml:"allow_origins"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

// SpacesConfig points at the DigitalOcean Spaces bucket holding quest images,
// submission proofs, and rendered share cards.
type SpacesConfig struct {
	Key       string `toml:"key"`
	Secret    string `toml:"secret"`
	Region    string `toml:"region"`
	Bucket    string `toml:"bucket"`
	AssetRoot string `toml:"assetroot"`
}

// OracleConfig drives the CoinGecko price lookups behind minimum-pool checks.
type OracleConfig struct {
	BaseURL    string `toml:"base_url"`
	TTLMinutes int    `toml:"ttl_minutes"`
	CacheSize  int    `toml:"cache_size"`
}

// LegacyConfig is only needed by the one-shot V2 import command.
type LegacyConfig struct {
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

func (c *Config) applyDefaults() {
	if c.Web.Addr == "" {
		c.Web.Addr = ":8080"
	}
	if c.DB.PoolSize == 0 {
		c.DB.PoolSize = 10
	}
	if c.Oracle.BaseURL == "" {
		c.Oracle.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.Oracle.TTLMinutes == 0 {
		c.Oracle.TTLMinutes = 5
	}
	if c.Oracle.CacheSize == 0 {
		c.Oracle.CacheSize = 128
	}
}
