package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/logging"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	LastFM     LastFMConfig     `mapstructure:"lastfm"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Trends     TrendsConfig     `mapstructure:"trends"`
	Logging    logging.Config   `mapstructure:"logging"`
}

// ServerConfig for HTTP server settings
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	TrendsTimeout  time.Duration `mapstructure:"trends_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// LastFMConfig for the catalog API
type LastFMConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// EnrichmentConfig for list enrichment
type EnrichmentConfig struct {
	HeadLimit int `mapstructure:"head_limit"`
}

// TrendsConfig for tag trend aggregation
type TrendsConfig struct {
	BatchSize    int           `mapstructure:"batch_size"`
	BatchDelay   time.Duration `mapstructure:"batch_delay"`
	DefaultLimit int           `mapstructure:"default_limit"`
	MaxLimit     int           `mapstructure:"max_limit"`
}

// Load reads configuration from file and environment variables.
// LASTFM_API_KEY and PORT are honoured as-is; every other key can be
// overridden as WOLLEN_SECTION_KEY. A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		_, err := os.Stat(configPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3001")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 150*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.trends_timeout", 120*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("lastfm.api_key", "")
	v.SetDefault("lastfm.base_url", "https://ws.audioscrobbler.com/2.0/")

	v.SetDefault("enrichment.head_limit", 15)

	v.SetDefault("trends.batch_size", 10)
	v.SetDefault("trends.batch_delay", 200*time.Millisecond)
	v.SetDefault("trends.default_limit", 100)
	v.SetDefault("trends.max_limit", 1000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("WOLLEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names used by existing deployments.
	_ = v.BindEnv("lastfm.api_key", "LASTFM_API_KEY")
	_ = v.BindEnv("server.port", "PORT")
}

// Validate checks if required configurations are present
func (c *Config) Validate() error {
	var missing []string

	if c.LastFM.APIKey == "" {
		missing = append(missing, "lastfm.api_key (LASTFM_API_KEY)")
	}
	if c.Server.Port == "" {
		missing = append(missing, "server.port")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if c.Trends.MaxLimit > 0 && c.Trends.DefaultLimit > c.Trends.MaxLimit {
		return fmt.Errorf("trends.default_limit %d exceeds trends.max_limit %d", c.Trends.DefaultLimit, c.Trends.MaxLimit)
	}

	return nil
}

// Addr returns the listen address for the HTTP server
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}
