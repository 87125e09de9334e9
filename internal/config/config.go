package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/dqscore/dqscore/internal/scoring"
)

// Config is the full tool configuration.
type Config struct {
	// Weights overrides the stock dimension weights. A partial map is
	// fine: the engine treats absent dimensions as weight 0 and
	// normalizes whatever the total is.
	Weights map[string]float64 `mapstructure:"weights" yaml:"weights,omitempty"`

	// MaxRows caps how many records ingestion materializes per file.
	// 0 means unlimited.
	MaxRows int `mapstructure:"max_rows" yaml:"max_rows"`

	Server Server `mapstructure:"server" yaml:"server"`
}

// Server holds the HTTP API settings.
type Server struct {
	Host               string `mapstructure:"host" yaml:"host"`
	Port               int    `mapstructure:"port" yaml:"port"`
	ReadTimeoutSec     int    `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec"`
	WriteTimeoutSec    int    `mapstructure:"write_timeout_sec" yaml:"write_timeout_sec"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec" yaml:"shutdown_timeout_sec"`
	MaxBodyBytes       int64  `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		MaxRows: 0,
		Server: Server{
			Host:               "localhost",
			Port:               8080,
			ReadTimeoutSec:     15,
			WriteTimeoutSec:    15,
			ShutdownTimeoutSec: 10,
			MaxBodyBytes:       16 << 20,
		},
	}
}

// Load reads configuration from cfgFile, or from ~/.dqscore/config.yaml
// and the working directory when cfgFile is empty. Environment variables
// with the DQSCORE_ prefix override file values. A missing config file is
// not an error; defaults apply.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".dqscore"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DQSCORE")
	v.AutomaticEnv()

	cfg := Default()
	v.SetDefault("max_rows", cfg.MaxRows)
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.read_timeout_sec", cfg.Server.ReadTimeoutSec)
	v.SetDefault("server.write_timeout_sec", cfg.Server.WriteTimeoutSec)
	v.SetDefault("server.shutdown_timeout_sec", cfg.Server.ShutdownTimeoutSec)
	v.SetDefault("server.max_body_bytes", cfg.Server.MaxBodyBytes)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to cfgFile, or to ~/.dqscore/config.yaml
// when cfgFile is empty, creating the directory if necessary.
func Save(c *Config, cfgFile string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".dqscore")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// EngineWeights converts the configured weight map for the engine. An
// empty map means "use defaults", which the engine expresses as nil.
func (c *Config) EngineWeights() scoring.Weights {
	if len(c.Weights) == 0 {
		return nil
	}
	w := make(scoring.Weights, len(c.Weights))
	for name, weight := range c.Weights {
		w[name] = weight
	}
	return w
}
