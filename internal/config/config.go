package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natevvv/astar-routing/pkg/graph/path"
	"github.com/natevvv/astar-routing/pkg/slice"
	"github.com/spf13/viper"
)

type Config struct {
	Graph  GraphConfig  `mapstructure:"graph"`
	Search SearchConfig `mapstructure:"search"`
	Server ServerConfig `mapstructure:"server"`
}

type GraphConfig struct {
	// File is an FMI graph file. It takes precedence over DB when both are set.
	File string `mapstructure:"file"`
	DB   string `mapstructure:"db"`
}

type SearchConfig struct {
	Navigator string `mapstructure:"navigator"`
}

type ServerConfig struct {
	Listen    string  `mapstructure:"listen"`
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// Load reads the configuration from file and environment variables.
// An empty cfgFile searches $HOME/.astar-router and the working directory.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".astar-router"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("astar-router")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ASTAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return unmarshal(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("graph.file", "")
	v.SetDefault("graph.db", "./data/graph.db")
	v.SetDefault("search.navigator", "astar")
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("server.rate_limit", 10.0)
	v.SetDefault("server.rate_burst", 20)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if !slice.Contains(path.Navigators, cfg.Search.Navigator) {
		return nil, fmt.Errorf("search.navigator must be one of %v, got %q", path.Navigators, cfg.Search.Navigator)
	}
	if cfg.Server.RateBurst < 1 {
		return nil, fmt.Errorf("server.rate_burst must be at least 1, got %d", cfg.Server.RateBurst)
	}
	return &cfg, nil
}
