// Package config handles configuration loading for FedScout.
// It supports XDG config paths, project-level overrides, and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for FedScout.
type Config struct {
	Ollama    OllamaConfig    `mapstructure:"ollama"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
	Docs      DocsConfig      `mapstructure:"docs"`
	Scrape    ScrapeConfig    `mapstructure:"scrape"`
	Server    ServerConfig    `mapstructure:"server"`
	Dash      DashConfig      `mapstructure:"dash"`
}

// OllamaConfig holds local model runner settings.
type OllamaConfig struct {
	Host    string        `mapstructure:"host"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AnthropicConfig holds the optional Claude backend settings.
type AnthropicConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	UseBedrock bool   `mapstructure:"use_bedrock"`
	AWSRegion  string `mapstructure:"aws_region"`
	AWSProfile string `mapstructure:"aws_profile"`
}

// OutputsConfig holds report output settings.
type OutputsConfig struct {
	// Dir is the research output root; reports land in Dir/tasks.
	Dir string `mapstructure:"dir"`
}

// DocsConfig holds documentation cache settings.
type DocsConfig struct {
	CacheDir string `mapstructure:"cache_dir"`
	TTLDays  int    `mapstructure:"ttl_days"`
	// Watch enables fsnotify invalidation of cached local docs.
	Watch bool `mapstructure:"watch"`
}

// ScrapeConfig holds documentation harvester settings.
type ScrapeConfig struct {
	// Delay is the fixed pause between sequential page fetches.
	Delay time.Duration `mapstructure:"delay"`
	// MaxPages bounds one harvest run.
	MaxPages int `mapstructure:"max_pages"`
	// MinWords drops pages with less extracted content.
	MinWords int `mapstructure:"min_words"`
}

// ServerConfig holds the demo HTTP server settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DashConfig holds dashboard display settings.
type DashConfig struct {
	RefreshRate time.Duration `mapstructure:"refresh_rate"`
}

// Load loads configuration with the following precedence, highest first:
// environment variables (OLLAMA_HOST, ANTHROPIC_API_KEY), project config
// (.fedscout.yaml in the current directory or a parent), user config
// (~/.config/fedscout/config.yaml), built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("ollama.host", "OLLAMA_HOST")
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(userConfigDir, "config.yaml"))

	v.Set("ollama.host", cfg.Ollama.Host)
	v.Set("ollama.model", cfg.Ollama.Model)
	v.Set("ollama.timeout", cfg.Ollama.Timeout.String())
	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("anthropic.model", cfg.Anthropic.Model)
	v.Set("anthropic.use_bedrock", cfg.Anthropic.UseBedrock)
	v.Set("outputs.dir", cfg.Outputs.Dir)
	v.Set("docs.cache_dir", cfg.Docs.CacheDir)
	v.Set("docs.ttl_days", cfg.Docs.TTLDays)
	v.Set("docs.watch", cfg.Docs.Watch)
	v.Set("scrape.delay", cfg.Scrape.Delay.String())
	v.Set("scrape.max_pages", cfg.Scrape.MaxPages)
	v.Set("scrape.min_words", cfg.Scrape.MinWords)
	v.Set("server.host", cfg.Server.Host)
	v.Set("server.port", cfg.Server.Port)
	v.Set("dash.refresh_rate", cfg.Dash.RefreshRate.String())

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the project config file path if one exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("ollama.host", "http://localhost:11434")
	v.SetDefault("ollama.model", "llama3.1:8b")
	v.SetDefault("ollama.timeout", "2m")

	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "")
	v.SetDefault("anthropic.use_bedrock", false)

	v.SetDefault("outputs.dir", "research_outputs")

	v.SetDefault("docs.cache_dir", defaultCacheDir())
	v.SetDefault("docs.ttl_days", 7)
	v.SetDefault("docs.watch", false)

	v.SetDefault("scrape.delay", "2s")
	v.SetDefault("scrape.max_pages", 50)
	v.SetDefault("scrape.min_words", 80)

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8420)

	v.SetDefault("dash.refresh_rate", "1s")
}

// getUserConfigDir returns the XDG config directory for FedScout.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "fedscout")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "fedscout")
	}
	return filepath.Join(home, ".config", "fedscout")
}

// defaultCacheDir returns the XDG cache directory for documentation.
func defaultCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "fedscout", "docs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".cache", "fedscout", "docs")
	}
	return filepath.Join(home, ".cache", "fedscout", "docs")
}

// findProjectConfig searches for .fedscout.yaml in the current directory
// and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".fedscout.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Ollama: OllamaConfig{
			Host:    "http://localhost:11434",
			Model:   "llama3.1:8b",
			Timeout: 2 * time.Minute,
		},
		Outputs: OutputsConfig{
			Dir: "research_outputs",
		},
		Docs: DocsConfig{
			CacheDir: defaultCacheDir(),
			TTLDays:  7,
		},
		Scrape: ScrapeConfig{
			Delay:    2 * time.Second,
			MaxPages: 50,
			MinWords: 80,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8420,
		},
		Dash: DashConfig{
			RefreshRate: time.Second,
		},
	}
}
