package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is returned by Load when no YouTube API key is configured.
var ErrMissingAPIKey = errors.New("YouTube API key is required (set YOUTUBE_API_KEY or youtube.api_key)")

const (
	DefaultConfigFile        = "config.yaml"
	DefaultComments          = 20
	DefaultPreferredLanguage = "en"
	DefaultScrapeTimeout     = 30
	DefaultOutputDir         = "outputs"
	DefaultOutputPrefix      = "competitor"
	DefaultModel             = "gemini-2.5-flash"
	DefaultSummaryChars      = 20000
)

type Config struct {
	YouTube    YouTubeConfig    `yaml:"youtube"`
	Transcript TranscriptConfig `yaml:"transcript"`
	AI         AIConfig         `yaml:"ai"`
	Output     OutputConfig     `yaml:"output"`
}

type YouTubeConfig struct {
	APIKey          string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	DefaultComments int    `yaml:"default_comments"`
}

type TranscriptConfig struct {
	PreferredLanguage    string `yaml:"preferred_language"`
	ScrapeTimeoutSeconds int    `yaml:"scrape_timeout_seconds"`
}

type AIConfig struct {
	GeminiAPIKey       string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model              string `yaml:"model"`
	MaxTranscriptChars int    `yaml:"max_transcript_chars"`
}

// Enabled reports whether transcript summaries should be generated.
func (a AIConfig) Enabled() bool {
	return a.GeminiAPIKey != ""
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// Load reads .env, the optional YAML config file and the environment.
// A missing config.yaml is not an error; a missing file named by CONFIG_FILE is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	explicit := configFile != ""
	if !explicit {
		configFile = DefaultConfigFile
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Environment only
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if c.YouTube.APIKey == "" {
		c.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if c.AI.GeminiAPIKey == "" {
		c.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
}

func (c *Config) applyDefaults() {
	if c.YouTube.DefaultComments == 0 {
		c.YouTube.DefaultComments = DefaultComments
	}
	if c.Transcript.PreferredLanguage == "" {
		c.Transcript.PreferredLanguage = DefaultPreferredLanguage
	}
	if c.Transcript.ScrapeTimeoutSeconds == 0 {
		c.Transcript.ScrapeTimeoutSeconds = DefaultScrapeTimeout
	}
	if c.AI.Model == "" {
		c.AI.Model = DefaultModel
	}
	if c.AI.MaxTranscriptChars == 0 {
		c.AI.MaxTranscriptChars = DefaultSummaryChars
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.Output.Prefix == "" {
		c.Output.Prefix = DefaultOutputPrefix
	}
}

func (c *Config) validate() error {
	if c.YouTube.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.YouTube.DefaultComments < 1 || c.YouTube.DefaultComments > 100 {
		return fmt.Errorf("youtube.default_comments must be between 1 and 100, got %d", c.YouTube.DefaultComments)
	}
	if c.Transcript.ScrapeTimeoutSeconds < 0 {
		return fmt.Errorf("transcript.scrape_timeout_seconds cannot be negative")
	}
	return nil
}
