package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type SanitizerConfig struct {
	SelfPrefix        string `toml:"self_prefix"`
	PreserveStructure bool   `toml:"preserve_structure"`
}

type ScraperConfig struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	UserAgent      string `toml:"user_agent"`
	PoliteDelayMS  int    `toml:"polite_delay_ms"`
}

type PromptsConfig struct {
	ResearchAgent     string `toml:"research_agent"`
	CitationValidator string `toml:"citation_validator"`
}

type Config struct {
	LLM       LLMConfig       `toml:"llm"`
	Sanitizer SanitizerConfig `toml:"sanitizer"`
	Scraper   ScraperConfig   `toml:"scraper"`
	Prompts   PromptsConfig   `toml:"prompts"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "claude",
			Model:    "claude-sonnet-4-20250514",
		},
		Sanitizer: SanitizerConfig{
			SelfPrefix:        "Cargill",
			PreserveStructure: true,
		},
		Scraper: ScraperConfig{
			TimeoutSeconds: 10,
			PoliteDelayMS:  500,
		},
	}
}

// Load reads a TOML config file, fills unset fields from defaults and
// applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv lets environment variables override file values, so API
// keys stay out of config files.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	} else if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("SELF_ENTITY_PREFIX"); v != "" {
		c.Sanitizer.SelfPrefix = v
	}
}

// ScrapeTimeout returns the scraper timeout as a duration.
func (c *Config) ScrapeTimeout() time.Duration {
	return time.Duration(c.Scraper.TimeoutSeconds) * time.Second
}

// PoliteDelay returns the between-request delay as a duration.
func (c *Config) PoliteDelay() time.Duration {
	return time.Duration(c.Scraper.PoliteDelayMS) * time.Millisecond
}
