// Package config loads zhenbot configuration.
//
// Sources, highest priority first:
//
//  1. Process environment (a .env file is loaded first, without
//     overriding variables that are already set)
//  2. An optional zhenbot.yaml file next to the working directory
//  3. Built-in defaults (en→zh, 15s HTTP timeout)
//
// Configuration is read once at startup and immutable thereafter.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/oukaro/zhenbot/lang"
)

// defaultFile is the optional YAML defaults file.
const defaultFile = "zhenbot.yaml"

// Config holds every runtime setting.
type Config struct {
	// BotToken authenticates against the Telegram Bot API.
	BotToken string `env:"BOT_TOKEN"`

	// TranslationAPIURL is the provider base URL (the chat/completions
	// suffix is appended when missing).
	TranslationAPIURL string `env:"TRANSLATION_API_URL"`
	// TranslationAPIKey is the static bearer token for the provider.
	TranslationAPIKey string `env:"TRANSLATION_API_KEY"`
	// TranslationModel is the provider model name.
	TranslationModel string `env:"TRANSLATION_MODEL"`

	// DefaultSourceLang/DefaultTargetLang apply when auto-detection
	// cannot pick a direction.
	DefaultSourceLang lang.Code `env:"DEFAULT_SOURCE_LANG"`
	DefaultTargetLang lang.Code `env:"DEFAULT_TARGET_LANG"`

	// HTTPTimeoutMS bounds the whole provider exchange.
	HTTPTimeoutMS int `env:"HTTP_TIMEOUT_MS"`

	// BotLocale selects the language of the bot's own messages
	// (empty = auto-detect from the environment).
	BotLocale string `env:"BOT_LOCALE"`
}

// fileConfig is the zhenbot.yaml schema. Every key is optional; values
// fill only settings the environment left empty.
type fileConfig struct {
	BotToken          string `yaml:"bot_token"`
	TranslationAPIURL string `yaml:"translation_api_url"`
	TranslationAPIKey string `yaml:"translation_api_key"`
	TranslationModel  string `yaml:"translation_model"`
	DefaultSourceLang string `yaml:"default_source_lang"`
	DefaultTargetLang string `yaml:"default_target_lang"`
	HTTPTimeoutMS     int    `yaml:"http_timeout_ms"`
	BotLocale         string `yaml:"bot_locale"`
}

// Load reads configuration from the environment, the default YAML file,
// and built-in defaults. Validation is separate: callers pick Validate or
// ValidateProvider depending on what they run.
func Load() (*Config, error) {
	return loadFrom(defaultFile)
}

func loadFrom(file string) (*Config, error) {
	// Best-effort: a missing .env is fine.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.applyFile(file); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// applyFile fills settings the environment left empty from the YAML file.
// A missing file is not an error.
func (c *Config) applyFile(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", file, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}

	if c.BotToken == "" {
		c.BotToken = fc.BotToken
	}
	if c.TranslationAPIURL == "" {
		c.TranslationAPIURL = fc.TranslationAPIURL
	}
	if c.TranslationAPIKey == "" {
		c.TranslationAPIKey = fc.TranslationAPIKey
	}
	if c.TranslationModel == "" {
		c.TranslationModel = fc.TranslationModel
	}
	if c.DefaultSourceLang == "" && fc.DefaultSourceLang != "" {
		code, err := lang.Parse(fc.DefaultSourceLang)
		if err != nil {
			return fmt.Errorf("%s: default_source_lang: %w", file, err)
		}
		c.DefaultSourceLang = code
	}
	if c.DefaultTargetLang == "" && fc.DefaultTargetLang != "" {
		code, err := lang.Parse(fc.DefaultTargetLang)
		if err != nil {
			return fmt.Errorf("%s: default_target_lang: %w", file, err)
		}
		c.DefaultTargetLang = code
	}
	if c.HTTPTimeoutMS == 0 {
		c.HTTPTimeoutMS = fc.HTTPTimeoutMS
	}
	if c.BotLocale == "" {
		c.BotLocale = fc.BotLocale
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.DefaultSourceLang == "" {
		c.DefaultSourceLang = lang.En
	}
	if c.DefaultTargetLang == "" {
		c.DefaultTargetLang = lang.Zh
	}
	if c.HTTPTimeoutMS == 0 {
		c.HTTPTimeoutMS = 15000
	}
}

// ValidateProvider checks the settings the translation client needs.
func (c *Config) ValidateProvider() error {
	if c.TranslationAPIURL == "" {
		return errors.New("TRANSLATION_API_URL must be set")
	}
	if c.TranslationAPIKey == "" {
		return errors.New("TRANSLATION_API_KEY must be set")
	}
	if c.TranslationModel == "" {
		return errors.New("TRANSLATION_MODEL must be set")
	}
	return nil
}

// Validate checks everything serving the bot needs.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return errors.New("BOT_TOKEN must be set")
	}
	return c.ValidateProvider()
}

// Timeout returns the provider HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}
