// Package config loads vokabel settings from an optional YAML file and
// VOKABEL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/abhisek/vokabel/internal/llm"
	"github.com/abhisek/vokabel/internal/refresh"
)

// EnvPrefix is prepended to every environment override, e.g. VOKABEL_LOG_LEVEL.
const EnvPrefix = "VOKABEL"

// Config holds all configuration for the application.
type Config struct {
	// File is the vocabulary file. Empty means the default data path.
	File string `mapstructure:"file"`

	// RefreshThreshold is the number of presentations between example refreshes.
	RefreshThreshold int `mapstructure:"refresh_threshold" validate:"gte=1"`

	Log LogConfig  `mapstructure:"log"`
	LLM llm.Config `mapstructure:"llm"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" validate:"oneof=text json"`

	// File is the log destination. Empty means the default state path.
	File string `mapstructure:"file"`
}

// LLMReady reports whether a text-generation provider is usable.
func (c *Config) LLMReady() bool {
	return c.LLM.Validate() == nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "vokabel", "config.yaml")
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	fs afero.Fs
}

// WithFs reads the config file from fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(l *loader) { l.fs = fs }
}

// Load reads configuration from path, then environment variables, which
// take precedence. An empty path reads DefaultPath when it exists; an
// explicit path must exist. When the selected LLM provider has no key the
// standard provider key variables are checked.
func Load(path string, opts ...Option) (*Config, error) {
	l := &loader{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(l)
	}

	v := viper.New()
	v.SetFs(l.fs)
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	exists, err := afero.Exists(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	switch {
	case exists:
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	case explicit:
		return nil, fmt.Errorf("config file %s not found", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	if discovered, ok := cfg.LLM.Discover(); ok {
		cfg.LLM = discovered
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints on cfg.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s fails %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// setDefaults registers every key so that AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("file", "")
	v.SetDefault("refresh_threshold", refresh.DefaultThreshold)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)

	for name, c := range map[string]llm.CompatConfig{
		llm.ProviderGroq:       d.Groq,
		llm.ProviderOpenAI:     d.OpenAI,
		llm.ProviderOpenRouter: d.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", c.APIKey)
		v.SetDefault("llm."+name+".model", c.Model)
		v.SetDefault("llm."+name+".base_url", c.BaseURL)
	}
	v.SetDefault("llm.anthropic.api_key", d.Anthropic.APIKey)
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", d.Anthropic.BaseURL)
	v.SetDefault("llm.gemini.api_key", d.Gemini.APIKey)
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", d.Gemini.BaseURL)

	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
}
