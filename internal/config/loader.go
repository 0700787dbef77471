package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "WAYFARER_"
	// Delimiter is the key delimiter for nested config.
	Delimiter = "."
)

// Load loads configuration with the following priority (highest last):
// defaults, optional YAML file, WAYFARER_* environment variables.
// GROQ_API_KEY is also honored as a fallback for groq_api_key, matching
// the conventional variable name for the Groq SDK.
func Load(configPath string) (*Config, error) {
	k := koanf.New(Delimiter)

	defaults := DefaultConfig()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"host":          defaults.Host,
		"port":          defaults.Port,
		"groq_base_url": defaults.GroqBaseURL,
		"embed_model":   defaults.EmbedModel,
		"data_dir":      defaults.DataDir,
		"memory_dir":    defaults.MemoryDir,
		"prefs_dir":     defaults.PrefsDir,
		"frontend_dir":  defaults.FrontendDir,
		"log_level":     defaults.LogLevel,
		"log_format":    defaults.LogFormat,
	}, Delimiter), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		ext := strings.ToLower(filepath.Ext(configPath))
		if ext != ".yaml" && ext != ".yml" {
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, Delimiter, func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.GroqAPIKey == "" {
		cfg.GroqAPIKey = os.Getenv("GROQ_API_KEY")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks a Config against its struct tags.
func Validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(errs))
			for _, fe := range errs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
