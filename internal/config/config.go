// Package config loads the jsonguard CLI configuration.
//
// Layers, lowest priority first: built-in defaults, an optional YAML file,
// then JSONGUARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/reoring/jsonguard"
	"github.com/reoring/jsonguard/i18n"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "JSONGUARD_"

// Config is the CLI configuration.
type Config struct {
	Lang   string       `koanf:"lang"`
	Log    LogConfig    `koanf:"log"`
	Decode DecodeConfig `koanf:"decode"`
	Schema SchemaConfig `koanf:"schema"`
}

// LogConfig configures internal/logging.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DecodeConfig controls how data documents are decoded.
type DecodeConfig struct {
	DuplicateKeys string `koanf:"duplicate_keys"` // ignore, warn or error
	MaxBytes      int64  `koanf:"max_bytes"`
}

// SchemaConfig controls schema compilation.
type SchemaConfig struct {
	MetaCheck bool `koanf:"meta_check"`
}

func defaultConfig() *Config {
	return &Config{
		Lang: "en",
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Decode: DecodeConfig{
			DuplicateKeys: "error",
			MaxBytes:      0, // unlimited
		},
		Schema: SchemaConfig{
			MetaCheck: true,
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config { return defaultConfig() }

// Load builds the configuration. path may be empty, in which case no file
// is read.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// JSONGUARD_LOG_LEVEL -> log.level
	// JSONGUARD_DECODE_MAX_BYTES -> decode.max_bytes
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

var envMappings = map[string]string{
	"lang":                  "lang",
	"log_level":             "log.level",
	"log_format":            "log.format",
	"decode_duplicate_keys": "decode.duplicate_keys",
	"decode_max_bytes":      "decode.max_bytes",
	"schema_meta_check":     "schema.meta_check",
}

// envTransformFunc maps JSONGUARD_* variables to config paths. Unknown
// variables are dropped.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return envMappings[key]
}

// Validate checks values that cannot be expressed by types alone.
func (c *Config) Validate() error {
	var errs []error
	if !contains(i18n.Languages(), c.Lang) {
		errs = append(errs, fmt.Errorf("lang: unsupported language %q (want one of %s)", c.Lang, strings.Join(i18n.Languages(), ", ")))
	}
	if _, ok := jsonguard.ParseSeverity(c.Decode.DuplicateKeys); !ok {
		errs = append(errs, fmt.Errorf("decode.duplicate_keys: %q is not ignore, warn or error", c.Decode.DuplicateKeys))
	}
	if c.Decode.MaxBytes < 0 {
		errs = append(errs, fmt.Errorf("decode.max_bytes: must not be negative"))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format: %q is not json or console", c.Log.Format))
	}
	return errors.Join(errs...)
}

// DecodeOpt projects the decode section onto jsonguard options.
func (c *Config) DecodeOpt() jsonguard.DecodeOpt {
	sev, _ := jsonguard.ParseSeverity(c.Decode.DuplicateKeys)
	return jsonguard.DecodeOpt{
		Strictness: jsonguard.Strictness{OnDuplicateKey: sev},
		MaxBytes:   c.Decode.MaxBytes,
	}
}

// CompilerOptions projects the configuration onto jsonguard compiler options.
func (c *Config) CompilerOptions() []jsonguard.Option {
	return []jsonguard.Option{
		jsonguard.WithTranslator(i18n.New(c.Lang)),
		jsonguard.WithMetaSchemaCheck(c.Schema.MetaCheck),
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
