package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names read before koanf runs.
const (
	envPrefix  = "SOCIO_"
	envConfig  = envPrefix + "CONFIG"
	envEnvFile = envPrefix + "ENV_FILE"
)

// Load builds a Config by layering sources.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SOCIO_CONFIG is set
//  3. dotenv file (SOCIO_ENV_FILE, else env_file from the YAML file, else .env);
//     never overrides real env vars
//  4. env (prefix SOCIO_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	if err := loadDotEnv(k); err != nil {
		return nil, err
	}

	// SOCIO_DATASET_PATH -> dataset_path; underscores are kept to match the
	// flat koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv reads the dotenv file into the process environment. A missing
// default file is fine; a missing file that was asked for explicitly is not.
// Empty settings count as unset.
func loadDotEnv(k *koanf.Koanf) error {
	path, explicit := os.Getenv(envEnvFile), true
	if path == "" {
		path = k.String("env_file")
	}
	if path == "" {
		path, explicit = New().EnvFile, false
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: env file %s: %w", ErrLoadConfig, path, err)
	}
	return nil
}
