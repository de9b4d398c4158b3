package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment conventions.
const (
	EnvPrefix     = "GIGMATCH_"
	EnvConfigFile = "GIGMATCH_CONFIG"
	envNesting    = "__"
)

const (
	keyStopWords      = "stop_words"
	keyTrendingSkills = "trending_skills"
)

var listKeys = []string{keyStopWords, keyTrendingSkills}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if GIGMATCH_CONFIG is set
//  3. env (prefix GIGMATCH_, "__" separates nested keys)
//
// GIGMATCH_JOB_WEIGHTS__SKILLS=0.6 sets job_weights.skills; list values are
// comma-separated.
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		if s == EnvConfigFile {
			return ""
		}
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, envNesting, ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	for _, key := range listKeys {
		if raw, ok := k.Get(key).(string); ok {
			if err := k.Set(key, splitList(raw)); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, key, err)
			}
		}
	}

	cfg := New()
	// lists are replaced, not merged element-wise into the defaults
	defaults := *cfg
	cfg.StopWords, cfg.TrendingSkills = nil, nil
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if !k.Exists(keyStopWords) {
		cfg.StopWords = defaults.StopWords
	}
	if !k.Exists(keyTrendingSkills) {
		cfg.TrendingSkills = defaults.TrendingSkills
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList turns a comma-separated env value into a list.
func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
