// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config holds the optional user configuration for how-install.
//
// Configuration is YAML. It is read from the file given with --config, which may be any
// go-getter source, or from config.yaml in the user's config directory when that exists.
// Command line flags always take precedence over configuration values.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/how-install/internal/ctxlog"
	"github.com/matt-FFFFFF/how-install/internal/distro"
	"github.com/matt-FFFFFF/how-install/internal/fetch"
	"github.com/matt-FFFFFF/how-install/internal/notes"
)

const maxRetries = 10

var (
	// ErrInvalidYaml is returned when the configuration cannot be decoded.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the user configuration.
type Config struct {
	BaseURL        string   `yaml:"base_url"`
	NotesURL       string   `yaml:"notes_url"`
	NotesPlatforms []string `yaml:"notes_platforms"`
	Distro         string   `yaml:"distro"`
	NoTLDR         bool     `yaml:"no_tldr"`
	Timeout        string   `yaml:"timeout"`
	Retries        int      `yaml:"retries"`
	LogLevel       string   `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		BaseURL:        fetch.DefaultBaseURL,
		NotesURL:       notes.DefaultBaseURL,
		NotesPlatforms: slices.Clone(notes.DefaultPlatforms),
		Timeout:        fetch.DefaultTimeout.String(),
	}
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(b []byte) (*Config, error) {
	c := Default()

	if err := yaml.UnmarshalWithOptions(b, c, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidYaml, yaml.FormatError(err, false, true))
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	for key, u := range map[string]string{"base_url": c.BaseURL, "notes_url": c.NotesURL} {
		if err := validateURL(u); err != nil {
			result = multierror.Append(result, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err))
		}
	}

	if c.Distro != "" {
		if _, err := distro.Parse(c.Distro); err != nil {
			result = multierror.Append(result, fmt.Errorf("%w: distro: %w", ErrInvalidConfig, err))
		}
	}

	if d, err := time.ParseDuration(c.Timeout); err != nil || d <= 0 {
		result = multierror.Append(result, fmt.Errorf("%w: timeout: %q is not a positive duration", ErrInvalidConfig, c.Timeout))
	}

	if c.Retries < 0 || c.Retries > maxRetries {
		result = multierror.Append(result, fmt.Errorf("%w: retries: must be between 0 and %d", ErrInvalidConfig, maxRetries))
	}

	if c.LogLevel != "" {
		if _, ok := ctxlog.ParseLevel(c.LogLevel); !ok {
			result = multierror.Append(result, fmt.Errorf("%w: log_level: %q", ErrInvalidConfig, c.LogLevel))
		}
	}

	return result.ErrorOrNil()
}

// TimeoutDuration returns the parsed request timeout, or the default if it does not parse.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return fetch.DefaultTimeout
	}

	return d
}

// DistroOverride returns the configured distro, if any.
func (c *Config) DistroOverride() (distro.Distro, bool) {
	if c.Distro == "" {
		return 0, false
	}

	d, err := distro.Parse(c.Distro)

	return d, err == nil
}

func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must be an http or https URL", s)
	}

	if u.Host == "" {
		return fmt.Errorf("%q has no host", s)
	}

	return nil
}
