// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/infrastructure/nats"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"
)

// Config holds the decision API settings. Values come from an optional YAML
// file, then environment variables, which take precedence.
type Config struct {
	Port               string        `yaml:"port"`
	Storage            string        `yaml:"storage"`
	Publisher          string        `yaml:"publisher"`
	AuthSource         string        `yaml:"auth_source"`
	DataDir            string        `yaml:"data_dir"`
	SharedPassword     string        `yaml:"shared_password"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	NATS               nats.Config   `yaml:"nats"`
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Port:            "8080",
		Storage:         constants.BackendFile,
		Publisher:       constants.PublisherNone,
		AuthSource:      constants.AuthSourceSharedPassword,
		DataDir:         "data",
		ShutdownTimeout: 25 * time.Second,
		NATS: nats.Config{
			URL:           "nats://localhost:4222",
			Timeout:       10 * time.Second,
			MaxReconnect:  3,
			ReconnectWait: 2 * time.Second,
		},
	}
}

// LoadConfig builds the configuration from defaults, the YAML file at path
// (skipped when path is empty) and the environment
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.NewValidation(fmt.Sprintf("failed to read config file %s", path), err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.NewValidation(fmt.Sprintf("failed to parse config file %s", path), err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, target *string) {
		if value, ok := lookup(key); ok && value != "" {
			*target = value
		}
	}
	str(constants.EnvPort, &c.Port)
	str(constants.EnvStorage, &c.Storage)
	str(constants.EnvPublisher, &c.Publisher)
	str(constants.EnvAuthSource, &c.AuthSource)
	str(constants.EnvDataDir, &c.DataDir)
	str(constants.EnvSharedPassword, &c.SharedPassword)
	str(constants.EnvNATSURL, &c.NATS.URL)
	str(constants.EnvNATSCredentials, &c.NATS.CredentialsFile)

	if value, ok := lookup(constants.EnvCORSAllowedOrigins); ok && value != "" {
		c.CORSAllowedOrigins = splitList(value)
	}

	durations := []struct {
		key    string
		target *time.Duration
	}{
		{constants.EnvNATSTimeout, &c.NATS.Timeout},
		{constants.EnvNATSReconnectWait, &c.NATS.ReconnectWait},
	}
	for _, d := range durations {
		value, ok := lookup(d.key)
		if !ok || value == "" {
			continue
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return errors.NewValidation(fmt.Sprintf("invalid %s duration %q", d.key, value), err)
		}
		*d.target = parsed
	}

	if value, ok := lookup(constants.EnvNATSMaxReconnect); ok && value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return errors.NewValidation(fmt.Sprintf("invalid %s value %q", constants.EnvNATSMaxReconnect, value), err)
		}
		c.NATS.MaxReconnect = parsed
	}

	if value, ok := lookup(constants.EnvNATSCreateBucket); ok && value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return errors.NewValidation(fmt.Sprintf("invalid %s value %q", constants.EnvNATSCreateBucket, value), err)
		}
		c.NATS.CreateBucket = parsed
	}

	return nil
}

// Validate checks that the selected backends can be built
func (c Config) Validate() error {
	if err := constants.ValidateBackend(c.Storage); err != nil {
		return err
	}
	if c.Storage == constants.BackendFile && strings.TrimSpace(c.DataDir) == "" {
		return errors.NewValidation("data directory is required for file storage")
	}

	switch c.Publisher {
	case constants.PublisherNATS, constants.PublisherMock, constants.PublisherNone:
	default:
		return errors.NewValidation(fmt.Sprintf("unsupported publisher: %s (must be nats, mock, or none)", c.Publisher))
	}

	switch c.AuthSource {
	case constants.AuthSourceSharedPassword:
		if c.SharedPassword == "" {
			return errors.NewValidation(fmt.Sprintf("%s is required for the shared-password login", constants.EnvSharedPassword))
		}
	case constants.AuthSourceMock:
	default:
		return errors.NewValidation(fmt.Sprintf("unsupported auth source: %s (must be shared-password or mock)", c.AuthSource))
	}

	if (c.Storage == constants.BackendNATS || c.Publisher == constants.PublisherNATS) && c.NATS.URL == "" {
		return errors.NewValidation("NATS URL is required")
	}
	return nil
}

// UsesNATS reports whether any component needs a NATS connection
func (c Config) UsesNATS() bool {
	return c.Storage == constants.BackendNATS || c.Publisher == constants.PublisherNATS
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
