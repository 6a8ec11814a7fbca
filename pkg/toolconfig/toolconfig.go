// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package toolconfig loads jobcfg's own configuration file (jobcfg.toml):
version pins for recipe placeholders and lint behavior tweaks.
*/
package toolconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	// EnvConfigPath names the environment variable that points at the
	// config file when --config is not given.
	EnvConfigPath = "JOBCFG_CONFIG"

	defaultFileName = "jobcfg.toml"
)

type Config struct {
	Pins map[string]string `toml:"pins"`
	Lint Lint              `toml:"lint"`
}

type Lint struct {
	Kind             string `toml:"kind"`
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
}

// Load reads the config at path. When path is empty it falls back to
// $JOBCFG_CONFIG, then to ./jobcfg.toml; absence of both is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""

	if path == "" {
		path = os.Getenv(EnvConfigPath)
		explicit = path != ""
	}
	if path == "" {
		path = defaultFileName
	}

	config := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return config, nil
		}
		return nil, fmt.Errorf("Reading config '%s': %s", path, err)
	}

	err = toml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("Parsing config '%s': %s", path, err)
	}

	return config, nil
}

// Resolver resolves placeholder names against the config's pins first,
// then the process environment.
func (c *Config) Resolver() func(name string) (string, bool) {
	return func(name string) (string, bool) {
		if val, found := c.Pins[name]; found {
			return val, true
		}
		val, found := os.LookupEnv(name)
		return val, found
	}
}
