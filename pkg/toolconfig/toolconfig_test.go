// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package toolconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cfgkit/jobcfg/pkg/toolconfig"
	"github.com/stretchr/testify/require"
)

func TestLoadExplicitPath(t *testing.T) {
	path := writeConfig(t, `[pins]
FOO_VER = "1.2.3"

[lint]
kind = "recipe"
warnings_as_errors = true
`)

	config, err := toolconfig.Load(path)
	require.NoError(t, err)
	require.Equal(t, "1.2.3", config.Pins["FOO_VER"])
	require.Equal(t, "recipe", config.Lint.Kind)
	require.True(t, config.Lint.WarningsAsErrors)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	_, err := toolconfig.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Reading config")
}

func TestLoadAbsentDefaultIsEmptyConfig(t *testing.T) {
	t.Setenv(toolconfig.EnvConfigPath, "")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(wd) }()

	config, err := toolconfig.Load("")
	require.NoError(t, err)
	require.Empty(t, config.Pins)
	require.False(t, config.Lint.WarningsAsErrors)
}

func TestLoadViaEnvVar(t *testing.T) {
	path := writeConfig(t, `[pins]
BAR = "2.0"
`)
	t.Setenv(toolconfig.EnvConfigPath, path)

	config, err := toolconfig.Load("")
	require.NoError(t, err)
	require.Equal(t, "2.0", config.Pins["BAR"])
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeConfig(t, "[pins\n")

	_, err := toolconfig.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Parsing config")
}

func TestResolverPinsBeforeEnvironment(t *testing.T) {
	path := writeConfig(t, `[pins]
FOO_VER = "1.2.3"
`)
	config, err := toolconfig.Load(path)
	require.NoError(t, err)

	t.Setenv("FOO_VER", "9.9.9")
	t.Setenv("ENV_ONLY", "0.1.0")

	resolve := config.Resolver()

	val, found := resolve("FOO_VER")
	require.True(t, found)
	require.Equal(t, "1.2.3", val)

	val, found = resolve("ENV_ONLY")
	require.True(t, found)
	require.Equal(t, "0.1.0", val)

	_, found = resolve("UNDEFINED")
	require.False(t, found)
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "jobcfg.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}
