/*
 * Nuts BankID client
 * Copyright (C) 2024 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package core

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfig_Load(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)
	defer logrus.SetFormatter(&logrus.TextFormatter{})

	t.Run("sets defaults", func(t *testing.T) {
		cfg := NewServerConfig()
		flags := parsedFlags(t)

		err := cfg.Load(flags)
		require.NoError(t, err)

		assert.Equal(t, "info", cfg.Verbosity)
		assert.Equal(t, "text", cfg.LoggerFormat)
		assert.Equal(t, ":1323", cfg.HTTP.Address)
		assert.True(t, cfg.Strictmode)
	})

	t.Run("Sets global Env prefix", func(t *testing.T) {
		cfg := NewServerConfig()
		t.Setenv("NUTS_KEY", "value")

		err := cfg.Load(parsedFlags(t))
		require.NoError(t, err)

		assert.Equal(t, "value", cfg.configMap.Get("key"))
	})

	t.Run("Sets correct key replacer", func(t *testing.T) {
		cfg := NewServerConfig()
		t.Setenv("NUTS_SUB_KEY", "value")

		err := cfg.Load(parsedFlags(t))
		require.NoError(t, err)

		assert.Equal(t, "value", cfg.configMap.Get("sub.key"))
	})

	t.Run("Returns error for incorrect verbosity", func(t *testing.T) {
		cfg := NewServerConfig()

		err := cfg.Load(parsedFlags(t, "--verbosity", "hell"))

		assert.Error(t, err)
	})

	t.Run("Returns error for incorrect logger format", func(t *testing.T) {
		cfg := NewServerConfig()

		err := cfg.Load(parsedFlags(t, "--loggerformat", "fluffy"))

		assert.EqualError(t, err, "invalid formatter: 'fluffy'")
	})

	t.Run("Strict-mode can be turned off", func(t *testing.T) {
		cfg := NewServerConfig()

		err := cfg.Load(parsedFlags(t, "--strictmode=false"))

		require.NoError(t, err)
		assert.False(t, cfg.Strictmode)
	})

	t.Run("loads config file", func(t *testing.T) {
		cfg := NewServerConfig()

		err := cfg.Load(parsedFlags(t, "--configfile", "test/config/bankid.yaml"))

		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Verbosity)
		assert.Equal(t, "json", cfg.LoggerFormat)
		assert.Equal(t, "5s", cfg.configMap.String("bankid.options.timeout"))
	})

	t.Run("missing config file is ignored", func(t *testing.T) {
		cfg := NewServerConfig()

		err := cfg.Load(parsedFlags(t, "--configfile", "test/config/non-existing.yaml"))

		assert.NoError(t, err)
	})

	t.Run("error - incorrect yaml", func(t *testing.T) {
		cfg := NewServerConfig()

		err := cfg.Load(parsedFlags(t, "--configfile", "test/config/corrupt.yaml"))

		require.Error(t, err)
	})

	t.Run("ok - env overrides default flag", func(t *testing.T) {
		t.Setenv("NUTS_VERBOSITY", "warn")
		cfg := NewServerConfig()

		err := cfg.Load(parsedFlags(t))

		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Verbosity)
	})

	t.Run("ok - cmd overrides env flag", func(t *testing.T) {
		t.Setenv("NUTS_VERBOSITY", "warn")
		cfg := NewServerConfig()

		err := cfg.Load(parsedFlags(t, "--verbosity", "debug"))

		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Verbosity)
	})
}

func TestServerConfig_InjectIntoEngine(t *testing.T) {
	type subConfig struct {
		Name string `koanf:"name"`
	}
	type engineConfig struct {
		Endpoint string            `koanf:"endpoint"`
		Options  map[string]string `koanf:"options"`
		Sub      subConfig         `koanf:"sub"`
	}

	t.Run("nested values are injected", func(t *testing.T) {
		t.Setenv("NUTS_TEST_ENDPOINT", "https://example.com")
		t.Setenv("NUTS_TEST_OPTIONS_TIMEOUT", "5s")
		t.Setenv("NUTS_TEST_SUB_NAME", "sub")
		cfg := NewServerConfig()
		require.NoError(t, cfg.Load(parsedFlags(t)))
		target := &testEngine{name: "Test", config: &engineConfig{}}

		err := cfg.InjectIntoEngine(target)

		require.NoError(t, err)
		result := target.config.(*engineConfig)
		assert.Equal(t, "https://example.com", result.Endpoint)
		assert.Equal(t, map[string]string{"timeout": "5s"}, result.Options)
		assert.Equal(t, "sub", result.Sub.Name)
	})
}

func TestServerConfig_PrintConfig(t *testing.T) {
	cfg := NewServerConfig()
	require.NoError(t, cfg.Load(parsedFlags(t)))

	assert.Contains(t, cfg.PrintConfig(), "verbosity")
}

func parsedFlags(t *testing.T, args ...string) *pflag.FlagSet {
	flags := FlagSet()
	require.NoError(t, flags.Parse(args))
	return flags
}

type testEngine struct {
	name   string
	config interface{}
}

func (t *testEngine) Name() string {
	return t.name
}

func (t *testEngine) Config() interface{} {
	return t.config
}
