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

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/nuts-foundation/nuts-bankid/core"
	"github.com/nuts-foundation/nuts-bankid/soap/soaptest"
	"github.com/nuts-foundation/nuts-bankid/test"
	testhttp "github.com/nuts-foundation/nuts-bankid/test/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setIntegrationTestEnv(t *testing.T, config map[string]string) {
	for key, value := range config {
		t.Setenv("NUTS_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), value)
	}
}

func executeCommand(system *core.System, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	command := CreateCommand(system)
	command.SetOut(buf)
	command.SetArgs(args)
	err := command.Execute()
	return buf.String(), err
}

func Test_rootCommand(t *testing.T) {
	t.Run("no args prints help", func(t *testing.T) {
		output, err := executeCommand(CreateSystem())

		require.NoError(t, err)
		assert.Contains(t, output, "Available Commands")
		assert.Contains(t, output, "bankid")
		assert.Contains(t, output, "server")
	})
	t.Run("version", func(t *testing.T) {
		output, err := executeCommand(CreateSystem(), "version")

		require.NoError(t, err)
		assert.Contains(t, output, core.BuildInfo())
	})
	t.Run("config", func(t *testing.T) {
		setIntegrationTestEnv(t, test.GetIntegrationTestConfig(t.TempDir(), "http://localhost/rp/v4?wsdl"))

		output, err := executeCommand(CreateSystem(), "config")

		require.NoError(t, err)
		assert.Contains(t, output, "Current system config")
		assert.Contains(t, output, "bankid.endpoint -> http://localhost/rp/v4?wsdl")
	})
}

func Test_serverCommand(t *testing.T) {
	t.Run("registers routes and starts on the configured address", func(t *testing.T) {
		service := soaptest.New(t)
		config := test.GetIntegrationTestConfig(t.TempDir(), service.WSDLURL())
		setIntegrationTestEnv(t, config)
		echoServer := &testhttp.StubEchoServer{}
		system := CreateSystem()
		system.EchoCreator = func(_ core.HTTPConfig) (core.EchoServer, error) {
			return echoServer, nil
		}

		_, err := executeCommand(system, "server")

		require.NoError(t, err)
		assert.Equal(t, config["http.address"], echoServer.BoundAddress)
		assert.Contains(t, echoServer.Routes, "POST /internal/bankid/v1/sign")
		assert.Contains(t, echoServer.Routes, "POST /internal/bankid/v1/authenticate")
		assert.Contains(t, echoServer.Routes, "GET /internal/bankid/v1/collect/:orderRef")
		assert.Contains(t, echoServer.Routes, "GET /status")
		assert.Contains(t, echoServer.Routes, "GET /metrics")
	})
	t.Run("invalid configuration", func(t *testing.T) {
		setIntegrationTestEnv(t, test.GetIntegrationTestConfig(t.TempDir(), ""))
		echoServer := &testhttp.StubEchoServer{}
		system := CreateSystem()
		system.EchoCreator = func(_ core.HTTPConfig) (core.EchoServer, error) {
			return echoServer, nil
		}

		_, err := executeCommand(system, "server")

		assert.EqualError(t, err, "bankid.endpoint must be configured")
		assert.Empty(t, echoServer.BoundAddress)
	})
	t.Run("stops when the context is cancelled", func(t *testing.T) {
		service := soaptest.New(t)
		config := test.GetIntegrationTestConfig(t.TempDir(), service.WSDLURL())
		setIntegrationTestEnv(t, config)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		command := CreateCommand(CreateSystem())
		command.SetOut(new(bytes.Buffer))
		command.SetArgs([]string{"server"})

		done := make(chan error, 1)
		go func() {
			done <- command.ExecuteContext(ctx)
		}()
		statusURL := "http://" + config["http.address"] + "/status"
		test.WaitFor(t, func() (bool, error) {
			response, err := http.Get(statusURL)
			if err != nil {
				return false, nil
			}
			_ = response.Body.Close()
			return response.StatusCode == http.StatusOK, nil
		}, 5*time.Second, "time-out waiting for server to start")
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server didn't stop")
		}
	})
}
