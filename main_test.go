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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/nuts-foundation/nuts-bankid/bankid"
	v1 "github.com/nuts-foundation/nuts-bankid/bankid/api/v1"
	"github.com/nuts-foundation/nuts-bankid/cmd"
	"github.com/nuts-foundation/nuts-bankid/core"
	"github.com/nuts-foundation/nuts-bankid/soap/soaptest"
	"github.com/nuts-foundation/nuts-bankid/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_ServerLifecycle tests the lifecycle of the server:
// - It starts the server, calling a fake BankID service
// - Waits for the /status endpoint to return HTTP 200, indicating it started properly
// - Runs an authentication order through the REST API until it's complete
// - Sends SIGINT signal
// - Waits for the main function to return
func Test_ServerLifecycle(t *testing.T) {
	testDirectory := t.TempDir()
	service := soaptest.New(t)

	runningCtx, serverStoppedCallback := context.WithCancel(context.Background())
	serverConfig, moduleConfig := getIntegrationTestConfig(t, service.WSDLURL())
	startCtx := startServer(testDirectory, serverStoppedCallback, serverConfig, moduleConfig)

	// Wait for the server to start
	<-startCtx.Done()
	if !errors.Is(startCtx.Err(), context.Canceled) {
		t.Fatalf("Process didn't start before the time-out expired: %v", startCtx.Err())
	}

	client := v1.HTTPClient{ServerAddress: "http://" + serverConfig.HTTP.Address, Timeout: 5 * time.Second}
	handle, err := client.Authenticate("199001011234")
	require.NoError(t, err)
	require.NotNil(t, handle)
	var result *v1.CollectResponse
	for i := 0; i < 3; i++ {
		result, err = client.Collect(handle.OrderRef)
		require.NoError(t, err)
		require.NotNil(t, result)
	}
	assert.Equal(t, bankid.Complete, result.ProgressStatus)
	assert.Equal(t, "199001011234", result.UserInfo.PersonalNumber)
	assert.Equal(t, "Authenticate", service.Requests()[0].Operation)

	t.Log("Process successfully started, sending KILL signal")
	stopServer(t, runningCtx)
}

func stopServer(t *testing.T, ctx context.Context) {
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGINT)
	<-ctx.Done()
	t.Log("Server shut down successfully.")
}

func startServer(testDirectory string, exitCallback func(), serverConfig core.ServerConfig, moduleConfig ModuleConfig) context.Context {
	// Create YAML file of server config + additional configs. Write it to disk and pass it to the server.
	koanfInstance := koanf.New(".")
	yamlParser := yaml.Parser()

	err := koanfInstance.Load(structs.ProviderWithDelim(serverConfig, "koanf", "."), nil)
	if err != nil {
		panic(err)
	}
	err = koanfInstance.Load(structs.ProviderWithDelim(moduleConfig, "koanf", "."), nil)
	if err != nil {
		panic(err)
	}

	bytes, err := koanfInstance.Marshal(yamlParser)
	if err != nil {
		panic(err)
	}

	configFile := filepath.Join(testDirectory, "config.yaml")
	err = os.WriteFile(configFile, bytes, 0644)
	if err != nil {
		panic(err)
	}

	os.Args = []string{"nuts-bankid", "server", "--configfile", configFile}
	timeout := 10 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	go func() {
		// Wait for the server to start, until the given timeout. Check every 100ms
		interval := 100 * time.Millisecond
		attempts := int(timeout / interval)
		address := fmt.Sprintf("http://%s/status", serverConfig.HTTP.Address)
		for i := 0; i < attempts; i++ {
			if isHttpRunning(address) {
				cancel()
				break
			}
			time.Sleep(interval)
		}
	}()

	go func() {
		main()
		exitCallback()
	}()

	return ctx
}

func isHttpRunning(address string) bool {
	response, err := http.Get(address)
	if err != nil {
		return false
	}
	_, _ = io.ReadAll(response.Body)
	_ = response.Body.Close()
	return response.StatusCode == http.StatusOK
}

func getIntegrationTestConfig(t *testing.T, wsdlLocation string) (core.ServerConfig, ModuleConfig) {
	system := cmd.CreateSystem()
	for _, subCmd := range cmd.CreateCommand(system).Commands() {
		if subCmd.Name() == "server" {
			require.NoError(t, system.Load(subCmd.Flags()))
			break
		}
	}

	config := *system.Config
	config.Strictmode = false
	config.HTTP.Address = fmt.Sprintf("localhost:%d", test.FreeTCPPort())

	bankidConfig := bankid.DefaultConfig()
	bankidConfig.Endpoint = wsdlLocation
	bankidConfig.Options = map[string]string{"timeout": "5s"}

	return config, ModuleConfig{
		BankID: bankidConfig,
	}
}

type ModuleConfig struct {
	BankID bankid.Config `koanf:"bankid"`
}
