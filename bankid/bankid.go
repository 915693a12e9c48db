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

package bankid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nuts-foundation/nuts-bankid/core"
	"github.com/prometheus/client_golang/prometheus"
)

const moduleName = "BankID"

// configureTimeout limits loading the service description when the module is configured.
const configureTimeout = 30 * time.Second

var _ SessionClient = (*Module)(nil)
var _ core.Injectable = (*Module)(nil)
var _ core.Configurable = (*Module)(nil)
var _ core.Diagnosable = (*Module)(nil)

// Module is the engine that sets up the BankID client from the configuration.
// It is a SessionClient itself, which fails with ErrNotConfigured until the module is configured.
type Module struct {
	config Config
	client SessionClient
	// location is the address of the BankID service, taken from the service description.
	location string
}

// NewModule creates an unconfigured BankID module with the default configuration.
func NewModule() *Module {
	return &Module{config: DefaultConfig()}
}

func (m *Module) Name() string {
	return moduleName
}

func (m *Module) Config() interface{} {
	return &m.config
}

// Configure validates the configuration and creates the client, which loads the service description.
func (m *Module) Configure(config core.ServerConfig) error {
	if m.config.Endpoint == "" {
		return errors.New("bankid.endpoint must be configured")
	}
	if !m.config.EnableSSL && config.Strictmode {
		return errors.New("bankid.enablessl can't be disabled in strictmode")
	}
	ctx, cancel := context.WithTimeout(context.Background(), configureTimeout)
	defer cancel()
	client, err := NewClient(ctx, m.config.TransportConfig(config.Strictmode))
	if err != nil {
		return err
	}
	calls, err := newCallsCounter(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("unable to register BankID metrics: %w", err)
	}
	if soapClient, ok := client.caller.(interface{ Location() string }); ok {
		m.location = soapClient.Location()
	}
	m.client = instrumentedClient{next: client, calls: calls}
	return nil
}

// Client returns the client created by Configure, or nil if the module isn't configured.
func (m *Module) Client() SessionClient {
	return m.client
}

// Diagnostics returns the configured endpoint and service address.
func (m *Module) Diagnostics() []core.DiagnosticResult {
	return []core.DiagnosticResult{
		&core.GenericDiagnosticResult{Title: "endpoint", Outcome: m.config.Endpoint},
		&core.GenericDiagnosticResult{Title: "service_address", Outcome: m.location},
		&core.GenericDiagnosticResult{Title: "certificate_verification", Outcome: m.config.EnableSSL},
	}
}

func (m *Module) StartSign(ctx context.Context, personalNumber string, userVisibleData []byte) (OrderHandle, error) {
	if m.client == nil {
		return OrderHandle{}, ErrNotConfigured
	}
	return m.client.StartSign(ctx, personalNumber, userVisibleData)
}

func (m *Module) StartAuth(ctx context.Context, personalNumber string) (*OrderHandle, error) {
	if m.client == nil {
		return nil, ErrNotConfigured
	}
	return m.client.StartAuth(ctx, personalNumber)
}

func (m *Module) Collect(ctx context.Context, orderRef string) (*CollectResult, error) {
	if m.client == nil {
		return nil, ErrNotConfigured
	}
	return m.client.Collect(ctx, orderRef)
}
