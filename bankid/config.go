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
	"github.com/nuts-foundation/nuts-bankid/core"
	"github.com/nuts-foundation/nuts-bankid/soap"
)

// Config holds the configuration of the BankID module.
type Config struct {
	// Endpoint is the location of the service description (WSDL) of the BankID relying party service.
	Endpoint string `koanf:"endpoint"`
	// EnableSSL enables verification of the certificate of the BankID service. Only disable it for testing.
	EnableSSL bool `koanf:"enablessl"`
	// Options are passed to the SOAP transport, see soap.Options.
	Options map[string]string `koanf:"options"`
	// TLS configures the client certificate and trusted CAs for connecting to the BankID service.
	TLS core.ClientTLSConfig `koanf:"tls"`
}

// DefaultConfig returns the default configuration of the BankID module.
func DefaultConfig() Config {
	return Config{
		EnableSSL: true,
		Options:   map[string]string{},
	}
}

// TransportConfig holds the settings for connecting to the BankID service.
type TransportConfig struct {
	// Endpoint is the location of the service description (WSDL).
	Endpoint string
	// Options are the SOAP transport options.
	Options soap.Options
	// EnableSSL enables verification of the certificate of the BankID service.
	// When false, any certificate is accepted, including self-signed ones and ones issued for another host.
	EnableSSL bool
	// TLS holds the client certificate and trust store. Its SkipVerify field is derived from EnableSSL.
	TLS core.ClientTLSConfig
	// Strictmode only allows HTTPS connections.
	Strictmode bool
}

// TransportConfig returns the settings for connecting to the BankID service.
func (c Config) TransportConfig(strictmode bool) TransportConfig {
	return TransportConfig{
		Endpoint:   c.Endpoint,
		Options:    c.Options,
		EnableSSL:  c.EnableSSL,
		TLS:        c.TLS,
		Strictmode: strictmode,
	}
}
