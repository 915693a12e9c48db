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
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// MinTLSVersion defines the minimal TLS version used by all components that use TLS
const MinTLSVersion uint16 = tls.VersionTLS12

// ClientTLSConfig specifies how outgoing TLS connections to a remote service are set up.
type ClientTLSConfig struct {
	// CertFile is the PEM file holding the client certificate, used for mutual TLS.
	CertFile string `koanf:"certfile"`
	// CertKeyFile is the PEM file holding the private key of the client certificate.
	CertKeyFile string `koanf:"certkeyfile"`
	// TrustStoreFile is the PEM file holding the CA certificates trusted for the remote server.
	// When empty, the system roots are used.
	TrustStoreFile string `koanf:"truststorefile"`
	// SkipVerify disables verification of the remote peer certificate chain and host name,
	// which also makes self-signed certificates acceptable.
	SkipVerify bool `koanf:"-"`
}

// Load builds the tls.Config for the client. It is built once and must not be altered afterwards.
func (c ClientTLSConfig) Load() (*tls.Config, error) {
	config := &tls.Config{
		MinVersion:         MinTLSVersion,
		InsecureSkipVerify: c.SkipVerify,
	}
	if len(c.CertFile) > 0 || len(c.CertKeyFile) > 0 {
		if len(c.CertFile) == 0 || len(c.CertKeyFile) == 0 {
			return nil, errors.New("both certfile and certkeyfile must be configured for a client certificate")
		}
		certificate, err := tls.LoadX509KeyPair(c.CertFile, c.CertKeyFile)
		if err != nil {
			return nil, fmt.Errorf("unable to load client certificate: %w", err)
		}
		config.Certificates = []tls.Certificate{certificate}
	}
	if len(c.TrustStoreFile) > 0 {
		trustStore, err := LoadTrustStore(c.TrustStoreFile)
		if err != nil {
			return nil, err
		}
		config.RootCAs = trustStore.CertPool
	}
	return config, nil
}

// ParseCertificates reads and parses all PEM encoded certificates from the given data
func ParseCertificates(data []byte) (certificates []*x509.Certificate, _ error) {
	for len(data) > 0 {
		var block *pem.Block

		block, data = pem.Decode(data)
		if block == nil {
			return nil, fmt.Errorf("unable to decode PEM encoded data")
		}

		if block.Type != "CERTIFICATE" {
			continue
		}

		certificate, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("unable to parse certificate: %w", err)
		}

		certificates = append(certificates, certificate)
	}

	return
}

type TrustStore struct {
	CertPool     *x509.CertPool
	certificates []*x509.Certificate
}

func (store *TrustStore) Certificates() []*x509.Certificate {
	return store.certificates[:]
}

// LoadTrustStore creates a x509 certificate pool based on a truststore file
func LoadTrustStore(trustStoreFile string) (*TrustStore, error) {
	data, err := os.ReadFile(trustStoreFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read trust store (file=%s): %w", trustStoreFile, err)
	}

	certificates, err := ParseCertificates(data)
	if err != nil {
		return nil, err
	}

	var (
		certPool = x509.NewCertPool()
	)

	for _, certificate := range certificates {
		certPool.AddCert(certificate)
	}

	return &TrustStore{
		CertPool:     certPool,
		certificates: certificates,
	}, nil
}
