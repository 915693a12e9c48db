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

// Package soap implements a SOAP 1.1 (document/literal) client, driven by a WSDL 1.1 service description.
package soap

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/nuts-foundation/nuts-bankid/core"
	"github.com/nuts-foundation/nuts-bankid/soap/log"
)

// Config holds the settings for creating a Client.
type Config struct {
	// ServiceDescription is the location of the WSDL: an http(s) URL, a file URL or a file path.
	ServiceDescription string
	// Options are the transport options, see Options.
	Options Options
	// TLSConfig is used for HTTPS connections to the service (and for fetching the WSDL).
	TLSConfig *tls.Config
	// Strictmode only allows the service (and WSDL) to be called over HTTPS.
	Strictmode bool
}

// Client calls the operations of a SOAP service.
// It is immutable after creation and safe for concurrent use.
type Client struct {
	description *ServiceDescription
	location    string
	userAgent   string
	httpClient  core.HTTPRequestDoer
}

// New loads the service description and creates a Client for it.
func New(ctx context.Context, config Config) (*Client, error) {
	options, err := config.Options.parse()
	if err != nil {
		return nil, err
	}
	httpClient := core.NewStrictHTTPClient(config.Strictmode, core.HTTPTransportConfig{
		Timeout:           options.timeout,
		DialTimeout:       options.connectionTimeout,
		DisableKeepAlives: !options.keepAlive,
		TLSConfig:         config.TLSConfig,
	})

	data, err := loadServiceDescription(ctx, httpClient, config.ServiceDescription)
	if err != nil {
		return nil, fmt.Errorf("unable to load service description (location=%s): %w", config.ServiceDescription, err)
	}
	description, err := ParseServiceDescription(data)
	if err != nil {
		return nil, err
	}

	location := description.Location
	if options.location != "" {
		location = options.location
	}
	if location == "" {
		return nil, fmt.Errorf("%w: no service address", ErrInvalidServiceDescription)
	}
	parsedLocation, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid service address: %w", err)
	}
	if config.Strictmode && parsedLocation.Scheme != "https" {
		return nil, fmt.Errorf("invalid service address (location=%s): %w", location, core.ErrHTTPNotAllowed)
	}

	userAgent := options.userAgent
	if userAgent == "" {
		userAgent = core.UserAgent()
	}
	log.Logger().
		WithField(core.LogFieldEndpoint, location).
		Debugf("SOAP client created (operations: %d)", len(description.Operations))
	return &Client{
		description: description,
		location:    location,
		userAgent:   userAgent,
		httpClient:  httpClient,
	}, nil
}

// Location returns the address of the service.
func (c *Client) Location() string {
	return c.location
}

// Call invokes the named operation with the given parameters and returns the payload of the response.
// All errors of the call itself (network, HTTP, SOAP faults) are in the ErrTransport category.
// If the context is cancelled its error is returned as-is.
func (c *Client) Call(ctx context.Context, procedure string, params ...Param) (*Response, error) {
	operation, ok := c.description.Operation(procedure)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, procedure)
	}
	requestBody, err := buildEnvelope(operation, c.description.qualifiedChildren(operation.Input.Space), params)
	if err != nil {
		return nil, fmt.Errorf("unable to create SOAP request for %s: %w", procedure, err)
	}

	logger := log.Logger().
		WithField(core.LogFieldOperation, procedure).
		WithField(core.LogFieldCallID, uuid.NewString())
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.location, bytes.NewReader(requestBody))
	if err != nil {
		return nil, core.WrapError(ErrTransport, err)
	}
	request.Header.Set("Content-Type", "text/xml; charset=utf-8")
	request.Header.Set("SOAPAction", `"`+operation.Action+`"`)
	request.Header.Set("User-Agent", c.userAgent)

	logger.Trace("Calling SOAP operation")
	response, err := c.httpClient.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.WithError(err).Warn("SOAP call failed")
		return nil, core.WrapError(ErrTransport, err)
	}
	defer response.Body.Close()
	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, core.WrapError(ErrTransport, err)
	}

	payload, err := readEnvelope(responseBody)
	var fault *Fault
	if errors.As(err, &fault) {
		logger.WithError(fault).Info("SOAP call returned a fault")
		return nil, fault
	}
	if response.StatusCode != http.StatusOK {
		response.Body = io.NopCloser(bytes.NewReader(responseBody))
		return nil, core.WrapError(ErrTransport, core.TestResponseCodeWithLog(http.StatusOK, response, logger))
	}
	if err != nil {
		logger.WithError(err).Warn("SOAP call returned an invalid response")
		return nil, core.WrapError(ErrTransport, err)
	}
	logger.Tracef("SOAP call returned %s", payload.Tag)
	return &Response{element: payload}, nil
}

func loadServiceDescription(ctx context.Context, httpClient core.HTTPRequestDoer, location string) ([]byte, error) {
	switch {
	case location == "":
		return nil, errors.New("no location")
	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, err
		}
		response, err := httpClient.Do(request)
		if err != nil {
			return nil, err
		}
		defer response.Body.Close()
		if err := core.TestResponseCodeWithLog(http.StatusOK, response, log.Logger()); err != nil {
			return nil, err
		}
		return io.ReadAll(response.Body)
	case strings.HasPrefix(location, "file://"):
		parsed, err := url.Parse(location)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(parsed.Path)
	default:
		return os.ReadFile(location)
	}
}
