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
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/nuts-foundation/nuts-bankid/bankid/log"
	"github.com/nuts-foundation/nuts-bankid/core"
	"github.com/nuts-foundation/nuts-bankid/soap"
)

// Names of the remote procedures of the BankID relying party service.
const (
	operationSign         = "Sign"
	operationAuthenticate = "Authenticate"
	operationCollect      = "Collect"
)

var _ SessionClient = (*Client)(nil)

// Client is the SessionClient calling the BankID relying party service.
// It doesn't keep state between calls, and is safe for concurrent use when its Caller is.
type Client struct {
	caller Caller
}

// New creates a Client that calls the BankID service through the given Caller.
func New(caller Caller) *Client {
	return &Client{caller: caller}
}

// NewClient loads the service description of the BankID service and creates a Client for it.
func NewClient(ctx context.Context, config TransportConfig) (*Client, error) {
	tlsConfig := config.TLS
	tlsConfig.SkipVerify = !config.EnableSSL
	clientTLSConfig, err := tlsConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("unable to create BankID client: %w", err)
	}
	if !config.EnableSSL {
		log.Logger().
			WithField(core.LogFieldEndpoint, config.Endpoint).
			Warn("Certificate verification of the BankID service is disabled")
	}
	soapClient, err := soap.New(ctx, soap.Config{
		ServiceDescription: config.Endpoint,
		Options:            config.Options,
		TLSConfig:          clientTLSConfig,
		Strictmode:         config.Strictmode,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create BankID client: %w", err)
	}
	return New(soapClient), nil
}

// StartSign starts a sign order. userVisibleData is sent base64 encoded.
// Transport faults are returned unchanged.
func (c *Client) StartSign(ctx context.Context, personalNumber string, userVisibleData []byte) (OrderHandle, error) {
	response, err := c.caller.Call(ctx, operationSign,
		soap.Param{Name: "personalNumber", Value: personalNumber},
		soap.Param{Name: "userVisibleData", Value: base64.StdEncoding.EncodeToString(userVisibleData)},
	)
	if err != nil {
		log.Logger().
			WithError(err).
			WithField(core.LogFieldOperation, operationSign).
			Warn("Unable to start BankID sign order")
		return OrderHandle{}, err
	}
	return readOrderResponse(response)
}

// StartAuth starts an authentication order.
// If the service can't be reached, returns a fault or doesn't return a complete order, no handle and no error is returned.
func (c *Client) StartAuth(ctx context.Context, personalNumber string) (*OrderHandle, error) {
	logger := log.Logger().WithField(core.LogFieldOperation, operationAuthenticate)
	response, err := c.caller.Call(ctx, operationAuthenticate,
		soap.Param{Name: "personalNumber", Value: personalNumber},
	)
	if err != nil {
		if errors.Is(err, soap.ErrTransport) {
			logger.WithError(err).Info("Unable to start BankID authentication order")
			return nil, nil
		}
		return nil, err
	}
	handle, err := readOrderResponse(response)
	if err != nil {
		logger.WithError(err).Info("BankID authentication order was not started")
		return nil, nil
	}
	return &handle, nil
}

// Collect retrieves the state of an order with a single call.
// If the service can't be reached or returns a fault, no result and no error is returned.
// The completion fields are only read when the order is complete.
func (c *Client) Collect(ctx context.Context, orderRef string) (*CollectResult, error) {
	logger := log.Logger().
		WithField(core.LogFieldOperation, operationCollect).
		WithField(core.LogFieldOrderRef, orderRef)
	response, err := c.caller.Call(ctx, operationCollect,
		soap.Param{Name: "orderRef", Value: orderRef},
	)
	if err != nil {
		if errors.Is(err, soap.ErrTransport) {
			logger.WithError(err).Info("Unable to collect BankID order")
			return nil, nil
		}
		return nil, err
	}

	status, _ := response.Text("progressStatus")
	if status == "" {
		return nil, fmt.Errorf("%w: missing progressStatus", ErrMalformedResponse)
	}
	result := &CollectResult{ProgressStatus: ProgressStatus(status)}
	logger.WithField(core.LogFieldProgressStatus, status).Debug("Collected BankID order")
	if !result.ProgressStatus.IsComplete() {
		return result, nil
	}

	userInfoResponse, ok := response.Child("userInfo")
	if !ok {
		return nil, fmt.Errorf("%w: missing userInfo", ErrMalformedResponse)
	}
	userInfo := UserInfo{}
	if err := userInfoResponse.Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("%w: invalid userInfo: %s", ErrMalformedResponse, err)
	}
	if result.Signature, ok = response.Text("signature"); !ok {
		return nil, fmt.Errorf("%w: missing signature", ErrMalformedResponse)
	}
	if result.OCSPResponse, ok = response.Text("ocspResponse"); !ok {
		return nil, fmt.Errorf("%w: missing ocspResponse", ErrMalformedResponse)
	}
	result.UserInfo = &userInfo
	return result, nil
}

func readOrderResponse(response *soap.Response) (OrderHandle, error) {
	orderRef, _ := response.Text("orderRef")
	if orderRef == "" {
		return OrderHandle{}, fmt.Errorf("%w: missing orderRef", ErrMalformedResponse)
	}
	autoStartToken, _ := response.Text("autoStartToken")
	if autoStartToken == "" {
		return OrderHandle{}, fmt.Errorf("%w: missing autoStartToken", ErrMalformedResponse)
	}
	return OrderHandle{OrderRef: orderRef, AutoStartToken: autoStartToken}, nil
}
