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

package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nuts-foundation/nuts-bankid/core"
	"github.com/oapi-codegen/runtime"
)

// HTTPClient calls the BankID API of a running server.
type HTTPClient struct {
	ServerAddress string
	Timeout       time.Duration
	// HTTPClient is used to perform requests, defaults to http.DefaultClient.
	HTTPClient core.HTTPRequestDoer
}

// Sign starts a sign order.
func (h HTTPClient) Sign(personalNumber string, userVisibleData string) (*OrderResponse, error) {
	result := OrderResponse{}
	found, err := h.do(http.MethodPost, "/sign", SignRequest{PersonalNumber: personalNumber, UserVisibleData: userVisibleData}, &result)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("server returned no order")
	}
	return &result, nil
}

// Authenticate starts an authentication order. It returns nil if no order was started.
func (h HTTPClient) Authenticate(personalNumber string) (*OrderResponse, error) {
	result := OrderResponse{}
	found, err := h.do(http.MethodPost, "/authenticate", AuthenticateRequest{PersonalNumber: personalNumber}, &result)
	if err != nil || !found {
		return nil, err
	}
	return &result, nil
}

// Collect returns the state of an order. It returns nil if the state couldn't be retrieved.
func (h HTTPClient) Collect(orderRef string) (*CollectResponse, error) {
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "orderRef", runtime.ParamLocationPath, orderRef)
	if err != nil {
		return nil, err
	}
	result := CollectResponse{}
	found, err := h.do(http.MethodGet, "/collect/"+pathParam, nil, &result)
	if err != nil || !found {
		return nil, err
	}
	return &result, nil
}

// do performs the request and decodes the response into target. It returns false if the server responded with 204 No Content.
func (h HTTPClient) do(method string, path string, body interface{}, target interface{}) (bool, error) {
	ctx, cancel := h.withTimeout()
	defer cancel()

	var requestBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return false, err
		}
		requestBody = bytes.NewReader(data)
	} else {
		requestBody = bytes.NewReader(nil)
	}
	request, err := http.NewRequestWithContext(ctx, method, h.ServerAddress+BasePath+path, requestBody)
	if err != nil {
		return false, err
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")

	response, err := h.client().Do(request)
	if err != nil {
		return false, err
	}
	defer response.Body.Close()
	if response.StatusCode == http.StatusNoContent {
		return false, nil
	}
	if err := core.TestResponseCode(http.StatusOK, response); err != nil {
		return false, err
	}
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return false, fmt.Errorf("invalid response: %w", err)
	}
	return true, nil
}

func (h HTTPClient) client() core.HTTPRequestDoer {
	if h.HTTPClient != nil {
		return h.HTTPClient
	}
	return http.DefaultClient
}

func (h HTTPClient) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), h.Timeout)
}
