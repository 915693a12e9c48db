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
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"schneider.vip/problem"
)

type statusCodeResolver map[error]int

func (s statusCodeResolver) ResolveStatusCode(err error) int {
	return ResolveStatusCode(err, s)
}

func TestHttpErrorHandler(t *testing.T) {
	upstreamErr := errors.New("upstream failed")
	es, _ := createEchoServer(HTTPConfig{})
	server := httptest.NewServer(es.(*echo.Echo))
	defer server.Close()
	client := http.Client{}

	doRequest := func(t *testing.T, path string) (*http.Response, string) {
		req, _ := http.NewRequest(http.MethodGet, server.URL+path, nil)
		resp, err := client.Do(req)
		require.NoError(t, err)
		bodyBytes, _ := io.ReadAll(resp.Body)
		return resp, string(bodyBytes)
	}

	t.Run("is echo HTTPError", func(t *testing.T) {
		es.GET("/echo-error", func(c echo.Context) error {
			err := errors.New("failed")
			return &echo.HTTPError{
				Code:     http.StatusForbidden,
				Message:  err.Error(),
				Internal: err,
			}
		})

		resp, body := doRequest(t, "/echo-error")

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, problem.ContentTypeJSON, resp.Header.Get("Content-Type"))
		assert.Equal(t, "{\"detail\":\"failed\",\"status\":403,\"title\":\"Operation failed\"}", string(body))
	})
	t.Run("error mapping from context", func(t *testing.T) {
		es.GET("/mapped", func(c echo.Context) error {
			c.Set(OperationIDContextKey, "Collect")
			c.Set(StatusCodeResolverContextKey, statusCodeResolver{upstreamErr: http.StatusBadGateway})
			return WrapError(upstreamErr, errors.New("connection refused"))
		})

		resp, body := doRequest(t, "/mapped")

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, "{\"detail\":\"upstream failed: connection refused\",\"status\":502,\"title\":\"Collect failed\"}", body)
	})
	t.Run("predefined status code", func(t *testing.T) {
		es.GET("/invalid", func(c echo.Context) error {
			c.Set(OperationIDContextKey, "StartSign")
			return InvalidInputError("missing personalNumber")
		})

		resp, body := doRequest(t, "/invalid")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "{\"detail\":\"missing personalNumber\",\"status\":400,\"title\":\"StartSign failed\"}", body)
	})
	t.Run("unmapped", func(t *testing.T) {
		es.GET("/unmapped", func(c echo.Context) error {
			c.Set(OperationIDContextKey, "test")
			return errors.New("other error")
		})

		resp, body := doRequest(t, "/unmapped")

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "{\"detail\":\"other error\",\"status\":500,\"title\":\"test failed\"}", body)
	})
}

func Test_InvalidInputError(t *testing.T) {
	err := InvalidInputError("failed: %s", "oops").(httpStatusCodeError)
	assert.EqualError(t, err, "failed: oops")
	assert.Equal(t, http.StatusBadRequest, err.statusCode)
	assert.ErrorIs(t, err, InvalidInputError(""))
}

func Test_BadGatewayError(t *testing.T) {
	cause := errors.New("fault")
	err := BadGatewayError("upstream: %w", cause).(httpStatusCodeError)
	assert.EqualError(t, err, "upstream: fault")
	assert.Equal(t, http.StatusBadGateway, err.statusCode)
	assert.ErrorIs(t, err, cause)
}
