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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nuts-foundation/nuts-bankid/bankid"
	"github.com/nuts-foundation/nuts-bankid/core"
	http2 "github.com/nuts-foundation/nuts-bankid/test/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestClient(t *testing.T, handler http.Handler) HTTPClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return HTTPClient{ServerAddress: server.URL, Timeout: time.Second}
}

func TestHTTPClient_Sign(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		handler := &http2.Handler{StatusCode: http.StatusOK, ResponseData: OrderResponse{OrderRef: "abc123", AutoStartToken: "tok-1"}}
		client := newTestClient(t, handler)

		result, err := client.Sign("199001011234", "Pay 100 SEK")

		require.NoError(t, err)
		assert.Equal(t, "abc123", result.OrderRef)
		assert.Equal(t, "tok-1", result.AutoStartToken)
		assert.Equal(t, BasePath+"/sign", handler.Request.URL.Path)
		assert.Equal(t, http.MethodPost, handler.Request.Method)
		assert.Equal(t, "application/json", handler.RequestHeaders.Get("Content-Type"))
		request := SignRequest{}
		require.NoError(t, json.Unmarshal(handler.RequestData, &request))
		assert.Equal(t, SignRequest{PersonalNumber: "199001011234", UserVisibleData: "Pay 100 SEK"}, request)
	})
	t.Run("no content", func(t *testing.T) {
		client := newTestClient(t, &http2.Handler{StatusCode: http.StatusNoContent})

		result, err := client.Sign("199001011234", "Pay 100 SEK")

		assert.EqualError(t, err, "server returned no order")
		assert.Nil(t, result)
	})
	t.Run("error status", func(t *testing.T) {
		client := newTestClient(t, &http2.Handler{StatusCode: http.StatusBadGateway, ResponseData: `{"title":"Sign failed"}`})

		result, err := client.Sign("199001011234", "Pay 100 SEK")

		var httpErr core.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
		assert.Nil(t, result)
	})
}

func TestHTTPClient_Authenticate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		handler := &http2.Handler{StatusCode: http.StatusOK, ResponseData: OrderResponse{OrderRef: "def456", AutoStartToken: "tok-2"}}
		client := newTestClient(t, handler)

		result, err := client.Authenticate("199001011234")

		require.NoError(t, err)
		assert.Equal(t, "def456", result.OrderRef)
		assert.JSONEq(t, `{"personalNumber":"199001011234"}`, string(handler.RequestData))
	})
	t.Run("no order", func(t *testing.T) {
		client := newTestClient(t, &http2.Handler{StatusCode: http.StatusNoContent})

		result, err := client.Authenticate("199001011234")

		assert.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestHTTPClient_Collect(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		handler := &http2.Handler{StatusCode: http.StatusOK, ResponseData: CollectResponse{
			ProgressStatus: bankid.Complete,
			UserInfo:       &bankid.UserInfo{Name: "Agda Andersson"},
			Signature:      "sig",
			OCSPResponse:   "ocsp",
		}}
		client := newTestClient(t, handler)

		result, err := client.Collect("abc123")

		require.NoError(t, err)
		assert.True(t, result.ProgressStatus.IsComplete())
		assert.Equal(t, "Agda Andersson", result.UserInfo.Name)
		assert.Equal(t, BasePath+"/collect/abc123", handler.Request.URL.Path)
		assert.Equal(t, http.MethodGet, handler.Request.Method)
		assert.Empty(t, handler.RequestData)
	})
	t.Run("no result", func(t *testing.T) {
		client := newTestClient(t, &http2.Handler{StatusCode: http.StatusNoContent})

		result, err := client.Collect("abc123")

		assert.NoError(t, err)
		assert.Nil(t, result)
	})
	t.Run("invalid response", func(t *testing.T) {
		client := newTestClient(t, &http2.Handler{StatusCode: http.StatusOK, ResponseData: "not JSON"})

		result, err := client.Collect("abc123")

		assert.ErrorContains(t, err, "invalid response")
		assert.Nil(t, result)
	})
	t.Run("server unavailable", func(t *testing.T) {
		client := HTTPClient{ServerAddress: "http://localhost:1", Timeout: time.Second}

		result, err := client.Collect("abc123")

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestHTTPClient_RoundTrip(t *testing.T) {
	sessionClient := bankid.NewMockSessionClient(gomock.NewController(t))
	sessionClient.EXPECT().StartAuth(gomock.Any(), "199001011234").Return(&bankid.OrderHandle{OrderRef: "abc123", AutoStartToken: "tok"}, nil)
	sessionClient.EXPECT().Collect(gomock.Any(), "abc123").Return(&bankid.CollectResult{ProgressStatus: bankid.OutstandingTransaction}, nil)
	sessionClient.EXPECT().Collect(gomock.Any(), "unknown").Return(nil, bankid.ErrNotConfigured)
	serverURL := http2.StartEchoServer(t, (&Wrapper{Client: sessionClient}).Routes)
	client := HTTPClient{ServerAddress: serverURL, Timeout: 5 * time.Second}

	handle, err := client.Authenticate("199001011234")
	require.NoError(t, err)
	result, err := client.Collect(handle.OrderRef)
	require.NoError(t, err)
	assert.Equal(t, bankid.OutstandingTransaction, result.ProgressStatus)

	_, err = client.Collect("unknown")
	var httpErr core.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
}
