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

package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/nuts-bankid/core"
	"github.com/nuts-foundation/nuts-bankid/test"
)

// StartEchoServer starts an echo server with the error handling of the application, with the routes registered by the given func.
// It returns the URL of the server, which is stopped when the test ends.
func StartEchoServer(t *testing.T, registerRoutesFunc func(router core.EchoRouter)) string {
	httpPort := test.FreeTCPPort()
	httpServer := echo.New()
	httpServer.HideBanner = true
	httpServer.HTTPErrorHandler = core.CreateHTTPErrorHandler()
	t.Cleanup(func() {
		_ = httpServer.Close()
	})
	registerRoutesFunc(httpServer)
	startErrorChannel := make(chan error, 1)
	go func() {
		err := httpServer.Start(":" + strconv.Itoa(httpPort))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			startErrorChannel <- err
		}
	}()

	httpServerURL := fmt.Sprintf("http://localhost:%d", httpPort)

	test.WaitFor(t, func() (bool, error) {
		// Check if Start() error-ed
		if len(startErrorChannel) > 0 {
			return false, <-startErrorChannel
		}
		response, err := http.Get(httpServerURL)
		if err == nil {
			_ = response.Body.Close()
		}
		return err == nil, nil
	}, 5*time.Second, "time-out waiting for HTTP server to start")

	return httpServerURL
}
