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
	"context"

	"github.com/labstack/echo/v4"
)

// StubEchoServer is a core.EchoServer that doesn't serve anything, but records the address it was started on.
type StubEchoServer struct {
	BoundAddress string
	Routes       []string
}

func (s *StubEchoServer) Use(middleware ...echo.MiddlewareFunc) {
}

func (s *StubEchoServer) DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return s.Add("DELETE", path, h, m...)
}

func (s *StubEchoServer) GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return s.Add("GET", path, h, m...)
}

func (s *StubEchoServer) HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return s.Add("HEAD", path, h, m...)
}

func (s *StubEchoServer) PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return s.Add("PATCH", path, h, m...)
}

func (s *StubEchoServer) POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return s.Add("POST", path, h, m...)
}

func (s *StubEchoServer) PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return s.Add("PUT", path, h, m...)
}

func (s *StubEchoServer) Shutdown(ctx context.Context) error {
	return nil
}

func (s *StubEchoServer) Add(method, path string, handler echo.HandlerFunc, middleware ...echo.MiddlewareFunc) *echo.Route {
	s.Routes = append(s.Routes, method+" "+path)
	return &echo.Route{Method: method, Path: path}
}

func (s *StubEchoServer) Start(address string) error {
	s.BoundAddress = address
	return nil
}
