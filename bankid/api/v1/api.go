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
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/nuts-bankid/bankid"
	"github.com/nuts-foundation/nuts-bankid/core"
	"github.com/nuts-foundation/nuts-bankid/soap"
	"github.com/oapi-codegen/runtime"
)

// BasePath is the path the API is served on.
const BasePath = "/internal/bankid/v1"

const moduleName = "BankID"

var _ core.Routable = (*Wrapper)(nil)
var _ core.ErrorStatusCodeResolver = (*Wrapper)(nil)

// Wrapper exposes the BankID SessionClient over HTTP.
type Wrapper struct {
	Client bankid.SessionClient
}

// Routes registers the API operations on the router.
func (w *Wrapper) Routes(router core.EchoRouter) {
	router.POST(BasePath+"/sign", w.Sign, w.operation("Sign"))
	router.POST(BasePath+"/authenticate", w.Authenticate, w.operation("Authenticate"))
	router.GET(BasePath+"/collect/:orderRef", w.Collect, w.operation("Collect"))
}

// operation sets the context values the error handler uses for logging and error responses.
func (w *Wrapper) operation(operationID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(core.OperationIDContextKey, operationID)
			ctx.Set(core.ModuleNameContextKey, moduleName)
			ctx.Set(core.StatusCodeResolverContextKey, w)
			return next(ctx)
		}
	}
}

// ResolveStatusCode maps errors returned by this API to specific HTTP status codes.
func (w *Wrapper) ResolveStatusCode(err error) int {
	return core.ResolveStatusCode(err, map[error]int{
		soap.ErrTransport:           http.StatusBadGateway,
		soap.ErrUnknownOperation:    http.StatusBadGateway,
		bankid.ErrMalformedResponse: http.StatusBadGateway,
		bankid.ErrNotConfigured:     http.StatusServiceUnavailable,
	})
}

// Sign starts a sign order.
func (w *Wrapper) Sign(ctx echo.Context) error {
	request := SignRequest{}
	if err := ctx.Bind(&request); err != nil {
		return core.InvalidInputError("invalid request body: %w", err)
	}
	if request.PersonalNumber == "" {
		return core.InvalidInputError("personalNumber is required")
	}
	if request.UserVisibleData == "" {
		return core.InvalidInputError("userVisibleData is required")
	}
	handle, err := w.Client.StartSign(ctx.Request().Context(), request.PersonalNumber, []byte(request.UserVisibleData))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, OrderResponse(handle))
}

// Authenticate starts an authentication order. It responds with 204 No Content when no order was started.
func (w *Wrapper) Authenticate(ctx echo.Context) error {
	request := AuthenticateRequest{}
	if err := ctx.Bind(&request); err != nil {
		return core.InvalidInputError("invalid request body: %w", err)
	}
	if request.PersonalNumber == "" {
		return core.InvalidInputError("personalNumber is required")
	}
	handle, err := w.Client.StartAuth(ctx.Request().Context(), request.PersonalNumber)
	if err != nil {
		return err
	}
	if handle == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, handle)
}

// Collect returns the state of an order. It responds with 204 No Content when the state couldn't be retrieved.
func (w *Wrapper) Collect(ctx echo.Context) error {
	var orderRef string
	err := runtime.BindStyledParameterWithOptions("simple", "orderRef", ctx.Param("orderRef"), &orderRef,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return core.InvalidInputError("invalid orderRef: %w", err)
	}
	if orderRef == "" {
		return core.InvalidInputError("orderRef is required")
	}
	result, err := w.Client.Collect(ctx.Request().Context(), orderRef)
	if err != nil {
		if errors.Is(err, bankid.ErrMalformedResponse) {
			return core.BadGatewayError("BankID returned an incomplete result: %w", err)
		}
		return err
	}
	if result == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, result)
}
