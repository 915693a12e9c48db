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

	"github.com/nuts-foundation/nuts-bankid/soap"
)

// Caller invokes a remote procedure of the BankID relying party service.
// It is implemented by *soap.Client.
type Caller interface {
	Call(ctx context.Context, procedure string, params ...soap.Param) (*soap.Response, error)
}

// SessionClient starts BankID orders and collects their result.
type SessionClient interface {
	// StartSign starts a sign order for the given user, showing userVisibleData in the BankID app.
	// Every error is returned, including transport faults.
	StartSign(ctx context.Context, personalNumber string, userVisibleData []byte) (OrderHandle, error)
	// StartAuth starts an authentication order for the given user.
	// It returns nil (and no error) when the order couldn't be started.
	StartAuth(ctx context.Context, personalNumber string) (*OrderHandle, error)
	// Collect returns the state of an order, or nil (and no error) when it couldn't be retrieved.
	// It performs a single call, polling is up to the caller.
	Collect(ctx context.Context, orderRef string) (*CollectResult, error)
}
