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

import "github.com/nuts-foundation/nuts-bankid/bankid"

// SignRequest is the request body of the sign operation.
type SignRequest struct {
	// PersonalNumber is the Swedish personal identity number (12 digits) of the user.
	PersonalNumber string `json:"personalNumber"`
	// UserVisibleData is the text shown to the user in the BankID app.
	UserVisibleData string `json:"userVisibleData"`
}

// AuthenticateRequest is the request body of the authenticate operation.
type AuthenticateRequest struct {
	// PersonalNumber is the Swedish personal identity number (12 digits) of the user.
	PersonalNumber string `json:"personalNumber"`
}

// OrderResponse is the response of the sign and authenticate operations.
type OrderResponse = bankid.OrderHandle

// CollectResponse is the response of the collect operation.
type CollectResponse = bankid.CollectResult
