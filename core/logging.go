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

const (
	// LogFieldModule is the log field for the module name.
	LogFieldModule = "module"

	// LogFieldOperation is the log field key for the name of the remote procedure being invoked.
	LogFieldOperation = "operation"
	// LogFieldOrderRef is the log field key for the order reference of a BankID order.
	LogFieldOrderRef = "orderRef"
	// LogFieldProgressStatus is the log field key for the progress status reported by a collect call.
	LogFieldProgressStatus = "progressStatus"
	// LogFieldCallID is the log field key for the correlation ID of a single transport round trip.
	LogFieldCallID = "callID"
	// LogFieldEndpoint is the log field key for the address of a remote service.
	LogFieldEndpoint = "endpoint"
)
