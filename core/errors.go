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
	"fmt"
)

// categorizedError puts a cause in an error category, e.g. a network failure in soap.ErrTransport.
type categorizedError struct {
	category error
	cause    error
}

func (e categorizedError) Error() string {
	// %v prints <nil> for a missing category or cause instead of panicking
	return fmt.Sprintf("%v: %v", e.category, e.cause)
}

func (e categorizedError) Is(target error) bool {
	return errors.Is(e.category, target)
}

func (e categorizedError) Unwrap() error {
	return e.cause
}

// WrapError places cause in the given category.
// errors.Is matches both the category and the cause, and errors.As finds the cause,
// so callers can branch on the category while the cause (HTTP status, SOAP fault) stays available.
func WrapError(category error, cause error) error {
	return categorizedError{
		category: category,
		cause:    cause,
	}
}
