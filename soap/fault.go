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

package soap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ErrTransport is the category of all errors that occur while performing a call:
// network and protocol errors, unexpected HTTP responses and SOAP faults.
// Use errors.Is(err, ErrTransport) to test for it.
var ErrTransport = errors.New("SOAP transport fault")

// ErrUnknownOperation is returned when calling an operation the service description doesn't define.
var ErrUnknownOperation = errors.New("unknown SOAP operation")

// Fault is a SOAP 1.1 fault returned by the remote service.
// It is part of the ErrTransport category.
type Fault struct {
	// Code is the faultcode (e.g. soap:Server).
	Code string
	// String is the human-readable faultstring.
	String string
	// Status is the faultStatus of a BankID RpFault in the fault detail, if present.
	Status string
	// Description is the detailedDescription of a BankID RpFault in the fault detail, if present.
	Description string
}

func (f *Fault) Error() string {
	if f.Status == "" {
		return fmt.Sprintf("SOAP fault (code=%s): %s", f.Code, f.String)
	}
	return fmt.Sprintf("SOAP fault (code=%s, status=%s): %s", f.Code, f.Status, f.Description)
}

// Is makes a Fault match ErrTransport.
func (f *Fault) Is(target error) bool {
	return target == ErrTransport
}

func parseFault(element *etree.Element) *Fault {
	return &Fault{
		Code:        childText(element, "faultcode"),
		String:      childText(element, "faultstring"),
		Status:      descendantText(element, "./detail//faultStatus"),
		Description: descendantText(element, "./detail//detailedDescription"),
	}
}

func childText(element *etree.Element, tag string) string {
	child := element.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

func descendantText(element *etree.Element, path string) string {
	child := element.FindElement(path)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
