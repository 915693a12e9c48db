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
	"encoding/xml"
	"errors"
	"strings"

	"github.com/beevik/etree"
	"github.com/nuts-foundation/nuts-bankid/core"
)

// Response is the payload element of a SOAP response body.
type Response struct {
	element *etree.Element
}

// ReadResponse parses a SOAP 1.1 envelope and returns the payload of its body.
// A SOAP fault is returned as *Fault, other problems as error in the ErrTransport category.
func ReadResponse(data []byte) (*Response, error) {
	payload, err := readEnvelope(data)
	var fault *Fault
	if errors.As(err, &fault) {
		return nil, fault
	}
	if err != nil {
		return nil, core.WrapError(ErrTransport, err)
	}
	return &Response{element: payload}, nil
}

// Name returns the local name of the payload element.
func (r *Response) Name() string {
	return r.element.Tag
}

// Text returns the trimmed text content of the named child element, and whether the child is present.
func (r *Response) Text(name string) (string, bool) {
	child := r.element.SelectElement(name)
	if child == nil {
		return "", false
	}
	return strings.TrimSpace(child.Text()), true
}

// Child returns the named child element as Response, for reading nested complex elements.
func (r *Response) Child(name string) (*Response, bool) {
	child := r.element.SelectElement(name)
	if child == nil {
		return nil, false
	}
	return &Response{element: child}, true
}

// Decode unmarshals the element into v using encoding/xml.
func (r *Response) Decode(v interface{}) error {
	element := r.element.Copy()
	// keep namespace declarations of the ancestors, so prefixes stay resolvable
	for ancestor := r.element.Parent(); ancestor != nil; ancestor = ancestor.Parent() {
		for _, attr := range ancestor.Attr {
			if attr.Space != "xmlns" && !(attr.Space == "" && attr.Key == "xmlns") {
				continue
			}
			if element.SelectAttr(attr.FullKey()) == nil {
				element.CreateAttr(attr.FullKey(), attr.Value)
			}
		}
	}
	doc := etree.NewDocument()
	doc.SetRoot(element)
	data, err := doc.WriteToBytes()
	if err != nil {
		return err
	}
	return xml.Unmarshal(data, v)
}
