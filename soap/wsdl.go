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
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/nuts-foundation/nuts-bankid/core"
)

const (
	wsdlNamespace   = "http://schemas.xmlsoap.org/wsdl/"
	soap11Namespace = "http://schemas.xmlsoap.org/wsdl/soap/"
	schemaNamespace = "http://www.w3.org/2001/XMLSchema"
)

// ErrInvalidServiceDescription is returned when a WSDL document can't be used to call the service.
var ErrInvalidServiceDescription = errors.New("invalid service description")

// ServiceDescription holds the parts of a WSDL 1.1 document needed to call its SOAP 1.1 operations.
type ServiceDescription struct {
	// TargetNamespace is the targetNamespace of the WSDL definitions.
	TargetNamespace string
	// Location is the address of the SOAP 1.1 port.
	Location string
	// Operations maps operation name to operation.
	Operations map[string]Operation
	// qualified lists the schema namespaces that declare elementFormDefault="qualified".
	qualified map[string]bool
}

// Operation is a single document/literal operation of the service.
type Operation struct {
	Name string
	// Action is the value of the SOAPAction HTTP header.
	Action string
	// Input is the name of the element that makes up the request body.
	Input xml.Name
}

// Operation returns the operation with the given name.
func (d ServiceDescription) Operation(name string) (Operation, bool) {
	op, ok := d.Operations[name]
	return op, ok
}

// qualifiedChildren returns whether local elements in the given schema namespace carry the namespace.
func (d ServiceDescription) qualifiedChildren(namespace string) bool {
	return d.qualified[namespace]
}

// ParseServiceDescription parses a WSDL 1.1 document.
// Only operations exposed through a SOAP 1.1 binding are taken into account.
func ParseServiceDescription(data []byte) (*ServiceDescription, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, core.WrapError(ErrInvalidServiceDescription, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "definitions" || root.NamespaceURI() != wsdlNamespace {
		return nil, fmt.Errorf("%w: root element is not wsdl:definitions", ErrInvalidServiceDescription)
	}

	result := &ServiceDescription{
		TargetNamespace: root.SelectAttrValue("targetNamespace", ""),
		Operations:      map[string]Operation{},
		qualified:       map[string]bool{},
	}

	for _, schema := range root.FindElements("./types/schema") {
		if schema.NamespaceURI() != schemaNamespace {
			continue
		}
		if schema.SelectAttrValue("elementFormDefault", "unqualified") == "qualified" {
			result.qualified[schema.SelectAttrValue("targetNamespace", "")] = true
		}
	}

	// message name -> element of its (single) part
	messages := map[string]xml.Name{}
	for _, message := range root.SelectElements("message") {
		part := message.SelectElement("part")
		if part == nil {
			continue
		}
		element := part.SelectAttrValue("element", "")
		if element == "" {
			// rpc style parts (type="...") aren't supported
			continue
		}
		name, err := resolveQName(part, element)
		if err != nil {
			return nil, err
		}
		messages[message.SelectAttrValue("name", "")] = name
	}

	// operation name -> input element, taken from the portTypes
	inputs := map[string]xml.Name{}
	for _, portType := range root.SelectElements("portType") {
		for _, operation := range portType.SelectElements("operation") {
			input := operation.SelectElement("input")
			if input == nil {
				continue
			}
			messageName, err := resolveQName(input, input.SelectAttrValue("message", ""))
			if err != nil {
				return nil, err
			}
			element, ok := messages[messageName.Local]
			if !ok {
				return nil, fmt.Errorf("%w: message %s of operation %s is not defined", ErrInvalidServiceDescription, messageName.Local, operation.SelectAttrValue("name", ""))
			}
			inputs[operation.SelectAttrValue("name", "")] = element
		}
	}

	// SOAP 1.1 bindings give the operations their action
	soapBindings := map[string]bool{}
	for _, binding := range root.SelectElements("binding") {
		protocol := binding.SelectElement("binding")
		if protocol == nil || protocol.NamespaceURI() != soap11Namespace {
			continue
		}
		soapBindings[binding.SelectAttrValue("name", "")] = true
		for _, operation := range binding.SelectElements("operation") {
			name := operation.SelectAttrValue("name", "")
			input, ok := inputs[name]
			if !ok {
				return nil, fmt.Errorf("%w: binding operation %s has no matching portType operation", ErrInvalidServiceDescription, name)
			}
			action := ""
			if soapOperation := operation.SelectElement("operation"); soapOperation != nil {
				action = soapOperation.SelectAttrValue("soapAction", "")
			}
			result.Operations[name] = Operation{
				Name:   name,
				Action: action,
				Input:  input,
			}
		}
	}

	for _, port := range root.FindElements("./service/port") {
		bindingName, err := resolveQName(port, port.SelectAttrValue("binding", ""))
		if err != nil {
			return nil, err
		}
		address := port.SelectElement("address")
		if !soapBindings[bindingName.Local] || address == nil || address.NamespaceURI() != soap11Namespace {
			continue
		}
		result.Location = address.SelectAttrValue("location", "")
		break
	}

	if len(result.Operations) == 0 {
		return nil, fmt.Errorf("%w: no SOAP 1.1 operations found", ErrInvalidServiceDescription)
	}
	return result, nil
}

// resolveQName resolves a prefixed name (e.g. tns:SignRequest) using the namespace declarations in scope of the given element.
func resolveQName(scope *etree.Element, qname string) (xml.Name, error) {
	if qname == "" {
		return xml.Name{}, fmt.Errorf("%w: missing qualified name on %s", ErrInvalidServiceDescription, scope.Tag)
	}
	prefix, local := "", qname
	if idx := strings.IndexByte(qname, ':'); idx >= 0 {
		prefix, local = qname[:idx], qname[idx+1:]
	}
	for e := scope; e != nil; e = e.Parent() {
		for _, attr := range e.Attr {
			if (prefix == "" && attr.Space == "" && attr.Key == "xmlns") ||
				(prefix != "" && attr.Space == "xmlns" && attr.Key == prefix) {
				return xml.Name{Space: attr.Value, Local: local}, nil
			}
		}
	}
	if prefix == "" {
		return xml.Name{Local: local}, nil
	}
	return xml.Name{}, fmt.Errorf("%w: undeclared namespace prefix '%s'", ErrInvalidServiceDescription, prefix)
}
