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
	"strconv"

	"github.com/beevik/etree"
)

const envelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

// payloadPrefix is the namespace prefix used for the request payload.
const payloadPrefix = "ns1"

// Param is a named parameter of a SOAP call.
// Value must be a string, bool, int, int64, fmt.Stringer or []Param (for complex elements). A nil Value yields an empty element.
type Param struct {
	Name  string
	Value interface{}
}

// buildEnvelope creates the SOAP 1.1 request for the given operation.
// When the only parameter is named like the input element itself, its value becomes the content of the input element.
// This is how operations with a simple-typed input element (e.g. Collect, taking an orderRef) are called.
func buildEnvelope(operation Operation, qualified bool, params []Param) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	envelope := doc.CreateElement("soapenv:Envelope")
	envelope.CreateAttr("xmlns:soapenv", envelopeNamespace)
	inputTag := operation.Input.Local
	if operation.Input.Space != "" {
		envelope.CreateAttr("xmlns:"+payloadPrefix, operation.Input.Space)
		inputTag = payloadPrefix + ":" + inputTag
	}
	envelope.CreateElement("soapenv:Header")
	body := envelope.CreateElement("soapenv:Body")
	input := body.CreateElement(inputTag)

	childPrefix := ""
	if qualified && operation.Input.Space != "" {
		childPrefix = payloadPrefix + ":"
	}
	var err error
	if len(params) == 1 && params[0].Name == operation.Input.Local {
		err = setValue(input, childPrefix, params[0])
	} else {
		err = setValue(input, childPrefix, Param{Name: operation.Input.Local, Value: params})
	}
	if err != nil {
		return nil, err
	}
	return doc.WriteToBytes()
}

func setValue(element *etree.Element, childPrefix string, param Param) error {
	switch value := param.Value.(type) {
	case nil:
	case string:
		element.SetText(value)
	case bool:
		element.SetText(strconv.FormatBool(value))
	case int:
		element.SetText(strconv.Itoa(value))
	case int64:
		element.SetText(strconv.FormatInt(value, 10))
	case fmt.Stringer:
		element.SetText(value.String())
	case []Param:
		for _, child := range value {
			if child.Name == "" {
				return fmt.Errorf("parameter of %s has no name", param.Name)
			}
			if err := setValue(element.CreateElement(childPrefix+child.Name), childPrefix, child); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported type %T of parameter %s", param.Value, param.Name)
	}
	return nil
}

// readEnvelope returns the first element of the SOAP body. If it's a fault, a *Fault is returned as error.
func readEnvelope(data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to parse SOAP response: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "Envelope" || root.NamespaceURI() != envelopeNamespace {
		return nil, errors.New("response is not a SOAP 1.1 envelope")
	}
	body := root.SelectElement("Body")
	if body == nil {
		return nil, errors.New("SOAP envelope has no body")
	}
	children := body.ChildElements()
	if len(children) == 0 {
		return nil, errors.New("SOAP body is empty")
	}
	payload := children[0]
	if payload.Tag == "Fault" && payload.NamespaceURI() == envelopeNamespace {
		return nil, parseFault(payload)
	}
	return payload, nil
}
