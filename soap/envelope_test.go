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
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseElement(t *testing.T, data string) *etree.Element {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(data))
	return doc.Root()
}

type stringer string

func (s stringer) String() string {
	return string(s)
}

func TestBuildEnvelope(t *testing.T) {
	sign := Operation{Name: "Sign", Input: xml.Name{Space: "urn:types", Local: "SignRequest"}}

	t.Run("qualified complex input", func(t *testing.T) {
		data, err := buildEnvelope(sign, true, []Param{{Name: "personalNumber", Value: "199001011234"}, {Name: "userVisibleData", Value: "SGk="}})

		require.NoError(t, err)
		envelope := mustParseElement(t, string(data))
		assert.Equal(t, envelopeNamespace, envelope.NamespaceURI())
		input := envelope.FindElement("./Body/SignRequest")
		require.NotNil(t, input)
		assert.Equal(t, "urn:types", input.NamespaceURI())
		children := input.ChildElements()
		require.Len(t, children, 2)
		assert.Equal(t, "personalNumber", children[0].Tag)
		assert.Equal(t, "urn:types", children[0].NamespaceURI())
		assert.Equal(t, "199001011234", children[0].Text())
		assert.Equal(t, "userVisibleData", children[1].Tag)
	})
	t.Run("unqualified children", func(t *testing.T) {
		data, err := buildEnvelope(sign, false, []Param{{Name: "personalNumber", Value: "199001011234"}})

		require.NoError(t, err)
		child := mustParseElement(t, string(data)).FindElement("./Body/SignRequest/personalNumber")
		require.NotNil(t, child)
		assert.Equal(t, "", child.NamespaceURI())
	})
	t.Run("simple-content input", func(t *testing.T) {
		collect := Operation{Name: "Collect", Input: xml.Name{Space: "urn:types", Local: "orderRef"}}

		data, err := buildEnvelope(collect, true, []Param{{Name: "orderRef", Value: "abc123"}})

		require.NoError(t, err)
		input := mustParseElement(t, string(data)).FindElement("./Body/orderRef")
		require.NotNil(t, input)
		assert.Equal(t, "abc123", input.Text())
		assert.Empty(t, input.ChildElements())
	})
	t.Run("value types", func(t *testing.T) {
		data, err := buildEnvelope(sign, false, []Param{
			{Name: "bool", Value: true},
			{Name: "int", Value: 5},
			{Name: "int64", Value: int64(6)},
			{Name: "stringer", Value: stringer("s")},
			{Name: "nil"},
			{Name: "nested", Value: []Param{{Name: "inner", Value: "i"}}},
		})

		require.NoError(t, err)
		input := mustParseElement(t, string(data)).FindElement("./Body/SignRequest")
		assert.Equal(t, "true", input.SelectElement("bool").Text())
		assert.Equal(t, "5", input.SelectElement("int").Text())
		assert.Equal(t, "6", input.SelectElement("int64").Text())
		assert.Equal(t, "s", input.SelectElement("stringer").Text())
		assert.Equal(t, "", input.SelectElement("nil").Text())
		assert.Equal(t, "i", input.FindElement("./nested/inner").Text())
	})
	t.Run("unsupported type", func(t *testing.T) {
		_, err := buildEnvelope(sign, false, []Param{{Name: "data", Value: []byte("x")}})

		assert.EqualError(t, err, "unsupported type []uint8 of parameter data")
	})
	t.Run("unnamed parameter", func(t *testing.T) {
		_, err := buildEnvelope(sign, false, []Param{{Value: "x"}})

		assert.EqualError(t, err, "parameter of SignRequest has no name")
	})
}

func TestReadEnvelope(t *testing.T) {
	t.Run("payload", func(t *testing.T) {
		payload, err := readEnvelope([]byte(`<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/"><S:Body><ns2:OrderResponse xmlns:ns2="urn:types"/></S:Body></S:Envelope>`))

		require.NoError(t, err)
		assert.Equal(t, "OrderResponse", payload.Tag)
	})
	t.Run("fault", func(t *testing.T) {
		const data = `<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/"><S:Body><S:Fault>
<faultcode>S:Server</faultcode><faultstring>ALREADY_IN_PROGRESS</faultstring>
<detail><ns2:RpFault xmlns:ns2="urn:types"><ns2:faultStatus>ALREADY_IN_PROGRESS</ns2:faultStatus><ns2:detailedDescription>Order already in progress</ns2:detailedDescription></ns2:RpFault></detail>
</S:Fault></S:Body></S:Envelope>`

		_, err := readEnvelope([]byte(data))

		var fault *Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, Fault{Code: "S:Server", String: "ALREADY_IN_PROGRESS", Status: "ALREADY_IN_PROGRESS", Description: "Order already in progress"}, *fault)
		assert.ErrorIs(t, err, ErrTransport)
		assert.EqualError(t, err, "SOAP fault (code=S:Server, status=ALREADY_IN_PROGRESS): Order already in progress")
	})
	t.Run("fault without detail", func(t *testing.T) {
		_, err := readEnvelope([]byte(`<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/"><S:Body><S:Fault><faultcode>S:Client</faultcode><faultstring>bad</faultstring></S:Fault></S:Body></S:Envelope>`))

		assert.EqualError(t, err, "SOAP fault (code=S:Client): bad")
	})
	t.Run("SOAP 1.2 envelope", func(t *testing.T) {
		_, err := readEnvelope([]byte(`<S:Envelope xmlns:S="http://www.w3.org/2003/05/soap-envelope"><S:Body/></S:Envelope>`))

		assert.EqualError(t, err, "response is not a SOAP 1.1 envelope")
	})
	t.Run("no body", func(t *testing.T) {
		_, err := readEnvelope([]byte(`<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/"/>`))

		assert.EqualError(t, err, "SOAP envelope has no body")
	})
	t.Run("empty body", func(t *testing.T) {
		_, err := readEnvelope([]byte(`<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/"><S:Body/></S:Envelope>`))

		assert.EqualError(t, err, "SOAP body is empty")
	})
	t.Run("not XML", func(t *testing.T) {
		_, err := readEnvelope([]byte(`<<not XML`))

		assert.ErrorContains(t, err, "unable to parse SOAP response")
	})
}
