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

package soaptest

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(payload string) string {
	return `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:ns1="` + TypesNamespace + `">` +
		`<soapenv:Body>` + payload + `</soapenv:Body></soapenv:Envelope>`
}

func post(t *testing.T, server *Server, payload string) (int, *etree.Element) {
	request, err := http.NewRequest(http.MethodPost, server.ServiceURL(), strings.NewReader(envelope(payload)))
	require.NoError(t, err)
	request.Header.Set("Content-Type", "text/xml; charset=utf-8")
	request.Header.Set("SOAPAction", `"test"`)
	response, err := server.Client().Do(request)
	require.NoError(t, err)
	defer response.Body.Close()
	data, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	return response.StatusCode, doc.FindElement("/Envelope/Body/*")
}

func TestServer_ServiceDescription(t *testing.T) {
	server := New(t)

	response, err := http.Get(server.WSDLURL())
	require.NoError(t, err)
	defer response.Body.Close()
	data, _ := io.ReadAll(response.Body)

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, string(ServiceDescription(server.ServiceURL())), string(data))
}

func TestServer_UnknownPath(t *testing.T) {
	server := New(t)

	response, err := http.Get(server.URL + "/other")
	require.NoError(t, err)
	_ = response.Body.Close()

	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestServer_DefaultHandler(t *testing.T) {
	server := New(t)

	status, order := post(t, server, `<ns1:AuthenticateRequest><ns1:personalNumber>199001011234</ns1:personalNumber></ns1:AuthenticateRequest>`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "OrderResponse", order.Tag)
	orderRef := order.SelectElement("orderRef").Text()
	assert.NotEmpty(t, orderRef)
	assert.NotEmpty(t, order.SelectElement("autoStartToken").Text())

	var statuses []string
	for i := 0; i < 3; i++ {
		status, collected := post(t, server, `<ns1:orderRef>`+orderRef+`</ns1:orderRef>`)
		require.Equal(t, http.StatusOK, status)
		statuses = append(statuses, collected.SelectElement("progressStatus").Text())
		if i == 2 {
			assert.Equal(t, "199001011234", collected.FindElement("userInfo/personalNumber").Text())
			assert.NotNil(t, collected.SelectElement("signature"))
			assert.NotNil(t, collected.SelectElement("ocspResponse"))
		}
	}
	assert.Equal(t, []string{StatusOutstandingTransaction, StatusUserSign, StatusComplete}, statuses)

	t.Run("requests are recorded", func(t *testing.T) {
		requests := server.Requests()
		require.Len(t, requests, 4)
		assert.Equal(t, "Authenticate", requests[0].Operation)
		assert.Equal(t, "199001011234", requests[0].Fields["personalNumber"])
		assert.Equal(t, `"test"`, requests[0].SOAPAction)
		assert.Equal(t, "Collect", server.LastRequest().Operation)
		assert.Equal(t, orderRef, server.LastRequest().Fields["orderRef"])
		assert.Equal(t, int64(4), server.CallCount())
	})
	t.Run("unknown orderRef", func(t *testing.T) {
		status, fault := post(t, server, `<ns1:orderRef>unknown</ns1:orderRef>`)

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Fault", fault.Tag)
		assert.Equal(t, "INVALID_PARAMETERS", fault.FindElement("detail/RpFault/faultStatus").Text())
	})
}

func TestServer_Handle(t *testing.T) {
	server := New(t)
	server.Handle("Sign", func(request Request) Reply {
		return FaultReply("ALREADY_IN_PROGRESS", "order for "+request.Fields["personalNumber"])
	})

	status, fault := post(t, server, `<ns1:SignRequest><ns1:personalNumber>199001011234</ns1:personalNumber><ns1:userVisibleData>dGV4dA==</ns1:userVisibleData></ns1:SignRequest>`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "ALREADY_IN_PROGRESS", fault.FindElement("detail/RpFault/faultStatus").Text())
	assert.Equal(t, "order for 199001011234", fault.FindElement("detail/RpFault/detailedDescription").Text())
	assert.Equal(t, "dGV4dA==", server.LastRequest().Fields["userVisibleData"])
}

func TestServer_TLS(t *testing.T) {
	server := NewTLS(t)

	status, order := post(t, server, `<ns1:SignRequest><ns1:personalNumber>199001011234</ns1:personalNumber></ns1:SignRequest>`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OrderResponse", order.Tag)
	assert.True(t, strings.HasPrefix(server.ServiceURL(), "https://"))
}

func TestEnvelope(t *testing.T) {
	t.Run("body", func(t *testing.T) {
		assert.Equal(t, "raw", string(Envelope(Reply{Body: "raw", Fault: &Fault{}})))
	})
	t.Run("nested fields", func(t *testing.T) {
		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromBytes(Envelope(CompleteReply("199001011234"))))

		payload := doc.FindElement("/Envelope/Body/CollectResponse")
		require.NotNil(t, payload)
		assert.Equal(t, TypesNamespace, payload.NamespaceURI())
		assert.Equal(t, "Agda Andersson", payload.FindElement("userInfo/name").Text())
	})
}
