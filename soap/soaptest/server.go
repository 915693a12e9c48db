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

// Package soaptest provides an in-process fake of the BankID relying party SOAP service, for testing.
package soaptest

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

const envelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

// Progress statuses returned by the default Collect handler.
const (
	StatusOutstandingTransaction = "OUTSTANDING_TRANSACTION"
	StatusUserSign               = "USER_SIGN"
	StatusComplete               = "COMPLETE"
)

// Request is a SOAP request received by the Server.
type Request struct {
	// Operation is derived from the payload element: Sign, Authenticate or Collect.
	Operation   string
	SOAPAction  string
	ContentType string
	UserAgent   string
	// Fields holds the text of the leaf elements of the payload, by local name.
	Fields map[string]string
	// Body is the raw request body.
	Body []byte
}

// Field is an element of a reply payload. Either Value or Fields is used.
type Field struct {
	Name   string
	Value  string
	Fields []Field
}

// Text creates a simple Field.
func Text(name, value string) Field {
	return Field{Name: name, Value: value}
}

// Complex creates a Field containing other fields.
func Complex(name string, fields ...Field) Field {
	return Field{Name: name, Fields: fields}
}

// Fault is a BankID RpFault.
type Fault struct {
	Status      string
	Description string
}

// Reply describes the response to a request.
type Reply struct {
	// Name is the local name of the response element (e.g. OrderResponse).
	Name   string
	Fields []Field
	// Fault makes the reply a SOAP fault (HTTP 500), Name and Fields are ignored.
	Fault *Fault
	// StatusCode overrides the HTTP status code.
	StatusCode int
	// Body, when set, is sent as-is instead of a SOAP envelope.
	Body string
}

// OrderReply creates the reply of a Sign or Authenticate request.
func OrderReply(orderRef, autoStartToken string) Reply {
	return Reply{Name: "OrderResponse", Fields: []Field{Text("orderRef", orderRef), Text("autoStartToken", autoStartToken)}}
}

// FaultReply creates a reply with a BankID RpFault.
func FaultReply(status, description string) Reply {
	return Reply{Fault: &Fault{Status: status, Description: description}}
}

// Handler produces the reply for a request.
type Handler func(request Request) Reply

// Server is a fake BankID relying party service.
// Unless overridden with Handle, Sign and Authenticate start an order and Collect reports
// OUTSTANDING_TRANSACTION, USER_SIGN and then COMPLETE for it on subsequent calls.
type Server struct {
	*httptest.Server
	calls    *atomic.Int64
	mux      sync.Mutex
	requests []Request
	handlers map[string]Handler
	orders   map[string]*order
}

type order struct {
	personalNumber string
	polls          int
}

// New starts a fake service over plain HTTP. It's closed when the test ends.
func New(t testing.TB) *Server {
	server := newServer()
	server.Server = httptest.NewServer(server)
	t.Cleanup(server.Close)
	return server
}

// NewTLS starts a fake service over HTTPS, using a self-signed certificate. It's closed when the test ends.
func NewTLS(t testing.TB) *Server {
	server := newServer()
	server.Server = httptest.NewTLSServer(server)
	t.Cleanup(server.Close)
	return server
}

func newServer() *Server {
	return &Server{
		calls:    atomic.NewInt64(0),
		handlers: map[string]Handler{},
		orders:   map[string]*order{},
	}
}

// WSDLURL returns the address the service description is published on.
func (s *Server) WSDLURL() string {
	return s.URL + ServicePath + "?wsdl"
}

// ServiceURL returns the address SOAP requests are sent to.
func (s *Server) ServiceURL() string {
	return s.URL + ServicePath
}

// Handle overrides the handler of an operation.
func (s *Server) Handle(operation string, handler Handler) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.handlers[operation] = handler
}

// Requests returns the SOAP requests received so far.
func (s *Server) Requests() []Request {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]Request{}, s.requests...)
}

// LastRequest returns the last SOAP request received, or an empty Request if none were received.
func (s *Server) LastRequest() Request {
	requests := s.Requests()
	if len(requests) == 0 {
		return Request{}
	}
	return requests[len(requests)-1]
}

// CallCount returns the number of SOAP requests received.
func (s *Server) CallCount() int64 {
	return s.calls.Load()
}

func (s *Server) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if !strings.HasPrefix(request.URL.Path, ServicePath) {
		http.NotFound(writer, request)
		return
	}
	switch request.Method {
	case http.MethodGet:
		writer.Header().Set("Content-Type", "text/xml; charset=utf-8")
		_, _ = writer.Write(ServiceDescription(s.ServiceURL()))
	case http.MethodPost:
		s.handleCall(writer, request)
	default:
		writer.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCall(writer http.ResponseWriter, httpRequest *http.Request) {
	s.calls.Inc()
	body, _ := io.ReadAll(httpRequest.Body)
	request, err := parseRequest(body)
	if err != nil {
		writeReply(writer, Reply{Fault: &Fault{Status: "INVALID_PARAMETERS", Description: err.Error()}})
		return
	}
	request.SOAPAction = httpRequest.Header.Get("SOAPAction")
	request.ContentType = httpRequest.Header.Get("Content-Type")
	request.UserAgent = httpRequest.Header.Get("User-Agent")

	s.mux.Lock()
	s.requests = append(s.requests, request)
	handler, ok := s.handlers[request.Operation]
	s.mux.Unlock()
	if !ok {
		handler = s.defaultHandler
	}
	writeReply(writer, handler(request))
}

func (s *Server) defaultHandler(request Request) Reply {
	s.mux.Lock()
	defer s.mux.Unlock()
	switch request.Operation {
	case "Sign", "Authenticate":
		orderRef := uuid.NewString()
		s.orders[orderRef] = &order{personalNumber: request.Fields["personalNumber"]}
		return OrderReply(orderRef, uuid.NewString())
	case "Collect":
		current, ok := s.orders[request.Fields["orderRef"]]
		if !ok {
			return FaultReply("INVALID_PARAMETERS", "unknown orderRef")
		}
		current.polls++
		switch current.polls {
		case 1:
			return Reply{Name: "CollectResponse", Fields: []Field{Text("progressStatus", StatusOutstandingTransaction)}}
		case 2:
			return Reply{Name: "CollectResponse", Fields: []Field{Text("progressStatus", StatusUserSign)}}
		}
		return CompleteReply(current.personalNumber)
	}
	return FaultReply("INTERNAL_ERROR", "unsupported operation")
}

// CompleteReply creates a Collect reply for a completed order of the given person.
func CompleteReply(personalNumber string) Reply {
	return Reply{
		Name: "CollectResponse",
		Fields: []Field{
			Text("progressStatus", StatusComplete),
			Text("signature", "PD94bWwgdmVyc2lvbj0iMS4wIj8+PFNpZ25hdHVyZS8+"),
			Complex("userInfo",
				Text("givenName", "Agda"),
				Text("surname", "Andersson"),
				Text("name", "Agda Andersson"),
				Text("personalNumber", personalNumber),
				Text("notBefore", "2024-01-01T00:00:00.000+01:00"),
				Text("notAfter", "2026-01-01T00:00:00.000+01:00"),
				Text("ipAddress", "192.0.2.10"),
			),
			Text("ocspResponse", "MIIHfgoBAKCCB3cwggdzBgkrBgEFBQcwAQEEggdkMIIHYDCC"),
		},
	}
}

var payloadOperations = map[string]string{
	"SignRequest":         "Sign",
	"AuthenticateRequest": "Authenticate",
	"orderRef":            "Collect",
}

func parseRequest(body []byte) (Request, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return Request{}, err
	}
	payload := doc.FindElement("/Envelope/Body/*")
	if payload == nil {
		return Request{}, errMissingPayload
	}
	result := Request{
		Operation: payloadOperations[payload.Tag],
		Fields:    map[string]string{},
		Body:      body,
	}
	collectFields(payload, result.Fields)
	return result, nil
}

func collectFields(element *etree.Element, fields map[string]string) {
	children := element.ChildElements()
	if len(children) == 0 {
		fields[element.Tag] = element.Text()
		return
	}
	for _, child := range children {
		collectFields(child, fields)
	}
}

func writeReply(writer http.ResponseWriter, reply Reply) {
	writer.Header().Set("Content-Type", "text/xml; charset=utf-8")
	status := http.StatusOK
	if reply.Fault != nil && reply.Body == "" {
		status = http.StatusInternalServerError
	}
	writer.WriteHeader(statusCode(reply, status))
	_, _ = writer.Write(Envelope(reply))
}

// Envelope returns the SOAP envelope of the reply (or its Body, when set).
func Envelope(reply Reply) []byte {
	if reply.Body != "" {
		return []byte(reply.Body)
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	envelope := doc.CreateElement("S:Envelope")
	envelope.CreateAttr("xmlns:S", envelopeNamespace)
	envelope.CreateAttr("xmlns:ns2", TypesNamespace)
	body := envelope.CreateElement("S:Body")
	if reply.Fault != nil {
		fault := body.CreateElement("S:Fault")
		fault.CreateElement("faultcode").SetText("S:Server")
		fault.CreateElement("faultstring").SetText(reply.Fault.Status)
		rpFault := fault.CreateElement("detail").CreateElement("ns2:RpFault")
		rpFault.CreateElement("ns2:faultStatus").SetText(reply.Fault.Status)
		rpFault.CreateElement("ns2:detailedDescription").SetText(reply.Fault.Description)
	} else {
		writeFields(body.CreateElement("ns2:"+reply.Name), reply.Fields)
	}
	data, _ := doc.WriteToBytes()
	return data
}

func writeFields(parent *etree.Element, fields []Field) {
	for _, field := range fields {
		element := parent.CreateElement("ns2:" + field.Name)
		if len(field.Fields) > 0 {
			writeFields(element, field.Fields)
		} else {
			element.SetText(field.Value)
		}
	}
}

func statusCode(reply Reply, fallback int) int {
	if reply.StatusCode != 0 {
		return reply.StatusCode
	}
	return fallback
}

var errMissingPayload = errors.New("SOAP body has no payload")
