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

import "strings"

const (
	// ServicePath is the path the fake service is served on.
	ServicePath = "/rp/v4"
	// ServiceNamespace is the target namespace of the service description.
	ServiceNamespace = "http://bankid.com/RpService/v4.0.0/"
	// TypesNamespace is the namespace of the request and response elements.
	TypesNamespace = "http://bankid.com/RpService/v4.0.0/types/"
)

const locationPlaceholder = "{{location}}"

// wsdlTemplate is a reduced BankID relying party service description (document/literal, SOAP 1.1 and 1.2 bindings).
const wsdlTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<wsdl:definitions name="RpService"
                  targetNamespace="http://bankid.com/RpService/v4.0.0/"
                  xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/"
                  xmlns:soap="http://schemas.xmlsoap.org/wsdl/soap/"
                  xmlns:soap12="http://schemas.xmlsoap.org/wsdl/soap12/"
                  xmlns:tns="http://bankid.com/RpService/v4.0.0/"
                  xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <wsdl:types>
    <xs:schema targetNamespace="http://bankid.com/RpService/v4.0.0/types/"
               xmlns:types="http://bankid.com/RpService/v4.0.0/types/"
               elementFormDefault="qualified">
      <xs:element name="SignRequest">
        <xs:complexType>
          <xs:sequence>
            <xs:element name="personalNumber" type="xs:string" minOccurs="0"/>
            <xs:element name="userVisibleData" type="xs:string"/>
            <xs:element name="userNonVisibleData" type="xs:string" minOccurs="0"/>
          </xs:sequence>
        </xs:complexType>
      </xs:element>
      <xs:element name="AuthenticateRequest">
        <xs:complexType>
          <xs:sequence>
            <xs:element name="personalNumber" type="xs:string" minOccurs="0"/>
          </xs:sequence>
        </xs:complexType>
      </xs:element>
      <xs:element name="orderRef" type="xs:string"/>
      <xs:element name="OrderResponse">
        <xs:complexType>
          <xs:sequence>
            <xs:element name="orderRef" type="xs:string"/>
            <xs:element name="autoStartToken" type="xs:string"/>
          </xs:sequence>
        </xs:complexType>
      </xs:element>
      <xs:element name="CollectResponse">
        <xs:complexType>
          <xs:sequence>
            <xs:element name="progressStatus" type="xs:string"/>
            <xs:element name="signature" type="xs:string" minOccurs="0"/>
            <xs:element name="userInfo" type="types:UserInfoType" minOccurs="0"/>
            <xs:element name="ocspResponse" type="xs:string" minOccurs="0"/>
          </xs:sequence>
        </xs:complexType>
      </xs:element>
      <xs:complexType name="UserInfoType">
        <xs:sequence>
          <xs:element name="givenName" type="xs:string"/>
          <xs:element name="surname" type="xs:string"/>
          <xs:element name="name" type="xs:string"/>
          <xs:element name="personalNumber" type="xs:string"/>
          <xs:element name="notBefore" type="xs:dateTime"/>
          <xs:element name="notAfter" type="xs:dateTime"/>
          <xs:element name="ipAddress" type="xs:string"/>
        </xs:sequence>
      </xs:complexType>
      <xs:element name="RpFault">
        <xs:complexType>
          <xs:sequence>
            <xs:element name="faultStatus" type="xs:string"/>
            <xs:element name="detailedDescription" type="xs:string"/>
          </xs:sequence>
        </xs:complexType>
      </xs:element>
    </xs:schema>
  </wsdl:types>
  <wsdl:message name="SignRequest">
    <wsdl:part name="parameters" element="types:SignRequest" xmlns:types="http://bankid.com/RpService/v4.0.0/types/"/>
  </wsdl:message>
  <wsdl:message name="AuthenticateRequest">
    <wsdl:part name="parameters" element="types:AuthenticateRequest" xmlns:types="http://bankid.com/RpService/v4.0.0/types/"/>
  </wsdl:message>
  <wsdl:message name="CollectRequest">
    <wsdl:part name="parameters" element="types:orderRef" xmlns:types="http://bankid.com/RpService/v4.0.0/types/"/>
  </wsdl:message>
  <wsdl:message name="OrderResponse">
    <wsdl:part name="parameters" element="types:OrderResponse" xmlns:types="http://bankid.com/RpService/v4.0.0/types/"/>
  </wsdl:message>
  <wsdl:message name="CollectResponse">
    <wsdl:part name="parameters" element="types:CollectResponse" xmlns:types="http://bankid.com/RpService/v4.0.0/types/"/>
  </wsdl:message>
  <wsdl:portType name="RpServicePortType">
    <wsdl:operation name="Sign">
      <wsdl:input message="tns:SignRequest"/>
      <wsdl:output message="tns:OrderResponse"/>
    </wsdl:operation>
    <wsdl:operation name="Authenticate">
      <wsdl:input message="tns:AuthenticateRequest"/>
      <wsdl:output message="tns:OrderResponse"/>
    </wsdl:operation>
    <wsdl:operation name="Collect">
      <wsdl:input message="tns:CollectRequest"/>
      <wsdl:output message="tns:CollectResponse"/>
    </wsdl:operation>
  </wsdl:portType>
  <wsdl:binding name="RpServiceSoap12Binding" type="tns:RpServicePortType">
    <soap12:binding style="document" transport="http://schemas.xmlsoap.org/soap/http"/>
    <wsdl:operation name="Sign">
      <soap12:operation soapAction="Sign12" style="document"/>
    </wsdl:operation>
  </wsdl:binding>
  <wsdl:binding name="RpServiceSoapBinding" type="tns:RpServicePortType">
    <soap:binding style="document" transport="http://schemas.xmlsoap.org/soap/http"/>
    <wsdl:operation name="Sign">
      <soap:operation soapAction="http://bankid.com/RpService/v4.0.0/Sign" style="document"/>
      <wsdl:input><soap:body use="literal"/></wsdl:input>
      <wsdl:output><soap:body use="literal"/></wsdl:output>
    </wsdl:operation>
    <wsdl:operation name="Authenticate">
      <soap:operation soapAction="http://bankid.com/RpService/v4.0.0/Authenticate" style="document"/>
      <wsdl:input><soap:body use="literal"/></wsdl:input>
      <wsdl:output><soap:body use="literal"/></wsdl:output>
    </wsdl:operation>
    <wsdl:operation name="Collect">
      <soap:operation soapAction="http://bankid.com/RpService/v4.0.0/Collect" style="document"/>
      <wsdl:input><soap:body use="literal"/></wsdl:input>
      <wsdl:output><soap:body use="literal"/></wsdl:output>
    </wsdl:operation>
  </wsdl:binding>
  <wsdl:service name="RpService">
    <wsdl:port name="RpServiceSoap12" binding="tns:RpServiceSoap12Binding">
      <soap12:address location="{{location}}12"/>
    </wsdl:port>
    <wsdl:port name="RpServiceSoap" binding="tns:RpServiceSoapBinding">
      <soap:address location="{{location}}"/>
    </wsdl:port>
  </wsdl:service>
</wsdl:definitions>
`

// ServiceDescription returns the WSDL of the fake service with the given service address.
func ServiceDescription(location string) []byte {
	return []byte(strings.ReplaceAll(wsdlTemplate, locationPlaceholder, location))
}
