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

package bankid

import (
	"net/url"
	"strings"
)

// ProgressStatus is the state of an order as reported by Collect.
// Values other than the constants below are passed through as-is.
type ProgressStatus string

const (
	// OutstandingTransaction means the order is being processed, but the user hasn't started the BankID app yet.
	OutstandingTransaction ProgressStatus = "OUTSTANDING_TRANSACTION"
	// NoClient means the order is being processed, but the BankID app hasn't been found yet.
	NoClient ProgressStatus = "NO_CLIENT"
	// Started means the user started the BankID app, but no suitable ID was found yet.
	Started ProgressStatus = "STARTED"
	// UserSign means the BankID app is waiting for the user to sign.
	UserSign ProgressStatus = "USER_SIGN"
	// UserReq means the BankID app is waiting for a user action.
	UserReq ProgressStatus = "USER_REQ"
	// Complete means the user signed or authenticated, the result holds the completion data.
	Complete ProgressStatus = "COMPLETE"
)

// IsComplete returns whether the status is the completion status. The comparison ignores case.
func (s ProgressStatus) IsComplete() bool {
	return strings.EqualFold(string(s), string(Complete))
}

// OrderHandle identifies a started sign or authentication order.
type OrderHandle struct {
	// OrderRef is used to collect the result of the order.
	OrderRef string `json:"orderRef" yaml:"orderRef"`
	// AutoStartToken is used to launch the BankID app of the user.
	AutoStartToken string `json:"autoStartToken" yaml:"autoStartToken"`
}

// AutoStartURL returns the URL that launches the BankID app for the order.
func (h OrderHandle) AutoStartURL() string {
	return "bankid:///?autostarttoken=" + url.QueryEscape(h.AutoStartToken)
}

// CollectResult is the state of an order.
// UserInfo, Signature and OCSPResponse are all set if ProgressStatus is Complete, and all empty otherwise.
type CollectResult struct {
	ProgressStatus ProgressStatus `json:"progressStatus" yaml:"progressStatus"`
	UserInfo       *UserInfo      `json:"userInfo,omitempty" yaml:"userInfo,omitempty"`
	Signature      string         `json:"signature,omitempty" yaml:"signature,omitempty"`
	OCSPResponse   string         `json:"ocspResponse,omitempty" yaml:"ocspResponse,omitempty"`
}

// UserInfo identifies the user that completed the order.
type UserInfo struct {
	GivenName      string `xml:"givenName" json:"givenName" yaml:"givenName"`
	Surname        string `xml:"surname" json:"surname" yaml:"surname"`
	Name           string `xml:"name" json:"name" yaml:"name"`
	PersonalNumber string `xml:"personalNumber" json:"personalNumber" yaml:"personalNumber"`
	NotBefore      string `xml:"notBefore" json:"notBefore" yaml:"notBefore"`
	NotAfter       string `xml:"notAfter" json:"notAfter" yaml:"notAfter"`
	IPAddress      string `xml:"ipAddress" json:"ipAddress" yaml:"ipAddress"`
}
