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

package test

import (
	"fmt"
	"path"
)

// GetIntegrationTestConfig returns the config for running the server in a test, calling the BankID service with the given WSDL location.
func GetIntegrationTestConfig(testDirectory string, wsdlLocation string) map[string]string {
	httpAddress := fmt.Sprintf("localhost:%d", FreeTCPPort())
	return map[string]string{
		"configfile":      path.Join(testDirectory, "nuts.yaml"), // does not exist, but that's okay: default config
		"strictmode":      "false",
		"http.address":    httpAddress,
		"bankid.endpoint": wsdlLocation,
	}
}
