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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Problem is a RFC 7807 problem, as returned by the API in case of an error.
type Problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// ParseProblem unmarshals a problem+json response body.
func ParseProblem(t *testing.T, data []byte) Problem {
	result := Problem{}
	require.NoError(t, json.Unmarshal(data, &result), "response body is not a problem: %s", string(data))
	return result
}

// AssertProblem asserts the response body is a problem with the given status code and title.
func AssertProblem(t *testing.T, data []byte, status int, title string) bool {
	prb := ParseProblem(t, data)
	return assert.Equal(t, status, prb.Status) && assert.Equal(t, title, prb.Title)
}
