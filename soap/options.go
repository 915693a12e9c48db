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
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nuts-foundation/nuts-bankid/soap/log"
)

// Options holds the transport options of a SOAP client, as key/value pairs.
// Keys are case-insensitive and underscores are ignored, so "connection_timeout" and "connectiontimeout" are the same option.
// Recognized options:
//   - location: overrides the service address from the service description.
//   - timeout: time limit for a complete call, as Go duration (e.g. 30s) or number of seconds.
//   - connectiontimeout: time limit for establishing the connection, as Go duration or number of seconds.
//   - encoding: character encoding of the messages, only UTF-8 is supported.
//   - useragent: User-Agent header sent with every request.
//   - keepalive: whether connections are reused (default true).
//
// Unrecognized options are ignored.
type Options map[string]string

const (
	optionLocation          = "location"
	optionTimeout           = "timeout"
	optionConnectionTimeout = "connectiontimeout"
	optionEncoding          = "encoding"
	optionUserAgent         = "useragent"
	optionKeepAlive         = "keepalive"
)

type transportOptions struct {
	location          string
	timeout           time.Duration
	connectionTimeout time.Duration
	userAgent         string
	keepAlive         bool
}

func (o Options) parse() (transportOptions, error) {
	result := transportOptions{
		keepAlive: true,
	}
	for key, value := range o {
		var err error
		switch normalizeOptionKey(key) {
		case optionLocation:
			result.location = value
		case optionTimeout:
			result.timeout, err = parseSeconds(value)
		case optionConnectionTimeout:
			result.connectionTimeout, err = parseSeconds(value)
		case optionEncoding:
			if !strings.EqualFold(value, "utf-8") && !strings.EqualFold(value, "utf8") {
				err = fmt.Errorf("only UTF-8 is supported, not '%s'", value)
			}
		case optionUserAgent:
			result.userAgent = value
		case optionKeepAlive:
			result.keepAlive, err = strconv.ParseBool(value)
		default:
			log.Logger().Warnf("Ignoring unknown SOAP transport option: %s", key)
		}
		if err != nil {
			return transportOptions{}, fmt.Errorf("invalid SOAP transport option '%s': %w", key, err)
		}
	}
	return result, nil
}

func normalizeOptionKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "")
}

// parseSeconds parses a Go duration, or a plain number which is interpreted as seconds.
func parseSeconds(value string) (time.Duration, error) {
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds > math.MaxInt64/float64(time.Second) {
			return 0, fmt.Errorf("duration out of range: %s", value)
		}
		if seconds < 0 {
			return 0, fmt.Errorf("negative duration: %s", value)
		}
		return time.Duration(seconds * float64(time.Second)), nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if duration < 0 {
		return 0, fmt.Errorf("negative duration: %s", value)
	}
	return duration, nil
}
