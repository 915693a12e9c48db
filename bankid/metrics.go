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
	"context"
	"fmt"

	"github.com/nuts-foundation/nuts-bankid/core"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK     = "ok"
	outcomeAbsent = "absent"
	outcomeError  = "error"
)

func newCallsCounter(registerer prometheus.Registerer) (*prometheus.CounterVec, error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nuts",
		Subsystem: "bankid",
		Name:      "calls_total",
		Help:      "Number of calls to the BankID service, by operation and outcome (ok, absent or error).",
	}, []string{"operation", "outcome"})
	registered, err := core.RegisterCollector(registerer, counter)
	if err != nil {
		return nil, err
	}
	result, ok := registered.(*prometheus.CounterVec)
	if !ok {
		return nil, fmt.Errorf("metric nuts_bankid_calls_total is registered with another type (%T)", registered)
	}
	return result, nil
}

// instrumentedClient counts the calls to a SessionClient.
type instrumentedClient struct {
	next  SessionClient
	calls *prometheus.CounterVec
}

func (i instrumentedClient) StartSign(ctx context.Context, personalNumber string, userVisibleData []byte) (OrderHandle, error) {
	result, err := i.next.StartSign(ctx, personalNumber, userVisibleData)
	i.observe(operationSign, true, err)
	return result, err
}

func (i instrumentedClient) StartAuth(ctx context.Context, personalNumber string) (*OrderHandle, error) {
	result, err := i.next.StartAuth(ctx, personalNumber)
	i.observe(operationAuthenticate, result != nil, err)
	return result, err
}

func (i instrumentedClient) Collect(ctx context.Context, orderRef string) (*CollectResult, error) {
	result, err := i.next.Collect(ctx, orderRef)
	i.observe(operationCollect, result != nil, err)
	return result, err
}

func (i instrumentedClient) observe(operation string, present bool, err error) {
	outcome := outcomeOK
	switch {
	case err != nil:
		outcome = outcomeError
	case !present:
		outcome = outcomeAbsent
	}
	i.calls.WithLabelValues(operation, outcome).Inc()
}
