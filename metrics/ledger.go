// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/optakt/sol-transactor/failure"
	"github.com/optakt/sol-transactor/ledger"
)

const namespace = "sol"

// Names of the instrumented ledger methods, used as label values.
const (
	MethodBalance   = "balance"
	MethodBlockhash = "blockhash"
	MethodFee       = "fee"
	MethodAirdrop   = "airdrop"
	MethodSubmit    = "submit"
	MethodConfirm   = "confirm"
)

// Outcomes of a ledger request, used as label values.
const (
	OutcomeSuccess   = "success"
	OutcomeNetwork   = "network"
	OutcomeRejected  = "rejected"
	OutcomeRateLimit = "rate_limit"
	OutcomeNotFound  = "not_found"
	OutcomeTimeout   = "timeout"
	OutcomeOther     = "other"
)

// Ledger is the set of ledger client methods that can be instrumented.
type Ledger interface {
	Balance(ctx context.Context, address solana.PublicKey) (uint64, error)
	LatestBlockhash(ctx context.Context) (ledger.Blockhash, error)
	Fee(ctx context.Context, message *solana.Message) (uint64, error)
	Airdrop(ctx context.Context, address solana.PublicKey, amount uint64) (solana.Signature, error)
	Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	Confirm(ctx context.Context, signature solana.Signature) error
}

// MetricsLedger wraps a ledger client and records the number, outcome and
// duration of the requests it makes.
type MetricsLedger struct {
	ledger   Ledger
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	lamports *prometheus.CounterVec
}

// NewMetricsLedger instruments the given ledger client and registers its
// metrics with the registerer.
func NewMetricsLedger(ledger Ledger, reg prometheus.Registerer) *MetricsLedger {
	factory := promauto.With(reg)

	requestsOpts := prometheus.CounterOpts{
		Name:      "ledger_requests_total",
		Namespace: namespace,
		Help:      "number of ledger requests by method and outcome",
	}
	requests := factory.NewCounterVec(requestsOpts, []string{"method", "outcome"})

	durationOpts := prometheus.HistogramOpts{
		Name:      "ledger_request_duration_seconds",
		Namespace: namespace,
		Help:      "duration of ledger requests by method",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}
	duration := factory.NewHistogramVec(durationOpts, []string{"method"})

	lamportsOpts := prometheus.CounterOpts{
		Name:      "ledger_fees_lamports_total",
		Namespace: namespace,
		Help:      "lamports quoted as fees by the ledger",
	}
	lamports := factory.NewCounterVec(lamportsOpts, []string{"method"})

	m := MetricsLedger{
		ledger:   ledger,
		requests: requests,
		duration: duration,
		lamports: lamports,
	}

	return &m
}

func (m *MetricsLedger) Balance(ctx context.Context, address solana.PublicKey) (uint64, error) {
	defer m.observe(MethodBalance, time.Now())
	balance, err := m.ledger.Balance(ctx, address)
	m.count(MethodBalance, err)
	return balance, err
}

func (m *MetricsLedger) LatestBlockhash(ctx context.Context) (ledger.Blockhash, error) {
	defer m.observe(MethodBlockhash, time.Now())
	blockhash, err := m.ledger.LatestBlockhash(ctx)
	m.count(MethodBlockhash, err)
	return blockhash, err
}

func (m *MetricsLedger) Fee(ctx context.Context, message *solana.Message) (uint64, error) {
	defer m.observe(MethodFee, time.Now())
	fee, err := m.ledger.Fee(ctx, message)
	m.count(MethodFee, err)
	if err == nil {
		m.lamports.WithLabelValues(MethodFee).Add(float64(fee))
	}
	return fee, err
}

func (m *MetricsLedger) Airdrop(ctx context.Context, address solana.PublicKey, amount uint64) (solana.Signature, error) {
	defer m.observe(MethodAirdrop, time.Now())
	signature, err := m.ledger.Airdrop(ctx, address, amount)
	m.count(MethodAirdrop, err)
	return signature, err
}

func (m *MetricsLedger) Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	defer m.observe(MethodSubmit, time.Now())
	signature, err := m.ledger.Submit(ctx, tx)
	m.count(MethodSubmit, err)
	return signature, err
}

func (m *MetricsLedger) Confirm(ctx context.Context, signature solana.Signature) error {
	defer m.observe(MethodConfirm, time.Now())
	err := m.ledger.Confirm(ctx, signature)
	m.count(MethodConfirm, err)
	return err
}

func (m *MetricsLedger) observe(method string, start time.Time) {
	m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

func (m *MetricsLedger) count(method string, err error) {
	m.requests.WithLabelValues(method, Outcome(err)).Inc()
}

// Outcome maps an error returned by the ledger onto its outcome label.
func Outcome(err error) string {
	var (
		network   failure.Network
		rejected  failure.Rejected
		rateLimit failure.RateLimit
		notFound  failure.NotFound
		timeout   failure.Timeout
	)
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &network):
		return OutcomeNetwork
	case errors.As(err, &rejected):
		return OutcomeRejected
	case errors.As(err, &rateLimit):
		return OutcomeRateLimit
	case errors.As(err, &notFound):
		return OutcomeNotFound
	case errors.As(err, &timeout):
		return OutcomeTimeout
	default:
		return OutcomeOther
	}
}
