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

package ledger

import (
	"time"

	"github.com/gagliardetto/solana-go/rpc"
)

// DefaultConfig waits for the `confirmed` commitment, polling twice a second
// for up to a minute, without client-side rate limiting.
var DefaultConfig = Config{
	Commitment:     rpc.CommitmentConfirmed,
	PollInterval:   500 * time.Millisecond,
	ConfirmTimeout: 60 * time.Second,
	RequestRate:    0,
	RequestBurst:   1,
}

// Config is the configuration of a ledger client.
type Config struct {
	Commitment     rpc.CommitmentType `validate:"oneof=processed confirmed finalized"`
	PollInterval   time.Duration      `validate:"gt=0"`
	ConfirmTimeout time.Duration      `validate:"gtfield=PollInterval"`
	RequestRate    float64            `validate:"gte=0"`
	RequestBurst   int                `validate:"gte=1"`
}

type Option func(*Config)

// WithCommitment sets the commitment used for queries, preflight checks and
// confirmation.
func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(cfg *Config) {
		cfg.Commitment = commitment
	}
}

// WithPollInterval sets the delay between two signature status lookups.
func WithPollInterval(interval time.Duration) Option {
	return func(cfg *Config) {
		cfg.PollInterval = interval
	}
}

// WithConfirmTimeout sets the polling budget for confirmations.
func WithConfirmTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.ConfirmTimeout = timeout
	}
}

// WithRateLimit limits the number of requests per second sent to the
// endpoint. It only applies to clients created with Dial.
func WithRateLimit(rate float64, burst int) Option {
	return func(cfg *Config) {
		cfg.RequestRate = rate
		cfg.RequestBurst = burst
	}
}
