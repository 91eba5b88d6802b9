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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/optakt/sol-transactor/failure"
)

// Confirm polls the status of the given signature until it reaches the
// configured commitment, fails on the ledger, or the polling budget runs out.
func (c *Client) Confirm(ctx context.Context, signature solana.Signature) error {

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ConfirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	log := c.log.With().Str("signature", signature.String()).Logger()
	for {

		status, err := c.Status(ctx, signature)
		var notFound failure.NotFound
		switch {

		// The ledger has not seen the transaction yet, so we keep polling.
		case errors.As(err, &notFound):
			log.Debug().Msg("transaction not seen yet")

		// A failed status call after the deadline is the deadline's doing.
		case err != nil && ctx.Err() != nil:
			return c.expired(ctx, signature, start)

		case err != nil:
			return fmt.Errorf("could not get transaction status: %w", err)

		case status.Err != nil:
			return failure.Rejected{
				Description: failure.NewDescription("transaction failed",
					failure.WithSignature("signature", signature),
					failure.WithString("error", fmt.Sprint(status.Err)),
				),
				Method: methodStatus,
			}

		case status.Reached(c.cfg.Commitment):
			log.Debug().Uint64("slot", status.Slot).Str("level", string(status.Level)).Msg("transaction confirmed")
			return nil

		default:
			log.Debug().Str("level", string(status.Level)).Msg("transaction not final yet")
		}

		select {
		case <-ctx.Done():
			return c.expired(ctx, signature, start)
		case <-ticker.C:
		}
	}
}

func (c *Client) expired(ctx context.Context, signature solana.Signature, start time.Time) error {
	if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("confirmation interrupted: %w", ctx.Err())
	}
	return failure.Timeout{
		Description: failure.NewDescription("commitment not reached",
			failure.WithString("commitment", string(c.cfg.Commitment)),
		),
		Signature: signature,
		Waited:    time.Since(start),
	}
}
