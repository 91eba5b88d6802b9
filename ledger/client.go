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
	"encoding/base64"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/optakt/sol-transactor/failure"
)

// Client is a thin client for one JSON-RPC endpoint of the ledger. Every call
// blocks until the endpoint answers; nothing is retried.
type Client struct {
	log zerolog.Logger
	rpc RPC
	cfg Config
}

// NewClient creates a ledger client on top of the given RPC API.
func NewClient(log zerolog.Logger, api RPC, options ...Option) (*Client, error) {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	err := validator.New().Struct(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c := Client{
		log: log.With().Str("component", "ledger").Logger(),
		rpc: api,
		cfg: cfg,
	}

	return &c, nil
}

// Dial creates a ledger client for the JSON-RPC endpoint at the given URL.
func Dial(log zerolog.Logger, endpoint string, options ...Option) (*Client, error) {

	err := validator.New().Var(endpoint, "required,url")
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint (%s): %w", endpoint, err)
	}

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	var api *rpc.Client
	if cfg.RequestRate > 0 {
		limited := rpc.NewWithLimiter(endpoint, rate.Limit(cfg.RequestRate), cfg.RequestBurst)
		api = rpc.NewWithCustomRPCClient(limited)
	} else {
		api = rpc.New(endpoint)
	}

	return NewClient(log, api, options...)
}

// Balance returns the balance of the account, in lamports. Accounts that were
// never funded have a zero balance.
func (c *Client) Balance(ctx context.Context, address solana.PublicKey) (uint64, error) {

	out, err := c.rpc.GetBalance(ctx, address, c.cfg.Commitment)
	if err != nil {
		return 0, classify(methodBalance, err)
	}

	c.log.Debug().Str("address", address.String()).Uint64("balance", out.Value).Msg("retrieved balance")

	return out.Value, nil
}

// LatestBlockhash returns the most recent blockhash, used to anchor new
// transactions.
func (c *Client) LatestBlockhash(ctx context.Context) (Blockhash, error) {

	out, err := c.rpc.GetLatestBlockhash(ctx, c.cfg.Commitment)
	if err != nil {
		return Blockhash{}, classify(methodBlockhash, err)
	}
	if out.Value == nil {
		return Blockhash{}, failure.Network{
			Description: failure.NewDescription("missing blockhash in response"),
			Method:      methodBlockhash,
		}
	}

	blockhash := Blockhash{
		Hash:            out.Value.Blockhash,
		LastValidHeight: out.Value.LastValidBlockHeight,
	}

	c.log.Debug().Str("blockhash", blockhash.Hash.String()).Uint64("last_valid_height", blockhash.LastValidHeight).Msg("retrieved latest blockhash")

	return blockhash, nil
}

// Fee returns the fee, in lamports, that the ledger charges to process the
// given message.
func (c *Client) Fee(ctx context.Context, message *solana.Message) (uint64, error) {

	data, err := message.MarshalBinary()
	if err != nil {
		return 0, fmt.Errorf("could not encode message: %w", err)
	}

	out, err := c.rpc.GetFeeForMessage(ctx, base64.StdEncoding.EncodeToString(data), c.cfg.Commitment)
	if err != nil {
		return 0, classify(methodFee, err)
	}

	// The ledger does not price messages whose blockhash it no longer knows.
	if out.Value == nil {
		return 0, failure.Rejected{
			Description: failure.NewDescription("blockhash not found or expired",
				failure.WithString("blockhash", message.RecentBlockhash.String()),
			),
			Method: methodFee,
		}
	}

	return *out.Value, nil
}

// Airdrop asks the network to credit the account with the given amount. It is
// only available on development networks and is never retried.
func (c *Client) Airdrop(ctx context.Context, address solana.PublicKey, amount uint64) (solana.Signature, error) {

	signature, err := c.rpc.RequestAirdrop(ctx, address, amount, c.cfg.Commitment)
	if err != nil {
		return solana.Signature{}, classifyAirdrop(address, err)
	}

	c.log.Debug().Str("address", address.String()).Uint64("amount", amount).Str("signature", signature.String()).Msg("airdrop requested")

	return signature, nil
}

// Submit sends the signed transaction to the ledger and waits until it
// reaches the configured commitment. A transaction whose signatures do not
// cover its exact message is rejected before it is sent. The signature is
// returned whenever the ledger accepted the transaction, even if confirming
// it failed afterwards.
func (c *Client) Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {

	err := verify(tx)
	if err != nil {
		return solana.Signature{}, err
	}

	opts := rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: c.cfg.Commitment,
	}
	signature, err := c.rpc.SendTransactionWithOpts(ctx, tx, opts)
	if err != nil {
		return solana.Signature{}, classify(methodSend, err)
	}

	c.log.Debug().Str("signature", signature.String()).Msg("transaction sent")

	err = c.Confirm(ctx, signature)
	if err != nil {
		return signature, err
	}

	return signature, nil
}

// Status returns the current processing status of the transaction with the
// given signature.
func (c *Client) Status(ctx context.Context, signature solana.Signature) (Status, error) {

	out, err := c.rpc.GetSignatureStatuses(ctx, true, signature)
	if err != nil {
		return Status{}, classify(methodStatus, err)
	}
	if len(out.Value) == 0 || out.Value[0] == nil {
		return Status{}, failure.NotFound{
			Description: failure.NewDescription("unknown signature",
				failure.WithSignature("signature", signature),
			),
			Method: methodStatus,
		}
	}

	result := out.Value[0]
	status := Status{
		Slot:  result.Slot,
		Level: result.ConfirmationStatus,
		Err:   result.Err,
	}

	return status, nil
}

// verify checks that the transaction carries exactly one valid signature for
// each required signer, computed over the message as it would be sent.
func verify(tx *solana.Transaction) error {

	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("could not encode message: %w", err)
	}

	required := int(tx.Message.Header.NumRequiredSignatures)
	if len(tx.Signatures) != required || len(tx.Message.AccountKeys) < required {
		return failure.Rejected{
			Description: failure.NewDescription("invalid number of signatures",
				failure.WithInt("have", len(tx.Signatures)),
				failure.WithInt("want", required),
			),
			Method: methodSend,
		}
	}

	for index, signature := range tx.Signatures {
		signer := tx.Message.AccountKeys[index]
		if !signature.Verify(signer, message) {
			return failure.Rejected{
				Description: failure.NewDescription("signature does not match message",
					failure.WithInt("index", index),
					failure.WithAddress("signer", signer),
				),
				Method: methodSend,
			}
		}
	}

	return nil
}
