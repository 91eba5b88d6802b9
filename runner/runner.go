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

package runner

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/optakt/sol-transactor/models/sol"
	"github.com/optakt/sol-transactor/transactor"
)

// Runner sequences ledger queries, transaction building and submission for
// each supported operation. Each operation is a straight line: the first
// failing step aborts it and its error is returned, never retried.
type Runner struct {
	log    zerolog.Logger
	ledger Ledger
	build  Builder
}

// New creates a runner on top of the given ledger client and builder.
func New(log zerolog.Logger, ledger Ledger, build Builder) *Runner {

	r := Runner{
		log:    log.With().Str("component", "runner").Logger(),
		ledger: ledger,
		build:  build,
	}

	return &r
}

// Airdrop requests test funds for the account, waits for them to land and
// reports the resulting balance. Throttling by the faucet is final.
func (r *Runner) Airdrop(ctx context.Context, address solana.PublicKey, amount uint64) (Receipt, error) {

	receipt := Receipt{
		Operation: sol.OperationAirdrop,
		Recipient: address,
		Amount:    amount,
	}
	log := r.log.With().Str("operation", sol.OperationAirdrop).Str("address", address.String()).Logger()

	signature, err := r.ledger.Airdrop(ctx, address, amount)
	if err != nil {
		return receipt, wrap(sol.OperationAirdrop, address, "request airdrop", err)
	}
	receipt.Signature = signature

	log.Debug().Str("signature", signature.String()).Msg("airdrop requested, waiting for confirmation")

	err = r.ledger.Confirm(ctx, signature)
	if err != nil {
		return receipt, wrap(sol.OperationAirdrop, address, "confirm airdrop", err)
	}

	balance, err := r.ledger.Balance(ctx, address)
	if err != nil {
		return receipt, wrap(sol.OperationAirdrop, address, "get balance", err)
	}
	receipt.Balance = balance

	log.Info().Str("signature", signature.String()).Uint64("balance", balance).Msg("airdrop completed")

	return receipt, nil
}

// Transfer moves a fixed amount of lamports from the payer to the recipient.
func (r *Runner) Transfer(ctx context.Context, payer sol.Signer, recipient solana.PublicKey, amount uint64) (Receipt, error) {

	address := payer.PublicKey()
	receipt := Receipt{
		Operation: sol.OperationTransfer,
		Payer:     address,
		Recipient: recipient,
		Amount:    amount,
	}
	log := r.log.With().Str("operation", sol.OperationTransfer).Str("payer", address.String()).Logger()

	blockhash, err := r.ledger.LatestBlockhash(ctx)
	if err != nil {
		return receipt, wrap(sol.OperationTransfer, address, "get latest blockhash", err)
	}

	tx, err := r.build.Transfer(payer, recipient, amount, blockhash.Hash)
	if err != nil {
		return receipt, wrap(sol.OperationTransfer, address, "build transaction", err)
	}

	signature, err := r.ledger.Submit(ctx, tx)
	receipt.Signature = signature
	if err != nil {
		return receipt, wrap(sol.OperationTransfer, address, "submit transaction", err)
	}

	log.Info().Str("recipient", recipient.String()).Uint64("amount", amount).Str("signature", signature.String()).Msg("transfer completed")

	return receipt, nil
}

// Sweep transfers the whole balance of the payer to the recipient, minus the
// fee the ledger charges for the transfer, leaving the payer empty.
func (r *Runner) Sweep(ctx context.Context, payer sol.Signer, recipient solana.PublicKey) (Receipt, error) {

	address := payer.PublicKey()
	receipt := Receipt{
		Operation: sol.OperationSweep,
		Payer:     address,
		Recipient: recipient,
	}
	log := r.log.With().Str("operation", sol.OperationSweep).Str("payer", address.String()).Logger()

	balance, err := r.ledger.Balance(ctx, address)
	if err != nil {
		return receipt, wrap(sol.OperationSweep, address, "get balance", err)
	}
	receipt.Balance = balance

	blockhash, err := r.ledger.LatestBlockhash(ctx)
	if err != nil {
		return receipt, wrap(sol.OperationSweep, address, "get latest blockhash", err)
	}

	// The fee is priced on a transfer of the full balance; it only depends on
	// the shape of the message, so it is the same for the final amount.
	message, err := r.build.Message(address, recipient, balance, blockhash.Hash)
	if err != nil {
		return receipt, wrap(sol.OperationSweep, address, "build fee message", err)
	}

	fee, err := r.ledger.Fee(ctx, message)
	if err != nil {
		return receipt, wrap(sol.OperationSweep, address, "get fee", err)
	}
	receipt.Fee = fee

	log.Debug().Uint64("balance", balance).Uint64("fee", fee).Msg("sweeping account")

	tx, err := r.build.Sweep(payer, recipient, balance, fee, blockhash.Hash)
	if err != nil {
		return receipt, wrap(sol.OperationSweep, address, "build transaction", err)
	}
	receipt.Amount = balance - fee

	signature, err := r.ledger.Submit(ctx, tx)
	receipt.Signature = signature
	if err != nil {
		return receipt, wrap(sol.OperationSweep, address, "submit transaction", err)
	}

	log.Info().Str("recipient", recipient.String()).Uint64("amount", receipt.Amount).Str("signature", signature.String()).Msg("sweep completed")

	return receipt, nil
}

// Invoke calls one instruction of an on-chain program, paid and signed by
// the payer.
func (r *Runner) Invoke(ctx context.Context, payer sol.Signer, call transactor.Call) (Receipt, error) {

	address := payer.PublicKey()
	receipt := Receipt{
		Operation: sol.OperationInvoke,
		Payer:     address,
		Program:   call.ProgramID,
	}
	log := r.log.With().Str("operation", sol.OperationInvoke).Str("payer", address.String()).Logger()

	blockhash, err := r.ledger.LatestBlockhash(ctx)
	if err != nil {
		return receipt, wrap(sol.OperationInvoke, address, "get latest blockhash", err)
	}

	tx, err := r.build.ProgramCall(call, payer, blockhash.Hash)
	if err != nil {
		return receipt, wrap(sol.OperationInvoke, address, "build transaction", err)
	}

	signature, err := r.ledger.Submit(ctx, tx)
	receipt.Signature = signature
	if err != nil {
		return receipt, wrap(sol.OperationInvoke, address, "submit transaction", err)
	}

	log.Info().Str("program", call.ProgramID.String()).Str("signature", signature.String()).Msg("program invoked")

	return receipt, nil
}

func wrap(operation string, address solana.PublicKey, step string, err error) error {
	return fmt.Errorf("%s failed (address: %s): could not %s: %w", operation, address, step, err)
}
