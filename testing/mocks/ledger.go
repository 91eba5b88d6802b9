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

package mocks

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/optakt/sol-transactor/ledger"
)

type Ledger struct {
	BalanceFunc         func(ctx context.Context, address solana.PublicKey) (uint64, error)
	LatestBlockhashFunc func(ctx context.Context) (ledger.Blockhash, error)
	FeeFunc             func(ctx context.Context, message *solana.Message) (uint64, error)
	AirdropFunc         func(ctx context.Context, address solana.PublicKey, amount uint64) (solana.Signature, error)
	SubmitFunc          func(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	ConfirmFunc         func(ctx context.Context, signature solana.Signature) error
}

func BaselineLedger(t *testing.T) *Ledger {
	t.Helper()

	l := Ledger{
		BalanceFunc: func(context.Context, solana.PublicKey) (uint64, error) {
			return GenericBalance, nil
		},
		LatestBlockhashFunc: func(context.Context) (ledger.Blockhash, error) {
			return ledger.Blockhash{Hash: GenericBlockhash, LastValidHeight: GenericHeight}, nil
		},
		FeeFunc: func(context.Context, *solana.Message) (uint64, error) {
			return GenericFee, nil
		},
		AirdropFunc: func(context.Context, solana.PublicKey, uint64) (solana.Signature, error) {
			return GenericSignature(0), nil
		},
		SubmitFunc: func(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
			return tx.Signatures[0], nil
		},
		ConfirmFunc: func(context.Context, solana.Signature) error {
			return nil
		},
	}

	return &l
}

func (l *Ledger) Balance(ctx context.Context, address solana.PublicKey) (uint64, error) {
	return l.BalanceFunc(ctx, address)
}

func (l *Ledger) LatestBlockhash(ctx context.Context) (ledger.Blockhash, error) {
	return l.LatestBlockhashFunc(ctx)
}

func (l *Ledger) Fee(ctx context.Context, message *solana.Message) (uint64, error) {
	return l.FeeFunc(ctx, message)
}

func (l *Ledger) Airdrop(ctx context.Context, address solana.PublicKey, amount uint64) (solana.Signature, error) {
	return l.AirdropFunc(ctx, address, amount)
}

func (l *Ledger) Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	return l.SubmitFunc(ctx, tx)
}

func (l *Ledger) Confirm(ctx context.Context, signature solana.Signature) error {
	return l.ConfirmFunc(ctx, signature)
}
