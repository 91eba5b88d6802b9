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
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/optakt/sol-transactor/models/sol"
	"github.com/optakt/sol-transactor/transactor"
)

type Builder struct {
	MessageFunc     func(payer solana.PublicKey, recipient solana.PublicKey, amount uint64, blockhash solana.Hash) (*solana.Message, error)
	TransferFunc    func(payer sol.Signer, recipient solana.PublicKey, amount uint64, blockhash solana.Hash) (*solana.Transaction, error)
	SweepFunc       func(payer sol.Signer, recipient solana.PublicKey, balance uint64, fee uint64, blockhash solana.Hash) (*solana.Transaction, error)
	ProgramCallFunc func(call transactor.Call, payer sol.Signer, blockhash solana.Hash) (*solana.Transaction, error)
}

func BaselineBuilder(t *testing.T) *Builder {
	t.Helper()

	b := Builder{
		MessageFunc: func(solana.PublicKey, solana.PublicKey, uint64, solana.Hash) (*solana.Message, error) {
			return &GenericTransaction(0).Message, nil
		},
		TransferFunc: func(sol.Signer, solana.PublicKey, uint64, solana.Hash) (*solana.Transaction, error) {
			return GenericTransaction(0), nil
		},
		SweepFunc: func(sol.Signer, solana.PublicKey, uint64, uint64, solana.Hash) (*solana.Transaction, error) {
			return GenericTransaction(0), nil
		},
		ProgramCallFunc: func(transactor.Call, sol.Signer, solana.Hash) (*solana.Transaction, error) {
			return GenericTransaction(0), nil
		},
	}

	return &b
}

func (b *Builder) Message(payer solana.PublicKey, recipient solana.PublicKey, amount uint64, blockhash solana.Hash) (*solana.Message, error) {
	return b.MessageFunc(payer, recipient, amount, blockhash)
}

func (b *Builder) Transfer(payer sol.Signer, recipient solana.PublicKey, amount uint64, blockhash solana.Hash) (*solana.Transaction, error) {
	return b.TransferFunc(payer, recipient, amount, blockhash)
}

func (b *Builder) Sweep(payer sol.Signer, recipient solana.PublicKey, balance uint64, fee uint64, blockhash solana.Hash) (*solana.Transaction, error) {
	return b.SweepFunc(payer, recipient, balance, fee, blockhash)
}

func (b *Builder) ProgramCall(call transactor.Call, payer sol.Signer, blockhash solana.Hash) (*solana.Transaction, error) {
	return b.ProgramCallFunc(call, payer, blockhash)
}
