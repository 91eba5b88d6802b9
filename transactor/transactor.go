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

package transactor

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"

	"github.com/optakt/sol-transactor/failure"
	"github.com/optakt/sol-transactor/models/sol"
)

const (
	requiredSigners = 1 // the payer is the only signer we can provide
)

// Transactor assembles and signs transactions. It does no I/O: blockhashes,
// balances and fees are provided by the caller.
type Transactor struct{}

// New creates a new transactor.
func New() *Transactor {
	return &Transactor{}
}

// Message returns the unsigned message of a transfer, exactly as Transfer
// would sign it. It is used to ask the ledger for the fee of a transfer.
func (t *Transactor) Message(payer solana.PublicKey, recipient solana.PublicKey, amount uint64, blockhash solana.Hash) (*solana.Message, error) {

	tx, err := compile(transfer(payer, recipient, amount), payer, blockhash)
	if err != nil {
		return nil, fmt.Errorf("could not compile transfer: %w", err)
	}

	return &tx.Message, nil
}

// Transfer creates a transaction moving the given amount of lamports from the
// payer to the recipient. The payer pays the fee and signs the transaction.
func (t *Transactor) Transfer(payer sol.Signer, recipient solana.PublicKey, amount uint64, blockhash solana.Hash) (*solana.Transaction, error) {

	tx, err := compile(transfer(payer.PublicKey(), recipient, amount), payer.PublicKey(), blockhash)
	if err != nil {
		return nil, fmt.Errorf("could not compile transfer: %w", err)
	}

	err = sign(tx, payer)
	if err != nil {
		return nil, fmt.Errorf("could not sign transfer: %w", err)
	}

	return tx, nil
}

// Sweep creates a transfer of the whole balance minus the fee, so that the
// payer account holds exactly zero lamports once the fee is deducted.
func (t *Transactor) Sweep(payer sol.Signer, recipient solana.PublicKey, balance uint64, fee uint64, blockhash solana.Hash) (*solana.Transaction, error) {

	if balance < fee {
		return nil, failure.InsufficientFunds{
			Description: failure.NewDescription("balance does not cover transaction fee"),
			Address:     payer.PublicKey(),
			Have:        balance,
			Want:        fee,
		}
	}

	return t.Transfer(payer, recipient, balance-fee, blockhash)
}

// ProgramCall creates a transaction invoking a single instruction of an
// arbitrary on-chain program. The payer must be the only signer the
// instruction requires.
func (t *Transactor) ProgramCall(call Call, payer sol.Signer, blockhash solana.Hash) (*solana.Transaction, error) {

	instruction := solana.NewInstruction(call.ProgramID, call.Accounts, call.Data)
	tx, err := compile(instruction, payer.PublicKey(), blockhash)
	if err != nil {
		return nil, fmt.Errorf("could not compile program call: %w", err)
	}

	err = sign(tx, payer)
	if err != nil {
		return nil, fmt.Errorf("could not sign program call: %w", err)
	}

	return tx, nil
}

func transfer(from solana.PublicKey, to solana.PublicKey, amount uint64) solana.Instruction {
	return system.NewTransferInstruction(amount, from, to).Build()
}

func compile(instruction solana.Instruction, payer solana.PublicKey, blockhash solana.Hash) (*solana.Transaction, error) {
	return solana.NewTransaction(
		[]solana.Instruction{instruction},
		blockhash,
		solana.TransactionPayer(payer),
	)
}

// sign computes the payer signature over the serialized message. Once signed,
// the transaction must not be modified anymore.
func sign(tx *solana.Transaction, signer sol.Signer) error {

	required := uint(tx.Message.Header.NumRequiredSignatures)
	if required != requiredSigners {
		return failure.InvalidSigners{
			Description: failure.NewDescription("invalid number of required signers"),
			Have:        requiredSigners,
			Want:        required,
		}
	}
	if tx.Message.AccountKeys[0] != signer.PublicKey() {
		return failure.InvalidSigners{
			Description: failure.NewDescription("payer is not the first signer",
				failure.WithAddress("have_signer", signer.PublicKey()),
				failure.WithAddress("want_signer", tx.Message.AccountKeys[0]),
			),
			Have: requiredSigners,
			Want: required,
		}
	}

	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("could not encode message: %w", err)
	}

	signature, err := signer.Sign(message)
	if err != nil {
		return fmt.Errorf("could not compute signature: %w", err)
	}

	tx.Signatures = []solana.Signature{signature}

	return nil
}
