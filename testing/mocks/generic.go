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
	"crypto/ed25519"
	"errors"
	"io"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/optakt/sol-transactor/transactor"
	"github.com/optakt/sol-transactor/wallet"
)

// Global variables that can be used for testing. They are non-nil valid values
// for the types commonly needed to test the transaction client.
var (
	NoopLogger = zerolog.New(io.Discard)

	GenericError = errors.New("dummy error")

	GenericBytes = []byte(`test`)

	GenericHeight  = uint64(42)
	GenericBalance = uint64(2_000_000_000)
	GenericAmount  = uint64(1_000_000)
	GenericFee     = uint64(5_000)

	GenericBlockhash = solana.HashFromBytes([]byte{
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88,
		0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff, 0x00,
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88,
		0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff, 0x00,
	})
)

// GenericKeypair returns a deterministic keypair for the given index.
func GenericKeypair(index int) *wallet.Keypair {
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = byte(index)
	seed[ed25519.SeedSize-1] = 0x42
	keypair, err := wallet.New(ed25519.NewKeyFromSeed(seed))
	if err != nil {
		panic(err)
	}
	return keypair
}

func GenericAddress(index int) solana.PublicKey {
	return GenericKeypair(index + 100).PublicKey()
}

func GenericSignature(index int) solana.Signature {
	var signature solana.Signature
	signature[0] = byte(index)
	signature[len(signature)-1] = 0x42
	return signature
}

// GenericTransaction returns a transfer of the generic amount, signed by the
// generic keypair with the same index.
func GenericTransaction(index int) *solana.Transaction {
	tx, err := transactor.New().Transfer(GenericKeypair(index), GenericAddress(index), GenericAmount, GenericBlockhash)
	if err != nil {
		panic(err)
	}
	return tx
}

// GenericCall returns a call to a generic program with one writable account.
func GenericCall(index int) transactor.Call {
	call := transactor.Call{
		ProgramID: GenericAddress(index + 50),
		Accounts: solana.AccountMetaSlice{
			solana.Meta(GenericAddress(index)).WRITE(),
		},
		Data: GenericBytes,
	}
	return call
}
