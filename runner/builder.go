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
	"github.com/gagliardetto/solana-go"

	"github.com/optakt/sol-transactor/models/sol"
	"github.com/optakt/sol-transactor/transactor"
)

// Builder represents something that can assemble signed transactions.
type Builder interface {
	Message(payer solana.PublicKey, recipient solana.PublicKey, amount uint64, blockhash solana.Hash) (*solana.Message, error)
	Transfer(payer sol.Signer, recipient solana.PublicKey, amount uint64, blockhash solana.Hash) (*solana.Transaction, error)
	Sweep(payer sol.Signer, recipient solana.PublicKey, balance uint64, fee uint64, blockhash solana.Hash) (*solana.Transaction, error)
	ProgramCall(call transactor.Call, payer sol.Signer, blockhash solana.Hash) (*solana.Transaction, error)
}
