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

	"github.com/gagliardetto/solana-go"

	"github.com/optakt/sol-transactor/ledger"
)

// Ledger represents something that can query and submit to the ledger.
type Ledger interface {
	Balance(ctx context.Context, address solana.PublicKey) (uint64, error)
	LatestBlockhash(ctx context.Context) (ledger.Blockhash, error)
	Fee(ctx context.Context, message *solana.Message) (uint64, error)
	Airdrop(ctx context.Context, address solana.PublicKey, amount uint64) (solana.Signature, error)
	Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	Confirm(ctx context.Context, signature solana.Signature) error
}
