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
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Blockhash is a recent blockhash along with the last block height at which
// transactions referencing it are still accepted. LastValidHeight is only
// informational: confirmation does not watch the block height and keeps
// polling until the confirmation timeout, even once the blockhash expired.
type Blockhash struct {
	Hash            solana.Hash
	LastValidHeight uint64
}

// Status is the processing status of a transaction signature.
type Status struct {
	Slot  uint64
	Level rpc.ConfirmationStatusType
	Err   interface{}
}

var levels = map[string]int{
	string(rpc.CommitmentProcessed): 1,
	string(rpc.CommitmentConfirmed): 2,
	string(rpc.CommitmentFinalized): 3,
}

// Reached returns whether the status is at least as final as the given
// commitment.
func (s Status) Reached(commitment rpc.CommitmentType) bool {
	have, ok := levels[string(s.Level)]
	if !ok {
		return false
	}
	return have >= levels[string(commitment)]
}
