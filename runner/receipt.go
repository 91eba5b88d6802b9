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
)

// Receipt is the outcome of an operation. Fields that do not apply to an
// operation are left at their zero value.
type Receipt struct {
	Operation string
	Signature solana.Signature
	Payer     solana.PublicKey
	Recipient solana.PublicKey
	Program   solana.PublicKey
	Amount    uint64
	Fee       uint64
	Balance   uint64
}
