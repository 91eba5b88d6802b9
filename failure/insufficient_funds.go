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

package failure

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// InsufficientFunds is the error for an account whose balance cannot cover
// what an operation needs.
type InsufficientFunds struct {
	Description Description
	Address     solana.PublicKey
	Have        uint64
	Want        uint64
}

// Error implements the error interface.
func (i InsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds (address: %s, have: %d, want: %d): %s", i.Address, i.Have, i.Want, i.Description)
}
