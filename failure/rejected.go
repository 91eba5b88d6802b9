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
)

// Rejected is the error for a request the ledger refused, such as a
// transaction with an invalid signature, a stale blockhash or a payer that
// cannot cover the amount.
type Rejected struct {
	Description Description
	Method      string
}

// Error implements the error interface.
func (r Rejected) Error() string {
	return fmt.Sprintf("rejected by ledger (method: %s): %s", r.Method, r.Description)
}
