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

package failure_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optakt/sol-transactor/failure"
	"github.com/optakt/sol-transactor/testing/mocks"
)

func TestDescription(t *testing.T) {
	descBody := "test"
	address := mocks.GenericAddress(0)
	signature := mocks.GenericSignature(0)
	index := 84
	methods := []string{"getBalance", "getLatestBlockhash"}

	t.Run("full description with fields", func(t *testing.T) {
		t.Parallel()

		desc := failure.NewDescription(
			descBody,
			failure.WithErr(mocks.GenericError),
			failure.WithUint64("balance", mocks.GenericBalance),
			failure.WithAddress("address", address),
			failure.WithSignature("signature", signature),
			failure.WithInt("index", index),
			failure.WithString("commitment", "confirmed"),
			failure.WithStrings("methods", methods...),
		)

		assert.Equal(t, desc.Text, descBody)
		assert.NotEqual(t, desc.String(), descBody)
		assert.Contains(t, desc.Fields.String(), mocks.GenericError.Error())
		assert.Contains(t, desc.Fields.String(), fmt.Sprintf("balance: %v", mocks.GenericBalance))
		assert.Contains(t, desc.Fields.String(), fmt.Sprintf("address: %v", address))
		assert.Contains(t, desc.Fields.String(), fmt.Sprintf("signature: %v", signature))
		assert.Contains(t, desc.Fields.String(), fmt.Sprintf("index: %v", index))
		assert.Contains(t, desc.Fields.String(), "commitment: confirmed")
		assert.Contains(t, desc.Fields.String(), fmt.Sprintf("methods: %v", methods))
	})

	t.Run("no fields", func(t *testing.T) {
		t.Parallel()

		desc := failure.NewDescription(descBody)

		assert.Equal(t, desc.Text, descBody)
		assert.Equal(t, desc.String(), descBody)
	})

	t.Run("iterates over fields in order", func(t *testing.T) {
		t.Parallel()

		desc := failure.NewDescription(descBody,
			failure.WithString("first", "1"),
			failure.WithString("second", "2"),
		)

		var keys []string
		desc.Fields.Iterate(func(key string, _ interface{}) {
			keys = append(keys, key)
		})

		assert.Equal(t, []string{"first", "second"}, keys)
	})
}

func TestErrors(t *testing.T) {
	address := mocks.GenericAddress(0)
	desc := failure.NewDescription("test")

	t.Run("insufficient funds", func(t *testing.T) {
		t.Parallel()

		err := failure.InsufficientFunds{Description: desc, Address: address, Have: 1, Want: 2}

		assert.Contains(t, err.Error(), address.String())
		assert.Contains(t, err.Error(), "have: 1")
		assert.Contains(t, err.Error(), "want: 2")
	})

	t.Run("errors carry method", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, failure.Network{Description: desc, Method: "getBalance"}.Error(), "getBalance")
		assert.Contains(t, failure.Rejected{Description: desc, Method: "sendTransaction"}.Error(), "sendTransaction")
		assert.Contains(t, failure.NotFound{Description: desc, Method: "getSignatureStatuses"}.Error(), "getSignatureStatuses")
	})

	t.Run("rate limit carries address", func(t *testing.T) {
		t.Parallel()

		err := failure.RateLimit{Description: desc, Address: address}

		assert.Contains(t, err.Error(), address.String())
	})

	t.Run("timeout carries signature", func(t *testing.T) {
		t.Parallel()

		signature := mocks.GenericSignature(1)
		err := failure.Timeout{Description: desc, Signature: signature}

		assert.Contains(t, err.Error(), signature.String())
	})
}
