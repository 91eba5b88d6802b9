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

package wallet_test

import (
	"crypto/ed25519"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/sol-transactor/failure"
	"github.com/optakt/sol-transactor/testing/mocks"
	"github.com/optakt/sol-transactor/wallet"
)

func TestNew(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		seed := make([]byte, ed25519.SeedSize)
		key := ed25519.NewKeyFromSeed(seed)

		keypair, err := wallet.New(key)

		require.NoError(t, err)
		assert.Equal(t, []byte(key), keypair.Bytes())
		assert.Equal(t, solana.PublicKeyFromBytes(key[ed25519.SeedSize:]), keypair.PublicKey())
	})

	t.Run("handles invalid length", func(t *testing.T) {
		t.Parallel()

		_, err := wallet.New(make([]byte, 32))

		assert.ErrorAs(t, err, &failure.InvalidKey{})
	})

	t.Run("handles public half not matching seed", func(t *testing.T) {
		t.Parallel()

		key := mocks.GenericKeypair(0).Bytes()
		key[len(key)-1] ^= 0xff

		_, err := wallet.New(key)

		assert.ErrorAs(t, err, &failure.InvalidKey{})
	})

	t.Run("does not share memory with caller", func(t *testing.T) {
		t.Parallel()

		key := mocks.GenericKeypair(1).Bytes()
		keypair, err := wallet.New(key)
		require.NoError(t, err)

		key[0] ^= 0xff

		assert.NotEqual(t, key, keypair.Bytes())
	})
}

func TestKeypair(t *testing.T) {
	t.Run("signature verifies against public key", func(t *testing.T) {
		t.Parallel()

		keypair := mocks.GenericKeypair(0)

		signature, err := keypair.Sign(mocks.GenericBytes)

		require.NoError(t, err)
		assert.True(t, signature.Verify(keypair.PublicKey(), mocks.GenericBytes))
	})

	t.Run("string only shows public key", func(t *testing.T) {
		t.Parallel()

		keypair := mocks.GenericKeypair(0)

		assert.Equal(t, keypair.PublicKey().String(), keypair.String())
		assert.Equal(t, keypair.PublicKey().String(), fmt.Sprint(keypair))
		assert.NotContains(t, fmt.Sprintf("%v", keypair), keypair.Base58())
	})

	t.Run("base58 round trip", func(t *testing.T) {
		t.Parallel()

		keypair := mocks.GenericKeypair(2)

		got, err := wallet.FromBase58(keypair.Base58())

		require.NoError(t, err)
		assert.Equal(t, keypair.PublicKey(), got.PublicKey())
	})

	t.Run("handles invalid base58", func(t *testing.T) {
		t.Parallel()

		_, err := wallet.FromBase58("0OIl")

		assert.ErrorAs(t, err, &failure.InvalidKey{})
	})

	t.Run("generates distinct keypairs", func(t *testing.T) {
		t.Parallel()

		first, err := wallet.Generate()
		require.NoError(t, err)
		second, err := wallet.Generate()
		require.NoError(t, err)

		assert.NotEqual(t, first.PublicKey(), second.PublicKey())
	})
}
