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

package wallet

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/optakt/sol-transactor/failure"
)

// Keypair holds an ed25519 signing key. It only ever prints its public half,
// so it can safely be passed to loggers and formatters.
type Keypair struct {
	key solana.PrivateKey
}

// New wraps the given 64-byte private key, checking that its public half
// matches its seed.
func New(key []byte) (*Keypair, error) {

	if len(key) != ed25519.PrivateKeySize {
		return nil, failure.InvalidKey{
			Description: failure.NewDescription("invalid key length",
				failure.WithInt("have", len(key)),
				failure.WithInt("want", ed25519.PrivateKeySize),
			),
			Source: "bytes",
		}
	}

	derived := ed25519.NewKeyFromSeed(key[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], key[ed25519.SeedSize:]) {
		return nil, failure.InvalidKey{
			Description: failure.NewDescription("public key does not match seed"),
			Source:      "bytes",
		}
	}

	k := Keypair{
		key: solana.PrivateKey(append([]byte{}, key...)),
	}

	return &k, nil
}

// Generate creates a new random keypair.
func Generate() (*Keypair, error) {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("could not generate private key: %w", err)
	}
	return &Keypair{key: key}, nil
}

// FromBase58 decodes a keypair from its base58 text form.
func FromBase58(text string) (*Keypair, error) {
	key, err := base58.Decode(text)
	if err != nil {
		return nil, failure.InvalidKey{
			Description: failure.NewDescription("could not decode base58 text", failure.WithErr(err)),
			Source:      "base58",
		}
	}
	return New(key)
}

// PublicKey returns the address of the keypair.
func (k *Keypair) PublicKey() solana.PublicKey {
	return k.key.PublicKey()
}

// Sign signs the given message with the private key.
func (k *Keypair) Sign(message []byte) (solana.Signature, error) {
	signature, err := k.key.Sign(message)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("could not sign message: %w", err)
	}
	return signature, nil
}

// Bytes returns a copy of the 64 private key bytes.
func (k *Keypair) Bytes() []byte {
	return append([]byte{}, k.key...)
}

// Base58 returns the private key in base58 text form.
func (k *Keypair) Base58() string {
	return base58.Encode(k.key)
}

// String implements fmt.Stringer and only exposes the public key.
func (k *Keypair) String() string {
	return k.PublicKey().String()
}
