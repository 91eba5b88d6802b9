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
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gagliardetto/solana-go"

	"github.com/optakt/sol-transactor/failure"
)

// Load reads a keypair from a key file holding a JSON array of the 64 private
// key bytes, as written by `solana-keygen`.
func Load(path string) (*Keypair, error) {

	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return nil, fmt.Errorf("could not read key file: %w", err)
	}
	if err != nil {
		return nil, failure.InvalidKey{
			Description: failure.NewDescription("could not decode key file", failure.WithErr(err)),
			Source:      path,
		}
	}

	keypair, err := New(key)
	if err != nil {
		return nil, fmt.Errorf("could not load keypair from %s: %w", path, err)
	}

	return keypair, nil
}

// Save writes the keypair to the given path in the same JSON byte array
// format that Load reads. The file is only readable by its owner.
func Save(path string, keypair *Keypair) error {
	data := []byte(FormatByteArray(keypair.Bytes()))
	err := os.WriteFile(path, data, 0600)
	if err != nil {
		return fmt.Errorf("could not write key file: %w", err)
	}
	return nil
}
