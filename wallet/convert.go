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
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mr-tron/base58"
)

// Base58ToBytes decodes base58 text into the raw bytes it encodes.
func Base58ToBytes(text string) ([]byte, error) {
	data, err := base58.Decode(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("could not decode base58: %w", err)
	}
	return data, nil
}

// BytesToBase58 encodes raw bytes as base58 text.
func BytesToBase58(data []byte) string {
	return base58.Encode(data)
}

// ParseByteArray parses a byte array written as comma-separated decimal
// numbers, with or without enclosing brackets. Every invalid element is
// reported in the returned error, by position only.
func ParseByteArray(text string) ([]byte, error) {

	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty byte array")
	}

	var errs *multierror.Error
	parts := strings.Split(text, ",")
	data := make([]byte, 0, len(parts))
	for i, part := range parts {
		value, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("invalid byte at position %d", i))
			continue
		}
		data = append(data, byte(value))
	}

	err := errs.ErrorOrNil()
	if err != nil {
		return nil, err
	}

	return data, nil
}

// FormatByteArray writes bytes as a JSON array of decimal numbers.
func FormatByteArray(data []byte) string {
	parts := make([]string, 0, len(data))
	for _, b := range data {
		parts = append(parts, strconv.FormatUint(uint64(b), 10))
	}
	return "[" + strings.Join(parts, ",") + "]"
}
