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

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/sol-transactor/wallet"
)

const (
	success = 0
	failure = 1
)

const (
	formatBase58 = "base58"
	formatBytes  = "bytes"
)

func main() {
	os.Exit(run())
}

func run() int {

	// Command line parameter initialization.
	var (
		flagLevel string
		flagTo    string
	)

	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagTo, "to", "t", formatBytes, "output format of the key (base58 or bytes)")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	// The key is read from the first argument, or from the first line of the
	// standard input, so that it does not end up in the shell history.
	input := pflag.Arg(0)
	if input == "" {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			input = scanner.Text()
		}
		err = scanner.Err()
		if err != nil {
			log.Error().Err(err).Msg("could not read key from standard input")
			return failure
		}
	}
	input = strings.TrimSpace(input)
	if input == "" {
		log.Error().Msg("no key given")
		return failure
	}

	var (
		data   []byte
		output string
	)
	switch flagTo {
	case formatBytes:
		data, err = wallet.Base58ToBytes(input)
		if err != nil {
			log.Error().Err(err).Msg("could not decode base58 key")
			return failure
		}
		output = wallet.FormatByteArray(data)
	case formatBase58:
		data, err = wallet.ParseByteArray(input)
		if err != nil {
			log.Error().Err(err).Msg("could not decode byte array key")
			return failure
		}
		output = wallet.BytesToBase58(data)
	default:
		log.Error().Str("to", flagTo).Msg("unknown output format")
		return failure
	}

	// Full keypairs are checked for consistency, so that a corrupted key is
	// caught before it is used.
	keypair, err := wallet.New(data)
	if err == nil {
		log.Info().Str("address", keypair.PublicKey().String()).Msg("keypair decoded")
	} else {
		log.Warn().Err(err).Msg("converted data is not a valid keypair")
	}

	fmt.Println(output)

	return success
}
