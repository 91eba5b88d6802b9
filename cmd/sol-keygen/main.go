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
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/sol-transactor/wallet"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Command line parameter initialization.
	var (
		flagForce  bool
		flagLevel  string
		flagOutput string
		flagShow   bool
	)

	pflag.BoolVarP(&flagForce, "force", "f", false, "overwrite an existing key file")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagOutput, "output", "o", "dev-wallet.json", "path of the key file to write (empty to skip)")
	pflag.BoolVarP(&flagShow, "show", "s", false, "print the secret key as a byte array and in base58")

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

	if flagOutput != "" && !flagForce {
		_, err = os.Stat(flagOutput)
		if err == nil {
			log.Error().Str("output", flagOutput).Msg("key file already exists, use --force to overwrite it")
			return failure
		}
		if !errors.Is(err, os.ErrNotExist) {
			log.Error().Str("output", flagOutput).Err(err).Msg("could not check key file")
			return failure
		}
	}

	keypair, err := wallet.Generate()
	if err != nil {
		log.Error().Err(err).Msg("could not generate keypair")
		return failure
	}

	if flagOutput != "" {
		err = wallet.Save(flagOutput, keypair)
		if err != nil {
			log.Error().Str("output", flagOutput).Err(err).Msg("could not save keypair")
			return failure
		}
		log.Info().Str("output", flagOutput).Msg("key file written")
	}

	fmt.Println(keypair.PublicKey())
	if flagShow {
		fmt.Println(wallet.FormatByteArray(keypair.Bytes()))
		fmt.Println(keypair.Base58())
	}

	return success
}
