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
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/sol-transactor/ledger"
	"github.com/optakt/sol-transactor/metrics"
	"github.com/optakt/sol-transactor/metrics/output"
	"github.com/optakt/sol-transactor/models/sol"
	"github.com/optakt/sol-transactor/runner"
	"github.com/optakt/sol-transactor/transactor"
	"github.com/optakt/sol-transactor/wallet"
)

const (
	success = 0
	failure = 1
)

const metricsInterval = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Defaults can be provided by a `.env` file in the working directory.
	_ = godotenv.Load()

	// Command line parameter initialization.
	var (
		flagAmount     uint64
		flagCluster    string
		flagCommitment string
		flagKeypair    string
		flagLevel      string
		flagMetrics    string
		flagRate       float64
		flagRecipient  string
		flagRPC        string
		flagTimeout    time.Duration
	)

	pflag.Uint64VarP(&flagAmount, "amount", "a", sol.DefaultTransfer, "amount to transfer in lamports")
	pflag.StringVarP(&flagCluster, "cluster", "c", sol.SolDevnet, "cluster to use for defaults and explorer links")
	pflag.StringVar(&flagCommitment, "commitment", string(rpc.CommitmentConfirmed), "commitment level to wait for")
	pflag.StringVarP(&flagKeypair, "keypair", "k", os.Getenv("SOLANA_KEYPAIR"), "path to the JSON key file of the payer")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVar(&flagMetrics, "metrics", "", "path of a file to write request metrics to (empty to skip)")
	pflag.Float64Var(&flagRate, "rate", 0, "maximum number of RPC requests per second (0 for unlimited)")
	pflag.StringVar(&flagRecipient, "recipient", os.Getenv("SOLANA_RECIPIENT"), "address of the recipient")
	pflag.StringVarP(&flagRPC, "rpc", "r", os.Getenv("SOLANA_RPC_URL"), "URL of the JSON-RPC endpoint (defaults to the cluster endpoint)")
	pflag.DurationVar(&flagTimeout, "timeout", ledger.DefaultConfig.ConfirmTimeout, "maximum time to wait for confirmation")

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

	params, ok := sol.SolParams[flagCluster]
	if !ok {
		log.Error().Str("cluster", flagCluster).Msg("unknown cluster")
		return failure
	}
	if flagRPC == "" {
		flagRPC = params.RPC
	}

	recipient, err := solana.PublicKeyFromBase58(flagRecipient)
	if err != nil {
		log.Error().Str("recipient", flagRecipient).Err(err).Msg("could not parse recipient address")
		return failure
	}

	payer, err := wallet.Load(flagKeypair)
	if err != nil {
		log.Error().Str("keypair", flagKeypair).Err(err).Msg("could not load keypair")
		return failure
	}

	client, err := ledger.Dial(log, flagRPC,
		ledger.WithCommitment(rpc.CommitmentType(flagCommitment)),
		ledger.WithConfirmTimeout(flagTimeout),
		ledger.WithRateLimit(flagRate, 1),
	)
	if err != nil {
		log.Error().Str("rpc", flagRPC).Err(err).Msg("could not initialize ledger client")
		return failure
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sig
		log.Info().Msg("interrupting operation")
		cancel()
	}()

	registry := prometheus.NewRegistry()
	out := output.New(log, registry, metricsInterval)
	out.Run()
	defer func() {
		out.Stop()
		if flagMetrics == "" {
			return
		}
		err := prometheus.WriteToTextfile(flagMetrics, registry)
		if err != nil {
			log.Warn().Str("metrics", flagMetrics).Err(err).Msg("could not write metrics")
		}
	}()

	ops := runner.New(log, metrics.NewMetricsLedger(client, registry), transactor.New())
	receipt, err := ops.Transfer(ctx, payer, recipient, flagAmount)
	if err != nil {
		log.Error().Err(err).Msg("could not transfer funds")
		if receipt.Signature != (solana.Signature{}) {
			log.Info().Str("explorer", params.ExplorerURL(receipt.Signature)).Msg("transaction was sent")
		}
		return failure
	}

	log.Info().Str("recipient", recipient.String()).Uint64("amount", receipt.Amount).Str("sol", sol.FormatSOL(receipt.Amount)).Msg("funds transferred")

	fmt.Println(params.ExplorerURL(receipt.Signature))

	return success
}
