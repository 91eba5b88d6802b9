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

package sol

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const (
	SolSymbol      = "SOL"
	SolDecimals    = 9
	LamportsPerSOL = 1_000_000_000

	SolDevnet  = "devnet"
	SolTestnet = "testnet"
	SolMainnet = "mainnet-beta"
)

// Default amounts, in lamports, used by the command line tools.
const (
	DefaultAirdrop  = uint64(2 * LamportsPerSOL)
	DefaultTransfer = uint64(1_000_000)
)

var SolParams = make(map[string]Params)

// Params holds the per-cluster parameters needed to reach a network and to
// point users at its block explorer.
type Params struct {
	Cluster string
	RPC     string
	Faucet  bool
}

func init() {

	// Public RPC endpoints are taken from the cluster definitions of the SDK:
	// https://docs.solana.com/clusters
	SolParams[SolDevnet] = Params{
		Cluster: SolDevnet,
		RPC:     rpc.DevNet.RPC,
		Faucet:  true,
	}
	SolParams[SolTestnet] = Params{
		Cluster: SolTestnet,
		RPC:     rpc.TestNet.RPC,
		Faucet:  true,
	}
	SolParams[SolMainnet] = Params{
		Cluster: SolMainnet,
		RPC:     rpc.MainNetBeta.RPC,
		Faucet:  false,
	}
}

// ExplorerURL returns the block explorer link for the given transaction
// signature on the cluster.
func (p Params) ExplorerURL(signature solana.Signature) string {
	if p.Cluster == SolMainnet {
		return fmt.Sprintf("https://explorer.solana.com/tx/%s", signature)
	}
	return fmt.Sprintf("https://explorer.solana.com/tx/%s?cluster=%s", signature, p.Cluster)
}

// FormatSOL writes an amount of lamports in SOL, without trailing zeros.
func FormatSOL(lamports uint64) string {
	whole := lamports / LamportsPerSOL
	fraction := lamports % LamportsPerSOL
	if fraction == 0 {
		return fmt.Sprintf("%d %s", whole, SolSymbol)
	}
	decimals := strings.TrimRight(fmt.Sprintf("%0*d", SolDecimals, fraction), "0")
	return fmt.Sprintf("%d.%s %s", whole, decimals, SolSymbol)
}
