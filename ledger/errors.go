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

package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"

	"github.com/optakt/sol-transactor/failure"
)

// Names of the remote methods, used as error context.
const (
	methodBalance   = "getBalance"
	methodBlockhash = "getLatestBlockhash"
	methodFee       = "getFeeForMessage"
	methodAirdrop   = "requestAirdrop"
	methodSend      = "sendTransaction"
	methodStatus    = "getSignatureStatuses"
)

const statusTooManyRequests = 429

// JSON-RPC error codes of the ledger that report a transient condition of the
// node rather than a refusal of the request.
const (
	codeInternal             = -32603
	codeBlockNotAvailable    = -32004
	codeNodeUnhealthy        = -32005
	codeSlotSkipped          = -32007
	codeLongTermSlotSkipped  = -32009
	codeMinContextNotReached = -32016
)

var transient = map[int]struct{}{
	codeBlockNotAvailable:    {},
	codeNodeUnhealthy:        {},
	codeSlotSkipped:          {},
	codeLongTermSlotSkipped:  {},
	codeMinContextNotReached: {},
}

// classify maps an error returned by the RPC layer onto the failure taxonomy.
// Refusals reported by the ledger itself become rejections. Transient node
// conditions and everything else are treated as network failures.
func classify(method string, err error) error {

	if errors.Is(err, rpc.ErrNotFound) {
		return failure.NotFound{
			Description: failure.NewDescription("no result for request", failure.WithErr(err)),
			Method:      method,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return failure.Network{
			Description: failure.NewDescription("request interrupted", failure.WithErr(err)),
			Method:      method,
		}
	}

	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		description := failure.NewDescription(rpcErr.Message,
			failure.WithInt("code", rpcErr.Code),
		)
		if isTransient(method, rpcErr.Code) {
			return failure.Network{Description: description, Method: method}
		}
		return failure.Rejected{Description: description, Method: method}
	}

	var httpErr *jsonrpc.HTTPError
	if errors.As(err, &httpErr) {
		return failure.Network{
			Description: failure.NewDescription("unexpected HTTP status",
				failure.WithInt("status", httpErr.Code),
			),
			Method: method,
		}
	}

	return failure.Network{
		Description: failure.NewDescription("request failed", failure.WithErr(err)),
		Method:      method,
	}
}

// classifyAirdrop recognizes the throttling answers of the faucet before
// falling back to the generic classification.
func classifyAirdrop(address solana.PublicKey, err error) error {

	var httpErr *jsonrpc.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code == statusTooManyRequests {
		return failure.RateLimit{
			Description: failure.NewDescription("too many airdrop requests",
				failure.WithInt("status", httpErr.Code),
			),
			Address:     address,
		}
	}

	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) && (rpcErr.Code == statusTooManyRequests || throttled(rpcErr.Message)) {
		return failure.RateLimit{
			Description: failure.NewDescription(rpcErr.Message, failure.WithInt("code", rpcErr.Code)),
			Address:     address,
		}
	}

	return classify(methodAirdrop, err)
}

// isTransient returns whether the error code reports a condition of the node
// that may clear on its own. Internal errors only count as such outside of
// transaction submission, where they also carry preflight refusals.
func isTransient(method string, code int) bool {
	_, ok := transient[code]
	if ok {
		return true
	}
	return code == codeInternal && method != methodSend
}

func throttled(message string) bool {
	message = strings.ToLower(message)
	return strings.Contains(message, "limit") || strings.Contains(message, "too many")
}
