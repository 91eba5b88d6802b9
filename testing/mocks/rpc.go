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

package mocks

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

type RPC struct {
	GetBalanceFunc              func(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetLatestBlockhashFunc      func(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	GetFeeForMessageFunc        func(ctx context.Context, message string, commitment rpc.CommitmentType) (*rpc.GetFeeForMessageResult, error)
	RequestAirdropFunc          func(ctx context.Context, account solana.PublicKey, lamports uint64, commitment rpc.CommitmentType) (solana.Signature, error)
	SendTransactionWithOptsFunc func(ctx context.Context, transaction *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatusesFunc    func(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
}

// BaselineRPC returns an RPC API on which every call succeeds and every
// transaction is confirmed on the first status lookup.
func BaselineRPC(t *testing.T) *RPC {
	t.Helper()

	r := RPC{
		GetBalanceFunc: func(context.Context, solana.PublicKey, rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
			return &rpc.GetBalanceResult{Value: GenericBalance}, nil
		},
		GetLatestBlockhashFunc: func(context.Context, rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
			out := rpc.GetLatestBlockhashResult{
				Value: &rpc.LatestBlockhashResult{
					Blockhash:            GenericBlockhash,
					LastValidBlockHeight: GenericHeight,
				},
			}
			return &out, nil
		},
		GetFeeForMessageFunc: func(context.Context, string, rpc.CommitmentType) (*rpc.GetFeeForMessageResult, error) {
			fee := GenericFee
			return &rpc.GetFeeForMessageResult{Value: &fee}, nil
		},
		RequestAirdropFunc: func(context.Context, solana.PublicKey, uint64, rpc.CommitmentType) (solana.Signature, error) {
			return GenericSignature(0), nil
		},
		SendTransactionWithOptsFunc: func(_ context.Context, transaction *solana.Transaction, _ rpc.TransactionOpts) (solana.Signature, error) {
			return transaction.Signatures[0], nil
		},
		GetSignatureStatusesFunc: func(context.Context, bool, ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
			out := rpc.GetSignatureStatusesResult{
				Value: []*rpc.SignatureStatusesResult{
					{
						Slot:               GenericHeight,
						ConfirmationStatus: rpc.ConfirmationStatusConfirmed,
					},
				},
			}
			return &out, nil
		},
	}

	return &r
}

func (r *RPC) GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
	return r.GetBalanceFunc(ctx, account, commitment)
}

func (r *RPC) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	return r.GetLatestBlockhashFunc(ctx, commitment)
}

func (r *RPC) GetFeeForMessage(ctx context.Context, message string, commitment rpc.CommitmentType) (*rpc.GetFeeForMessageResult, error) {
	return r.GetFeeForMessageFunc(ctx, message, commitment)
}

func (r *RPC) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64, commitment rpc.CommitmentType) (solana.Signature, error) {
	return r.RequestAirdropFunc(ctx, account, lamports, commitment)
}

func (r *RPC) SendTransactionWithOpts(ctx context.Context, transaction *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error) {
	return r.SendTransactionWithOptsFunc(ctx, transaction, opts)
}

func (r *RPC) GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	return r.GetSignatureStatusesFunc(ctx, searchTransactionHistory, transactionSignatures...)
}
