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

package ledger_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/sol-transactor/failure"
	"github.com/optakt/sol-transactor/ledger"
	"github.com/optakt/sol-transactor/testing/mocks"
)

func fastClient(t *testing.T, api ledger.RPC, options ...ledger.Option) *ledger.Client {
	t.Helper()

	options = append([]ledger.Option{
		ledger.WithPollInterval(time.Millisecond),
		ledger.WithConfirmTimeout(50 * time.Millisecond),
	}, options...)

	client, err := ledger.NewClient(mocks.NoopLogger, api, options...)
	require.NoError(t, err)

	return client
}

func TestNewClient(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		client, err := ledger.NewClient(mocks.NoopLogger, mocks.BaselineRPC(t))

		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("handles invalid commitment", func(t *testing.T) {
		t.Parallel()

		_, err := ledger.NewClient(mocks.NoopLogger, mocks.BaselineRPC(t), ledger.WithCommitment("recent"))

		assert.Error(t, err)
	})

	t.Run("handles zero poll interval", func(t *testing.T) {
		t.Parallel()

		_, err := ledger.NewClient(mocks.NoopLogger, mocks.BaselineRPC(t), ledger.WithPollInterval(0))

		assert.Error(t, err)
	})

	t.Run("handles timeout shorter than poll interval", func(t *testing.T) {
		t.Parallel()

		_, err := ledger.NewClient(mocks.NoopLogger, mocks.BaselineRPC(t),
			ledger.WithPollInterval(time.Second),
			ledger.WithConfirmTimeout(time.Millisecond),
		)

		assert.Error(t, err)
	})

	t.Run("handles invalid rate limit", func(t *testing.T) {
		t.Parallel()

		_, err := ledger.NewClient(mocks.NoopLogger, mocks.BaselineRPC(t), ledger.WithRateLimit(-1, 1))

		assert.Error(t, err)
	})
}

func TestDial(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		client, err := ledger.Dial(mocks.NoopLogger, "http://127.0.0.1:8899")

		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("with rate limit", func(t *testing.T) {
		t.Parallel()

		client, err := ledger.Dial(mocks.NoopLogger, "http://127.0.0.1:8899", ledger.WithRateLimit(2, 5))

		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("handles invalid endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := ledger.Dial(mocks.NoopLogger, "not an endpoint")

		assert.Error(t, err)
	})
}

func TestClient_Balance(t *testing.T) {
	address := mocks.GenericAddress(0)

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetBalanceFunc = func(_ context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
			assert.Equal(t, address, account)
			assert.Equal(t, rpc.CommitmentFinalized, commitment)
			return &rpc.GetBalanceResult{Value: mocks.GenericBalance}, nil
		}
		client := fastClient(t, api, ledger.WithCommitment(rpc.CommitmentFinalized))

		balance, err := client.Balance(context.Background(), address)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericBalance, balance)
	})

	t.Run("unfunded account has zero balance", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetBalanceFunc = func(context.Context, solana.PublicKey, rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
			return &rpc.GetBalanceResult{Value: 0}, nil
		}
		client := fastClient(t, api)

		balance, err := client.Balance(context.Background(), address)

		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("handles transport failure", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetBalanceFunc = func(context.Context, solana.PublicKey, rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
			return nil, mocks.GenericError
		}
		client := fastClient(t, api)

		_, err := client.Balance(context.Background(), address)

		var network failure.Network
		require.ErrorAs(t, err, &network)
		assert.Equal(t, "getBalance", network.Method)
	})

	t.Run("handles refused request", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetBalanceFunc = func(context.Context, solana.PublicKey, rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
			return nil, &jsonrpc.RPCError{Code: -32602, Message: "Invalid param"}
		}
		client := fastClient(t, api)

		_, err := client.Balance(context.Background(), address)

		assert.ErrorAs(t, err, &failure.Rejected{})
	})

	t.Run("handles missing account", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetBalanceFunc = func(context.Context, solana.PublicKey, rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
			return nil, rpc.ErrNotFound
		}
		client := fastClient(t, api)

		_, err := client.Balance(context.Background(), address)

		assert.ErrorAs(t, err, &failure.NotFound{})
	})

	t.Run("handles expired context", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetBalanceFunc = func(ctx context.Context, _ solana.PublicKey, _ rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		client := fastClient(t, api)

		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()
		_, err := client.Balance(ctx, address)

		assert.ErrorAs(t, err, &failure.Network{})
	})
}

func TestClient_Unhealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","error":{"code":-32005,"message":"Node is unhealthy"},"id":1}`))
	}))
	defer server.Close()

	client, err := ledger.Dial(mocks.NoopLogger, server.URL)
	require.NoError(t, err)

	_, err = client.Balance(context.Background(), mocks.GenericAddress(0))

	var network failure.Network
	require.ErrorAs(t, err, &network)
	assert.Equal(t, "getBalance", network.Method)

	var rejected failure.Rejected
	assert.False(t, errors.As(err, &rejected))
}

func TestClient_LatestBlockhash(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		client := fastClient(t, mocks.BaselineRPC(t))

		blockhash, err := client.LatestBlockhash(context.Background())

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericBlockhash, blockhash.Hash)
		assert.Equal(t, mocks.GenericHeight, blockhash.LastValidHeight)
	})

	t.Run("handles empty response", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetLatestBlockhashFunc = func(context.Context, rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
			return &rpc.GetLatestBlockhashResult{}, nil
		}
		client := fastClient(t, api)

		_, err := client.LatestBlockhash(context.Background())

		assert.ErrorAs(t, err, &failure.Network{})
	})

	t.Run("handles transport failure", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetLatestBlockhashFunc = func(context.Context, rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
			return nil, mocks.GenericError
		}
		client := fastClient(t, api)

		_, err := client.LatestBlockhash(context.Background())

		assert.ErrorAs(t, err, &failure.Network{})
	})
}

func TestClient_Fee(t *testing.T) {
	message := &mocks.GenericTransaction(0).Message

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		data, err := message.MarshalBinary()
		require.NoError(t, err)

		api := mocks.BaselineRPC(t)
		api.GetFeeForMessageFunc = func(_ context.Context, encoded string, _ rpc.CommitmentType) (*rpc.GetFeeForMessageResult, error) {
			assert.Equal(t, base64.StdEncoding.EncodeToString(data), encoded)
			fee := mocks.GenericFee
			return &rpc.GetFeeForMessageResult{Value: &fee}, nil
		}
		client := fastClient(t, api)

		fee, err := client.Fee(context.Background(), message)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericFee, fee)
	})

	t.Run("handles unknown blockhash", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetFeeForMessageFunc = func(context.Context, string, rpc.CommitmentType) (*rpc.GetFeeForMessageResult, error) {
			return &rpc.GetFeeForMessageResult{}, nil
		}
		client := fastClient(t, api)

		_, err := client.Fee(context.Background(), message)

		assert.ErrorAs(t, err, &failure.Rejected{})
	})

	t.Run("handles transport failure", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetFeeForMessageFunc = func(context.Context, string, rpc.CommitmentType) (*rpc.GetFeeForMessageResult, error) {
			return nil, mocks.GenericError
		}
		client := fastClient(t, api)

		_, err := client.Fee(context.Background(), message)

		assert.ErrorAs(t, err, &failure.Network{})
	})
}

func TestClient_Airdrop(t *testing.T) {
	address := mocks.GenericAddress(0)

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.RequestAirdropFunc = func(_ context.Context, account solana.PublicKey, lamports uint64, _ rpc.CommitmentType) (solana.Signature, error) {
			assert.Equal(t, address, account)
			assert.Equal(t, mocks.GenericBalance, lamports)
			return mocks.GenericSignature(1), nil
		}
		client := fastClient(t, api)

		signature, err := client.Airdrop(context.Background(), address, mocks.GenericBalance)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericSignature(1), signature)
	})

	t.Run("handles throttling without retrying", func(t *testing.T) {
		t.Parallel()

		throttles := []error{
			&jsonrpc.RPCError{Code: 429, Message: "Too many requests for a specific RPC call"},
			&jsonrpc.RPCError{Code: -32603, Message: "Internal error: airdrop request limit reached"},
			&jsonrpc.HTTPError{Code: 429},
		}

		for _, throttle := range throttles {
			throttle := throttle
			calls := 0
			api := mocks.BaselineRPC(t)
			api.RequestAirdropFunc = func(context.Context, solana.PublicKey, uint64, rpc.CommitmentType) (solana.Signature, error) {
				calls++
				return solana.Signature{}, throttle
			}
			client := fastClient(t, api)

			_, err := client.Airdrop(context.Background(), address, mocks.GenericBalance)

			var limited failure.RateLimit
			require.ErrorAs(t, err, &limited)
			assert.Equal(t, address, limited.Address)
			assert.Equal(t, 1, calls)
		}
	})

	t.Run("handles server failure", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.RequestAirdropFunc = func(context.Context, solana.PublicKey, uint64, rpc.CommitmentType) (solana.Signature, error) {
			return solana.Signature{}, &jsonrpc.HTTPError{Code: 502}
		}
		client := fastClient(t, api)

		_, err := client.Airdrop(context.Background(), address, mocks.GenericBalance)

		assert.ErrorAs(t, err, &failure.Network{})
	})
}

func TestClient_Submit(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		tx := mocks.GenericTransaction(0)
		api := mocks.BaselineRPC(t)
		api.SendTransactionWithOptsFunc = func(_ context.Context, transaction *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error) {
			assert.Equal(t, tx, transaction)
			assert.False(t, opts.SkipPreflight)
			assert.Equal(t, rpc.CommitmentConfirmed, opts.PreflightCommitment)
			return transaction.Signatures[0], nil
		}
		client := fastClient(t, api)

		signature, err := client.Submit(context.Background(), tx)

		require.NoError(t, err)
		assert.Equal(t, tx.Signatures[0], signature)
	})

	t.Run("handles tampered message without sending", func(t *testing.T) {
		t.Parallel()

		tx := mocks.GenericTransaction(0)
		tx.Message.RecentBlockhash = solana.Hash{}

		sent := false
		api := mocks.BaselineRPC(t)
		api.SendTransactionWithOptsFunc = func(context.Context, *solana.Transaction, rpc.TransactionOpts) (solana.Signature, error) {
			sent = true
			return solana.Signature{}, nil
		}
		client := fastClient(t, api)

		_, err := client.Submit(context.Background(), tx)

		assert.ErrorAs(t, err, &failure.Rejected{})
		assert.False(t, sent)
	})

	t.Run("handles missing signature without sending", func(t *testing.T) {
		t.Parallel()

		tx := mocks.GenericTransaction(0)
		tx.Signatures = nil

		sent := false
		api := mocks.BaselineRPC(t)
		api.SendTransactionWithOptsFunc = func(context.Context, *solana.Transaction, rpc.TransactionOpts) (solana.Signature, error) {
			sent = true
			return solana.Signature{}, nil
		}
		client := fastClient(t, api)

		_, err := client.Submit(context.Background(), tx)

		assert.ErrorAs(t, err, &failure.Rejected{})
		assert.False(t, sent)
	})

	t.Run("resubmission is rejected and applied once", func(t *testing.T) {
		t.Parallel()

		applied := make(map[solana.Signature]int)
		api := mocks.BaselineRPC(t)
		api.SendTransactionWithOptsFunc = func(_ context.Context, transaction *solana.Transaction, _ rpc.TransactionOpts) (solana.Signature, error) {
			signature := transaction.Signatures[0]
			if applied[signature] > 0 {
				return solana.Signature{}, &jsonrpc.RPCError{
					Code:    -32002,
					Message: "Transaction simulation failed: This transaction has already been processed",
				}
			}
			applied[signature]++
			return signature, nil
		}
		client := fastClient(t, api)

		tx := mocks.GenericTransaction(0)
		_, err := client.Submit(context.Background(), tx)
		require.NoError(t, err)

		_, err = client.Submit(context.Background(), tx)

		var rejected failure.Rejected
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, "sendTransaction", rejected.Method)
		assert.Equal(t, 1, applied[tx.Signatures[0]])
	})

	t.Run("handles failed transaction", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetSignatureStatusesFunc = func(context.Context, bool, ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
			out := rpc.GetSignatureStatusesResult{
				Value: []*rpc.SignatureStatusesResult{
					{
						ConfirmationStatus: rpc.ConfirmationStatusConfirmed,
						Err:                map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}},
					},
				},
			}
			return &out, nil
		}
		client := fastClient(t, api)

		tx := mocks.GenericTransaction(0)
		signature, err := client.Submit(context.Background(), tx)

		assert.ErrorAs(t, err, &failure.Rejected{})
		assert.Equal(t, tx.Signatures[0], signature)
	})

	t.Run("handles confirmation timeout", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetSignatureStatusesFunc = func(context.Context, bool, ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
			out := rpc.GetSignatureStatusesResult{
				Value: []*rpc.SignatureStatusesResult{
					{ConfirmationStatus: rpc.ConfirmationStatusProcessed},
				},
			}
			return &out, nil
		}
		client := fastClient(t, api, ledger.WithConfirmTimeout(10*time.Millisecond))

		tx := mocks.GenericTransaction(0)
		signature, err := client.Submit(context.Background(), tx)

		var timeout failure.Timeout
		require.ErrorAs(t, err, &timeout)
		assert.Equal(t, tx.Signatures[0], timeout.Signature)
		assert.Equal(t, tx.Signatures[0], signature)
	})
}

func TestClient_Confirm(t *testing.T) {
	signature := mocks.GenericSignature(0)

	t.Run("waits for transaction to appear", func(t *testing.T) {
		t.Parallel()

		calls := 0
		api := mocks.BaselineRPC(t)
		api.GetSignatureStatusesFunc = func(_ context.Context, _ bool, signatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
			assert.Equal(t, []solana.Signature{signature}, signatures)
			calls++
			if calls < 3 {
				return &rpc.GetSignatureStatusesResult{Value: []*rpc.SignatureStatusesResult{nil}}, nil
			}
			out := rpc.GetSignatureStatusesResult{
				Value: []*rpc.SignatureStatusesResult{
					{ConfirmationStatus: rpc.ConfirmationStatusFinalized},
				},
			}
			return &out, nil
		}
		client := fastClient(t, api)

		err := client.Confirm(context.Background(), signature)

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("handles status failure", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetSignatureStatusesFunc = func(context.Context, bool, ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
			return nil, mocks.GenericError
		}
		client := fastClient(t, api)

		err := client.Confirm(context.Background(), signature)

		assert.ErrorAs(t, err, &failure.Network{})
	})

	t.Run("handles cancelled context", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetSignatureStatusesFunc = func(context.Context, bool, ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
			return &rpc.GetSignatureStatusesResult{}, nil
		}
		client := fastClient(t, api)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := client.Confirm(ctx, signature)

		var timeout failure.Timeout
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, errors.As(err, &timeout))
	})
}

func TestClient_Status(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		client := fastClient(t, mocks.BaselineRPC(t))

		status, err := client.Status(context.Background(), mocks.GenericSignature(0))

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericHeight, status.Slot)
		assert.Equal(t, rpc.ConfirmationStatusConfirmed, status.Level)
		assert.Nil(t, status.Err)
	})

	t.Run("handles unknown signature", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineRPC(t)
		api.GetSignatureStatusesFunc = func(context.Context, bool, ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
			return &rpc.GetSignatureStatusesResult{Value: []*rpc.SignatureStatusesResult{nil}}, nil
		}
		client := fastClient(t, api)

		_, err := client.Status(context.Background(), mocks.GenericSignature(0))

		assert.ErrorAs(t, err, &failure.NotFound{})
	})
}

func TestStatus_Reached(t *testing.T) {
	processed := ledger.Status{Level: rpc.ConfirmationStatusProcessed}
	confirmed := ledger.Status{Level: rpc.ConfirmationStatusConfirmed}
	finalized := ledger.Status{Level: rpc.ConfirmationStatusFinalized}
	unknown := ledger.Status{}

	assert.True(t, processed.Reached(rpc.CommitmentProcessed))
	assert.False(t, processed.Reached(rpc.CommitmentConfirmed))
	assert.True(t, confirmed.Reached(rpc.CommitmentConfirmed))
	assert.False(t, confirmed.Reached(rpc.CommitmentFinalized))
	assert.True(t, finalized.Reached(rpc.CommitmentConfirmed))
	assert.False(t, unknown.Reached(rpc.CommitmentProcessed))
}
