package chainio

import (
	"context"
	"fmt"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

type queryClient struct {
	rpcClient *rpchttp.HTTP
	clientCtx client.Context
}

// NewQueryClient opens a read-only connection to a chain RPC endpoint.
func NewQueryClient(rpcUri string) (QueryClient, error) {
	rpcClient, err := rpchttp.New(rpcUri, "/websocket")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rpc %s: %w", rpcUri, err)
	}
	enc := makeEncodingConfig()
	clientCtx := client.Context{}.
		WithClient(rpcClient).
		WithCodec(enc.Codec).
		WithInterfaceRegistry(enc.InterfaceRegistry).
		WithTxConfig(enc.TxConfig)

	return &queryClient{rpcClient: rpcClient, clientCtx: clientCtx}, nil
}

// QuerySmart runs a contract smart query and returns the raw JSON response.
func (q *queryClient) QuerySmart(ctx context.Context, contractAddr string, query []byte) ([]byte, error) {
	res, err := wasmtypes.NewQueryClient(q.clientCtx).SmartContractState(ctx, &wasmtypes.QuerySmartContractStateRequest{
		Address:   contractAddr,
		QueryData: query,
	})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// QueryBankBalance returns the native bank balance of address in denom.
func (q *queryClient) QueryBankBalance(ctx context.Context, address, denom string) (sdk.Coin, error) {
	res, err := banktypes.NewQueryClient(q.clientCtx).Balance(ctx, &banktypes.QueryBalanceRequest{
		Address: address,
		Denom:   denom,
	})
	if err != nil {
		return sdk.Coin{}, err
	}
	return *res.Balance, nil
}

func (q *queryClient) QueryNodeStatus(ctx context.Context) (*coretypes.ResultStatus, error) {
	return q.rpcClient.Status(ctx)
}
