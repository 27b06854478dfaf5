package chainio

import (
	"context"

	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Config describes one chain connection.
type Config struct {
	ChainId      string
	Rpc          string
	Bech32Prefix string
	FeeDenom     string
	// BaseFee is the fee charged per unit of gas.
	BaseFee float64
	// GasAdjustment is the safety multiplier applied to simulated gas.
	GasAdjustment float64
}

// ExecuteOptions carries one contract execute call.
type ExecuteOptions struct {
	ContractAddr string
	ExecuteMsg   []byte
	// Funds is a parseable coin list, e.g. "100000untrn". Empty means no
	// funds attached.
	Funds string
	Memo  string
}

// TxResult is the outcome of a broadcast.
type TxResult struct {
	Hash         string `json:"hash"`
	Code         uint32 `json:"code"`
	RawLog       string `json:"raw_log"`
	GasSimulated uint64 `json:"gas_simulated"`
	GasWanted    uint64 `json:"gas_wanted"`
	FeeAmount    string `json:"fee_amount"`
}

// QueryClient is the read-only surface of a chain connection. It is
// available before any wallet is enabled.
type QueryClient interface {
	QuerySmart(ctx context.Context, contractAddr string, query []byte) ([]byte, error)
	QueryBankBalance(ctx context.Context, address, denom string) (sdk.Coin, error)
	QueryNodeStatus(ctx context.Context) (*coretypes.ResultStatus, error)
}

// ChainIO is a signing chain connection: the read-only surface plus the
// simulate, sign and broadcast pipeline.
type ChainIO interface {
	QueryClient

	ChainId() string
	// Sender is the connected account's address under this chain's prefix.
	Sender() string
	SendMsgs(ctx context.Context, msgs []sdk.Msg, memo string) (*TxResult, error)
	Execute(ctx context.Context, opts ExecuteOptions) (*TxResult, error)
}
