package chainio

import (
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// NewExecuteMsg builds a contract execute message. Pure construction; the
// payload is the contract's JSON execute body.
func NewExecuteMsg(sender, contract string, payload []byte, funds sdk.Coins) *wasmtypes.MsgExecuteContract {
	return &wasmtypes.MsgExecuteContract{
		Sender:   sender,
		Contract: contract,
		Msg:      payload,
		Funds:    funds,
	}
}
