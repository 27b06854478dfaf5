package chainio

import (
	"context"
	"fmt"

	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	clienttx "github.com/cosmos/cosmos-sdk/client/tx"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"go.uber.org/zap"

	"github.com/InterChadz/awesomewasm-2024/metrics"
)

type chainIO struct {
	queryClient

	cfg        Config
	keyName    string
	sender     string
	senderAddr sdk.AccAddress
	feeCalc    FeeCalculator
	log        *zap.Logger
	indicators *metrics.TxProcess
}

// New opens a signing connection to a chain. The keyring holds the signing
// key; keyName selects it. The sender address is the key's address encoded
// under the chain's bech32 prefix.
func New(cfg Config, kr keyring.Keyring, keyName string, log *zap.Logger, indicators *metrics.TxProcess) (ChainIO, error) {
	rpcClient, err := rpchttp.New(cfg.Rpc, "/websocket")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rpc %s: %w", cfg.Rpc, err)
	}

	record, err := kr.Key(keyName)
	if err != nil {
		return nil, fmt.Errorf("key %s not found: %w", keyName, err)
	}
	addr, err := record.GetAddress()
	if err != nil {
		return nil, err
	}
	sender, err := bech32.ConvertAndEncode(cfg.Bech32Prefix, addr.Bytes())
	if err != nil {
		return nil, err
	}

	enc := makeEncodingConfig()
	clientCtx := client.Context{}.
		WithChainID(cfg.ChainId).
		WithClient(rpcClient).
		WithCodec(enc.Codec).
		WithInterfaceRegistry(enc.InterfaceRegistry).
		WithTxConfig(enc.TxConfig).
		WithAccountRetriever(authtypes.AccountRetriever{}).
		WithKeyring(kr).
		WithBroadcastMode(flags.BroadcastSync).
		WithFromName(keyName).
		WithFromAddress(addr)

	return &chainIO{
		queryClient: queryClient{rpcClient: rpcClient, clientCtx: clientCtx},
		cfg:         cfg,
		keyName:     keyName,
		sender:      sender,
		senderAddr:  addr,
		feeCalc: FeeCalculator{
			Denom:         cfg.FeeDenom,
			BaseFee:       cfg.BaseFee,
			GasAdjustment: cfg.GasAdjustment,
		},
		log:        log,
		indicators: indicators,
	}, nil
}

func (c *chainIO) ChainId() string {
	return c.cfg.ChainId
}

func (c *chainIO) Sender() string {
	return c.sender
}

// SendMsgs simulates the messages, derives the fee from the simulated gas
// and broadcasts the signed transaction. Simulation and broadcast errors
// are returned unchanged; nothing is retried here.
func (c *chainIO) SendMsgs(ctx context.Context, msgs []sdk.Msg, memo string) (*TxResult, error) {
	accNum, accSeq, err := c.clientCtx.AccountRetriever.GetAccountNumberSequence(c.clientCtx, c.senderAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", c.sender, err)
	}

	txf := clienttx.Factory{}.
		WithChainID(c.cfg.ChainId).
		WithKeybase(c.clientCtx.Keyring).
		WithTxConfig(c.clientCtx.TxConfig).
		WithAccountRetriever(c.clientCtx.AccountRetriever).
		WithAccountNumber(accNum).
		WithSequence(accSeq).
		WithSignMode(signing.SignMode_SIGN_MODE_DIRECT).
		WithMemo(memo)

	simRes, _, err := clienttx.CalculateGas(c.clientCtx, txf, msgs...)
	if err != nil {
		c.indicators.ObserveSubmit(c.cfg.ChainId, 0, err)
		return nil, err
	}
	gasSimulated := simRes.GasInfo.GasUsed

	gasLimit, feeCoins := c.feeCalc.Fee(gasSimulated)
	txf = txf.WithGas(gasLimit).WithFees(feeCoins.String())
	c.log.Debug("simulated tx",
		zap.String("chain_id", c.cfg.ChainId),
		zap.Uint64("gas_simulated", gasSimulated),
		zap.Uint64("gas_limit", gasLimit),
		zap.String("fee", feeCoins.String()))

	builder, err := txf.BuildUnsignedTx(msgs...)
	if err != nil {
		return nil, err
	}
	if err := clienttx.Sign(ctx, txf, c.keyName, builder, true); err != nil {
		return nil, err
	}
	txBytes, err := c.clientCtx.TxConfig.TxEncoder()(builder.GetTx())
	if err != nil {
		return nil, err
	}

	res, err := c.clientCtx.BroadcastTxSync(txBytes)
	c.indicators.ObserveSubmit(c.cfg.ChainId, gasSimulated, err)
	if err != nil {
		return nil, err
	}
	return &TxResult{
		Hash:         res.TxHash,
		Code:         res.Code,
		RawLog:       res.RawLog,
		GasSimulated: gasSimulated,
		GasWanted:    gasLimit,
		FeeAmount:    feeCoins.String(),
	}, nil
}

// Execute submits one contract execute message built from opts.
func (c *chainIO) Execute(ctx context.Context, opts ExecuteOptions) (*TxResult, error) {
	funds := sdk.Coins{}
	if opts.Funds != "" {
		var err error
		funds, err = sdk.ParseCoinsNormalized(opts.Funds)
		if err != nil {
			return nil, fmt.Errorf("invalid funds %q: %w", opts.Funds, err)
		}
	}
	msg := NewExecuteMsg(c.sender, opts.ContractAddr, opts.ExecuteMsg, funds)
	return c.SendMsgs(ctx, []sdk.Msg{msg}, opts.Memo)
}
