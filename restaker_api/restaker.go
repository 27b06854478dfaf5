package RestakerApi

import (
	"context"
	"encoding/json"
	"fmt"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/InterChadz/awesomewasm-2024/chainio"
	"github.com/InterChadz/awesomewasm-2024/core"
)

// Querier is the read-only contract surface. Available as soon as a chain
// query connection exists, before any wallet is enabled.
type Querier interface {
	Config(ctx context.Context) (*ConfigResponse, error)
	SupportedChains(ctx context.Context) (*SupportedChainsResponse, error)
	UserBalance(ctx context.Context, address string) (*UserBalanceResponse, error)
	UserRegistrations(ctx context.Context, address string) (*UserRegistrationsResponse, error)
	CalculateReward(ctx context.Context, address, chainId, remoteAddress string) (*CalculateRewardResponse, error)
	DueUserChainRegistrations(ctx context.Context, delegatorsAmount uint64) (*DueUserChainRegistrationsResponse, error)
}

// Restaker adds the execute operations on top of the query surface.
type Restaker interface {
	Querier

	RegisterUser(ctx context.Context, registration core.UserChainRegistration) (*chainio.TxResult, error)
	TopupUserBalance(ctx context.Context, funds string) (*chainio.TxResult, error)
	Autocompound(ctx context.Context) (*chainio.TxResult, error)
}

// Params are the deployment constants of the contract binding.
type Params struct {
	ContractAddr string
	// RegistrationFee is attached to register_user, e.g. "100000untrn".
	RegistrationFee string
	// DelegatorsAmount is the autocompound batch size.
	DelegatorsAmount uint64
}

type querierImpl struct {
	qc           chainio.QueryClient
	contractAddr string
}

// NewQuerier binds the contract queries to a read-only chain connection.
func NewQuerier(qc chainio.QueryClient, contractAddr string) Querier {
	return &querierImpl{qc: qc, contractAddr: contractAddr}
}

type restakerImpl struct {
	querierImpl
	io     chainio.ChainIO
	params Params
}

// NewRestaker binds the full contract surface to a signing connection.
func NewRestaker(io chainio.ChainIO, params Params) Restaker {
	return &restakerImpl{
		querierImpl: querierImpl{qc: io, contractAddr: params.ContractAddr},
		io:          io,
		params:      params,
	}
}

// Message builders. Pure construction, fully determined by their inputs.

func BuildRegisterUser(sender, contract string, registration core.UserChainRegistration, fee sdk.Coins) (*wasmtypes.MsgExecuteContract, error) {
	payload, err := json.Marshal(RegisterUserReq{
		RegisterUser: RegisterUser{
			Registrations: []core.UserChainRegistration{registration},
		},
	})
	if err != nil {
		return nil, err
	}
	return chainio.NewExecuteMsg(sender, contract, payload, fee), nil
}

func BuildTopupUserBalance(sender, contract string, funds sdk.Coins) (*wasmtypes.MsgExecuteContract, error) {
	payload, err := json.Marshal(TopupUserBalanceReq{})
	if err != nil {
		return nil, err
	}
	return chainio.NewExecuteMsg(sender, contract, payload, funds), nil
}

func BuildAutocompound(sender, contract string, delegatorsAmount uint64) (*wasmtypes.MsgExecuteContract, error) {
	payload, err := json.Marshal(AutocompoundReq{
		Autocompound: Autocompound{DelegatorsAmount: delegatorsAmount},
	})
	if err != nil {
		return nil, err
	}
	return chainio.NewExecuteMsg(sender, contract, payload, nil), nil
}

// Execute operations.

func (r *restakerImpl) RegisterUser(ctx context.Context, registration core.UserChainRegistration) (*chainio.TxResult, error) {
	fee, err := sdk.ParseCoinsNormalized(r.params.RegistrationFee)
	if err != nil {
		return nil, fmt.Errorf("invalid registration fee %q: %w", r.params.RegistrationFee, err)
	}
	msg, err := BuildRegisterUser(r.io.Sender(), r.params.ContractAddr, registration, fee)
	if err != nil {
		return nil, err
	}
	return r.io.SendMsgs(ctx, []sdk.Msg{msg}, "")
}

func (r *restakerImpl) TopupUserBalance(ctx context.Context, funds string) (*chainio.TxResult, error) {
	coins, err := sdk.ParseCoinsNormalized(funds)
	if err != nil {
		return nil, fmt.Errorf("invalid funds %q: %w", funds, err)
	}
	msg, err := BuildTopupUserBalance(r.io.Sender(), r.params.ContractAddr, coins)
	if err != nil {
		return nil, err
	}
	return r.io.SendMsgs(ctx, []sdk.Msg{msg}, "")
}

func (r *restakerImpl) Autocompound(ctx context.Context) (*chainio.TxResult, error) {
	msg, err := BuildAutocompound(r.io.Sender(), r.params.ContractAddr, r.params.DelegatorsAmount)
	if err != nil {
		return nil, err
	}
	return r.io.SendMsgs(ctx, []sdk.Msg{msg}, "")
}

// Queries.

func (q *querierImpl) query(ctx context.Context, req, resp any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	data, err := q.qc.QuerySmart(ctx, q.contractAddr, body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, resp)
}

func (q *querierImpl) Config(ctx context.Context) (*ConfigResponse, error) {
	var resp ConfigResponse
	if err := q.query(ctx, ConfigReq{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (q *querierImpl) SupportedChains(ctx context.Context) (*SupportedChainsResponse, error) {
	var resp SupportedChainsResponse
	if err := q.query(ctx, SupportedChainsReq{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (q *querierImpl) UserBalance(ctx context.Context, address string) (*UserBalanceResponse, error) {
	var resp UserBalanceResponse
	if err := q.query(ctx, UserBalanceReq{UserBalance: UserBalance{Address: address}}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (q *querierImpl) UserRegistrations(ctx context.Context, address string) (*UserRegistrationsResponse, error) {
	var resp UserRegistrationsResponse
	if err := q.query(ctx, UserRegistrationsReq{UserRegistrations: UserRegistrations{Address: address}}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (q *querierImpl) CalculateReward(ctx context.Context, address, chainId, remoteAddress string) (*CalculateRewardResponse, error) {
	var resp CalculateRewardResponse
	req := CalculateRewardReq{CalculateReward: CalculateReward{
		Address:       address,
		ChainId:       chainId,
		RemoteAddress: remoteAddress,
	}}
	if err := q.query(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (q *querierImpl) DueUserChainRegistrations(ctx context.Context, delegatorsAmount uint64) (*DueUserChainRegistrationsResponse, error) {
	var resp DueUserChainRegistrationsResponse
	req := DueUserChainRegistrationsReq{DueUserChainRegistrations: DueUserChainRegistrations{
		DelegatorsAmount: delegatorsAmount,
	}}
	if err := q.query(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
