package RestakerApi

import (
	"context"
	"testing"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InterChadz/awesomewasm-2024/chainio"
	"github.com/InterChadz/awesomewasm-2024/core"
)

const testContract = "neutron14hj2tavq8fpesdwxxcu44rty3hh90vhujrvcmstl4zr3txmfvw9s5c2epq"

type mockChainIO struct {
	sender        string
	sent          []sdk.Msg
	queries       [][]byte
	queryResponse []byte
	queryErr      error
}

func (m *mockChainIO) ChainId() string { return "neutron-1" }
func (m *mockChainIO) Sender() string  { return m.sender }

func (m *mockChainIO) SendMsgs(_ context.Context, msgs []sdk.Msg, _ string) (*chainio.TxResult, error) {
	m.sent = append(m.sent, msgs...)
	return &chainio.TxResult{Hash: "ABC123", Code: 0}, nil
}

func (m *mockChainIO) Execute(ctx context.Context, opts chainio.ExecuteOptions) (*chainio.TxResult, error) {
	funds := sdk.Coins{}
	if opts.Funds != "" {
		var err error
		funds, err = sdk.ParseCoinsNormalized(opts.Funds)
		if err != nil {
			return nil, err
		}
	}
	return m.SendMsgs(ctx, []sdk.Msg{chainio.NewExecuteMsg(m.sender, opts.ContractAddr, opts.ExecuteMsg, funds)}, opts.Memo)
}

func (m *mockChainIO) QuerySmart(_ context.Context, _ string, query []byte) ([]byte, error) {
	m.queries = append(m.queries, query)
	return m.queryResponse, m.queryErr
}

func (m *mockChainIO) QueryBankBalance(_ context.Context, _, denom string) (sdk.Coin, error) {
	return sdk.NewInt64Coin(denom, 0), nil
}

func (m *mockChainIO) QueryNodeStatus(_ context.Context) (*coretypes.ResultStatus, error) {
	return &coretypes.ResultStatus{}, nil
}

func newTestRestaker(io *mockChainIO) Restaker {
	return NewRestaker(io, Params{
		ContractAddr:     testContract,
		RegistrationFee:  "100000untrn",
		DelegatorsAmount: 100,
	})
}

func TestRegisterUserPayload(t *testing.T) {
	io := &mockChainIO{sender: "neutron1sender"}
	restaker := newTestRestaker(io)

	_, err := restaker.RegisterUser(context.Background(), core.UserChainRegistration{
		ChainId:       "cosmoshub-4",
		RemoteAddress: "cosmos1abc",
		Validators:    []string{"cosmosvaloper1xyz"},
	})
	require.NoError(t, err)
	require.Len(t, io.sent, 1)

	msg, ok := io.sent[0].(*wasmtypes.MsgExecuteContract)
	require.True(t, ok)
	assert.Equal(t, "neutron1sender", msg.Sender)
	assert.Equal(t, testContract, msg.Contract)
	assert.Equal(t, "100000untrn", msg.Funds.String())
	assert.JSONEq(t, `{
		"register_user": {
			"registrations": [
				{"chain_id": "cosmoshub-4", "address": "cosmos1abc", "validators": ["cosmosvaloper1xyz"]}
			]
		}
	}`, string(msg.Msg))
}

func TestTopupUserBalancePayload(t *testing.T) {
	io := &mockChainIO{sender: "neutron1sender"}
	restaker := newTestRestaker(io)

	_, err := restaker.TopupUserBalance(context.Background(), "250000untrn")
	require.NoError(t, err)
	require.Len(t, io.sent, 1)

	msg := io.sent[0].(*wasmtypes.MsgExecuteContract)
	// funds pass through unmodified
	assert.Equal(t, "250000untrn", msg.Funds.String())
	assert.JSONEq(t, `{"topup_user_balance": {}}`, string(msg.Msg))
}

func TestTopupUserBalanceRejectsBadFunds(t *testing.T) {
	io := &mockChainIO{sender: "neutron1sender"}
	restaker := newTestRestaker(io)

	_, err := restaker.TopupUserBalance(context.Background(), "not-coins")
	assert.Error(t, err)
	assert.Empty(t, io.sent)
}

func TestAutocompoundPayload(t *testing.T) {
	io := &mockChainIO{sender: "neutron1sender"}
	restaker := newTestRestaker(io)

	_, err := restaker.Autocompound(context.Background())
	require.NoError(t, err)
	require.Len(t, io.sent, 1)

	msg := io.sent[0].(*wasmtypes.MsgExecuteContract)
	assert.True(t, msg.Funds.IsZero())
	assert.JSONEq(t, `{"autocompound": {"delegators_amount": 100}}`, string(msg.Msg))
}

func TestSupportedChainsQuery(t *testing.T) {
	io := &mockChainIO{queryResponse: []byte(`{
		"chains": [
			{"chain_id": "cosmoshub-4", "connection_id": "connection-0", "ica_address": "cosmos1ica", "autocompound_cost": "1000"}
		]
	}`)}
	querier := NewQuerier(io, testContract)

	resp, err := querier.SupportedChains(context.Background())
	require.NoError(t, err)
	require.Len(t, io.queries, 1)
	assert.JSONEq(t, `{"supported_chains": {}}`, string(io.queries[0]))

	require.Len(t, resp.Chains, 1)
	assert.Equal(t, "cosmoshub-4", resp.Chains[0].ChainId)
	assert.Equal(t, "cosmos1ica", *resp.Chains[0].IcaAddress)
}

func TestCalculateRewardQuery(t *testing.T) {
	io := &mockChainIO{queryResponse: []byte(`{"reward": 42000}`)}
	querier := NewQuerier(io, testContract)

	resp, err := querier.CalculateReward(context.Background(), "neutron1user", "cosmoshub-4", "cosmos1abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"calculate_reward": {"address": "neutron1user", "chain_id": "cosmoshub-4", "remote_address": "cosmos1abc"}
	}`, string(io.queries[0]))
	assert.Equal(t, "42000", resp.Reward.String())
}

func TestUserRegistrationsQuery(t *testing.T) {
	io := &mockChainIO{queryResponse: []byte(`{
		"user_chain_registrations": [
			{"chain_id": "osmosis-1", "address": "osmo1abc", "validators": ["osmovaloper1v"]}
		]
	}`)}
	querier := NewQuerier(io, testContract)

	resp, err := querier.UserRegistrations(context.Background(), "neutron1user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_registrations": {"address": "neutron1user"}}`, string(io.queries[0]))
	require.Len(t, resp.UserChainRegistrations, 1)
	assert.Equal(t, "osmo1abc", resp.UserChainRegistrations[0].RemoteAddress)
}

func TestDueUserChainRegistrationsQuery(t *testing.T) {
	io := &mockChainIO{queryResponse: []byte(`{"due_user_chain_registrations": []}`)}
	querier := NewQuerier(io, testContract)

	_, err := querier.DueUserChainRegistrations(context.Background(), 100)
	require.NoError(t, err)
	assert.JSONEq(t, `{"due_user_chain_registrations": {"delegators_amount": 100}}`, string(io.queries[0]))
}
