package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InterChadz/awesomewasm-2024/chainio"
	"github.com/InterChadz/awesomewasm-2024/core"
)

type mockTxService struct {
	err error

	registerChainId    string
	registerOverride   string
	registerValidators []string
	topupFunds         string
	autocompounds      int
	grantChainId       string
	grantGrantee       string
	revokeChainId      string
	revokeGrantee      string
}

func (m *mockTxService) result() (*chainio.TxResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &chainio.TxResult{Hash: "HASH", Code: 0}, nil
}

func (m *mockTxService) RegisterUser(_ context.Context, chainId, overrideAddress string, validators []string) (*chainio.TxResult, error) {
	m.registerChainId, m.registerOverride, m.registerValidators = chainId, overrideAddress, validators
	return m.result()
}

func (m *mockTxService) TopupUserBalance(_ context.Context, funds string) (*chainio.TxResult, error) {
	m.topupFunds = funds
	return m.result()
}

func (m *mockTxService) Autocompound(_ context.Context) (*chainio.TxResult, error) {
	m.autocompounds++
	return m.result()
}

func (m *mockTxService) GrantAuthz(_ context.Context, chainId, grantee string, _ []string) (*chainio.TxResult, error) {
	m.grantChainId, m.grantGrantee = chainId, grantee
	return m.result()
}

func (m *mockTxService) RevokeAuthz(_ context.Context, chainId, grantee string) (*chainio.TxResult, error) {
	m.revokeChainId, m.revokeGrantee = chainId, grantee
	return m.result()
}

func newTestRouter(state *core.State, txs TxService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, NewHandler(state, txs))
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetUser(t *testing.T) {
	state := core.NewState()
	state.SetUserAddress("neutron1user")
	state.SetUserBalance("1.500000")
	state.SetUserRewards([]core.UserReward{{ChainId: "cosmoshub-4", CalculatedReward: "42000"}})
	router := newTestRouter(state, &mockTxService{})

	w := doRequest(router, http.MethodGet, "/api/user", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.JSONEq(t, `"neutron1user"`, string(body["address"]))
	assert.JSONEq(t, `"1.500000"`, string(body["balance"]))
	assert.JSONEq(t, `[{"chain_id": "cosmoshub-4", "calculated_reward": "42000"}]`, string(body["rewards"]))
}

func TestGetAppConfigBeforeFetch(t *testing.T) {
	router := newTestRouter(core.NewState(), &mockTxService{})

	w := doRequest(router, http.MethodGet, "/api/app/config", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetSupportedChains(t *testing.T) {
	state := core.NewState()
	ica := "cosmos1ica"
	state.SetAppSupportedChains([]core.SupportedChain{
		{ChainId: "cosmoshub-4", ConnectionId: "connection-0", IcaAddress: &ica, AutocompoundCost: "5000"},
	})
	router := newTestRouter(state, &mockTxService{})

	w := doRequest(router, http.MethodGet, "/api/app/chains", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"chains": [
			{"chain_id": "cosmoshub-4", "connection_id": "connection-0", "ica_address": "cosmos1ica", "autocompound_cost": "5000"}
		]
	}`, w.Body.String())
}

func TestRegisterUser(t *testing.T) {
	txs := &mockTxService{}
	router := newTestRouter(core.NewState(), txs)

	w := doRequest(router, http.MethodPost, "/api/tx/register", `{
		"chain_id": "cosmoshub-4",
		"remote_address": "cosmos1override",
		"validators": ["cosmosvaloper1v"]
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cosmoshub-4", txs.registerChainId)
	assert.Equal(t, "cosmos1override", txs.registerOverride)
	assert.Equal(t, []string{"cosmosvaloper1v"}, txs.registerValidators)
}

func TestRegisterUserMissingFields(t *testing.T) {
	txs := &mockTxService{}
	router := newTestRouter(core.NewState(), txs)

	w := doRequest(router, http.MethodPost, "/api/tx/register", `{"chain_id": "cosmoshub-4"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, txs.registerChainId)
}

func TestTopup(t *testing.T) {
	txs := &mockTxService{}
	router := newTestRouter(core.NewState(), txs)

	w := doRequest(router, http.MethodPost, "/api/tx/topup", `{"funds": "250000untrn"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "250000untrn", txs.topupFunds)
}

func TestAutocompound(t *testing.T) {
	txs := &mockTxService{}
	router := newTestRouter(core.NewState(), txs)

	w := doRequest(router, http.MethodPost, "/api/tx/autocompound", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, txs.autocompounds)
}

func TestGrantAndRevoke(t *testing.T) {
	txs := &mockTxService{}
	router := newTestRouter(core.NewState(), txs)

	w := doRequest(router, http.MethodPost, "/api/tx/grant", `{
		"chain_id": "cosmoshub-4", "grantee": "cosmos1grantee", "validators": ["cosmosvaloper1v"]
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cosmoshub-4", txs.grantChainId)
	assert.Equal(t, "cosmos1grantee", txs.grantGrantee)

	w = doRequest(router, http.MethodPost, "/api/tx/revoke", `{
		"chain_id": "cosmoshub-4", "grantee": "cosmos1grantee"
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cosmos1grantee", txs.revokeGrantee)
}

func TestTxErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unknown chain", core.ErrUnknownChain, http.StatusBadRequest},
		{"unknown signer", core.ErrUnknownSigner, http.StatusBadRequest},
		{"not ready", core.ErrQueryNotReady, http.StatusServiceUnavailable},
		{"wallet unavailable", core.ErrWalletUnavailable, http.StatusServiceUnavailable},
		{"broadcast failure", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(core.NewState(), &mockTxService{err: tc.err})
			w := doRequest(router, http.MethodPost, "/api/tx/autocompound", "")
			assert.Equal(t, tc.code, w.Code)
		})
	}
}
