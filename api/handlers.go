package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InterChadz/awesomewasm-2024/chainio"
	"github.com/InterChadz/awesomewasm-2024/core"
)

// TxService is the transaction surface the handlers call into.
type TxService interface {
	RegisterUser(ctx context.Context, chainId, overrideAddress string, validators []string) (*chainio.TxResult, error)
	TopupUserBalance(ctx context.Context, funds string) (*chainio.TxResult, error)
	Autocompound(ctx context.Context) (*chainio.TxResult, error)
	GrantAuthz(ctx context.Context, chainId, grantee string, validators []string) (*chainio.TxResult, error)
	RevokeAuthz(ctx context.Context, chainId, grantee string) (*chainio.TxResult, error)
}

type Handler struct {
	state *core.State
	txs   TxService
}

func NewHandler(state *core.State, txs TxService) *Handler {
	return &Handler{state: state, txs: txs}
}

// Reads

func (h *Handler) GetUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"address":          h.state.UserAddress(),
		"pubkey":           h.state.UserPubKey(),
		"balance":          h.state.UserBalance(),
		"contract_balance": h.state.UserContractBalance(),
		"registrations":    h.state.UserRegistrations(),
		"rewards":          h.state.UserRewards(),
	})
}

func (h *Handler) GetUserDelegations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"delegations": h.state.UserDelegations()})
}

func (h *Handler) GetAppConfig(c *gin.Context) {
	config := h.state.AppConfig()
	if config == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": core.ErrQueryNotReady.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": config})
}

func (h *Handler) GetSupportedChains(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chains": h.state.AppSupportedChains()})
}

func (h *Handler) GetDueRegistrations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"due_user_chain_registrations": h.state.AppDueUserChainRegistrations()})
}

// Transactions

type registerPayload struct {
	ChainId       string   `json:"chain_id" binding:"required"`
	RemoteAddress string   `json:"remote_address"`
	Validators    []string `json:"validators" binding:"required"`
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.txs.RegisterUser(c.Request.Context(), payload.ChainId, payload.RemoteAddress, payload.Validators)
	if err != nil {
		h.txError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type topupPayload struct {
	Funds string `json:"funds" binding:"required"`
}

func (h *Handler) TopupUserBalance(c *gin.Context) {
	var payload topupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.txs.TopupUserBalance(c.Request.Context(), payload.Funds)
	if err != nil {
		h.txError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Autocompound(c *gin.Context) {
	res, err := h.txs.Autocompound(c.Request.Context())
	if err != nil {
		h.txError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type grantPayload struct {
	ChainId    string   `json:"chain_id" binding:"required"`
	Grantee    string   `json:"grantee" binding:"required"`
	Validators []string `json:"validators" binding:"required"`
}

func (h *Handler) GrantAuthz(c *gin.Context) {
	var payload grantPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.txs.GrantAuthz(c.Request.Context(), payload.ChainId, payload.Grantee, payload.Validators)
	if err != nil {
		h.txError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type revokePayload struct {
	ChainId string `json:"chain_id" binding:"required"`
	Grantee string `json:"grantee" binding:"required"`
}

func (h *Handler) RevokeAuthz(c *gin.Context) {
	var payload revokePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.txs.RevokeAuthz(c.Request.Context(), payload.ChainId, payload.Grantee)
	if err != nil {
		h.txError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) txError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrUnknownChain), errors.Is(err, core.ErrUnknownSigner):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrQueryNotReady), errors.Is(err, core.ErrWalletUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		// simulation and broadcast failures surface as-is
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
