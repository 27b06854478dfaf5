package svc

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.uber.org/zap"

	"github.com/InterChadz/awesomewasm-2024/chainio"
	"github.com/InterChadz/awesomewasm-2024/core"
	"github.com/InterChadz/awesomewasm-2024/txmsg"
)

// RegisterUser opts the user into restaking on a remote chain. The remote
// address is the override when given, otherwise the canonical derivation
// from the origin pubkey.
func (s *Service) RegisterUser(ctx context.Context, chainId, overrideAddress string, validators []string) (*chainio.TxResult, error) {
	restaker := s.session.Restaker()
	if restaker == nil {
		return nil, core.ErrQueryNotReady
	}

	remoteAddress := overrideAddress
	if remoteAddress == "" {
		pubKey := s.state.UserPubKey()
		if pubKey == "" {
			return nil, core.ErrQueryNotReady
		}
		var err error
		remoteAddress, err = s.cfg.PubKeyAddressForChain(chainId, pubKey)
		if err != nil {
			return nil, err
		}
	}

	return restaker.RegisterUser(ctx, core.UserChainRegistration{
		ChainId:       chainId,
		RemoteAddress: remoteAddress,
		Validators:    validators,
	})
}

// TopupUserBalance deposits funds into the user's contract balance.
func (s *Service) TopupUserBalance(ctx context.Context, funds string) (*chainio.TxResult, error) {
	restaker := s.session.Restaker()
	if restaker == nil {
		return nil, core.ErrQueryNotReady
	}
	return restaker.TopupUserBalance(ctx, funds)
}

// Autocompound triggers a compounding round for the configured batch of due
// delegators, then marks the due registrations as processed for the current
// window so they drop out of the due list until it passes.
func (s *Service) Autocompound(ctx context.Context) (*chainio.TxResult, error) {
	restaker := s.session.Restaker()
	if restaker == nil {
		return nil, core.ErrQueryNotReady
	}
	res, err := restaker.Autocompound(ctx)
	if err != nil {
		return nil, err
	}
	s.markProcessed(ctx)
	return res, nil
}

func (s *Service) markProcessed(ctx context.Context) {
	if core.S.RedisConn == nil {
		return
	}
	interval := time.Duration(s.cfg.App.RefreshInterval) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	for _, registration := range s.state.AppDueUserChainRegistrations() {
		key := processedKey(registration)
		if err := core.S.RedisConn.Set(ctx, key, "1", interval).Err(); err != nil {
			s.log.Warn("failed to mark registration processed", zap.Error(err))
		}
	}
}

// GrantAuthz authorizes grantee to delegate on the user's behalf on the
// given remote chain, restricted to the listed validators. The grant is
// submitted on the remote chain with the derived remote address as granter.
func (s *Service) GrantAuthz(ctx context.Context, chainId, grantee string, validators []string) (*chainio.TxResult, error) {
	remote, ok := s.session.RemoteSignerFor(chainId)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownSigner, chainId)
	}
	msg, err := txmsg.BuildStakeGrant(remote.Address, grantee, validators)
	if err != nil {
		return nil, err
	}
	return s.session.Submit(ctx, []sdk.Msg{msg}, chainId)
}

// RevokeAuthz removes the delegate authorization from grantee on the given
// remote chain.
func (s *Service) RevokeAuthz(ctx context.Context, chainId, grantee string) (*chainio.TxResult, error) {
	remote, ok := s.session.RemoteSignerFor(chainId)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownSigner, chainId)
	}
	msg := txmsg.BuildStakeRevoke(remote.Address, grantee)
	return s.session.Submit(ctx, []sdk.Msg{msg}, chainId)
}
