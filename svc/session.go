package svc

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.uber.org/zap"

	"github.com/InterChadz/awesomewasm-2024/chainio"
	"github.com/InterChadz/awesomewasm-2024/core"
	"github.com/InterChadz/awesomewasm-2024/metrics"
	RestakerApi "github.com/InterChadz/awesomewasm-2024/restaker_api"
	"github.com/InterChadz/awesomewasm-2024/util"
	"github.com/InterChadz/awesomewasm-2024/wallet"
)

// RemoteSigner is one entry of the per-chain signer table: the user's
// derived address on that chain and a signing connection to it.
type RemoteSigner struct {
	ChainId string
	Address string
	IO      chainio.ChainIO
}

// Session is the connected user's multi-chain wallet session. Bootstrap
// fills it; Submit resolves signing clients out of it. The signer table is
// mutex-guarded because the refresh loop and the HTTP handlers run on
// separate goroutines.
type Session struct {
	mu sync.RWMutex

	cfg        *core.Config
	state      *core.State
	wallet     wallet.Wallet
	log        *zap.Logger
	indicators *metrics.TxProcess

	querier  RestakerApi.Querier
	bank     chainio.QueryClient
	origin   chainio.ChainIO
	restaker RestakerApi.Restaker
	remotes  map[string]*RemoteSigner
	ready    bool

	// connection factories, swapped out in tests
	newQueryClient func(rpcUri string) (chainio.QueryClient, error)
	newChainIO     func(cfg chainio.Config, kr keyring.Keyring, keyName string) (chainio.ChainIO, error)
}

func NewSession(cfg *core.Config, state *core.State, w wallet.Wallet, log *zap.Logger, indicators *metrics.TxProcess) *Session {
	s := &Session{
		cfg:        cfg,
		state:      state,
		wallet:     w,
		log:        log,
		indicators: indicators,
		remotes:    make(map[string]*RemoteSigner),
	}
	s.newQueryClient = chainio.NewQueryClient
	s.newChainIO = func(c chainio.Config, kr keyring.Keyring, keyName string) (chainio.ChainIO, error) {
		return chainio.New(c, kr, keyName, log, indicators)
	}
	return s
}

// Bootstrap connects the origin chain and every contract-supported remote
// chain. Origin failures abort the whole bootstrap; a remote chain that
// fails to connect is logged and skipped so the others still come up.
// Re-running replaces table entries per chain id instead of duplicating.
func (s *Session) Bootstrap(ctx context.Context) error {
	qc, err := s.newQueryClient(s.cfg.Chain.Rpc)
	if err != nil {
		return fmt.Errorf("failed to connect origin rpc: %w", err)
	}
	querier := RestakerApi.NewQuerier(qc, s.cfg.Contract.Address)
	s.mu.Lock()
	s.querier = querier
	s.bank = qc
	s.mu.Unlock()

	// The contract, not local config, decides which chains to connect.
	supported, err := querier.SupportedChains(ctx)
	if err != nil {
		return fmt.Errorf("failed to query supported chains: %w", err)
	}
	s.state.SetAppSupportedChains(supported.Chains)

	if s.wallet == nil {
		return core.ErrWalletUnavailable
	}

	// Register metadata for the origin chain plus every supported chain,
	// then enable them all in one call.
	if err := s.wallet.SuggestChain(s.originChainInfo()); err != nil {
		return err
	}
	chainIds := []string{s.cfg.Chain.Id}
	for _, chain := range supported.Chains {
		api, err := s.cfg.ChainApiFor(chain.ChainId)
		if err != nil {
			s.log.Warn("supported chain has no configured endpoints, skipping",
				zap.String("chain_id", chain.ChainId))
			continue
		}
		if err := s.wallet.SuggestChain(wallet.NewChainInfo(api.ChainId, api.Prefix, api.Rpc, api.Rest, api.Symbol)); err != nil {
			s.log.Warn("failed to suggest chain", zap.String("chain_id", chain.ChainId), zap.Error(err))
			continue
		}
		chainIds = append(chainIds, chain.ChainId)
	}
	if err := s.wallet.Enable(chainIds...); err != nil {
		return fmt.Errorf("failed to enable wallet: %w", err)
	}

	signer, err := s.wallet.OfflineSigner(s.cfg.Chain.Id)
	if err != nil {
		return err
	}
	accounts, err := signer.Accounts()
	if err != nil || len(accounts) == 0 {
		return fmt.Errorf("%w: no account available: %v", core.ErrWalletUnavailable, err)
	}
	account := accounts[0]

	originAddr, err := util.PubKeyAddress(s.cfg.Chain.Bech32Prefix, account.PubKey)
	if err != nil {
		return err
	}
	s.state.SetUserAddress(originAddr)
	s.state.SetUserPubKey(base64.StdEncoding.EncodeToString(account.PubKey.Bytes()))

	origin, err := s.newChainIO(chainio.Config{
		ChainId:       s.cfg.Chain.Id,
		Rpc:           s.cfg.Chain.Rpc,
		Bech32Prefix:  s.cfg.Chain.Bech32Prefix,
		FeeDenom:      s.cfg.Contract.FeeDenom,
		BaseFee:       s.cfg.Fee.BaseFee,
		GasAdjustment: s.cfg.Fee.GasAdjustment,
	}, signer.Keyring(), signer.KeyName())
	if err != nil {
		return fmt.Errorf("failed to connect origin signing client: %w", err)
	}

	remotes := make(map[string]*RemoteSigner, len(supported.Chains))
	for _, chain := range supported.Chains {
		remote, err := s.connectRemote(chain.ChainId, account)
		if err != nil {
			s.log.Warn("failed to connect remote chain, skipping",
				zap.String("chain_id", chain.ChainId), zap.Error(err))
			continue
		}
		remotes[chain.ChainId] = remote
	}

	s.mu.Lock()
	s.origin = origin
	s.restaker = RestakerApi.NewRestaker(origin, RestakerApi.Params{
		ContractAddr:     s.cfg.Contract.Address,
		RegistrationFee:  s.cfg.Contract.RegistrationFee,
		DelegatorsAmount: s.cfg.Contract.DelegatorsAmount,
	})
	s.remotes = remotes
	s.ready = true
	s.mu.Unlock()

	s.log.Info("session ready",
		zap.String("address", originAddr),
		zap.Int("remote_chains", len(remotes)))
	return nil
}

func (s *Session) connectRemote(chainId string, account wallet.Account) (*RemoteSigner, error) {
	api, err := s.cfg.ChainApiFor(chainId)
	if err != nil {
		return nil, err
	}
	signer, err := s.wallet.OfflineSigner(chainId)
	if err != nil {
		return nil, err
	}
	// Canonical derivation: hash of the origin pubkey under the remote
	// prefix. Re-encoding the origin address would give the same result
	// for standard accounts but is kept as a fallback only.
	derived, err := util.PubKeyAddress(api.Prefix, account.PubKey)
	if err != nil {
		return nil, err
	}
	io, err := s.newChainIO(chainio.Config{
		ChainId:       chainId,
		Rpc:           api.Rpc,
		Bech32Prefix:  api.Prefix,
		FeeDenom:      "u" + strings.ToLower(api.Symbol),
		BaseFee:       s.cfg.Fee.BaseFee,
		GasAdjustment: s.cfg.Fee.GasAdjustment,
	}, signer.Keyring(), signer.KeyName())
	if err != nil {
		return nil, err
	}
	return &RemoteSigner{ChainId: chainId, Address: derived, IO: io}, nil
}

func (s *Session) originChainInfo() wallet.ChainInfo {
	symbol := strings.TrimPrefix(s.cfg.Contract.FeeDenom, "u")
	return wallet.NewChainInfo(s.cfg.Chain.Id, s.cfg.Chain.Bech32Prefix, s.cfg.Chain.Rpc, "", symbol)
}

// Submit signs and broadcasts msgs on the chain identified by chainId; an
// empty chainId targets the origin chain. Unknown chain ids fail before any
// simulation happens.
func (s *Session) Submit(ctx context.Context, msgs []sdk.Msg, chainId string) (*chainio.TxResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return nil, core.ErrQueryNotReady
	}
	if chainId == "" || chainId == s.cfg.Chain.Id {
		return s.origin.SendMsgs(ctx, msgs, "")
	}
	remote, ok := s.remotes[chainId]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownSigner, chainId)
	}
	return remote.IO.SendMsgs(ctx, msgs, "")
}

// Ready reports whether bootstrap completed.
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Querier is the contract query binding, available as soon as the origin
// RPC connection exists. Nil before that.
func (s *Session) Querier() RestakerApi.Querier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.querier
}

// Bank is the read-only chain connection for native queries.
func (s *Session) Bank() chainio.QueryClient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bank
}

// Restaker is the signing contract binding. Nil until bootstrap completes.
func (s *Session) Restaker() RestakerApi.Restaker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restaker
}

// RemoteSignerFor looks up the signer table entry for a chain id.
func (s *Session) RemoteSignerFor(chainId string) (*RemoteSigner, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	remote, ok := s.remotes[chainId]
	return remote, ok
}

// RemoteChainIds lists the chains present in the signer table.
func (s *Session) RemoteChainIds() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.remotes))
	for id := range s.remotes {
		ids = append(ids, id)
	}
	return ids
}
