package svc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/InterChadz/awesomewasm-2024/core"
	"github.com/InterChadz/awesomewasm-2024/util"
)

// Service runs the composite fetch operations that mirror contract and
// chain state into the state store, plus the periodic refresh loop. Each
// fetch is a sequence of query-then-set steps; when a step fails the
// operation logs and returns early, leaving the fields already set intact.
type Service struct {
	cfg     *core.Config
	state   *core.State
	session *Session
	log     *zap.Logger

	httpClient *http.Client
}

func NewService(cfg *core.Config, state *core.State, session *Session, log *zap.Logger) *Service {
	return &Service{
		cfg:        cfg,
		state:      state,
		session:    session,
		log:        log,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Run refreshes user data and delegations on the configured interval until
// ctx is cancelled. Ticks that arrive before bootstrap completes are
// skipped; the timer and the bootstrap are independent tasks.
func (s *Service) Run(ctx context.Context) {
	interval := time.Duration(s.cfg.App.RefreshInterval) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.session.Ready() {
				s.log.Debug("session not ready, skipping refresh")
				continue
			}
			if err := s.FetchUserData(ctx); err != nil {
				s.log.Error("failed to fetch user data", zap.Error(err))
			}
			if err := s.FetchUserDelegations(ctx); err != nil {
				s.log.Error("failed to fetch user delegations", zap.Error(err))
			}
			if err := s.FetchDueUserChainRegistrations(ctx); err != nil {
				s.log.Error("failed to fetch due registrations", zap.Error(err))
			}
		}
	}
}

// FetchUserData refreshes balance, contract balance, registrations and
// rewards for the connected user.
func (s *Service) FetchUserData(ctx context.Context) error {
	querier := s.session.Querier()
	bank := s.session.Bank()
	address := s.state.UserAddress()
	if querier == nil || bank == nil || address == "" {
		s.log.Error("address or querier is not initialized")
		return core.ErrQueryNotReady
	}

	balance, err := bank.QueryBankBalance(ctx, address, s.cfg.Contract.FeeDenom)
	if err != nil {
		s.log.Error("failed to query bank balance", zap.Error(err))
		return err
	}
	s.state.SetUserBalance(util.DisplayAmount(balance.Amount.Int64(), 6))

	contractBalance, err := querier.UserBalance(ctx, address)
	if err != nil {
		s.log.Error("failed to query contract balance", zap.Error(err))
		return err
	}
	s.state.SetUserContractBalance(contractBalance.Balance)

	registrations, err := querier.UserRegistrations(ctx, address)
	if err != nil {
		s.log.Error("failed to query registrations", zap.Error(err))
		return err
	}
	s.state.SetUserRegistrations(registrations.UserChainRegistrations)

	rewards := make([]core.UserReward, 0, len(registrations.UserChainRegistrations))
	for _, registration := range registrations.UserChainRegistrations {
		reward, err := querier.CalculateReward(ctx, address, registration.ChainId, registration.RemoteAddress)
		if err != nil {
			// rewards keep their previous value; everything set above stays
			s.log.Error("failed to calculate reward",
				zap.String("chain_id", registration.ChainId), zap.Error(err))
			return err
		}
		rewards = append(rewards, core.UserReward{
			ChainId:          registration.ChainId,
			CalculatedReward: reward.Reward.String(),
		})
	}
	s.state.SetUserRewards(rewards)
	return nil
}

// delegationsResponse is the REST shape of
// /cosmos/staking/v1beta1/delegations/{address}.
type delegationsResponse struct {
	DelegationResponses []struct {
		Delegation struct {
			ValidatorAddress string `json:"validator_address"`
			Shares           string `json:"shares"`
		} `json:"delegation"`
		Balance struct {
			Denom  string `json:"denom"`
			Amount string `json:"amount"`
		} `json:"balance"`
	} `json:"delegation_responses"`
}

// FetchUserDelegations reads the user's delegations from every supported
// chain's REST endpoint. The remote address comes from the registration
// when one exists, otherwise it is derived from the origin account.
func (s *Service) FetchUserDelegations(ctx context.Context) error {
	address := s.state.UserAddress()
	if address == "" {
		s.log.Error("address is not initialized")
		return core.ErrQueryNotReady
	}

	registrations := s.state.UserRegistrations()
	delegations := make([]core.ChainDelegations, 0)
	for _, chain := range s.state.AppSupportedChains() {
		api, err := s.cfg.ChainApiFor(chain.ChainId)
		if err != nil {
			s.log.Warn("no endpoints configured for chain", zap.String("chain_id", chain.ChainId))
			continue
		}

		remoteAddress := ""
		for _, registration := range registrations {
			if registration.ChainId == chain.ChainId {
				remoteAddress = registration.RemoteAddress
				break
			}
		}
		if remoteAddress == "" {
			if pubKey := s.state.UserPubKey(); pubKey != "" {
				remoteAddress, err = s.cfg.PubKeyAddressForChain(chain.ChainId, pubKey)
			} else {
				remoteAddress, err = s.cfg.DeriveAddressForChain(chain.ChainId, address)
			}
			if err != nil {
				s.log.Warn("failed to derive remote address",
					zap.String("chain_id", chain.ChainId), zap.Error(err))
				continue
			}
		}

		chainDelegations, err := s.fetchDelegations(ctx, api.Rest, remoteAddress)
		if err != nil {
			s.log.Warn("failed to fetch delegations",
				zap.String("chain_id", chain.ChainId), zap.Error(err))
			continue
		}
		delegations = append(delegations, core.ChainDelegations{
			ChainId:     chain.ChainId,
			Delegations: chainDelegations,
		})
	}

	s.state.SetUserDelegations(delegations)
	return nil
}

func (s *Service) fetchDelegations(ctx context.Context, restUri, address string) ([]core.Delegation, error) {
	url := fmt.Sprintf("%s/cosmos/staking/v1beta1/delegations/%s", restUri, address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("delegations request returned %d", resp.StatusCode)
	}

	var parsed delegationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	delegations := make([]core.Delegation, 0, len(parsed.DelegationResponses))
	for _, d := range parsed.DelegationResponses {
		delegations = append(delegations, core.Delegation{
			ValidatorAddress: d.Delegation.ValidatorAddress,
			Shares:           d.Delegation.Shares,
			Amount:           d.Balance.Amount,
			Denom:            d.Balance.Denom,
		})
	}
	return delegations, nil
}

// FetchAppConfig refreshes the contract config.
func (s *Service) FetchAppConfig(ctx context.Context) error {
	querier := s.session.Querier()
	if querier == nil {
		s.log.Error("querier is not initialized")
		return core.ErrQueryNotReady
	}
	resp, err := querier.Config(ctx)
	if err != nil {
		s.log.Error("failed to query contract config", zap.Error(err))
		return err
	}
	s.state.SetAppConfig(&resp.Config)
	return nil
}

// FetchDueUserChainRegistrations refreshes the registrations whose
// autocompound is due, decorating each with its chain's autocompound cost.
// Registrations already compounded in the current window (tracked in redis)
// are filtered out.
func (s *Service) FetchDueUserChainRegistrations(ctx context.Context) error {
	querier := s.session.Querier()
	if querier == nil {
		s.log.Error("querier is not initialized")
		return core.ErrQueryNotReady
	}
	resp, err := querier.DueUserChainRegistrations(ctx, s.cfg.Contract.DelegatorsAmount)
	if err != nil {
		s.log.Error("failed to query due registrations", zap.Error(err))
		return err
	}

	supportedChains := s.state.AppSupportedChains()
	due := make([]core.DueUserChainRegistration, 0, len(resp.DueUserChainRegistrations))
	for _, registration := range resp.DueUserChainRegistrations {
		if s.isProcessed(ctx, registration) {
			continue
		}
		for _, chain := range supportedChains {
			if chain.ChainId == registration.ChainId {
				registration.AutocompoundCost = chain.AutocompoundCost
				break
			}
		}
		due = append(due, registration)
	}

	s.state.SetAppDueUserChainRegistrations(due)
	return nil
}

func (s *Service) isProcessed(ctx context.Context, registration core.DueUserChainRegistration) bool {
	if core.S.RedisConn == nil {
		return false
	}
	key := processedKey(registration)
	exists, err := core.S.RedisConn.Exists(ctx, key).Result()
	if err != nil {
		s.log.Warn("failed to check processed registration", zap.Error(err))
		return false
	}
	return exists == 1
}

func processedKey(registration core.DueUserChainRegistration) string {
	return fmt.Sprintf("%s:%s:%s", core.PkProcessedRegistration, registration.ChainId, registration.UserAddress)
}
