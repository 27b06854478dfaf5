package core

import "sync"

// State is the application state store: the connected user's session data
// plus app-wide data fetched from the contract. It is owned by main and
// passed by reference; every read and write goes through a named accessor.
// The mutex serializes the refresh loop against HTTP reads.
type State struct {
	mu sync.RWMutex

	user userState
	app  appState
}

type userState struct {
	address         string
	pubKey          string // base64 encoded secp256k1 key
	balance         string
	contractBalance string
	registrations   []UserChainRegistration
	rewards         []UserReward
	delegations     []ChainDelegations
}

type appState struct {
	config                   *ContractConfig
	supportedChains          []SupportedChain
	dueUserChainRegistrations []DueUserChainRegistration
}

func NewState() *State {
	return &State{}
}

// User accessors

func (s *State) UserAddress() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.address
}

func (s *State) SetUserAddress(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.address = address
}

func (s *State) UserPubKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.pubKey
}

func (s *State) SetUserPubKey(pubKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.pubKey = pubKey
}

func (s *State) UserBalance() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.balance
}

func (s *State) SetUserBalance(balance string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.balance = balance
}

func (s *State) UserContractBalance() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.contractBalance
}

func (s *State) SetUserContractBalance(balance string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.contractBalance = balance
}

func (s *State) UserRegistrations() []UserChainRegistration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.registrations
}

func (s *State) SetUserRegistrations(registrations []UserChainRegistration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.registrations = registrations
}

func (s *State) UserRewards() []UserReward {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.rewards
}

func (s *State) SetUserRewards(rewards []UserReward) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.rewards = rewards
}

func (s *State) UserDelegations() []ChainDelegations {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.delegations
}

func (s *State) SetUserDelegations(delegations []ChainDelegations) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.delegations = delegations
}

// App accessors

func (s *State) AppConfig() *ContractConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.app.config
}

func (s *State) SetAppConfig(config *ContractConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app.config = config
}

func (s *State) AppSupportedChains() []SupportedChain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.app.supportedChains
}

func (s *State) SetAppSupportedChains(chains []SupportedChain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app.supportedChains = chains
}

func (s *State) AppDueUserChainRegistrations() []DueUserChainRegistration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.app.dueUserChainRegistrations
}

func (s *State) SetAppDueUserChainRegistrations(due []DueUserChainRegistration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app.dueUserChainRegistrations = due
}
