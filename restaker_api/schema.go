package RestakerApi

import (
	"encoding/json"

	"github.com/InterChadz/awesomewasm-2024/core"
)

// Execute messages. Each wrapper serializes to the single-key JSON body the
// contract expects.

type RegisterUserReq struct {
	RegisterUser RegisterUser `json:"register_user"`
}

type RegisterUser struct {
	Registrations []core.UserChainRegistration `json:"registrations"`
}

type TopupUserBalanceReq struct {
	TopupUserBalance TopupUserBalance `json:"topup_user_balance"`
}

type TopupUserBalance struct{}

type AutocompoundReq struct {
	Autocompound Autocompound `json:"autocompound"`
}

type Autocompound struct {
	DelegatorsAmount uint64 `json:"delegators_amount"`
}

// Query messages.

type ConfigReq struct {
	Config struct{} `json:"config"`
}

type SupportedChainsReq struct {
	SupportedChains struct{} `json:"supported_chains"`
}

type UserBalanceReq struct {
	UserBalance UserBalance `json:"user_balance"`
}

type UserBalance struct {
	Address string `json:"address"`
}

type UserRegistrationsReq struct {
	UserRegistrations UserRegistrations `json:"user_registrations"`
}

type UserRegistrations struct {
	Address string `json:"address"`
}

type CalculateRewardReq struct {
	CalculateReward CalculateReward `json:"calculate_reward"`
}

type CalculateReward struct {
	Address       string `json:"address"`
	ChainId       string `json:"chain_id"`
	RemoteAddress string `json:"remote_address"`
}

type DueUserChainRegistrationsReq struct {
	DueUserChainRegistrations DueUserChainRegistrations `json:"due_user_chain_registrations"`
}

type DueUserChainRegistrations struct {
	DelegatorsAmount uint64 `json:"delegators_amount"`
}

// Query responses.

type ConfigResponse struct {
	Config core.ContractConfig `json:"config"`
}

type SupportedChainsResponse struct {
	Chains []core.SupportedChain `json:"chains"`
}

type UserBalanceResponse struct {
	Balance string `json:"balance"`
}

type UserRegistrationsResponse struct {
	UserChainRegistrations []core.UserChainRegistration `json:"user_chain_registrations"`
}

type CalculateRewardResponse struct {
	Reward json.Number `json:"reward"`
}

type DueUserChainRegistrationsResponse struct {
	DueUserChainRegistrations []core.DueUserChainRegistration `json:"due_user_chain_registrations"`
}
