package core

import (
	"fmt"

	"github.com/InterChadz/awesomewasm-2024/util"
)

// Config is the full contents of env.toml.
type Config struct {
	App      App
	Chain    Chain
	Contract Contract
	Fee      Fee
	Database Database
	Chains   []ChainApi
}

type App struct {
	Env             string `toml:"env"`
	Host            string `toml:"host"`
	RefreshInterval int    `toml:"refresh_interval"` // seconds
}

// Chain is the origin chain the restaker contract lives on.
type Chain struct {
	Id           string `toml:"id"`
	Rpc          string `toml:"rpc"`
	Bech32Prefix string `toml:"bech32_prefix"`
}

type Contract struct {
	Address          string `toml:"address"`
	FeeDenom         string `toml:"fee_denom"`
	RegistrationFee  string `toml:"registration_fee"` // e.g. "100000untrn"
	DelegatorsAmount uint64 `toml:"delegators_amount"`
}

type Fee struct {
	BaseFee       float64 `toml:"base_fee"`       // fee per gas unit
	GasAdjustment float64 `toml:"gas_adjustment"` // simulation safety multiplier
}

type Database struct {
	RedisHost     string `toml:"redis_host"`
	RedisPassword string `toml:"redis_password"`
	RedisDb       int    `toml:"redis_db"`
}

// ChainApi is the locally configured endpoint set for one supported chain.
// The authoritative list of chains comes from the contract; this only maps
// a chain id to its prefix, endpoints and display symbol.
type ChainApi struct {
	ChainId string `toml:"chain_id"`
	Prefix  string `toml:"prefix"`
	Rpc     string `toml:"rpc"`
	Rest    string `toml:"rest"`
	Symbol  string `toml:"symbol"`
}

// SupportedChain is one entry of the contract's supported_chains query.
// ica_address is set once the interchain account is ready; until then the
// chain must not be used for registrations.
type SupportedChain struct {
	ChainId          string  `json:"chain_id"`
	ConnectionId     string  `json:"connection_id"`
	IcaAddress       *string `json:"ica_address"`
	AutocompoundCost string  `json:"autocompound_cost"`
}

// UserChainRegistration is a user's opt-in to restake on a remote chain.
type UserChainRegistration struct {
	ChainId       string   `json:"chain_id"`
	RemoteAddress string   `json:"address"`
	Validators    []string `json:"validators"`
}

// UserReward is the calculated pending reward for one registration.
type UserReward struct {
	ChainId          string `json:"chain_id"`
	CalculatedReward string `json:"calculated_reward"`
}

// ChainDelegations groups the delegation records fetched from one remote
// chain's REST endpoint.
type ChainDelegations struct {
	ChainId     string       `json:"chain_id"`
	Delegations []Delegation `json:"delegations"`
}

type Delegation struct {
	ValidatorAddress string `json:"validator_address"`
	Shares           string `json:"shares"`
	Amount           string `json:"amount"`
	Denom            string `json:"denom"`
}

// DueUserChainRegistration is a registration whose autocompound is due,
// decorated with the chain's autocompound cost.
type DueUserChainRegistration struct {
	ChainId          string `json:"chain_id"`
	UserAddress      string `json:"user_address"`
	RemoteAddress    string `json:"remote_address"`
	AutocompoundCost string `json:"autocompound_cost"`
}

// ContractConfig mirrors the contract's config query response.
type ContractConfig struct {
	Admin                 string `json:"admin"`
	NeutronRegisterIcaFee string `json:"neutron_register_ica_fee"`
}

// ChainApiFor resolves the configured endpoint set for a chain id.
func (c *Config) ChainApiFor(chainId string) (ChainApi, error) {
	for _, api := range c.Chains {
		if api.ChainId == chainId {
			return api, nil
		}
	}
	return ChainApi{}, fmt.Errorf("%w: %s", ErrUnknownChain, chainId)
}

// PubKeyAddressForChain derives the user's address on chainId from a base64
// encoded public key. This is the canonical derivation.
func (c *Config) PubKeyAddressForChain(chainId, base64PubKey string) (string, error) {
	api, err := c.ChainApiFor(chainId)
	if err != nil {
		return "", err
	}
	_, address, err := util.PubKeyToAddress(api.Prefix, base64PubKey)
	return address, err
}

// DeriveAddressForChain re-encodes an existing bech32 address under the
// prefix configured for chainId. Fallback for when no public key is known;
// the two derivations agree only for plain hash-of-pubkey accounts.
func (c *Config) DeriveAddressForChain(chainId, address string) (string, error) {
	api, err := c.ChainApiFor(chainId)
	if err != nil {
		return "", err
	}
	return util.DeriveAddress(api.Prefix, address)
}
