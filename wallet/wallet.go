// Package wallet models the wallet surface the dApp consumes: chain
// metadata registration, per-chain enablement and offline signers. The
// shape follows the browser-extension wallet API so the session bootstrap
// is the same whether keys live in an extension or a local keyring.
package wallet

import (
	"strings"

	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Account is one key the wallet controls. Address is the raw account bytes;
// callers encode it under whichever chain prefix they need.
type Account struct {
	Address sdk.AccAddress
	PubKey  cryptotypes.PubKey
}

// OfflineSigner produces signatures without exposing private keys. The
// keyring accessor hands the backing store to the signing client; keys
// never leave it.
type OfflineSigner interface {
	Accounts() ([]Account, error)
	Keyring() keyring.Keyring
	KeyName() string
}

// Wallet is the extension-shaped wallet surface.
type Wallet interface {
	// SuggestChain registers chain metadata. A no-op when the chain is
	// already known with the same parameters.
	SuggestChain(info ChainInfo) error
	// Enable grants access for every listed chain id in one call.
	Enable(chainIds ...string) error
	// OfflineSigner returns the signer for an enabled chain.
	OfflineSigner(chainId string) (OfflineSigner, error)
}

// ChainInfo is the chain descriptor pushed to the wallet.
type ChainInfo struct {
	ChainId      string       `json:"chainId"`
	ChainName    string       `json:"chainName"`
	Rpc          string       `json:"rpc"`
	Rest         string       `json:"rest"`
	Bech32Config Bech32Config `json:"bech32Config"`
	// CoinType is the BIP44 coin type, 118 for Cosmos chains.
	CoinType      uint32        `json:"coinType"`
	Currencies    []Currency    `json:"currencies"`
	FeeCurrencies []FeeCurrency `json:"feeCurrencies"`
	StakeCurrency Currency      `json:"stakeCurrency"`
}

type Bech32Config struct {
	Bech32PrefixAccAddr  string `json:"bech32PrefixAccAddr"`
	Bech32PrefixAccPub   string `json:"bech32PrefixAccPub"`
	Bech32PrefixValAddr  string `json:"bech32PrefixValAddr"`
	Bech32PrefixValPub   string `json:"bech32PrefixValPub"`
	Bech32PrefixConsAddr string `json:"bech32PrefixConsAddr"`
	Bech32PrefixConsPub  string `json:"bech32PrefixConsPub"`
}

type Currency struct {
	CoinDenom        string `json:"coinDenom"`
	CoinMinimalDenom string `json:"coinMinimalDenom"`
	CoinDecimals     int    `json:"coinDecimals"`
}

type FeeCurrency struct {
	Currency
	GasPriceStep GasPriceStep `json:"gasPriceStep"`
}

type GasPriceStep struct {
	Low     float64 `json:"low"`
	Average float64 `json:"average"`
	High    float64 `json:"high"`
}

// NewChainInfo builds the descriptor for a supported chain from its
// configured endpoints. Symbol is the display denom; the minimal denom is
// the micro variant.
func NewChainInfo(chainId, prefix, rpc, rest, symbol string) ChainInfo {
	currency := Currency{
		CoinDenom:        symbol,
		CoinMinimalDenom: "u" + strings.ToLower(symbol),
		CoinDecimals:     6,
	}
	return ChainInfo{
		ChainId:   chainId,
		ChainName: chainId,
		Rpc:       rpc,
		Rest:      rest,
		Bech32Config: Bech32Config{
			Bech32PrefixAccAddr:  prefix,
			Bech32PrefixAccPub:   prefix + "pub",
			Bech32PrefixValAddr:  prefix + "valoper",
			Bech32PrefixValPub:   prefix + "valoperpub",
			Bech32PrefixConsAddr: prefix + "valcons",
			Bech32PrefixConsPub:  prefix + "valconspub",
		},
		CoinType:   118,
		Currencies: []Currency{currency},
		FeeCurrencies: []FeeCurrency{{
			Currency: currency,
			GasPriceStep: GasPriceStep{
				Low:     0.01,
				Average: 0.025,
				High:    0.04,
			},
		}},
		StakeCurrency: currency,
	}
}
