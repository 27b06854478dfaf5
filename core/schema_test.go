package core

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InterChadz/awesomewasm-2024/util"
)

func derivationConfig() *Config {
	return &Config{
		Chains: []ChainApi{
			{ChainId: "cosmoshub-4", Prefix: "cosmos", Symbol: "ATOM"},
			{ChainId: "osmosis-1", Prefix: "osmo", Symbol: "OSMO"},
		},
	}
}

func TestChainApiFor(t *testing.T) {
	cfg := derivationConfig()

	api, err := cfg.ChainApiFor("osmosis-1")
	require.NoError(t, err)
	assert.Equal(t, "osmo", api.Prefix)

	_, err = cfg.ChainApiFor("juno-1")
	assert.ErrorIs(t, err, ErrUnknownChain)
}

func TestDerivationsAgreeForStandardAccounts(t *testing.T) {
	cfg := derivationConfig()
	pubKey := secp256k1.GenPrivKey().PubKey()
	encoded := base64.StdEncoding.EncodeToString(pubKey.Bytes())

	cosmosAddr, err := cfg.PubKeyAddressForChain("cosmoshub-4", encoded)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cosmosAddr, "cosmos1"))

	// re-encoding the cosmos address reproduces the pubkey derivation
	fromPubKey, err := cfg.PubKeyAddressForChain("osmosis-1", encoded)
	require.NoError(t, err)
	fromAddress, err := cfg.DeriveAddressForChain("osmosis-1", cosmosAddr)
	require.NoError(t, err)
	assert.Equal(t, fromPubKey, fromAddress)
	assert.True(t, strings.HasPrefix(fromAddress, "osmo1"))

	// and deriving back under the original prefix round-trips
	back, err := util.DeriveAddress("cosmos", fromAddress)
	require.NoError(t, err)
	assert.Equal(t, cosmosAddr, back)
}

func TestDerivationUnknownChain(t *testing.T) {
	cfg := derivationConfig()

	_, err := cfg.DeriveAddressForChain("juno-1", "cosmos1abc")
	assert.ErrorIs(t, err, ErrUnknownChain)
	_, err = cfg.PubKeyAddressForChain("juno-1", "")
	assert.ErrorIs(t, err, ErrUnknownChain)
}
