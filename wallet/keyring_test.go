package wallet_test

import (
	"strings"
	"testing"

	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InterChadz/awesomewasm-2024/chainio"
	"github.com/InterChadz/awesomewasm-2024/core"
	"github.com/InterChadz/awesomewasm-2024/util"
	"github.com/InterChadz/awesomewasm-2024/wallet"
)

// the all-abandon vector from the BIP39 reference tests
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func newTestWallet(t *testing.T) *wallet.KeyringWallet {
	t.Helper()
	w, err := wallet.NewKeyringWallet("restaker-test", keyring.BackendMemory, t.TempDir(), "test", chainio.NewCodec())
	require.NoError(t, err)
	require.NoError(t, w.ImportMnemonic(testMnemonic))
	return w
}

func TestImportMnemonicIsIdempotent(t *testing.T) {
	w := newTestWallet(t)
	// second import with a different mnemonic is a no-op, the key stays
	other := "legal winner thank year wave sausage worth useful legal winner thank yellow"
	require.NoError(t, w.ImportMnemonic(other))

	require.NoError(t, w.SuggestChain(wallet.NewChainInfo("neutron-1", "neutron", "http://localhost:26657", "", "NTRN")))
	require.NoError(t, w.Enable("neutron-1"))
	signer, err := w.OfflineSigner("neutron-1")
	require.NoError(t, err)
	accounts, err := signer.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
}

func TestImportMnemonicRejectsInvalid(t *testing.T) {
	w, err := wallet.NewKeyringWallet("restaker-test", keyring.BackendMemory, t.TempDir(), "test", chainio.NewCodec())
	require.NoError(t, err)
	assert.Error(t, w.ImportMnemonic("not a valid mnemonic"))
}

func TestEnableRequiresSuggestedChains(t *testing.T) {
	w := newTestWallet(t)
	require.NoError(t, w.SuggestChain(wallet.NewChainInfo("neutron-1", "neutron", "http://localhost:26657", "", "NTRN")))

	err := w.Enable("neutron-1", "cosmoshub-4")
	assert.ErrorIs(t, err, core.ErrUnknownChain)

	// the failed call enabled nothing
	_, err = w.OfflineSigner("neutron-1")
	assert.ErrorIs(t, err, core.ErrUnknownChain)
}

func TestOfflineSignerRequiresEnable(t *testing.T) {
	w := newTestWallet(t)
	require.NoError(t, w.SuggestChain(wallet.NewChainInfo("neutron-1", "neutron", "http://localhost:26657", "", "NTRN")))

	_, err := w.OfflineSigner("neutron-1")
	assert.ErrorIs(t, err, core.ErrUnknownChain)

	require.NoError(t, w.Enable("neutron-1"))
	signer, err := w.OfflineSigner("neutron-1")
	require.NoError(t, err)
	assert.Equal(t, "test", signer.KeyName())
	assert.NotNil(t, signer.Keyring())
}

func TestOneKeyServesEveryChain(t *testing.T) {
	w := newTestWallet(t)
	require.NoError(t, w.SuggestChain(wallet.NewChainInfo("neutron-1", "neutron", "http://localhost:26657", "", "NTRN")))
	require.NoError(t, w.SuggestChain(wallet.NewChainInfo("cosmoshub-4", "cosmos", "http://localhost:26658", "", "ATOM")))
	require.NoError(t, w.Enable("neutron-1", "cosmoshub-4"))

	neutronSigner, err := w.OfflineSigner("neutron-1")
	require.NoError(t, err)
	hubSigner, err := w.OfflineSigner("cosmoshub-4")
	require.NoError(t, err)

	neutronAccounts, err := neutronSigner.Accounts()
	require.NoError(t, err)
	hubAccounts, err := hubSigner.Accounts()
	require.NoError(t, err)

	// same raw account, different prefixes
	assert.Equal(t, neutronAccounts[0].Address, hubAccounts[0].Address)

	neutronAddr, err := util.PubKeyAddress("neutron", neutronAccounts[0].PubKey)
	require.NoError(t, err)
	hubAddr, err := util.PubKeyAddress("cosmos", hubAccounts[0].PubKey)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(neutronAddr, "neutron1"))
	assert.True(t, strings.HasPrefix(hubAddr, "cosmos1"))

	derived, err := util.DeriveAddress("cosmos", neutronAddr)
	require.NoError(t, err)
	assert.Equal(t, hubAddr, derived)
}

func TestNewChainInfoPrefixes(t *testing.T) {
	info := wallet.NewChainInfo("cosmoshub-4", "cosmos", "http://localhost:26657", "http://localhost:1317", "ATOM")

	assert.Equal(t, "cosmos", info.Bech32Config.Bech32PrefixAccAddr)
	assert.Equal(t, "cosmosvaloper", info.Bech32Config.Bech32PrefixValAddr)
	assert.Equal(t, "cosmosvalconspub", info.Bech32Config.Bech32PrefixConsPub)
	assert.Equal(t, uint32(118), info.CoinType)
	require.Len(t, info.FeeCurrencies, 1)
	assert.Equal(t, "uatom", info.FeeCurrencies[0].CoinMinimalDenom)
}
