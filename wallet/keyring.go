package wallet

import (
	"fmt"
	"os"
	"sync"

	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tyler-smith/go-bip39"

	"github.com/InterChadz/awesomewasm-2024/core"
)

// KeyringWallet backs the wallet surface with a cosmos-sdk keyring. One key
// serves every chain; addresses differ only by bech32 prefix.
type KeyringWallet struct {
	mu      sync.Mutex
	kr      keyring.Keyring
	keyName string
	chains  map[string]ChainInfo
	enabled map[string]bool
}

// NewKeyringWallet opens (or creates) the keyring at rootDir.
func NewKeyringWallet(appName, backend, rootDir, keyName string, cdc codec.Codec) (*KeyringWallet, error) {
	kr, err := keyring.New(appName, backend, rootDir, os.Stdin, cdc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrWalletUnavailable, err)
	}
	return &KeyringWallet{
		kr:      kr,
		keyName: keyName,
		chains:  make(map[string]ChainInfo),
		enabled: make(map[string]bool),
	}, nil
}

// ImportMnemonic recovers the signing key from a BIP39 mnemonic. A no-op
// when the key already exists.
func (w *KeyringWallet) ImportMnemonic(mnemonic string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.kr.Key(w.keyName); err == nil {
		return nil
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return fmt.Errorf("invalid mnemonic")
	}
	hdPath := hd.CreateHDPath(sdk.CoinType, 0, 0).String()
	_, err := w.kr.NewAccount(w.keyName, mnemonic, "", hdPath, hd.Secp256k1)
	if err != nil {
		return fmt.Errorf("failed to recover key %s: %w", w.keyName, err)
	}
	return nil
}

func (w *KeyringWallet) SuggestChain(info ChainInfo) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.chains[info.ChainId] = info
	return nil
}

// Enable grants access for the listed chain ids. Every id must have been
// suggested first.
func (w *KeyringWallet) Enable(chainIds ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, id := range chainIds {
		if _, ok := w.chains[id]; !ok {
			return fmt.Errorf("%w: %s", core.ErrUnknownChain, id)
		}
	}
	for _, id := range chainIds {
		w.enabled[id] = true
	}
	return nil
}

func (w *KeyringWallet) OfflineSigner(chainId string) (OfflineSigner, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.enabled[chainId] {
		return nil, fmt.Errorf("%w: chain %s not enabled", core.ErrUnknownChain, chainId)
	}
	return &keyringSigner{kr: w.kr, keyName: w.keyName}, nil
}

type keyringSigner struct {
	kr      keyring.Keyring
	keyName string
}

func (s *keyringSigner) Accounts() ([]Account, error) {
	record, err := s.kr.Key(s.keyName)
	if err != nil {
		return nil, fmt.Errorf("%w: key %s: %v", core.ErrWalletUnavailable, s.keyName, err)
	}
	pubKey, err := record.GetPubKey()
	if err != nil {
		return nil, err
	}
	return []Account{{
		Address: sdk.AccAddress(pubKey.Address()),
		PubKey:  pubKey,
	}}, nil
}

func (s *keyringSigner) Keyring() keyring.Keyring {
	return s.kr
}

func (s *keyringSigner) KeyName() string {
	return s.keyName
}
