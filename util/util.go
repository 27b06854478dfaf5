package util

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// PubKeyToAddress converts a base64 encoded public key to a secp256k1 public
// key and its bech32 address under the given prefix. This is the canonical
// derivation path: the address is ripemd160(sha256(pubkey)) re-encoded for
// the target chain.
func PubKeyToAddress(prefix, pubKey string) (*secp256k1.PubKey, string, error) {
	pubKeyRawBytes, err := base64.StdEncoding.DecodeString(pubKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode public key: %w", err)
	}

	newPubKey := secp256k1.PubKey{Key: pubKeyRawBytes}

	address, err := PubKeyAddress(prefix, &newPubKey)
	if err != nil {
		return nil, "", err
	}
	return &newPubKey, address, nil
}

// PubKeyAddress encodes the hash of pubKey as a bech32 address under prefix.
func PubKeyAddress(prefix string, pubKey cryptotypes.PubKey) (string, error) {
	return bech32.ConvertAndEncode(prefix, pubKey.Address().Bytes())
}

// DeriveAddress re-encodes an existing bech32 address under a different
// prefix. The raw 20-byte payload is kept, the source prefix is discarded.
//
// This is only equivalent to PubKeyAddress when the source address is a
// plain hash-of-pubkey account, which holds for standard Cosmos accounts
// but not for every custom account type. Prefer the pubkey path when the
// key is available.
func DeriveAddress(targetPrefix, address string) (string, error) {
	_, raw, err := bech32.DecodeAndConvert(address)
	if err != nil {
		return "", fmt.Errorf("failed to decode address %s: %w", address, err)
	}
	return bech32.ConvertAndEncode(targetPrefix, raw)
}

// DisplayAmount formats a micro-denom amount for display.
func DisplayAmount(amount int64, decimals int) string {
	return strconv.FormatFloat(float64(amount)/1_000_000, 'f', decimals, 64)
}
