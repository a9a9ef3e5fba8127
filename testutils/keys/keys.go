/*
Package keys contains helpers for creating secp256k1 keys and signing
messages the way Ethereum wallets do (ie ethers.js Signer.signMessage).
*/
package keys

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// NewKey generates random key.
func NewKey(t testing.TB) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal("failed to generate key:", err)
	}
	return key
}

/*
KeyFromSeed derives key deterministically from the seed, the same seed
always yields the same key (and thus address).
*/
func KeyFromSeed(t testing.TB, seed string) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.ToECDSA(crypto.Keccak256([]byte(seed)))
	if err != nil {
		t.Fatalf("failed to derive key from seed %q: %v", seed, err)
	}
	return key
}

func Address(key *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(key.PublicKey)
}

/*
SignMessage returns EIP-191 signature of the message with V in the legacy
{27, 28} form.
*/
func SignMessage(t testing.TB, key *ecdsa.PrivateKey, msg []byte) []byte {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	if err != nil {
		t.Fatal("failed to sign message:", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig
}
