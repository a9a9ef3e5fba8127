package mint

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/mytoken-org/erc721-mint/hash"
)

/*
HashMessage returns the EIP-191 "personal message" hash of msg, ie
keccak256("\x19Ethereum Signed Message:\n" + len(msg) + msg).
*/
func HashMessage(msg []byte) common.Hash {
	return common.BytesToHash(accounts.TextHash(msg))
}

/*
canonicalSignature returns copy of the 65 byte [R || S || V] signature with V
normalized to {0, 1}. Both the legacy (27, 28) and the raw recovery id forms of
V are accepted. Signatures with S in the upper half of the curve order are
rejected so that every signature has exactly one valid encoding.
*/
func canonicalSignature(sig []byte) ([]byte, error) {
	if len(sig) != crypto.SignatureLength {
		return nil, fmt.Errorf("invalid signature length %d, expected %d", len(sig), crypto.SignatureLength)
	}
	cs := make([]byte, crypto.SignatureLength)
	copy(cs, sig)
	if cs[crypto.RecoveryIDOffset] >= 27 {
		cs[crypto.RecoveryIDOffset] -= 27
	}
	r := new(big.Int).SetBytes(cs[:32])
	s := new(big.Int).SetBytes(cs[32:64])
	if !crypto.ValidateSignatureValues(cs[crypto.RecoveryIDOffset], r, s, true) {
		return nil, fmt.Errorf("invalid signature values")
	}
	return cs, nil
}

// RecoverSigner returns address of the account which signed the message hash.
func RecoverSigner(msgHash common.Hash, sig []byte) (common.Address, error) {
	cs, err := canonicalSignature(sig)
	if err != nil {
		return common.Address{}, err
	}
	pub, err := crypto.SigToPub(msgHash[:], cs)
	if err != nil {
		return common.Address{}, fmt.Errorf("recovering public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

/*
SignatureFingerprint returns the identifier under which the signature is
recorded as used. It is the Keccak-256 hash of the canonical form of the
signature, so the legacy and raw V encodings of the same signature share
the fingerprint.
*/
func SignatureFingerprint(sig []byte) (common.Hash, error) {
	cs, err := canonicalSignature(sig)
	if err != nil {
		return common.Hash{}, err
	}
	h := hash.NewKeccak256()
	h.WriteRaw(cs)
	return h.Hash256()
}
