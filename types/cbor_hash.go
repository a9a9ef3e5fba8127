package types

import (
	"crypto"

	"github.com/mytoken-org/erc721-mint/hash"
)

// HashCBOR encodes the provided "data" to CBOR and calculates hash using the provided "hashAlgorithm".
// The "data" parameter should be a CBOR struct with the "toarray" tag.
func HashCBOR(data any, hashAlgorithm crypto.Hash) ([]byte, error) {
	hasher := hash.New(hashAlgorithm.New())
	hasher.Write(data)
	return hasher.Sum()
}
