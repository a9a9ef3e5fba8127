package mint

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/mytoken-org/erc721-mint/types"
)

const (
	MethodSignedMint types.Method = 1
	MethodMintSet    types.Method = 2
	MethodMint       types.Method = 3
)

type (
	SignedMintAttributes struct {
		_           struct{}    `cbor:",toarray"`
		Quantity    uint64      // number of tokens to mint
		MessageHash common.Hash // EIP-191 hash of the signed message
	}

	// MintSetAttributes has no fields, set size is fixed by the collection.
	MintSetAttributes struct {
		_ struct{} `cbor:",toarray"`
	}

	MintAttributes struct {
		_        struct{} `cbor:",toarray"`
		Quantity uint64   // number of tokens to mint
	}

	SignedMintAuthProof struct {
		_         struct{} `cbor:",toarray"`
		Signature []byte   // 65 byte [R || S || V] signature of the message hash
	}
)

func MethodName(m types.Method) string {
	switch m {
	case MethodSignedMint:
		return "signedMint"
	case MethodMintSet:
		return "mintSet"
	case MethodMint:
		return "mint"
	default:
		return "unknown"
	}
}
