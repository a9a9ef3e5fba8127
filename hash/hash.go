package hash

import (
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

/*
NewKeccak256 creates "hash calculator" using the legacy Keccak-256 hash function
(ie the one used by Ethereum, not the standardized SHA3-256).
*/
func NewKeccak256() *Hash {
	return New(ethcrypto.NewKeccakState())
}
