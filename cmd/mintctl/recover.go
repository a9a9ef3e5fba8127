package main

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/mytoken-org/erc721-mint/txsystem/mint"
)

func recoverSigner(w io.Writer, cfg *recoverConfig) error {
	hash, err := decodeHex(cfg.Hash)
	if err != nil {
		return errors.Wrap(err, "Error parsing message hash hex")
	}
	if len(hash) != common.HashLength {
		return errors.Errorf("message hash must be %d bytes, got %d", common.HashLength, len(hash))
	}
	sig, err := decodeHex(cfg.Signature)
	if err != nil {
		return errors.Wrap(err, "Error parsing signature hex")
	}

	signer, err := mint.RecoverSigner(common.BytesToHash(hash), sig)
	if err != nil {
		return errors.Wrap(err, "Error recovering signer")
	}
	_, err = fmt.Fprintln(w, signer.Hex())
	return err
}
