package main

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/mytoken-org/erc721-mint/txsystem/mint"
)

func signMessage(w io.Writer, cfg *signConfig) error {
	key, err := parsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return err
	}
	msg, err := messageBytes(cfg.Message, cfg.Hex)
	if err != nil {
		return err
	}

	msgHash := mint.HashMessage(msg)
	sig, err := signEIP191(key, msgHash.Bytes())
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "signer:    %s\n", crypto.PubkeyToAddress(key.PublicKey).Hex())
	fmt.Fprintf(w, "hash:      %s\n", msgHash.Hex())
	_, err = fmt.Fprintf(w, "signature: %s\n", hexutil.Encode(sig))
	return err
}
