package main

import (
	"fmt"
	"io"

	"github.com/mytoken-org/erc721-mint/txsystem/mint"
)

func hashMessage(w io.Writer, cfg *hashMsgConfig) error {
	msg, err := messageBytes(cfg.Message, cfg.Hex)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, mint.HashMessage(msg).Hex())
	return err
}
