package main

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

func printErrorAndExit(message string) {
	fmt.Fprintln(os.Stderr, message)
	os.Exit(1)
}

// decodeHex decodes hex string, the "0x" prefix is optional.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

func parsePrivateKey(privateKeyHex string) (*ecdsa.PrivateKey, error) {
	privateKeyBytes, err := decodeHex(privateKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing private key hex")
	}
	privateKey, err := crypto.ToECDSA(privateKeyBytes)
	if err != nil {
		return nil, errors.Wrap(err, "Error deserializing private key")
	}
	return privateKey, nil
}

func messageBytes(message string, isHex bool) ([]byte, error) {
	if !isHex {
		return []byte(message), nil
	}
	msg, err := decodeHex(message)
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing message hex")
	}
	return msg, nil
}

/*
accountKey derives the key of a named scenario account, the same name always
yields the same key. The keys are for simulation only.
*/
func accountKey(name string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.ToECDSA(crypto.Keccak256([]byte(name)))
	if err != nil {
		return nil, errors.Wrapf(err, "Error deriving key of account %q", name)
	}
	return key, nil
}

// signEIP191 signs the message with V in the legacy {27, 28} form, like ethers.js.
func signEIP191(key *ecdsa.PrivateKey, msgHash []byte) ([]byte, error) {
	sig, err := crypto.Sign(msgHash, key)
	if err != nil {
		return nil, errors.Wrap(err, "Error signing message")
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}
