package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	hashMsgSubCmd  = "hashmsg"
	signSubCmd     = "sign"
	recoverSubCmd  = "recover"
	simulateSubCmd = "simulate"
)

type configFlags struct {
	LogLevel string `short:"l" long:"loglevel" description:"Log level (trace, debug, info, warn, error, crit), overrides the level of the collection config"`
}

type hashMsgConfig struct {
	Message string `short:"m" long:"message" description:"Message to hash"`
	Hex     bool   `short:"x" long:"hex" description:"Message is hex encoded bytes"`
	configFlags
}

type signConfig struct {
	PrivateKey string `short:"k" long:"privatekey" description:"Hex encoded secp256k1 private key to sign with"`
	Message    string `short:"m" long:"message" description:"Message to sign"`
	Hex        bool   `short:"x" long:"hex" description:"Message is hex encoded bytes"`
	configFlags
}

type recoverConfig struct {
	Hash      string `short:"H" long:"hash" description:"Hex encoded EIP-191 message hash"`
	Signature string `short:"S" long:"signature" description:"Hex encoded 65 byte signature"`
	configFlags
}

type simulateConfig struct {
	CollectionConfig string `short:"c" long:"config" description:"Path to the collection config file, defaults are used when not set"`
	Scenario         string `short:"s" long:"scenario" description:"Path to the scenario file"`
	SnapshotFile     string `short:"o" long:"snapshot" description:"Write the final state snapshot to the file"`
	configFlags
}

func parseCommandLine() (subCommand string, config interface{}) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	hashMsgConf := &hashMsgConfig{}
	parser.AddCommand(hashMsgSubCmd, "Hash a message",
		"Prints the EIP-191 hash of the message, the hash signed mint signatures are made of", hashMsgConf)

	signConf := &signConfig{}
	parser.AddCommand(signSubCmd, "Sign a message",
		"Signs the message the way Ethereum wallets do and prints the signer address, the message hash and the signature", signConf)

	recoverConf := &recoverConfig{}
	parser.AddCommand(recoverSubCmd, "Recover the signer",
		"Prints the address of the signer of the message hash", recoverConf)

	simulateConf := &simulateConfig{}
	parser.AddCommand(simulateSubCmd, "Simulate a mint scenario",
		"Executes the calls of the scenario file against a new collection and prints the receipts and the final state", simulateConf)

	_, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
		return "", nil
	}

	switch parser.Command.Active.Name {
	case hashMsgSubCmd:
		combineFlags(&hashMsgConf.configFlags, cfg)
		if err := initLog(hashMsgConf.LogLevel); err != nil {
			printErrorAndExit(err.Error())
		}
		validateHashMsgConfig(hashMsgConf)
		config = hashMsgConf
	case signSubCmd:
		combineFlags(&signConf.configFlags, cfg)
		if err := initLog(signConf.LogLevel); err != nil {
			printErrorAndExit(err.Error())
		}
		validateSignConfig(signConf)
		config = signConf
	case recoverSubCmd:
		combineFlags(&recoverConf.configFlags, cfg)
		if err := initLog(recoverConf.LogLevel); err != nil {
			printErrorAndExit(err.Error())
		}
		validateRecoverConfig(recoverConf)
		config = recoverConf
	case simulateSubCmd:
		combineFlags(&simulateConf.configFlags, cfg)
		validateSimulateConfig(simulateConf)
		config = simulateConf
	}

	return parser.Command.Active.Name, config
}

func combineFlags(dst, src *configFlags) {
	if dst.LogLevel == "" {
		dst.LogLevel = src.LogLevel
	}
}

func validateHashMsgConfig(cfg *hashMsgConfig) {
	if cfg.Message == "" {
		printErrorAndExit("message is required")
	}
}

func validateSignConfig(cfg *signConfig) {
	if cfg.PrivateKey == "" {
		printErrorAndExit("private key is required")
	}

	if cfg.Message == "" {
		printErrorAndExit("message is required")
	}
}

func validateRecoverConfig(cfg *recoverConfig) {
	if cfg.Hash == "" {
		printErrorAndExit("message hash is required")
	}

	if cfg.Signature == "" {
		printErrorAndExit("signature is required")
	}
}

func validateSimulateConfig(cfg *simulateConfig) {
	if cfg.Scenario == "" {
		printErrorAndExit("scenario file is required")
	}
}
