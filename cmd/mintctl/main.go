package main

import (
	"os"
)

func main() {
	cmd, cfg := parseCommandLine()

	var err error

	switch cmd {
	case hashMsgSubCmd:
		err = hashMessage(os.Stdout, cfg.(*hashMsgConfig))
	case signSubCmd:
		err = signMessage(os.Stdout, cfg.(*signConfig))
	case recoverSubCmd:
		err = recoverSigner(os.Stdout, cfg.(*recoverConfig))
	case simulateSubCmd:
		err = simulate(os.Stdout, cfg.(*simulateConfig))
	default:
		printErrorAndExit("Unknown command")
	}

	if err != nil {
		printErrorAndExit(err.Error())
	}
}
