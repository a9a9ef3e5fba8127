package main

import (
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// initLog installs the terminal logger on stderr as the root logger.
func initLog(level string) error {
	lvl := log.LevelInfo
	if level != "" {
		var err error
		if lvl, err = log.LvlFromString(level); err != nil {
			return errors.Wrapf(err, "Error parsing log level %q", level)
		}
	}
	useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, useColor)))
	return nil
}
