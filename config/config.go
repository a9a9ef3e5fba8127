/*
Package config loads the configuration of a collection from YAML:

	collection:
	  address: "0x..."      # address the Transfer events are emitted from
	  max_supply: 1000
	  max_per_tx: 4
	  max_per_signed_mint: 1000
	  set_size: 6
	  unit_price: "0.01"    # ether
	  set_price: "0.05"     # ether
	  signer: ""            # "" - caller signed, "none" - signed mint disabled, otherwise trusted signer address
	log:
	  level: info

Omitted fields keep their default values.
*/
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/goccy/go-yaml"

	"github.com/mytoken-org/erc721-mint/predicates/templates"
	"github.com/mytoken-org/erc721-mint/txsystem/mint"
)

// SignerNone disables the signed mint, no signature is accepted.
const SignerNone = "none"

type (
	Config struct {
		Collection Collection `yaml:"collection"`
		Log        Log        `yaml:"log"`
	}

	Collection struct {
		Address          string `yaml:"address"`
		MaxSupply        uint64 `yaml:"max_supply"`
		MaxPerTx         uint64 `yaml:"max_per_tx"`
		MaxPerSignedMint uint64 `yaml:"max_per_signed_mint"`
		SetSize          uint64 `yaml:"set_size"`
		UnitPrice        string `yaml:"unit_price"`
		SetPrice         string `yaml:"set_price"`
		Signer           string `yaml:"signer"`
	}

	Log struct {
		Level string `yaml:"level"`
	}
)

// Default returns the configuration of the default collection.
func Default() *Config {
	p := mint.DefaultParams()
	return &Config{
		Collection: Collection{
			MaxSupply:        p.MaxSupply,
			MaxPerTx:         p.MaxPerTx,
			MaxPerSignedMint: p.MaxPerSignedMint,
			SetSize:          p.SetSize,
			UnitPrice:        mint.FormatEther(p.UnitPrice),
			SetPrice:         mint.FormatEther(p.SetPrice),
		},
		Log: Log{Level: "info"},
	}
}

// Load reads the configuration from the YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes the YAML document on top of the Default configuration.
// Unknown fields are an error.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if _, err := cfg.Params(); err != nil {
		return nil, err
	}
	if _, err := cfg.LogLevel(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Params converts the collection configuration to validated mint parameters.
func (c *Config) Params() (mint.Params, error) {
	unitPrice, err := mint.ParseEther(c.Collection.UnitPrice)
	if err != nil {
		return mint.Params{}, fmt.Errorf("unit price: %w", err)
	}
	setPrice, err := mint.ParseEther(c.Collection.SetPrice)
	if err != nil {
		return mint.Params{}, fmt.Errorf("set price: %w", err)
	}
	authPredicate, err := signerPredicate(c.Collection.Signer)
	if err != nil {
		return mint.Params{}, err
	}

	p := mint.Params{
		MaxSupply:        c.Collection.MaxSupply,
		MaxPerTx:         c.Collection.MaxPerTx,
		MaxPerSignedMint: c.Collection.MaxPerSignedMint,
		SetSize:          c.Collection.SetSize,
		UnitPrice:        unitPrice,
		SetPrice:         setPrice,
		AuthPredicate:    authPredicate,
	}
	if err := p.IsValid(); err != nil {
		return mint.Params{}, fmt.Errorf("invalid collection config: %w", err)
	}
	return p, nil
}

// Address returns the collection address, zero address when not configured.
func (c *Config) Address() (common.Address, error) {
	if c.Collection.Address == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(c.Collection.Address) {
		return common.Address{}, fmt.Errorf("invalid collection address %q", c.Collection.Address)
	}
	return common.HexToAddress(c.Collection.Address), nil
}

func (c *Config) LogLevel() (slog.Level, error) {
	if c.Log.Level == "" {
		return log.LevelInfo, nil
	}
	lvl, err := log.LvlFromString(strings.ToLower(c.Log.Level))
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return lvl, nil
}

func signerPredicate(signer string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(signer)) {
	case "":
		return templates.CallerSignedBytes(), nil
	case SignerNone:
		return templates.AlwaysFalseBytes(), nil
	}
	if !common.IsHexAddress(signer) {
		return nil, fmt.Errorf("invalid signer address %q", signer)
	}
	return templates.NewTrustedSignerBytes(common.HexToAddress(signer)), nil
}
