package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"

	"github.com/mytoken-org/erc721-mint/predicates/templates"
	"github.com/mytoken-org/erc721-mint/txsystem/mint"
)

func TestDefault(t *testing.T) {
	p, err := Default().Params()
	require.NoError(t, err)
	require.Equal(t, mint.DefaultParams(), p)

	addr, err := Default().Address()
	require.NoError(t, err)
	require.Equal(t, common.Address{}, addr)

	lvl, err := Default().LogLevel()
	require.NoError(t, err)
	require.Equal(t, log.LevelInfo, lvl)
}

func TestParse(t *testing.T) {
	t.Run("partial config keeps defaults", func(t *testing.T) {
		cfg, err := Parse([]byte(`
collection:
  max_supply: 20
  unit_price: "0.5"
log:
  level: debug
`))
		require.NoError(t, err)
		p, err := cfg.Params()
		require.NoError(t, err)
		require.EqualValues(t, 20, p.MaxSupply)
		require.EqualValues(t, 4, p.MaxPerTx)
		require.EqualValues(t, 1000, p.MaxPerSignedMint)
		require.Equal(t, mint.MustParseEther("0.5"), p.UnitPrice)
		require.Equal(t, mint.MustParseEther("0.05"), p.SetPrice)
		require.Equal(t, templates.CallerSignedBytes(), p.AuthPredicate)

		lvl, err := cfg.LogLevel()
		require.NoError(t, err)
		require.Equal(t, log.LevelDebug, lvl)
	})

	t.Run("signer", func(t *testing.T) {
		signer := common.HexToAddress("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4")
		cfg, err := Parse([]byte("collection:\n  signer: \"" + signer.Hex() + "\"\n"))
		require.NoError(t, err)
		p, err := cfg.Params()
		require.NoError(t, err)
		got, err := templates.ExtractTrustedSigner(p.AuthPredicate)
		require.NoError(t, err)
		require.Equal(t, signer, got)

		cfg, err = Parse([]byte("collection:\n  signer: none\n"))
		require.NoError(t, err)
		p, err = cfg.Params()
		require.NoError(t, err)
		require.Equal(t, templates.AlwaysFalseBytes(), p.AuthPredicate)
	})

	t.Run("address", func(t *testing.T) {
		cfg, err := Parse([]byte(`collection: {address: "0x00000000000000000000000000000000c0ffee00"}`))
		require.NoError(t, err)
		addr, err := cfg.Address()
		require.NoError(t, err)
		require.Equal(t, common.HexToAddress("0xc0ffee00"), addr)

		cfg.Collection.Address = "0x12"
		_, err = cfg.Address()
		require.EqualError(t, err, `invalid collection address "0x12"`)
	})

	t.Run("invalid", func(t *testing.T) {
		cases := []struct {
			name   string
			yaml   string
			errMsg string
		}{
			{"unknown field", "collection:\n  maxsupply: 5\n", "decoding config"},
			{"not yaml", "collection: [", "decoding config"},
			{"unit price", "collection:\n  unit_price: abc\n", `unit price: invalid ether amount "abc"`},
			{"set price", "collection:\n  set_price: \"-1\"\n", `set price: negative ether amount "-1"`},
			{"signer", "collection:\n  signer: \"0x12\"\n", `invalid signer address "0x12"`},
			{"params", "collection:\n  max_per_tx: 0\n", `invalid collection config: max tokens per transaction must be greater than zero`},
			{"signed mint limit", "collection:\n  max_per_signed_mint: 0\n", `invalid collection config: max tokens per signed mint must be greater than zero`},
			{"log level", "log:\n  level: loud\n", `invalid log level "loud"`},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := Parse([]byte(tc.yaml))
				require.ErrorContains(t, err, tc.errMsg)
			})
		}
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collection.yaml")
	require.NoError(t, os.WriteFile(path, []byte("collection:\n  set_size: 3\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.EqualValues(t, 3, cfg.Collection.SetSize)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorContains(t, err, "reading config file")

	require.NoError(t, os.WriteFile(path, []byte("collection:\n  set_size: 0\n"), 0o600))
	_, err = Load(path)
	require.ErrorContains(t, err, `loading config "`+path+`"`)
}
