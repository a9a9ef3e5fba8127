package mint

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"

	"github.com/mytoken-org/erc721-mint/predicates/templates"
)

const (
	DefaultMaxSupply = 1000
	DefaultMaxPerTx  = 4
	DefaultSetSize   = 6

	// signed mints of the default collection are limited by the max supply only
	DefaultMaxPerSignedMint = DefaultMaxSupply
)

type Params struct {
	MaxSupply        uint64       // total supply cap of the collection
	MaxPerTx         uint64       // max quantity of a single public mint
	MaxPerSignedMint uint64       // max quantity of a single signed mint
	SetSize          uint64       // number of tokens issued by set mint
	UnitPrice        *uint256.Int // price of a single token of public mint, in wei
	SetPrice         *uint256.Int // price of the set, in wei
	// predicate deciding whose signature authorizes signed mint, see
	// predicates/templates
	AuthPredicate []byte
}

/*
DefaultParams returns parameters of the MyERC721Token collection: 1000 tokens,
at most 4 per public mint at 0.01 ether each, sets of 6 tokens for 0.05 ether
and signed mints authorized by the caller's own signature.
*/
func DefaultParams() Params {
	return Params{
		MaxSupply:        DefaultMaxSupply,
		MaxPerTx:         DefaultMaxPerTx,
		MaxPerSignedMint: DefaultMaxPerSignedMint,
		SetSize:          DefaultSetSize,
		UnitPrice:        MustParseEther("0.01"),
		SetPrice:         MustParseEther("0.05"),
		AuthPredicate:    templates.CallerSignedBytes(),
	}
}

func (p *Params) IsValid() error {
	if p == nil {
		return errors.New("params is nil")
	}
	if p.MaxSupply == 0 {
		return errors.New("max supply must be greater than zero")
	}
	if p.MaxPerTx == 0 {
		return errors.New("max tokens per transaction must be greater than zero")
	}
	if p.MaxPerSignedMint == 0 {
		return errors.New("max tokens per signed mint must be greater than zero")
	}
	if p.SetSize == 0 {
		return errors.New("set size must be greater than zero")
	}
	if p.SetSize > p.MaxSupply {
		return fmt.Errorf("set size %d exceeds max supply %d", p.SetSize, p.MaxSupply)
	}
	if p.UnitPrice == nil {
		return errors.New("unit price is nil")
	}
	if p.SetPrice == nil {
		return errors.New("set price is nil")
	}
	if len(p.AuthPredicate) == 0 {
		return errors.New("auth predicate is empty")
	}
	if err := templates.Validate(p.AuthPredicate); err != nil {
		return fmt.Errorf("invalid auth predicate: %w", err)
	}
	return nil
}

// Clone returns deep copy of the parameters, the copy doesn't share the
// prices or the predicate with "p".
func (p Params) Clone() Params {
	c := p
	if p.UnitPrice != nil {
		c.UnitPrice = p.UnitPrice.Clone()
	}
	if p.SetPrice != nil {
		c.SetPrice = p.SetPrice.Clone()
	}
	c.AuthPredicate = slices.Clone(p.AuthPredicate)
	return c
}

// MintPrice returns the price of "quantity" tokens of public mint.
func (p *Params) MintPrice(quantity uint64) (*uint256.Int, error) {
	price, overflow := new(uint256.Int).MulOverflow(p.UnitPrice, uint256.NewInt(quantity))
	if overflow {
		return nil, fmt.Errorf("price of %d tokens overflows uint256", quantity)
	}
	return price, nil
}

/*
ParseEther converts decimal ether amount (ie "0.05") to wei. Amounts with more
than 18 decimal places or outside of uint256 range are rejected.
*/
func ParseEther(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty ether amount")
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid ether amount %q", s)
	}
	if r.Sign() < 0 {
		return nil, fmt.Errorf("negative ether amount %q", s)
	}
	r.Mul(r, new(big.Rat).SetInt64(params.Ether))
	if !r.IsInt() {
		return nil, fmt.Errorf("ether amount %q has more than 18 decimal places", s)
	}
	wei, overflow := uint256.FromBig(r.Num())
	if overflow {
		return nil, fmt.Errorf("ether amount %q overflows uint256", s)
	}
	return wei, nil
}

func MustParseEther(s string) *uint256.Int {
	wei, err := ParseEther(s)
	if err != nil {
		panic(err)
	}
	return wei
}

// FormatEther formats wei amount as decimal ether string.
func FormatEther(wei *uint256.Int) string {
	if wei == nil {
		return "0"
	}
	r := new(big.Rat).SetFrac(wei.ToBig(), big.NewInt(params.Ether))
	s := r.FloatString(18)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
