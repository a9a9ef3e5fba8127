package mint

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mytoken-org/erc721-mint/util"
)

/*
Ledger is the ERC-721 ownership store the controller mints into.
*/
type Ledger interface {
	// BalanceOf returns number of tokens owned by the "owner".
	BalanceOf(owner common.Address) uint64
	// OwnerOf returns owner of the token, second return value is false
	// when the token doesn't exist.
	OwnerOf(tokenID uint64) (common.Address, bool)
	// Mint creates "quantity" new tokens owned by "to" and returns their IDs.
	// Mint must either create all the tokens or none of them.
	Mint(to common.Address, quantity uint64) ([]uint64, error)
	// Owners returns owners of all the tokens in token ID order, ie first
	// item is the owner of the token 1.
	Owners() []common.Address
}

var _ Ledger = (*MemLedger)(nil)

/*
MemLedger is in-memory Ledger, token IDs are assigned sequentially starting
from 1.
*/
type MemLedger struct {
	owners   []common.Address // owners[id-1] is the owner of the token "id"
	balances map[common.Address]uint64
}

func NewMemLedger() *MemLedger {
	return &MemLedger{balances: make(map[common.Address]uint64)}
}

func (l *MemLedger) BalanceOf(owner common.Address) uint64 {
	return l.balances[owner]
}

func (l *MemLedger) OwnerOf(tokenID uint64) (common.Address, bool) {
	if tokenID == 0 || tokenID > uint64(len(l.owners)) {
		return common.Address{}, false
	}
	return l.owners[tokenID-1], true
}

func (l *MemLedger) Mint(to common.Address, quantity uint64) ([]uint64, error) {
	if to == (common.Address{}) {
		return nil, fmt.Errorf("mint to the zero address")
	}
	first, ok := util.SafeAdd(uint64(len(l.owners)), 1)
	if !ok {
		return nil, fmt.Errorf("token ID overflow")
	}
	balance, ok := util.SafeAdd(l.balances[to], quantity)
	if !ok {
		return nil, fmt.Errorf("balance of %s overflows", to)
	}
	if _, ok := util.SafeAdd(first, quantity); !ok {
		return nil, fmt.Errorf("token ID overflow")
	}

	ids := make([]uint64, quantity)
	for i := range ids {
		ids[i] = first + uint64(i)
		l.owners = append(l.owners, to)
	}
	l.balances[to] = balance
	return ids, nil
}

func (l *MemLedger) Owners() []common.Address {
	return append([]common.Address(nil), l.owners...)
}

// restoreMemLedger creates ledger where token "i+1" is owned by owners[i].
func restoreMemLedger(owners []common.Address) (*MemLedger, error) {
	l := NewMemLedger()
	for i, owner := range owners {
		if owner == (common.Address{}) {
			return nil, fmt.Errorf("token %d is owned by the zero address", i+1)
		}
		l.owners = append(l.owners, owner)
		l.balances[owner]++
	}
	return l, nil
}
