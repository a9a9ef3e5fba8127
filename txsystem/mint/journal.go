package mint

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// journalEntry is a modification of the State which can be reverted.
type journalEntry interface {
	revert(*State)
}

/*
journal contains the list of state modifications applied by the call
currently being executed. These are tracked to be able to revert the
call in case of an error after some of the state has already been changed.
*/
type journal struct {
	entries []journalEntry
}

func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
}

// revert undoes all the modifications recorded after the "snapshot".
func (j *journal) revert(s *State, snapshot int) {
	for i := len(j.entries) - 1; i >= snapshot; i-- {
		j.entries[i].revert(s)
	}
	j.entries = j.entries[:snapshot]
}

func (j *journal) length() int {
	return len(j.entries)
}

type (
	totalSupplyChange struct {
		prev uint64
	}
	setMintedChange struct {
		account common.Address
	}
	signatureUsedChange struct {
		fingerprint common.Hash
	}
	proceedsChange struct {
		prev *uint256.Int
	}
)

func (ch totalSupplyChange) revert(s *State) {
	s.totalSupply = ch.prev
}

func (ch setMintedChange) revert(s *State) {
	delete(s.setMinted, ch.account)
}

func (ch signatureUsedChange) revert(s *State) {
	delete(s.usedSignatures, ch.fingerprint)
}

func (ch proceedsChange) revert(s *State) {
	s.proceeds = ch.prev
}
