package mint

import (
	"bytes"
	"crypto"
	"fmt"
	"maps"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/mytoken-org/erc721-mint/cbor"
	"github.com/mytoken-org/erc721-mint/hash"
	"github.com/mytoken-org/erc721-mint/types"
	"github.com/mytoken-org/erc721-mint/util"
)

/*
State is the mutable state of the mint controller. Zero supply, no set
mints and no used signatures is the initial state of a new collection.
State is not safe for concurrent use, the Controller serializes access to it.
*/
type State struct {
	totalSupply    uint64
	setMinted      map[common.Address]struct{}
	usedSignatures map[common.Hash]struct{}
	proceeds       *uint256.Int
	ledger         Ledger
	journal        *journal
}

// NewState returns empty state which mints into "ledger".
func NewState(ledger Ledger) *State {
	return &State{
		setMinted:      make(map[common.Address]struct{}),
		usedSignatures: make(map[common.Hash]struct{}),
		proceeds:       new(uint256.Int),
		ledger:         ledger,
		journal:        &journal{},
	}
}

func (s *State) TotalSupply() uint64 {
	return s.totalSupply
}

func (s *State) HasMintedSet(account common.Address) bool {
	_, ok := s.setMinted[account]
	return ok
}

func (s *State) IsSignatureUsed(fingerprint common.Hash) bool {
	_, ok := s.usedSignatures[fingerprint]
	return ok
}

func (s *State) Proceeds() *uint256.Int {
	return s.proceeds.Clone()
}

func (s *State) Ledger() Ledger {
	return s.ledger
}

func (s *State) addSupply(quantity uint64) error {
	supply, ok := util.SafeAdd(s.totalSupply, quantity)
	if !ok {
		return fmt.Errorf("total supply overflow")
	}
	s.journal.append(totalSupplyChange{prev: s.totalSupply})
	s.totalSupply = supply
	return nil
}

func (s *State) markSetMinted(account common.Address) {
	s.journal.append(setMintedChange{account: account})
	s.setMinted[account] = struct{}{}
}

func (s *State) markSignatureUsed(fingerprint common.Hash) {
	s.journal.append(signatureUsedChange{fingerprint: fingerprint})
	s.usedSignatures[fingerprint] = struct{}{}
}

func (s *State) addProceeds(amount *uint256.Int) error {
	sum, overflow := new(uint256.Int).AddOverflow(s.proceeds, amount)
	if overflow {
		return fmt.Errorf("proceeds overflow")
	}
	s.journal.append(proceedsChange{prev: s.proceeds})
	s.proceeds = sum
	return nil
}

// snapshot returns revision id which can be passed to revertToSnapshot.
func (s *State) snapshot() int {
	return s.journal.length()
}

func (s *State) revertToSnapshot(id int) {
	s.journal.revert(s, id)
}

// commit forgets the changes recorded in the journal, they can't be reverted anymore.
func (s *State) commit() {
	s.journal.entries = s.journal.entries[:0]
}

type stateSnapshot struct {
	_              struct{} `cbor:",toarray"`
	Version        types.Version
	TotalSupply    uint64
	SetMinted      []common.Address // sorted
	UsedSignatures []common.Hash    // sorted
	Proceeds       *big.Int
	Owners         []common.Address // owner of the token "i+1" at index i
}

func (ss *stateSnapshot) GetVersion() types.Version {
	if ss == nil || ss.Version == 0 {
		return 1
	}
	return ss.Version
}

func (s *State) toSnapshot() *stateSnapshot {
	setMinted := slices.SortedFunc(maps.Keys(s.setMinted), func(a, b common.Address) int { return bytes.Compare(a[:], b[:]) })
	usedSigs := slices.SortedFunc(maps.Keys(s.usedSignatures), func(a, b common.Hash) int { return bytes.Compare(a[:], b[:]) })
	return &stateSnapshot{
		Version:        1,
		TotalSupply:    s.totalSupply,
		SetMinted:      setMinted,
		UsedSignatures: usedSigs,
		Proceeds:       s.proceeds.ToBig(),
		Owners:         s.ledger.Owners(),
	}
}

/*
MarshalCBOR encodes the state (including the token ownership of the ledger)
as a tagged, deterministic CBOR snapshot. The same state always results in
the same bytes.
*/
func (s *State) MarshalCBOR() ([]byte, error) {
	return cbor.MarshalTaggedValue(types.StateSnapshotTag, s.toSnapshot())
}

// Hash returns hash of the CBOR snapshot of the state.
func (s *State) Hash(algorithm crypto.Hash) ([]byte, error) {
	buf, err := s.MarshalCBOR()
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	h := hash.New(algorithm.New())
	h.WriteRaw(buf)
	return h.Sum()
}

/*
RestoreState decodes state snapshot created by State.MarshalCBOR. Token
ownership is restored into a new MemLedger.
*/
func RestoreState(data []byte) (*State, error) {
	ss := &stateSnapshot{}
	if err := cbor.UnmarshalTaggedValue(types.StateSnapshotTag, data, ss); err != nil {
		return nil, fmt.Errorf("decoding state snapshot: %w", err)
	}
	if err := types.EnsureVersion(ss, ss.Version, 1); err != nil {
		return nil, err
	}
	if ss.TotalSupply != uint64(len(ss.Owners)) {
		return nil, fmt.Errorf("total supply %d doesn't match number of tokens %d", ss.TotalSupply, len(ss.Owners))
	}

	ledger, err := restoreMemLedger(ss.Owners)
	if err != nil {
		return nil, fmt.Errorf("restoring ledger: %w", err)
	}
	s := NewState(ledger)
	s.totalSupply = ss.TotalSupply
	for _, addr := range ss.SetMinted {
		s.setMinted[addr] = struct{}{}
	}
	for _, fp := range ss.UsedSignatures {
		s.usedSignatures[fp] = struct{}{}
	}
	if ss.Proceeds != nil {
		proceeds, overflow := uint256.FromBig(ss.Proceeds)
		if overflow || ss.Proceeds.Sign() < 0 {
			return nil, fmt.Errorf("invalid proceeds value %s", ss.Proceeds)
		}
		s.proceeds = proceeds
	}
	return s, nil
}
