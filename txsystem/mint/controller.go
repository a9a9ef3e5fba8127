package mint

import (
	"crypto"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/mytoken-org/erc721-mint/predicates/templates"
	"github.com/mytoken-org/erc721-mint/types"
	"github.com/mytoken-org/erc721-mint/util"
)

/*
Controller is the minting controller of a fixed size NFT collection. It
supports three ways of minting:
  - signed mint: free mint authorized by a single use signature;
  - set mint: one time mint of a fixed size set per address;
  - public mint: paid mint of a bounded quantity.

Every call is atomic, it either succeeds and commits all its changes or fails
and leaves the state untouched. Calls are serialized.
*/
type Controller struct {
	mu      sync.Mutex
	params  Params
	state   *State
	ledger  Ledger // only used while the controller is created
	address common.Address
	log     log.Logger
}

type Option func(*Controller)

// WithState makes the controller operate on the given state instead of a new empty one.
func WithState(s *State) Option {
	return func(c *Controller) {
		c.state = s
	}
}

// WithLedger makes the controller mint into the given ledger, starting from
// empty state. Can't be combined with WithState.
func WithLedger(l Ledger) Option {
	return func(c *Controller) {
		c.ledger = l
	}
}

// WithAddress sets the address of the collection, used as the emitter of the events.
func WithAddress(addr common.Address) Option {
	return func(c *Controller) {
		c.address = addr
	}
}

func WithLogger(l log.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

func NewController(params Params, opts ...Option) (*Controller, error) {
	if err := params.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	c := &Controller{params: params.Clone()}
	for _, opt := range opts {
		opt(c)
	}
	switch {
	case c.state != nil && c.ledger != nil:
		return nil, errors.New("options WithState and WithLedger are mutually exclusive")
	case c.ledger != nil:
		c.state = NewState(c.ledger)
	case c.state == nil:
		c.state = NewState(NewMemLedger())
	}
	c.ledger = nil
	if c.state.totalSupply > params.MaxSupply {
		return nil, fmt.Errorf("total supply %d of the state exceeds max supply %d", c.state.totalSupply, params.MaxSupply)
	}
	if c.log == nil {
		c.log = log.Root()
	}
	c.log = c.log.With("collection", c.address)
	return c, nil
}

/*
SignedMint mints "quantity" tokens to the caller when "signature" is a valid
signature of "msgHash" by a signer accepted by the auth predicate of the
collection. Each signature can be used only once.
*/
func (c *Controller) SignedMint(caller common.Address, quantity uint64, msgHash common.Hash, signature []byte) ([]uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity == 0 {
		return nil, c.reject(MethodSignedMint, caller, ErrZeroQuantity)
	}
	if quantity > c.params.MaxPerSignedMint {
		return nil, c.reject(MethodSignedMint, caller, ErrExceedsTxLimit)
	}
	signer, err := RecoverSigner(msgHash, signature)
	if err != nil {
		return nil, c.reject(MethodSignedMint, caller, fmt.Errorf("%w %w", ErrInvalidSignature, err))
	}
	if err := templates.Evaluate(c.params.AuthPredicate, caller, signer); err != nil {
		return nil, c.reject(MethodSignedMint, caller, fmt.Errorf("%w %w", ErrInvalidSignature, err))
	}
	fingerprint, err := SignatureFingerprint(signature)
	if err != nil {
		return nil, c.reject(MethodSignedMint, caller, fmt.Errorf("%w %w", ErrInvalidSignature, err))
	}
	if c.state.IsSignatureUsed(fingerprint) {
		return nil, c.reject(MethodSignedMint, caller, ErrSignatureAlreadyUsed)
	}
	if err := c.checkSupply(quantity); err != nil {
		return nil, c.reject(MethodSignedMint, caller, err)
	}

	ids, err := c.apply(caller, quantity, nil, func(s *State) {
		s.markSignatureUsed(fingerprint)
	})
	if err != nil {
		return nil, c.reject(MethodSignedMint, caller, err)
	}
	c.log.Debug("signed mint", "caller", caller, "signer", signer, "quantity", quantity, "supply", c.state.totalSupply)
	return ids, nil
}

/*
MintSet mints a set of tokens to the caller. Every address can mint only one
set and the payment must equal the set price.
*/
func (c *Controller) MintSet(caller common.Address, payment *uint256.Int) ([]uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.HasMintedSet(caller) {
		return nil, c.reject(MethodMintSet, caller, ErrAlreadyMintedSet)
	}
	if !paymentEquals(payment, c.params.SetPrice) {
		return nil, c.reject(MethodMintSet, caller, fmt.Errorf("%w expected %s wei, got %s", ErrInsufficientPayment, c.params.SetPrice.Dec(), amountString(payment)))
	}
	if err := c.checkSupply(c.params.SetSize); err != nil {
		return nil, c.reject(MethodMintSet, caller, err)
	}

	ids, err := c.apply(caller, c.params.SetSize, payment, func(s *State) {
		s.markSetMinted(caller)
	})
	if err != nil {
		return nil, c.reject(MethodMintSet, caller, err)
	}
	c.log.Debug("set mint", "caller", caller, "quantity", c.params.SetSize, "supply", c.state.totalSupply)
	return ids, nil
}

/*
Mint mints "quantity" tokens to the caller. Quantity is limited by the
per transaction limit and the payment must equal quantity × unit price.
*/
func (c *Controller) Mint(caller common.Address, quantity uint64, payment *uint256.Int) ([]uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity > c.params.MaxPerTx {
		return nil, c.reject(MethodMint, caller, ErrExceedsTxLimit)
	}
	if quantity == 0 {
		return nil, c.reject(MethodMint, caller, ErrZeroQuantity)
	}
	if err := c.checkSupply(quantity); err != nil {
		return nil, c.reject(MethodMint, caller, err)
	}
	price, err := c.params.MintPrice(quantity)
	if err != nil {
		return nil, c.reject(MethodMint, caller, err)
	}
	if !paymentEquals(payment, price) {
		return nil, c.reject(MethodMint, caller, fmt.Errorf("%w expected %s wei, got %s", ErrInsufficientPayment, price.Dec(), amountString(payment)))
	}

	ids, err := c.apply(caller, quantity, payment, nil)
	if err != nil {
		return nil, c.reject(MethodMint, caller, err)
	}
	c.log.Debug("mint", "caller", caller, "quantity", quantity, "supply", c.state.totalSupply)
	return ids, nil
}

func (c *Controller) checkSupply(quantity uint64) error {
	supply, ok := util.SafeAdd(c.state.totalSupply, quantity)
	if !ok || supply > c.params.MaxSupply {
		return ErrExceedsMaxSupply
	}
	return nil
}

/*
apply executes the state changes of a validated call: the method specific
changes done by "update", supply and proceeds accounting and minting of the
tokens. Either all of them are committed or, on error, all are reverted.
*/
func (c *Controller) apply(to common.Address, quantity uint64, payment *uint256.Int, update func(*State)) (_ []uint64, err error) {
	snapshot := c.state.snapshot()
	defer func() {
		if err != nil {
			c.state.revertToSnapshot(snapshot)
		} else {
			c.state.commit()
		}
	}()

	if update != nil {
		update(c.state)
	}
	if err := c.state.addSupply(quantity); err != nil {
		return nil, err
	}
	if payment != nil {
		if err := c.state.addProceeds(payment); err != nil {
			return nil, err
		}
	}
	ids, err := c.state.ledger.Mint(to, quantity)
	if err != nil {
		return nil, fmt.Errorf("minting tokens: %w", err)
	}
	return ids, nil
}

// reject logs the error of a failed call. Reverts are expected outcomes,
// other errors mean the call failed for reasons the caller can't fix.
func (c *Controller) reject(method types.Method, caller common.Address, err error) error {
	if IsRevert(err) {
		c.log.Debug("call rejected", "method", MethodName(method), "caller", caller, "reason", RevertReason(err), "err", err)
	} else {
		c.log.Warn("call failed", "method", MethodName(method), "caller", caller, "err", err)
	}
	return err
}

func (c *Controller) BalanceOf(owner common.Address) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.ledger.BalanceOf(owner)
}

func (c *Controller) OwnerOf(tokenID uint64) (common.Address, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.ledger.OwnerOf(tokenID)
}

func (c *Controller) TotalSupply() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.totalSupply
}

func (c *Controller) MaxSupply() uint64 {
	return c.params.MaxSupply
}

// RemainingSupply returns the number of tokens which can still be minted.
func (c *Controller) RemainingSupply() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	remaining, ok := util.SafeSub(c.params.MaxSupply, c.state.totalSupply)
	if !ok {
		return 0
	}
	return remaining
}

func (c *Controller) HasMintedSet(account common.Address) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.HasMintedSet(account)
}

// SignatureUsed returns true when the signature has already been consumed by a signed mint.
func (c *Controller) SignatureUsed(signature []byte) (bool, error) {
	fingerprint, err := SignatureFingerprint(signature)
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.IsSignatureUsed(fingerprint), nil
}

// Proceeds returns the total payment (in wei) received by the paid mints.
func (c *Controller) Proceeds() *uint256.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Proceeds()
}

// Params returns copy of the collection parameters.
func (c *Controller) Params() Params {
	return c.params.Clone()
}

// StateHash returns hash of the current state snapshot.
func (c *Controller) StateHash(algorithm crypto.Hash) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Hash(algorithm)
}

// Snapshot returns CBOR encoded snapshot of the state, see RestoreState.
func (c *Controller) Snapshot() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.MarshalCBOR()
}

func paymentEquals(payment, price *uint256.Int) bool {
	if payment == nil {
		return price.IsZero()
	}
	return payment.Eq(price)
}

func amountString(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

// IsRevert returns true when err is one of the call rejection errors.
func IsRevert(err error) bool {
	var r *Revert
	return errors.As(err, &r)
}
