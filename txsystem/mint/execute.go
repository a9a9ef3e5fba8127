package mint

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/mytoken-org/erc721-mint/types"
)

/*
Execute decodes the call order, runs the entry point it is addressed to and
returns the call record. Rejected calls are reported by the receipt of the
record (status failed, revert reason), not as an error.
*/
func (c *Controller) Execute(order *types.CallOrder) *types.CallRecord {
	rec := &types.CallRecord{
		Version:   1,
		CallOrder: order,
		Receipt:   &types.Receipt{Status: types.CallStatusSuccessful},
	}
	ids, err := c.execute(order)
	if err != nil {
		rec.Receipt.SetError(RevertReason(err), err)
		return rec
	}
	rec.Receipt.Logs = transferLogs(c.address, order.Caller, ids)
	return rec
}

func (c *Controller) execute(order *types.CallOrder) ([]uint64, error) {
	if err := order.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid call order: %w", err)
	}
	value, overflow := new(uint256.Int), false
	if order.Value != nil {
		if value, overflow = uint256.FromBig(order.Value); overflow {
			return nil, fmt.Errorf("call value %s overflows uint256", order.Value)
		}
	}

	switch order.Method {
	case MethodSignedMint:
		attr := &SignedMintAttributes{}
		if err := order.UnmarshalAttributes(attr); err != nil {
			return nil, fmt.Errorf("decoding signedMint attributes: %w", err)
		}
		proof := &SignedMintAuthProof{}
		if err := order.UnmarshalAuthProof(proof); err != nil {
			return nil, fmt.Errorf("decoding signedMint auth proof: %w", err)
		}
		return c.SignedMint(order.Caller, attr.Quantity, attr.MessageHash, proof.Signature)
	case MethodMintSet:
		return c.MintSet(order.Caller, value)
	case MethodMint:
		attr := &MintAttributes{}
		if err := order.UnmarshalAttributes(attr); err != nil {
			return nil, fmt.Errorf("decoding mint attributes: %w", err)
		}
		return c.Mint(order.Caller, attr.Quantity, value)
	default:
		return nil, fmt.Errorf("%w %d", ErrUnknownMethod, order.Method)
	}
}

// NewSignedMintOrder builds call order of a signed mint.
func NewSignedMintOrder(caller common.Address, quantity uint64, msgHash common.Hash, signature []byte) (*types.CallOrder, error) {
	order := &types.CallOrder{Version: 1, Caller: caller, Method: MethodSignedMint}
	if err := order.SetAttributes(&SignedMintAttributes{Quantity: quantity, MessageHash: msgHash}); err != nil {
		return nil, err
	}
	if err := order.SetAuthProof(&SignedMintAuthProof{Signature: signature}); err != nil {
		return nil, err
	}
	return order, nil
}

// NewMintSetOrder builds call order of a set mint.
func NewMintSetOrder(caller common.Address, payment *uint256.Int) (*types.CallOrder, error) {
	order := &types.CallOrder{Version: 1, Caller: caller, Method: MethodMintSet, Value: toBig(payment)}
	if err := order.SetAttributes(&MintSetAttributes{}); err != nil {
		return nil, err
	}
	return order, nil
}

// NewMintOrder builds call order of a public mint.
func NewMintOrder(caller common.Address, quantity uint64, payment *uint256.Int) (*types.CallOrder, error) {
	order := &types.CallOrder{Version: 1, Caller: caller, Method: MethodMint, Value: toBig(payment)}
	if err := order.SetAttributes(&MintAttributes{Quantity: quantity}); err != nil {
		return nil, err
	}
	return order, nil
}

func toBig(v *uint256.Int) *big.Int {
	if v == nil {
		return nil
	}
	return v.ToBig()
}
