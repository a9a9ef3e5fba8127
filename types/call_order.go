package types

import (
	"crypto"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mytoken-org/erc721-mint/cbor"
)

var (
	ErrCallOrderIsNil  = errors.New("call order is nil")
	ErrCallRecordIsNil = errors.New("call record is nil")
	ErrReceiptIsNil    = errors.New("receipt is nil")
)

type (
	// Method identifies the controller entry point a CallOrder is addressed to.
	Method uint16

	CallOrder struct {
		_          struct{} `cbor:",toarray"`
		Version    Version
		Caller     common.Address // the account the call is made from (msg.sender)
		Method     Method
		Attributes cbor.RawCBOR // method specific attributes
		Value      *big.Int     // native currency attached to the call, in wei; nil means zero
		AuthProof  cbor.RawCBOR // method specific signatures/authorisation proofs
	}
)

func (t *CallOrder) GetVersion() Version {
	if t == nil || t.Version == 0 {
		return 1
	}
	return t.Version
}

func (t *CallOrder) IsValid() error {
	if t == nil {
		return ErrCallOrderIsNil
	}
	if t.GetVersion() != 1 {
		return ErrInvalidVersion(t)
	}
	if t.Value != nil && t.Value.Sign() < 0 {
		return fmt.Errorf("negative call value %s", t.Value)
	}
	return nil
}

/*
SetAttributes serializes "attr" and assigns the result to the Attributes field.
The "attr" is expected to be one of the method attribute structs but there is
no validation!
The CallOrder.UnmarshalAttributes can be used to decode the attributes.
*/
func (t *CallOrder) SetAttributes(attr any) error {
	if t == nil {
		return ErrCallOrderIsNil
	}
	attrCBOR, err := cbor.Marshal(attr)
	if err != nil {
		return fmt.Errorf("marshaling %T as call attributes: %w", attr, err)
	}
	t.Attributes = attrCBOR
	return nil
}

func (t *CallOrder) UnmarshalAttributes(v any) error {
	if t == nil {
		return ErrCallOrderIsNil
	}
	return cbor.Unmarshal(t.Attributes, v)
}

// SetAuthProof converts provided authProof struct to CBOR and sets the AuthProof field.
func (t *CallOrder) SetAuthProof(authProof any) error {
	if t == nil {
		return ErrCallOrderIsNil
	}
	authProofCBOR, err := cbor.Marshal(authProof)
	if err != nil {
		return fmt.Errorf("marshaling auth proof: %w", err)
	}
	t.AuthProof = authProofCBOR
	return nil
}

func (t *CallOrder) UnmarshalAuthProof(v any) error {
	if t == nil {
		return ErrCallOrderIsNil
	}
	return cbor.Unmarshal(t.AuthProof, v)
}

func (t *CallOrder) Hash(algorithm crypto.Hash) ([]byte, error) {
	return HashCBOR(t, algorithm)
}

func (t *CallOrder) MarshalCBOR() ([]byte, error) {
	type alias CallOrder
	if t.Version == 0 {
		t.Version = t.GetVersion()
	}
	return cbor.MarshalTaggedValue(CallOrderTag, (*alias)(t))
}

func (t *CallOrder) UnmarshalCBOR(data []byte) error {
	type alias CallOrder
	if err := cbor.UnmarshalTaggedValue(CallOrderTag, data, (*alias)(t)); err != nil {
		return err
	}
	return EnsureVersion(t, t.Version, 1)
}
