package templates

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mytoken-org/erc721-mint/predicates"
)

const (
	AlwaysFalseID byte = iota
	CallerSignedID
	TrustedSignerID

	TemplateStartByte = 0x00
)

var (
	alwaysFalseBytes  = []byte{0x83, 0x00, 0x41, 0x00, 0xf6}
	callerSignedBytes = []byte{0x83, 0x00, 0x41, 0x01, 0xf6}

	// ErrUnauthorizedSigner is returned by Evaluate when the signer does not
	// satisfy the predicate.
	ErrUnauthorizedSigner = errors.New("signer is not authorized")
)

// AlwaysFalseBytes returns predicate which rejects every signer.
func AlwaysFalseBytes() []byte {
	return slices.Clone(alwaysFalseBytes)
}

// CallerSignedBytes returns predicate which accepts signature of the caller itself.
func CallerSignedBytes() []byte {
	return slices.Clone(callerSignedBytes)
}

// NewTrustedSigner returns predicate which accepts only signatures of the "signer".
func NewTrustedSigner(signer common.Address) predicates.Predicate {
	return predicates.Predicate{Tag: TemplateStartByte, Code: []byte{TrustedSignerID}, Params: signer.Bytes()}
}

func NewTrustedSignerBytes(signer common.Address) []byte {
	pb, _ := NewTrustedSigner(signer).AsBytes()
	return pb
}

func ExtractTrustedSigner(pb []byte) (common.Address, error) {
	predicate, err := predicates.Decode(pb)
	if err != nil {
		return common.Address{}, err
	}
	if err := verifyTemplate(predicate, TrustedSignerID); err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(predicate.Params), nil
}

/*
Validate checks that "pb" is a well formed predicate of one of the known
templates, ie that Evaluate can only fail with ErrUnauthorizedSigner.
*/
func Validate(pb []byte) error {
	_, err := parseTemplate(pb)
	return err
}

/*
Evaluate checks whether signature created by "signer" authorizes the call made
by "caller" according to the predicate "pb". Returns ErrUnauthorizedSigner
(possibly wrapped) when the predicate is not satisfied, any other error means
the predicate itself is invalid.
*/
func Evaluate(pb []byte, caller, signer common.Address) error {
	predicate, err := parseTemplate(pb)
	if err != nil {
		return err
	}

	switch predicate.Code[0] {
	case AlwaysFalseID:
		return ErrUnauthorizedSigner
	case CallerSignedID:
		if signer != caller {
			return fmt.Errorf("%w: signer %s is not the caller %s", ErrUnauthorizedSigner, signer, caller)
		}
		return nil
	default:
		if trusted := common.BytesToAddress(predicate.Params); signer != trusted {
			return fmt.Errorf("%w: signer %s is not the trusted signer %s", ErrUnauthorizedSigner, signer, trusted)
		}
		return nil
	}
}

func parseTemplate(pb []byte) (*predicates.Predicate, error) {
	predicate, err := predicates.Decode(pb)
	if err != nil {
		return nil, err
	}
	if predicate.Tag != TemplateStartByte {
		return nil, fmt.Errorf("not a predicate template (tag %d)", predicate.Tag)
	}
	if len(predicate.Code) != 1 {
		return nil, fmt.Errorf("invalid template code length %d", len(predicate.Code))
	}

	switch predicate.Code[0] {
	case AlwaysFalseID, CallerSignedID:
		return predicate, nil
	case TrustedSignerID:
		if len(predicate.Params) != common.AddressLength {
			return nil, fmt.Errorf("invalid trusted signer address length %d", len(predicate.Params))
		}
		return predicate, nil
	default:
		return nil, fmt.Errorf("unknown predicate template %#x", predicate.Code[0])
	}
}

func verifyTemplate(predicate *predicates.Predicate, id byte) error {
	if predicate == nil {
		return errors.New("predicate is nil")
	}
	if predicate.Tag != TemplateStartByte {
		return fmt.Errorf("not a predicate template (tag %d)", predicate.Tag)
	}
	if len(predicate.Code) != 1 || predicate.Code[0] != id {
		return fmt.Errorf("not a template %#x predicate (id %X)", id, predicate.Code)
	}
	return nil
}
