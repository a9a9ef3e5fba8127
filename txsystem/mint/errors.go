package mint

import (
	"errors"
)

/*
Revert is the error type of a rejected call. Reason is the fixed, human
readable revert reason reported to the caller.
*/
type Revert struct {
	Reason string
}

func (r *Revert) Error() string {
	return r.Reason
}

var (
	ErrInvalidSignature     = &Revert{Reason: "Invalid signature."}
	ErrSignatureAlreadyUsed = &Revert{Reason: "Signature already used."}
	ErrAlreadyMintedSet     = &Revert{Reason: "Address has already minted a set."}
	ErrExceedsTxLimit       = &Revert{Reason: "Cannot mint that many at once."}
	ErrExceedsMaxSupply     = &Revert{Reason: "Exceeds maximum supply."}
	ErrInsufficientPayment  = &Revert{Reason: "Incorrect payment value."}
	ErrZeroQuantity         = &Revert{Reason: "Quantity must be positive."}
	ErrUnknownMethod        = &Revert{Reason: "Unknown method."}
)

/*
RevertReason returns the revert reason of the err. Errors which do not
wrap a *Revert are reported with their error message.
*/
func RevertReason(err error) string {
	if err == nil {
		return ""
	}
	var r *Revert
	if errors.As(err, &r) {
		return r.Reason
	}
	return err.Error()
}
