package types

import (
	"crypto"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mytoken-org/erc721-mint/cbor"
)

const (
	// CallStatusFailed is the status code of a call if execution was reverted.
	CallStatusFailed CallStatus = 0
	// CallStatusSuccessful is the status code of a call if execution succeeded.
	CallStatusSuccessful CallStatus = 1
)

type (
	CallStatus uint64

	// CallRecord is a call order with the execution receipt added to it.
	CallRecord struct {
		_         struct{} `cbor:",toarray"`
		Version   Version
		CallOrder *CallOrder
		Receipt   *Receipt
	}

	Receipt struct {
		_            struct{} `cbor:",toarray"`
		Status       CallStatus
		RevertReason string      // human readable reason of the failure, empty on success
		Logs         []*LogEntry // events emitted by the call, empty on failure
		errDetail    error
	}

	LogEntry struct {
		_       struct{} `cbor:",toarray"`
		Address common.Address
		Topics  []common.Hash
		Data    []byte
	}
)

func (t *CallRecord) GetVersion() Version {
	if t == nil || t.Version == 0 {
		return 1
	}
	return t.Version
}

func (t *CallRecord) Hash(algorithm crypto.Hash) ([]byte, error) {
	return HashCBOR(t, algorithm)
}

func (t *CallRecord) Bytes() ([]byte, error) {
	return cbor.Marshal(t)
}

func (t *CallRecord) Status() CallStatus {
	if t == nil {
		return CallStatusFailed
	}
	return t.Receipt.GetStatus()
}

func (t *CallRecord) IsSuccessful() bool {
	return t.Status() == CallStatusSuccessful
}

func (t *CallRecord) IsValid() error {
	if t == nil {
		return ErrCallRecordIsNil
	}
	if t.GetVersion() != 1 {
		return ErrInvalidVersion(t)
	}
	if t.CallOrder == nil {
		return ErrCallOrderIsNil
	}
	if t.Receipt == nil {
		return ErrReceiptIsNil
	}
	return nil
}

func (t *CallRecord) MarshalCBOR() ([]byte, error) {
	type alias CallRecord
	if t.Version == 0 {
		t.Version = t.GetVersion()
	}
	return cbor.MarshalTaggedValue(CallRecordTag, (*alias)(t))
}

func (t *CallRecord) UnmarshalCBOR(data []byte) error {
	type alias CallRecord
	if err := cbor.UnmarshalTaggedValue(CallRecordTag, data, (*alias)(t)); err != nil {
		return err
	}
	return EnsureVersion(t, t.Version, 1)
}

func (r *Receipt) GetStatus() CallStatus {
	if r == nil {
		return CallStatusFailed
	}
	return r.Status
}

/*
SetError marks the call as failed: status is set to CallStatusFailed, logs
are dropped and the reason is recorded. The error itself is kept in memory
only (not serialized) and is available via ErrDetail.
*/
func (r *Receipt) SetError(reason string, e error) {
	if r == nil {
		return
	}
	r.Status = CallStatusFailed
	r.RevertReason = reason
	r.Logs = nil
	r.errDetail = e
}

func (r *Receipt) ErrDetail() error {
	if r == nil {
		return nil
	}
	return r.errDetail
}
