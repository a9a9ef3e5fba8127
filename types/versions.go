package types

import (
	"fmt"

	"github.com/mytoken-org/erc721-mint/cbor"
)

type Version uint64

type Versioned interface {
	GetVersion() Version
}

const (
	_ = iota + cbor.Tag(1000)
	CallOrderTag
	CallRecordTag
	StateSnapshotTag
)

// ErrInvalidVersion returns error about unsupported version of the "v".
func ErrInvalidVersion(v Versioned) error {
	return fmt.Errorf("invalid version (type %T): %d", v, v.GetVersion())
}

// EnsureVersion checks that the decoded version is the one this code knows how to handle.
func EnsureVersion(data Versioned, actual, expected Version) error {
	if actual != expected {
		return fmt.Errorf("invalid version (type %T), expected %d, got %d", data, expected, actual)
	}
	return nil
}
