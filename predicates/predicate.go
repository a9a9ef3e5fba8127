package predicates

import (
	"fmt"

	"github.com/mytoken-org/erc721-mint/cbor"
)

/*
Predicate decides whether a recovered signer is allowed to authorize a call.
Tag selects the predicate family (only templates are supported), Code
identifies the template and Params carries the template arguments.
*/
type Predicate struct {
	_      struct{} `cbor:",toarray"`
	Tag    uint64
	Code   []byte
	Params []byte
}

func (p Predicate) AsBytes() ([]byte, error) {
	buf, err := cbor.Marshal(p)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Decode parses CBOR encoded predicate.
func Decode(pb []byte) (*Predicate, error) {
	predicate := &Predicate{}
	if err := cbor.Unmarshal(pb, predicate); err != nil {
		return nil, fmt.Errorf("decoding predicate: %w", err)
	}
	return predicate, nil
}
