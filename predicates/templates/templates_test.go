package templates

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/mytoken-org/erc721-mint/cbor"
	"github.com/mytoken-org/erc721-mint/predicates"
)

var (
	caller = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	owner  = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
)

func Test_templateBytes(t *testing.T) {
	t.Parallel()

	/*
		Make sure that CBOR encoder hasn't changed how it encodes our "hardcoded templates"
		or that the constants haven't been changed.
		If these tests fail it's a breaking change!
	*/

	t.Run("always false", func(t *testing.T) {
		buf, err := cbor.Marshal(predicates.Predicate{Tag: TemplateStartByte, Code: []byte{AlwaysFalseID}})
		require.NoError(t, err)
		require.True(t, bytes.Equal(buf, alwaysFalseBytes), `CBOR representation of "always false" predicate template has changed (expected %X, got %X)`, alwaysFalseBytes, buf)
		require.True(t, bytes.Equal(alwaysFalseBytes, AlwaysFalseBytes()))
	})

	t.Run("caller signed", func(t *testing.T) {
		buf, err := cbor.Marshal(predicates.Predicate{Tag: TemplateStartByte, Code: []byte{CallerSignedID}})
		require.NoError(t, err)
		require.True(t, bytes.Equal(buf, callerSignedBytes), `CBOR representation of "caller signed" predicate template has changed (expected %X, got %X)`, callerSignedBytes, buf)
		require.True(t, bytes.Equal(callerSignedBytes, CallerSignedBytes()))
	})

	t.Run("trusted signer", func(t *testing.T) {
		fromHex, err := hex.DecodeString("83004102" + "54" + "f39fd6e51aad88f6f4ce6ab8827279cfffb92266")
		require.NoError(t, err)
		require.Equal(t, fromHex, NewTrustedSignerBytes(owner))
	})
}

func Test_ExtractTrustedSigner(t *testing.T) {
	signer, err := ExtractTrustedSigner(NewTrustedSignerBytes(owner))
	require.NoError(t, err)
	require.Equal(t, owner, signer)

	_, err = ExtractTrustedSigner(CallerSignedBytes())
	require.EqualError(t, err, `not a template 0x2 predicate (id 01)`)

	_, err = ExtractTrustedSigner([]byte{0x83, 0x01, 0x41, 0x02, 0xf6})
	require.EqualError(t, err, `not a predicate template (tag 1)`)

	_, err = ExtractTrustedSigner([]byte{0xff})
	require.Error(t, err)
}

func Test_Evaluate(t *testing.T) {
	t.Run("always false", func(t *testing.T) {
		require.ErrorIs(t, Evaluate(AlwaysFalseBytes(), caller, caller), ErrUnauthorizedSigner)
	})

	t.Run("caller signed", func(t *testing.T) {
		require.NoError(t, Evaluate(CallerSignedBytes(), caller, caller))
		err := Evaluate(CallerSignedBytes(), caller, owner)
		require.ErrorIs(t, err, ErrUnauthorizedSigner)
		require.ErrorContains(t, err, "is not the caller")
	})

	t.Run("trusted signer", func(t *testing.T) {
		pb := NewTrustedSignerBytes(owner)
		require.NoError(t, Evaluate(pb, caller, owner))
		require.ErrorIs(t, Evaluate(pb, caller, caller), ErrUnauthorizedSigner)
		require.ErrorIs(t, Evaluate(pb, owner, caller), ErrUnauthorizedSigner)
	})

	t.Run("invalid predicates", func(t *testing.T) {
		pb, err := predicates.Predicate{Tag: 7, Code: []byte{CallerSignedID}}.AsBytes()
		require.NoError(t, err)
		require.EqualError(t, Evaluate(pb, caller, caller), `not a predicate template (tag 7)`)

		pb, err = predicates.Predicate{Code: []byte{1, 2}}.AsBytes()
		require.NoError(t, err)
		require.EqualError(t, Evaluate(pb, caller, caller), `invalid template code length 2`)

		pb, err = predicates.Predicate{Code: []byte{9}}.AsBytes()
		require.NoError(t, err)
		require.EqualError(t, Evaluate(pb, caller, caller), `unknown predicate template 0x9`)

		pb, err = predicates.Predicate{Code: []byte{TrustedSignerID}, Params: []byte{1}}.AsBytes()
		require.NoError(t, err)
		require.EqualError(t, Evaluate(pb, caller, caller), `invalid trusted signer address length 1`)

		require.ErrorContains(t, Evaluate(nil, caller, caller), "decoding predicate")
	})
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(AlwaysFalseBytes()))
	require.NoError(t, Validate(CallerSignedBytes()))
	require.NoError(t, Validate(NewTrustedSignerBytes(common.Address{1})))

	pb, err := predicates.Predicate{Tag: 7, Code: []byte{CallerSignedID}}.AsBytes()
	require.NoError(t, err)
	require.EqualError(t, Validate(pb), `not a predicate template (tag 7)`)

	pb, err = predicates.Predicate{Code: []byte{9}}.AsBytes()
	require.NoError(t, err)
	require.EqualError(t, Validate(pb), `unknown predicate template 0x9`)

	pb, err = predicates.Predicate{Code: []byte{TrustedSignerID}, Params: []byte{1, 2, 3}}.AsBytes()
	require.NoError(t, err)
	require.EqualError(t, Validate(pb), `invalid trusted signer address length 3`)

	require.ErrorContains(t, Validate([]byte{0xff, 0x01}), "decoding predicate")
}

func TestTemplateBytesAreCopies(t *testing.T) {
	pb := CallerSignedBytes()
	pb[3] = AlwaysFalseID
	require.Equal(t, []byte{0x83, 0x00, 0x41, CallerSignedID, 0xf6}, CallerSignedBytes())

	pb = AlwaysFalseBytes()
	pb[3] = CallerSignedID
	require.Equal(t, []byte{0x83, 0x00, 0x41, AlwaysFalseID, 0xf6}, AlwaysFalseBytes())
}
