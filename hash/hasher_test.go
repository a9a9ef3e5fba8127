package hash

import (
	"crypto"
	"fmt"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func Test_Hash(t *testing.T) {
	t.Run("value is encoded to cbor", func(t *testing.T) {
		v := cborableData{ID: 292987, Data: []byte{2, 6, 7, 99, 12}, Fail: false}

		h := New(crypto.SHA256.New())
		h.Write(v)
		h1, err := h.Sum()
		require.NoError(t, err)
		require.NotEmpty(t, h1)

		// encode the value manually and hash using
		// WriteRaw - must get the same hash value
		buf, err := encoderMode.Marshal(v)
		require.NoError(t, err)
		h.Reset()
		h.WriteRaw(buf)
		h2, err := h.Sum()
		require.NoError(t, err)
		require.Equal(t, h1, h2)

		v.ID++
		h.Reset()
		h.Write(v)
		h2, err = h.Sum()
		require.NoError(t, err)
		require.NotEqual(t, h1, h2)
	})

	t.Run("encoding error", func(t *testing.T) {
		v := cborableData{Fail: true}

		h := New(crypto.SHA256.New())
		h.Write(1)
		h.Write(v) // should cause error
		h.Write(3)
		_, err := h.Sum()
		require.EqualError(t, err, `nope, can't do`)
	})
}

func Test_Keccak256(t *testing.T) {
	data := []byte("signature bytes")

	h := NewKeccak256()
	h.WriteRaw(data)
	sum, err := h.Hash256()
	require.NoError(t, err)
	require.Equal(t, ethcrypto.Keccak256Hash(data), sum)

	t.Run("size mismatch", func(t *testing.T) {
		h := New(crypto.SHA512.New())
		_, err := h.Hash256()
		require.EqualError(t, err, `hash size is 64 bytes, expected 32`)
	})

	t.Run("reset", func(t *testing.T) {
		h.Reset()
		h.Write(data)
		sum2, err := h.Hash256()
		require.NoError(t, err)
		require.NotEqual(t, sum, sum2, "Write must CBOR encode the value")
		enc, err := encoderMode.Marshal(data)
		require.NoError(t, err)
		require.Equal(t, ethcrypto.Keccak256Hash(enc), sum2)
	})
}

type cborableData struct {
	_    struct{} `cbor:",toarray"`
	ID   uint64
	Data []byte
	Fail bool
}

func (cd *cborableData) MarshalCBOR() ([]byte, error) {
	if cd.Fail {
		return nil, fmt.Errorf("nope, can't do")
	}

	type alias cborableData
	return encoderMode.Marshal((*alias)(cd))
}
