package mint

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/mytoken-org/erc721-mint/cbor"
	"github.com/mytoken-org/erc721-mint/testutils/keys"
	"github.com/mytoken-org/erc721-mint/types"
)

func TestExecute(t *testing.T) {
	contract := common.HexToAddress("0x00000000000000000000000000000000c0ffee00")
	user := keys.KeyFromSeed(t, "alice")
	userAddr := keys.Address(user)

	t.Run("signed mint", func(t *testing.T) {
		c := newTestController(t, DefaultParams(), WithAddress(contract))
		order, err := NewSignedMintOrder(userAddr, 2, HashMessage([]byte("1")), keys.SignMessage(t, user, []byte("1")))
		require.NoError(t, err)

		rec := c.Execute(order)
		require.True(t, rec.IsSuccessful(), rec.Receipt.ErrDetail())
		require.Empty(t, rec.Receipt.RevertReason)
		require.Len(t, rec.Receipt.Logs, 2)
		for i, l := range rec.Receipt.Logs {
			require.Equal(t, contract, l.Address)
			require.Equal(t, []common.Hash{
				TransferEventTopic,
				{},
				common.BytesToHash(userAddr.Bytes()),
				common.BigToHash(big.NewInt(int64(i + 1))),
			}, l.Topics)
			require.Empty(t, l.Data)
		}

		// the same order again is a replay
		rec = c.Execute(order)
		require.False(t, rec.IsSuccessful())
		require.Equal(t, "Signature already used.", rec.Receipt.RevertReason)
		require.ErrorIs(t, rec.Receipt.ErrDetail(), ErrSignatureAlreadyUsed)
		require.Empty(t, rec.Receipt.Logs)
	})

	t.Run("set mint", func(t *testing.T) {
		c := newTestController(t, DefaultParams())
		order, err := NewMintSetOrder(userAddr, MustParseEther("0.05"))
		require.NoError(t, err)
		rec := c.Execute(order)
		require.True(t, rec.IsSuccessful(), rec.Receipt.ErrDetail())
		require.Len(t, rec.Receipt.Logs, 6)
		require.EqualValues(t, 6, c.BalanceOf(userAddr))

		rec = c.Execute(order)
		require.Equal(t, "Address has already minted a set.", rec.Receipt.RevertReason)
	})

	t.Run("public mint", func(t *testing.T) {
		c := newTestController(t, DefaultParams())
		order, err := NewMintOrder(userAddr, 3, mintPrice(3))
		require.NoError(t, err)
		rec := c.Execute(order)
		require.True(t, rec.IsSuccessful(), rec.Receipt.ErrDetail())
		require.Len(t, rec.Receipt.Logs, 3)
		require.Equal(t, mintPrice(3), c.Proceeds())

		order, err = NewMintOrder(userAddr, 3, nil)
		require.NoError(t, err)
		rec = c.Execute(order)
		require.Equal(t, "Incorrect payment value.", rec.Receipt.RevertReason)
		require.ErrorContains(t, rec.Receipt.ErrDetail(), "expected 30000000000000000 wei, got 0")
	})

	t.Run("record survives encoding", func(t *testing.T) {
		c := newTestController(t, DefaultParams())
		order, err := NewMintOrder(userAddr, 1, mintPrice(1))
		require.NoError(t, err)
		rec := c.Execute(order)

		buf, err := rec.Bytes()
		require.NoError(t, err)
		decoded := &types.CallRecord{}
		require.NoError(t, cbor.Unmarshal(buf, decoded))
		require.True(t, decoded.IsSuccessful())
		require.Equal(t, rec.Receipt.Logs, decoded.Receipt.Logs)
		require.Equal(t, MethodMint, decoded.CallOrder.Method)
	})

	t.Run("invalid orders", func(t *testing.T) {
		c := newTestController(t, DefaultParams())

		rec := c.Execute(nil)
		require.False(t, rec.IsSuccessful())
		require.ErrorIs(t, rec.Receipt.ErrDetail(), types.ErrCallOrderIsNil)

		rec = c.Execute(&types.CallOrder{Version: 1, Caller: userAddr, Method: 42})
		require.Equal(t, "Unknown method.", rec.Receipt.RevertReason)
		require.EqualError(t, rec.Receipt.ErrDetail(), `Unknown method. 42`)

		rec = c.Execute(&types.CallOrder{Version: 1, Caller: userAddr, Method: MethodMintSet, Value: big.NewInt(-1)})
		require.EqualError(t, rec.Receipt.ErrDetail(), `invalid call order: negative call value -1`)
		require.Equal(t, rec.Receipt.ErrDetail().Error(), rec.Receipt.RevertReason)

		rec = c.Execute(&types.CallOrder{Version: 1, Caller: userAddr, Method: MethodMintSet, Value: new(big.Int).Lsh(big.NewInt(1), 256)})
		require.ErrorContains(t, rec.Receipt.ErrDetail(), "overflows uint256")

		rec = c.Execute(&types.CallOrder{Version: 1, Caller: userAddr, Method: MethodMint, Attributes: cbor.RawCBOR{0x01}})
		require.ErrorContains(t, rec.Receipt.ErrDetail(), "decoding mint attributes")

		order, err := NewSignedMintOrder(userAddr, 1, HashMessage([]byte("1")), keys.SignMessage(t, user, []byte("1")))
		require.NoError(t, err)
		order.AuthProof = cbor.RawCBOR{0x01}
		rec = c.Execute(order)
		require.ErrorContains(t, rec.Receipt.ErrDetail(), "decoding signedMint auth proof")

		require.Zero(t, c.TotalSupply())
		require.True(t, c.Proceeds().IsZero())
	})
}

func TestNewMintSetOrder_nilPayment(t *testing.T) {
	order, err := NewMintSetOrder(common.Address{1}, nil)
	require.NoError(t, err)
	require.Nil(t, order.Value)

	order, err = NewMintOrder(common.Address{1}, 1, uint256.NewInt(7))
	require.NoError(t, err)
	require.EqualValues(t, 7, order.Value.Int64())
}
