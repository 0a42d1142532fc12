package ledger

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	token = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	alice = common.HexToAddress("0x0000000000000000000000000000000000000001")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000002")
)

func TestMemoryTransfer(t *testing.T) {
	l := NewMemory()
	require.NoError(t, l.Mint(token, alice, uint256.NewInt(100)))

	t.Run("success", func(t *testing.T) {
		require.NoError(t, l.Transfer(token, alice, bob, uint256.NewInt(40)))
		assert.Equal(t, uint64(60), l.BalanceOf(token, alice).Uint64())
		assert.Equal(t, uint64(40), l.BalanceOf(token, bob).Uint64())
	})

	t.Run("insufficient balance leaves state untouched", func(t *testing.T) {
		err := l.Transfer(token, bob, alice, uint256.NewInt(41))
		assert.ErrorIs(t, err, errs.InsufficientBalance)
		assert.Equal(t, uint64(60), l.BalanceOf(token, alice).Uint64())
		assert.Equal(t, uint64(40), l.BalanceOf(token, bob).Uint64())
	})

	t.Run("zero recipient", func(t *testing.T) {
		err := l.Transfer(token, alice, common.Address{}, uint256.NewInt(1))
		assert.ErrorIs(t, err, errs.ZeroAddress)
	})

	t.Run("balance is a copy", func(t *testing.T) {
		b := l.BalanceOf(token, alice)
		b.SetUint64(0)
		assert.Equal(t, uint64(60), l.BalanceOf(token, alice).Uint64())
	})
}

func TestMemoryMintOverflow(t *testing.T) {
	l := NewMemory()
	max := new(uint256.Int).SetAllOne()
	require.NoError(t, l.Mint(token, alice, max))
	err := l.Mint(token, alice, uint256.NewInt(1))
	assert.ErrorIs(t, err, errs.OverflowUint256)
	assert.True(t, l.BalanceOf(token, alice).Eq(max))
}
