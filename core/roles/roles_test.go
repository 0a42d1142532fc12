package roles

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	a := common.HexToAddress("0x0000000000000000000000000000000000000001")
	b := common.HexToAddress("0x0000000000000000000000000000000000000002")

	r := NewRegistry()
	require.NoError(t, r.Grant(Operator, b))
	require.NoError(t, r.Grant(Operator, a))
	assert.True(t, r.Has(Operator, a))
	assert.False(t, r.Has(Owner, a))
	assert.Equal(t, []common.Address{a, b}, r.Holders(Operator))

	r.Revoke(Operator, a)
	assert.False(t, r.Has(Operator, a))
	assert.True(t, r.HasAny(b, Owner, Operator))

	require.NoError(t, r.Set(Operator, a))
	assert.False(t, r.Has(Operator, b))
	assert.Equal(t, a, r.Holder(Operator))
	assert.Equal(t, common.Address{}, r.Holder(Casher))

	assert.ErrorIs(t, r.Grant(Casher, common.Address{}), errs.ZeroAddress)
	assert.ErrorIs(t, r.Grant(Role(42), a), errs.InvalidInput)
}
