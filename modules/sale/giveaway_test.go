package sale

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiveawayWhitelisted(t *testing.T) {
	f := newFixture(t, "0")
	s := f.sale
	tree := whitelistTree(t, []common.Address{buyer, buyer2}, []uint64{5000, 5000})
	require.NoError(t, s.SetWhitelist(owner, tree.Root()))

	assert.ErrorIs(t, s.Purchase(buyer, u(100), startTime), errs.NotAGiveaway)

	_, err := s.WithdrawGiveaway(buyer, proofOf(t, tree, buyer, 5000), u(5000), endTime-1)
	assert.ErrorIs(t, err, errs.TooEarly)

	for _, w := range []common.Address{buyer, buyer2} {
		_, err := s.Withdraw(w, endTime)
		assert.ErrorIs(t, err, errs.UseGiveawayPath)
	}
	for _, w := range []common.Address{buyer, buyer2} {
		amount, err := s.WithdrawGiveaway(w, proofOf(t, tree, w, 5000), u(5000), endTime)
		require.NoError(t, err)
		assert.Equal(t, uint64(5000), amount.Uint64())
		assert.Equal(t, uint64(5000), f.balance(saleToken, w))
	}

	_, err = s.WithdrawGiveaway(buyer, proofOf(t, tree, buyer, 5000), u(5000), endTime)
	assert.ErrorIs(t, err, errs.AlreadyWithdrawn)

	_, err = s.WithdrawGiveaway(stranger, proofOf(t, tree, buyer, 5000), u(5000), endTime)
	assert.ErrorIs(t, err, errs.NotWhitelisted)

	assert.Zero(t, s.PurchaserCount())
	assert.Equal(t, uint64(2), s.WithdrawerCount())
	assert.True(t, s.Participant(buyer).HasWithdrawnGiveaway)
}

func TestGiveawayFirstComeFirstServe(t *testing.T) {
	f := newFixture(t, "0")
	s := f.sale

	// without a public allocation nobody is entitled, whatever they declare
	_, err := s.WithdrawGiveaway(buyer, nil, u(fundAmount), endTime)
	assert.ErrorIs(t, err, errs.NothingToWithdraw)
	assert.Zero(t, f.balance(saleToken, buyer))

	require.NoError(t, s.SetPublicAllocation(owner, u(fundAmount-100)))

	amount, err := s.WithdrawGiveaway(buyer, nil, u(fundAmount), endTime)
	require.NoError(t, err)
	assert.Equal(t, uint64(fundAmount-100), amount.Uint64())

	// the second claimer only gets what is left
	amount, err = s.WithdrawGiveaway(buyer2, nil, u(1), endTime)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), amount.Uint64())

	_, err = s.WithdrawGiveaway(stranger, nil, u(1000), endTime)
	assert.ErrorIs(t, err, errs.NothingToWithdraw)

	assert.Zero(t, s.PurchaserCount())
	assert.Equal(t, uint64(2), s.WithdrawerCount())
}

func TestGiveawayPublicAllocationCap(t *testing.T) {
	f := newFixture(t, "0")
	s := f.sale
	require.NoError(t, s.SetPublicAllocation(owner, u(300)))

	amount, err := s.WithdrawGiveaway(buyer, nil, u(100000), endTime)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), amount.Uint64())
}

func TestVestedGiveaway(t *testing.T) {
	f := newFixture(t, "0")
	s := f.sale
	tree := whitelistTree(t, []common.Address{buyer, buyer2}, []uint64{5000, 5000})
	require.NoError(t, s.SetWhitelist(owner, tree.Root()))
	require.NoError(t, s.SetVestedGiveaway(owner, true))

	_, err := s.WithdrawGiveaway(buyer, nil, u(5000), endTime)
	assert.ErrorIs(t, err, errs.UseVestedGiveawayPath)

	amount, err := s.WithdrawGiveawayVested(buyer, proofOf(t, tree, buyer, 5000), u(5000), endTime)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), amount.Uint64())
	assert.Equal(t, uint64(5000), f.balance(saleToken, buyer))
	assert.Equal(t, uint64(1), s.WithdrawerCount())

	_, err = s.WithdrawGiveawayVested(buyer, proofOf(t, tree, buyer, 5000), u(5000), endTime+1)
	assert.ErrorIs(t, err, errs.NothingToWithdraw)
}

func TestVestedGiveawayLinear(t *testing.T) {
	f := newFixture(t, "0")
	s := f.sale
	require.NoError(t, s.SetVestedGiveaway(owner, true))
	require.NoError(t, s.SetLinearVestingEndTime(owner, endTime+100, 0))
	require.NoError(t, s.SetPublicAllocation(owner, u(1000)))

	amount, err := s.WithdrawGiveawayVested(buyer, nil, u(1000), endTime+25)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), amount.Uint64())

	amount, err = s.WithdrawGiveawayVested(buyer, nil, u(1000), endTime+100)
	require.NoError(t, err)
	assert.Equal(t, uint64(750), amount.Uint64())
	assert.True(t, s.Participant(buyer).HasWithdrawnGiveaway)
}

func TestCashGiveaway(t *testing.T) {
	f := newFixture(t, "0")
	s := f.sale

	require.NoError(t, s.Cash(casher, endTime))
	assert.ErrorIs(t, s.Cash(buyer, endTime), errs.NotCasherOrOwner)
	assert.ErrorIs(t, s.Cash(seller, endTime), errs.NotCasherOrOwner)
	assert.ErrorIs(t, s.Cash(owner, endTime), errs.AlreadyCashed)
	assert.Equal(t, uint64(fundAmount), f.balance(saleToken, casher))
}

func TestGiveawayVestingToggle(t *testing.T) {
	type testCase struct {
		name     string
		claimAt  uint64
		expected uint64
		err      error
	}

	testCases := []testCase{
		{
			name:     "partial vested claim leaves the rest",
			claimAt:  endTime + 25,
			expected: 3750,
		},
		{
			name:    "full vested claim leaves nothing",
			claimAt: endTime + 100,
			err:     errs.AlreadyWithdrawn,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, "0")
			s := f.sale
			tree := whitelistTree(t, []common.Address{buyer, buyer2}, []uint64{5000, 5000})
			require.NoError(t, s.SetWhitelist(owner, tree.Root()))
			require.NoError(t, s.SetVestedGiveaway(owner, true))
			require.NoError(t, s.SetLinearVestingEndTime(owner, endTime+100, 0))

			_, err := s.WithdrawGiveawayVested(buyer, proofOf(t, tree, buyer, 5000), u(5000), tc.claimAt)
			require.NoError(t, err)

			require.NoError(t, s.SetVestedGiveaway(owner, false))
			amount, err := s.WithdrawGiveaway(buyer, proofOf(t, tree, buyer, 5000), u(5000), tc.claimAt)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, amount.Uint64())
			}
			assert.Equal(t, uint64(5000), f.balance(saleToken, buyer))
			assert.Equal(t, uint64(5000), s.Participant(buyer).GiveawayWithdrawn.Uint64())

			_, err = s.WithdrawGiveaway(buyer, proofOf(t, tree, buyer, 5000), u(5000), tc.claimAt)
			assert.ErrorIs(t, err, errs.AlreadyWithdrawn)
		})
	}
}

func TestGiveawayOneShotThenVested(t *testing.T) {
	f := newFixture(t, "0")
	s := f.sale
	tree := whitelistTree(t, []common.Address{buyer, buyer2}, []uint64{5000, 5000})
	require.NoError(t, s.SetWhitelist(owner, tree.Root()))

	_, err := s.WithdrawGiveaway(buyer, proofOf(t, tree, buyer, 5000), u(5000), endTime)
	require.NoError(t, err)

	require.NoError(t, s.SetVestedGiveaway(owner, true))
	_, err = s.WithdrawGiveawayVested(buyer, proofOf(t, tree, buyer, 5000), u(5000), endTime+1)
	assert.ErrorIs(t, err, errs.NothingToWithdraw)
	assert.Equal(t, uint64(5000), f.balance(saleToken, buyer))
}
