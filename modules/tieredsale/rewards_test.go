package tieredsale

import (
	"testing"

	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithdrawPromoCodeRewards(t *testing.T) {
	f, proof := whitelistedFixture(t)
	s := f.sale
	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, "whitelist1", units(3), proof(user), promoCode, units(nodeAllocated), startTime))
	s.DrainEvents()

	ownerEarnings := uint256.MustFromDecimal("312000000000000000")
	masterEarnings := uint256.MustFromDecimal("48000000000000000")

	_, err := s.WithdrawPromoCodeRewards(user, promoCode)
	assert.ErrorIs(t, err, errs.NotAuthorized)
	_, err = s.WithdrawPromoCodeRewards(referrer, "MISSING")
	assert.ErrorIs(t, err, errs.NotFound)

	amount, err := s.WithdrawPromoCodeRewards(referrer, promoCode)
	require.NoError(t, err)
	assert.Equal(t, ownerEarnings, amount)
	assert.Equal(t, new(uint256.Int).Add(walletBalances, ownerEarnings), f.balance(paymentToken, referrer))
	assert.Equal(t, []events.Event{events.ReferralRewardWithdrawn{Recipient: referrer, Amount: ownerEarnings, Code: promoCode}}, s.DrainEvents())

	_, err = s.WithdrawPromoCodeRewards(referrer, promoCode)
	assert.ErrorIs(t, err, errs.NoRewardsAvailable)

	amount, err = s.WithdrawPromoCodeRewards(operator, promoCode)
	require.NoError(t, err)
	assert.Equal(t, masterEarnings, amount)

	p := lo.Must(s.PromoCode(promoCode))
	assert.Equal(t, p.OwnerEarnings, p.OwnerWithdrawn)
	assert.Equal(t, p.MasterEarnings, p.MasterWithdrawn)
	assert.True(t, s.Info().PendingRewards.IsZero())
}

func TestWithdrawReferralRewards(t *testing.T) {
	f := newFixture(t)
	s := f.sale
	tier := defaultTier("promoTier")
	tier.BonusPercent = 10
	tier.MaxAllocationPerWallet = units(100)
	require.NoError(t, s.SetTier(operator, tier))

	codes := []string{"PROMO10", "PROMO20", "PROMO30"}
	discounts := []uint8{10, 20, 30}
	for i, code := range codes {
		require.NoError(t, s.AddPromoCode(owner, PromoCodeConfig{Code: code, DiscountPercent: discounts[i], Owner: referrer, Master: owner}))
	}
	for _, code := range codes {
		require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, "promoTier", units(10), nil, code, units(100), startTime))
	}

	// 10 ether at 10, 20 and 30 percent off, 18 percent to the owner
	expected := uint256.MustFromDecimal("4320000000000000000")
	assert.Equal(t, expected, s.PendingRewards(referrer))

	_, err := s.WithdrawReferralRewards(user)
	assert.ErrorIs(t, err, errs.NoRewardsAvailable)

	before := f.balance(paymentToken, referrer)
	amount, err := s.WithdrawReferralRewards(referrer)
	require.NoError(t, err)
	assert.Equal(t, expected, amount)
	assert.Equal(t, new(uint256.Int).Add(before, expected), f.balance(paymentToken, referrer))
	assert.True(t, s.PendingRewards(referrer).IsZero())

	_, err = s.WithdrawReferralRewards(referrer)
	assert.ErrorIs(t, err, errs.NoRewardsAvailable)

	// 2 percent of 24 ether for the master
	amount, err = s.WithdrawReferralRewards(owner)
	require.NoError(t, err)
	assert.Equal(t, uint256.MustFromDecimal("480000000000000000"), amount)
}

func TestCash(t *testing.T) {
	f := newFixture(t)
	s := f.sale
	require.NoError(t, s.AddPromoCode(owner, PromoCodeConfig{Code: promoCode, DiscountPercent: 20, Owner: referrer, Master: operator}))
	for _, id := range []string{"cashTier1", "cashTier2"} {
		tier := defaultTier(id)
		tier.MaxAllocationPerWallet = units(100)
		tier.EndTime = endTime + 100
		require.NoError(t, s.SetTier(owner, tier))
		require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, id, units(20), nil, promoCode, uint128.Zero, startTime))
	}
	assert.Equal(t, uint64(endTime+100), s.Info().CashTime)

	for _, now := range []uint64{endTime, endTime + 100} {
		_, err := s.Cash(owner, now)
		assert.ErrorIs(t, err, errs.TooEarly)
	}

	amount, err := s.Cash(owner, endTime+101)
	require.NoError(t, err)
	assert.Equal(t, uint64(fundAmount-40), amount.Uint64())
	assert.Equal(t, uint64(fundAmount-40), f.balance(saleToken, owner).Uint64())
	assert.Equal(t, uint64(40), f.balance(saleToken, account).Uint64())

	_, err = s.Cash(owner, endTime+102)
	assert.ErrorIs(t, err, errs.AlreadyCashed)
	assert.True(t, s.Info().HasCashed)
}

func TestCashPaymentToken(t *testing.T) {
	f := newFixture(t)
	s := f.sale
	require.NoError(t, s.SetTier(operator, defaultTier("tier1")))
	require.NoError(t, s.AddPromoCode(owner, PromoCodeConfig{Code: promoCode, DiscountPercent: 20, Owner: referrer, Master: operator}))
	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, "tier1", units(1), nil, promoCode, uint128.Zero, startTime))

	// 0.8 ether paid, 0.12 ether reserved for rewards
	free := uint256.MustFromDecimal("680000000000000000")
	before := f.balance(paymentToken, owner)
	require.NoError(t, s.CashPaymentToken(owner, u(1)))
	assert.Equal(t, new(uint256.Int).AddUint64(before, 1), f.balance(paymentToken, owner))

	err := s.CashPaymentToken(owner, free)
	assert.ErrorIs(t, err, errs.InsufficientBalance)
	require.NoError(t, s.CashPaymentToken(owner, new(uint256.Int).SubUint64(free, 1)))

	_, err = s.WithdrawReferralRewards(referrer)
	require.NoError(t, err)
	_, err = s.WithdrawReferralRewards(operator)
	require.NoError(t, err)
	assert.True(t, f.balance(paymentToken, account).IsZero())
}

func TestEmergencyTokenRetrieve(t *testing.T) {
	f := newFixture(t)
	s := f.sale
	require.NoError(t, f.ledger.Mint(otherToken, account, u(77)))

	assert.ErrorIs(t, s.EmergencyTokenRetrieve(owner, paymentToken), errs.InvalidInput)
	assert.ErrorIs(t, s.EmergencyTokenRetrieve(owner, saleToken), errs.InvalidInput)
	assert.ErrorIs(t, s.EmergencyTokenRetrieve(operator, otherToken), errs.NotOwner)
	require.NoError(t, s.EmergencyTokenRetrieve(owner, otherToken))
	assert.Equal(t, uint64(77), f.balance(otherToken, owner).Uint64())
}
