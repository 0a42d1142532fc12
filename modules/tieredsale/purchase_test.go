package tieredsale

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nodeAllocated = 51

func whitelistedFixture(t *testing.T) (*fixture, func(common.Address) []common.Hash) {
	t.Helper()
	f := newFixture(t)
	tree := whitelist(t, []common.Address{owner, operator, user, referrer}, nodeAllocated)
	tier := defaultTier("whitelist1")
	tier.WhitelistRoot = tree.Root()
	require.NoError(t, f.sale.SetTier(operator, tier))
	require.NoError(t, f.sale.AddPromoCode(operator, PromoCodeConfig{Code: promoCode, DiscountPercent: 20, Owner: referrer, Master: operator}))
	f.sale.DrainEvents()

	proof := func(wallet common.Address) []common.Hash {
		p, err := tree.ProofFor(wallet, u(nodeAllocated))
		require.NoError(t, err)
		return p
	}
	return f, proof
}

func TestPurchaseWithPromoCode(t *testing.T) {
	f, proof := whitelistedFixture(t)
	s := f.sale

	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, "whitelist1", units(3), proof(user), promoCode, units(nodeAllocated), startTime))
	assert.Equal(t, units(3), s.Purchased("whitelist1", user))

	costAfterDiscount := uint256.MustFromDecimal("2400000000000000000")
	assert.Equal(t, new(uint256.Int).Sub(walletBalances, costAfterDiscount), f.balance(paymentToken, user))
	assert.Equal(t, costAfterDiscount, f.balance(paymentToken, account))

	p, err := s.PromoCode(promoCode)
	require.NoError(t, err)
	assert.Equal(t, uint256.MustFromDecimal("312000000000000000"), p.OwnerEarnings)
	assert.Equal(t, uint256.MustFromDecimal("48000000000000000"), p.MasterEarnings)
	assert.Equal(t, costAfterDiscount, p.TotalPayment)
	assert.Equal(t, uint64(1), p.UniqueUseCount)

	assert.Equal(t, []events.Event{events.TierPurchase{
		TierID:  "whitelist1",
		Wallet:  user,
		Amount:  "3",
		Payment: costAfterDiscount,
		Code:    promoCode,
	}}, s.DrainEvents())
}

func TestPurchaseWhitelist(t *testing.T) {
	f, proof := whitelistedFixture(t)
	s := f.sale
	tier := defaultTier("whitelist1")
	tier.WhitelistRoot = lo.Must(s.Tier("whitelist1")).WhitelistRoot
	tier.MaxAllocationPerWallet = uint128.Zero
	require.NoError(t, s.SetTier(owner, tier))

	err := s.WhitelistedPurchaseInTier(stranger, "whitelist1", units(1), proof(user), units(nodeAllocated), startTime)
	assert.ErrorIs(t, err, errs.NotWhitelisted)

	err = s.WhitelistedPurchaseInTier(user, "whitelist1", units(1), proof(user), units(100), startTime)
	assert.ErrorIs(t, err, errs.NotWhitelisted)

	err = s.WhitelistedPurchaseInTier(user, "whitelist1", units(nodeAllocated+1), proof(user), units(nodeAllocated), startTime)
	assert.ErrorIs(t, err, errs.ExceedsAllocation)

	require.NoError(t, s.WhitelistedPurchaseInTier(user, "whitelist1", units(nodeAllocated), proof(user), units(nodeAllocated), startTime))
	err = s.WhitelistedPurchaseInTier(user, "whitelist1", units(1), proof(user), units(nodeAllocated), startTime)
	assert.ErrorIs(t, err, errs.ExceedsAllocation)

	// an empty root opens the tier to every wallet
	require.NoError(t, s.UpdateWhitelist(operator, "whitelist1", common.Hash{}))
	require.NoError(t, s.WhitelistedPurchaseInTier(stranger, "whitelist1", units(1), nil, uint128.Zero, startTime))
}

func TestPurchaseMaxAllocationPerWallet(t *testing.T) {
	f, proof := whitelistedFixture(t)
	s := f.sale
	const maxPerWallet = 50
	tier := defaultTier("maxAllocTier")
	tier.MaxAllocationPerWallet = units(maxPerWallet)
	tier.MaxTotalPurchasable = units(maxPerWallet * 2)
	require.NoError(t, s.SetTier(operator, tier))

	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, "maxAllocTier", units(maxPerWallet), proof(user), promoCode, units(nodeAllocated), startTime))
	err := s.WhitelistedPurchaseInTierWithCode(user, "maxAllocTier", units(1), proof(user), promoCode, units(nodeAllocated), startTime)
	assert.ErrorIs(t, err, errs.ExceedsAllocation)

	// exactly the per wallet maximum is allowed
	tier = defaultTier("exact")
	tier.MaxAllocationPerWallet = units(5)
	require.NoError(t, s.SetTier(owner, tier))
	require.NoError(t, s.WhitelistedPurchaseInTier(user, "exact", units(5), nil, units(5), startTime))
	assert.Equal(t, units(5), s.Purchased("exact", user))
}

func TestPurchaseCaps(t *testing.T) {
	t.Run("tier cap", func(t *testing.T) {
		f := newFixture(t)
		s := f.sale
		tier := defaultTier("capped")
		tier.MaxTotalPurchasable = units(100)
		tier.MaxAllocationPerWallet = uint128.Zero
		require.NoError(t, s.SetTier(owner, tier))

		require.NoError(t, s.WhitelistedPurchaseInTier(user, "capped", units(60), nil, uint128.Zero, startTime))
		err := s.WhitelistedPurchaseInTier(referrer, "capped", units(41), nil, uint128.Zero, startTime)
		assert.ErrorIs(t, err, errs.ExceedsCap)
		require.NoError(t, s.WhitelistedPurchaseInTier(referrer, "capped", units(40), nil, uint128.Zero, startTime))
	})

	t.Run("sale token supply", func(t *testing.T) {
		f := newFixture(t)
		s := f.sale
		for _, id := range []string{"open1", "open2"} {
			tier := defaultTier(id)
			tier.MaxTotalPurchasable = uint128.Zero
			tier.MaxAllocationPerWallet = uint128.Zero
			require.NoError(t, s.SetTier(owner, tier))
		}

		err := s.WhitelistedPurchaseInTier(user, "open1", units(fundAmount+1), nil, uint128.Zero, startTime)
		assert.ErrorIs(t, err, errs.ExceedsCap)
		require.NoError(t, s.WhitelistedPurchaseInTier(user, "open1", units(fundAmount), nil, uint128.Zero, startTime))
		err = s.WhitelistedPurchaseInTier(referrer, "open2", units(1), nil, uint128.Zero, startTime)
		assert.ErrorIs(t, err, errs.ExceedsCap)
		assert.Equal(t, units(fundAmount), s.TotalPurchased())
	})
}

func TestPurchaseMultipleTiers(t *testing.T) {
	f := newFixture(t)
	s := f.sale
	tier1 := defaultTier("Public1")
	tier1.Price = uint256.MustFromDecimal("500000000000000000")
	tier1.MaxTotalPurchasable = units(100)
	tier1.MaxAllocationPerWallet = units(1000)
	tier2 := defaultTier("Public2")
	tier2.MaxTotalPurchasable = units(50)
	tier2.MaxAllocationPerWallet = units(1000)
	require.NoError(t, s.SetTier(operator, tier1))
	require.NoError(t, s.SetTier(operator, tier2))

	require.NoError(t, s.WhitelistedPurchaseInTier(user, "Public1", units(1), nil, units(1000), startTime))
	require.NoError(t, s.WhitelistedPurchaseInTier(user, "Public2", units(2), nil, units(1000), startTime))

	assert.Equal(t, units(1), lo.Must(s.Tier("Public1")).Purchased)
	assert.Equal(t, units(2), lo.Must(s.Tier("Public2")).Purchased)
	assert.Equal(t, units(3), s.TotalPurchased())
	assert.Equal(t, uint256.MustFromDecimal("2500000000000000000"), f.balance(paymentToken, account))
	assert.Equal(t, []string{"Public1", "Public2"}, s.Info().TierIDs)
}

func TestPurchaseHalted(t *testing.T) {
	f, _ := whitelistedFixture(t)
	s := f.sale

	require.NoError(t, s.UpdateIsHalt(owner, "whitelist1", true))
	require.NoError(t, s.UpdateWhitelist(owner, "whitelist1", common.Hash{}))
	err := s.WhitelistedPurchaseInTierWithCode(user, "whitelist1", units(1), nil, promoCode, uint128.Zero, startTime)
	assert.ErrorIs(t, err, errs.PurchaseHalted)
	assert.False(t, lo.Must(s.Tier("whitelist1")).IsActive(startTime))

	require.NoError(t, s.UpdateIsHalt(operator, "whitelist1", false))
	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, "whitelist1", units(1), nil, promoCode, uint128.Zero, startTime))
	assert.Equal(t, units(1), s.Purchased("whitelist1", user))

	assert.ErrorIs(t, s.UpdateIsHalt(owner, "missing", true), errs.NotFound)
	assert.ErrorIs(t, s.WhitelistedPurchaseInTier(user, "missing", units(1), nil, uint128.Zero, startTime), errs.NotFound)
}

func TestPurchaseOutsideTierWindow(t *testing.T) {
	f := newFixture(t)
	s := f.sale
	tier := defaultTier("short")
	tier.StartTime = startTime + 300
	tier.EndTime = startTime + 600
	require.NoError(t, s.SetTier(operator, tier))
	require.NoError(t, s.AddPromoCode(operator, PromoCodeConfig{Code: promoCode, DiscountPercent: 5, Owner: referrer, Master: operator}))

	for _, now := range []uint64{startTime, startTime + 299, startTime + 601} {
		err := s.WhitelistedPurchaseInTierWithCode(user, "short", units(1), nil, promoCode, units(10), now)
		assert.ErrorIs(t, err, errs.TierNotActive, "at %d", now)
	}
	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, "short", units(1), nil, promoCode, units(10), startTime+300))
	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, "short", units(1), nil, promoCode, units(10), startTime+600))
}

func TestPurchaseInvalidPromoCode(t *testing.T) {
	f := newFixture(t)
	s := f.sale
	require.NoError(t, s.SetTier(owner, defaultTier("tier1")))
	closed := defaultTier("closed")
	closed.AllowPromoCode = false
	closed.AllowWalletPromoCode = false
	require.NoError(t, s.SetTier(owner, closed))
	require.NoError(t, s.AddPromoCode(owner, PromoCodeConfig{Code: promoCode, DiscountPercent: 20, Owner: referrer, Master: operator}))

	type testCase struct {
		name   string
		tierID string
		code   string
	}
	testCases := []testCase{
		{name: "unknown code", tierID: "tier1", code: "INVALID100"},
		{name: "empty code", tierID: "tier1", code: ""},
		{name: "tier does not allow codes", tierID: "closed", code: promoCode},
		{name: "tier does not allow wallet codes", tierID: "closed", code: referrer.Hex()},
		{name: "own wallet code", tierID: "tier1", code: user.Hex()},
		{name: "zero wallet code", tierID: "tier1", code: common.Address{}.Hex()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.WhitelistedPurchaseInTierWithCode(user, tc.tierID, units(1), nil, tc.code, units(5), startTime)
			assert.ErrorIs(t, err, errs.InvalidPromoCode)
		})
	}
	assert.Equal(t, 1, s.PromoCodeCount())
	assert.True(t, s.TotalPurchased().IsZero())
}

func TestPurchaseWithWalletCode(t *testing.T) {
	f := newFixture(t)
	s := f.sale
	require.NoError(t, s.SetTier(owner, defaultTier("tier1")))
	s.DrainEvents()

	code := strings.ToLower(referrer.Hex())
	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, "tier1", units(2), nil, code, uint128.Zero, startTime))

	p, err := s.PromoCode(referrer.Hex())
	require.NoError(t, err)
	assert.True(t, p.IsWalletCode)
	assert.Equal(t, referrer, p.Owner)
	assert.Equal(t, owner, p.Master)
	assert.Zero(t, p.DiscountPercent)
	assert.Equal(t, uint256.MustFromDecimal("260000000000000000"), p.OwnerEarnings)
	assert.Equal(t, uint256.MustFromDecimal("40000000000000000"), p.MasterEarnings)

	assert.Equal(t, []events.Event{
		events.PromoCodeAdded{Code: referrer.Hex(), Owner: referrer, Master: owner},
		events.TierPurchase{TierID: "tier1", Wallet: user, Amount: "2", Payment: eth(2), Code: referrer.Hex()},
	}, s.DrainEvents())

	// the registered wallet code is reused
	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(stranger, "tier1", units(1), nil, referrer.Hex(), uint128.Zero, startTime))
	assert.Equal(t, 1, s.PromoCodeCount())
	assert.Equal(t, uint64(2), lo.Must(s.PromoCode(referrer.Hex())).UniqueUseCount)

	err = s.WhitelistedPurchaseInTierWithCode(referrer, "tier1", units(1), nil, code, uint128.Zero, startTime)
	assert.ErrorIs(t, err, errs.InvalidPromoCode)
}

func TestWalletCodeNeedsTierPermission(t *testing.T) {
	f := newFixture(t)
	s := f.sale
	require.NoError(t, s.SetTier(owner, defaultTier("tier1")))
	closed := defaultTier("tier2")
	closed.AllowWalletPromoCode = false
	require.NoError(t, s.SetTier(owner, closed))
	require.NoError(t, s.AddPromoCode(operator, PromoCodeConfig{Code: "SAVE10", DiscountPercent: 10, Owner: referrer, Master: operator}))

	// registered in a tier that allows wallet codes
	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, "tier1", units(1), nil, referrer.Hex(), uint128.Zero, startTime))
	before := lo.Must(s.PromoCode(referrer.Hex())).OwnerEarnings.Clone()

	err := s.WhitelistedPurchaseInTierWithCode(stranger, "tier2", units(1), nil, referrer.Hex(), uint128.Zero, startTime)
	assert.ErrorIs(t, err, errs.InvalidPromoCode)
	assert.True(t, s.Purchased("tier2", stranger).IsZero())
	assert.Equal(t, before, lo.Must(s.PromoCode(referrer.Hex())).OwnerEarnings)

	// plain promo codes are still accepted there
	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(stranger, "tier2", units(1), nil, "SAVE10", uint128.Zero, startTime))
}

func TestPromoCodeUsage(t *testing.T) {
	f := newFixture(t)
	s := f.sale
	require.NoError(t, s.SetTier(owner, defaultTier("tier1")))
	require.NoError(t, s.AddPromoCode(owner, PromoCodeConfig{Code: promoCode, DiscountPercent: 20, Owner: referrer, Master: operator}))
	require.NoError(t, s.AddPromoCode(owner, PromoCodeConfig{Code: "OTHER", DiscountPercent: 0, Owner: referrer, Master: operator}))

	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, "tier1", units(1), nil, promoCode, uint128.Zero, startTime))
	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, "tier1", units(1), nil, promoCode, uint128.Zero, startTime))
	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, "tier1", units(1), nil, "OTHER", uint128.Zero, startTime))
	require.NoError(t, s.WhitelistedPurchaseInTierWithCode(stranger, "tier1", units(1), nil, promoCode, uint128.Zero, startTime))

	assert.Equal(t, uint64(2), lo.Must(s.PromoCode(promoCode)).UniqueUseCount)
	assert.Equal(t, uint64(1), lo.Must(s.PromoCode("OTHER")).UniqueUseCount)
	assert.Equal(t, []string{promoCode, "OTHER"}, s.CodesUsedBy(user))
	assert.Equal(t, []string{promoCode}, s.CodesUsedBy(stranger))
	assert.Empty(t, s.CodesUsedBy(referrer))
}

func TestRewardSplit(t *testing.T) {
	type testCase struct {
		name           string
		bonus          uint8
		discount       uint8
		base, master   *uint8
		amount         uint64
		ownerEarnings  string
		masterEarnings string
	}
	testCases := []testCase{
		// 3 units at 1 ether, 20% off, 8+5% owner, 2% master
		{name: "defaults", bonus: 5, discount: 20, amount: 3, ownerEarnings: "312000000000000000", masterEarnings: "48000000000000000"},
		{name: "tier bonus", bonus: 10, discount: 10, amount: 3, ownerEarnings: "486000000000000000", masterEarnings: "54000000000000000"},
		{name: "overridden percentages", bonus: 5, discount: 10, base: lo.ToPtr[uint8](10), master: lo.ToPtr[uint8](5), amount: 1, ownerEarnings: "135000000000000000", masterEarnings: "45000000000000000"},
		{name: "rewards capped at payment", bonus: 5, base: lo.ToPtr[uint8](90), master: lo.ToPtr[uint8](10), amount: 1, ownerEarnings: "900000000000000000", masterEarnings: "100000000000000000"},
		{name: "full discount", bonus: 5, discount: 100, amount: 2, ownerEarnings: "0", masterEarnings: "0"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			s := f.sale
			tier := defaultTier("tier1")
			tier.BonusPercent = tc.bonus
			require.NoError(t, s.SetTier(operator, tier))
			require.NoError(t, s.AddPromoCode(operator, PromoCodeConfig{
				Code:               "CODE",
				DiscountPercent:    tc.discount,
				Owner:              referrer,
				Master:             operator,
				BaseOwnerPercent:   tc.base,
				MasterOwnerPercent: tc.master,
			}))
			require.NoError(t, s.WhitelistedPurchaseInTierWithCode(user, "tier1", units(tc.amount), nil, "CODE", uint128.Zero, startTime))

			p := lo.Must(s.PromoCode("CODE"))
			assert.Equal(t, tc.ownerEarnings, p.OwnerEarnings.Dec())
			assert.Equal(t, tc.masterEarnings, p.MasterEarnings.Dec())
		})
	}
}

func TestRejectedPurchaseHasNoSideEffects(t *testing.T) {
	f := newFixture(t)
	s := f.sale
	require.NoError(t, s.SetTier(owner, defaultTier("tier1")))
	s.DrainEvents()
	broke := addr(9)

	err := s.WhitelistedPurchaseInTierWithCode(broke, "tier1", units(1), nil, referrer.Hex(), uint128.Zero, startTime)
	assert.ErrorIs(t, err, errs.InsufficientBalance)

	assert.True(t, s.Purchased("tier1", broke).IsZero())
	assert.True(t, s.TotalPurchased().IsZero())
	assert.True(t, lo.Must(s.Tier("tier1")).Purchased.IsZero())
	assert.Zero(t, s.PromoCodeCount())
	assert.Empty(t, s.CodesUsedBy(broke))
	assert.Empty(t, s.DrainEvents())
	assert.True(t, f.balance(paymentToken, account).IsZero())
}
