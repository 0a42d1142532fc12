package sale

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/gaze-network/launchpad/core/roles"
	"github.com/gaze-network/launchpad/modules/sale/vesting"
	"github.com/holiman/uint256"
)

func (s *Sale) SetCasher(caller, casher common.Address) error {
	return s.setRole(caller, roles.Casher, casher)
}

func (s *Sale) SetWhitelistSetter(caller, setter common.Address) error {
	return s.setRole(caller, roles.WhitelistSetter, setter)
}

// SetFunder moves the funder role away from the seller. It can be done once.
func (s *Sale) SetFunder(caller, funder common.Address) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	if funder == (common.Address{}) {
		return errors.Wrap(errs.ZeroAddress, "funder")
	}
	if s.funderSet {
		return errors.Wrap(errs.AlreadySet, "funder")
	}
	if err := s.setRole(caller, roles.Funder, funder); err != nil {
		return err
	}
	s.funderSet = true
	return nil
}

func (s *Sale) setRole(caller common.Address, role roles.Role, addr common.Address) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	if err := s.roles.Set(role, addr); err != nil {
		return errors.WithStack(err)
	}
	s.events.Emit(events.RoleSet{Role: role.String(), Account: addr, Granted: true})
	return nil
}

// TransferOwnership hands the owner role to newOwner.
func (s *Sale) TransferOwnership(caller, newOwner common.Address) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	if err := s.roles.Set(roles.Owner, newOwner); err != nil {
		return errors.WithStack(err)
	}
	s.events.Emit(events.OwnershipTransferred{PreviousOwner: caller, NewOwner: newOwner})
	return nil
}

// RenounceOwnership always fails. A sale must keep an owner.
func (s *Sale) RenounceOwnership(common.Address) error {
	return errors.WithStack(errs.OwnershipRenunciationDisabled)
}

func (s *Sale) SetWithdrawDelay(caller common.Address, delay uint64, now uint64) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	if s.endTime+delay < s.endTime {
		return errors.Wrap(errs.InvalidInput, "withdraw delay overflows")
	}
	next := s.Schedule()
	next.Start = s.endTime + delay
	if err := s.guardSchedule(next, now); err != nil {
		return err
	}
	s.withdrawDelay = delay
	s.changed("withdraw_delay", strconv.FormatUint(delay, 10))
	return nil
}

// SetLinearVestingEndTime enables linear vesting until endTime and clears the cliff period.
// Zero disables vesting.
func (s *Sale) SetLinearVestingEndTime(caller common.Address, endTime uint64, now uint64) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	next := vesting.Schedule{Start: s.WithdrawTime(), LinearEnd: endTime}
	if err := s.guardSchedule(next, now); err != nil {
		return err
	}
	s.linearVestingEndTime = endTime
	s.cliffs = nil
	s.changed("linear_vesting_end_time", strconv.FormatUint(endTime, 10))
	return nil
}

// SetCliffPeriod sets the cliff schedule from increments summing to 100 and disables linear vesting.
func (s *Sale) SetCliffPeriod(caller common.Address, unlockTimes []uint64, percentages []uint8, now uint64) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	cliffs, err := vesting.NewCliffs(unlockTimes, percentages)
	if err != nil {
		return errors.WithStack(err)
	}
	next := vesting.Schedule{Start: s.WithdrawTime(), Cliffs: cliffs}
	if err := s.guardSchedule(next, now); err != nil {
		return err
	}
	s.cliffs = cliffs
	s.linearVestingEndTime = 0
	s.changed("cliff_period", next.String())
	return nil
}

// guardSchedule rejects schedules that would take back tokens already unlocked
// once the sale has participants.
func (s *Sale) guardSchedule(next vesting.Schedule, now uint64) error {
	if err := next.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if s.purchaserCount == 0 && s.withdrawerCount == 0 {
		return nil
	}
	current := s.Schedule().Unlocked(PriceScale, now)
	if next.Unlocked(PriceScale, now).Lt(current) {
		return errors.Wrapf(errs.ScheduleLocked, "%s unlocks less than %s at %d", next, s.Schedule(), now)
	}
	return nil
}

func (s *Sale) SetIsPurchaseHalted(caller common.Address, halted bool) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	s.isPurchaseHalted = halted
	s.changed("is_purchase_halted", strconv.FormatBool(halted))
	return nil
}

func (s *Sale) SetIsIntegerSale(caller common.Address, integer bool) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	s.isIntegerSale = integer
	s.changed("is_integer_sale", strconv.FormatBool(integer))
	return nil
}

func (s *Sale) SetVestedGiveaway(caller common.Address, vested bool) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	s.vestedGiveaway = vested
	s.changed("vested_giveaway", strconv.FormatBool(vested))
	return nil
}

func (s *Sale) SetMinTotalPayment(caller common.Address, amount *uint256.Int) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	s.minTotalPayment = cloneOrZero(amount)
	s.changed("min_total_payment", s.minTotalPayment.Dec())
	return nil
}

func (s *Sale) SetMaxTotalPurchasable(caller common.Address, amount *uint256.Int) error {
	if err := s.onlyWhitelistSetterOrOwner(caller); err != nil {
		return err
	}
	s.maxTotalPurchasable = cloneOrZero(amount)
	s.changed("max_total_purchasable", s.maxTotalPurchasable.Dec())
	return nil
}

// SetWhitelist commits a merkle root of (wallet, allocation) pairs. The zero root disables the whitelist.
func (s *Sale) SetWhitelist(caller common.Address, root common.Hash) error {
	if err := s.onlyWhitelistSetterOrOwner(caller); err != nil {
		return err
	}
	s.whitelistRoot = root
	s.changed("whitelist_root_hash", root.Hex())
	return nil
}

// SetPublicAllocation sets the allocation of wallets outside the whitelist.
func (s *Sale) SetPublicAllocation(caller common.Address, amount *uint256.Int) error {
	if err := s.onlyWhitelistSetterOrOwner(caller); err != nil {
		return err
	}
	s.publicAllocation = cloneOrZero(amount)
	s.changed("public_allocation", s.publicAllocation.Dec())
	return nil
}

func (s *Sale) changed(field, value string) {
	s.events.Emit(events.ConfigChanged{Field: field, Value: value})
}

func cloneOrZero(x *uint256.Int) *uint256.Int {
	if x == nil {
		return new(uint256.Int)
	}
	return x.Clone()
}
