package sale

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/holiman/uint256"
)

// Withdraw releases the sale tokens unlocked for caller at now and returns the amount.
//
// It fails with errs.NothingToWithdraw when the wallet has nothing left to
// receive. When tokens remain but none unlocked since the last withdrawal it
// returns zero and changes nothing.
func (s *Sale) Withdraw(caller common.Address, now uint64) (*uint256.Int, error) {
	if s.IsGiveaway() {
		return nil, errors.WithStack(errs.UseGiveawayPath)
	}
	p := s.peek(caller)
	claimable, err := s.claimable(p.SaleTokenOwed, p.Withdrawn, now)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if claimable.IsZero() {
		return claimable, nil
	}

	if err := s.ledger.Transfer(s.saleToken, s.account, caller, claimable); err != nil {
		return nil, errors.Wrap(err, "failed to transfer sale token")
	}

	p = s.participant(caller)
	p.Withdrawn.Add(p.Withdrawn, claimable)
	s.markWithdrawer(p)
	s.totalWithdrawn.Add(s.totalWithdrawn, claimable)
	s.events.Emit(events.Withdraw{Wallet: caller, Amount: claimable.Clone()})
	return claimable, nil
}

// WithdrawGiveaway releases the giveaway allocation of caller once. Tokens
// already claimed through the vested path are deducted.
func (s *Sale) WithdrawGiveaway(caller common.Address, proof []common.Hash, allocation *uint256.Int, now uint64) (*uint256.Int, error) {
	if !s.IsGiveaway() {
		return nil, errors.WithStack(errs.NotAGiveaway)
	}
	if s.vestedGiveaway {
		return nil, errors.WithStack(errs.UseVestedGiveawayPath)
	}
	if now < s.WithdrawTime() {
		return nil, errors.Wrapf(errs.TooEarly, "withdrawals open at %d, now is %d", s.WithdrawTime(), now)
	}
	p := s.peek(caller)
	if p.HasWithdrawnGiveaway {
		return nil, errors.WithStack(errs.AlreadyWithdrawn)
	}

	entitlement, err := s.giveawayEntitlement(caller, proof, allocation)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if entitlement.IsZero() {
		return nil, errors.WithStack(errs.NothingToWithdraw)
	}
	if p.GiveawayWithdrawn.Cmp(entitlement) >= 0 {
		return nil, errors.Wrap(errs.AlreadyWithdrawn, "allocation already claimed through vesting")
	}
	amount := new(uint256.Int).Sub(entitlement, p.GiveawayWithdrawn)
	if s.whitelistRoot == (common.Hash{}) {
		// first come first serve: the last claimers share what is left
		if balance := s.ledger.BalanceOf(s.saleToken, s.account); balance.Lt(amount) {
			amount = balance
		}
	}
	if amount.IsZero() {
		return nil, errors.WithStack(errs.NothingToWithdraw)
	}

	if err := s.ledger.Transfer(s.saleToken, s.account, caller, amount); err != nil {
		return nil, errors.Wrap(err, "failed to transfer giveaway")
	}

	p = s.participant(caller)
	p.HasWithdrawnGiveaway = true
	p.GiveawayWithdrawn.Add(p.GiveawayWithdrawn, amount)
	s.markWithdrawer(p)
	s.totalWithdrawn.Add(s.totalWithdrawn, amount)
	s.events.Emit(events.WithdrawGiveaway{Wallet: caller, Amount: amount.Clone()})
	return amount, nil
}

// WithdrawGiveawayVested releases the unlocked part of caller's giveaway allocation.
func (s *Sale) WithdrawGiveawayVested(caller common.Address, proof []common.Hash, allocation *uint256.Int, now uint64) (*uint256.Int, error) {
	if !s.IsGiveaway() {
		return nil, errors.WithStack(errs.NotAGiveaway)
	}
	if !s.vestedGiveaway {
		return nil, errors.Wrap(errs.UseGiveawayPath, "vested giveaway is disabled")
	}
	p := s.peek(caller)
	if p.HasWithdrawnGiveaway {
		return nil, errors.Wrap(errs.NothingToWithdraw, "giveaway already claimed")
	}
	entitlement, err := s.giveawayEntitlement(caller, proof, allocation)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	claimable, err := s.claimable(entitlement, p.GiveawayWithdrawn, now)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if claimable.IsZero() {
		return claimable, nil
	}

	if err := s.ledger.Transfer(s.saleToken, s.account, caller, claimable); err != nil {
		return nil, errors.Wrap(err, "failed to transfer giveaway")
	}

	p = s.participant(caller)
	p.GiveawayWithdrawn.Add(p.GiveawayWithdrawn, claimable)
	if p.GiveawayWithdrawn.Cmp(entitlement) >= 0 {
		p.HasWithdrawnGiveaway = true
	}
	s.markWithdrawer(p)
	s.totalWithdrawn.Add(s.totalWithdrawn, claimable)
	s.events.Emit(events.WithdrawGiveaway{Wallet: caller, Amount: claimable.Clone(), Vested: true})
	return claimable, nil
}

// claimable wraps the schedule's claimable amount, failing when the wallet has
// already received its whole entitlement.
func (s *Sale) claimable(entitlement, withdrawn *uint256.Int, now uint64) (*uint256.Int, error) {
	claimable, err := s.Schedule().Claimable(entitlement, withdrawn, now)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if withdrawn.Cmp(entitlement) >= 0 {
		return nil, errors.Wrap(errs.NothingToWithdraw, "entitlement fully withdrawn")
	}
	return claimable, nil
}

// giveawayEntitlement is the proven allocation of caller, or the public
// allocation. A first come first serve giveaway without a public allocation
// entitles nobody; the declared allocation is never trusted on its own.
func (s *Sale) giveawayEntitlement(caller common.Address, proof []common.Hash, allocation *uint256.Int) (*uint256.Int, error) {
	alloc, err := s.allocationOf(caller, proof, allocation)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if alloc == nil {
		return new(uint256.Int), nil
	}
	return alloc, nil
}

func (s *Sale) markWithdrawer(p *Participant) {
	if !p.hasWithdrawn {
		p.hasWithdrawn = true
		s.withdrawerCount++
	}
}
