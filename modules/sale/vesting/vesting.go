// Package vesting computes how much of an entitlement is claimable at a given time.
package vesting

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/holiman/uint256"
)

// FullPercent is the cumulative percent of the last cliff.
const FullPercent = 100

// Cliff unlocks Percent (cumulative) of the entitlement at UnlockTime.
type Cliff struct {
	UnlockTime uint64 `json:"unlockTime"`
	Percent    uint8  `json:"percent"`
}

// Schedule is the release schedule of a sale.
//
// Nothing unlocks before Start. With LinearEnd > Start the entitlement unlocks
// linearly until LinearEnd. With Cliffs set it unlocks in steps. Otherwise
// everything unlocks at Start.
type Schedule struct {
	Start     uint64  `json:"start"`
	LinearEnd uint64  `json:"linearEnd,omitempty"`
	Cliffs    []Cliff `json:"cliffs,omitempty"`
}

// NewCliffs converts per-step increments, which must sum to 100, to cumulative cliffs.
func NewCliffs(unlockTimes []uint64, increments []uint8) ([]Cliff, error) {
	if len(unlockTimes) == 0 {
		return nil, errors.Wrap(errs.InvalidInput, "empty cliff period")
	}
	if len(unlockTimes) != len(increments) {
		return nil, errors.Wrapf(errs.InvalidInput, "%d unlock times for %d percentages", len(unlockTimes), len(increments))
	}

	cliffs := make([]Cliff, 0, len(unlockTimes))
	var total uint
	for i, unlockTime := range unlockTimes {
		if i > 0 && unlockTime <= unlockTimes[i-1] {
			return nil, errors.Wrapf(errs.InvalidInput, "unlock time #%d is not after the previous one", i)
		}
		if increments[i] == 0 {
			return nil, errors.Wrapf(errs.InvalidInput, "percentage #%d is zero", i)
		}
		total += uint(increments[i])
		if total > FullPercent {
			return nil, errors.Wrap(errs.InvalidInput, "percentages sum over 100")
		}
		cliffs = append(cliffs, Cliff{UnlockTime: unlockTime, Percent: uint8(total)})
	}
	if total != FullPercent {
		return nil, errors.Wrapf(errs.InvalidInput, "percentages sum to %d, want 100", total)
	}
	return cliffs, nil
}

func (s Schedule) IsLinear() bool {
	return s.LinearEnd > 0 && len(s.Cliffs) == 0
}

func (s Schedule) IsCliff() bool {
	return len(s.Cliffs) > 0
}

// Validate checks the schedule shape.
func (s Schedule) Validate() error {
	if s.LinearEnd > 0 && len(s.Cliffs) > 0 {
		return errors.Wrap(errs.InvalidInput, "linear vesting and cliff period are mutually exclusive")
	}
	if s.LinearEnd > 0 && s.LinearEnd <= s.Start {
		return errors.Wrapf(errs.InvalidInput, "linear vesting end %d must be after withdraw time %d", s.LinearEnd, s.Start)
	}
	for i, c := range s.Cliffs {
		if i > 0 && (c.UnlockTime <= s.Cliffs[i-1].UnlockTime || c.Percent < s.Cliffs[i-1].Percent) {
			return errors.Wrapf(errs.InvalidInput, "cliff #%d is not monotonic", i)
		}
		if c.Percent > FullPercent {
			return errors.Wrapf(errs.InvalidInput, "cliff #%d unlocks %d percent", i, c.Percent)
		}
	}
	if n := len(s.Cliffs); n > 0 && s.Cliffs[n-1].Percent != FullPercent {
		return errors.Wrap(errs.InvalidInput, "last cliff must unlock 100 percent")
	}
	return nil
}

// Unlocked returns the part of entitlement released at now, regardless of what was withdrawn.
func (s Schedule) Unlocked(entitlement *uint256.Int, now uint64) *uint256.Int {
	switch {
	case now < s.Start:
		return new(uint256.Int)
	case s.IsCliff():
		percent := s.percentUnlocked(now)
		if percent >= FullPercent {
			return entitlement.Clone()
		}
		return mulDiv(entitlement, uint256.NewInt(uint64(percent)), uint256.NewInt(FullPercent))
	case s.IsLinear():
		if now >= s.LinearEnd {
			return entitlement.Clone()
		}
		return mulDiv(entitlement, uint256.NewInt(now-s.Start), uint256.NewInt(s.LinearEnd-s.Start))
	default:
		return entitlement.Clone()
	}
}

// Claimable returns what can be withdrawn at now on top of withdrawn.
// It fails with errs.TooEarly before Start and errs.NothingToWithdraw when entitlement is zero.
// A zero result means nothing new has unlocked yet.
func (s Schedule) Claimable(entitlement, withdrawn *uint256.Int, now uint64) (*uint256.Int, error) {
	if now < s.Start {
		return nil, errors.Wrapf(errs.TooEarly, "withdrawals open at %d, now is %d", s.Start, now)
	}
	if entitlement == nil || entitlement.IsZero() {
		return nil, errors.WithStack(errs.NothingToWithdraw)
	}
	if withdrawn == nil {
		withdrawn = new(uint256.Int)
	}
	unlocked := s.Unlocked(entitlement, now)
	if unlocked.Cmp(withdrawn) <= 0 {
		return new(uint256.Int), nil
	}
	return new(uint256.Int).Sub(unlocked, withdrawn), nil
}

func (s Schedule) percentUnlocked(now uint64) uint8 {
	var percent uint8
	for _, c := range s.Cliffs {
		if c.UnlockTime > now {
			break
		}
		percent = c.Percent
	}
	return percent
}

func (s Schedule) String() string {
	switch {
	case s.IsCliff():
		return fmt.Sprintf("cliff(start=%d, steps=%d)", s.Start, len(s.Cliffs))
	case s.IsLinear():
		return fmt.Sprintf("linear(%d..%d)", s.Start, s.LinearEnd)
	default:
		return fmt.Sprintf("unlock(%d)", s.Start)
	}
}

// mulDiv returns floor(x*y/d). The product is computed on 512 bits so it never overflows.
func mulDiv(x, y, d *uint256.Int) *uint256.Int {
	z, _ := new(uint256.Int).MulDivOverflow(x, y, d)
	return z
}
