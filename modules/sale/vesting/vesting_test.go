package vesting

import (
	"testing"

	"github.com/gaze-network/launchpad/common/errs"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCliffs(t *testing.T) {
	type testCase struct {
		name       string
		times      []uint64
		increments []uint8
		expected   []Cliff
		err        error
	}
	testCases := []testCase{
		{
			name:       "cumulative",
			times:      []uint64{10, 20, 30, 40},
			increments: []uint8{10, 20, 30, 40},
			expected:   []Cliff{{10, 10}, {20, 30}, {30, 60}, {40, 100}},
		},
		{
			name:       "single step",
			times:      []uint64{10},
			increments: []uint8{100},
			expected:   []Cliff{{10, 100}},
		},
		{name: "empty", err: errs.InvalidInput},
		{name: "length mismatch", times: []uint64{1, 2}, increments: []uint8{100}, err: errs.InvalidInput},
		{name: "sum below 100", times: []uint64{1, 2}, increments: []uint8{10, 20}, err: errs.InvalidInput},
		{name: "sum above 100", times: []uint64{1, 2}, increments: []uint8{90, 20}, err: errs.InvalidInput},
		{name: "time not increasing", times: []uint64{2, 2}, increments: []uint8{50, 50}, err: errs.InvalidInput},
		{name: "zero step", times: []uint64{1, 2}, increments: []uint8{0, 100}, err: errs.InvalidInput},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cliffs, err := NewCliffs(tc.times, tc.increments)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cliffs)
		})
	}
}

func TestClaimableNoVesting(t *testing.T) {
	s := Schedule{Start: 100}
	entitlement := uint256.NewInt(33333)

	_, err := s.Claimable(entitlement, nil, 99)
	assert.ErrorIs(t, err, errs.TooEarly)

	claimable, err := s.Claimable(entitlement, nil, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(33333), claimable.Uint64())

	claimable, err = s.Claimable(entitlement, entitlement, 200)
	require.NoError(t, err)
	assert.True(t, claimable.IsZero())

	_, err = s.Claimable(new(uint256.Int), nil, 200)
	assert.ErrorIs(t, err, errs.NothingToWithdraw)
}

func TestClaimableLinear(t *testing.T) {
	s := Schedule{Start: 1000, LinearEnd: 1300}
	require.NoError(t, s.Validate())
	entitlement := uint256.NewInt(33333)

	_, err := s.Claimable(entitlement, nil, 999)
	assert.ErrorIs(t, err, errs.TooEarly)

	withdrawn := new(uint256.Int)
	steps := []struct {
		now      uint64
		expected uint64
	}{
		{1000, 0},
		{1001, 111},
		{1100, 11111 - 111},
		{1299, 33221 - 11111},
		{1300, 33333 - 33221},
		{5000, 0},
	}
	for _, step := range steps {
		claimable, err := s.Claimable(entitlement, withdrawn, step.now)
		require.NoError(t, err)
		assert.Equal(t, step.expected, claimable.Uint64(), "at %d", step.now)
		withdrawn.Add(withdrawn, claimable)
	}
	assert.Equal(t, entitlement, withdrawn)
}

func TestUnlockedLinearIsMonotonic(t *testing.T) {
	s := Schedule{Start: 50, LinearEnd: 1050}
	entitlement := uint256.MustFromDecimal("123456789012345678901234567")
	prev := new(uint256.Int)
	for now := uint64(0); now <= 1100; now += 7 {
		unlocked := s.Unlocked(entitlement, now)
		assert.True(t, prev.Cmp(unlocked) <= 0, "at %d", now)
		assert.True(t, unlocked.Cmp(entitlement) <= 0, "at %d", now)
		prev = unlocked
	}
	assert.Equal(t, entitlement, s.Unlocked(entitlement, 1050))
}

func TestClaimableCliff(t *testing.T) {
	cliffs, err := NewCliffs([]uint64{1000, 1100, 1200, 1300}, []uint8{10, 20, 30, 40})
	require.NoError(t, err)
	s := Schedule{Start: 1000, Cliffs: cliffs}
	require.NoError(t, s.Validate())

	entitlement := uint256.NewInt(33333)
	withdrawn := new(uint256.Int)
	steps := []struct {
		now      uint64
		expected uint64
	}{
		{1000, 3333},
		{1050, 0},
		{1100, 9999 - 3333},
		{1199, 0},
		{1200, 19999 - 9999},
		{1300, 33333 - 19999},
		{9999, 0},
	}
	for _, step := range steps {
		claimable, err := s.Claimable(entitlement, withdrawn, step.now)
		require.NoError(t, err)
		assert.Equal(t, step.expected, claimable.Uint64(), "at %d", step.now)
		withdrawn.Add(withdrawn, claimable)
	}
	assert.Equal(t, entitlement, withdrawn)
}

func TestCliffBeforeFirstUnlock(t *testing.T) {
	cliffs, err := NewCliffs([]uint64{2000, 3000}, []uint8{50, 50})
	require.NoError(t, err)
	s := Schedule{Start: 1000, Cliffs: cliffs}

	claimable, err := s.Claimable(uint256.NewInt(10), nil, 1500)
	require.NoError(t, err)
	assert.True(t, claimable.IsZero())
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Schedule{Start: 10, LinearEnd: 10}.Validate(), errs.InvalidInput)
	assert.ErrorIs(t, Schedule{Start: 10, LinearEnd: 20, Cliffs: []Cliff{{20, 100}}}.Validate(), errs.InvalidInput)
	assert.ErrorIs(t, Schedule{Start: 10, Cliffs: []Cliff{{20, 50}}}.Validate(), errs.InvalidInput)
	assert.NoError(t, Schedule{Start: 10}.Validate())
}
