package errs

import "github.com/cockroachdb/errors"

// ErrorKind identifies a kind of rejected operation.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound      = ErrorKind("Not Found")
	InvalidInput  = ErrorKind("invalid input")
	InternalError = ErrorKind("internal error")
	Unsupported   = ErrorKind("unsupported")

	// NotAuthorized is returned when a role or ownership check failed.
	NotAuthorized = ErrorKind("not authorized")

	SaleNotActive = ErrorKind("sale is not active")
	TierNotActive = ErrorKind("tier is not active")
	TooEarly      = ErrorKind("too early")

	PurchaseHalted    = ErrorKind("purchase is halted")
	CapExceeded       = ErrorKind("cap exceeded")
	ExceedsAllocation = ErrorKind("exceeds allocation")
	ExceedsCap        = ErrorKind("exceeds cap")
	NonIntegerAmount  = ErrorKind("amount is not an integer number of sale tokens")
	BelowMinPayment   = ErrorKind("payment below minimum")
	NotWhitelisted    = ErrorKind("not whitelisted")

	AlreadyCashed     = ErrorKind("already cashed")
	AlreadyWithdrawn  = ErrorKind("already withdrawn")
	NothingToWithdraw = ErrorKind("nothing to withdraw")

	// UseGiveawayPath and NotAGiveaway are returned when the withdraw or purchase variant does not match the sale's price mode.
	UseGiveawayPath       = ErrorKind("use giveaway withdrawal for zero price sale")
	UseVestedGiveawayPath = ErrorKind("use vested giveaway withdrawal")
	NotAGiveaway          = ErrorKind("not a giveaway")

	InvalidPromoCode   = ErrorKind("invalid promo code")
	InvalidDiscount    = ErrorKind("invalid discount percentage")
	PromoCodeExists    = ErrorKind("promo code already exists")
	NoRewardsAvailable = ErrorKind("no rewards available")

	InvalidRange        = ErrorKind("invalid range")
	InsufficientBalance = ErrorKind("insufficient balance")

	TokenCollision       = ErrorKind("sale token and payment token are the same")
	ZeroInputAtZeroPrice = ErrorKind("payment token and max payment must be set for a priced sale")
	ZeroAddress          = ErrorKind("zero address")

	AlreadySet                    = ErrorKind("already set")
	ScheduleLocked                = ErrorKind("schedule change would reduce unlocked amount")
	OwnershipRenunciationDisabled = ErrorKind("ownership renunciation is disabled")

	OverflowUint64  = ErrorKind("overflow uint64")
	OverflowUint128 = ErrorKind("overflow uint128")
	OverflowUint256 = ErrorKind("overflow uint256")
)

// Role check failures. All of them are also NotAuthorized.
const (
	NotOwner                  = RoleError("caller is not the owner")
	NotFunder                 = RoleError("caller is not the funder")
	NotCasherOrOwner          = RoleError("caller is not the casher or owner")
	NotWhitelistSetterOrOwner = RoleError("caller is not the whitelist setter or owner")
	NotOperator               = RoleError("caller is not an operator or owner")
)

// RoleError is a failed role check. It matches NotAuthorized with both the
// standard library and cockroachdb errors.Is.
type RoleError string

func (e RoleError) Error() string {
	return string(e)
}

func (e RoleError) Is(target error) bool {
	return target == NotAuthorized
}

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// rejections are the kinds a sale engine returns for an operation that was
// refused without side effects.
var rejections = []error{
	InvalidInput, NotAuthorized, SaleNotActive, TierNotActive, TooEarly, PurchaseHalted,
	CapExceeded, ExceedsAllocation, ExceedsCap, NonIntegerAmount, BelowMinPayment, NotWhitelisted,
	AlreadyCashed, AlreadyWithdrawn, NothingToWithdraw, UseGiveawayPath, UseVestedGiveawayPath,
	NotAGiveaway, InvalidPromoCode, InvalidDiscount, PromoCodeExists, NoRewardsAvailable,
	InvalidRange, InsufficientBalance, TokenCollision, ZeroInputAtZeroPrice, ZeroAddress,
	AlreadySet, ScheduleLocked, OwnershipRenunciationDisabled, OverflowUint128, OverflowUint256,
}

// IsRejection reports whether err is a domain rejection rather than an infrastructure failure.
func IsRejection(err error) bool {
	var role RoleError
	return errors.As(err, &role) || errors.IsAny(err, rejections...)
}
