package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Room errors
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomUnavailable = errors.New("room not available for booking")

	// Booking errors
	ErrBookingNotFound   = errors.New("booking not found")
	ErrSlotTaken         = errors.New("slot already taken")
	ErrInvalidSlot       = errors.New("invalid slot choice")
	ErrCapacityExceeded  = errors.New("room capacity exceeded")
	ErrQuotaExceeded     = errors.New("plan quota exceeded")
	ErrCancelTooLate     = errors.New("too late to cancel booking")
	ErrNotBookingMember  = errors.New("not a member of this booking")
	ErrInconsistentData  = errors.New("inconsistent booking data")
	ErrMemberNotEligible = errors.New("member not eligible to organize bookings")

	// Billing errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrAlreadyPaid         = errors.New("transaction already paid")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
