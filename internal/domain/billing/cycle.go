package billing

import (
	"guildhall/internal/domain/schedule"

	"github.com/google/uuid"
)

// CycleDay is the day of month the billing cycle renews on.
const CycleDay = 15

// CycleStart returns the start of the billing cycle containing today: the
// 15th of this month, or of the previous month when today is before the 15th.
func CycleStart(today schedule.Date) schedule.Date {
	if today.Day() < CycleDay {
		return schedule.NewDate(today.Year(), today.Month()-1, CycleDay)
	}
	return schedule.NewDate(today.Year(), today.Month(), CycleDay)
}

// InvoiceDueDate is the 15th of the month the invoice run happens in.
func InvoiceDueDate(today schedule.Date) schedule.Date {
	return schedule.NewDate(today.Year(), today.Month(), CycleDay)
}

// ChargeKey is the deterministic transaction key for a booking's extra-guest
// charge. Re-delivered booking-write events upsert under the same key, which
// is the whole idempotency mechanism; there is no lock.
func ChargeKey(bookingID uuid.UUID) string {
	return "charge_" + bookingID.String()
}

// MonthLabel formats the month a monthly invoice covers.
func MonthLabel(d schedule.Date) string {
	return d.Time().Format("January 2006")
}
