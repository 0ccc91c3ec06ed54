package commands

import (
	"context"
	"log/slog"
	"time"

	"guildhall/internal/domain/billing"
	"guildhall/internal/domain/booking"
	"guildhall/internal/domain/member"
	"guildhall/internal/domain/quota"
	"guildhall/internal/domain/schedule"
	reqdto "guildhall/internal/handler/dto/request"
	"guildhall/internal/infra"
	"guildhall/internal/pkg/clock"
	"guildhall/internal/pkg/errs"
	"guildhall/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransactionType = errs.New("invalid transaction type")
	ErrInvalidDueDate         = errs.New("invalid due date")
)

// BatchReport summarizes one scheduled billing run. Failures are isolated per
// member; one bad row never aborts the batch.
type BatchReport struct {
	Processed int
	Succeeded int
	Failed    int
}

type BillingCommands interface {
	// HandleBookingWrite recomputes the extra-guest charge for a booking after
	// any create or edit. Safe to call repeatedly: the charge is upserted under
	// a key derived from the booking id.
	HandleBookingWrite(ctx context.Context, bookingID uuid.UUID) error
	GenerateMonthlyInvoices(ctx context.Context) (*BatchReport, error)
	FlagOverdue(ctx context.Context) (*BatchReport, error)
	ConfirmPayment(ctx context.Context, transactionID uuid.UUID, approved bool) error
	MarkPaid(ctx context.Context, transactionID uuid.UUID) error
	CreateManualCharge(ctx context.Context, req reqdto.CreateTransactionRequest) (uuid.UUID, error)
}

type billingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	loc   *time.Location
}

func NewBillingCommands(uow shared.UnitOfWork, clk clock.Clock, loc *time.Location) BillingCommands {
	return &billingCommandsImpl{
		uow:   uow,
		clock: clk,
		loc:   loc,
	}
}

func (b *billingCommandsImpl) HandleBookingWrite(ctx context.Context, bookingID uuid.UUID) error {
	reads := b.uow.CommandReads()

	snap, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Booking was deleted between commit and dispatch; nothing to bill.
			return nil
		}
		return errs.Wrap(err, "failed to load booking for billing")
	}
	if snap.Status == booking.StatusCancelled {
		return nil
	}

	organizer, err := reads.UserByID(ctx, snap.OrganizerID)
	if err != nil {
		return errs.Wrap(err, "failed to load organizer for billing")
	}
	if organizer.PlanID == nil {
		return nil
	}
	planSnap, err := reads.PlanByID(ctx, *organizer.PlanID)
	if err != nil {
		return errs.Wrap(err, "failed to load plan for billing")
	}
	if planSnap.ExtraInvitePriceCents <= 0 {
		return nil
	}

	// Prior guests are the ones brought up to this booking's own date; bookings
	// later in the cycle carry their own charges.
	cycleStart := billing.CycleStart(snap.Date)
	prior, err := reads.GuestTotalInCycle(ctx, snap.OrganizerID, cycleStart, snap.Date, snap.ID)
	if err != nil {
		return errs.Wrap(err, "failed to sum cycle guests")
	}

	chargeable := quota.ExtraGuestsToCharge(planSnap.Invites, prior, len(snap.Guests))
	if chargeable == 0 {
		return nil
	}

	charge, err := billing.NewGuestCharge(snap.ID, snap.OrganizerID, chargeable, planSnap.ExtraInvitePriceCents)
	if err != nil {
		return errs.Wrap(err, "failed to build guest charge")
	}

	return b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Transactions().UpsertByChargeKey(ctx, tx.DB(), charge)
		return err
	})
}

func (b *billingCommandsImpl) GenerateMonthlyInvoices(ctx context.Context) (*BatchReport, error) {
	today := schedule.DateOf(b.clock.Now().In(b.loc))
	due := billing.InvoiceDueDate(today)
	reads := b.uow.CommandReads()

	members, err := reads.BillableMembers(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list billable members")
	}

	report := &BatchReport{}
	for _, m := range members {
		report.Processed++

		if m.PriceCents == 0 {
			report.Succeeded++
			continue
		}

		exists, err := reads.MonthlyInvoiceExists(ctx, m.ID, due)
		if err != nil {
			slog.Warn("invoice lookup failed", "user_id", m.ID, "error", err.Error())
			report.Failed++
			continue
		}
		if exists {
			report.Succeeded++
			continue
		}

		invoice, err := billing.NewMonthlyInvoice(m.ID, m.PlanName, m.PriceCents, due)
		if err != nil {
			slog.Warn("invoice build failed", "user_id", m.ID, "error", err.Error())
			report.Failed++
			continue
		}

		err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Transactions().Create(ctx, tx.DB(), invoice)
			return err
		})
		if err != nil {
			slog.Warn("invoice creation failed", "user_id", m.ID, "error", err.Error())
			report.Failed++
			continue
		}
		report.Succeeded++
	}

	slog.Info("monthly invoice run finished",
		"due", due.String(),
		"processed", report.Processed,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
	)
	return report, nil
}

func (b *billingCommandsImpl) FlagOverdue(ctx context.Context) (*BatchReport, error) {
	today := schedule.DateOf(b.clock.Now().In(b.loc))
	reads := b.uow.CommandReads()

	candidates, err := reads.DelinquencyCandidates(ctx, today)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list delinquency candidates")
	}

	report := &BatchReport{}
	for _, c := range candidates {
		report.Processed++

		err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if _, err := tx.Transactions().MarkOverdueBefore(ctx, tx.DB(), c.ID, today); err != nil {
				return err
			}
			if c.Status == member.StatusActive {
				return tx.Users().SetStatus(ctx, tx.DB(), c.ID, member.StatusPending)
			}
			return nil
		})
		if err != nil {
			slog.Warn("overdue flagging failed", "user_id", c.ID, "error", err.Error())
			report.Failed++
			continue
		}
		report.Succeeded++
	}

	slog.Info("overdue scan finished",
		"as_of", today.String(),
		"processed", report.Processed,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
	)
	return report, nil
}

func (b *billingCommandsImpl) ConfirmPayment(ctx context.Context, transactionID uuid.UUID, approved bool) error {
	if !approved {
		slog.Info("payment declined by provider", "transaction_id", transactionID)
		return nil
	}
	return b.markPaid(ctx, transactionID)
}

func (b *billingCommandsImpl) MarkPaid(ctx context.Context, transactionID uuid.UUID) error {
	return b.markPaid(ctx, transactionID)
}

func (b *billingCommandsImpl) markPaid(ctx context.Context, transactionID uuid.UUID) error {
	reads := b.uow.CommandReads()

	snap, err := reads.TransactionByID(ctx, transactionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrTransactionNotFound
		}
		return errs.Wrap(err, "failed to load transaction")
	}
	if snap.Status == billing.StatusPaid {
		return errs.ErrAlreadyPaid
	}

	now := b.clock.Now()
	return b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Transactions().MarkPaid(ctx, tx.DB(), snap.ID, now); err != nil {
			return err
		}

		userSnap, err := tx.Reads().UserByID(ctx, snap.UserID)
		if err != nil {
			return err
		}
		if userSnap.Status != member.StatusPending {
			return nil
		}

		// A delinquent member comes back once every monthly invoice is settled.
		pending, err := tx.Reads().PendingMonthlyCount(ctx, snap.UserID)
		if err != nil {
			return err
		}
		if pending == 0 {
			return tx.Users().SetStatus(ctx, tx.DB(), snap.UserID, member.StatusActive)
		}
		return nil
	})
}

func (b *billingCommandsImpl) CreateManualCharge(ctx context.Context, req reqdto.CreateTransactionRequest) (uuid.UUID, error) {
	typ := billing.Type(req.Type)
	if !typ.IsValid() {
		return uuid.Nil, ErrInvalidTransactionType
	}

	var due *schedule.Date
	if req.DueDate != nil {
		d, err := schedule.ParseDate(*req.DueDate)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrInvalidDueDate)
		}
		due = &d
	}

	reads := b.uow.CommandReads()
	if _, err := reads.UserByID(ctx, req.UserID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrUserNotFound
		}
		return uuid.Nil, errs.Wrap(err, "failed to load user")
	}

	charge, err := billing.NewManualCharge(req.UserID, req.Description, req.AmountCents, typ, due)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to build transaction")
	}

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Transactions().Create(ctx, tx.DB(), charge)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return charge.ID(), nil
}
