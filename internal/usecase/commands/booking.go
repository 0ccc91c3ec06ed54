package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"guildhall/internal/domain/booking"
	"guildhall/internal/domain/member"
	"guildhall/internal/domain/quota"
	"guildhall/internal/domain/room"
	"guildhall/internal/domain/schedule"
	reqdto "guildhall/internal/handler/dto/request"
	"guildhall/internal/infra"
	"guildhall/internal/pkg/clock"
	"guildhall/internal/pkg/errs"
	"guildhall/internal/usecase/queries"
	"guildhall/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingCommands interface {
	Create(ctx context.Context, req reqdto.CreateBookingRequest, organizerID uuid.UUID) (*queries.BookingView, error)
	Update(ctx context.Context, bookingID uuid.UUID, req reqdto.UpdateBookingRequest, actorID uuid.UUID, actorRole member.Role) error
	Cancel(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, actorRole member.Role) error
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	billing        BillingCommands
	clock          clock.Clock
	loc            *time.Location
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	billing BillingCommands,
	clk clock.Clock,
	loc *time.Location,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		billing:        billing,
		clock:          clk,
		loc:            loc,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, req reqdto.CreateBookingRequest, organizerID uuid.UUID) (*queries.BookingView, error) {
	slot, err := req.ParseSlot()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSlot)
	}

	reads := c.uow.CommandReads()

	organizer, err := reads.UserByID(ctx, organizerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to load organizer")
	}
	if !organizer.Eligible() || organizer.PlanID == nil {
		return nil, errs.ErrMemberNotEligible
	}

	planSnap, err := reads.PlanByID(ctx, *organizer.PlanID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrPlanNotFound
		}
		return nil, errs.Wrap(err, "failed to load plan")
	}

	roomSnap, err := reads.RoomByID(ctx, req.RoomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRoomNotFound
		}
		return nil, errs.Wrap(err, "failed to load room")
	}
	if roomSnap.Status != room.StatusAvailable {
		return nil, errs.ErrRoomUnavailable
	}

	b, err := booking.New(
		req.RoomID, organizerID,
		slot.Date, slot.Start, slot.End,
		req.Title, req.GetDescription(),
		req.Participants, req.Guests,
		roomSnap.Capacity,
	)
	if err != nil {
		return nil, mapBookingError(err)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Serialize writers on the room/date pair, then re-check availability
		// and quotas against committed state.
		if err := tx.Bookings().LockRoomDate(ctx, tx.DB(), b.RoomID(), b.Date()); err != nil {
			return err
		}

		spans, err := tx.Reads().RoomSpans(ctx, b.RoomID(), b.Date().Prev(), b.Date().Next())
		if err != nil {
			return err
		}
		occ, err := schedule.BuildOccupancy(spans)
		if err != nil {
			return errs.Mark(err, errs.ErrInconsistentData)
		}
		if !occ.SpanFree(b.Span()) {
			return errs.ErrSlotTaken
		}

		from, to := quotaWindow(b.Date())
		entries, err := tx.Reads().QuotaEntries(ctx, organizerID, from, to)
		if err != nil {
			return err
		}
		if err := quota.Validate(planSnap.Limits(), organizerID, b.Date(), b.Start(), entries); err != nil {
			return errs.Mark(err, errs.ErrQuotaExceeded)
		}

		_, err = tx.Bookings().Create(ctx, tx.DB(), b)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := c.billing.HandleBookingWrite(ctx, b.ID()); err != nil {
		slog.Warn("guest charge dispatch failed", "booking_id", b.ID(), "error", err.Error())
	}

	return c.bookingQueries.GetByID(ctx, b.ID())
}

func (c *bookingCommandsImpl) Update(ctx context.Context, bookingID uuid.UUID, req reqdto.UpdateBookingRequest, actorID uuid.UUID, actorRole member.Role) error {
	reads := c.uow.CommandReads()

	snap, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrBookingNotFound
		}
		return errs.Wrap(err, "failed to load booking")
	}
	canEdit := snap.OrganizerID == actorID ||
		actorRole == member.RoleAdministrator ||
		actorRole == member.RoleEditor
	if !canEdit {
		return errs.ErrNotBookingMember
	}

	b := snap.Entity()
	if b.IsCancelled() {
		return errs.ErrBookingNotFound
	}

	if req.Title != nil {
		if err := b.Rename(*req.Title); err != nil {
			return mapBookingError(err)
		}
	}
	if req.Description != nil {
		b.SetDescription(*req.Description)
	}

	deleteBooking := false
	if req.Participants != nil || req.Guests != nil {
		participants := b.Participants()
		guests := b.Guests()
		if req.Participants != nil {
			participants = *req.Participants
		}
		if req.Guests != nil {
			guests = *req.Guests
		}

		if len(participants) == 0 {
			// Removing the last participant deletes the booking outright.
			deleteBooking = true
		} else {
			roomSnap, err := reads.RoomByID(ctx, b.RoomID())
			if err != nil {
				return errs.Wrap(err, "failed to load room")
			}
			if err := b.ReplaceAttendees(participants, guests, roomSnap.Capacity); err != nil {
				return mapBookingError(err)
			}
		}
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if deleteBooking {
			return tx.Bookings().Delete(ctx, tx.DB(), b.ID())
		}
		return tx.Bookings().Update(ctx, tx.DB(), b)
	})
	if err != nil {
		return err
	}

	if err := c.billing.HandleBookingWrite(ctx, b.ID()); err != nil {
		slog.Warn("guest charge dispatch failed", "booking_id", b.ID(), "error", err.Error())
	}
	return nil
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, actorRole member.Role) error {
	reads := c.uow.CommandReads()

	snap, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrBookingNotFound
		}
		return errs.Wrap(err, "failed to load booking")
	}

	isAdmin := actorRole == member.RoleAdministrator
	if snap.OrganizerID != actorID && !isAdmin {
		return errs.ErrNotBookingMember
	}

	b := snap.Entity()
	if err := b.Cancel(c.clock.Now(), c.loc, isAdmin); err != nil {
		return mapBookingError(err)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Update(ctx, tx.DB(), b)
	})
}

// quotaWindow is the date range that covers both the ISO week and the calendar
// month containing d, so one entries fetch serves every quota check.
func quotaWindow(d schedule.Date) (schedule.Date, schedule.Date) {
	from := schedule.NewDate(d.Year(), d.Month(), 1)
	to := schedule.NewDate(d.Year(), d.Month()+1, 0)

	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	weekStart := d.AddDays(-(wd - 1))
	weekEnd := weekStart.AddDays(6)

	if weekStart.Before(from) {
		from = weekStart
	}
	if weekEnd.After(to) {
		to = weekEnd
	}
	return from, to
}

func mapBookingError(err error) error {
	switch {
	case errors.Is(err, booking.ErrNotCanonicalStart), errors.Is(err, booking.ErrInvalidEnd):
		return errs.Mark(err, errs.ErrInvalidSlot)
	case errors.Is(err, booking.ErrCapacityExceeded):
		return errs.Mark(err, errs.ErrCapacityExceeded)
	case errors.Is(err, booking.ErrCancelTooLate):
		return errs.Mark(err, errs.ErrCancelTooLate)
	default:
		return err
	}
}
