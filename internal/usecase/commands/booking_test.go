//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"guildhall/internal/domain/booking"
	"guildhall/internal/domain/member"
	"guildhall/internal/domain/quota"
	"guildhall/internal/domain/room"
	"guildhall/internal/domain/schedule"
	reqdto "guildhall/internal/handler/dto/request"
	"guildhall/internal/pkg/clock"
	"guildhall/internal/pkg/errs"
	"guildhall/internal/usecase/commands"
	"guildhall/internal/usecase/queries"
	"guildhall/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingQueries struct {
	view *queries.BookingView
}

func (s *stubBookingQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	if s.view != nil {
		return s.view, nil
	}
	return &queries.BookingView{ID: id}, nil
}

func (s *stubBookingQueries) ListByOrganizer(_ context.Context, _ uuid.UUID) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (s *stubBookingQueries) ListForRoomDay(_ context.Context, _ uuid.UUID, _ schedule.Date) ([]*queries.BookingListItem, error) {
	return nil, nil
}

type bookingFixture struct {
	uow         *fakeUoW
	cmds        commands.BookingCommands
	clk         *clock.MockClock
	organizerID uuid.UUID
	roomID      uuid.UUID
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	uow := newFakeUoW()
	clk := clock.NewMockClock(time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC))

	organizerID, _ := seedOrganizerWithPlan(uow, 2, 500)
	roomID := uuid.New()
	uow.reads.rooms[roomID] = &shared.RoomSnapshot{
		ID:       roomID,
		Name:     "The Dungeon",
		Capacity: 6,
		Status:   room.StatusAvailable,
	}

	billingCmds := commands.NewBillingCommands(uow, clk, time.UTC)
	return &bookingFixture{
		uow:         uow,
		cmds:        commands.NewBookingCommands(uow, &stubBookingQueries{}, billingCmds, clk, time.UTC),
		clk:         clk,
		organizerID: organizerID,
		roomID:      roomID,
	}
}

func createRequest(f *bookingFixture, mutate func(*reqdto.CreateBookingRequest)) reqdto.CreateBookingRequest {
	req := reqdto.CreateBookingRequest{
		RoomID:    f.roomID,
		Date:      "2026-03-10",
		StartTime: "18:00",
		EndTime:   "22:30",
		Title:     "Game night",
	}
	if mutate != nil {
		mutate(&req)
	}
	return req
}

func TestCreateBooking(t *testing.T) {
	t.Run("books a free canonical slot", func(t *testing.T) {
		f := newBookingFixture(t)

		view, err := f.cmds.Create(context.Background(), createRequest(f, nil), f.organizerID)
		require.NoError(t, err)
		require.NotNil(t, view)

		require.Len(t, f.uow.bookingRepo.created, 1)
		created := f.uow.bookingRepo.created[0]
		assert.Equal(t, f.roomID, created.RoomID())
		assert.Equal(t, "18:00", created.Start().String())
		assert.Equal(t, []uuid.UUID{f.organizerID}, created.Participants())

		require.Len(t, f.uow.bookingRepo.locked, 1)
		assert.Equal(t, f.roomID.String()+"/2026-03-10", f.uow.bookingRepo.locked[0])
	})

	t.Run("rejects a non-canonical slot", func(t *testing.T) {
		f := newBookingFixture(t)

		req := createRequest(f, func(r *reqdto.CreateBookingRequest) { r.StartTime = "19:00" })
		_, err := f.cmds.Create(context.Background(), req, f.organizerID)
		assert.ErrorIs(t, err, errs.ErrInvalidSlot)
	})

	t.Run("pending members cannot organize", func(t *testing.T) {
		f := newBookingFixture(t)
		f.uow.reads.users[f.organizerID].Status = member.StatusPending

		_, err := f.cmds.Create(context.Background(), createRequest(f, nil), f.organizerID)
		assert.ErrorIs(t, err, errs.ErrMemberNotEligible)
	})

	t.Run("visitors cannot organize", func(t *testing.T) {
		f := newBookingFixture(t)
		f.uow.reads.users[f.organizerID].Category = member.CategoryVisitor

		_, err := f.cmds.Create(context.Background(), createRequest(f, nil), f.organizerID)
		assert.ErrorIs(t, err, errs.ErrMemberNotEligible)
	})

	t.Run("unavailable room", func(t *testing.T) {
		f := newBookingFixture(t)
		f.uow.reads.rooms[f.roomID].Status = room.StatusMaintenance

		_, err := f.cmds.Create(context.Background(), createRequest(f, nil), f.organizerID)
		assert.ErrorIs(t, err, errs.ErrRoomUnavailable)
	})

	t.Run("occupied slot is refused inside the transaction", func(t *testing.T) {
		f := newBookingFixture(t)
		date, _ := schedule.ParseDate("2026-03-10")
		_, end := schedule.SlotEnd(date, schedule.EveningStart)
		f.uow.reads.spans = []schedule.Span{{Date: date, Start: schedule.EveningStart, End: end}}

		_, err := f.cmds.Create(context.Background(), createRequest(f, nil), f.organizerID)
		assert.ErrorIs(t, err, errs.ErrSlotTaken)
		assert.Empty(t, f.uow.bookingRepo.created)
	})

	t.Run("weekly quota is enforced", func(t *testing.T) {
		f := newBookingFixture(t)
		f.uow.reads.plans[*f.uow.reads.users[f.organizerID].PlanID].WeeklyQuota = 1
		monday, _ := schedule.ParseDate("2026-03-09")
		f.uow.reads.quotaEntries = []quota.Entry{
			{Organizer: f.organizerID, Date: monday, Start: schedule.MorningStart},
		}

		_, err := f.cmds.Create(context.Background(), createRequest(f, nil), f.organizerID)
		assert.ErrorIs(t, err, errs.ErrQuotaExceeded)
	})

	t.Run("capacity counts guests", func(t *testing.T) {
		f := newBookingFixture(t)

		req := createRequest(f, func(r *reqdto.CreateBookingRequest) {
			r.Guests = []string{"Ana", "Rui", "Eva", "Tiago", "Nuno", "Sofia"}
		})
		_, err := f.cmds.Create(context.Background(), req, f.organizerID)
		assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
	})

	t.Run("an over-allowance booking raises a guest charge after commit", func(t *testing.T) {
		f := newBookingFixture(t)

		req := createRequest(f, func(r *reqdto.CreateBookingRequest) {
			r.Guests = []string{"Ana", "Rui", "Eva"}
		})
		_, err := f.cmds.Create(context.Background(), req, f.organizerID)
		require.NoError(t, err)

		// the created booking is not visible through fakeReads, so the
		// dispatch sees a deleted booking and quietly does nothing
		assert.Empty(t, f.uow.txRepo.upserted)

		// make the booking visible and re-dispatch, as the command does
		created := f.uow.bookingRepo.created[0]
		f.uow.reads.bookings[created.ID()] = &shared.BookingSnapshot{
			ID:          created.ID(),
			RoomID:      created.RoomID(),
			OrganizerID: created.OrganizerID(),
			Date:        created.Date(),
			Start:       created.Start(),
			End:         created.End(),
			Title:       created.Title(),
			Guests:      created.Guests(),
			Status:      created.Status(),
		}
		billingCmds := commands.NewBillingCommands(f.uow, f.clk, time.UTC)
		require.NoError(t, billingCmds.HandleBookingWrite(context.Background(), created.ID()))
		require.Len(t, f.uow.txRepo.upserted, 1)
		assert.Equal(t, int64(500), f.uow.txRepo.upserted[0].AmountCents())
	})
}

func seedExistingBooking(f *bookingFixture) uuid.UUID {
	date, _ := schedule.ParseDate("2026-03-10")
	_, end := schedule.SlotEnd(date, schedule.EveningStart)
	id := uuid.New()
	f.uow.reads.bookings[id] = &shared.BookingSnapshot{
		ID:           id,
		RoomID:       f.roomID,
		OrganizerID:  f.organizerID,
		Date:         date,
		Start:        schedule.EveningStart,
		End:          end,
		Title:        "Game night",
		Participants: []uuid.UUID{f.organizerID},
		Status:       booking.StatusConfirmed,
	}
	return id
}

func TestUpdateBooking(t *testing.T) {
	t.Run("only the organizer or an administrator may edit", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seedExistingBooking(f)

		title := "Renamed"
		err := f.cmds.Update(context.Background(), id, reqdto.UpdateBookingRequest{Title: &title}, uuid.New(), member.RoleMember)
		assert.ErrorIs(t, err, errs.ErrNotBookingMember)
	})

	t.Run("administrator may edit someone else's booking", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seedExistingBooking(f)

		title := "Renamed"
		err := f.cmds.Update(context.Background(), id, reqdto.UpdateBookingRequest{Title: &title}, uuid.New(), member.RoleAdministrator)
		require.NoError(t, err)

		require.Len(t, f.uow.bookingRepo.updated, 1)
		assert.Equal(t, "Renamed", f.uow.bookingRepo.updated[0].Title())
	})

	t.Run("editor may edit someone else's booking", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seedExistingBooking(f)

		title := "Renamed"
		err := f.cmds.Update(context.Background(), id, reqdto.UpdateBookingRequest{Title: &title}, uuid.New(), member.RoleEditor)
		require.NoError(t, err)
	})

	t.Run("cancelled bookings read as gone", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seedExistingBooking(f)
		f.uow.reads.bookings[id].Status = booking.StatusCancelled

		title := "Renamed"
		err := f.cmds.Update(context.Background(), id, reqdto.UpdateBookingRequest{Title: &title}, f.organizerID, member.RoleMember)
		assert.ErrorIs(t, err, errs.ErrBookingNotFound)
	})

	t.Run("dropping every participant deletes the booking", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seedExistingBooking(f)

		empty := []uuid.UUID{}
		err := f.cmds.Update(context.Background(), id, reqdto.UpdateBookingRequest{Participants: &empty}, f.organizerID, member.RoleMember)
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{id}, f.uow.bookingRepo.deleted)
		assert.Empty(t, f.uow.bookingRepo.updated)
	})

	t.Run("replacing attendees keeps the capacity rule", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seedExistingBooking(f)

		participants := []uuid.UUID{f.organizerID}
		guests := []string{"Ana", "Rui", "Eva", "Tiago", "Nuno", "Sofia"}
		err := f.cmds.Update(context.Background(), id, reqdto.UpdateBookingRequest{
			Participants: &participants,
			Guests:       &guests,
		}, f.organizerID, member.RoleMember)
		assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("organizer cancels with notice", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seedExistingBooking(f)
		f.clk.Set(time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC))

		require.NoError(t, f.cmds.Cancel(context.Background(), id, f.organizerID, member.RoleMember))

		require.Len(t, f.uow.bookingRepo.updated, 1)
		assert.True(t, f.uow.bookingRepo.updated[0].IsCancelled())
	})

	t.Run("organizer is blocked inside the lead time", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seedExistingBooking(f)
		f.clk.Set(time.Date(2026, time.March, 10, 16, 0, 0, 0, time.UTC))

		err := f.cmds.Cancel(context.Background(), id, f.organizerID, member.RoleMember)
		assert.ErrorIs(t, err, errs.ErrCancelTooLate)
	})

	t.Run("administrator bypasses the lead time", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seedExistingBooking(f)
		f.clk.Set(time.Date(2026, time.March, 10, 17, 30, 0, 0, time.UTC))

		require.NoError(t, f.cmds.Cancel(context.Background(), id, uuid.New(), member.RoleAdministrator))
	})

	t.Run("strangers cannot cancel", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seedExistingBooking(f)

		err := f.cmds.Cancel(context.Background(), id, uuid.New(), member.RoleMember)
		assert.ErrorIs(t, err, errs.ErrNotBookingMember)
	})
}
