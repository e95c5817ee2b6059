package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/library-membership/internal/model"
	"github.com/iliyamo/library-membership/internal/repository"
	"github.com/iliyamo/library-membership/internal/service"
)

func TestAddRejectsDuplicateAadhar(t *testing.T) {
	f := newFixture(t)
	f.addMember(t, "A", "9000000001", "111")

	_, err := f.memberSvc.Add(f.ctx, memberInput("B", "9000000002", "111"))
	require.ErrorIs(t, err, repository.ErrDuplicateKey)

	members, err := f.memberSvc.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestAddIgnoresSeat(t *testing.T) {
	f := newFixture(t)
	f.addSeats(t, "S1")

	in := memberInput("A", "9000000001", "111")
	in.Seat = ptr("S1")
	m, err := f.memberSvc.Add(f.ctx, in)
	require.NoError(t, err)
	assert.Nil(t, m.Seat)

	stored, err := f.members.FindByID(f.ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Seat)

	s1 := f.seat(t, "S1")
	assert.Empty(t, s1.Members)
	assert.False(t, s1.IsOccupied)
	f.requireConsistent(t)
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name string
		in   service.MemberInput
		want []string
	}{
		{
			name: "missing required fields",
			in:   service.MemberInput{},
			want: []string{"name is required", "contact is required", "aadhar is required", "shift is required"},
		},
		{
			name: "unknown shift and negative fees",
			in: func() service.MemberInput {
				in := memberInput("A", "1", "111")
				in.Shift = ptr("Weekend")
				in.MonthlyFees = ptr(-1.0)
				return in
			}(),
			want: []string{
				"shift must be one of: Morning, Afternoon, Evening, Night, Day, Custom",
				"monthlyFees must be at least 0",
			},
		},
		{
			name: "custom shift without times",
			in: func() service.MemberInput {
				in := memberInput("A", "1", "111")
				in.Shift = ptr(model.ShiftCustom)
				in.CustomEndTime = ptr("25:00")
				return in
			}(),
			want: []string{
				"customStartTime must be a HH:MM time for the Custom shift",
				"customEndTime must be a HH:MM time for the Custom shift",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.memberSvc.Add(f.ctx, tt.in)
			var verr *repository.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.ElementsMatch(t, tt.want, verr.Messages)
			assert.True(t, repository.IsValidation(err))
		})
	}
}

func TestAddTrimsAndClearsCustomTimes(t *testing.T) {
	f := newFixture(t)
	in := memberInput("  Asha  ", " 99 ", "111")
	in.CustomStartTime = ptr("06:00")
	in.CustomEndTime = ptr("10:00")

	m, err := f.memberSvc.Add(f.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Asha", m.Name)
	assert.Equal(t, "99", m.Contact)
	assert.Nil(t, m.CustomStartTime)
	assert.Nil(t, m.CustomEndTime)

	in = memberInput("Ravi", "98", "222")
	in.Shift = ptr(model.ShiftCustom)
	in.CustomStartTime = ptr("06:00")
	in.CustomEndTime = ptr("10:30")
	m, err = f.memberSvc.Add(f.ctx, in)
	require.NoError(t, err)
	require.NotNil(t, m.CustomStartTime)
	assert.Equal(t, "06:00", *m.CustomStartTime)
	assert.Equal(t, "10:30", *m.CustomEndTime)
}

func TestUpdateErrors(t *testing.T) {
	f := newFixture(t)
	f.addMember(t, "A", "1", "111")
	b := f.addMember(t, "B", "2", "222")

	_, err := f.memberSvc.Update(f.ctx, b.ID, service.MemberInput{Aadhar: ptr("111")})
	require.ErrorIs(t, err, repository.ErrDuplicateKey)

	_, err = f.memberSvc.Update(f.ctx, uuid.NewString(), service.MemberInput{Name: ptr("x")})
	require.ErrorIs(t, err, repository.ErrMemberNotFound)

	_, err = f.memberSvc.Update(f.ctx, "not-an-id", service.MemberInput{Name: ptr("x")})
	require.ErrorIs(t, err, repository.ErrInvalidID)

	_, err = f.memberSvc.Update(f.ctx, b.ID, service.MemberInput{Name: ptr("  ")})
	require.True(t, repository.IsValidation(err))

	stored, err := f.members.FindByID(f.ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", stored.Name)
	assert.Equal(t, "222", stored.Aadhar)
}

func TestUpdateKeepsOwnAadhar(t *testing.T) {
	f := newFixture(t)
	a := f.addMember(t, "A", "1", "111")

	got, err := f.memberSvc.Update(f.ctx, a.ID, service.MemberInput{Aadhar: ptr("111"), Name: ptr("A2")})
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Name)
}

func TestUpdateMovesSeat(t *testing.T) {
	f := newFixture(t)
	f.addSeats(t, "S1", "S2")
	a := f.addMember(t, "A", "1", "111")

	f.occupy(t, a, "S1")
	s1 := f.seat(t, "S1")
	require.Len(t, s1.Members, 1)
	assert.Equal(t, a.ID, s1.Members[0].MemberID)
	assert.True(t, s1.IsOccupied)
	f.requireConsistent(t)

	f.occupy(t, a, "S2")
	s1 = f.seat(t, "S1")
	s2 := f.seat(t, "S2")
	assert.False(t, s1.IsOccupied)
	assert.Empty(t, s1.Members)
	assert.True(t, s2.IsOccupied)
	require.Len(t, s2.Members, 1)
	assert.Equal(t, a.ID, s2.Members[0].MemberID)
	f.requireConsistent(t)
}

func TestUpdateClearsSeat(t *testing.T) {
	f := newFixture(t)
	f.addSeats(t, "S1")
	a := f.addMember(t, "A", "1", "111")
	f.occupy(t, a, "S1")

	got, err := f.memberSvc.Update(f.ctx, a.ID, service.MemberInput{Seat: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, got.Seat)
	assert.Empty(t, f.seat(t, "S1").Members)
	f.requireConsistent(t)
}

func TestUpdateAppendKeepsFirstOccupantMirrored(t *testing.T) {
	f := newFixture(t)
	f.addSeats(t, "S1")
	a := f.addMember(t, "A", "1", "111")
	b := f.addMember(t, "B", "2", "222")

	f.occupy(t, a, "S1")
	f.occupy(t, b, "S1")

	s1 := f.seat(t, "S1")
	require.Len(t, s1.Members, 2)
	assert.Equal(t, a.ID, s1.Members[0].MemberID)
	assert.Equal(t, b.ID, s1.Members[1].MemberID)
	assert.Equal(t, a.ID, *s1.MemberID)
	assert.Equal(t, "A", s1.MemberName)
	f.requireConsistent(t)
}

func TestUpdateRefreshesOccupantProfile(t *testing.T) {
	f := newFixture(t)
	f.addSeats(t, "S1")
	a := f.addMember(t, "A", "1", "111")
	f.occupy(t, a, "S1")
	occupiedAt := f.seat(t, "S1").Members[0].OccupiedDate

	_, err := f.memberSvc.Update(f.ctx, a.ID, service.MemberInput{
		Name:            ptr("Asha"),
		Contact:         ptr("777"),
		Shift:           ptr(model.ShiftCustom),
		CustomStartTime: ptr("06:00"),
		CustomEndTime:   ptr("09:00"),
	})
	require.NoError(t, err)

	s1 := f.seat(t, "S1")
	require.Len(t, s1.Members, 1)
	entry := s1.Members[0]
	assert.Equal(t, a.ID, entry.MemberID)
	assert.Equal(t, "Asha", entry.MemberName)
	assert.Equal(t, "777", entry.MemberContact)
	assert.Equal(t, model.ShiftCustom, entry.Shift)
	require.NotNil(t, entry.CustomStartTime)
	assert.Equal(t, "06:00", *entry.CustomStartTime)
	assert.Equal(t, "09:00", *entry.CustomEndTime)
	assert.True(t, occupiedAt.Equal(entry.OccupiedDate))
	assert.Equal(t, "Asha", s1.MemberName)
	assert.Equal(t, "777", s1.MemberContact)

	got, err := f.memberSvc.Update(f.ctx, a.ID, service.MemberInput{Shift: ptr(model.ShiftNight)})
	require.NoError(t, err)
	assert.Nil(t, got.CustomStartTime)
	entry = f.seat(t, "S1").Members[0]
	assert.Equal(t, model.ShiftNight, entry.Shift)
	assert.Nil(t, entry.CustomStartTime)
	assert.Nil(t, entry.CustomEndTime)
	f.requireConsistent(t)
}

func TestUpdateRefreshesDriftedSeats(t *testing.T) {
	f := newFixture(t)
	f.addSeats(t, "S1")
	a := f.addMember(t, "A", "1", "111")
	f.occupy(t, a, "S1")

	// S9 lists A although A never moved there.
	stale := model.Seat{SeatID: "S9", Members: []model.Occupant{a.Occupant(a.CreatedAt)}}
	stale.Normalize()
	f.seats.Put(stale)

	_, err := f.memberSvc.Update(f.ctx, a.ID, service.MemberInput{Name: ptr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", f.seat(t, "S9").Members[0].MemberName)
	assert.Equal(t, "Renamed", f.seat(t, "S9").MemberName)
	assert.Equal(t, "Renamed", f.seat(t, "S1").MemberName)
	f.requireConsistent(t)
}

func TestUpdateToUnknownSeatStillStoresMember(t *testing.T) {
	f := newFixture(t)
	a := f.addMember(t, "A", "1", "111")

	got, err := f.memberSvc.Update(f.ctx, a.ID, service.MemberInput{Seat: ptr("S404")})
	require.NoError(t, err)
	assert.Equal(t, "S404", got.SeatID())
}

func TestUpdateSucceedsWhenSeatSaveFails(t *testing.T) {
	f := newFixture(t)
	f.addSeats(t, "S1", "S2")
	a := f.addMember(t, "A", "1", "111")
	f.occupy(t, a, "S1")
	f.seats.failOn("S1")

	got, err := f.memberSvc.Update(f.ctx, a.ID, service.MemberInput{Seat: ptr("S2")})
	require.NoError(t, err)
	assert.Equal(t, "S2", got.SeatID())

	// S1 could not be released but S2 was still assigned.
	assert.True(t, f.seat(t, "S1").HasMember(a.ID))
	assert.True(t, f.seat(t, "S2").HasMember(a.ID))
}

func TestDeleteFreesSharedSeat(t *testing.T) {
	f := newFixture(t)
	f.addSeats(t, "S1")
	a := f.addMember(t, "A", "1", "111")
	b := f.addMember(t, "B", "2", "222")
	f.occupy(t, a, "S1")
	f.occupy(t, b, "S1")

	res, err := f.memberSvc.Delete(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, res.MemberID)
	assert.Equal(t, "A", res.MemberName)
	assert.Equal(t, "S1", res.SeatFreed)

	s1 := f.seat(t, "S1")
	require.Len(t, s1.Members, 1)
	assert.Equal(t, b.ID, s1.Members[0].MemberID)
	assert.True(t, s1.IsOccupied)
	assert.Equal(t, b.ID, *s1.MemberID)
	assert.Equal(t, "B", s1.MemberName)
	assert.Equal(t, "2", s1.MemberContact)
	f.requireConsistent(t)
	f.requireNoReference(t, a.ID)

	_, err = f.members.FindByID(f.ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
}

func TestDeleteCleansDriftedSeat(t *testing.T) {
	f := newFixture(t)
	a := f.addMember(t, "A", "1", "111")

	drifted := model.Seat{SeatID: "S3", Members: []model.Occupant{a.Occupant(a.CreatedAt)}}
	drifted.Normalize()
	f.seats.Put(drifted)

	res, err := f.memberSvc.Delete(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, service.NoSeat, res.SeatFreed)
	assert.Equal(t, 1, res.SeatsCleaned)

	s3 := f.seat(t, "S3")
	assert.Empty(t, s3.Members)
	assert.False(t, s3.IsOccupied)
	f.requireConsistent(t)
	f.requireNoReference(t, a.ID)
}

func TestDeleteFallsBackWhenSeatMissing(t *testing.T) {
	f := newFixture(t)
	a := f.addMember(t, "A", "1", "111")
	// A points at a seat that does not exist and sits on another one.
	_, err := f.memberSvc.Update(f.ctx, a.ID, service.MemberInput{Seat: ptr("GONE")})
	require.NoError(t, err)
	other := model.Seat{SeatID: "S5", Members: []model.Occupant{a.Occupant(a.CreatedAt)}}
	other.Normalize()
	f.seats.Put(other)

	res, err := f.memberSvc.Delete(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "GONE", res.SeatFreed)
	f.requireNoReference(t, a.ID)
	f.requireConsistent(t)
}

func TestDeleteRemovesEntriesBeyondAssignedSeat(t *testing.T) {
	f := newFixture(t)
	f.addSeats(t, "S1")
	a := f.addMember(t, "A", "1", "111")
	f.occupy(t, a, "S1")
	extra := model.Seat{SeatID: "S7", Members: []model.Occupant{a.Occupant(a.CreatedAt)}}
	extra.Normalize()
	f.seats.Put(extra)

	res, err := f.memberSvc.Delete(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.SeatsCleaned)
	f.requireNoReference(t, a.ID)
	f.requireConsistent(t)
}

func TestDeletePaymentsUseOrMatching(t *testing.T) {
	f := newFixture(t)
	a := f.addMember(t, "A", "9999", "111")
	other := uuid.NewString()

	for _, p := range []model.Payment{
		{MemberID: a.ID, MemberName: "A", MemberContact: "9999", Amount: 500},
		{MemberID: other, MemberName: "Someone", MemberContact: "9999", Amount: 300}, // contact collision
		{MemberID: uuid.NewString(), MemberName: "A", MemberContact: "1234", Amount: 200}, // name collision
		{MemberID: uuid.NewString(), MemberName: "Z", MemberContact: "5555", Amount: 100},
		{MemberID: uuid.NewString(), MemberName: "", MemberContact: "", Amount: 50},
	} {
		p := p
		require.NoError(t, f.payments.Create(f.ctx, &p))
	}

	res, err := f.memberSvc.Delete(f.ctx, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.PaymentsDeleted)

	left := f.payments.All()
	require.Len(t, left, 2)
	for _, p := range left {
		assert.NotEqual(t, "9999", p.MemberContact)
		assert.NotEqual(t, "A", p.MemberName)
	}
}

func TestDeleteErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.memberSvc.Delete(f.ctx, uuid.NewString())
	require.ErrorIs(t, err, repository.ErrMemberNotFound)

	_, err = f.memberSvc.Delete(f.ctx, "12345")
	require.ErrorIs(t, err, repository.ErrInvalidID)

	assert.Empty(t, f.events.events)
}

func TestDeleteContinuesPastSeatSaveFailure(t *testing.T) {
	f := newFixture(t)
	f.addSeats(t, "S1")
	a := f.addMember(t, "A", "1", "111")
	f.occupy(t, a, "S1")
	extra := model.Seat{SeatID: "S2", Members: []model.Occupant{a.Occupant(a.CreatedAt)}}
	extra.Normalize()
	f.seats.Put(extra)
	f.seats.failOn("S1")

	res, err := f.memberSvc.Delete(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "S1", res.SeatFreed)

	assert.True(t, f.seat(t, "S1").HasMember(a.ID), "failed save leaves S1 untouched")
	assert.False(t, f.seat(t, "S2").HasMember(a.ID), "S2 is still cleaned")
	_, err = f.members.FindByID(f.ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
}

func TestDeletePublishesEvent(t *testing.T) {
	f := newFixture(t)
	f.addSeats(t, "S1")
	a := f.addMember(t, "A", "1", "111")
	f.occupy(t, a, "S1")

	_, err := f.memberSvc.Delete(f.ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, f.events.events, 1)
	ev := f.events.events[0]
	assert.Equal(t, a.ID, ev.MemberID)
	assert.Equal(t, "A", ev.MemberName)
	assert.Equal(t, "S1", ev.SeatFreed)
	assert.Equal(t, 1, ev.SeatsCleaned)
	assert.NotEmpty(t, ev.DeletedAt)
}

func TestDeleteIgnoresPublishFailure(t *testing.T) {
	f := newFixture(t)
	f.events.err = assert.AnError
	a := f.addMember(t, "A", "1", "111")

	_, err := f.memberSvc.Delete(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, f.events.events, 1)
}

func TestDeleteCascadeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.addSeats(t, "S1", "S2")
	a := f.addMember(t, "A", "1", "111")
	b := f.addMember(t, "B", "2", "222")
	f.occupy(t, a, "S1")
	f.occupy(t, b, "S1")
	drifted := model.Seat{SeatID: "S3", Members: []model.Occupant{a.Occupant(a.CreatedAt), b.Occupant(b.CreatedAt)}}
	drifted.Normalize()
	f.seats.Put(drifted)

	_, err := f.memberSvc.Delete(f.ctx, a.ID)
	require.NoError(t, err)
	before, err := f.seats.List(f.ctx)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		n, err := f.reconciler.Sweep(f.ctx, a.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
	}
	after, err := f.seats.List(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = f.memberSvc.Delete(f.ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
	f.requireConsistent(t)
}
