package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/library-membership/internal/model"
	"github.com/iliyamo/library-membership/internal/queue"
	"github.com/iliyamo/library-membership/internal/repository/memory"
	"github.com/iliyamo/library-membership/internal/service"
)

var errSaveFailed = errors.New("save failed")

// flakySeats fails Save for the listed seat ids.
type flakySeats struct {
	*memory.SeatStore
	mu   sync.Mutex
	fail map[string]bool
}

func (f *flakySeats) Save(ctx context.Context, s *model.Seat) error {
	f.mu.Lock()
	failing := f.fail[s.SeatID]
	f.mu.Unlock()
	if failing {
		return errSaveFailed
	}
	return f.SeatStore.Save(ctx, s)
}

func (f *flakySeats) failOn(seatIDs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range seatIDs {
		f.fail[id] = true
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.MemberDeletedEvent
	err    error
}

func (p *recordingPublisher) PublishMemberDeleted(_ context.Context, ev queue.MemberDeletedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

type fixture struct {
	ctx        context.Context
	members    *memory.MemberStore
	seats      *flakySeats
	payments   *memory.PaymentStore
	events     *recordingPublisher
	reconciler *service.Reconciler
	memberSvc  *service.MemberService
	seatSvc    *service.SeatService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:      context.Background(),
		members:  memory.NewMemberStore(),
		seats:    &flakySeats{SeatStore: memory.NewSeatStore(), fail: map[string]bool{}},
		payments: memory.NewPaymentStore(),
		events:   &recordingPublisher{},
	}
	f.reconciler = service.NewReconciler(f.seats, f.payments, nil)
	f.memberSvc = service.NewMemberService(f.members, f.reconciler, f.events)
	f.seatSvc = service.NewSeatService(f.seats, f.memberSvc, f.reconciler)
	return f
}

func ptr[T any](v T) *T { return &v }

func memberInput(name, contact, aadhar string) service.MemberInput {
	return service.MemberInput{
		Name:        ptr(name),
		FatherName:  ptr("Father of " + name),
		Contact:     ptr(contact),
		Aadhar:      ptr(aadhar),
		Shift:       ptr(model.ShiftDay),
		MonthlyFees: ptr(500.0),
	}
}

func (f *fixture) addMember(t *testing.T, name, contact, aadhar string) *model.Member {
	t.Helper()
	m, err := f.memberSvc.Add(f.ctx, memberInput(name, contact, aadhar))
	require.NoError(t, err)
	return m
}

func (f *fixture) addSeats(t *testing.T, seatIDs ...string) {
	t.Helper()
	for _, id := range seatIDs {
		_, err := f.seatSvc.Create(f.ctx, id)
		require.NoError(t, err)
	}
}

func (f *fixture) seat(t *testing.T, seatID string) *model.Seat {
	t.Helper()
	s, err := f.seats.FindBySeatID(f.ctx, seatID)
	require.NoError(t, err)
	return s
}

func (f *fixture) occupy(t *testing.T, m *model.Member, seatID string) {
	t.Helper()
	_, err := f.memberSvc.Update(f.ctx, m.ID, service.MemberInput{Seat: ptr(seatID)})
	require.NoError(t, err)
}

// requireConsistent checks the legacy mirror on every stored seat.
func (f *fixture) requireConsistent(t *testing.T) {
	t.Helper()
	seats, err := f.seats.List(f.ctx)
	require.NoError(t, err)
	for _, s := range seats {
		require.Equal(t, len(s.Members) > 0, s.IsOccupied, "seat %s isOccupied", s.SeatID)
		if len(s.Members) == 0 {
			require.Nil(t, s.MemberID, "seat %s memberId", s.SeatID)
			require.Empty(t, s.MemberName, "seat %s memberName", s.SeatID)
			require.Empty(t, s.MemberContact, "seat %s memberContact", s.SeatID)
			require.Nil(t, s.OccupiedDate, "seat %s occupiedDate", s.SeatID)
			continue
		}
		first := s.Members[0]
		require.NotNil(t, s.MemberID, "seat %s memberId", s.SeatID)
		require.Equal(t, first.MemberID, *s.MemberID, "seat %s memberId", s.SeatID)
		require.Equal(t, first.MemberName, s.MemberName, "seat %s memberName", s.SeatID)
		require.Equal(t, first.MemberContact, s.MemberContact, "seat %s memberContact", s.SeatID)
		require.NotNil(t, s.OccupiedDate, "seat %s occupiedDate", s.SeatID)
		require.True(t, first.OccupiedDate.Equal(*s.OccupiedDate), "seat %s occupiedDate", s.SeatID)
	}
}

// requireNoReference fails when any seat still lists memberID.
func (f *fixture) requireNoReference(t *testing.T, memberID string) {
	t.Helper()
	seats, err := f.seats.List(f.ctx)
	require.NoError(t, err)
	for _, s := range seats {
		require.False(t, s.HasMember(memberID), "seat %s still lists %s", s.SeatID, memberID)
	}
}
