// Package memory provides in-memory implementations of the member, seat
// and payment stores used for tests and ephemeral environments. They
// honour the same error contract as the SQL repositories.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/library-membership/internal/model"
	"github.com/iliyamo/library-membership/internal/repository"
)

// MemberStore keeps members in a map keyed by id.
type MemberStore struct {
	mu      sync.RWMutex
	members map[string]model.Member
}

func NewMemberStore() *MemberStore {
	return &MemberStore{members: map[string]model.Member{}}
}

func (s *MemberStore) Create(_ context.Context, m *model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.members {
		if existing.Aadhar == m.Aadhar {
			return repository.ErrDuplicateKey
		}
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	m.UpdatedAt = m.CreatedAt
	s.members[m.ID] = cloneMember(*m)
	return nil
}

func (s *MemberStore) FindByID(_ context.Context, id string) (*model.Member, error) {
	if err := repository.CheckID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[id]
	if !ok {
		return nil, repository.ErrMemberNotFound
	}
	out := cloneMember(m)
	return &out, nil
}

func (s *MemberStore) FindByAadhar(_ context.Context, aadhar string) (*model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.Aadhar == aadhar {
			out := cloneMember(m)
			return &out, nil
		}
	}
	return nil, repository.ErrMemberNotFound
}

func (s *MemberStore) List(_ context.Context) ([]model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, cloneMember(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemberStore) Update(_ context.Context, m *model.Member) error {
	if err := repository.CheckID(m.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[m.ID]; !ok {
		return repository.ErrMemberNotFound
	}
	for id, existing := range s.members {
		if id != m.ID && existing.Aadhar == m.Aadhar {
			return repository.ErrDuplicateKey
		}
	}
	m.UpdatedAt = time.Now().UTC()
	s.members[m.ID] = cloneMember(*m)
	return nil
}

func (s *MemberStore) Delete(_ context.Context, id string) error {
	if err := repository.CheckID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return repository.ErrMemberNotFound
	}
	delete(s.members, id)
	return nil
}

// SeatStore keeps seats keyed by SeatID.
type SeatStore struct {
	mu    sync.RWMutex
	seats map[string]model.Seat
}

func NewSeatStore() *SeatStore {
	return &SeatStore{seats: map[string]model.Seat{}}
}

func (s *SeatStore) Create(_ context.Context, seat *model.Seat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seats[seat.SeatID]; ok {
		return repository.ErrDuplicateKey
	}
	if seat.ID == "" {
		seat.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	seat.CreatedAt, seat.UpdatedAt = now, now
	seat.Normalize()
	s.seats[seat.SeatID] = seat.Clone()
	return nil
}

// Put stores the seat verbatim, legacy fields included. Tests use it to
// set up drifted state that Create would normalise away.
func (s *SeatStore) Put(seat model.Seat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seat.ID == "" {
		seat.ID = uuid.NewString()
	}
	s.seats[seat.SeatID] = seat.Clone()
}

func (s *SeatStore) FindBySeatID(_ context.Context, seatID string) (*model.Seat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seat, ok := s.seats[seatID]
	if !ok {
		return nil, repository.ErrSeatNotFound
	}
	out := seat.Clone()
	return &out, nil
}

func (s *SeatStore) FindByMember(_ context.Context, memberID string) ([]model.Seat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Seat{}
	for _, seat := range s.seats {
		if seat.HasMember(memberID) {
			out = append(out, seat.Clone())
		}
	}
	sortSeats(out)
	return out, nil
}

func (s *SeatStore) List(_ context.Context) ([]model.Seat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Seat, 0, len(s.seats))
	for _, seat := range s.seats {
		out = append(out, seat.Clone())
	}
	sortSeats(out)
	return out, nil
}

func (s *SeatStore) Save(_ context.Context, seat *model.Seat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seats[seat.SeatID]; !ok {
		return repository.ErrSeatNotFound
	}
	seat.UpdatedAt = time.Now().UTC()
	s.seats[seat.SeatID] = seat.Clone()
	return nil
}

// PaymentStore keeps payments in insertion order.
type PaymentStore struct {
	mu       sync.RWMutex
	payments []model.Payment
}

func NewPaymentStore() *PaymentStore { return &PaymentStore{} }

func (s *PaymentStore) Create(_ context.Context, p *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now().UTC()
	}
	s.payments = append(s.payments, *p)
	return nil
}

func (s *PaymentStore) ListByMember(_ context.Context, memberID string) ([]model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Payment{}
	for i := len(s.payments) - 1; i >= 0; i-- {
		if s.payments[i].MemberID == memberID {
			out = append(out, s.payments[i])
		}
	}
	return out, nil
}

// All returns a copy of every stored payment.
func (s *PaymentStore) All() []model.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Payment(nil), s.payments...)
}

func (s *PaymentStore) DeleteMatching(_ context.Context, memberID, name, contact string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.payments[:0:0]
	var removed int64
	for _, p := range s.payments {
		match := p.MemberID == memberID ||
			(p.MemberName != "" && p.MemberName == name) ||
			(p.MemberContact != "" && p.MemberContact == contact)
		if match {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	s.payments = kept
	return removed, nil
}

func sortSeats(seats []model.Seat) {
	sort.Slice(seats, func(i, j int) bool { return seats[i].SeatID < seats[j].SeatID })
}

func cloneMember(m model.Member) model.Member {
	out := m
	out.CustomStartTime = clonePtr(m.CustomStartTime)
	out.CustomEndTime = clonePtr(m.CustomEndTime)
	out.Seat = clonePtr(m.Seat)
	return out
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
