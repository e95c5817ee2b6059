package service

import (
	"context"
	"strings"

	"github.com/iliyamo/library-membership/internal/model"
	"github.com/iliyamo/library-membership/internal/repository"
)

// SeatService exposes seat registration, listing, assignment and the
// consistency sweep.
type SeatService struct {
	seats      SeatStore
	members    *MemberService
	reconciler *Reconciler
}

func NewSeatService(seats SeatStore, members *MemberService, reconciler *Reconciler) *SeatService {
	if seats == nil || members == nil || reconciler == nil {
		panic("nil dependency passed to NewSeatService")
	}
	return &SeatService{seats: seats, members: members, reconciler: reconciler}
}

// Create registers an empty seat under seatID.
func (s *SeatService) Create(ctx context.Context, seatID string) (*model.Seat, error) {
	seatID = strings.TrimSpace(seatID)
	if seatID == "" {
		return nil, &repository.ValidationError{Messages: []string{"seatId is required"}}
	}
	seat := &model.Seat{SeatID: seatID}
	if err := s.seats.Create(ctx, seat); err != nil {
		return nil, err
	}
	return seat, nil
}

// List returns all seats with their occupants.
func (s *SeatService) List(ctx context.Context) ([]model.Seat, error) {
	return s.seats.List(ctx)
}

// Assign places a member on a seat through the regular member update,
// so the previous seat is released and the new one gains an entry.
func (s *SeatService) Assign(ctx context.Context, memberID, seatID string) (*model.Member, error) {
	if _, err := s.seats.FindBySeatID(ctx, seatID); err != nil {
		return nil, err
	}
	return s.members.Update(ctx, memberID, MemberInput{Seat: &seatID})
}

// Sweep repairs every seat whose legacy fields disagree with its
// occupant list and returns how many were rewritten.
func (s *SeatService) Sweep(ctx context.Context) (int, error) {
	return s.reconciler.Sweep(ctx, "")
}
