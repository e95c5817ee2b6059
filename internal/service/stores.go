// Package service holds the membership business logic: the member
// mutation gateway, the seat reconciler that keeps Seat.Members and
// Member.Seat in step, and the seat operations built on top of them.
// Stores are injected so the SQL repositories and the in-memory stores
// are interchangeable.
package service

import (
	"context"

	"github.com/iliyamo/library-membership/internal/model"
	"github.com/iliyamo/library-membership/internal/queue"
)

// MemberStore persists members. Implementations return
// repository.ErrMemberNotFound, repository.ErrDuplicateKey and
// repository.ErrInvalidID for the matching failures.
type MemberStore interface {
	Create(ctx context.Context, m *model.Member) error
	FindByID(ctx context.Context, id string) (*model.Member, error)
	FindByAadhar(ctx context.Context, aadhar string) (*model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
	Update(ctx context.Context, m *model.Member) error
	Delete(ctx context.Context, id string) error
}

// SeatStore persists seats with their occupant lists.
type SeatStore interface {
	Create(ctx context.Context, s *model.Seat) error
	FindBySeatID(ctx context.Context, seatID string) (*model.Seat, error)
	FindByMember(ctx context.Context, memberID string) ([]model.Seat, error)
	List(ctx context.Context) ([]model.Seat, error)
	Save(ctx context.Context, s *model.Seat) error
}

// PaymentStore removes payments during the member delete cascade.
type PaymentStore interface {
	DeleteMatching(ctx context.Context, memberID, name, contact string) (int64, error)
}

// EventPublisher announces completed member mutations.
type EventPublisher interface {
	PublishMemberDeleted(ctx context.Context, ev queue.MemberDeletedEvent) error
}
