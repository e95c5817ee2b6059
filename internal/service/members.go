package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/iliyamo/library-membership/internal/model"
	"github.com/iliyamo/library-membership/internal/queue"
	"github.com/iliyamo/library-membership/internal/repository"
)

// NoSeat is reported as the freed seat when a deleted member had none.
const NoSeat = "none"

// MemberInput carries member fields from a request. Nil fields are left
// untouched on update. An empty Seat, CustomStartTime or CustomEndTime
// clears the stored value.
type MemberInput struct {
	Name            *string  `json:"name"`
	FatherName      *string  `json:"fatherName"`
	Contact         *string  `json:"contact"`
	Aadhar          *string  `json:"aadhar"`
	Shift           *string  `json:"shift"`
	CustomStartTime *string  `json:"customStartTime"`
	CustomEndTime   *string  `json:"customEndTime"`
	MonthlyFees     *float64 `json:"monthlyFees"`
	Seat            *string  `json:"seat"`
}

func (in MemberInput) apply(m *model.Member) {
	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.FatherName != nil {
		m.FatherName = *in.FatherName
	}
	if in.Contact != nil {
		m.Contact = *in.Contact
	}
	if in.Aadhar != nil {
		m.Aadhar = *in.Aadhar
	}
	if in.Shift != nil {
		m.Shift = *in.Shift
	}
	if in.CustomStartTime != nil {
		m.CustomStartTime = optional(*in.CustomStartTime)
	}
	if in.CustomEndTime != nil {
		m.CustomEndTime = optional(*in.CustomEndTime)
	}
	if in.MonthlyFees != nil {
		m.MonthlyFees = *in.MonthlyFees
	}
	if in.Seat != nil {
		m.Seat = optional(*in.Seat)
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// DeleteResult summarises a member deletion.
type DeleteResult struct {
	MemberID        string `json:"memberId"`
	MemberName      string `json:"memberName"`
	SeatFreed       string `json:"seatFreed"`
	SeatsCleaned    int    `json:"seatsCleaned"`
	PaymentsDeleted int64  `json:"paymentsDeleted"`
}

// MemberService is the gateway for member mutations. Member writes are
// authoritative; seat reconciliation that follows them is best effort
// and its failures are logged, never returned.
type MemberService struct {
	members    MemberStore
	reconciler *Reconciler
	events     EventPublisher
	metrics    *Metrics
	log        *log.Logger
}

// NewMemberService constructs a MemberService. events may be nil.
func NewMemberService(members MemberStore, reconciler *Reconciler, events EventPublisher) *MemberService {
	if members == nil || reconciler == nil {
		panic("nil dependency passed to NewMemberService")
	}
	return &MemberService{
		members:    members,
		reconciler: reconciler,
		events:     events,
		metrics:    reconciler.metrics,
		log:        log.New("members"),
	}
}

// Add validates and stores a new member. Any seat in the input is
// ignored: seats are assigned afterwards through an update.
func (s *MemberService) Add(ctx context.Context, in MemberInput) (*model.Member, error) {
	if in.Seat != nil && *in.Seat != "" {
		s.log.Infof("ignoring seat %q on create; assignment happens separately", *in.Seat)
	}
	in.Seat = nil

	var m model.Member
	in.apply(&m)
	if err := validateMember(&m); err != nil {
		return nil, err
	}
	if err := s.members.Create(ctx, &m); err != nil {
		return nil, err
	}
	s.log.Infof("member %s (%s) created", m.ID, m.Name)
	return &m, nil
}

// List returns every member, newest first.
func (s *MemberService) List(ctx context.Context) ([]model.Member, error) {
	return s.members.List(ctx)
}

// Update applies in to the member with the given id and then reconciles
// seats with the stored result.
func (s *MemberService) Update(ctx context.Context, id string, in MemberInput) (*model.Member, error) {
	existing, err := s.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *existing
	in.apply(&updated)
	if err := validateMember(&updated); err != nil {
		return nil, err
	}

	if updated.Aadhar != existing.Aadhar {
		other, err := s.members.FindByAadhar(ctx, updated.Aadhar)
		switch {
		case err == nil && other.ID != id:
			return nil, repository.ErrDuplicateKey
		case err != nil && !errors.Is(err, repository.ErrMemberNotFound):
			return nil, fmt.Errorf("check aadhar: %w", err)
		}
	}

	if err := s.members.Update(ctx, &updated); err != nil {
		return nil, err
	}

	if err := s.reconciler.SyncMember(context.WithoutCancel(ctx), *existing, updated); err != nil {
		s.log.Warnf("member %s updated but seat sync incomplete: %v", id, err)
	}
	return &updated, nil
}

// Delete removes a member and everything that refers to it: seat
// occupant entries, legacy seat fields and payments. Only a missing or
// malformed member is reported; cleanup failures are logged.
func (s *MemberService) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	m, err := s.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// The cascade runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	touched, err := s.reconciler.DetachMember(ctx, *m)
	if err != nil {
		s.log.Warnf("detach member %s: %v", id, err)
	}

	if err := s.members.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.metrics.MembersDeleted.Inc()

	payments, err := s.reconciler.PurgePayments(ctx, *m)
	if err != nil {
		s.log.Errorf("member %s deleted but payments remain: %v", id, err)
	}

	swept, err := s.reconciler.Sweep(ctx, id)
	if err != nil {
		s.log.Warnf("post-delete sweep for %s: %v", id, err)
	}

	res := &DeleteResult{
		MemberID:        m.ID,
		MemberName:      m.Name,
		SeatFreed:       NoSeat,
		SeatsCleaned:    touched + swept,
		PaymentsDeleted: payments,
	}
	if seat := m.SeatID(); seat != "" {
		res.SeatFreed = seat
	}
	s.log.Infof("member %s deleted (seat=%s, seats cleaned=%d, payments=%d)",
		id, res.SeatFreed, res.SeatsCleaned, res.PaymentsDeleted)

	if s.events != nil {
		ev := queue.MemberDeletedEvent{
			MemberID:        res.MemberID,
			MemberName:      res.MemberName,
			SeatFreed:       res.SeatFreed,
			SeatsCleaned:    res.SeatsCleaned,
			PaymentsDeleted: res.PaymentsDeleted,
			DeletedAt:       time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.events.PublishMemberDeleted(ctx, ev); err != nil {
			s.log.Warnf("publish member.deleted for %s: %v", id, err)
		}
	}
	return res, nil
}
