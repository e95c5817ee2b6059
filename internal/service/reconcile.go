package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/iliyamo/library-membership/internal/model"
	"github.com/iliyamo/library-membership/internal/repository"
)

// Reconciler keeps seat occupant lists consistent with member records.
// Every path ends with Seat.Normalize so the legacy mirror is derived in
// one place. Seat writes are best effort: a failed save is logged,
// counted and reported, and processing moves on to the next seat.
type Reconciler struct {
	seats    SeatStore
	payments PaymentStore
	metrics  *Metrics
	log      *log.Logger
	now      func() time.Time
}

// NewReconciler wires the reconciler to its stores. metrics may be nil.
func NewReconciler(seats SeatStore, payments PaymentStore, metrics *Metrics) *Reconciler {
	if seats == nil || payments == nil {
		panic("nil store passed to NewReconciler")
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Reconciler{
		seats:    seats,
		payments: payments,
		metrics:  metrics,
		log:      log.New("reconcile"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SyncMember brings seats in line with a member after an update. before
// is the member as stored prior to the write, after the stored result.
//  1. a seat the member left loses its entry;
//  2. a newly assigned seat gains one;
//  3. every seat listing the member gets the current name, contact,
//     shift and custom times on that entry.
func (r *Reconciler) SyncMember(ctx context.Context, before, after model.Member) error {
	var errs []error
	oldSeat, newSeat := before.SeatID(), after.SeatID()

	if oldSeat != "" && oldSeat != newSeat {
		if err := r.release(ctx, oldSeat, after.ID); err != nil {
			errs = append(errs, err)
		}
	}
	if newSeat != "" && newSeat != oldSeat {
		if err := r.assign(ctx, newSeat, after); err != nil {
			errs = append(errs, err)
		}
	}
	if err := r.refresh(ctx, after); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (r *Reconciler) release(ctx context.Context, seatID, memberID string) error {
	seat, err := r.seats.FindBySeatID(ctx, seatID)
	if errors.Is(err, repository.ErrSeatNotFound) {
		r.log.Warnf("previous seat %s of member %s no longer exists", seatID, memberID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load seat %s: %w", seatID, err)
	}
	removed := seat.RemoveMember(memberID)
	if normalized := seat.Normalize(); !removed && !normalized {
		return nil
	}
	return r.save(ctx, seat, phaseRelease)
}

func (r *Reconciler) assign(ctx context.Context, seatID string, m model.Member) error {
	seat, err := r.seats.FindBySeatID(ctx, seatID)
	if errors.Is(err, repository.ErrSeatNotFound) {
		r.log.Warnf("member %s references unknown seat %s", m.ID, seatID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load seat %s: %w", seatID, err)
	}
	// An entry left behind by drift is refreshed instead of duplicated.
	if !seat.HasMember(m.ID) {
		seat.Members = append(seat.Members, m.Occupant(r.now()))
	}
	seat.Normalize()
	return r.save(ctx, seat, phaseAssign)
}

func (r *Reconciler) refresh(ctx context.Context, m model.Member) error {
	seats, err := r.seats.FindByMember(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("find seats of member %s: %w", m.ID, err)
	}
	var errs []error
	for i := range seats {
		seat := &seats[i]
		changed := false
		for j := range seat.Members {
			if seat.Members[j].MemberID == m.ID && m.Refresh(&seat.Members[j]) {
				changed = true
			}
		}
		if seat.Normalize() {
			changed = true
		}
		if !changed {
			continue
		}
		if err := r.save(ctx, seat, phaseRefresh); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DetachMember removes m from the seats that reference it before the
// member record is deleted. The seat named by m.Seat is tried first;
// when there is none, or it cannot be found, seats are located through
// their occupant lists instead. It returns the number of seats changed.
func (r *Reconciler) DetachMember(ctx context.Context, m model.Member) (int, error) {
	var errs []error
	touched := 0

	primaryFound := false
	if seatID := m.SeatID(); seatID != "" {
		seat, err := r.seats.FindBySeatID(ctx, seatID)
		switch {
		case err == nil:
			primaryFound = true
			removed := seat.RemoveMember(m.ID)
			if normalized := seat.Normalize(); removed || normalized {
				if err := r.save(ctx, seat, phasePrimary); err != nil {
					errs = append(errs, err)
				} else {
					touched++
				}
			}
		case errors.Is(err, repository.ErrSeatNotFound):
			r.log.Warnf("seat %s of member %s not found, searching occupant lists", seatID, m.ID)
		default:
			errs = append(errs, fmt.Errorf("load seat %s: %w", seatID, err))
		}
	}

	if !primaryFound {
		seats, err := r.seats.FindByMember(ctx, m.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("find seats of member %s: %w", m.ID, err))
		}
		for i := range seats {
			seat := &seats[i]
			if !seat.RemoveMember(m.ID) {
				continue
			}
			seat.Normalize()
			if err := r.save(ctx, seat, phaseFallback); err != nil {
				errs = append(errs, err)
				continue
			}
			touched++
		}
	}
	return touched, errors.Join(errs...)
}

// Sweep scans every seat once. Entries for orphanID (when non-empty) are
// removed, and any seat whose IsOccupied flag or legacy fields disagree
// with its occupant list is repaired. Sweep is idempotent: a second run
// with the same orphanID changes nothing. It returns the number of
// seats rewritten.
func (r *Reconciler) Sweep(ctx context.Context, orphanID string) (int, error) {
	seats, err := r.seats.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list seats: %w", err)
	}
	var errs []error
	repaired := 0
	for i := range seats {
		seat := &seats[i]
		removed := orphanID != "" && seat.RemoveMember(orphanID)
		normalized := seat.Normalize()
		if !removed && !normalized {
			continue
		}
		phase := phaseConsistency
		if removed {
			phase = phaseSweep
			r.log.Infof("removed residual entry for %s from seat %s", orphanID, seat.SeatID)
		}
		if err := r.save(ctx, seat, phase); err != nil {
			errs = append(errs, err)
			continue
		}
		repaired++
	}
	return repaired, errors.Join(errs...)
}

// PurgePayments deletes payments matching the member by id, name or
// contact.
func (r *Reconciler) PurgePayments(ctx context.Context, m model.Member) (int64, error) {
	n, err := r.payments.DeleteMatching(ctx, m.ID, m.Name, m.Contact)
	if err != nil {
		return 0, fmt.Errorf("delete payments of member %s: %w", m.ID, err)
	}
	r.metrics.PaymentsDeleted.Add(float64(n))
	return n, nil
}

func (r *Reconciler) save(ctx context.Context, seat *model.Seat, phase string) error {
	if err := r.seats.Save(ctx, seat); err != nil {
		r.metrics.SeatSaveFailures.WithLabelValues(phase).Inc()
		r.log.Errorf("%s: save seat %s failed: %v", phase, seat.SeatID, err)
		return fmt.Errorf("save seat %s: %w", seat.SeatID, err)
	}
	r.metrics.SeatsRepaired.WithLabelValues(phase).Inc()
	return nil
}
