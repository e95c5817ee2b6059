package repository // repository defines data access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/library-membership/internal/model"
)

const seatColumns = `s.id, s.seat_id, s.member_id, s.member_name, s.member_contact, s.occupied_date,
	s.is_occupied, s.created_at, s.updated_at`

const occupantColumns = `seat_id, member_id, member_name, member_contact, shift,
	custom_start_time, custom_end_time, occupied_date`

// SeatRepo provides methods to work with seats in the database. Each
// seat row carries the legacy mirror columns; its occupants live in
// seat_members ordered by position.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// Create inserts a seat together with any occupants it already holds.
// On success the seat's ID is populated. A taken SeatID yields
// ErrDuplicateKey.
func (r *SeatRepo) Create(ctx context.Context, s *model.Seat) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	s.Normalize()
	return r.inTx(ctx, func(tx *sql.Tx) error {
		const q = `INSERT INTO seats (id, seat_id, member_id, member_name, member_contact, occupied_date,
		           is_occupied, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, q, s.ID, s.SeatID, nullString(s.MemberID), s.MemberName,
			s.MemberContact, nullTime(s.OccupiedDate), s.IsOccupied, s.CreatedAt, s.UpdatedAt); err != nil {
			if isDuplicate(err) {
				return ErrDuplicateKey
			}
			return fmt.Errorf("insert seat: %w", err)
		}
		return insertOccupants(ctx, tx, s)
	})
}

// FindBySeatID retrieves a seat and its occupants by its SeatID label.
func (r *SeatRepo) FindBySeatID(ctx context.Context, seatID string) (*model.Seat, error) {
	seats, err := r.query(ctx, `SELECT `+seatColumns+` FROM seats s WHERE s.seat_id = ?`, seatID)
	if err != nil {
		return nil, err
	}
	if len(seats) == 0 {
		return nil, ErrSeatNotFound
	}
	return &seats[0], nil
}

// FindByMember returns every seat with an occupant entry for memberID.
func (r *SeatRepo) FindByMember(ctx context.Context, memberID string) ([]model.Seat, error) {
	const q = `SELECT ` + seatColumns + ` FROM seats s
	           WHERE s.id IN (SELECT sm.seat_id FROM seat_members sm WHERE sm.member_id = ?)
	           ORDER BY s.seat_id`
	return r.query(ctx, q, memberID)
}

// List returns all seats ordered by SeatID.
func (r *SeatRepo) List(ctx context.Context) ([]model.Seat, error) {
	return r.query(ctx, `SELECT `+seatColumns+` FROM seats s ORDER BY s.seat_id`)
}

// Save persists the seat's legacy columns and replaces its occupant
// rows in one transaction. Returns ErrSeatNotFound when the seat row
// no longer exists.
func (r *SeatRepo) Save(ctx context.Context, s *model.Seat) error {
	s.UpdatedAt = time.Now().UTC()
	return r.inTx(ctx, func(tx *sql.Tx) error {
		const q = `UPDATE seats
		           SET member_id = ?, member_name = ?, member_contact = ?, occupied_date = ?,
		               is_occupied = ?, updated_at = ?
		           WHERE id = ?`
		res, err := tx.ExecContext(ctx, q, nullString(s.MemberID), s.MemberName, s.MemberContact,
			nullTime(s.OccupiedDate), s.IsOccupied, s.UpdatedAt, s.ID)
		if err != nil {
			return fmt.Errorf("update seat %s: %w", s.SeatID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrSeatNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM seat_members WHERE seat_id = ?`, s.ID); err != nil {
			return fmt.Errorf("clear occupants of %s: %w", s.SeatID, err)
		}
		return insertOccupants(ctx, tx, s)
	})
}

func (r *SeatRepo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

func insertOccupants(ctx context.Context, tx *sql.Tx, s *model.Seat) error {
	const q = `INSERT INTO seat_members (seat_id, position, member_id, member_name, member_contact, shift,
	           custom_start_time, custom_end_time, occupied_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, o := range s.Members {
		if _, err := tx.ExecContext(ctx, q, s.ID, i, o.MemberID, o.MemberName, o.MemberContact, o.Shift,
			nullString(o.CustomStartTime), nullString(o.CustomEndTime), o.OccupiedDate); err != nil {
			return fmt.Errorf("insert occupant of %s: %w", s.SeatID, err)
		}
	}
	return nil
}

// query scans seat rows and attaches their occupants.
func (r *SeatRepo) query(ctx context.Context, q string, args ...any) ([]model.Seat, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query seats: %w", err)
	}
	defer rows.Close()

	seats := []model.Seat{}
	for rows.Next() {
		var (
			s        model.Seat
			memberID sql.NullString
			occupied sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.SeatID, &memberID, &s.MemberName, &s.MemberContact, &occupied,
			&s.IsOccupied, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		s.MemberID = stringPtr(memberID)
		if occupied.Valid {
			t := occupied.Time
			s.OccupiedDate = &t
		}
		s.Members = []model.Occupant{}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(seats) == 0 {
		return seats, nil
	}

	occupants, err := r.occupants(ctx, seats)
	if err != nil {
		return nil, err
	}
	for i := range seats {
		if list, ok := occupants[seats[i].ID]; ok {
			seats[i].Members = list
		}
	}
	return seats, nil
}

// occupants loads seat_members rows for the given seats keyed by seats.id.
func (r *SeatRepo) occupants(ctx context.Context, seats []model.Seat) (map[string][]model.Occupant, error) {
	q := `SELECT ` + occupantColumns + ` FROM seat_members WHERE seat_id IN (`
	args := make([]any, 0, len(seats))
	for i, s := range seats {
		if i > 0 {
			q += ","
		}
		q += "?"
		args = append(args, s.ID)
	}
	q += `) ORDER BY seat_id, position`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query occupants: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]model.Occupant, len(seats))
	for rows.Next() {
		var (
			seatID     string
			o          model.Occupant
			start, end sql.NullString
		)
		if err := rows.Scan(&seatID, &o.MemberID, &o.MemberName, &o.MemberContact, &o.Shift,
			&start, &end, &o.OccupiedDate); err != nil {
			return nil, fmt.Errorf("scan occupant: %w", err)
		}
		o.CustomStartTime = stringPtr(start)
		o.CustomEndTime = stringPtr(end)
		out[seatID] = append(out[seatID], o)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return out, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
