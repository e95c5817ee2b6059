package repository // repository defines data access for members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/library-membership/internal/model"
)

const memberColumns = `id, name, father_name, contact, aadhar, shift, custom_start_time, custom_end_time,
	monthly_fees, seat, created_at, updated_at`

// MemberRepo provides methods to work with members in the database.
type MemberRepo struct {
	db *sql.DB
}

// NewMemberRepo constructs a MemberRepo with the given DB handle.
func NewMemberRepo(db *sql.DB) *MemberRepo {
	return &MemberRepo{db: db}
}

// CheckID validates that id is a well formed member/payment identifier.
func CheckID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// Create inserts a member. ID and timestamps are generated when empty.
// A colliding aadhar yields ErrDuplicateKey.
func (r *MemberRepo) Create(ctx context.Context, m *model.Member) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = m.CreatedAt
	const q = `INSERT INTO members (` + memberColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		m.ID, m.Name, m.FatherName, m.Contact, m.Aadhar, m.Shift,
		nullString(m.CustomStartTime), nullString(m.CustomEndTime),
		m.MonthlyFees, nullString(m.Seat), m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// FindByID retrieves a member by id.
func (r *MemberRepo) FindByID(ctx context.Context, id string) (*model.Member, error) {
	if err := CheckID(id); err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
	return scanMember(row)
}

// FindByAadhar retrieves the member holding the given aadhar number.
func (r *MemberRepo) FindByAadhar(ctx context.Context, aadhar string) (*model.Member, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE aadhar = ? LIMIT 1`, aadhar)
	return scanMember(row)
}

// List returns all members, newest first.
func (r *MemberRepo) List(ctx context.Context) ([]model.Member, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+memberColumns+` FROM members ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	result := []model.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites every mutable column of the member. Returns
// ErrMemberNotFound when no row matches and ErrDuplicateKey when the
// aadhar collides with another member.
func (r *MemberRepo) Update(ctx context.Context, m *model.Member) error {
	if err := CheckID(m.ID); err != nil {
		return err
	}
	m.UpdatedAt = time.Now().UTC()
	const q = `UPDATE members
	           SET name = ?, father_name = ?, contact = ?, aadhar = ?, shift = ?,
	               custom_start_time = ?, custom_end_time = ?, monthly_fees = ?, seat = ?, updated_at = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		m.Name, m.FatherName, m.Contact, m.Aadhar, m.Shift,
		nullString(m.CustomStartTime), nullString(m.CustomEndTime),
		m.MonthlyFees, nullString(m.Seat), m.UpdatedAt, m.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("update member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// Delete removes a member by id.
func (r *MemberRepo) Delete(ctx context.Context, id string) error {
	if err := CheckID(id); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMemberNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*model.Member, error) {
	var (
		m                model.Member
		start, end, seat sql.NullString
	)
	err := row.Scan(&m.ID, &m.Name, &m.FatherName, &m.Contact, &m.Aadhar, &m.Shift,
		&start, &end, &m.MonthlyFees, &seat, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("scan member: %w", err)
	}
	m.CustomStartTime = stringPtr(start)
	m.CustomEndTime = stringPtr(end)
	m.Seat = stringPtr(seat)
	return &m, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
