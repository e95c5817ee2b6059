package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/library-membership/internal/model"
)

// PaymentRepo persists fee payments.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// Create inserts a payment row.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO payments (id, member_id, member_name, member_contact, amount, month, paid_at) VALUES (?,?,?,?,?,?,?)",
		p.ID, p.MemberID, p.MemberName, p.MemberContact, p.Amount, p.Month, p.PaidAt)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByMember returns payments recorded against memberID, newest first.
func (r *PaymentRepo) ListByMember(ctx context.Context, memberID string) ([]model.Payment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, member_id, member_name, member_contact, amount, month, paid_at FROM payments WHERE member_id=? ORDER BY paid_at DESC",
		memberID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	out := []model.Payment{}
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.MemberID, &p.MemberName, &p.MemberContact, &p.Amount, &p.Month, &p.PaidAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteMatching removes every payment whose member id, name or contact
// matches. Empty name/contact values never match. Returns the number of
// rows removed.
func (r *PaymentRepo) DeleteMatching(ctx context.Context, memberID, name, contact string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM payments WHERE member_id=? OR (member_name<>'' AND member_name=?) OR (member_contact<>'' AND member_contact=?)",
		memberID, name, contact)
	if err != nil {
		return 0, fmt.Errorf("delete payments: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
