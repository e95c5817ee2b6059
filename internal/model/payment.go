package model

import "time"

// Payment records a fee payment.  Only the member matching fields are
// relied on by the rest of the system: deleting a member removes every
// payment whose MemberID, MemberName or MemberContact matches.
type Payment struct {
	ID            string    `json:"id"`            // payments.id
	MemberID      string    `json:"memberId"`      // payments.member_id
	MemberName    string    `json:"memberName"`    // payments.member_name
	MemberContact string    `json:"memberContact"` // payments.member_contact
	Amount        float64   `json:"amount"`        // payments.amount
	Month         string    `json:"month"`         // payments.month (YYYY-MM)
	PaidAt        time.Time `json:"paidAt"`        // payments.paid_at
}
