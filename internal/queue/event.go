// Package queue defines message payloads exchanged over the message broker.
package queue

// MemberDeletedQueue is the durable queue member deletions are published to.
const MemberDeletedQueue = "member.deleted"

// MemberDeletedEvent is published after a member and its seat entries and
// payments have been removed. SeatFreed is "none" when the member had no
// seat assigned.
type MemberDeletedEvent struct {
	MemberID        string `json:"member_id"`
	MemberName      string `json:"member_name"`
	SeatFreed       string `json:"seat_freed"`
	SeatsCleaned    int    `json:"seats_cleaned"`
	PaymentsDeleted int64  `json:"payments_deleted"`
	DeletedAt       string `json:"deleted_at"`
}
