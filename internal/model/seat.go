package model

import "time"

// Occupant is one entry in a seat's members list.  A seat may hold
// several occupants at once (one per shift, for instance); the first
// entry is mirrored into the seat's legacy scalar fields.
//
// Fields:
//  MemberID        – identifier of the member occupying the seat.
//  MemberName      – copy of the member's name at the last sync.
//  MemberContact   – copy of the member's contact at the last sync.
//  Shift           – member's shift at the last sync.
//  CustomStartTime – HH:MM start, only for the Custom shift.
//  CustomEndTime   – HH:MM end, only for the Custom shift.
//  OccupiedDate    – when the member was placed on the seat.
type Occupant struct {
	MemberID        string    `json:"memberId"`
	MemberName      string    `json:"memberName"`
	MemberContact   string    `json:"memberContact"`
	Shift           string    `json:"shift"`
	CustomStartTime *string   `json:"customStartTime"`
	CustomEndTime   *string   `json:"customEndTime"`
	OccupiedDate    time.Time `json:"occupiedDate"`
}

// Seat describes a physical seat in the reading room.  SeatID is the
// human facing label ("S1", "A-12") and is unique; ID is the storage
// identity.  MemberID, MemberName, MemberContact, OccupiedDate and
// IsOccupied are the legacy mirror of Members[0] kept for older
// clients.  Call Normalize after every change to Members.
type Seat struct {
	ID            string     `json:"id"`            // seats.id
	SeatID        string     `json:"seatId"`        // seats.seat_id
	Members       []Occupant `json:"members"`       // seat_members rows ordered by position
	MemberID      *string    `json:"memberId"`      // seats.member_id (legacy)
	MemberName    string     `json:"memberName"`    // seats.member_name (legacy)
	MemberContact string     `json:"memberContact"` // seats.member_contact (legacy)
	OccupiedDate  *time.Time `json:"occupiedDate"`  // seats.occupied_date (legacy)
	IsOccupied    bool       `json:"isOccupied"`    // seats.is_occupied (legacy)
	CreatedAt     time.Time  `json:"createdAt"`     // seats.created_at
	UpdatedAt     time.Time  `json:"updatedAt"`     // seats.updated_at
}

// HasMember reports whether memberID appears in the occupant list.
func (s *Seat) HasMember(memberID string) bool {
	for _, o := range s.Members {
		if o.MemberID == memberID {
			return true
		}
	}
	return false
}

// RemoveMember drops every occupant entry for memberID and reports
// whether anything was removed.  Legacy fields are not touched.
func (s *Seat) RemoveMember(memberID string) bool {
	kept := s.Members[:0:0]
	for _, o := range s.Members {
		if o.MemberID != memberID {
			kept = append(kept, o)
		}
	}
	removed := len(kept) != len(s.Members)
	s.Members = kept
	return removed
}

// Normalize recomputes IsOccupied and the legacy fields from Members
// and reports whether any of them changed.  With no occupants the
// legacy fields are cleared; otherwise they mirror Members[0].
func (s *Seat) Normalize() bool {
	if s.Members == nil {
		s.Members = []Occupant{}
	}
	var (
		id       *string
		name     string
		contact  string
		occupied *time.Time
	)
	if len(s.Members) > 0 {
		first := s.Members[0]
		mid := first.MemberID
		od := first.OccupiedDate
		id, name, contact, occupied = &mid, first.MemberName, first.MemberContact, &od
	}
	changed := s.IsOccupied != (len(s.Members) > 0) ||
		!equalStringPtr(s.MemberID, id) ||
		s.MemberName != name ||
		s.MemberContact != contact ||
		!equalTimePtr(s.OccupiedDate, occupied)

	s.IsOccupied = len(s.Members) > 0
	s.MemberID = id
	s.MemberName = name
	s.MemberContact = contact
	s.OccupiedDate = occupied
	return changed
}

// Consistent reports whether the legacy fields already match Members.
func (s Seat) Consistent() bool {
	s.Members = append([]Occupant(nil), s.Members...)
	return !s.Normalize()
}

// Clone returns a deep copy so callers can mutate occupants freely.
func (s Seat) Clone() Seat {
	out := s
	out.Members = make([]Occupant, len(s.Members))
	for i, o := range s.Members {
		o.CustomStartTime = cloneString(o.CustomStartTime)
		o.CustomEndTime = cloneString(o.CustomEndTime)
		out.Members[i] = o
	}
	out.MemberID = cloneString(s.MemberID)
	if s.OccupiedDate != nil {
		t := *s.OccupiedDate
		out.OccupiedDate = &t
	}
	return out
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
