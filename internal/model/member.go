package model

import "time"

// Shift values accepted for a member.  ShiftCustom is the only shift
// that carries its own start and end times.
const (
	ShiftMorning   = "Morning"
	ShiftAfternoon = "Afternoon"
	ShiftEvening   = "Evening"
	ShiftNight     = "Night"
	ShiftDay       = "Day"
	ShiftCustom    = "Custom"
)

// Member represents a registered library member as stored in the
// `members` table.  Seat holds the SeatID of the seat the member
// currently occupies, or nil when no seat has been assigned.  The
// seat reference is the member side of a denormalized relation; the
// seat side lives in Seat.Members.
//
// Fields:
//  ID              – UUID primary key generated on creation.
//  Name            – member's full name.
//  FatherName      – father's name, free text.
//  Contact         – phone number or other contact string.
//  Aadhar          – national ID, unique across members.
//  Shift           – one of the Shift* constants.
//  CustomStartTime – HH:MM, set only when Shift is Custom.
//  CustomEndTime   – HH:MM, set only when Shift is Custom.
//  MonthlyFees     – fee charged per month.
//  Seat            – SeatID of the occupied seat (nullable).
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Member struct {
	ID              string    `json:"id"`              // members.id
	Name            string    `json:"name"`            // members.name
	FatherName      string    `json:"fatherName"`      // members.father_name
	Contact         string    `json:"contact"`         // members.contact
	Aadhar          string    `json:"aadhar"`          // members.aadhar (unique)
	Shift           string    `json:"shift"`           // members.shift
	CustomStartTime *string   `json:"customStartTime"` // members.custom_start_time (nullable)
	CustomEndTime   *string   `json:"customEndTime"`   // members.custom_end_time (nullable)
	MonthlyFees     float64   `json:"monthlyFees"`     // members.monthly_fees
	Seat            *string   `json:"seat"`            // members.seat (nullable)
	CreatedAt       time.Time `json:"createdAt"`       // members.created_at
	UpdatedAt       time.Time `json:"updatedAt"`       // members.updated_at
}

// SeatID returns the assigned seat or "" when none is set.
func (m Member) SeatID() string {
	if m.Seat == nil {
		return ""
	}
	return *m.Seat
}

// Occupant builds the seat entry describing this member.  Custom
// times are only carried for the Custom shift.
func (m Member) Occupant(occupiedAt time.Time) Occupant {
	o := Occupant{
		MemberID:      m.ID,
		MemberName:    m.Name,
		MemberContact: m.Contact,
		Shift:         m.Shift,
		OccupiedDate:  occupiedAt,
	}
	if m.Shift == ShiftCustom {
		o.CustomStartTime = cloneString(m.CustomStartTime)
		o.CustomEndTime = cloneString(m.CustomEndTime)
	}
	return o
}

// Refresh copies the member's current profile onto an existing seat
// entry, keeping its identity and OccupiedDate.  It reports whether
// the entry changed.
func (m Member) Refresh(o *Occupant) bool {
	next := m.Occupant(o.OccupiedDate)
	changed := o.MemberName != next.MemberName ||
		o.MemberContact != next.MemberContact ||
		o.Shift != next.Shift ||
		!equalStringPtr(o.CustomStartTime, next.CustomStartTime) ||
		!equalStringPtr(o.CustomEndTime, next.CustomEndTime)
	o.MemberName = next.MemberName
	o.MemberContact = next.MemberContact
	o.Shift = next.Shift
	o.CustomStartTime = next.CustomStartTime
	o.CustomEndTime = next.CustomEndTime
	return changed
}
