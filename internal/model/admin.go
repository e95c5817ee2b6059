package model

import "time"

// Admin is an operator account allowed to manage members and seats.
// Only the bcrypt hash of the password is stored.
type Admin struct {
	ID           string    // admins.id
	Name         string    // admins.name
	Email        string    // admins.email (unique)
	PasswordHash string    // admins.password_hash
	Role         string    // admins.role
	IsActive     bool      // admins.is_active
	CreatedAt    time.Time // admins.created_at
}
