package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/library-membership/internal/model"
	"github.com/iliyamo/library-membership/internal/utils"
)

// ErrAdminNotFound is returned when no admin matches an email.
var ErrAdminNotFound = errors.New("admin not found")

type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// Create hashes the password and inserts the admin. A taken email
// yields ErrDuplicateKey.
func (r *AdminRepo) Create(ctx context.Context, name, email, password string, cost int) (model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.Admin{}, err
	}
	a := model.Admin{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         "admin",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO admins (id, name, email, password_hash, role, is_active, created_at) VALUES (?,?,?,?,?,?,?)",
		a.ID, a.Name, a.Email, a.PasswordHash, a.Role, a.IsActive, a.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return model.Admin{}, ErrDuplicateKey
		}
		return model.Admin{}, err
	}
	return a, nil
}

// GetByEmail fetches an admin by normalized email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a model.Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,role,is_active,created_at FROM admins WHERE email=? LIMIT 1",
		email).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.IsActive, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrAdminNotFound
	}
	return a, err
}
