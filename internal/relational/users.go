package relational

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/models"

	"github.com/lib/pq"
)

const userColumns = `id, identity_id, email, password_hash, role, first_name, last_name,
	phone, address_line, city, state, zip, profile_image_url, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.IdentityID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName,
		&u.Phone, &u.AddressLine, &u.City, &u.State, &u.Zip, &u.ProfileImgURL, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user. Returns duplicate_email / duplicate_user_id
// on a uniqueness conflict.
func (s *Store) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (identity_id, email, password_hash, role, first_name, last_name,
			phone, address_line, city, state, zip, profile_image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, true)
		RETURNING ` + userColumns

	row := s.db.QueryRowContext(ctx, query,
		u.IdentityID, strings.ToLower(u.Email), u.PasswordHash, u.Role, u.FirstName, u.LastName,
		u.Phone, u.AddressLine, u.City, u.State, u.Zip, u.ProfileImgURL,
	)

	created, err := scanUser(row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "email") {
				return nil, apperr.Conflict(apperr.CodeDuplicateEmail, "email already registered")
			}
			return nil, apperr.Conflict(apperr.CodeDuplicateUserID, "identity id already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// GetUserByID fetches a user by its stable id.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound(apperr.CodeUserNotFound, "user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail fetches a user by email (lowercased before lookup).
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound(apperr.CodeUserNotFound, "user not found")
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// UpdateUser applies a partial profile update and returns the fresh row.
func (s *Store) UpdateUser(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error) {
	existing, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		existing.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		existing.LastName = *req.LastName
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.AddressLine != nil {
		existing.AddressLine = *req.AddressLine
	}
	if req.City != nil {
		existing.City = *req.City
	}
	if req.State != nil {
		existing.State = *req.State
	}
	if req.Zip != nil {
		existing.Zip = *req.Zip
	}

	query := `
		UPDATE users SET first_name = $1, last_name = $2, phone = $3, address_line = $4,
			city = $5, state = $6, zip = $7, updated_at = now()
		WHERE id = $8
		RETURNING ` + userColumns

	row := s.db.QueryRowContext(ctx, query,
		existing.FirstName, existing.LastName, existing.Phone, existing.AddressLine,
		existing.City, existing.State, existing.Zip, id,
	)
	updated, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

// DeactivateUser soft-deactivates an account; their bookings survive.
func (s *Store) DeactivateUser(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `UPDATE users SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound(apperr.CodeUserNotFound, "user not found")
	}
	return nil
}

// ListUsers returns a page of users for the admin console.
func (s *Store) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UserIDsByCity returns up to limit ids (ascending) of users whose home city
// is city, used by cohort analytics to resolve CohortTraceByCity membership.
func (s *Store) UserIDsByCity(ctx context.Context, city string, limit int) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM users WHERE city = $1 ORDER BY id ASC LIMIT $2`, city, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by city: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
