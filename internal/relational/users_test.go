package relational

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/models"
	"github.com/Rajeswari195/kayak/pkg/database"
)

var fixedCreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// newMockStore mirrors the teacher's newMockFlightRepo/newMockBookingRepo
// helper: a sqlmock-backed *sql.DB wrapped in the real gateway type, plus a
// cleanup func, so each test only needs to script expectations and assert.
func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	store := NewStore(&database.DB{DB: db})
	return store, mock, func() { db.Close() }
}

var userRows = []string{
	"id", "identity_id", "email", "password_hash", "role", "first_name", "last_name",
	"phone", "address_line", "city", "state", "zip", "profile_image_url", "is_active",
	"created_at", "updated_at",
}

func TestGetUserByIDReturnsNotFound(t *testing.T) {
	store, mock, cleanup := newMockStore(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetUserByID(context.Background(), 404)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeUserNotFound {
		t.Fatalf("expected user_not_found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUserMapsDuplicateEmailViolation(t *testing.T) {
	store, mock, cleanup := newMockStore(t)
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := store.CreateUser(context.Background(), &models.User{
		IdentityID: "123-45-6789",
		Email:      "dup@example.com",
	})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeDuplicateEmail {
		t.Fatalf("expected duplicate_email, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListUsersScansEveryRow(t *testing.T) {
	store, mock, cleanup := newMockStore(t)
	defer cleanup()

	rows := sqlmock.NewRows(userRows).
		AddRow(int64(1), "111-11-1111", "a@x.com", "hash", models.RoleUser, "A", "One",
			"555", "1 St", "Austin", "TX", "78701", "", true, fixedCreatedAt, fixedCreatedAt).
		AddRow(int64(2), "222-22-2222", "b@x.com", "hash", models.RoleUser, "B", "Two",
			"555", "2 St", "Austin", "TX", "78701", "", true, fixedCreatedAt, fixedCreatedAt)

	mock.ExpectQuery(`SELECT .* FROM users ORDER BY id ASC LIMIT \$1 OFFSET \$2`).
		WithArgs(50, 0).
		WillReturnRows(rows)

	users, err := store.ListUsers(context.Background(), 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeactivateUserReturnsNotFoundWhenNoRowsAffected(t *testing.T) {
	store, mock, cleanup := newMockStore(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE users SET is_active = false`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeactivateUser(context.Background(), 9)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeUserNotFound {
		t.Fatalf("expected user_not_found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
