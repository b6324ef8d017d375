package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/models"
)

type fakeUserStore struct {
	created    *models.User
	byEmail    *models.User
	createErr  error
	getErr     error
}

func (f *fakeUserStore) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = 1
	f.created = u
	return u, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byEmail, nil
}

type fakeTokens struct{ issued string }

func (f *fakeTokens) Issue(userID int64, role models.Role) (string, error) {
	return f.issued, nil
}

func validRegisterRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		IdentityID: "123-45-6789",
		Email:      "Jane.Doe@Example.com",
		Password:   "s3cret!",
		FirstName:  "Jane",
		LastName:   "Doe",
		City:       "Austin",
		State:      "TX",
		Zip:        "78701",
	}
}

func TestRegisterRejectsMalformedIdentityID(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{}, &fakeTokens{})
	req := validRegisterRequest()
	req.IdentityID = "not-an-ssn"

	_, err := svc.Register(context.Background(), req)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeInvalidUserID {
		t.Fatalf("expected invalid_user_id, got %v", err)
	}
}

func TestRegisterRejectsMalformedState(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{}, &fakeTokens{})
	req := validRegisterRequest()
	req.State = "ZZ"

	_, err := svc.Register(context.Background(), req)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeMalformedState {
		t.Fatalf("expected malformed_state, got %v", err)
	}
}

func TestRegisterRejectsMalformedZip(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{}, &fakeTokens{})
	req := validRegisterRequest()
	req.Zip = "abc"

	_, err := svc.Register(context.Background(), req)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeMalformedZip {
		t.Fatalf("expected malformed_zip, got %v", err)
	}
}

func TestRegisterAcceptsNineDigitZip(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{}, &fakeTokens{})
	req := validRegisterRequest()
	req.Zip = "78701-1234"

	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegisterLowercasesEmailAndHashesPassword(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewAuthService(store, &fakeTokens{})

	if _, err := svc.Register(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.created.Email != "jane.doe@example.com" {
		t.Fatalf("expected lowercased email, got %s", store.created.Email)
	}
	if store.created.PasswordHash == "" || store.created.PasswordHash == "s3cret!" {
		t.Fatal("expected password to be hashed, not stored as plaintext")
	}
}

func TestRegisterPropagatesDuplicateEmail(t *testing.T) {
	store := &fakeUserStore{createErr: apperr.Conflict(apperr.CodeDuplicateEmail, "already registered")}
	svc := NewAuthService(store, &fakeTokens{})

	_, err := svc.Register(context.Background(), validRegisterRequest())
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeDuplicateEmail {
		t.Fatalf("expected duplicate_email, got %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hash, _ := HashPassword("correct-horse")
	store := &fakeUserStore{byEmail: &models.User{ID: 1, Email: "a@b.com", PasswordHash: hash, IsActive: true}}
	svc := NewAuthService(store, &fakeTokens{issued: "tok"})

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "a@b.com", Password: "wrong"})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeInvalidCredential {
		t.Fatalf("expected invalid_credentials, got %v", err)
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	hash, _ := HashPassword("correct-horse")
	store := &fakeUserStore{byEmail: &models.User{ID: 1, Email: "a@b.com", PasswordHash: hash, IsActive: false}}
	svc := NewAuthService(store, &fakeTokens{issued: "tok"})

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "a@b.com", Password: "correct-horse"})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeInvalidCredential {
		t.Fatalf("expected invalid_credentials for inactive user, got %v", err)
	}
}

func TestLoginSucceedsAndIssuesToken(t *testing.T) {
	hash, _ := HashPassword("correct-horse")
	store := &fakeUserStore{byEmail: &models.User{ID: 1, Email: "a@b.com", PasswordHash: hash, IsActive: true}}
	svc := NewAuthService(store, &fakeTokens{issued: "signed-token"})

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: "A@B.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken != "signed-token" {
		t.Fatalf("expected issued token, got %s", resp.AccessToken)
	}
}

func TestLoginRejectsUnknownEmailWithSameErrorAsWrongPassword(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{getErr: apperr.NotFound(apperr.CodeUserNotFound, "not found")}, &fakeTokens{})

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "ghost@b.com", Password: "whatever"})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeInvalidCredential {
		t.Fatalf("expected invalid_credentials, got %v", err)
	}
}
