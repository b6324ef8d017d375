// Package auth implements the auth subsystem of spec.md §4.1: credential
// verification, signed stateless token issuance, and request-scoped
// principal attachment.
package auth

import (
	"context"
	"regexp"
	"strings"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/models"
)

var (
	identityIDPattern = regexp.MustCompile(`^[0-9]{3}-[0-9]{2}-[0-9]{4}$`)
	zipPattern        = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// usStates is the 50-entry US-state set validated against on register and
// profile update.
var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true, "CT": true,
	"DE": true, "FL": true, "GA": true, "HI": true, "ID": true, "IL": true, "IN": true,
	"IA": true, "KS": true, "KY": true, "LA": true, "ME": true, "MD": true, "MA": true,
	"MI": true, "MN": true, "MS": true, "MO": true, "MT": true, "NE": true, "NV": true,
	"NH": true, "NJ": true, "NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true, "WI": true,
	"WY": true,
}

// store is the subset of *relational.Store the service calls.
type store interface {
	CreateUser(ctx context.Context, u *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// tokens is the subset of *Service (the token.go service) needed here,
// narrowed so the auth-orchestration service doesn't depend on its own
// concrete type.
type tokens interface {
	Issue(userID int64, role models.Role) (string, error)
}

// AuthService orchestrates registration and login: it owns the validation
// rules spec.md §4.1 requires before ever touching the store, and wires the
// password verifier and token issuer together.
type AuthService struct {
	store  store
	tokens tokens
}

// NewAuthService wires the auth orchestration service to its store and
// token issuer.
func NewAuthService(s store, t tokens) *AuthService {
	return &AuthService{store: s, tokens: t}
}

// ValidateState reports the malformed_state error for a state that isn't
// one of the 50 US postal abbreviations. Exported so profile updates (PATCH
// /api/users/:id) can reuse the same rule.
func ValidateState(state string) error {
	if !usStates[strings.ToUpper(state)] {
		return apperr.BadRequest(apperr.CodeMalformedState, "state must be a valid two-letter US state code")
	}
	return nil
}

// ValidateZip reports the malformed_zip error for a zip that isn't 5 or
// 5-plus-4 digits.
func ValidateZip(zip string) error {
	if !zipPattern.MatchString(zip) {
		return apperr.BadRequest(apperr.CodeMalformedZip, "zip must be formatted 12345 or 12345-6789")
	}
	return nil
}

// Register validates and creates a new user, per spec.md §4.1.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if !identityIDPattern.MatchString(req.IdentityID) {
		return nil, apperr.BadRequest(apperr.CodeInvalidUserID, "identityId must be formatted 123-45-6789")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, apperr.BadRequest(apperr.CodeInvalidEmail, "email is not a valid address")
	}
	if err := ValidateState(req.State); err != nil {
		return nil, err
	}
	if err := ValidateZip(req.Zip); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &models.User{
		IdentityID:  req.IdentityID,
		Email:       strings.ToLower(req.Email),
		PasswordHash: hash,
		Role:        models.RoleUser,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		AddressLine: req.AddressLine,
		City:        req.City,
		State:       strings.ToUpper(req.State),
		Zip:         req.Zip,
	}

	return s.store.CreateUser(ctx, user)
}

// Login verifies credentials and issues a bearer token, per spec.md §4.1.
// The email lookup is always lowercased and the password compare runs
// through bcrypt's constant-time comparison regardless of whether the
// account exists, so a missing account and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		// Run the hash compare against a fixed dummy hash so a nonexistent
		// account takes the same code path as a wrong password.
		VerifyPassword(dummyHash, req.Password)
		return nil, apperr.Unauthorized(apperr.CodeInvalidCredential, "invalid email or password")
	}
	if !user.IsActive || !VerifyPassword(user.PasswordHash, req.Password) {
		return nil, apperr.Unauthorized(apperr.CodeInvalidCredential, "invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &models.LoginResponse{AccessToken: token, User: user}, nil
}

// dummyHash is a valid bcrypt hash of an arbitrary string, compared against
// on a lookup miss so timing doesn't reveal account existence.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5L5oZIp0qhWqOlvAPQa9Fo/r7/q6m"
