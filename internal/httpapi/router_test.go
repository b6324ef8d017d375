package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rajeswari195/kayak/internal/auth"
	"github.com/Rajeswari195/kayak/internal/models"
)

type fakeAuthStore struct {
	created *models.User
	byEmail *models.User
}

func (f *fakeAuthStore) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	u.ID = 1
	f.created = u
	return u, nil
}

func (f *fakeAuthStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.byEmail, nil
}

func testDeps() Deps {
	tokens := auth.NewService("test-secret-at-least-32-bytes-long!!", 3600)
	authService := auth.NewAuthService(&fakeAuthStore{}, tokens)
	return Deps{Tokens: tokens, Auth: authService}
}

func TestHealthEndpoint(t *testing.T) {
	router := NewRouter(testDeps())
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRegisterRejectsMalformedIdentityID(t *testing.T) {
	router := NewRouter(testDeps())
	body := `{"identityId":"not-an-ssn","email":"a@b.com","password":"x","city":"Austin","state":"TX","zip":"78701"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["errorCode"] != "invalid_user_id" {
		t.Fatalf("expected invalid_user_id, got %v", resp["errorCode"])
	}
}

func TestRegisterSucceeds(t *testing.T) {
	router := NewRouter(testDeps())
	body := `{"identityId":"123-45-6789","email":"a@b.com","password":"x","city":"Austin","state":"TX","zip":"78701"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthMeRequiresToken(t *testing.T) {
	router := NewRouter(testDeps())
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSearchFlightsRequiresFilters(t *testing.T) {
	router := NewRouter(testDeps())
	req := httptest.NewRequest(http.MethodGet, "/api/search/flights", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBookFlightRequiresAuth(t *testing.T) {
	router := NewRouter(testDeps())
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/flight", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminRoutesRejectNonAdmin(t *testing.T) {
	deps := testDeps()
	token, err := deps.Tokens.Issue(7, models.RoleUser)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	router := NewRouter(deps)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminRoutesRejectMissingToken(t *testing.T) {
	router := NewRouter(testDeps())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/analytics/revenue/properties", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
