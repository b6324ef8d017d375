package httpapi

import (
	"net/http"
	"strconv"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/auth"
	"github.com/Rajeswari195/kayak/internal/models"

	"github.com/gorilla/mux"
)

// register handles POST /api/users.
func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.deps.Auth.Register(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, user)
}

// login handles POST /api/auth/login.
func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.deps.Auth.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, resp)
}

// me handles GET /api/auth/me.
func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	p := auth.FromContext(r.Context())
	user, err := h.deps.Users.GetUserByID(r.Context(), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, user)
}

// pathInt64 parses a path-parameter id, reporting missing_field on failure.
func pathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.BadRequest(apperr.CodeMissingField, name+" must be an integer").WithDetails(map[string]any{"field": name})
	}
	return id, nil
}

// requireSelfOrAdmin enforces the 🔒 self-or-admin guard spec.md §6 puts on
// the user resource routes.
func requireSelfOrAdmin(r *http.Request, targetID int64) error {
	p := auth.FromContext(r.Context())
	if p == nil {
		return apperr.Unauthorized(apperr.CodeTokenMissing, "missing bearer token")
	}
	if p.UserID != targetID && !p.IsAdmin() {
		return apperr.ForbiddenErr("you may only access your own profile")
	}
	return nil
}

// getUser handles GET /api/users/:id.
func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := requireSelfOrAdmin(r, id); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.deps.Users.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, user)
}

// updateUser handles PATCH /api/users/:id.
func (h *handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := requireSelfOrAdmin(r, id); err != nil {
		writeError(w, err)
		return
	}

	var req models.UpdateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.State != nil {
		if err := auth.ValidateState(*req.State); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Zip != nil {
		if err := auth.ValidateZip(*req.Zip); err != nil {
			writeError(w, err)
			return
		}
	}

	user, err := h.deps.Users.UpdateUser(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, user)
}
