package httpapi

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/auth"
	"github.com/Rajeswari195/kayak/internal/models"

	"github.com/gorilla/mux"
)

const (
	defaultAdminPageSize  = 50
	adminDeactivateAction = "user.deactivate"
)

func queryIntDefault(r *http.Request, name string, def int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return def
}

// adminListUsers handles GET /api/admin/users.
func (h *handler) adminListUsers(w http.ResponseWriter, r *http.Request) {
	limit := queryIntDefault(r, "limit", defaultAdminPageSize)
	offset := queryIntDefault(r, "offset", 0)

	users, err := h.deps.Users.ListUsers(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, users)
}

// adminGetUser handles GET /api/admin/users/:id.
func (h *handler) adminGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
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

// adminDeactivateUser handles PATCH /api/admin/users/:id/deactivate. Per
// SPEC_FULL.md §10, this is the one admin mutation the core owns, so it is
// also the one write path given to the admin_audit_logs collection.
func (h *handler) adminDeactivateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.deps.Users.DeactivateUser(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	actor := auth.FromContext(r.Context())
	if h.deps.Audit != nil {
		entry := &models.AdminAuditLog{
			ActorID:  actor.UserID,
			Action:   adminDeactivateAction,
			TargetID: strconv.FormatInt(id, 10),
		}
		if err := h.deps.Audit.Record(r.Context(), entry); err != nil {
			// The deactivation already committed; a missing audit row is
			// logged but never rolls back the mutation it describes.
			log.Printf("httpapi: failed to record audit log for deactivation of user %d: %v", id, err)
			writeOK(w, map[string]any{"deactivated": true, "auditLogged": false})
			return
		}
	}
	writeOK(w, map[string]any{"deactivated": true, "auditLogged": true})
}

func (h *handler) adminRevenueProperties(w http.ResponseWriter, r *http.Request) {
	year := queryIntDefault(r, "year", 0)
	limit := queryIntDefault(r, "limit", 0)

	rows, err := h.deps.Analytics.TopPropertiesByRevenue(r.Context(), year, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, rows)
}

func (h *handler) adminRevenueCity(w http.ResponseWriter, r *http.Request) {
	year := queryIntDefault(r, "year", 0)

	rows, err := h.deps.Analytics.CityRevenueForYear(r.Context(), year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, rows)
}

func (h *handler) adminRevenueProviders(w http.ResponseWriter, r *http.Request) {
	year := queryIntDefault(r, "year", 0)
	month := queryIntDefault(r, "month", 0)
	limit := queryIntDefault(r, "limit", 0)

	rows, err := h.deps.Analytics.TopProvidersForMonth(r.Context(), year, month, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, rows)
}

func (h *handler) adminClicksPages(w http.ResponseWriter, r *http.Request) {
	sinceDays := queryIntDefault(r, "sinceDays", 0)
	limit := queryIntDefault(r, "limit", 0)

	rows, err := h.deps.Analytics.PageClickStats(r.Context(), sinceDays, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, rows)
}

func (h *handler) adminClicksListings(w http.ResponseWriter, r *http.Request) {
	sinceDays := queryIntDefault(r, "sinceDays", 0)
	limit := queryIntDefault(r, "limit", 0)

	rows, err := h.deps.Analytics.ListingClickStats(r.Context(), sinceDays, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, rows)
}

func (h *handler) adminUserTrace(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	limit := queryIntDefault(r, "limitEvents", 0)

	rows, err := h.deps.Analytics.UserTrace(r.Context(), id, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, rows)
}

func (h *handler) adminCohortTrace(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]
	if city == "" {
		writeError(w, apperr.BadRequest(apperr.CodeMissingField, "city is required"))
		return
	}
	limitUsers := queryIntDefault(r, "limitUsers", 0)
	limitEvents := queryIntDefault(r, "limitEvents", 0)

	rows, err := h.deps.Analytics.CohortTraceByCity(r.Context(), city, limitUsers, limitEvents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, rows)
}
