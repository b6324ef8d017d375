// Package analytics implements the admin-only read-side of spec.md §4.9:
// cross-store aggregations joining relational booking data with the
// document store's clickstream events. Per spec.md §9 ("do not attempt a
// distributed transaction"), every aggregation here composes results from
// the two stores in application code rather than a single cross-store
// query.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/document"
	"github.com/Rajeswari195/kayak/internal/models"
	"github.com/Rajeswari195/kayak/internal/relational"
)

const (
	minYear = 2000
	maxYear = 2100

	defaultRevenueLimit = 100
	maxRevenueLimit     = 100

	defaultClickLimit = 100
	maxClickLimit     = 500

	defaultSinceDays = 30

	cohortTopN = 20
)

// relationalStore is the subset of *relational.Store the analytics service
// calls.
type relationalStore interface {
	TopPropertiesByRevenue(ctx context.Context, year, limit int) ([]relational.PropertyRevenue, error)
	CityRevenueForYear(ctx context.Context, year int) ([]relational.CityRevenue, error)
	TopProvidersForMonth(ctx context.Context, year, month, limit int) ([]relational.ProviderRevenue, error)
	UserIDsByCity(ctx context.Context, city string, limit int) ([]int64, error)
}

// documentClickstream is the subset of *document.ClickstreamStore the
// analytics service calls.
type documentClickstream interface {
	ByUser(ctx context.Context, userID int64, limit int64) ([]models.ClickstreamEvent, error)
	ByUserIDs(ctx context.Context, userIDs []int64, limit int64) ([]models.ClickstreamEvent, error)
	PageClickStats(ctx context.Context, sinceDays int, limit int64) ([]document.PageEventCount, error)
	ListingClickStats(ctx context.Context, sinceDays int, limit int64) ([]document.ListingEventCount, error)
}

// cache is the subset of *redis.Client that withStampedeGuard takes a
// per-aggregation lock through. The lock does not share results and does
// not hold back concurrent callers: every caller computes its own result.
type cache interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

// Service answers the admin analytics endpoints of spec.md §4.9.
type Service struct {
	relational relationalStore
	clicks     documentClickstream
	cache      cache
	lockTTL    time.Duration
}

// NewService wires the analytics read-side to the relational store, the
// clickstream document store, and an optional stampede-guard cache (pass
// nil to disable locking, as tests do).
func NewService(r relationalStore, c documentClickstream, cch cache, lockTTL time.Duration) *Service {
	if lockTTL <= 0 {
		lockTTL = 10 * time.Second
	}
	return &Service{relational: r, clicks: c, cache: cch, lockTTL: lockTTL}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampOrDefault applies def when the caller didn't supply a limit (v <= 0
// means "absent" for these query params, since a real limit is always
// positive), then clamps whatever value results into [lo,hi]. Applying the
// default before clamping matters: clamping an absent 0 straight into
// [1,hi] would silently return 1 instead of def.
func clampOrDefault(v, def, lo, hi int) int {
	if v <= 0 {
		v = def
	}
	return clamp(v, lo, hi)
}

func validateYear(year int) error {
	if year < minYear || year > maxYear {
		return apperr.BadRequest(apperr.CodeInvalidYear, "year is out of range")
	}
	return nil
}

func validateMonth(month int) error {
	if month < 1 || month > 12 {
		return apperr.BadRequest(apperr.CodeInvalidMonth, "month must be between 1 and 12")
	}
	return nil
}

// withStampedeGuard takes the cache lock for key (when a cache is set) and
// releases it after fn returns. fn runs on every path: without a cache, when
// the lock call fails, when another caller holds the lock, and when this
// caller gets it. The lock therefore does not limit how many identical
// aggregations reach Postgres at once.
func (s *Service) withStampedeGuard(ctx context.Context, key string, fn func() error) error {
	if s.cache == nil {
		return fn()
	}
	acquired, err := s.cache.AcquireLock(ctx, "analytics:"+key, s.lockTTL)
	if err != nil || !acquired {
		return fn()
	}
	defer s.cache.ReleaseLock(ctx, "analytics:"+key)
	return fn()
}

// PropertyRevenueRow is one row of TopPropertiesByRevenue.
type PropertyRevenueRow struct {
	ListingType  string  `json:"listingType"`
	ListingID    int64   `json:"listingId"`
	ListingName  string  `json:"listingName"`
	TotalRevenue float64 `json:"totalRevenue"`
	Currency     string  `json:"currency"`
}

// TopPropertiesByRevenue implements spec.md §4.9's property-revenue
// leaderboard for the given calendar year.
func (s *Service) TopPropertiesByRevenue(ctx context.Context, year, limit int) ([]PropertyRevenueRow, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	limit = clampOrDefault(limit, defaultRevenueLimit, 1, maxRevenueLimit)

	var rows []relational.PropertyRevenue
	err := s.withStampedeGuard(ctx, fmt.Sprintf("top-properties-%d", year), func() error {
		var err error
		rows, err = s.relational.TopPropertiesByRevenue(ctx, year, limit)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]PropertyRevenueRow, len(rows))
	for i, r := range rows {
		out[i] = PropertyRevenueRow{
			ListingType:  r.ItemType,
			ListingID:    r.ListingID,
			ListingName:  r.ListingName,
			TotalRevenue: r.TotalRevenue,
			Currency:     r.Currency,
		}
	}
	return out, nil
}

// CityRevenueRow is one row of CityRevenueForYear.
type CityRevenueRow struct {
	City         string  `json:"city"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// CityRevenueForYear implements spec.md §4.9: three parallel aggregations
// (hotels by city, cars by pickup city, flights by origin airport's city),
// sum-merged and sorted descending.
func (s *Service) CityRevenueForYear(ctx context.Context, year int) ([]CityRevenueRow, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}

	var rows []relational.CityRevenue
	err := s.withStampedeGuard(ctx, fmt.Sprintf("city-revenue-%d", year), func() error {
		var err error
		rows, err = s.relational.CityRevenueForYear(ctx, year)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]CityRevenueRow, len(rows))
	for i, r := range rows {
		out[i] = CityRevenueRow{City: r.City, TotalRevenue: r.TotalRevenue}
	}
	return out, nil
}

// ProviderRevenueRow is one row of TopProvidersForMonth.
type ProviderRevenueRow struct {
	Provider     string  `json:"provider"`
	ListingType  string  `json:"listingType"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// TopProvidersForMonth implements spec.md §4.9's provider leaderboard for
// one calendar month.
func (s *Service) TopProvidersForMonth(ctx context.Context, year, month, limit int) ([]ProviderRevenueRow, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	limit = clampOrDefault(limit, defaultRevenueLimit, 1, maxRevenueLimit)

	rows, err := s.relational.TopProvidersForMonth(ctx, year, month, limit)
	if err != nil {
		return nil, err
	}

	out := make([]ProviderRevenueRow, len(rows))
	for i, r := range rows {
		out[i] = ProviderRevenueRow{Provider: r.Provider, ListingType: r.ItemType, TotalRevenue: r.TotalRevenue}
	}
	return out, nil
}

// PageClickStats implements spec.md §4.9: clickstream events grouped by
// (page, eventType) over the trailing window.
func (s *Service) PageClickStats(ctx context.Context, sinceDays, limit int) ([]document.PageEventCount, error) {
	sinceDays = clampSinceDays(sinceDays)
	limit = clampOrDefault(limit, defaultClickLimit, 1, maxClickLimit)
	return s.clicks.PageClickStats(ctx, sinceDays, int64(limit))
}

// ListingClickStats implements spec.md §4.9: clickstream events grouped by
// (listingType, listingId) over the trailing window.
func (s *Service) ListingClickStats(ctx context.Context, sinceDays, limit int) ([]document.ListingEventCount, error) {
	sinceDays = clampSinceDays(sinceDays)
	limit = clampOrDefault(limit, defaultClickLimit, 1, maxClickLimit)
	return s.clicks.ListingClickStats(ctx, sinceDays, int64(limit))
}

func clampSinceDays(sinceDays int) int {
	if sinceDays <= 0 {
		return defaultSinceDays
	}
	return sinceDays
}

// SessionTrace is one session's page sequence within a UserTrace.
type SessionTrace struct {
	SessionID string    `json:"sessionId"`
	Pages     []string  `json:"pages"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
}

// UserTrace implements spec.md §4.9: a user's events, partitioned by
// session, each emitted as a page sequence with first/last timestamps.
func (s *Service) UserTrace(ctx context.Context, userID int64, limitEvents int) ([]SessionTrace, error) {
	limitEvents = clampOrDefault(limitEvents, defaultClickLimit, 1, maxClickLimit)

	events, err := s.clicks.ByUser(ctx, userID, int64(limitEvents))
	if err != nil {
		return nil, err
	}
	return partitionBySession(events), nil
}

// CohortTrace is one recurring page-sequence shape within a city cohort,
// with the count of sessions that followed it.
type CohortTrace struct {
	Pages []string `json:"pages"`
	Count int      `json:"count"`
}

// CohortTraceByCity implements spec.md §4.9: resolve a city's userIds from
// the relational store, fetch their clickstream events, build per-session
// page sequences, and return the top 20 most common sequences.
func (s *Service) CohortTraceByCity(ctx context.Context, city string, limitUsers, limitEvents int) ([]CohortTrace, error) {
	limitUsers = clampOrDefault(limitUsers, defaultClickLimit, 1, maxClickLimit)
	limitEvents = clampOrDefault(limitEvents, defaultClickLimit*10, 1, maxClickLimit*10)

	userIDs, err := s.relational.UserIDsByCity(ctx, city, limitUsers)
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return nil, nil
	}

	events, err := s.clicks.ByUserIDs(ctx, userIDs, int64(limitEvents))
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	sequences := make(map[string][]string)
	for _, sess := range partitionBySessionFromUserSessions(events) {
		key := fmt.Sprint(sess)
		if counts[key] == 0 {
			sequences[key] = sess
		}
		counts[key]++
	}

	traces := make([]CohortTrace, 0, len(counts))
	for key, count := range counts {
		traces = append(traces, CohortTrace{Pages: sequences[key], Count: count})
	}
	sort.Slice(traces, func(i, j int) bool { return traces[i].Count > traces[j].Count })
	if len(traces) > cohortTopN {
		traces = traces[:cohortTopN]
	}
	return traces, nil
}

// partitionBySession groups events by sessionId in first-seen order and
// builds each session's ordered page sequence plus first/last timestamps.
func partitionBySession(events []models.ClickstreamEvent) []SessionTrace {
	order := make([]string, 0)
	bySession := make(map[string]*SessionTrace)

	for _, e := range events {
		t, ok := bySession[e.SessionID]
		if !ok {
			t = &SessionTrace{SessionID: e.SessionID, FirstSeen: e.CreatedAt, LastSeen: e.CreatedAt}
			bySession[e.SessionID] = t
			order = append(order, e.SessionID)
		}
		t.Pages = append(t.Pages, e.Page)
		if e.CreatedAt.Before(t.FirstSeen) {
			t.FirstSeen = e.CreatedAt
		}
		if e.CreatedAt.After(t.LastSeen) {
			t.LastSeen = e.CreatedAt
		}
	}

	out := make([]SessionTrace, 0, len(order))
	for _, sid := range order {
		out = append(out, *bySession[sid])
	}
	return out
}

// partitionBySessionFromUserSessions groups events by (userId, sessionId),
// since cohort sequences must not merge two different users who happen to
// reuse a session id across devices/time.
func partitionBySessionFromUserSessions(events []models.ClickstreamEvent) [][]string {
	order := make([]string, 0)
	pages := make(map[string][]string)

	for _, e := range events {
		userID := int64(0)
		if e.UserID != nil {
			userID = *e.UserID
		}
		key := fmt.Sprintf("%d:%s", userID, e.SessionID)
		if _, ok := pages[key]; !ok {
			order = append(order, key)
		}
		pages[key] = append(pages[key], e.Page)
	}

	out := make([][]string, 0, len(order))
	for _, key := range order {
		out = append(out, pages[key])
	}
	return out
}
