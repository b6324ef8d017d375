package relational

import (
	"context"
	"fmt"
)

// PropertyRevenue is one row of the TopPropertiesByRevenue aggregation.
type PropertyRevenue struct {
	ItemType     string
	ListingID    int64
	ListingName  string
	TotalRevenue float64
	Currency     string
}

// TopPropertiesByRevenue joins booking_items to CONFIRMED bookings created
// in the given year, groups by (itemType, listingId), and returns the top
// `limit` by revenue. listingName is derived per item type.
func (s *Store) TopPropertiesByRevenue(ctx context.Context, year, limit int) ([]PropertyRevenue, error) {
	query := `
		SELECT bi.item_type,
		       coalesce(bi.flight_id, bi.hotel_id, bi.car_id) AS listing_id,
		       CASE bi.item_type
		           WHEN 'FLIGHT' THEN (SELECT airline || ' ' || flight_number FROM flights WHERE id = bi.flight_id)
		           WHEN 'HOTEL'  THEN (SELECT name FROM hotels WHERE id = bi.hotel_id)
		           WHEN 'CAR'    THEN (SELECT provider_name || ' ' || make || ' ' || model FROM cars WHERE id = bi.car_id)
		       END AS listing_name,
		       sum(bi.total_price) AS total_revenue,
		       max(bi.currency) AS currency
		FROM booking_items bi
		JOIN bookings b ON b.id = bi.booking_id
		WHERE b.status = 'CONFIRMED' AND extract(year FROM b.created_at) = $1
		GROUP BY bi.item_type, listing_id
		ORDER BY total_revenue DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, year, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue by property: %w", err)
	}
	defer rows.Close()

	var results []PropertyRevenue
	for rows.Next() {
		var r PropertyRevenue
		if err := rows.Scan(&r.ItemType, &r.ListingID, &r.ListingName, &r.TotalRevenue, &r.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan property revenue row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// CityRevenue is one row of the CityRevenueForYear aggregation.
type CityRevenue struct {
	City         string
	TotalRevenue float64
}

// CityRevenueForYear sum-merges three parallel aggregations: hotels by
// hotel.city, cars by pickup_city, flights by origin airport's city.
func (s *Store) CityRevenueForYear(ctx context.Context, year int) ([]CityRevenue, error) {
	query := `
		SELECT city, sum(revenue) AS total_revenue FROM (
			SELECT h.city AS city, bi.total_price AS revenue
			FROM booking_items bi
			JOIN bookings b ON b.id = bi.booking_id
			JOIN hotels h ON h.id = bi.hotel_id
			WHERE b.status = 'CONFIRMED' AND extract(year FROM b.created_at) = $1 AND bi.item_type = 'HOTEL'
			UNION ALL
			SELECT c.pickup_city AS city, bi.total_price AS revenue
			FROM booking_items bi
			JOIN bookings b ON b.id = bi.booking_id
			JOIN cars c ON c.id = bi.car_id
			WHERE b.status = 'CONFIRMED' AND extract(year FROM b.created_at) = $1 AND bi.item_type = 'CAR'
			UNION ALL
			SELECT coalesce(a.city, 'Unknown') AS city, bi.total_price AS revenue
			FROM booking_items bi
			JOIN bookings b ON b.id = bi.booking_id
			JOIN flights f ON f.id = bi.flight_id
			LEFT JOIN airports a ON a.id = f.origin_airport_id
			WHERE b.status = 'CONFIRMED' AND extract(year FROM b.created_at) = $1 AND bi.item_type = 'FLIGHT'
		) combined
		GROUP BY city
		ORDER BY total_revenue DESC`

	rows, err := s.db.QueryContext(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue by city: %w", err)
	}
	defer rows.Close()

	var results []CityRevenue
	for rows.Next() {
		var r CityRevenue
		if err := rows.Scan(&r.City, &r.TotalRevenue); err != nil {
			return nil, fmt.Errorf("failed to scan city revenue row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ProviderRevenue is one row of the TopProvidersForMonth aggregation.
type ProviderRevenue struct {
	Provider     string
	ItemType     string
	TotalRevenue float64
}

// TopProvidersForMonth groups CONFIRMED items in the given calendar month by
// (provider, itemType). "Provider" is the airline, hotel chain name (we use
// the hotel name itself, there being no separate chain field), or car
// provider name.
func (s *Store) TopProvidersForMonth(ctx context.Context, year, month, limit int) ([]ProviderRevenue, error) {
	query := `
		SELECT provider, item_type, sum(revenue) AS total_revenue FROM (
			SELECT f.airline AS provider, 'FLIGHT' AS item_type, bi.total_price AS revenue
			FROM booking_items bi
			JOIN bookings b ON b.id = bi.booking_id
			JOIN flights f ON f.id = bi.flight_id
			WHERE b.status = 'CONFIRMED' AND bi.item_type = 'FLIGHT'
			  AND extract(year FROM b.created_at) = $1 AND extract(month FROM b.created_at) = $2
			UNION ALL
			SELECT h.name AS provider, 'HOTEL' AS item_type, bi.total_price AS revenue
			FROM booking_items bi
			JOIN bookings b ON b.id = bi.booking_id
			JOIN hotels h ON h.id = bi.hotel_id
			WHERE b.status = 'CONFIRMED' AND bi.item_type = 'HOTEL'
			  AND extract(year FROM b.created_at) = $1 AND extract(month FROM b.created_at) = $2
			UNION ALL
			SELECT c.provider_name AS provider, 'CAR' AS item_type, bi.total_price AS revenue
			FROM booking_items bi
			JOIN bookings b ON b.id = bi.booking_id
			JOIN cars c ON c.id = bi.car_id
			WHERE b.status = 'CONFIRMED' AND bi.item_type = 'CAR'
			  AND extract(year FROM b.created_at) = $1 AND extract(month FROM b.created_at) = $2
		) combined
		GROUP BY provider, item_type
		ORDER BY total_revenue DESC
		LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, year, month, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue by provider: %w", err)
	}
	defer rows.Close()

	var results []ProviderRevenue
	for rows.Next() {
		var r ProviderRevenue
		if err := rows.Scan(&r.Provider, &r.ItemType, &r.TotalRevenue); err != nil {
			return nil, fmt.Errorf("failed to scan provider revenue row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
