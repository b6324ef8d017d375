package relational

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/models"
)

const flightColumns = `id, airline, flight_number, origin_airport_id, destination_airport_id,
	departure_at, arrival_at, cabin_class, base_price, currency, seats_available, stops,
	total_duration_minutes, is_active`

func scanFlight(row interface{ Scan(...any) error }) (*models.Flight, error) {
	var f models.Flight
	err := row.Scan(
		&f.ID, &f.Airline, &f.FlightNumber, &f.OriginAirportID, &f.DestinationAirportID,
		&f.DepartureAt, &f.ArrivalAt, &f.CabinClass, &f.BasePrice, &f.Currency,
		&f.SeatsAvailable, &f.Stops, &f.TotalDurationMinutes, &f.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetFlightByID fetches a flight with no locking. The booking engine uses
// FindFlightByIDForUpdate instead.
func (s *Store) GetFlightByID(ctx context.Context, id int64) (*models.Flight, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+flightColumns+` FROM flights WHERE id = $1`, id)
	f, err := scanFlight(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound(apperr.CodeFlightNotFound, "flight not found")
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}
	return f, nil
}

// SearchFlights applies the filters of §4.2: active flights departing on the
// requested UTC day with enough seats, optionally bounded by price and stop
// count, sorted deterministically with id as tie-breaker.
func (s *Store) SearchFlights(ctx context.Context, f *models.FlightSearchFilter) ([]models.Flight, int, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	where = append(where, "is_active = true")
	where = append(where, fmt.Sprintf("origin_airport_id = (SELECT id FROM airports WHERE iata = %s)", arg(f.OriginIata)))
	where = append(where, fmt.Sprintf("destination_airport_id = (SELECT id FROM airports WHERE iata = %s)", arg(f.DestinationIata)))
	where = append(where, fmt.Sprintf("departure_at::date = %s::date", arg(f.DepartureDate)))
	where = append(where, fmt.Sprintf("seats_available >= %s", arg(f.Passengers)))

	if f.PriceMax != nil {
		where = append(where, fmt.Sprintf("base_price <= %s", arg(*f.PriceMax)))
	}
	if f.Stops != nil {
		if *f.Stops >= 2 {
			where = append(where, "stops >= 2")
		} else {
			where = append(where, fmt.Sprintf("stops = %s", arg(*f.Stops)))
		}
	}

	sortCol := "departure_at"
	switch f.SortBy {
	case "price":
		sortCol = "base_price"
	case "duration":
		sortCol = "total_duration_minutes"
	}
	order := "ASC"
	if f.SortOrder == models.SortDesc {
		order = "DESC"
	}

	countQuery := `SELECT count(*) FROM flights WHERE ` + strings.Join(where, " AND ")
	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count flights: %w", err)
	}

	limit := arg(f.PageSize)
	offset := arg(f.Page * f.PageSize)
	query := fmt.Sprintf(`SELECT %s FROM flights WHERE %s ORDER BY %s %s, id ASC LIMIT %s OFFSET %s`,
		flightColumns, strings.Join(where, " AND "), sortCol, order, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search flights: %w", err)
	}
	defer rows.Close()

	var flights []models.Flight
	for rows.Next() {
		fl, err := scanFlight(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan flight: %w", err)
		}
		flights = append(flights, *fl)
	}
	return flights, total, rows.Err()
}

const hotelColumns = `id, name, city, state, star_rating, base_price_per_night, currency,
	rooms_available, is_active`

func scanHotel(row interface{ Scan(...any) error }) (*models.Hotel, error) {
	var h models.Hotel
	err := row.Scan(&h.ID, &h.Name, &h.City, &h.State, &h.StarRating, &h.BasePricePerNight,
		&h.Currency, &h.RoomsAvailable, &h.IsActive)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// GetHotelByID fetches a hotel with no locking.
func (s *Store) GetHotelByID(ctx context.Context, id int64) (*models.Hotel, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = $1`, id)
	h, err := scanHotel(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound(apperr.CodeHotelNotFound, "hotel not found")
		}
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	return h, nil
}

// SearchHotels applies the filters of §4.2: case-insensitive exact city
// match, active only, optionally bounded by price and star rating.
func (s *Store) SearchHotels(ctx context.Context, f *models.HotelSearchFilter) ([]models.Hotel, int, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	where = append(where, "is_active = true")
	where = append(where, fmt.Sprintf("lower(city) = lower(%s)", arg(f.City)))
	where = append(where, fmt.Sprintf("rooms_available >= %s", arg(max(1, f.Guests))))

	if f.PriceMax != nil {
		where = append(where, fmt.Sprintf("base_price_per_night <= %s", arg(*f.PriceMax)))
	}
	if f.MinStars != nil {
		where = append(where, fmt.Sprintf("star_rating >= %s", arg(*f.MinStars)))
	}

	sortCol := "base_price_per_night"
	if f.SortBy == "rating" {
		sortCol = "star_rating"
	}
	order := "ASC"
	if f.SortOrder == models.SortDesc {
		order = "DESC"
	}

	countQuery := `SELECT count(*) FROM hotels WHERE ` + strings.Join(where, " AND ")
	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count hotels: %w", err)
	}

	limit := arg(f.PageSize)
	offset := arg(f.Page * f.PageSize)
	query := fmt.Sprintf(`SELECT %s FROM hotels WHERE %s ORDER BY %s %s, id ASC LIMIT %s OFFSET %s`,
		hotelColumns, strings.Join(where, " AND "), sortCol, order, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search hotels: %w", err)
	}
	defer rows.Close()

	var hotels []models.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, *h)
	}
	return hotels, total, rows.Err()
}

const carColumns = `id, provider_name, make, model, car_type, seats, transmission,
	pickup_city, daily_price, currency, units_available, is_active`

func scanCar(row interface{ Scan(...any) error }) (*models.Car, error) {
	var c models.Car
	err := row.Scan(&c.ID, &c.ProviderName, &c.Make, &c.Model, &c.CarType, &c.Seats,
		&c.Transmission, &c.PickupCity, &c.DailyPrice, &c.Currency, &c.UnitsAvailable, &c.IsActive)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCarByID fetches a car with no locking.
func (s *Store) GetCarByID(ctx context.Context, id int64) (*models.Car, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1`, id)
	c, err := scanCar(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound(apperr.CodeCarNotFound, "car not found")
		}
		return nil, fmt.Errorf("failed to get car: %w", err)
	}
	return c, nil
}

// SearchCars applies the filters of §4.2: pickupLocation matches pickupCity,
// active only, optionally bounded by price and car type.
func (s *Store) SearchCars(ctx context.Context, f *models.CarSearchFilter) ([]models.Car, int, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	where = append(where, "is_active = true")
	where = append(where, fmt.Sprintf("lower(pickup_city) = lower(%s)", arg(f.PickupLocation)))
	where = append(where, "units_available >= 1")

	if f.PriceMax != nil {
		where = append(where, fmt.Sprintf("daily_price <= %s", arg(*f.PriceMax)))
	}
	if f.CarType != nil {
		where = append(where, fmt.Sprintf("car_type = %s", arg(*f.CarType)))
	}

	order := "ASC"
	if f.SortOrder == models.SortDesc {
		order = "DESC"
	}

	countQuery := `SELECT count(*) FROM cars WHERE ` + strings.Join(where, " AND ")
	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cars: %w", err)
	}

	limit := arg(f.PageSize)
	offset := arg(f.Page * f.PageSize)
	query := fmt.Sprintf(`SELECT %s FROM cars WHERE %s ORDER BY daily_price %s, id ASC LIMIT %s OFFSET %s`,
		carColumns, strings.Join(where, " AND "), order, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search cars: %w", err)
	}
	defer rows.Close()

	var cars []models.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan car: %w", err)
		}
		cars = append(cars, *c)
	}
	return cars, total, rows.Err()
}

// AirportCity resolves an airport id to its city. Flight-revenue
// attribution in CityRevenueForYear joins airports in SQL instead.
func (s *Store) AirportCity(ctx context.Context, airportID int64) (string, error) {
	var city string
	err := s.db.QueryRowContext(ctx, `SELECT city FROM airports WHERE id = $1`, airportID).Scan(&city)
	if err != nil {
		if err == sql.ErrNoRows {
			return "Unknown", nil
		}
		return "", fmt.Errorf("failed to resolve airport city: %w", err)
	}
	return city, nil
}
