package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	intconfig "yelloride/internal/config"
	"yelloride/internal/domain"
	"yelloride/internal/domain/models"
)

// BookingRepository persists reservations. The nested blocks (vehicles,
// flight, charter, pricing) live in JSON columns; the fields staff filter on
// stay relational.
type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// BookingFilter narrows staff listings.
type BookingFilter struct {
	Status string
	Phone  string
}

const bookingColumns = `id, booking_number, COALESCE(status,'pending'),
	COALESCE(customer_name,''), COALESCE(customer_phone,''), COALESCE(customer_messenger_id,''),
	COALESCE(service_type,''), COALESCE(service_region,''),
	COALESCE(departure_location,''), departure_datetime,
	COALESCE(arrival_location,''), arrival_datetime,
	vehicles, COALESCE(total_passengers,0), COALESCE(total_luggage,0),
	flight_info, charter_info, pricing,
	COALESCE(cancel_reason,''), created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var (
		b                   models.Booking
		depAt, arrAt        sql.NullTime
		vehicles            []byte
		flight, charter     []byte
		pricing             []byte
		createdAt, updateAt time.Time
	)
	err := row.Scan(
		&b.ID, &b.BookingNumber, &b.Status,
		&b.CustomerInfo.Name, &b.CustomerInfo.Phone, &b.CustomerInfo.MessengerID,
		&b.ServiceInfo.Type, &b.ServiceInfo.Region,
		&b.TripDetails.Departure.Location, &depAt,
		&b.TripDetails.Arrival.Location, &arrAt,
		&vehicles, &b.PassengerInfo.TotalPassengers, &b.PassengerInfo.TotalLuggage,
		&flight, &charter, &pricing,
		&b.CancelReason, &createdAt, &updateAt,
	)
	if err != nil {
		return models.Booking{}, err
	}

	if depAt.Valid {
		t := depAt.Time
		b.TripDetails.Departure.Datetime = &t
	}
	if arrAt.Valid {
		t := arrAt.Time
		b.TripDetails.Arrival.Datetime = &t
	}

	b.Vehicles = []models.Vehicle{}
	if len(vehicles) > 0 {
		if err := json.Unmarshal(vehicles, &b.Vehicles); err != nil {
			return models.Booking{}, err
		}
	}
	if len(flight) > 0 {
		var f models.FlightInfo
		if err := json.Unmarshal(flight, &f); err != nil {
			return models.Booking{}, err
		}
		b.FlightInfo = &f
	}
	if len(charter) > 0 {
		var c models.CharterInfo
		if err := json.Unmarshal(charter, &c); err != nil {
			return models.Booking{}, err
		}
		b.CharterInfo = &c
	}
	if len(pricing) > 0 {
		if err := json.Unmarshal(pricing, &b.Pricing); err != nil {
			return models.Booking{}, err
		}
	}
	b.CreatedAt = createdAt
	b.UpdatedAt = updateAt
	return b, nil
}

func marshalNullable(v any, present bool) (any, error) {
	if !present {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Insert writes a new booking. A duplicate booking number comes back as a
// ConflictError so the service can regenerate and retry.
func (r BookingRepository) Insert(b models.Booking) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "database not available"}
	}

	vehicles, err := json.Marshal(b.Vehicles)
	if err != nil {
		return 0, err
	}
	flight, err := marshalNullable(b.FlightInfo, b.FlightInfo != nil)
	if err != nil {
		return 0, err
	}
	charter, err := marshalNullable(b.CharterInfo, b.CharterInfo != nil)
	if err != nil {
		return 0, err
	}
	pricing, err := json.Marshal(b.Pricing)
	if err != nil {
		return 0, err
	}

	res, err := db.Exec(`INSERT INTO bookings
		(booking_number, status,
		 customer_name, customer_phone, customer_messenger_id,
		 service_type, service_region,
		 departure_location, departure_datetime,
		 arrival_location, arrival_datetime,
		 vehicles, total_passengers, total_luggage,
		 flight_info, charter_info, pricing,
		 created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		b.BookingNumber, b.Status,
		b.CustomerInfo.Name, b.CustomerInfo.Phone, b.CustomerInfo.MessengerID,
		b.ServiceInfo.Type, b.ServiceInfo.Region,
		b.TripDetails.Departure.Location, b.TripDetails.Departure.Datetime,
		b.TripDetails.Arrival.Location, b.TripDetails.Arrival.Datetime,
		vehicles, b.PassengerInfo.TotalPassengers, b.PassengerInfo.TotalLuggage,
		flight, charter, pricing,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return 0, domain.ConflictError{Resource: "booking number", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID fetches one booking.
func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	db := r.db()
	if db == nil {
		return models.Booking{}, domain.InternalError{Msg: "database not available"}
	}
	b, err := scanBooking(db.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, err
}

// GetByNumber fetches one booking by its public booking number.
func (r BookingRepository) GetByNumber(number string) (models.Booking, error) {
	db := r.db()
	if db == nil {
		return models.Booking{}, domain.InternalError{Msg: "database not available"}
	}
	b, err := scanBooking(db.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE booking_number=? LIMIT 1`, number))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, err
}

// List returns bookings newest first, optionally filtered.
func (r BookingRepository) List(filter BookingFilter) ([]models.Booking, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not available"}
	}

	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(filter.Status); s != "" {
		where = append(where, "status=?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(filter.Phone); s != "" {
		where = append(where, "customer_phone=?")
		args = append(args, s)
	}

	rows, err := db.Query(`SELECT `+bookingColumns+` FROM bookings WHERE `+
		strings.Join(where, " AND ")+` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Update performs PATCH-style updates based on key presence.
func (r BookingRepository) Update(id int64, upd models.BookingUpdate) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not available"}
	}

	sets := []string{}
	args := []any{}

	if upd.CustomerInfo != nil {
		sets = append(sets, "customer_name=?", "customer_phone=?", "customer_messenger_id=?")
		args = append(args, strings.TrimSpace(upd.CustomerInfo.Name), strings.TrimSpace(upd.CustomerInfo.Phone), upd.CustomerInfo.MessengerID)
	}
	if upd.ServiceInfo != nil {
		sets = append(sets, "service_type=?", "service_region=?")
		args = append(args, upd.ServiceInfo.Type, upd.ServiceInfo.Region)
	}
	if upd.TripDetails != nil {
		sets = append(sets, "departure_location=?", "departure_datetime=?", "arrival_location=?", "arrival_datetime=?")
		args = append(args,
			upd.TripDetails.Departure.Location, upd.TripDetails.Departure.Datetime,
			upd.TripDetails.Arrival.Location, upd.TripDetails.Arrival.Datetime)
	}
	if upd.Vehicles != nil {
		data, err := json.Marshal(*upd.Vehicles)
		if err != nil {
			return err
		}
		sets = append(sets, "vehicles=?")
		args = append(args, data)
	}
	if upd.FlightInfo != nil {
		data, err := json.Marshal(upd.FlightInfo)
		if err != nil {
			return err
		}
		sets = append(sets, "flight_info=?")
		args = append(args, data)
	}
	if upd.Pricing != nil {
		data, err := json.Marshal(upd.Pricing)
		if err != nil {
			return err
		}
		sets = append(sets, "pricing=?")
		args = append(args, data)
	}
	if upd.Status != nil {
		sets = append(sets, "status=?")
		args = append(args, *upd.Status)
	}

	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	_, err := db.Exec(`UPDATE bookings SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return err
}

// Cancel marks a booking cancelled and stores the reason.
func (r BookingRepository) Cancel(id int64, reason string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not available"}
	}
	_, err := db.Exec(`UPDATE bookings SET status=?, cancel_reason=?, updated_at=NOW() WHERE id=?`,
		models.StatusCancelled, strings.TrimSpace(reason), id)
	return err
}
