package services

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"

	intconfig "yelloride/internal/config"
	"yelloride/internal/domain"
	"yelloride/internal/domain/models"
	"yelloride/internal/repositories"
)

// bookingNumberAttempts bounds the regenerate-and-retry loop on duplicate
// booking numbers. Collisions on a 6-hex-char suffix are rare but real.
const bookingNumberAttempts = 5

type BookingService struct {
	BookingRepo repositories.BookingRepository
	DB          *sql.DB

	// NumberGen is injectable for tests; nil means NewBookingNumber.
	NumberGen func() string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) numberGen() func() string {
	if s.NumberGen != nil {
		return s.NumberGen
	}
	return NewBookingNumber
}

// NewBookingNumber builds a short public reference: "YR" plus the first six
// characters of a random uuid, uppercased.
func NewBookingNumber() string {
	return "YR" + strings.ToUpper(uuid.NewString()[:6])
}

// NormalizeBookingNumber makes user input comparable to stored numbers.
func NormalizeBookingNumber(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Create validates required fields, assigns a booking number and inserts.
// On a number collision it regenerates and retries.
func (s BookingService) Create(b models.Booking) (models.Booking, error) {
	if err := validateBooking(b); err != nil {
		return models.Booking{}, err
	}

	if b.Status == "" {
		b.Status = models.StatusPending
	} else if !models.ValidStatus(b.Status) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status"}
	}
	b.CustomerInfo.Name = strings.TrimSpace(b.CustomerInfo.Name)
	b.CustomerInfo.Phone = strings.TrimSpace(b.CustomerInfo.Phone)

	// a caller-supplied number is honored; a collision on it is the
	// caller's problem, not ours to regenerate
	if supplied := NormalizeBookingNumber(b.BookingNumber); supplied != "" {
		b.BookingNumber = supplied
		id, err := s.bookings().Insert(b)
		if err != nil {
			return models.Booking{}, err
		}
		return s.bookings().GetByID(id)
	}

	gen := s.numberGen()
	var lastErr error
	for attempt := 0; attempt < bookingNumberAttempts; attempt++ {
		b.BookingNumber = gen()
		id, err := s.bookings().Insert(b)
		if err == nil {
			return s.bookings().GetByID(id)
		}
		if !domain.IsConflict(err) {
			return models.Booking{}, err
		}
		lastErr = err
	}
	return models.Booking{}, domain.InternalError{Msg: "could not allocate booking number", Err: lastErr}
}

func validateBooking(b models.Booking) error {
	if strings.TrimSpace(b.CustomerInfo.Name) == "" {
		return domain.ValidationError{Field: "customer_info.name", Msg: "customer name is required"}
	}
	if strings.TrimSpace(b.CustomerInfo.Phone) == "" {
		return domain.ValidationError{Field: "customer_info.phone", Msg: "customer phone is required"}
	}
	if strings.TrimSpace(b.ServiceInfo.Type) == "" {
		return domain.ValidationError{Field: "service_info.type", Msg: "service type is required"}
	}
	if strings.TrimSpace(b.ServiceInfo.Region) == "" {
		return domain.ValidationError{Field: "service_info.region", Msg: "service region is required"}
	}
	if strings.TrimSpace(b.TripDetails.Departure.Location) == "" {
		return domain.ValidationError{Field: "trip_details.departure.location", Msg: "departure location is required"}
	}
	if b.TripDetails.Departure.Datetime == nil {
		return domain.ValidationError{Field: "trip_details.departure.datetime", Msg: "departure datetime is required"}
	}
	if len(b.Vehicles) == 0 {
		return domain.ValidationError{Field: "vehicles", Msg: "at least one vehicle is required"}
	}
	if b.Pricing.TotalAmount <= 0 {
		return domain.ValidationError{Field: "pricing.total_amount", Msg: "total amount is required"}
	}
	return nil
}

func (s BookingService) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	return s.bookings().GetByID(id)
}

func (s BookingService) GetByNumber(number string) (models.Booking, error) {
	n := NormalizeBookingNumber(number)
	if n == "" {
		return models.Booking{}, domain.ValidationError{Field: "booking_number", Msg: "booking number is required"}
	}
	return s.bookings().GetByNumber(n)
}

// Search is the customer-facing lookup: whitespace and case in the entered
// number are forgiven.
func (s BookingService) Search(number string) (models.Booking, error) {
	return s.GetByNumber(number)
}

func (s BookingService) List(filter repositories.BookingFilter) ([]models.Booking, error) {
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return nil, domain.ValidationError{Field: "status", Msg: "unknown status"}
	}
	return s.bookings().List(filter)
}

// ListByPhone finds a customer's bookings by contact phone.
func (s BookingService) ListByPhone(phone string) ([]models.Booking, error) {
	p := strings.TrimSpace(phone)
	if p == "" {
		return nil, domain.ValidationError{Field: "phone", Msg: "phone is required"}
	}
	return s.bookings().List(repositories.BookingFilter{Phone: p})
}

// Update patches a booking. Completed and cancelled bookings are frozen.
func (s BookingService) Update(id int64, upd models.BookingUpdate) (models.Booking, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	if existing.Status == models.StatusCompleted || existing.Status == models.StatusCancelled {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "booking is no longer editable"}
	}
	if upd.Status != nil && !models.ValidStatus(*upd.Status) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status"}
	}
	if err := s.bookings().Update(id, upd); err != nil {
		return models.Booking{}, err
	}
	return s.bookings().GetByID(id)
}

// Cancel is idempotent: cancelling twice keeps the first reason.
func (s BookingService) Cancel(id int64, reason string) (models.Booking, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	if existing.Status == models.StatusCancelled {
		return existing, nil
	}
	if existing.Status == models.StatusCompleted {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "completed bookings cannot be cancelled"}
	}
	if err := s.bookings().Cancel(id, reason); err != nil {
		return models.Booking{}, err
	}
	return s.bookings().GetByID(id)
}
