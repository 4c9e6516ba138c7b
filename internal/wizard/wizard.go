package wizard

import (
	"regexp"
	"strings"
	"time"

	"yelloride/internal/domain/models"
	"yelloride/internal/pricing"
)

// Product selects which step sequence and caps apply.
type Product string

const (
	ProductPointToPoint Product = "point_to_point"
	ProductAirport      Product = "airport"
	ProductCharter      Product = "charter"
)

// Passenger caps differ per product and are kept separate on purpose.
const (
	MaxPassengersPointToPoint = 8
	MaxPassengersCharter      = 6
)

var phonePattern = regexp.MustCompile(`^[0-9\-\+\s\(\)]+$`)

// Customer is the contact block of a draft.
type Customer struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	MessengerID string `json:"kakao_id,omitempty"`
}

// Flight is the optional flight block shown on airport routes.
type Flight struct {
	Number   string `json:"number,omitempty"`
	Terminal string `json:"terminal,omitempty"`
}

// Draft is the in-progress wizard state. It lives on the client and is never
// persisted; the server only validates it.
type Draft struct {
	Product Product `json:"product"`

	Route     *models.RouteEntry `json:"route,omitempty"`
	Departure string             `json:"departure,omitempty"`
	Arrival   string             `json:"arrival,omitempty"`

	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM

	Passengers  int                 `json:"passengers"`
	Luggage     int                 `json:"luggage"`
	VehicleTier pricing.VehicleTier `json:"vehicle,omitempty"`

	Customer Customer `json:"customer"`
	Flight   Flight   `json:"flight,omitempty"`

	// charter-only fields
	Purpose         string `json:"purpose,omitempty"`
	Hours           int    `json:"hours,omitempty"`
	WaitingLocation string `json:"waiting_location,omitempty"`
}

// SetDeparture changes the departure and drops the dependent selections:
// a stale arrival or matched route must never survive a departure change.
func (d *Draft) SetDeparture(location string) {
	d.Departure = location
	d.Arrival = ""
	d.Route = nil
}

// FieldErrors maps field name to a user-facing message. Empty means valid.
type FieldErrors map[string]string

func (e FieldErrors) Valid() bool { return len(e) == 0 }

// StepKind identifies a wizard step independent of its position, since the
// sequence varies per product.
type StepKind string

const (
	StepPurpose    StepKind = "purpose"
	StepDuration   StepKind = "duration"
	StepDateTime   StepKind = "datetime"
	StepFlight     StepKind = "flight"
	StepPassengers StepKind = "passengers"
	StepContact    StepKind = "contact"
	StepReview     StepKind = "review"
)

// StepDef couples a step with its validation predicate.
type StepDef struct {
	Kind     StepKind
	Validate func(d Draft, now time.Time) FieldErrors
}

// Steps builds the step sequence for a draft. The airport variant inserts
// the flight step only when the matched route touches an airport.
func Steps(d Draft) []StepDef {
	switch d.Product {
	case ProductCharter:
		return []StepDef{
			{Kind: StepPurpose, Validate: validatePurpose},
			{Kind: StepDuration, Validate: validateDuration},
			{Kind: StepDateTime, Validate: validateDateTime},
			{Kind: StepContact, Validate: validateContact},
			{Kind: StepReview, Validate: validateReview},
		}
	case ProductAirport:
		steps := []StepDef{
			{Kind: StepDateTime, Validate: validateDateTime},
		}
		if d.Route != nil && d.Route.HasAirport() {
			steps = append(steps, StepDef{Kind: StepFlight, Validate: validateFlight})
		}
		steps = append(steps,
			StepDef{Kind: StepPassengers, Validate: validatePassengers},
			StepDef{Kind: StepContact, Validate: validateContact},
			StepDef{Kind: StepReview, Validate: validateReview},
		)
		return steps
	default:
		return []StepDef{
			{Kind: StepDateTime, Validate: validateDateTime},
			{Kind: StepPassengers, Validate: validatePassengers},
			{Kind: StepContact, Validate: validateContact},
			{Kind: StepReview, Validate: validateReview},
		}
	}
}

// Validate runs the rules of one step (1-based index). An index outside the
// sequence has no rules and therefore never validates; that is the safety
// default, not a silent pass.
func Validate(d Draft, step int, now time.Time) FieldErrors {
	steps := Steps(d)
	if step < 1 || step > len(steps) {
		return FieldErrors{"step": "unknown step"}
	}
	return steps[step-1].Validate(d, now)
}

// CanAdvance reports whether the wizard may move past the given step.
func CanAdvance(d Draft, step int, now time.Time) bool {
	return Validate(d, step, now).Valid()
}

func validateDateTime(d Draft, now time.Time) FieldErrors {
	errs := FieldErrors{}
	date := strings.TrimSpace(d.Date)
	if date == "" {
		errs["date"] = "please select a date"
	} else if picked, err := time.Parse("2006-01-02", date); err != nil {
		errs["date"] = "invalid date"
	} else {
		// date-only comparison; today always passes no matter the clock time
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if picked.Before(today) {
			errs["date"] = "please select today or a later date"
		}
	}
	if strings.TrimSpace(d.Time) == "" {
		errs["time"] = "please select a time"
	}
	return errs
}

// validateFlight always passes: flight number and terminal are optional even
// on airport routes. The step exists so the client renders it.
func validateFlight(Draft, time.Time) FieldErrors {
	return FieldErrors{}
}

func validatePassengers(d Draft, _ time.Time) FieldErrors {
	errs := FieldErrors{}
	max := MaxPassengersPointToPoint
	if d.Product == ProductCharter {
		max = MaxPassengersCharter
	}
	if d.Passengers < 1 {
		errs["passengers"] = "at least one passenger is required"
	} else if d.Passengers > max {
		errs["passengers"] = "too many passengers for this service"
	}
	return errs
}

func validateContact(d Draft, _ time.Time) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.Customer.Name) == "" {
		errs["name"] = "please enter your name"
	}
	phone := strings.TrimSpace(d.Customer.Phone)
	if phone == "" {
		errs["phone"] = "please enter your phone number"
	} else if !phonePattern.MatchString(phone) {
		errs["phone"] = "please enter a valid phone number"
	}
	return errs
}

func validatePurpose(d Draft, _ time.Time) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.Purpose) == "" {
		errs["purpose"] = "please select a purpose"
	}
	return errs
}

func validateDuration(d Draft, _ time.Time) FieldErrors {
	errs := FieldErrors{}
	if d.Hours < 1 {
		errs["hours"] = "at least one hour is required"
	}
	if strings.TrimSpace(d.WaitingLocation) == "" {
		errs["waiting_location"] = "please select a waiting location"
	}
	return errs
}

// validateReview: the confirmation step introduces no new input.
func validateReview(Draft, time.Time) FieldErrors {
	return FieldErrors{}
}
