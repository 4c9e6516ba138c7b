package models

import "time"

// Booking statuses. Transitions run one way toward completed/cancelled,
// except pending<->confirmed which staff may cycle.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the persisted booking statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type CustomerInfo struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	MessengerID string `json:"kakao_id,omitempty"`
}

type ServiceInfo struct {
	Type   string `json:"type"`
	Region string `json:"region"`
}

type TripPoint struct {
	Location string     `json:"location"`
	Datetime *time.Time `json:"datetime,omitempty"`
}

type TripDetails struct {
	Departure TripPoint `json:"departure"`
	Arrival   TripPoint `json:"arrival"`
}

// Vehicle is one entry of the vehicles list. Bookings always carry a list,
// even for a single vehicle.
type Vehicle struct {
	Type       string `json:"type"`
	Passengers int    `json:"passengers"`
	Luggage    int    `json:"luggage"`
}

type PassengerInfo struct {
	TotalPassengers int `json:"total_passengers"`
	TotalLuggage    int `json:"total_luggage"`
}

type FlightInfo struct {
	FlightNumber string `json:"flight_number"`
	Terminal     string `json:"terminal,omitempty"`
}

// CharterInfo is only present on hourly-charter bookings.
type CharterInfo struct {
	Hours           int     `json:"hours"`
	Purpose         string  `json:"purpose"`
	WaitingLocation string  `json:"waiting_location"`
	SpecialRequests string  `json:"special_requests,omitempty"`
	TotalAmount     float64 `json:"total_amount"`
}

type Pricing struct {
	ReservationFee    float64 `json:"reservation_fee"`
	ServiceFee        float64 `json:"service_fee"`
	VehicleUpgradeFee float64 `json:"vehicle_upgrade_fee"`
	TotalAmount       float64 `json:"total_amount"`
}

// Booking is the persisted reservation document.
type Booking struct {
	ID            int64         `json:"id"`
	BookingNumber string        `json:"booking_number"`
	CustomerInfo  CustomerInfo  `json:"customer_info"`
	ServiceInfo   ServiceInfo   `json:"service_info"`
	TripDetails   TripDetails   `json:"trip_details"`
	Vehicles      []Vehicle     `json:"vehicles"`
	PassengerInfo PassengerInfo `json:"passenger_info"`
	FlightInfo    *FlightInfo   `json:"flight_info,omitempty"`
	CharterInfo   *CharterInfo  `json:"charter_info,omitempty"`
	Pricing       Pricing       `json:"pricing"`
	Status        string        `json:"status"`
	CancelReason  string        `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// BookingUpdate carries PATCH-style partial updates; nil means "leave as is".
type BookingUpdate struct {
	CustomerInfo *CustomerInfo `json:"customer_info,omitempty"`
	ServiceInfo  *ServiceInfo  `json:"service_info,omitempty"`
	TripDetails  *TripDetails  `json:"trip_details,omitempty"`
	Vehicles     *[]Vehicle    `json:"vehicles,omitempty"`
	FlightInfo   *FlightInfo   `json:"flight_info,omitempty"`
	Pricing      *Pricing      `json:"pricing,omitempty"`
	Status       *string       `json:"status,omitempty"`
}
