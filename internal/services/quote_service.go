package services

import (
	"strings"

	"yelloride/internal/domain"
	"yelloride/internal/pricing"
	"yelloride/internal/repositories"
)

// QuoteRequest is the transport-level shape of a price estimate request.
// Departure/arrival are optional: without them the fallback base fare
// applies and route_matched comes back false.
type QuoteRequest struct {
	ServiceType string `json:"service_type"` // point_to_point | airport | charter
	Lang        string `json:"lang,omitempty"`

	Region    string `json:"region,omitempty"`
	Departure string `json:"departure,omitempty"`
	Arrival   string `json:"arrival,omitempty"`

	TripType   string `json:"trip_type,omitempty"` // oneway | roundtrip
	Vehicle    string `json:"vehicle,omitempty"`
	Passengers int    `json:"passengers"`
	Luggage    int    `json:"luggage"`

	ReturnPassengers *int `json:"return_passengers,omitempty"`
	ReturnLuggage    *int `json:"return_luggage,omitempty"`

	SimCard       bool   `json:"sim_card,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"` // deposit | full

	CharterHours int `json:"charter_hours,omitempty"`
}

type QuoteService struct {
	RouteRepo repositories.RouteRepository

	Fees    pricing.FeeTable
	Charter pricing.CharterTable
}

func (s QuoteService) fees() pricing.FeeTable {
	if s.Fees == (pricing.FeeTable{}) {
		return pricing.DefaultFees
	}
	return s.Fees
}

func (s QuoteService) charter() pricing.CharterTable {
	if s.Charter == (pricing.CharterTable{}) {
		return pricing.DefaultCharter
	}
	return s.Charter
}

// Quote prices a request. Catalog lookups happen here; the arithmetic stays
// in the pricing package.
func (s QuoteService) Quote(req QuoteRequest) (pricing.Quote, error) {
	if strings.TrimSpace(req.ServiceType) == "charter" {
		if req.CharterHours < 1 {
			return pricing.Quote{}, domain.ValidationError{Field: "charter_hours", Msg: "at least one hour is required"}
		}
		return s.charter().Quote(pricing.CharterInput{
			VehicleTier:   pricing.VehicleTier(req.Vehicle),
			Hours:         req.CharterHours,
			PaymentMethod: pricing.PaymentMethod(req.PaymentMethod),
		}), nil
	}

	if req.Passengers < 1 {
		return pricing.Quote{}, domain.ValidationError{Field: "passengers", Msg: "at least one passenger is required"}
	}

	tripType := pricing.OneWay
	if req.TripType == string(pricing.RoundTrip) {
		tripType = pricing.RoundTrip
	}

	leg := pricing.Leg{Passengers: req.Passengers, Luggage: req.Luggage}
	if strings.TrimSpace(req.Departure) != "" && strings.TrimSpace(req.Arrival) != "" {
		route, err := s.RouteRepo.MatchRoute(req.Departure, req.Arrival, req.Lang, req.Region)
		if err != nil && !domain.IsNotFound(err) {
			return pricing.Quote{}, err
		}
		leg.Route = route // nil on no match, which selects the fallback fare
	}

	in := pricing.Input{
		Leg:           leg,
		VehicleTier:   pricing.VehicleTier(req.Vehicle),
		TripType:      tripType,
		Options:       pricing.Options{SimCard: req.SimCard},
		PaymentMethod: pricing.PaymentMethod(req.PaymentMethod),
	}

	if tripType == pricing.RoundTrip {
		ret := pricing.Leg{Route: leg.Route, Passengers: leg.Passengers, Luggage: leg.Luggage}
		if req.ReturnPassengers != nil {
			ret.Passengers = *req.ReturnPassengers
		}
		if req.ReturnLuggage != nil {
			ret.Luggage = *req.ReturnLuggage
		}
		in.Return = &ret
	}

	return s.fees().Quote(in), nil
}
