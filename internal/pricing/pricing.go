package pricing

import (
	"math"

	"yelloride/internal/domain/models"
)

type VehicleTier string

const (
	TierStandard VehicleTier = "standard"
	TierLarge    VehicleTier = "xl"
	TierPremium  VehicleTier = "premium"
)

type TripType string

const (
	OneWay    TripType = "oneway"
	RoundTrip TripType = "roundtrip"
)

type PaymentMethod string

const (
	PayDeposit PaymentMethod = "deposit"
	PayFull    PaymentMethod = "full"
)

// FeeTable centralizes every point-to-point fare constant. The charter
// product keeps its own table (see charter.go); the two are never merged.
type FeeTable struct {
	DefaultBaseFare float64 // used when no catalog route matched

	LargeUpgrade   float64
	PremiumUpgrade float64

	FivePassengerFee float64
	SixPassengerFee  float64

	LuggageFreeAllowance int
	LuggageBaseFee       float64
	LuggagePerExtraFee   float64

	RoundTripFactor float64 // discount multiplier on the combined legs

	SimCardFee float64

	FullPaymentFactor float64 // surcharge multiplier when paying up front

	DepositOneWay    float64
	DepositRoundTrip float64
}

// DefaultFees mirrors the published rate card.
var DefaultFees = FeeTable{
	DefaultBaseFare:      95,
	LargeUpgrade:         10,
	PremiumUpgrade:       25,
	FivePassengerFee:     5,
	SixPassengerFee:      10,
	LuggageFreeAllowance: 2,
	LuggageBaseFee:       5,
	LuggagePerExtraFee:   5,
	RoundTripFactor:      0.9,
	SimCardFee:           32,
	FullPaymentFactor:    1.2,
	DepositOneWay:        20,
	DepositRoundTrip:     30,
}

// Leg is one direction of travel: the matched catalog route (nil when the
// pair is not in the catalog) plus its headcounts.
type Leg struct {
	Route      *models.RouteEntry
	Passengers int
	Luggage    int
}

type Options struct {
	SimCard bool
}

// Input is everything the quote depends on. The engine is pure: identical
// inputs always produce identical quotes.
type Input struct {
	Leg           Leg
	Return        *Leg // required when TripType is RoundTrip
	VehicleTier   VehicleTier
	TripType      TripType
	Options       Options
	PaymentMethod PaymentMethod
}

// Quote is the itemized price breakdown returned to the presentation layer.
type Quote struct {
	BaseFare           float64 `json:"base_fare"`
	ReturnBaseFare     float64 `json:"return_base_fare,omitempty"`
	VehicleUpgradeFee  float64 `json:"vehicle_upgrade_fee"`
	PassengerSurcharge float64 `json:"passenger_surcharge"`
	LuggageSurcharge   float64 `json:"luggage_surcharge"`
	RoundTripDiscount  float64 `json:"round_trip_discount"`
	OptionFees         float64 `json:"option_fees"`
	PaymentSurcharge   float64 `json:"payment_surcharge"`
	Total              float64 `json:"total"`
	AmountDueNow       float64 `json:"amount_due_now"`
	RouteMatched       bool    `json:"route_matched"`
}

// baseFare is reservation fee + on-site fee of the matched route, or the
// fallback figure when the pair is not in the catalog.
func (t FeeTable) baseFare(route *models.RouteEntry) float64 {
	if route == nil {
		return t.DefaultBaseFare
	}
	return route.ReservationFee + route.LocalPaymentFee
}

// PassengerSurcharge steps by headcount: 1-4 free, 5 and 6 have fixed fees.
// Counts above six clamp to the six-passenger step; the wizard enforces the
// hard cap separately.
func (t FeeTable) PassengerSurcharge(passengers int) float64 {
	switch {
	case passengers >= 6:
		return t.SixPassengerFee
	case passengers == 5:
		return t.FivePassengerFee
	default:
		return 0
	}
}

// LuggageSurcharge is free up to the allowance, then a base fee plus a
// per-piece fee for everything past one over the allowance.
func (t FeeTable) LuggageSurcharge(luggage int) float64 {
	threshold := t.LuggageFreeAllowance + 1
	if luggage < threshold {
		return 0
	}
	return t.LuggageBaseFee + t.LuggagePerExtraFee*float64(luggage-threshold)
}

func (t FeeTable) vehicleUpgrade(tier VehicleTier) float64 {
	switch tier {
	case TierLarge:
		return t.LargeUpgrade
	case TierPremium:
		return t.PremiumUpgrade
	default:
		return 0
	}
}

// Quote computes the point-to-point fare. Order of application: per-leg base
// and surcharges, then the round-trip discount on the combined legs, then
// flat option fees, then the full-payment surcharge, then rounding.
func (t FeeTable) Quote(in Input) Quote {
	q := Quote{
		RouteMatched:       in.Leg.Route != nil,
		BaseFare:           t.baseFare(in.Leg.Route),
		VehicleUpgradeFee:  t.vehicleUpgrade(in.VehicleTier),
		PassengerSurcharge: t.PassengerSurcharge(in.Leg.Passengers),
		LuggageSurcharge:   t.LuggageSurcharge(in.Leg.Luggage),
	}

	subtotal := q.BaseFare + q.VehicleUpgradeFee + q.PassengerSurcharge + q.LuggageSurcharge

	if in.TripType == RoundTrip {
		ret := Leg{}
		if in.Return != nil {
			ret = *in.Return
		}
		q.ReturnBaseFare = t.baseFare(ret.Route)
		retSurcharge := t.PassengerSurcharge(ret.Passengers) + t.LuggageSurcharge(ret.Luggage)
		q.PassengerSurcharge += t.PassengerSurcharge(ret.Passengers)
		q.LuggageSurcharge += t.LuggageSurcharge(ret.Luggage)

		combined := subtotal + q.ReturnBaseFare + retSurcharge
		discounted := combined * t.RoundTripFactor
		q.RoundTripDiscount = combined - discounted
		subtotal = discounted
	}

	if in.Options.SimCard {
		q.OptionFees += t.SimCardFee
	}
	subtotal += q.OptionFees

	if in.PaymentMethod == PayFull {
		surcharged := subtotal * t.FullPaymentFactor
		q.PaymentSurcharge = surcharged - subtotal
		subtotal = surcharged
	}

	q.Total = math.Round(subtotal)

	switch in.PaymentMethod {
	case PayDeposit:
		if in.TripType == RoundTrip {
			q.AmountDueNow = t.DepositRoundTrip
		} else {
			q.AmountDueNow = t.DepositOneWay
		}
	default:
		q.AmountDueNow = q.Total
	}

	return q
}
