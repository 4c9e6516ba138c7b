package pricing

import "math"

// CharterTable holds the hourly-charter rate card. It shares no constants
// with the point-to-point FeeTable: the two products price independently.
type CharterTable struct {
	StandardHourly float64
	LargeHourly    float64
	PremiumHourly  float64

	ReservationFee float64

	FullPaymentFactor float64
	Deposit           float64
}

var DefaultCharter = CharterTable{
	StandardHourly:    60,
	LargeHourly:       70,
	PremiumHourly:     85,
	ReservationFee:    30,
	FullPaymentFactor: 1.2,
	Deposit:           30,
}

type CharterInput struct {
	VehicleTier   VehicleTier
	Hours         int
	PaymentMethod PaymentMethod
}

func (t CharterTable) hourlyRate(tier VehicleTier) float64 {
	switch tier {
	case TierLarge:
		return t.LargeHourly
	case TierPremium:
		return t.PremiumHourly
	default:
		return t.StandardHourly
	}
}

// Quote prices an hourly charter: rate x hours plus the flat reservation fee.
func (t CharterTable) Quote(in CharterInput) Quote {
	hours := in.Hours
	if hours < 1 {
		hours = 1
	}
	rate := t.hourlyRate(in.VehicleTier)

	q := Quote{
		BaseFare:     rate * float64(hours),
		RouteMatched: true,
	}
	subtotal := q.BaseFare + t.ReservationFee

	if in.PaymentMethod == PayFull {
		surcharged := subtotal * t.FullPaymentFactor
		q.PaymentSurcharge = surcharged - subtotal
		subtotal = surcharged
	}

	q.Total = math.Round(subtotal)
	if in.PaymentMethod == PayDeposit {
		q.AmountDueNow = t.Deposit
	} else {
		q.AmountDueNow = q.Total
	}
	return q
}

// HourlyRate exposes the per-tier rate for display.
func (t CharterTable) HourlyRate(tier VehicleTier) float64 {
	return t.hourlyRate(tier)
}
