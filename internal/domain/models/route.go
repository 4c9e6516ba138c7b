package models

// RouteEntry is one priced leg of the catalog: a fixed (departure, arrival)
// pair within a region. Names are stored in both Korean and English; the
// airport flags drive the flight-info step of the booking wizard.
type RouteEntry struct {
	ID                 int64   `json:"id,omitempty"`
	Region             string  `json:"region"`
	DepartureKor       string  `json:"departure_kor"`
	DepartureEng       string  `json:"departure_eng"`
	DepartureIsAirport string  `json:"departure_is_airport"`
	ArrivalKor         string  `json:"arrival_kor"`
	ArrivalEng         string  `json:"arrival_eng"`
	ArrivalIsAirport   string  `json:"arrival_is_airport"`
	ReservationFee     float64 `json:"reservation_fee"`
	LocalPaymentFee    float64 `json:"local_payment_fee"`
	Priority           int     `json:"priority"`
}

// HasAirport reports whether either endpoint is flagged as an airport.
// The upstream data stores the flag as a "Y"/"" string column.
func (r RouteEntry) HasAirport() bool {
	return r.DepartureIsAirport == "Y" || r.ArrivalIsAirport == "Y"
}

// Place is a distinct location extracted from the catalog, used for the
// departure/arrival pickers.
type Place struct {
	NameKor   string `json:"name_kor"`
	NameEng   string `json:"name_eng"`
	IsAirport string `json:"is_airport"`
}

// RegionSummary groups the places of one region for the region picker.
type RegionSummary struct {
	Region   string  `json:"region"`
	Airports []Place `json:"airports"`
	Places   []Place `json:"places"`
}

// RegionCount is one row of the catalog stats aggregation.
type RegionCount struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

// CatalogStats is the payload of GET /api/taxi/stats.
type CatalogStats struct {
	TotalRoutes int           `json:"totalRoutes"`
	Regions     []RegionCount `json:"regions"`
}

// RouteFilter narrows catalog listings. Sort takes a whitelisted field name
// (priority, region, fee); anything else falls back to priority order.
type RouteFilter struct {
	Region    string
	Departure string
	Arrival   string
	Sort      string
}
