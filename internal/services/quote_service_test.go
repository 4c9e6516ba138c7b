package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yelloride/internal/domain"
	"yelloride/internal/repositories"
)

func quoteRouteRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "region",
		"departure_kor", "departure_eng", "departure_is_airport",
		"arrival_kor", "arrival_eng", "arrival_is_airport",
		"reservation_fee", "local_payment_fee", "priority",
	})
}

func TestQuote_MatchedRoute(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("departure_eng=\\? AND arrival_eng=\\?").
		WithArgs("Incheon Airport", "Myeongdong").
		WillReturnRows(quoteRouteRows().
			AddRow(1, "seoul", "인천공항", "Incheon Airport", "Y", "명동", "Myeongdong", "", 20, 80, 1))

	svc := QuoteService{RouteRepo: repositories.RouteRepository{DB: db}}
	q, err := svc.Quote(QuoteRequest{
		ServiceType:   "airport",
		Lang:          "eng",
		Departure:     "Incheon Airport",
		Arrival:       "Myeongdong",
		Passengers:    2,
		PaymentMethod: "deposit",
	})
	require.NoError(t, err)
	assert.True(t, q.RouteMatched)
	assert.Equal(t, 100.0, q.Total)
	assert.Equal(t, 20.0, q.AmountDueNow)
}

func TestQuote_UnmatchedRouteFallsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("departure_kor=\\? AND arrival_kor=\\?").
		WithArgs("어딘가", "저기").
		WillReturnRows(quoteRouteRows())

	svc := QuoteService{RouteRepo: repositories.RouteRepository{DB: db}}
	q, err := svc.Quote(QuoteRequest{
		ServiceType: "point_to_point",
		Departure:   "어딘가",
		Arrival:     "저기",
		Passengers:  2,
	})
	require.NoError(t, err)
	assert.False(t, q.RouteMatched)
	assert.Equal(t, 95.0, q.Total)
}

func TestQuote_NoRouteGiven(t *testing.T) {
	svc := QuoteService{}
	q, err := svc.Quote(QuoteRequest{ServiceType: "point_to_point", Passengers: 1})
	require.NoError(t, err)
	assert.False(t, q.RouteMatched)
	assert.Equal(t, 95.0, q.Total)
}

func TestQuote_Charter(t *testing.T) {
	svc := QuoteService{}
	q, err := svc.Quote(QuoteRequest{
		ServiceType:   "charter",
		Vehicle:       "premium",
		CharterHours:  4,
		PaymentMethod: "deposit",
	})
	require.NoError(t, err)
	assert.Equal(t, 370.0, q.Total)
	assert.Equal(t, 30.0, q.AmountDueNow)
}

func TestQuote_CharterWithoutHours(t *testing.T) {
	svc := QuoteService{}
	_, err := svc.Quote(QuoteRequest{ServiceType: "charter"})
	assert.True(t, domain.IsValidation(err))
}

func TestQuote_ZeroPassengers(t *testing.T) {
	svc := QuoteService{}
	_, err := svc.Quote(QuoteRequest{ServiceType: "point_to_point"})
	assert.True(t, domain.IsValidation(err))
}

func TestQuote_RoundTripUsesReturnOverrides(t *testing.T) {
	svc := QuoteService{}
	two := 2
	zero := 0
	q, err := svc.Quote(QuoteRequest{
		ServiceType:      "point_to_point",
		TripType:         "roundtrip",
		Passengers:       5,
		Luggage:          3,
		ReturnPassengers: &two,
		ReturnLuggage:    &zero,
	})
	require.NoError(t, err)
	// outbound 95+5+5, return 95 plain, then the round-trip factor
	assert.Equal(t, 180.0, q.Total)
	assert.Equal(t, 20.0, q.RoundTripDiscount)
}
