package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yelloride/internal/domain"
	"yelloride/internal/domain/models"
)

func TestVoucherGenerate(t *testing.T) {
	dep := time.Date(2026, 3, 20, 14, 0, 0, 0, time.UTC)
	svc := VoucherService{
		Loader: func(id int64) (models.Booking, error) {
			return models.Booking{
				ID:            id,
				BookingNumber: "YR3F2A1C",
				Status:        models.StatusConfirmed,
				CustomerInfo:  models.CustomerInfo{Name: "Kim", Phone: "010-1234-5678"},
				ServiceInfo:   models.ServiceInfo{Type: "airport", Region: "seoul"},
				TripDetails: models.TripDetails{
					Departure: models.TripPoint{Location: "Incheon Airport", Datetime: &dep},
					Arrival:   models.TripPoint{Location: "Myeongdong"},
				},
				PassengerInfo: models.PassengerInfo{TotalPassengers: 2, TotalLuggage: 2},
				FlightInfo:    &models.FlightInfo{FlightNumber: "KE123", Terminal: "T1"},
				Pricing:       models.Pricing{TotalAmount: 125},
			}, nil
		},
	}

	data, filename, err := svc.Generate(7)
	require.NoError(t, err)
	assert.Equal(t, "voucher-YR3F2A1C.pdf", filename)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestVoucherGenerate_LoaderError(t *testing.T) {
	svc := VoucherService{
		Loader: func(int64) (models.Booking, error) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		},
	}
	_, _, err := svc.Generate(99)
	assert.True(t, domain.IsNotFound(err))
}
