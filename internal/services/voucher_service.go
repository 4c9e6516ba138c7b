package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"yelloride/internal/domain/models"
	"yelloride/internal/repositories"
)

// VoucherService renders a booking voucher PDF with a QR of the booking
// number for pickup verification.
type VoucherService struct {
	BookingRepo repositories.BookingRepository

	// Loader is injectable for tests; nil loads through the repository.
	Loader func(int64) (models.Booking, error)
}

func (s VoucherService) load(id int64) (models.Booking, error) {
	if s.Loader != nil {
		return s.Loader(id)
	}
	return s.BookingRepo.GetByID(id)
}

// Generate returns the voucher bytes and a download filename.
func (s VoucherService) Generate(bookingID int64) ([]byte, string, error) {
	b, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	data, err := buildVoucherPDF(b)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("voucher-%s.pdf", b.BookingNumber), nil
}

func buildVoucherPDF(b models.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Voucher", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "YELLORIDE BOOKING VOUCHER")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, b.BookingNumber)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Name       : %s", safe(b.CustomerInfo.Name)),
		fmt.Sprintf("Phone      : %s", safe(b.CustomerInfo.Phone)),
		fmt.Sprintf("Service    : %s (%s)", safe(b.ServiceInfo.Type), safe(b.ServiceInfo.Region)),
		fmt.Sprintf("Departure  : %s", tripPointLine(b.TripDetails.Departure)),
		fmt.Sprintf("Arrival    : %s", tripPointLine(b.TripDetails.Arrival)),
		fmt.Sprintf("Passengers : %d (luggage %d)", b.PassengerInfo.TotalPassengers, b.PassengerInfo.TotalLuggage),
		fmt.Sprintf("Status     : %s", safe(b.Status)),
		fmt.Sprintf("Total      : %.2f", b.Pricing.TotalAmount),
	}
	if b.FlightInfo != nil && b.FlightInfo.FlightNumber != "" {
		lines = append(lines, fmt.Sprintf("Flight     : %s %s", b.FlightInfo.FlightNumber, b.FlightInfo.Terminal))
	}
	if b.CharterInfo != nil {
		lines = append(lines, fmt.Sprintf("Charter    : %d hours, %s", b.CharterInfo.Hours, safe(b.CharterInfo.Purpose)))
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	qrPNG, err := qrcode.Encode(b.BookingNumber, qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("booking-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("booking-qr", 150, 20, 40, 40, false, opts, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Show this voucher and the QR code to your driver.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func safe(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func tripPointLine(p models.TripPoint) string {
	loc := safe(p.Location)
	if p.Datetime == nil {
		return loc
	}
	return fmt.Sprintf("%s, %s", loc, p.Datetime.Format(time.DateTime))
}
