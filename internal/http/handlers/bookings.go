package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yelloride/internal/domain/models"
	"yelloride/internal/repositories"
	"yelloride/internal/services"
)

type BookingHandler struct {
	Svc     services.BookingService
	Voucher services.VoucherService
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id")
		return 0, false
	}
	return id, true
}

// POST /api/bookings
func (h BookingHandler) Create(c *gin.Context) {
	var b models.Booking
	if !BindJSONOrError(c, &b) {
		return
	}
	created, err := h.Svc.Create(b)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, created)
}

// GET /api/bookings (admin)
func (h BookingHandler) List(c *gin.Context) {
	out, err := h.Svc.List(repositories.BookingFilter{
		Status: c.Query("status"),
		Phone:  c.Query("phone"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, out)
}

// GET /api/bookings/search?booking_number= (or ?phone= to list by phone)
func (h BookingHandler) Search(c *gin.Context) {
	number := c.Query("booking_number")
	if number == "" {
		if phone := c.Query("phone"); phone != "" {
			out, err := h.Svc.ListByPhone(phone)
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			RespondData(c, http.StatusOK, out)
			return
		}
	}
	b, err := h.Svc.Search(number)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, b)
}

// GET /api/bookings/number/:bookingNumber
func (h BookingHandler) GetByNumber(c *gin.Context) {
	b, err := h.Svc.GetByNumber(c.Param("bookingNumber"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, b)
}

// GET /api/bookings/:id
func (h BookingHandler) GetByID(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	b, err := h.Svc.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, b)
}

// PUT /api/bookings/:id
func (h BookingHandler) Update(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var upd models.BookingUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	b, err := h.Svc.Update(id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, b)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// POST /api/bookings/:id/cancel
func (h BookingHandler) Cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req cancelRequest
	if c.Request.Body != nil {
		_ = c.ShouldBindJSON(&req) // reason is optional
	}
	b, err := h.Svc.Cancel(id, req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, b)
}

// GET /api/bookings/:id/voucher
func (h BookingHandler) VoucherPDF(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	data, filename, err := h.Voucher.Generate(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
