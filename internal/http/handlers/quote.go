package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yelloride/internal/services"
	"yelloride/internal/wizard"
)

type QuoteHandler struct {
	Svc services.QuoteService
}

// POST /api/quote
func (h QuoteHandler) Quote(c *gin.Context) {
	var req services.QuoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	q, err := h.Svc.Quote(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, q)
}

type wizardValidateRequest struct {
	Draft wizard.Draft `json:"draft"`
	Step  int          `json:"step"`
}

// POST /api/wizard/validate runs one step of the booking wizard server-side,
// so clients share a single source of validation truth.
func WizardValidate(c *gin.Context) {
	var req wizardValidateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	errs := wizard.Validate(req.Draft, req.Step, time.Now())
	RespondData(c, http.StatusOK, gin.H{
		"valid":  errs.Valid(),
		"errors": errs,
	})
}
