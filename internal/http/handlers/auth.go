package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yelloride/internal/domain"
	"yelloride/internal/services"
)

type AuthHandler struct {
	Svc services.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	token, err := h.Svc.Login(req.Username, req.Password)
	if err != nil {
		if domain.IsValidation(err) {
			RespondError(c, http.StatusUnauthorized, "invalid username or password")
			return
		}
		RespondDomainError(c, err)
		return
	}

	RespondData(c, http.StatusOK, gin.H{"token": token})
}
