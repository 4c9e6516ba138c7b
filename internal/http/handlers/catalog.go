package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yelloride/internal/domain/models"
	"yelloride/internal/services"
)

// CatalogHandler serves the taxi route catalog.
type CatalogHandler struct {
	Svc services.CatalogService
}

// GET /api/taxi
func (h CatalogHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	filter := models.RouteFilter{
		Region:    c.Query("region"),
		Departure: c.Query("departure"),
		Arrival:   c.Query("arrival"),
		Sort:      c.Query("sort"),
	}

	result, err := h.Svc.List(filter, page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, result)
}

// GET /api/taxi/all
func (h CatalogHandler) ListAll(c *gin.Context) {
	items, err := h.Svc.ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, items)
}

// GET /api/taxi/route
func (h CatalogHandler) Match(c *gin.Context) {
	route, err := h.Svc.Match(c.Query("departure"), c.Query("arrival"), c.DefaultQuery("lang", "kor"), c.Query("region"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, route)
}

// GET /api/taxi/departures
func (h CatalogHandler) Departures(c *gin.Context) {
	places, err := h.Svc.Departures(c.Query("region"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, places)
}

// GET /api/taxi/arrivals
func (h CatalogHandler) Arrivals(c *gin.Context) {
	places, err := h.Svc.Arrivals(c.Query("region"), c.Query("departure"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, places)
}

// GET /api/taxi/regions
func (h CatalogHandler) Regions(c *gin.Context) {
	regions, err := h.Svc.Regions(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, regions)
}

// GET /api/taxi/stats
func (h CatalogHandler) Stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, stats)
}

// POST /api/taxi/upload (admin)
//
// Takes either a multipart "file" field holding a JSON document or a raw
// JSON body. Both shapes accept a bare array or a {"data": [...]} wrapper.
func (h CatalogHandler) Upload(c *gin.Context) {
	var raw []byte
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "could not read uploaded file")
			return
		}
		defer f.Close()
		raw, err = io.ReadAll(f)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "could not read uploaded file")
			return
		}
	} else {
		var err error
		raw, err = io.ReadAll(c.Request.Body)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "could not read request body")
			return
		}
	}

	items, err := decodeRouteUpload(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid upload payload")
		return
	}
	n, err := h.Svc.Import(c.Request.Context(), items)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondMessage(c, http.StatusCreated, "catalog imported", gin.H{"imported": n})
}

func decodeRouteUpload(raw []byte) ([]models.RouteEntry, error) {
	var wrapped struct {
		Data []models.RouteEntry `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}
	var items []models.RouteEntry
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.New("expected a JSON array or a data wrapper")
	}
	return items, nil
}

// DELETE /api/taxi (admin)
func (h CatalogHandler) Clear(c *gin.Context) {
	n, err := h.Svc.Clear(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondMessage(c, http.StatusOK, "catalog cleared", gin.H{"deleted": n})
}
