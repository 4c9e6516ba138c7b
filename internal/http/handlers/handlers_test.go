package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yelloride/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondDomainError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.ValidationError{Field: "date", Msg: "please select a date"}, http.StatusBadRequest},
		{"not found", domain.NotFoundError{Resource: "booking"}, http.StatusNotFound},
		{"conflict", domain.ConflictError{Resource: "booking number"}, http.StatusConflict},
		{"internal", domain.InternalError{Msg: "boom"}, http.StatusInternalServerError},
		{"opaque", errors.New("driver: bad connection"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(c *gin.Context) { RespondDomainError(c, tc.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
			if tc.status == http.StatusInternalServerError {
				// internals never leak
				assert.NotContains(t, w.Body.String(), "boom")
				assert.NotContains(t, w.Body.String(), "driver")
			}
		})
	}
}

func TestWizardValidate_Endpoint(t *testing.T) {
	r := gin.New()
	r.POST("/api/wizard/validate", WizardValidate)

	body := `{"step":1,"draft":{"product":"point_to_point","date":"","time":"14:00"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/wizard/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":false`)
	assert.Contains(t, w.Body.String(), `"date"`)
}


func TestDecodeRouteUpload_Shapes(t *testing.T) {
	items, err := decodeRouteUpload([]byte(`[{"region":"seoul","departure_kor":"A","arrival_kor":"B"}]`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "seoul", items[0].Region)

	items, err = decodeRouteUpload([]byte(`{"data":[{"region":"busan"},{"region":"jeju"}]}`))
	require.NoError(t, err)
	require.Len(t, items, 2)

	_, err = decodeRouteUpload([]byte(`{"rows":[]}`))
	assert.Error(t, err)
}
