package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier struct {
	sub string
	err error
}

func (s stubVerifier) Verify(string) (string, error) { return s.sub, s.err }

func TestRequireAdmin(t *testing.T) {
	newRouter := func(v TokenVerifier) *gin.Engine {
		r := gin.New()
		r.GET("/admin", RequireAdmin(v), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user": AuthUser(c)})
		})
		return r
	}

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(stubVerifier{sub: "admin"}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		newRouter(stubVerifier{err: errors.New("invalid")}).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer good")
		w := httptest.NewRecorder()
		newRouter(stubVerifier{sub: "admin"}).ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user":"admin"`)
	})
}
