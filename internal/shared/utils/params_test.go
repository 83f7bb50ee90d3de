package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamhub-backend/internal/shared/apperror"
)

func newContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestParseIDParam(t *testing.T) {
	c := newContext("")
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	id, err := ParseIDParam(c, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"0", "-3", "abc", ""} {
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, err := ParseIDParam(c, "id")
		assert.True(t, apperror.IsValidation(err), raw)
	}
}

func TestBindJSON(t *testing.T) {
	var dest struct {
		Title string `json:"title"`
	}

	require.NoError(t, BindJSON(newContext(`{"title":"x"}`), &dest))
	assert.Equal(t, "x", dest.Title)

	err := BindJSON(newContext(`{"title":`), &dest)
	assert.True(t, apperror.IsValidation(err))
}
