package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamhub-backend/internal/shared/apperror"
)

func render(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestError_RendersEnvelope(t *testing.T) {
	w, body := render(t, func(c *gin.Context) {
		Error(c, apperror.FieldError("title", "title is required"))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Equal(t, map[string]interface{}{"title": "title is required"}, body.Error.Details)
}

func TestError_ForbiddenHasNoDetails(t *testing.T) {
	w, body := render(t, func(c *gin.Context) {
		Error(c, apperror.Forbidden())
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
	assert.Nil(t, body.Error.Details)
}

func TestError_UnknownErrorIsInternal(t *testing.T) {
	w, body := render(t, func(c *gin.Context) {
		Error(c, errors.New("boom"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
	require.NotNil(t, body.Error)
}

func TestOK(t *testing.T) {
	w, body := render(t, func(c *gin.Context) {
		OK(c, "Series deleted")
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "Series deleted", body.Message)
	assert.Nil(t, body.Error)
}
