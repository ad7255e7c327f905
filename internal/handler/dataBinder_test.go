package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/one-love/onelove/internal/errdef"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataBinder(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest("POST", "/clusters", strings.NewReader(`{"name": "alpha"}`))
	ctx.Request.Header.Set("Content-Type", "application/json")

	var request struct {
		Name string `json:"name" binding:"required"`
	}
	err := DataBinder(ctx, &request)

	require.NoError(t, err)
	assert.Equal(t, "alpha", request.Name)
}

func TestDataBinder_WrongContentType(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest("POST", "/clusters", strings.NewReader("name=alpha"))
	ctx.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var request struct {
		Name string `json:"name" binding:"required"`
	}
	err := DataBinder(ctx, &request)

	require.True(t, errdef.IsUnsupportedMediaType(err))
	assert.ErrorContains(t, err, "only accepts content of type application/json")
}

func TestDataBinder_MissingRequiredField(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest("POST", "/clusters", strings.NewReader(`{}`))
	ctx.Request.Header.Set("Content-Type", "application/json")

	var request struct {
		Name string `json:"name" binding:"required"`
	}
	err := DataBinder(ctx, &request)

	require.True(t, errdef.IsBadRequest(err))
	assert.ErrorContains(t, err, "Error binding data")
}
