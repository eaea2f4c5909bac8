package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"slotbook/models"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, body, contentType string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	if contentType != "" {
		c.Request.Header.Set("Content-Type", contentType)
	}
	return c, w
}

func TestRequireJSON(t *testing.T) {
	c, _ := newContext(http.MethodPost, `{}`, "application/json; charset=utf-8")
	assert.NoError(t, requireJSON(c))

	c, _ = newContext(http.MethodPost, `a=b`, "application/x-www-form-urlencoded")
	err := requireJSON(c)
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotAcceptable, appErr.HTTPStatus)
	assert.Equal(t, "Invalid content type (application/x-www-form-urlencoded)", appErr.Message)
}

func TestBindingError_MissingField(t *testing.T) {
	c, _ := newContext(http.MethodPost, `{}`, "application/json")

	var req models.CreateEventRequest
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)

	appErr, ok := utils.AsAppError(bindingError(err))
	require.True(t, ok)
	assert.Equal(t, utils.KindValidation, appErr.Kind)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "REQUIRED", appErr.Details[0].Code)
	assert.Equal(t, "Missing required property: date_time", appErr.Details[0].Message)
	assert.Equal(t, []string{"date_time"}, appErr.Details[0].Path)
}

func TestBindingError_MalformedBody(t *testing.T) {
	appErr, ok := utils.AsAppError(bindingError(errors.New("unexpected EOF")))
	require.True(t, ok)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "INVALID_REQUEST", appErr.Details[0].Code)
	assert.Equal(t, "Request body is not valid JSON", appErr.Details[0].Message)

	c, _ := newContext(http.MethodPost, `{`, "application/json")
	var req models.CreateEventRequest
	appErr, ok = utils.AsAppError(bindingError(c.ShouldBindJSON(&req)))
	require.True(t, ok)
	assert.Equal(t, "Request body is not valid JSON", appErr.Details[0].Message)
	assert.Empty(t, appErr.Details[0].Path)
}

func TestBindingError_WrongType(t *testing.T) {
	c, _ := newContext(http.MethodPost, `{"date_time": 5}`, "application/json")

	var req models.CreateEventRequest
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)

	appErr, ok := utils.AsAppError(bindingError(err))
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "INVALID_TYPE", appErr.Details[0].Code)
	assert.Equal(t, "Invalid type for date_time: expected string", appErr.Details[0].Message)
	assert.Equal(t, []string{"date_time"}, appErr.Details[0].Path)
	assert.NotContains(t, appErr.Details[0].Message, "Go struct")
}

func TestParseParams(t *testing.T) {
	_, err := parseDateParam("date", "2030-01-16")
	assert.NoError(t, err)

	_, err = parseDateParam("date", "2030-01-16T09:00:00Z")
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"date"}, appErr.Details[0].Path)
	assert.Equal(t, "Object didn't pass validation for format date", appErr.Details[0].Message)

	_, err = parseDateTimeParam("date_time", "2030-01-16")
	assert.Error(t, err)
}

func TestRespondList(t *testing.T) {
	c, w := newContext(http.MethodGet, "", "")
	respondList(c, []string{})
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)

	c, w = newContext(http.MethodGet, "", "")
	respondList(c, []string{"a"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["a"]`, w.Body.String())
}
