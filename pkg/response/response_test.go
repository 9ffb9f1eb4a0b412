package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestMessage(t *testing.T) {
	c, w := newContext()
	Message(c, http.StatusCreated, "done")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"done"}`, w.Body.String())
}

func TestError(t *testing.T) {
	c, w := newContext()
	Error(c, http.StatusInternalServerError, "error creating event", InternalError)
	assert.JSONEq(t, `{"message":"error creating event","error":"internal server error"}`, w.Body.String())

	c, w = newContext()
	Error(c, http.StatusNotFound, "event not found", nil)
	assert.JSONEq(t, `{"message":"event not found"}`, w.Body.String())
}

func TestAbort(t *testing.T) {
	c, w := newContext()
	Abort(c, http.StatusUnauthorized, "missing access token", nil)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"missing access token"}`, w.Body.String())
}
