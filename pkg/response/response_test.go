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

	"github.com/d60-Lab/drinklog/pkg/apperr"
)

func init() { gin.SetMode(gin.TestMode) }

func TestError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperr.NotFound("post not found"), http.StatusNotFound},
		{apperr.Conflict("username already taken"), http.StatusConflict},
		{apperr.InvalidInput("bad"), http.StatusBadRequest},
		{apperr.Unauthorized("nope"), http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		Error(c, tc.err)

		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		var body Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.status, body.Code)
		if tc.status == http.StatusInternalServerError {
			assert.NotContains(t, body.Message, "boom")
		}
	}
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Success(c, gin.H{"token": "t"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0,"message":"success","data":{"token":"t"}}`, w.Body.String())
}
