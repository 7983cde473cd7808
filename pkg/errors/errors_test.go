package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/fast-note-history-service/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"code", code.ErrorHistoryNotFound, http.StatusNotFound, code.ErrorHistoryNotFound.Code()},
		{"code with details", code.ErrorDBQuery.WithDetails("boom"), http.StatusInternalServerError, code.ErrorDBQuery.Code()},
		{"app error", NewAppError(code.ErrorInvalidParams, nil), http.StatusBadRequest, code.ErrorInvalidParams.Code()},
		{"plain", errors.New("plain"), http.StatusInternalServerError, code.ErrorServerInternal.Code()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			ErrorResponse(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body AppError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.False(t, body.Status)
		})
	}
}

func TestConvert_KeepsCause(t *testing.T) {
	cause := errors.New("disk")
	appErr := NewAppError(code.ErrorDBQuery, cause)
	assert.ErrorIs(t, appErr, cause)
	assert.True(t, IsAppError(appErr))
}
