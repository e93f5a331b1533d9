package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore-catalog/internal/domains/catalog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errThingNotFound = errors.New("thing not found")

func handle(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/things/1", nil)
	HandleError(c, err, errThingNotFound)
	c.Writer.WriteHeaderNow()
	return w
}

func TestHandleErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("repo: %w", errThingNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"validation", catalog.NewValidationError(validation.Errors{"title": errors.New("required")}), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"canceled", context.Canceled, 499, ""},
		{"other", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := handle(tt.err)
			assert.Equal(t, tt.status, w.Code)
			if tt.code == "" {
				return
			}
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.NotContains(t, body, "data")
			assert.Equal(t, tt.code, body["error"].(map[string]any)["code"])
		})
	}
}
