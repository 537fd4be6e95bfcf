package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crm/internal/app/dto"
	"crm/internal/app/repository"

	"github.com/gin-gonic/gin"
)

func TestStoreErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound, "not found"},
		{"already assigned", fmt.Errorf("course 3: %w", repository.ErrAlreadyAssigned), http.StatusConflict, "already assigned"},
		{"topic count mismatch", fmt.Errorf("%w: expected 3 topic ids, got 2", repository.ErrInvalidTopicOrder), http.StatusBadRequest, "expected 3 topic ids"},
		{"database failure", errors.New("connection reset by peer"), http.StatusInternalServerError, "failed to reorder topics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			storeError(c, tt.err, "failed to reorder topics")

			if w.Code != tt.code {
				t.Errorf("expected %d, got %d", tt.code, w.Code)
			}
			var resp dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != "fail" || !strings.Contains(resp.Message, tt.message) {
				t.Errorf("expected fail with %q, got %+v", tt.message, resp)
			}
			if tt.code == http.StatusInternalServerError && strings.Contains(resp.Message, "connection") {
				t.Errorf("expected database detail to stay out of the response, got %q", resp.Message)
			}
		})
	}
}
