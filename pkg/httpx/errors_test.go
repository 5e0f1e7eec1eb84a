package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	t.Run("BadRequest -> 400", func(t *testing.T) {
		he := StatusFor(BadRequest("bad"))
		if he.Status != http.StatusBadRequest || he.Code != CodeInvalidArgument {
			t.Fatalf("got (%d,%s)", he.Status, he.Code)
		}
	})

	t.Run("wrapped Error -> its status", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", NewError(http.StatusNotFound, CodeNotFound, "missing"))
		he := StatusFor(err)
		if he.Status != http.StatusNotFound || he.Code != CodeNotFound {
			t.Fatalf("got (%d,%s)", he.Status, he.Code)
		}
	})

	t.Run("DeadlineExceeded -> 503", func(t *testing.T) {
		he := StatusFor(fmt.Errorf("charge: %w", context.DeadlineExceeded))
		if he.Status != http.StatusServiceUnavailable || he.Code != CodeUnavailable {
			t.Fatalf("got (%d,%s)", he.Status, he.Code)
		}
	})

	t.Run("plain error -> 500", func(t *testing.T) {
		he := StatusFor(errors.New("boom"))
		if he.Status != http.StatusInternalServerError || he.Code != CodeInternal {
			t.Fatalf("got (%d,%s)", he.Status, he.Code)
		}
	})
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rec, req, errors.New("database password is hunter2"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), "hunter2")

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CodeInternal, body.Error.Code)
}
