package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFound("skill", "1"), http.StatusNotFound},
		{"invalid", NewInvalidInput("bad", nil), http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("nope", nil), http.StatusUnauthorized},
		{"forbidden", NewPermissionDenied("nope"), http.StatusForbidden},
		{"conflict", NewConflict("user", "email", "a@b.c"), http.StatusConflict},
		{"internal", NewInternal("boom", errors.New("db")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("outer: %w", NewNotFound("skill", "1")), http.StatusNotFound},
		{"plain", errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToHTTPStatus(tc.err))
		})
	}
}

func TestCodeDefaultsAndOverride(t *testing.T) {
	assert.Equal(t, CodeNotFound, NewNotFound("x", "1").Code)
	assert.Equal(t, CodeConflict, NewConflict("x", "f", "v").Code)

	err := NewConflict("skill", "verified", "true").WithCode("ALREADY_VERIFIED")
	body := err.ToJSON()
	assert.Equal(t, "ALREADY_VERIFIED", body["error"])
	assert.Equal(t, false, body["success"])
}

func TestIsMatchesByCode(t *testing.T) {
	kind := Kind("NOT_PENDING")
	err := fmt.Errorf("decide: %w", NewConflict("verification request", "status", "APPROVED").WithCode("NOT_PENDING"))

	assert.ErrorIs(t, err, kind)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, Kind("NOT_OWNER"))
}
