package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"credit-conveyor/internal/domain/client"
	"credit-conveyor/internal/domain/credit"
	"credit-conveyor/internal/domain/statement"
	"credit-conveyor/internal/usecase/calculator"
	"credit-conveyor/internal/usecase/deal"
)

func TestHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewHandler().Health(c); err != nil {
		t.Fatalf("Health: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"denied", &calculator.DeniedError{Reason: "Must be employed to get a loan."}, http.StatusForbidden},
		{"wrapped denied", errors.Join(errors.New("ctx"), &calculator.DeniedError{Reason: "x"}), http.StatusForbidden},
		{"ses mismatch", deal.ErrSesMismatch, http.StatusForbidden},
		{"change blocked", statement.ErrChangeBlocked, http.StatusConflict},
		{"no applied offer", deal.ErrNoAppliedOffer, http.StatusConflict},
		{"statement missing", statement.ErrNotFound, http.StatusNotFound},
		{"client missing", client.ErrNotFound, http.StatusNotFound},
		{"credit missing", credit.ErrNotFound, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := errorStatus(tc.err); got != tc.want {
				t.Fatalf("errorStatus(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestRespondError_MasksInternal(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := respondError(c, errors.New("password=hunter2 leaked")); err != nil {
		t.Fatalf("respondError: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if body == "" || body == "{}" {
		t.Fatalf("empty body")
	}
	if want := "internal error"; !strings.Contains(body, want) {
		t.Fatalf("body %q does not contain %q", body, want)
	}
	if strings.Contains(body, "hunter2") {
		t.Fatalf("internal details leaked: %q", body)
	}
}
