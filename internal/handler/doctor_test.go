package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// Validation paths that reject before any repository call, exercised with
// a zero-value handler.  The database-backed paths are covered by the
// integration environment.

func TestListResultsInvalidLimit(t *testing.T) {
	h := &DoctorHandler{Logger: zap.NewNop()}
	e := echo.New()

	for _, q := range []string{"?limit=0", "?limit=-5", "?limit=abc"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/doctor/results"+q, nil)
		rec := httptest.NewRecorder()
		_ = h.ListResults(e.NewContext(req, rec))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %s", q)
	}
}

func TestIssueInviteRejectsBeforePersisting(t *testing.T) {
	h := &DoctorHandler{Logger: zap.NewNop()}
	e := echo.New()

	newCtx := func(body string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/v1/doctor/patients/:id/invites")
		return c, rec
	}

	// No authenticated user on the context.
	c, rec := newCtx(`{"phone":"612345678"}`)
	c.SetParamNames("id")
	c.SetParamValues("some-patient")
	_ = h.IssueInvite(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated but no patient id in the path.
	c, rec = newCtx(`{"phone":"612345678"}`)
	c.Set("user_id", uint64(7))
	_ = h.IssueInvite(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Authenticated, patient id present, phone missing.
	c, rec = newCtx(`{"phone":"  "}`)
	c.Set("user_id", uint64(7))
	c.SetParamNames("id")
	c.SetParamValues("some-patient")
	_ = h.IssueInvite(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"phone required"}`, rec.Body.String())
}
