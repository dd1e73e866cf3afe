package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alcolens/alcolens-api/internal/model"
	"github.com/alcolens/alcolens-api/internal/repository"
	"github.com/alcolens/alcolens-api/internal/service"
	"github.com/alcolens/alcolens-api/internal/utils"
)

// fakeInvites and fakeResponses back the service with in-memory state so
// the handlers can be exercised end to end without a database.
type fakeInvites struct {
	mu     sync.Mutex
	tokens map[string]*model.InviteToken
}

func (f *fakeInvites) FindByHash(ctx context.Context, hash string) (*model.InviteToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[hash]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeInvites) Redeem(ctx context.Context, hash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[hash]
	if !ok || t.Used || !t.ExpiresAt.After(time.Now().UTC()) {
		return false, nil
	}
	t.Used = true
	return true, nil
}

type fakeResponses struct {
	mu   sync.Mutex
	rows []*model.Response
}

func (f *fakeResponses) Insert(ctx context.Context, resp *model.Response) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *resp
	cp.ID = uint64(len(f.rows) + 1)
	f.rows = append(f.rows, &cp)
	return cp.ID, nil
}

func newPublicTestHandler() (*PublicHandler, *fakeInvites, *fakeResponses) {
	invites := &fakeInvites{tokens: map[string]*model.InviteToken{}}
	responses := &fakeResponses{}
	return NewPublicHandler(service.NewAssessmentService(invites, responses)), invites, responses
}

func seedInvite(f *fakeInvites, ttl time.Duration, used bool) string {
	secret, _ := utils.NewInviteSecret()
	f.tokens[utils.HashTokenRaw(secret)] = &model.InviteToken{
		ID:        1,
		PatientID: "0db0a3e9-6a4f-4d55-8d2e-6a2b8e1f9c33",
		TokenHash: utils.HashTokenRaw(secret),
		Used:      used,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	return secret
}

func doValidate(h *PublicHandler, token string) *httptest.ResponseRecorder {
	e := echo.New()
	target := "/v1/invites/validate"
	if token != "" {
		target += "?token=" + token
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	_ = h.ValidateInvite(e.NewContext(req, rec))
	return rec
}

func TestValidateInviteEndpoint(t *testing.T) {
	h, invites, _ := newPublicTestHandler()

	rec := doValidate(h, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doValidate(h, "0000000000000000000000000000000000000000000000000000000000000000")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	valid := seedInvite(invites, time.Hour, false)
	rec = doValidate(h, valid)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":true}`, rec.Body.String())

	used := seedInvite(invites, time.Hour, true)
	rec = doValidate(h, used)
	assert.Equal(t, http.StatusGone, rec.Code)
	assert.JSONEq(t, `{"valid":false,"reason":"used"}`, rec.Body.String())

	expired := seedInvite(invites, -time.Hour, false)
	rec = doValidate(h, expired)
	assert.Equal(t, http.StatusGone, rec.Code)
	assert.JSONEq(t, `{"valid":false,"reason":"expired"}`, rec.Body.String())
}

func doSubmit(h *PublicHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/responses", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.SubmitResponse(e.NewContext(req, rec))
	return rec
}

func TestSubmitResponseEndpoint(t *testing.T) {
	h, invites, responses := newPublicTestHandler()
	secret := seedInvite(invites, time.Hour, false)

	body := `{"sex":"man","study_level":"secundariabach","answers":{"q1":2,"q2":3,"q3":4},"consent":true,"token":"` + secret + `"}`
	rec := doSubmit(h, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got struct {
		ResponseID uint64 `json:"response_id"`
		PatientID  string `json:"patient_id"`
		TotalScore int    `json:"total_score"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(1), got.ResponseID)
	assert.Equal(t, "0db0a3e9-6a4f-4d55-8d2e-6a2b8e1f9c33", got.PatientID)
	assert.Equal(t, 9, got.TotalScore)
	require.Len(t, responses.rows, 1)

	// The token is now spent: replaying the same body is rejected and
	// nothing else is stored.
	rec = doSubmit(h, body)
	assert.Equal(t, http.StatusGone, rec.Code)
	assert.JSONEq(t, `{"error":"token_used"}`, rec.Body.String())
	assert.Len(t, responses.rows, 1)
}

func TestSubmitResponseErrorMapping(t *testing.T) {
	h, invites, responses := newPublicTestHandler()
	expired := seedInvite(invites, -time.Hour, false)

	cases := []struct {
		name     string
		body     string
		code     int
		errField string
	}{
		{
			name:     "missing consent",
			body:     `{"sex":"man","study_level":"secundariabach","answers":{"q1":0,"q2":0,"q3":0},"consent":false}`,
			code:     http.StatusForbidden,
			errField: "missing_consent",
		},
		{
			name:     "invalid sex",
			body:     `{"sex":"robot","study_level":"secundariabach","answers":{"q1":0,"q2":0,"q3":0},"consent":true}`,
			code:     http.StatusBadRequest,
			errField: "invalid_sex",
		},
		{
			name:     "invalid study level",
			body:     `{"sex":"woman","study_level":"nope","answers":{"q1":0,"q2":0,"q3":0},"consent":true}`,
			code:     http.StatusBadRequest,
			errField: "invalid_study_level",
		},
		{
			name:     "answer out of range",
			body:     `{"sex":"woman","study_level":"secundariabach","answers":{"q1":5,"q2":0,"q3":0},"consent":true}`,
			code:     http.StatusBadRequest,
			errField: "invalid_answer",
		},
		{
			name:     "incomplete answers",
			body:     `{"sex":"woman","study_level":"secundariabach","answers":{"q1":0},"consent":true}`,
			code:     http.StatusBadRequest,
			errField: "incomplete_answers",
		},
		{
			name:     "unknown token",
			body:     `{"sex":"man","study_level":"secundariabach","answers":{"q1":0,"q2":0,"q3":0},"consent":true,"token":"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"}`,
			code:     http.StatusNotFound,
			errField: "token_not_found",
		},
		{
			name:     "expired token",
			body:     `{"sex":"man","study_level":"secundariabach","answers":{"q1":0,"q2":0,"q3":0},"consent":true,"token":"` + expired + `"}`,
			code:     http.StatusGone,
			errField: "token_expired",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doSubmit(h, tc.body)
			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, `{"error":"`+tc.errField+`"}`, rec.Body.String())
		})
	}
	assert.Empty(t, responses.rows, "rejected submissions must not persist")
}
