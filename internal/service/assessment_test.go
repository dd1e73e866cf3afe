package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alcolens/alcolens-api/internal/audit"
	"github.com/alcolens/alcolens-api/internal/model"
	"github.com/alcolens/alcolens-api/internal/repository"
	"github.com/alcolens/alcolens-api/internal/utils"
)

// memInviteStore mimics the SQL repository: Redeem is a single
// compare-and-set under one lock, exactly like the conditional UPDATE.
type memInviteStore struct {
	mu     sync.Mutex
	tokens map[string]*model.InviteToken
	now    func() time.Time
}

func newMemInviteStore(now func() time.Time) *memInviteStore {
	return &memInviteStore{tokens: map[string]*model.InviteToken{}, now: now}
}

func (m *memInviteStore) add(t *model.InviteToken) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[t.TokenHash] = t
}

func (m *memInviteStore) FindByHash(ctx context.Context, hash string) (*model.InviteToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[hash]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memInviteStore) Redeem(ctx context.Context, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[hash]
	if !ok || t.Used || !t.ExpiresAt.After(m.now()) {
		return false, nil
	}
	t.Used = true
	return true, nil
}

type memResponseStore struct {
	mu        sync.Mutex
	responses []*model.Response
}

func (m *memResponseStore) Insert(ctx context.Context, resp *model.Response) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *resp
	cp.ID = uint64(len(m.responses) + 1)
	cp.CreatedAt = time.Now().UTC()
	m.responses = append(m.responses, &cp)
	return cp.ID, nil
}

func (m *memResponseStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.responses)
}

func (m *memResponseStore) get(i int) model.Response {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.responses[i]
}

func newTestService() (*AssessmentService, *memInviteStore, *memResponseStore) {
	now := func() time.Time { return time.Now().UTC() }
	invites := newMemInviteStore(now)
	responses := &memResponseStore{}
	svc := NewAssessmentService(invites, responses)
	return svc, invites, responses
}

func validInput() SubmitInput {
	return SubmitInput{
		Sex:        audit.SexMan,
		StudyLevel: audit.StudySecondary,
		Answers:    map[string]int{"q1": 1, "q2": 2, "q3": 1},
		Consent:    true,
	}
}

func TestSubmitAnonymous(t *testing.T) {
	svc, _, responses := newTestService()

	res, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, res.PatientID)
	assert.Equal(t, 4, res.TotalScore)
	assert.Equal(t, audit.RiskYellow, res.Risk.RiskLevel)
	require.Equal(t, 1, responses.count())

	stored := responses.get(0)
	assert.Equal(t, res.PatientID, stored.PatientID)
	assert.True(t, stored.Consent)
}

// Two anonymous submissions must not share a patient reference.
func TestSubmitAnonymousFreshIdentifiers(t *testing.T) {
	svc, _, _ := newTestService()

	a, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)
	b, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEqual(t, a.PatientID, b.PatientID)
}

// The stored total must equal the recomputed sum of the stored answers,
// whatever the client claimed.
func TestSubmitScoreDerivedFromAnswers(t *testing.T) {
	svc, _, responses := newTestService()

	in := validInput()
	in.Answers = map[string]int{"q1": 4, "q2": 0, "q3": 3}
	_, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)

	stored := responses.get(0)
	recomputed, err := audit.Score(stored.Answers)
	require.NoError(t, err)
	assert.Equal(t, recomputed, stored.TotalScore)
	assert.Equal(t, 7, stored.TotalScore)
	assert.Equal(t, audit.RiskAmbar, stored.RiskLevel)
}

func TestSubmitValidation(t *testing.T) {
	svc, _, responses := newTestService()
	ctx := context.Background()

	in := validInput()
	in.Sex = "other"
	_, err := svc.Submit(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidSex)

	in = validInput()
	in.StudyLevel = "doctorado"
	_, err = svc.Submit(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidStudyLevel)

	in = validInput()
	in.Answers = map[string]int{"q1": 1, "q2": 2}
	_, err = svc.Submit(ctx, in)
	assert.ErrorIs(t, err, audit.ErrIncompleteAnswers)

	in = validInput()
	in.Answers["q1"] = 9
	_, err = svc.Submit(ctx, in)
	assert.ErrorIs(t, err, audit.ErrInvalidAnswer)

	assert.Equal(t, 0, responses.count(), "rejected submissions must not persist")
}

func TestSubmitMissingConsent(t *testing.T) {
	svc, invites, responses := newTestService()
	secret, tok := issueTestToken(t, invites, time.Hour)

	in := validInput()
	in.Consent = false
	in.Secret = secret
	_, err := svc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, ErrMissingConsent)
	assert.Equal(t, 0, responses.count())

	// Consent is checked before redemption, so the rejected submission
	// must not have burned the token.
	stored, err := invites.FindByHash(context.Background(), tok.TokenHash)
	require.NoError(t, err)
	assert.False(t, stored.Used)
}

func issueTestToken(t *testing.T, invites *memInviteStore, ttl time.Duration) (string, *model.InviteToken) {
	t.Helper()
	secret, err := utils.NewInviteSecret()
	require.NoError(t, err)
	tok := &model.InviteToken{
		ID:        1,
		PatientID: "8e9fd1f0-0b8e-4a43-9349-77c152a6ec01",
		TokenHash: utils.HashTokenRaw(secret),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	invites.add(tok)
	return secret, tok
}

func TestSubmitWithInvite(t *testing.T) {
	svc, invites, responses := newTestService()
	secret, tok := issueTestToken(t, invites, time.Hour)

	in := validInput()
	in.Secret = secret
	res, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, tok.PatientID, res.PatientID)
	require.Equal(t, 1, responses.count())

	// Second submission with the spent token: rejected, nothing new
	// persisted, the original record untouched.
	first := responses.get(0)
	_, err = svc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, repository.ErrTokenUsed)
	assert.Equal(t, 1, responses.count())
	assert.Equal(t, first, responses.get(0))
}

func TestSubmitExpiredToken(t *testing.T) {
	svc, invites, responses := newTestService()
	secret, _ := issueTestToken(t, invites, -time.Minute)

	in := validInput()
	in.Secret = secret
	_, err := svc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, repository.ErrTokenExpired)
	assert.Equal(t, 0, responses.count())
}

func TestSubmitUnknownSecret(t *testing.T) {
	svc, _, responses := newTestService()

	in := validInput()
	in.Secret = "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"
	_, err := svc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)
	assert.Equal(t, 0, responses.count())
}

// Concurrent submissions racing on one token: exactly one wins, every
// loser observes the used state, and exactly one record is persisted.
func TestConcurrentRedemption(t *testing.T) {
	svc, invites, responses := newTestService()
	secret, _ := issueTestToken(t, invites, time.Hour)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := validInput()
			in.Secret = secret
			_, errs[i] = svc.Submit(context.Background(), in)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, repository.ErrTokenUsed)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, responses.count())
}

func TestValidateInvite(t *testing.T) {
	svc, invites, _ := newTestService()
	ctx := context.Background()

	secret, _ := issueTestToken(t, invites, time.Hour)
	status, err := svc.ValidateInvite(ctx, secret)
	require.NoError(t, err)
	assert.Equal(t, model.InviteValid, status)

	// Validation is read-only: repeating it never consumes the token.
	status, err = svc.ValidateInvite(ctx, secret)
	require.NoError(t, err)
	assert.Equal(t, model.InviteValid, status)

	expiredSecret, _ := issueTestToken(t, invites, -time.Hour)
	status, err = svc.ValidateInvite(ctx, expiredSecret)
	require.NoError(t, err)
	assert.Equal(t, model.InviteExpired, status)

	in := validInput()
	in.Secret = secret
	_, err = svc.Submit(ctx, in)
	require.NoError(t, err)
	status, err = svc.ValidateInvite(ctx, secret)
	require.NoError(t, err)
	assert.Equal(t, model.InviteUsed, status)

	_, err = svc.ValidateInvite(ctx, "not-a-real-secret")
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)
}
