// Package service contains the assessment submission flow and event
// publishing.  Handlers stay thin; everything that must hold under
// concurrent access or needs isolated testing lives here.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alcolens/alcolens-api/internal/audit"
	"github.com/alcolens/alcolens-api/internal/model"
	"github.com/alcolens/alcolens-api/internal/repository"
	"github.com/alcolens/alcolens-api/internal/utils"
)

// ErrMissingConsent is returned when a submission arrives without the
// affirmative consent flag.  Consent gates persistence, not participation:
// the questionnaire may be completed without it, but nothing is stored.
var ErrMissingConsent = errors.New("missing consent")

// ErrInvalidSex is returned for a sex value outside {man, woman}.
var ErrInvalidSex = errors.New("invalid sex")

// ErrInvalidStudyLevel is returned for an unknown study level.
var ErrInvalidStudyLevel = errors.New("invalid study level")

// InviteStore is the slice of the invite repository the assessment flow
// needs.  Redeem must be atomic: the implementation performs the
// valid-check and the used-set in one conditional write.
type InviteStore interface {
	FindByHash(ctx context.Context, tokenHash string) (*model.InviteToken, error)
	Redeem(ctx context.Context, tokenHash string) (bool, error)
}

// ResponseStore persists completed assessments.
type ResponseStore interface {
	Insert(ctx context.Context, resp *model.Response) (uint64, error)
}

// AssessmentService validates, scores, classifies and persists one
// assessment submission, redeeming an invite token on the way when one is
// presented.
type AssessmentService struct {
	Invites   InviteStore
	Responses ResponseStore
	Now       func() time.Time
}

func NewAssessmentService(invites InviteStore, responses ResponseStore) *AssessmentService {
	return &AssessmentService{Invites: invites, Responses: responses, Now: time.Now}
}

// SubmitInput is one complete questionnaire submission.  Secret is the
// optional invite token plaintext; when empty the submission is anonymous.
type SubmitInput struct {
	Sex        audit.Sex
	StudyLevel audit.StudyLevel
	Answers    map[string]int
	Consent    bool
	Secret     string
}

// SubmitResult reports what was persisted.
type SubmitResult struct {
	ResponseID uint64
	PatientID  string
	TotalScore int
	Risk       audit.Result
}

// Submit runs the full flow: validate input, compute the score and risk
// level server-side, redeem the invite token if present, and persist the
// record.  Validation happens before redemption so a rejected submission
// never burns a token, and redemption happens before persistence so a
// spent token never yields a second record.
func (s *AssessmentService) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if !audit.ValidSex(in.Sex) {
		return nil, ErrInvalidSex
	}
	if !audit.ValidStudyLevel(in.StudyLevel) {
		return nil, ErrInvalidStudyLevel
	}
	total, err := audit.Score(in.Answers)
	if err != nil {
		return nil, err
	}
	if !in.Consent {
		return nil, ErrMissingConsent
	}
	risk := audit.Evaluate(total, in.Sex)

	var patientID string
	if in.Secret != "" {
		tok, err := s.redeem(ctx, in.Secret)
		if err != nil {
			return nil, err
		}
		patientID = tok.PatientID
	} else {
		// Anonymous access: a fresh identifier per submission.
		patientID = uuid.NewString()
	}

	resp := &model.Response{
		PatientID:  patientID,
		Sex:        in.Sex,
		StudyLevel: in.StudyLevel,
		Answers:    in.Answers,
		TotalScore: total,
		RiskLevel:  risk.RiskLevel,
		Consent:    true,
	}
	id, err := s.Responses.Insert(ctx, resp)
	if err != nil {
		return nil, err
	}
	return &SubmitResult{ResponseID: id, PatientID: patientID, TotalScore: total, Risk: risk}, nil
}

// redeem attempts the atomic redemption and, on failure, re-reads the
// token to report the precise reason.  Exactly one concurrent caller can
// win the conditional write; every loser observes used or expired.
func (s *AssessmentService) redeem(ctx context.Context, secret string) (*model.InviteToken, error) {
	hash := utils.HashTokenRaw(secret)
	won, err := s.Invites.Redeem(ctx, hash)
	if err != nil {
		return nil, err
	}
	if won {
		return s.Invites.FindByHash(ctx, hash)
	}
	tok, err := s.Invites.FindByHash(ctx, hash)
	if err != nil {
		return nil, err // ErrTokenNotFound for unknown or tampered secrets
	}
	switch tok.StatusAt(s.Now()) {
	case model.InviteUsed:
		return nil, repository.ErrTokenUsed
	case model.InviteExpired:
		return nil, repository.ErrTokenExpired
	default:
		// The conditional write rejected on its expiry predicate but the
		// re-read still looks valid; only clock skew between the store and
		// this process gets here.
		return nil, repository.ErrTokenExpired
	}
}

// ValidateInvite reports the lifecycle state of the token matching the
// given secret without consuming it.  Unknown and tampered secrets are
// indistinguishable: both surface ErrTokenNotFound.
func (s *AssessmentService) ValidateInvite(ctx context.Context, secret string) (model.InviteStatus, error) {
	tok, err := s.Invites.FindByHash(ctx, utils.HashTokenRaw(secret))
	if err != nil {
		return "", err
	}
	return tok.StatusAt(s.Now()), nil
}
