package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alcolens/alcolens-api/internal/audit"
	"github.com/alcolens/alcolens-api/internal/repository"
	"github.com/alcolens/alcolens-api/internal/service"
)

type submitReq struct {
	Sex        string         `json:"sex"`
	StudyLevel string         `json:"study_level"`
	Answers    map[string]int `json:"answers"`
	Consent    bool           `json:"consent"`
	Token      string         `json:"token"` // optional invite secret
}

// SubmitResponse handles POST /v1/responses.  Each token error kind maps
// to its own payload so the patient can tell "request a new link" apart
// from "you already completed this".
func (h *PublicHandler) SubmitResponse(c echo.Context) error {
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	result, err := h.Assessments.Submit(ctx, service.SubmitInput{
		Sex:        audit.Sex(strings.TrimSpace(req.Sex)),
		StudyLevel: audit.StudyLevel(strings.TrimSpace(req.StudyLevel)),
		Answers:    req.Answers,
		Consent:    req.Consent,
		Secret:     strings.TrimSpace(req.Token),
	})
	if err != nil {
		return submitError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"response_id": result.ResponseID,
		"patient_id":  result.PatientID,
		"total_score": result.TotalScore,
		"risk":        result.Risk,
	})
}

func submitError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, audit.ErrInvalidAnswer):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_answer"})
	case errors.Is(err, audit.ErrIncompleteAnswers):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "incomplete_answers"})
	case errors.Is(err, service.ErrInvalidSex):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_sex"})
	case errors.Is(err, service.ErrInvalidStudyLevel):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_study_level"})
	case errors.Is(err, service.ErrMissingConsent):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "missing_consent"})
	case errors.Is(err, repository.ErrTokenNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "token_not_found"})
	case errors.Is(err, repository.ErrTokenUsed):
		return c.JSON(http.StatusGone, echo.Map{"error": "token_used"})
	case errors.Is(err, repository.ErrTokenExpired):
		return c.JSON(http.StatusGone, echo.Map{"error": "token_expired"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
