package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alcolens/alcolens-api/internal/model"
)

const (
	defaultResultsLimit = 20
	maxResultsLimit     = 100
)

// responseItem is the clinician-facing view of one persisted assessment.
type responseItem struct {
	ID         uint64         `json:"id"`
	PatientID  string         `json:"patient_id"`
	Sex        string         `json:"sex"`
	StudyLevel string         `json:"study_level"`
	Answers    map[string]int `json:"answers"`
	TotalScore int            `json:"total_score"`
	RiskLevel  string         `json:"risk_level"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ListResults handles GET /v1/doctor/results.  Results come back newest
// first; the optional limit query parameter is clamped to [1,100].
func (h *DoctorHandler) ListResults(c echo.Context) error {
	limit := defaultResultsLimit
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}
	if limit > maxResultsLimit {
		limit = maxResultsLimit
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	results, err := h.Responses.ListRecent(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	items := make([]responseItem, 0, len(results))
	for _, r := range results {
		items = append(items, toResponseItem(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

func toResponseItem(r model.Response) responseItem {
	return responseItem{
		ID:         r.ID,
		PatientID:  r.PatientID,
		Sex:        string(r.Sex),
		StudyLevel: string(r.StudyLevel),
		Answers:    r.Answers,
		TotalScore: r.TotalScore,
		RiskLevel:  string(r.RiskLevel),
		CreatedAt:  r.CreatedAt,
	}
}
