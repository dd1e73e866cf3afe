package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alcolens/alcolens-api/internal/audit"
)

// questionView is one catalog question rendered for a single study level.
type questionView struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Options []optionView `json:"options"`
}

type optionView struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}

// GetQuestions handles GET /v1/questions.  Without a study_level query
// parameter it returns the full catalog including all wording variants;
// with one, it returns the flattened text the frontend shows directly.
func (h *PublicHandler) GetQuestions(c echo.Context) error {
	levelParam := c.QueryParam("study_level")
	if levelParam == "" {
		return c.JSON(http.StatusOK, echo.Map{"questions": audit.Questions()})
	}

	level := audit.StudyLevel(levelParam)
	if !audit.ValidStudyLevel(level) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_study_level"})
	}

	out := make([]questionView, 0, len(audit.Questions()))
	for _, q := range audit.Questions() {
		qv := questionView{ID: q.ID, Text: q.Text[level]}
		for _, opt := range q.Options {
			qv.Options = append(qv.Options, optionView{Value: opt.Value, Text: opt.Text[level]})
		}
		out = append(out, qv)
	}
	return c.JSON(http.StatusOK, echo.Map{"questions": out})
}
