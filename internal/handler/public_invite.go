package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alcolens/alcolens-api/internal/model"
	"github.com/alcolens/alcolens-api/internal/repository"
	"github.com/alcolens/alcolens-api/internal/service"
)

// PublicHandler exposes the unauthenticated patient-facing endpoints:
// question catalog, invite validation and assessment submission.
type PublicHandler struct {
	Assessments *service.AssessmentService
}

func NewPublicHandler(s *service.AssessmentService) *PublicHandler {
	return &PublicHandler{Assessments: s}
}

// ValidateInvite handles GET /v1/invites/validate?token=…  It reports the
// lifecycle state of a token without consuming it so the frontend can
// decide whether to render the questionnaire or a specific "link no
// longer valid" message.  Unknown and tampered tokens get an identical
// 404; used and expired tokens each get a 410 with their reason.
func (h *PublicHandler) ValidateInvite(c echo.Context) error {
	secret := strings.TrimSpace(c.QueryParam("token"))
	if secret == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"valid": false})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	status, err := h.Assessments.ValidateInvite(ctx, secret)
	if err != nil {
		if err == repository.ErrTokenNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"valid": false})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"valid": false})
	}
	switch status {
	case model.InviteUsed:
		return c.JSON(http.StatusGone, echo.Map{"valid": false, "reason": "used"})
	case model.InviteExpired:
		return c.JSON(http.StatusGone, echo.Map{"valid": false, "reason": "expired"})
	default:
		return c.JSON(http.StatusOK, echo.Map{"valid": true})
	}
}
