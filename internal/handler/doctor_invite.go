package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/alcolens/alcolens-api/internal/config"
	"github.com/alcolens/alcolens-api/internal/queue"
	"github.com/alcolens/alcolens-api/internal/repository"
	"github.com/alcolens/alcolens-api/internal/service"
	"github.com/alcolens/alcolens-api/internal/utils"
)

// InvitePublisher dispatches an invite delivery event.  Satisfied by
// service.PublishInviteIssued; swapped out in tests.
type InvitePublisher func(ctx context.Context, event queue.InviteIssuedEvent) error

// DoctorHandler groups the clinician-only endpoints: anonymous patient
// registration, invite issuance and result review.  JWT and role checks
// have already run by the time these methods execute.
type DoctorHandler struct {
	Cfg       config.Config
	Patients  *repository.PatientRepo
	Invites   *repository.InviteRepo
	Responses *repository.ResponseRepo
	Publish   InvitePublisher
	Logger    *zap.Logger
}

func NewDoctorHandler(cfg config.Config, p *repository.PatientRepo, i *repository.InviteRepo, r *repository.ResponseRepo, logger *zap.Logger) *DoctorHandler {
	return &DoctorHandler{
		Cfg:       cfg,
		Patients:  p,
		Invites:   i,
		Responses: r,
		Publish:   service.PublishInviteIssued,
		Logger:    logger,
	}
}

// CreatePatient handles POST /v1/doctor/patients.  The created record is
// fully anonymous: just a UUID for invites and responses to reference.
func (h *DoctorHandler) CreatePatient(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Patients.Create(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create patient failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"patient_id": id})
}

type issueInviteReq struct {
	Phone         string `json:"phone"`
	ExpiresInDays int    `json:"expires_in_days"`
}

// IssueInvite handles POST /v1/doctor/patients/:id/invites.  It persists
// the token first and only then dispatches the SMS event: delivery failure
// never rolls back issuance, the clinician always gets the link back and
// can share it manually.  The phone number rides only on the event and is
// never stored next to the token.
func (h *DoctorHandler) IssueInvite(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	patientID := strings.TrimSpace(c.Param("id"))
	if patientID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid patient id"})
	}

	var req issueInviteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Phone) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone required"})
	}
	ttlDays := req.ExpiresInDays
	if ttlDays <= 0 {
		ttlDays = h.Cfg.InviteTTLDays
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Patients.GetByID(ctx, patientID); err != nil {
		if err == repository.ErrPatientNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "patient not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	secret, err := utils.NewInviteSecret()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate token failed"})
	}
	expiresAt := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	inviteID, err := h.Invites.Create(ctx, patientID, utils.HashTokenRaw(secret), uid, expiresAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create invite failed"})
	}
	link := utils.InviteLink(h.Cfg.BaseURL, secret)

	smsStatus := "queued"
	event := queue.InviteIssuedEvent{
		InviteID:  inviteID,
		PatientID: patientID,
		Phone:     req.Phone,
		Link:      link,
		IssuedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Publish(ctx, event); err != nil {
		h.Logger.Warn("invite delivery dispatch failed", zap.Uint64("invite_id", inviteID), zap.Error(err))
		smsStatus = "failed"
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"invite_id":  inviteID,
		"link":       link,
		"expires_at": expiresAt.Format(time.RFC3339),
		"sms_status": smsStatus,
	})
}
