package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/standupbot/standup-services/internal/archive"
	"github.com/standupbot/standup-services/internal/notify"
	"github.com/standupbot/standup-services/internal/standup"
	"github.com/standupbot/standup-services/pkg/logger"
)

// StandupHandler exposes the standup submission, report and notification
// endpoints. The archiver is optional; when nil, reports are served without
// being persisted to object storage.
type StandupHandler struct {
	svc      *standup.Service
	notifier *notify.Service
	archiver *archive.Archiver
}

func NewStandupHandler(svc *standup.Service, notifier *notify.Service, archiver *archive.Archiver) *StandupHandler {
	return &StandupHandler{svc: svc, notifier: notifier, archiver: archiver}
}

// Register wires the standup routes onto a router group.
func (h *StandupHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/standups", h.SubmitStandup)
	rg.GET("/reports/:date", h.GetReport)
	rg.POST("/notify", h.NotifyTeam)
}

type submitRequest struct {
	MemberID  string `json:"member_id"`
	Date      string `json:"date"`
	Yesterday string `json:"yesterday"`
	Today     string `json:"today"`
	Blockers  string `json:"blockers"`
}

// SubmitStandup accepts a member's daily update and stores it.
// An omitted date defaults to today (UTC). Resubmitting for the same
// member and date overwrites the earlier entry.
func (h *StandupHandler) SubmitStandup(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Date == "" {
		req.Date = time.Now().UTC().Format("2006-01-02")
	}

	rec, err := h.svc.Submit(c.Request.Context(), req.MemberID, req.Date, req.Yesterday, req.Today, req.Blockers)
	if err != nil {
		var verr *standup.ValidationError
		switch {
		case errors.As(err, &verr), errors.Is(err, standup.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, standup.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "submission failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// GetReport returns the aggregated standup report for a date. A date nobody
// submitted for yields an empty report, not a 404. When an archiver is
// configured the report is also uploaded, best-effort.
func (h *StandupHandler) GetReport(c *gin.Context) {
	date := c.Param("date")

	rep, err := h.svc.GenerateReport(c.Request.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, standup.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, standup.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
		}
		return
	}

	if h.archiver != nil {
		if err := h.archiver.SaveReport(c.Request.Context(), rep); err != nil {
			logger.Warnf("archiving report for %s failed: %v", date, err)
		}
	}
	c.JSON(http.StatusOK, rep)
}

type notifyRequest struct {
	Recipients []string `json:"recipients"`
	Template   string   `json:"template"`
	Date       string   `json:"date"`
}

// NotifyTeam pings each recipient with the standup reminder. Per-recipient
// failures are reported in the response body and do not abort the batch.
func (h *StandupHandler) NotifyTeam(c *gin.Context) {
	if h.notifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "notifications are disabled"})
		return
	}
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Recipients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipients must not be empty"})
		return
	}
	if req.Date == "" {
		req.Date = time.Now().UTC().Format("2006-01-02")
	}

	results := h.notifier.NotifyStandup(c.Request.Context(), req.Recipients, req.Template, req.Date)
	c.JSON(http.StatusOK, gin.H{"date": req.Date, "results": results})
}
