package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/saloon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/saloon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAuditLogsHandler(db *gorm.DB, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	saloonID := middleware.SaloonID(c)

	action := c.Query("action")
	subjectType := c.Query("subject_type")
	subjectKey := c.Query("subject_key")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, limit, offset := httpresp.PageParams(c)

	// --------------------------------------------------
	// Always scoped to the caller's saloon
	// --------------------------------------------------

	q := h.db.
		WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("saloon_id = ?", saloonID)

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if subjectType != "" {
		q = q.Where("subject_type = ?", subjectType)
	}

	if subjectKey != "" {
		q = q.Where("subject_key = ?", subjectKey)
	}

	if fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid from date.")
			return
		}
		q = q.Where("created_at >= ?", from)
	}

	if toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid to date.")
			return
		}
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		middleware.Logger(c, h.log).Error("audit count failed", zap.Error(err))
		httperr.Internal(c, "audit_count_failed", "Failed to count audit logs.")
		return
	}

	// --------------------------------------------------
	// Page
	// --------------------------------------------------

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		middleware.Logger(c, h.log).Error("audit list failed", zap.Error(err))
		httperr.Internal(c, "audit_list_failed", "Failed to list audit logs.")
		return
	}

	// --------------------------------------------------
	// Response
	// --------------------------------------------------

	httpresp.Page(c, logs, page, limit, total)
}
