package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/saloon-scheduler/internal/dto"
	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/saloon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/saloon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/saloon-scheduler/internal/usecase/workingday"
)

type WorkingHoursHandler struct {
	getUC    *workingday.GetWorkingDays
	updateUC *workingday.UpdateWorkingDays
	log      *zap.Logger
}

func NewWorkingHoursHandler(
	getUC *workingday.GetWorkingDays,
	updateUC *workingday.UpdateWorkingDays,
	log *zap.Logger,
) *WorkingHoursHandler {
	return &WorkingHoursHandler{getUC: getUC, updateUC: updateUC, log: log}
}

type WorkingHoursUpdateRequest struct {
	Days []dto.WorkingDayDTO `json:"days" binding:"required,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	staffID, ok := uintParam(c, "staffID")
	if !ok {
		return
	}

	days, err := h.getUC.Execute(c.Request.Context(), middleware.SaloonID(c), staffID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"days": days})
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	staffID, ok := uintParam(c, "staffID")
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if err := h.updateUC.Execute(
		c.Request.Context(),
		middleware.SaloonID(c),
		middleware.UserID(c),
		staffID,
		req.Days,
	); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
