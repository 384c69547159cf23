package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/saloon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/saloon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
	"github.com/BruksfildServices01/saloon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	confirmUC     *appointment.ConfirmAppointment
	cancelUC      *appointment.CancelAppointment
	completeUC    *appointment.CompleteAppointment
	listByDateUC  *appointment.ListAppointmentsByDate
	listByMonthUC *appointment.ListAppointmentsByMonth
	log           *zap.Logger
}

func NewAppointmentHandler(
	confirmUC *appointment.ConfirmAppointment,
	cancelUC *appointment.CancelAppointment,
	completeUC *appointment.CompleteAppointment,
	listByDateUC *appointment.ListAppointmentsByDate,
	listByMonthUC *appointment.ListAppointmentsByMonth,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		confirmUC:     confirmUC,
		cancelUC:      cancelUC,
		completeUC:    completeUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
		log:           log,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	saloonID := middleware.SaloonID(c)
	staffID, ok := uintParam(c, "staffID")
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	list, err := h.listByDateUC.Execute(c.Request.Context(), saloonID, staffID, dateStr)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	saloonID := middleware.SaloonID(c)
	staffID, ok := uintParam(c, "staffID")
	if !ok {
		return
	}

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_month", "year and month are required.")
		return
	}

	list, err := h.listByMonthUC.Execute(c.Request.Context(), saloonID, staffID, year, month)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

type transitionExecutor func(
	ctx context.Context,
	saloonID uint,
	actorID *uint,
	appointmentID uuid.UUID,
) (*models.Appointment, error)

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.confirmUC.Execute)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancelUC.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.completeUC.Execute)
}

func (h *AppointmentHandler) transition(c *gin.Context, exec transitionExecutor) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ap, err := exec(c.Request.Context(), middleware.SaloonID(c), middleware.UserID(c), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}
