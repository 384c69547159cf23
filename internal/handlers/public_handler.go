package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/saloon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/saloon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/saloon-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	availability *appointment.GetAvailability
	book         *appointment.BookAppointment
	log          *zap.Logger
}

func NewPublicHandler(
	availability *appointment.GetAvailability,
	book *appointment.BookAppointment,
	log *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		book:         book,
		log:          log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	Date          string  `json:"date" binding:"required"`  // YYYY-MM-DD
	Start         string  `json:"start" binding:"required"` // HH:MM
	End           string  `json:"end" binding:"required"`   // HH:MM
	VariationIDs  []uint  `json:"variation_ids"`
	TotalPrice    float64 `json:"total_price"`
	PaymentMethod string  `json:"payment_method"`
	BufferMinutes *int    `json:"buffer_minutes"`
	GuestName     string  `json:"guest_name"`
	GuestPhone    string  `json:"guest_phone"`
	GuestEmail    string  `json:"guest_email" binding:"omitempty,email"`
	Notes         string  `json:"notes" binding:"max=255"`
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	saloonID, ok := uintParam(c, "saloonID")
	if !ok {
		return
	}
	staffID, ok := uintParam(c, "staffID")
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	variationIDs, ok := parseIDList(c.Query("variation_ids"))
	if !ok {
		httperr.BadRequest(c, "invalid_variation_ids", "variation_ids must be a comma separated list of ids.")
		return
	}

	in := appointment.AvailabilityInput{
		SaloonID:     saloonID,
		StaffID:      staffID,
		Date:         dateStr,
		VariationIDs: variationIDs,
	}

	if raw := c.Query("buffer_minutes"); raw != "" {
		buffer, err := strconv.Atoi(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_buffer", "Buffer must be a whole number of minutes.")
			return
		}
		in.BufferMinutes = &buffer
	}

	out, err := h.availability.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	saloonID, ok := uintParam(c, "saloonID")
	if !ok {
		return
	}
	staffID, ok := uintParam(c, "staffID")
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	res, err := h.book.Execute(
		c.Request.Context(),
		appointment.BookInput{
			SaloonID:       saloonID,
			StaffID:        staffID,
			Date:           req.Date,
			Start:          req.Start,
			End:            req.End,
			VariationIDs:   req.VariationIDs,
			TotalPrice:     req.TotalPrice,
			PaymentMethod:  req.PaymentMethod,
			BufferMinutes:  req.BufferMinutes,
			RequesterID:    middleware.UserID(c),
			GuestName:      req.GuestName,
			GuestPhone:     req.GuestPhone,
			GuestEmail:     req.GuestEmail,
			Notes:          req.Notes,
			IdempotencyKey: c.GetHeader("Idempotency-Key"),
		},
	)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	if res.Replayed {
		httpresp.OK(c, res.Appointment)
		return
	}

	middleware.Logger(c, h.log).Info("appointment booked",
		zap.String("appointment_id", res.Appointment.ID.String()),
		zap.Uint("staff_id", staffID),
		zap.String("date", res.Appointment.Date),
		zap.String("start", res.Appointment.LocalStart),
	)
	httpresp.Created(c, res.Appointment)
}
