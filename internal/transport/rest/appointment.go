package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon/internal/domain"
)

// @Summary Book an appointment
// @Description Books a free slot. Exactly one of service and style must be set. New appointments start as pending.
// @Tags Booking
// @Accept json
// @Produce json
// @Param input body domain.BookAppointmentDTO true "Booking request"
// @Success 201 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody "Validation error or unknown service"
// @Failure 409 {object} errorResponseBody "Slot is not available"
// @Failure 503 {object} errorResponseBody "Store unavailable"
// @Router /appointments [post]
func (h *Handler) bookAppointment(c *gin.Context) {
	var req domain.BookAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid booking payload", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	appointment, err := h.services.Appointment.Book(c.Request.Context(), req)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to book appointment")
		return
	}

	createdResponse(c, appointment)
}
