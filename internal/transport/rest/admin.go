package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon/internal/domain"
	"salon/internal/receipt"
)

// @Summary Appointments for a period
// @Description Appointments of the day, the Monday to Sunday week, or the calendar month containing date, newest date first, with the total collected from paid appointments
// @Tags Admin
// @Produce json
// @Param period query string false "day, week or month" default(day)
// @Param date query string false "Reference date, YYYY-MM-DD; today when omitted"
// @Success 200 {object} domain.Dashboard
// @Failure 400 {object} errorResponseBody "Invalid period or date"
// @Failure 401 {object} errorResponseBody "Not authorized"
// @Security ApiKeyAuth
// @Router /admin/appointments [get]
func (h *Handler) getDashboard(c *gin.Context) {
	kind, err := domain.ParsePeriodKind(c.DefaultQuery("period", string(domain.PeriodDay)))
	if err != nil {
		h.serviceErrorResponse(c, err, "invalid period")
		return
	}

	ref := domain.Date(time.Now())
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		ref, err = domain.ParseDate(raw)
		if err != nil {
			h.serviceErrorResponse(c, err, "invalid dashboard date")
			return
		}
	}

	dashboard, err := h.services.Appointment.Dashboard(c.Request.Context(), kind, ref)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to load dashboard")
		return
	}

	successResponse(c, http.StatusOK, dashboard)
}

// @Summary Appointment by ID
// @Tags Admin
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody "Invalid ID"
// @Failure 401 {object} errorResponseBody "Not authorized"
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Security ApiKeyAuth
// @Router /admin/appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to get appointment")
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Change appointment status
// @Description Allowed moves: pending to approved, pending to rejected, approved to paid
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param input body domain.UpdateStatusDTO true "Target status"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody "Invalid ID or status"
// @Failure 401 {object} errorResponseBody "Not authorized"
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Failure 409 {object} errorResponseBody "Transition not allowed"
// @Security ApiKeyAuth
// @Router /admin/appointments/{id}/status [post]
func (h *Handler) updateAppointmentStatus(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var req domain.UpdateStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid status payload", zap.Error(err))
		fieldErrorResponse(c, "status", "status must be one of pending, approved, rejected, paid")
		return
	}

	h.transition(c, id, req.Status)
}

// transitionTo serves the approve, reject and pay shortcuts.
//
// @Summary Approve, reject or mark paid
// @Tags Admin
// @Produce json
// @Param id path int true "Appointment ID"
// @Param action path string true "approve, reject or pay"
// @Success 200 {object} domain.Appointment
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Failure 409 {object} errorResponseBody "Transition not allowed"
// @Security ApiKeyAuth
// @Router /admin/appointments/{id}/{action} [post]
func (h *Handler) transitionTo(status domain.AppointmentStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.appointmentID(c)
		if !ok {
			return
		}
		h.transition(c, id, status)
	}
}

func (h *Handler) transition(c *gin.Context, id int64, status domain.AppointmentStatus) {
	appointment, err := h.services.Appointment.Transition(c.Request.Context(), id, status)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to change appointment status")
		return
	}

	h.logger.Info("status changed by admin",
		zap.String("admin", adminSubject(c)),
		zap.Int64("id", id),
		zap.String("status", string(appointment.Status)))

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Appointment document
// @Description Plain-text confirmation, or the receipt once the appointment is paid
// @Tags Admin
// @Produce plain
// @Param id path int true "Appointment ID"
// @Success 200 {string} string "Document"
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Security ApiKeyAuth
// @Router /admin/appointments/{id}/document [get]
func (h *Handler) getAppointmentDocument(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		h.serviceErrorResponse(c, err, "failed to get appointment")
		return
	}

	doc := receipt.Render(h.config.Salon.Name, *appointment)
	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, receipt.ContentType, doc.Body)
}

func (h *Handler) appointmentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequestResponse(c, "invalid appointment id")
		return 0, false
	}
	return id, true
}
