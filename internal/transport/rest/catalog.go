package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon/internal/calendar"
	"salon/internal/domain"
)

type slotsResponse struct {
	Date  string               `json:"date" example:"2025-03-14"`
	Slots []calendar.TimeOfDay `json:"slots" swaggertype:"array,string" example:"09:00,09:05"`
}

// @Summary Service catalog
// @Description Working hours, breaks, services and special styles with prices
// @Tags Booking
// @Produce json
// @Success 200 {object} service.Catalog
// @Router /services [get]
func (h *Handler) getCatalog(c *gin.Context) {
	successResponse(c, http.StatusOK, h.services.Catalog.Catalog())
}

// @Summary Free slots
// @Description Start times still bookable on a date for one service or one style
// @Tags Booking
// @Produce json
// @Param date query string true "Date, YYYY-MM-DD"
// @Param service query string false "Service name"
// @Param style query string false "Special style name"
// @Success 200 {object} slotsResponse
// @Failure 400 {object} errorResponseBody "Invalid date or unknown service"
// @Failure 503 {object} errorResponseBody "Store unavailable"
// @Router /slots [get]
func (h *Handler) getSlots(c *gin.Context) {
	date, err := domain.ParseDate(strings.TrimSpace(c.Query("date")))
	if err != nil {
		h.serviceErrorResponse(c, err, "invalid slots date")
		return
	}

	service, style := strings.TrimSpace(c.Query("service")), strings.TrimSpace(c.Query("style"))
	var ref calendar.ServiceRef
	switch {
	case service == "" && style == "":
		fieldErrorResponse(c, "service", "a service or a style is required")
		return
	case service != "" && style != "":
		fieldErrorResponse(c, "service", "choose either a service or a style, not both")
		return
	case style != "":
		ref = calendar.SpecialStyle(style)
	default:
		ref = calendar.PlainService(service)
	}

	slots, err := h.services.Slot.AvailableSlots(c.Request.Context(), date, ref)
	if err != nil {
		h.logger.Debug("slots lookup failed", zap.String("ref", ref.String()), zap.Error(err))
		h.serviceErrorResponse(c, err, "failed to compute free slots")
		return
	}

	successResponse(c, http.StatusOK, slotsResponse{
		Date:  date.Format(domain.DateLayout),
		Slots: slots,
	})
}
