package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon/internal/domain"
)

func statusForError(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindUnknownService:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindSlotUnavailable, domain.KindInvalidTransition:
		return http.StatusConflict
	case domain.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// serviceErrorResponse writes the error envelope for a failed core
// operation. Internal details are logged, never returned.
func (h *Handler) serviceErrorResponse(c *gin.Context, err error, msg string) {
	status := statusForError(err)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		fieldErrorResponse(c, verr.Field, verr.Message)
	case status == http.StatusInternalServerError:
		_ = c.Error(fmt.Errorf("%s: %w", msg, err))
		internalServerErrorResponse(c)
	case status == http.StatusServiceUnavailable:
		h.logger.Error(msg, zap.Error(err))
		errorResponse(c, status, "appointment store is temporarily unavailable")
	default:
		errorResponse(c, status, err.Error())
	}
}
