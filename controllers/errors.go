package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-booking/models"
	"restaurant-booking/utils"
)

// respondDomainError maps domain errors onto HTTP status codes and writes the
// standard error envelope. Unknown errors become 500s.
func respondDomainError(c *gin.Context, err error) {
	utils.RespondError(c, statusForError(err), err)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrMissingFields),
		errors.Is(err, models.ErrInvalidPartySize),
		errors.Is(err, models.ErrPastReservation),
		errors.Is(err, models.ErrInvalidCapacity),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrInvalidRating):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrTableNotFound),
		errors.Is(err, models.ErrReservationNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrMenuItemNotFound),
		errors.Is(err, models.ErrCategoryNotFound),
		errors.Is(err, models.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, models.ErrTableUnavailable),
		errors.Is(err, models.ErrInsufficientCapacity),
		errors.Is(err, models.ErrTableConflict),
		errors.Is(err, models.ErrTableNumberTaken),
		errors.Is(err, models.ErrEventFull),
		errors.Is(err, models.ErrCategoryInUse),
		errors.Is(err, models.ErrReservationClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
