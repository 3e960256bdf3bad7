package api

import (
	"errors"
	"net/http"

	"bikefleet/internal/domain/bike"
	reqdto "bikefleet/internal/handler/dto/request"
	resdto "bikefleet/internal/handler/dto/response"
	"bikefleet/internal/handler/httperr"
	"bikefleet/internal/handler/middleware"
	"bikefleet/internal/pkg/errs"
	"bikefleet/internal/usecase/commands"
	"bikefleet/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RentalHandler struct {
	rentalCommands commands.RentalCommands
	rentalQueries  queries.RentalQueries
}

func NewRentalHandler(rentalCommands commands.RentalCommands, rentalQueries queries.RentalQueries) *RentalHandler {
	return &RentalHandler{
		rentalCommands: rentalCommands,
		rentalQueries:  rentalQueries,
	}
}

func (h *RentalHandler) StartRental(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing in context"), "Internal server error", nil)
		return
	}

	var req reqdto.StartRentalRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	rental, err := h.rentalCommands.Start(c.Request.Context(), userID, req.BikeID)
	if err != nil {
		h.writeRentalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRental(rental))
}

// StartRentalByCard serves station terminals: the rider taps a card at a
// docked bike instead of using the app.
func (h *RentalHandler) StartRentalByCard(c *gin.Context) {
	var req reqdto.StartRentalByCardRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	rental, err := h.rentalCommands.StartByCard(c.Request.Context(), req.ChipID, req.CardUID)
	if err != nil {
		h.writeRentalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRental(rental))
}

func (h *RentalHandler) EndRental(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing in context"), "Internal server error", nil)
		return
	}

	rentalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rental ID", nil)
		return
	}

	rental, err := h.rentalCommands.EndByUser(c.Request.Context(), userID, rentalID)
	if err != nil {
		h.writeRentalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRental(rental))
}

// ForceEndRental lets staff close abandoned rentals, optionally backdating
// the end time to when the bike was actually returned.
func (h *RentalHandler) ForceEndRental(c *gin.Context) {
	rentalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rental ID", nil)
		return
	}

	var req reqdto.ForceEndRentalRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	rental, err := h.rentalCommands.EndByStaff(c.Request.Context(), rentalID, req.StationEnd, req.Reason, req.EndTime)
	if err != nil {
		h.writeRentalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRental(rental))
}

func (h *RentalHandler) CancelRental(c *gin.Context) {
	rentalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rental ID", nil)
		return
	}

	var req reqdto.CancelRentalRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	var bikeStatus *bike.Status
	if req.BikeStatus != nil {
		s := bike.Status(*req.BikeStatus)
		if !s.IsValid() || s == bike.StatusRented {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.Newf("bike status %q not settable", *req.BikeStatus), "Invalid bike status", nil)
			return
		}
		bikeStatus = &s
	}

	rental, err := h.rentalCommands.Cancel(c.Request.Context(), rentalID, req.Reason, bikeStatus)
	if err != nil {
		h.writeRentalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRental(rental))
}

func (h *RentalHandler) GetRental(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing in context"), "Internal server error", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	rentalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rental ID", nil)
		return
	}

	view, err := h.rentalQueries.GetByID(c.Request.Context(), userID, role, rentalID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrRentalNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Rental not found", nil)
		case errors.Is(err, queries.ErrRentalAccess):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

func (h *RentalHandler) GetUserRentals(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing in context"), "Internal server error", nil)
		return
	}

	items, err := h.rentalQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	responses := make([]*resdto.RentalListResponse, 0, len(items))
	for i := range items {
		responses = append(responses, resdto.FromRentalListItem(&items[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *RentalHandler) writeRentalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrRentalNotFound), errors.Is(err, errs.ErrBikeNotFound), errors.Is(err, errs.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, errs.ErrRentalNotOwned):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Rental belongs to another user", nil)
	case errors.Is(err, errs.ErrBikeNotAvailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Bike not available", nil)
	case errors.Is(err, errs.ErrRentalNotActive), errors.Is(err, errs.ErrRentalNotReserved), errors.Is(err, errs.ErrInvalidState):
		httperr.AbortWithError(c, http.StatusConflict, err, "Rental is not in a valid state for this operation", nil)
	case errors.Is(err, errs.ErrReasonRequired),
		errors.Is(err, errs.ErrEndTimeInFuture),
		errors.Is(err, errs.ErrEndTimeBeforeStart),
		errors.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
