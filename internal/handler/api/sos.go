package api

import (
	"errors"
	"net/http"

	"bikefleet/internal/domain/sos"
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

type SOSHandler struct {
	sosCommands commands.SOSCommands
	sosQueries  queries.SOSQueries
}

func NewSOSHandler(sosCommands commands.SOSCommands, sosQueries queries.SOSQueries) *SOSHandler {
	return &SOSHandler{
		sosCommands: sosCommands,
		sosQueries:  sosQueries,
	}
}

func (h *SOSHandler) CreateSOS(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing in context"), "Internal server error", nil)
		return
	}

	var req reqdto.CreateSOSRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	created, err := h.sosCommands.Create(c.Request.Context(), userID, req.RentalID, req.Issue,
		sos.Location{Latitude: req.Latitude, Longitude: req.Longitude}, req.StaffNotes)
	if err != nil {
		h.writeSOSError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSOS(created))
}

func (h *SOSHandler) DispatchSOS(c *gin.Context) {
	sosID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid SOS ID", nil)
		return
	}

	var req reqdto.DispatchSOSRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	dispatched, err := h.sosCommands.Dispatch(c.Request.Context(), sosID, req.AgentID)
	if err != nil {
		h.writeSOSError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSOS(dispatched))
}

func (h *SOSHandler) ConfirmSOS(c *gin.Context) {
	sosID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid SOS ID", nil)
		return
	}

	var req reqdto.ConfirmSOSRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil || req.Solvable == nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("solvable is required"), "Invalid request format", nil)
		return
	}

	confirmed, err := h.sosCommands.Confirm(c.Request.Context(), sosID, req.Notes, *req.Solvable)
	if err != nil {
		h.writeSOSError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSOS(confirmed))
}

func (h *SOSHandler) RejectSOS(c *gin.Context) {
	sosID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid SOS ID", nil)
		return
	}

	var req reqdto.RejectSOSRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	rejected, err := h.sosCommands.Reject(c.Request.Context(), sosID, req.Reason)
	if err != nil {
		h.writeSOSError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSOS(rejected))
}

func (h *SOSHandler) CancelSOS(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing in context"), "Internal server error", nil)
		return
	}

	sosID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid SOS ID", nil)
		return
	}

	var req reqdto.CancelSOSRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	cancelled, err := h.sosCommands.CancelByReporter(c.Request.Context(), userID, sosID, req.Reason)
	if err != nil {
		h.writeSOSError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSOS(cancelled))
}

func (h *SOSHandler) GetSOS(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing in context"), "Internal server error", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	sosID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid SOS ID", nil)
		return
	}

	view, err := h.sosQueries.GetByID(c.Request.Context(), userID, role, sosID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrSOSNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "SOS request not found", nil)
		case errors.Is(err, queries.ErrSOSAccess):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromSOSView(view))
}

// ListOpenSOS serves the dispatch board for staff and agents.
func (h *SOSHandler) ListOpenSOS(c *gin.Context) {
	views, err := h.sosQueries.ListOpen(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	responses := make([]*resdto.SOSResponse, 0, len(views))
	for i := range views {
		responses = append(responses, resdto.FromSOSView(&views[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *SOSHandler) writeSOSError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrSOSNotFound), errors.Is(err, errs.ErrRentalNotFound),
		errors.Is(err, errs.ErrAgentNotFound), errors.Is(err, errs.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, errs.ErrRentalNotOwned):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Rental belongs to another user", nil)
	case errors.Is(err, errs.ErrRentalNotActive):
		httperr.AbortWithError(c, http.StatusConflict, err, "Rental is not active", nil)
	case errors.Is(err, errs.ErrSOSNotOpen),
		errors.Is(err, errs.ErrSOSNotDispatched),
		errors.Is(err, errs.ErrSOSAlreadyDispatched),
		errors.Is(err, errs.ErrSOSTerminal),
		errors.Is(err, errs.ErrInvalidState):
		httperr.AbortWithError(c, http.StatusConflict, err, "SOS request is not in a valid state for this operation", nil)
	case errors.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
