//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"bikefleet/internal/domain/principal"
	"bikefleet/internal/domain/rental"
	"bikefleet/internal/handler/api"
	resdto "bikefleet/internal/handler/dto/response"
	"bikefleet/internal/pkg/errs"
	"bikefleet/internal/usecase/queries"
	"bikefleet/tests/common/httptest"
	commandsmock "bikefleet/tests/mock/commands"
	queriesmock "bikefleet/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RentalHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRentalCommands
	mockQueries  *queriesmock.MockRentalQueries
	handler      *api.RentalHandler
	userID       uuid.UUID
}

func (s *RentalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRentalCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRentalQueries(s.mockCtrl)
	s.handler = api.NewRentalHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", principal.RoleRider)
		c.Next()
	}

	s.router.POST("/rentals", authMiddleware, s.handler.StartRental)
	s.router.POST("/rentals/card", s.handler.StartRentalByCard)
	s.router.GET("/rentals", authMiddleware, s.handler.GetUserRentals)
	s.router.GET("/rentals/:id", authMiddleware, s.handler.GetRental)
	s.router.POST("/rentals/:id/end", authMiddleware, s.handler.EndRental)
	s.router.POST("/rentals/:id/force-end", authMiddleware, s.handler.ForceEndRental)
	s.router.POST("/rentals/:id/cancel", authMiddleware, s.handler.CancelRental)
}

func (s *RentalHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRentalHandlerSuite(t *testing.T) {
	suite.Run(t, new(RentalHandlerTestSuite))
}

func (s *RentalHandlerTestSuite) activeRental(bikeID uuid.UUID) *rental.Rental {
	return rental.NewActive(bikeID, s.userID, uuid.New(), time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
}

// ================================================================================
// TestStartRental
// ================================================================================

func (s *RentalHandlerTestSuite) TestStartRental() {
	url := "/rentals"
	bikeID := uuid.New()
	reqBody := map[string]any{"bike_id": bikeID.String()}

	s.Run("success: returns 201 Created with the rental", func() {
		returned := s.activeRental(bikeID)
		s.mockCommands.EXPECT().Start(gomock.Any(), s.userID, bikeID).
			Return(returned, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.RentalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returned.ID(), response.ID)
		s.Equal(bikeID, response.BikeID)
		s.Equal("active", response.Status)
	})

	s.Run("error: 400 on missing bike_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 401 when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{"bike not found", errs.ErrBikeNotFound, http.StatusNotFound},
			{"bike not available", errs.ErrBikeNotAvailable, http.StatusConflict},
			{"unexpected failure", errs.New("connection reset"), http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Start(gomock.Any(), s.userID, bikeID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestStartRentalByCard
// ================================================================================

func (s *RentalHandlerTestSuite) TestStartRentalByCard() {
	url := "/rentals/card"
	reqBody := map[string]any{"chip_id": "CHIP-0042", "card_uid": "04:a2:3b:1c"}

	s.Run("success: returns 201 Created", func() {
		returned := s.activeRental(uuid.New())
		s.mockCommands.EXPECT().StartByCard(gomock.Any(), "CHIP-0042", "04:a2:3b:1c").
			Return(returned, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.RentalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returned.ID(), response.ID)
	})

	s.Run("error: 400 on missing card_uid", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"chip_id": "CHIP-0042"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 404 for an unknown card", func() {
		s.mockCommands.EXPECT().StartByCard(gomock.Any(), "CHIP-0042", "04:a2:3b:1c").
			Return(nil, errs.ErrNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

// ================================================================================
// TestEndRental
// ================================================================================

func (s *RentalHandlerTestSuite) TestEndRental() {
	rentalID := uuid.New()
	url := "/rentals/" + rentalID.String() + "/end"

	s.Run("success: returns 200 OK with the closed rental", func() {
		returned := s.activeRental(uuid.New())
		price := int64(1200)
		endStation := returned.StationStart()
		s.Require().NoError(returned.End(endStation, returned.StartedAt().Add(6*time.Minute), price, nil))

		s.mockCommands.EXPECT().EndByUser(gomock.Any(), s.userID, rentalID).
			Return(returned, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.RentalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("ended", response.Status)
		s.Require().NotNil(response.TotalPriceCents)
		s.Equal(price, *response.TotalPriceCents)
	})

	s.Run("error: 400 on a malformed rental id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rentals/not-a-uuid/end", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid rental ID")
	})

	s.Run("error: 403 when the rental belongs to another user", func() {
		s.mockCommands.EXPECT().EndByUser(gomock.Any(), s.userID, rentalID).
			Return(nil, errs.ErrRentalNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 409 when the rental is not active", func() {
		s.mockCommands.EXPECT().EndByUser(gomock.Any(), s.userID, rentalID).
			Return(nil, errs.ErrRentalNotActive).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 404 when the rental does not exist", func() {
		s.mockCommands.EXPECT().EndByUser(gomock.Any(), s.userID, rentalID).
			Return(nil, errs.ErrRentalNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestForceEndRental
// ================================================================================

func (s *RentalHandlerTestSuite) TestForceEndRental() {
	rentalID := uuid.New()
	stationEnd := uuid.New()
	url := "/rentals/" + rentalID.String() + "/force-end"
	reqBody := map[string]any{
		"station_end": stationEnd.String(),
		"reason":      "bike abandoned at the pier",
	}

	s.Run("success: returns 200 OK", func() {
		returned := s.activeRental(uuid.New())
		reason := "bike abandoned at the pier"
		s.Require().NoError(returned.End(stationEnd, returned.StartedAt().Add(time.Hour), 12000, &reason))

		s.mockCommands.EXPECT().
			EndByStaff(gomock.Any(), rentalID, stationEnd, "bike abandoned at the pier", gomock.Nil()).
			Return(returned, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.RentalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().NotNil(response.TerminationReason)
		s.Equal(reason, *response.TerminationReason)
	})

	s.Run("success: backdated end time is forwarded", func() {
		endTime := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
		body := map[string]any{
			"station_end": stationEnd.String(),
			"reason":      "found docked",
			"end_time":    endTime.Format(time.RFC3339),
		}
		returned := s.activeRental(uuid.New())
		reason := "found docked"
		s.Require().NoError(returned.End(stationEnd, endTime, 9000, &reason))

		s.mockCommands.EXPECT().
			EndByStaff(gomock.Any(), rentalID, stationEnd, "found docked", gomock.Not(gomock.Nil())).
			Return(returned, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on missing reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"station_end": stationEnd.String()}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 on a future end time", func() {
		s.mockCommands.EXPECT().
			EndByStaff(gomock.Any(), rentalID, stationEnd, gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrEndTimeInFuture).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestCancelRental
// ================================================================================

func (s *RentalHandlerTestSuite) TestCancelRental() {
	rentalID := uuid.New()
	url := "/rentals/" + rentalID.String() + "/cancel"

	s.Run("success: returns 200 OK", func() {
		returned := rental.NewReserved(uuid.New(), s.userID, uuid.New(), time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))

		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), rentalID, "rider no-show", gomock.Nil()).
			Return(returned, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"reason": "rider no-show"}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: forwards the resulting bike status", func() {
		returned := rental.NewReserved(uuid.New(), s.userID, uuid.New(), time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))

		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), rentalID, "flat tire found", gomock.Not(gomock.Nil())).
			Return(returned, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"reason": "flat tire found", "bike_status": "maintenance"}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on rented as resulting bike status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"reason": "no-show", "bike_status": "rented"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid bike status")
	})

	s.Run("error: 409 when the rental is not reserved", func() {
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), rentalID, "no-show", gomock.Nil()).
			Return(nil, errs.ErrRentalNotReserved).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"reason": "no-show"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

// ================================================================================
// TestGetRental
// ================================================================================

func (s *RentalHandlerTestSuite) TestGetRental() {
	rentalID := uuid.New()
	url := "/rentals/" + rentalID.String()

	s.Run("success: returns 200 OK with the view", func() {
		view := &queries.RentalView{
			ID:           rentalID,
			BikeID:       uuid.New(),
			UserID:       s.userID,
			StationStart: uuid.New(),
			StartedAt:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			Status:       "active",
		}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, principal.RoleRider, rentalID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.RentalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(rentalID, response.ID)
		s.Equal("active", response.Status)
	})

	s.Run("error: 404 when not found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, principal.RoleRider, rentalID).
			Return(nil, queries.ErrRentalNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Rental not found")
	})

	s.Run("error: 403 for another rider's rental", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, principal.RoleRider, rentalID).
			Return(nil, queries.ErrRentalAccess).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})
}

// ================================================================================
// TestGetUserRentals
// ================================================================================

func (s *RentalHandlerTestSuite) TestGetUserRentals() {
	url := "/rentals"

	s.Run("success: returns the rider's rentals", func() {
		items := []queries.RentalListItem{
			{ID: uuid.New(), BikeID: uuid.New(), StartedAt: time.Now(), Status: "ended"},
			{ID: uuid.New(), BikeID: uuid.New(), StartedAt: time.Now(), Status: "active"},
		}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.RentalListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal(items[0].ID, response[0].ID)
	})

	s.Run("success: empty history is an empty array", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.RentalListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})
}
