package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bikefleet/internal/domain/principal"
	"bikefleet/internal/handler/api"
	"bikefleet/internal/handler/middleware"
	"bikefleet/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	rentalHandler *api.RentalHandler,
	sosHandler *api.SOSHandler,
	eventsHandler *api.EventsHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, rentalHandler, sosHandler, eventsHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	rentalHandler *api.RentalHandler,
	sosHandler *api.SOSHandler,
	eventsHandler *api.EventsHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		staffOnly := authMiddleware.RequireAnyRole(principal.RoleStaff, principal.RoleAdmin)
		agentOrStaff := authMiddleware.RequireAnyRole(principal.RoleStaff, principal.RoleAdmin, principal.RoleAgent)

		rentals := apiGroup.Group("/rentals")
		rentals.Use(authMiddleware.RequireAuth())
		{
			addRoutes(rentals, []route{
				{Method: http.MethodPost, Path: "", Handler: rentalHandler.StartRental},
				{Method: http.MethodPost, Path: "/card", Handler: rentalHandler.StartRentalByCard},
				{Method: http.MethodGet, Path: "", Handler: rentalHandler.GetUserRentals},
				{Method: http.MethodGet, Path: "/:id", Handler: rentalHandler.GetRental},
				{Method: http.MethodPost, Path: "/:id/end", Handler: rentalHandler.EndRental},
				{Method: http.MethodPost, Path: "/:id/force-end", Handler: rentalHandler.ForceEndRental, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: rentalHandler.CancelRental, Mw: []gin.HandlerFunc{staffOnly}},
			})
		}

		sosGroup := apiGroup.Group("/sos")
		sosGroup.Use(authMiddleware.RequireAuth())
		{
			addRoutes(sosGroup, []route{
				{Method: http.MethodPost, Path: "", Handler: sosHandler.CreateSOS},
				{Method: http.MethodGet, Path: "", Handler: sosHandler.ListOpenSOS, Mw: []gin.HandlerFunc{agentOrStaff}},
				{Method: http.MethodGet, Path: "/:id", Handler: sosHandler.GetSOS},
				{Method: http.MethodPost, Path: "/:id/dispatch", Handler: sosHandler.DispatchSOS, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: sosHandler.ConfirmSOS, Mw: []gin.HandlerFunc{agentOrStaff}},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: sosHandler.RejectSOS, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: sosHandler.CancelSOS},
			})
		}

		events := apiGroup.Group("/events")
		events.Use(authMiddleware.RequireAuth())
		{
			addRoutes(events, []route{
				{Method: http.MethodGet, Path: "", Handler: eventsHandler.Stream},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
