package api

import (
	"net/http"
	"time"

	"bikefleet/internal/handler/httperr"
	"bikefleet/internal/handler/middleware"
	"bikefleet/internal/pkg/errs"
	"bikefleet/internal/status"

	"github.com/gin-gonic/gin"
)

// EventsHandler streams fleet-state changes to the authenticated recipient
// over SSE. Heartbeats and domain frames are distinct event names, so client
// liveness checks never mistake a keep-alive for a state change.
type EventsHandler struct {
	bus               status.Bus
	backlog           *status.Backlog
	heartbeatInterval time.Duration
}

func NewEventsHandler(bus status.Bus, backlog *status.Backlog, heartbeatInterval time.Duration) *EventsHandler {
	if heartbeatInterval <= 0 {
		heartbeatInterval = 15 * time.Second
	}
	return &EventsHandler{
		bus:               bus,
		backlog:           backlog,
		heartbeatInterval: heartbeatInterval,
	}
}

func (h *EventsHandler) Stream(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing in context"), "Internal server error", nil)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	// Subscribe before draining: anything published during the drain lands on
	// the live channel instead of falling in the gap. Messages present in
	// both are deduplicated below by sequence number.
	sub := h.bus.Subscribe(userID)
	defer h.bus.Unsubscribe(sub)

	var maxDrainedSeq uint64
	for _, msg := range h.backlog.Drain(userID) {
		c.SSEvent(msg.Type, msg)
		if msg.Seq > maxDrainedSeq {
			maxDrainedSeq = msg.Seq
		}
	}
	c.Writer.Flush()

	heartbeat := time.NewTicker(h.heartbeatInterval)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, open := <-sub.C():
			if !open {
				return
			}
			if msg.Seq != 0 && msg.Seq <= maxDrainedSeq {
				continue // already replayed from the backlog
			}
			c.SSEvent(msg.Type, msg)
			c.Writer.Flush()
		case <-heartbeat.C:
			c.SSEvent("heartbeat", "ping")
			c.Writer.Flush()
		}
	}
}
