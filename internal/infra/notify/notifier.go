// Package notify carries out-of-band SOS notifications (push, SMS) to riders
// and agents. The log notifier is the default wiring; real transports
// implement commands.SOSNotifier behind the same interface.
package notify

import (
	"context"
	"log/slog"

	"bikefleet/internal/domain/sos"
)

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyDispatched(_ context.Context, req *sos.Request) {
	n.logger.Info("sos dispatched",
		"sos_id", req.ID(),
		"rental_id", req.RentalID(),
		"agent_id", req.AssignedAgentID())
}

func (n *LogNotifier) NotifyResolved(_ context.Context, req *sos.Request) {
	n.logger.Info("sos resolved",
		"sos_id", req.ID(),
		"rental_id", req.RentalID(),
		"solvable", req.Solvable())
}
