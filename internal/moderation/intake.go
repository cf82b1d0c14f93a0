package moderation

import (
	"context"

	"go.uber.org/zap"
)

// Report is one inbound execution event from the monitored game client.
type Report struct {
	PlayerID    string `json:"player_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// Decision is the outcome returned to the game client for a report.
type Decision struct {
	Banned bool   `json:"banned"`
	Reason string `json:"reason,omitempty"`
}

// Notifier delivers execution alerts. Delivery is fire-and-forget relative
// to the report response.
type Notifier interface {
	NotifyExecution(ctx context.Context, report Report) error
}

// Intake orchestrates the ban check, the journal append and the whitelist
// gate for each incoming report.
type Intake struct {
	bans      *BanManager
	journal   *Journal
	whitelist *WhitelistGate
	notifier  Notifier
	logger    *zap.Logger
}

// NewIntake creates a new Intake instance.
func NewIntake(
	bans *BanManager, journal *Journal, whitelist *WhitelistGate, notifier Notifier, logger *zap.Logger,
) *Intake {
	return &Intake{
		bans:      bans,
		journal:   journal,
		whitelist: whitelist,
		notifier:  notifier,
		logger:    logger.Named("intake"),
	}
}

// HandleReport produces the ban/alert decision for one report. The step
// order is load-bearing: banned players are rejected before anything is
// journaled, every non-banned report is journaled exactly once, and the
// alert is raised only for non-whitelisted players. Store failures on the
// ban check or the journal append abort the report; an alert failure never
// changes the returned decision.
func (e *Intake) HandleReport(ctx context.Context, report Report) (Decision, error) {
	status, err := e.bans.CheckAndReconcile(ctx, report.PlayerID)
	if err != nil {
		return Decision{}, err
	}

	if status.State == BanStateActive {
		e.logger.Info("Rejected report from banned player",
			zap.String("player_id", report.PlayerID),
			zap.String("reason", status.Reason))

		return Decision{Banned: true, Reason: status.Reason}, nil
	}

	if err := e.journal.Record(ctx, report.PlayerID, report.Username, report.DisplayName); err != nil {
		return Decision{}, err
	}

	whitelisted, err := e.whitelist.IsWhitelisted(ctx, report.PlayerID)
	if err != nil {
		return Decision{}, err
	}

	if whitelisted {
		return Decision{Banned: false}, nil
	}

	if err := e.notifier.NotifyExecution(ctx, report); err != nil {
		e.logger.Error("Failed to deliver execution alert",
			zap.String("player_id", report.PlayerID),
			zap.Error(err))
	}

	return Decision{Banned: false}, nil
}
