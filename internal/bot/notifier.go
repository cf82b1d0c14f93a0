package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/execwatch/execwatch/internal/moderation"
	"go.uber.org/zap"
)

// Notifier delivers execution alerts to the configured Discord channel.
// It implements moderation.Notifier.
type Notifier struct {
	client    bot.Client
	channelID snowflake.ID
	logger    *zap.Logger
}

// NewNotifier creates an alert notifier for the given channel.
func NewNotifier(client bot.Client, channelID uint64, logger *zap.Logger) *Notifier {
	return &Notifier{
		client:    client,
		channelID: snowflake.ID(channelID),
		logger:    logger.Named("notifier"),
	}
}

// NotifyExecution sends the execution alert embed. Failures are surfaced
// to the caller, which treats alert delivery as fire-and-forget.
func (n *Notifier) NotifyExecution(ctx context.Context, report moderation.Report) error {
	embed := discord.NewEmbedBuilder().
		SetTitle("🚨 Script Executed").
		SetColor(colorRed).
		AddField("Username", report.Username, false).
		AddField("Display Name", report.DisplayName, false).
		AddField("Player ID", report.PlayerID, false).
		SetTimestamp(time.Now()).
		Build()

	_, err := n.client.Rest().CreateMessage(n.channelID,
		discord.NewMessageCreateBuilder().SetEmbeds(embed).Build(),
		rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to send execution alert: %w", err)
	}

	n.logger.Debug("Sent execution alert", zap.String("player_id", report.PlayerID))

	return nil
}
