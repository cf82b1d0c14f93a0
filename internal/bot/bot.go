// Package bot implements the Discord operator surface: slash commands for
// ban and whitelist management plus the execution alert channel.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/execwatch/execwatch/internal/moderation"
	"go.uber.org/zap"
)

// commandTimeout bounds how long one operator command may hold the store.
const commandTimeout = 10 * time.Second

// Bot handles the Discord connection and slash command dispatch.
type Bot struct {
	client bot.Client
	engine *moderation.CommandEngine
	logger *zap.Logger
}

// New initializes a Bot instance and configures the Discord client with the
// required gateway intents and event listeners.
func New(token string, engine *moderation.CommandEngine, logger *zap.Logger) (*Bot, error) {
	b := &Bot{
		engine: engine,
		logger: logger.Named("bot"),
	}

	client, err := disgo.New(token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(gateway.IntentGuilds),
		),
		bot.WithEventListeners(&events.ListenerAdapter{
			OnApplicationCommandInteraction: b.handleApplicationCommandInteraction,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord client: %w", err)
	}

	b.client = client

	return b, nil
}

// Client returns the underlying Discord client.
func (b *Bot) Client() bot.Client {
	return b.client
}

// Start registers the global slash commands with Discord and opens the
// gateway connection.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Registering commands")

	_, err := b.client.Rest().SetGlobalCommands(b.client.ApplicationID(), slashCommands)
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.logger.Info("Starting bot")

	return b.client.OpenGateway(ctx)
}

// Close gracefully shuts down the Discord gateway connection.
func (b *Bot) Close(ctx context.Context) {
	b.logger.Info("Closing bot")
	b.client.Close(ctx)
}

// handleApplicationCommandInteraction resolves a slash command into its
// typed variant, runs it through the command engine and replies with the
// rendered result. Commands run in a goroutine so the gateway loop is
// never blocked on the store.
func (b *Bot) handleApplicationCommandInteraction(event *events.ApplicationCommandInteractionCreate) {
	go func() {
		data := event.SlashCommandInteractionData()

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic in application command handler", zap.Any("panic", r))
				b.replyEphemeral(event, errorEmbed("Internal error. Please report this to an administrator."))
			}

			b.logger.Debug("Application command handled",
				zap.String("command", data.CommandName()),
				zap.Duration("duration", time.Since(start)))
		}()

		cmd, err := parseCommand(data)
		if err != nil {
			b.replyEphemeral(event, errorEmbed(err.Error()))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		result, err := b.engine.Execute(ctx, uint64(event.User().ID), cmd)
		if err != nil {
			if errors.Is(err, moderation.ErrUnauthorized) {
				b.replyEphemeral(event, accessDeniedEmbed())
				return
			}

			b.logger.Error("Failed to execute command",
				zap.String("command", data.CommandName()),
				zap.Uint64("invoker_id", uint64(event.User().ID)),
				zap.Error(err))
			b.replyEphemeral(event, errorEmbed("Command failed. Please try again later."))

			return
		}

		b.reply(event, buildResultEmbed(cmd, result))
	}()
}

// reply sends a public embed response to the interaction.
func (b *Bot) reply(event *events.ApplicationCommandInteractionCreate, embed discord.Embed) {
	err := event.CreateMessage(discord.NewMessageCreateBuilder().
		SetEmbeds(embed).
		Build())
	if err != nil {
		b.logger.Error("Failed to respond to interaction", zap.Error(err))
	}
}

// replyEphemeral sends an embed response only the invoker can see.
func (b *Bot) replyEphemeral(event *events.ApplicationCommandInteractionCreate, embed discord.Embed) {
	err := event.CreateMessage(discord.NewMessageCreateBuilder().
		SetEmbeds(embed).
		SetEphemeral(true).
		Build())
	if err != nil {
		b.logger.Error("Failed to respond to interaction", zap.Error(err))
	}
}
