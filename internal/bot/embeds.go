package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/execwatch/execwatch/internal/database/types"
	"github.com/execwatch/execwatch/internal/moderation"
)

const (
	colorRed   = 0xFF0000
	colorGreen = 0x2ECC71

	timestampFormat = "2006-01-02 15:04:05 MST"
)

// accessDeniedEmbed is the fixed response for non-admin invocations.
func accessDeniedEmbed() discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("❌ Admin only").
		SetColor(colorRed).
		Build()
}

// errorEmbed renders a user-visible failure message.
func errorEmbed(message string) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("❌ Error").
		SetDescription(message).
		SetColor(colorRed).
		Build()
}

// buildResultEmbed renders the outcome of a successful command.
func buildResultEmbed(cmd moderation.Command, result *moderation.CommandResult) discord.Embed {
	switch c := cmd.(type) {
	case moderation.BanCommand:
		return discord.NewEmbedBuilder().
			SetTitle("🚫 Banned").
			SetDescription(c.PlayerID).
			SetColor(colorRed).
			Build()

	case moderation.TempBanCommand:
		return discord.NewEmbedBuilder().
			SetTitle("⏱ Tempbanned").
			SetDescription(fmt.Sprintf("%s until %s", c.PlayerID, result.ExpiresAt.Format(timestampFormat))).
			SetColor(colorRed).
			Build()

	case moderation.UnbanCommand:
		return discord.NewEmbedBuilder().
			SetTitle("✅ Unbanned").
			SetDescription(c.PlayerID).
			SetColor(colorGreen).
			Build()

	case moderation.BanListCommand:
		return discord.NewEmbedBuilder().
			SetTitle("🚫 Ban List").
			SetDescription(formatBanList(result.Bans)).
			SetColor(colorRed).
			Build()

	case moderation.ClearBansCommand:
		return discord.NewEmbedBuilder().
			SetTitle("🧹 All bans cleared").
			SetDescription(fmt.Sprintf("Removed %d bans", result.RemovedBans)).
			SetColor(colorGreen).
			Build()

	case moderation.WhitelistListCommand:
		return discord.NewEmbedBuilder().
			SetTitle("Whitelist").
			SetDescription(formatWhitelist(result.Entries)).
			SetColor(colorGreen).
			Build()

	case moderation.HistoryCommand:
		return discord.NewEmbedBuilder().
			SetTitle("📜 Execution History").
			SetDescription(formatHistory(result.Records)).
			SetColor(colorGreen).
			SetTimestamp(time.Now()).
			Build()

	default:
		// Whitelist add/remove share a generic confirmation
		return discord.NewEmbedBuilder().
			SetTitle("Whitelist updated").
			SetColor(colorGreen).
			Build()
	}
}

func formatBanList(bans []*types.Ban) string {
	if len(bans) == 0 {
		return "Empty"
	}

	lines := make([]string, 0, len(bans))
	for _, ban := range bans {
		line := fmt.Sprintf("%s | %s", ban.PlayerID, ban.Reason)
		if ban.ExpiresAt != nil {
			line += fmt.Sprintf(" | expires %s", ban.ExpiresAt.Format(timestampFormat))
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func formatWhitelist(entries []*types.WhitelistEntry) string {
	if len(entries) == 0 {
		return "Empty"
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Username != "" {
			lines = append(lines, fmt.Sprintf("%s (%s)", entry.PlayerID, entry.Username))
		} else {
			lines = append(lines, entry.PlayerID)
		}
	}

	return strings.Join(lines, "\n")
}

func formatHistory(records []*types.ExecutionRecord) string {
	if len(records) == 0 {
		return "No data"
	}

	lines := make([]string, 0, len(records))
	for _, record := range records {
		lines = append(lines, fmt.Sprintf("%s (%s)\n%s",
			record.Username, record.PlayerID, record.ExecutedAt.Format(timestampFormat)))
	}

	return strings.Join(lines, "\n\n")
}
