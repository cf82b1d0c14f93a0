package bot

import (
	"errors"

	"github.com/disgoorg/disgo/discord"
	"github.com/execwatch/execwatch/internal/moderation"
)

var (
	errUnknownCommand    = errors.New("unknown command")
	errMissingTarget     = errors.New("either playerid or user must be provided")
	errUnknownSubcommand = errors.New("unknown subcommand")
)

// slashCommands are the global application commands registered on startup.
var slashCommands = []discord.ApplicationCommandCreate{
	discord.SlashCommandCreate{
		Name:        "ban",
		Description: "Permanently ban a player",
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionString{
				Name:        "playerid",
				Description: "Player ID to ban",
				Required:    true,
			},
			discord.ApplicationCommandOptionString{
				Name:        "reason",
				Description: "Reason for the ban",
				Required:    true,
			},
		},
	},
	discord.SlashCommandCreate{
		Name:        "tempban",
		Description: "Ban a player for a number of minutes",
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionString{
				Name:        "playerid",
				Description: "Player ID to ban",
				Required:    true,
			},
			discord.ApplicationCommandOptionInt{
				Name:        "minutes",
				Description: "Ban duration in minutes",
				Required:    true,
			},
			discord.ApplicationCommandOptionString{
				Name:        "reason",
				Description: "Reason for the ban",
				Required:    true,
			},
		},
	},
	discord.SlashCommandCreate{
		Name:        "unban",
		Description: "Remove a player's ban",
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionString{
				Name:        "playerid",
				Description: "Player ID to unban",
				Required:    true,
			},
		},
	},
	discord.SlashCommandCreate{
		Name:        "banlist",
		Description: "List all banned players",
	},
	discord.SlashCommandCreate{
		Name:        "clearbans",
		Description: "Remove every ban",
	},
	discord.SlashCommandCreate{
		Name:        "whitelist",
		Description: "Manage alert-exempt players",
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionSubCommand{
				Name:        "add",
				Description: "Exempt a player from execution alerts",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionString{
						Name:        "playerid",
						Description: "Player ID to whitelist",
						Required:    true,
					},
					discord.ApplicationCommandOptionUser{
						Name:        "user",
						Description: "Discord account linked to the player",
					},
					discord.ApplicationCommandOptionString{
						Name:        "username",
						Description: "Known username of the player",
					},
					discord.ApplicationCommandOptionString{
						Name:        "display",
						Description: "Known display name of the player",
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "remove",
				Description: "Remove a whitelist entry",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionString{
						Name:        "playerid",
						Description: "Player ID to remove",
					},
					discord.ApplicationCommandOptionUser{
						Name:        "user",
						Description: "Discord account linked to the entry",
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "list",
				Description: "List all whitelist entries",
			},
		},
	},
	discord.SlashCommandCreate{
		Name:        "history",
		Description: "Query execution history",
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionString{
				Name:        "value",
				Description: "Player ID, username or display name to match",
				Required:    true,
			},
		},
	},
}

// parseCommand resolves interaction data into a typed command variant.
// All string matching on command names happens here, at the protocol
// boundary, so the command engine never sees raw names.
func parseCommand(data discord.SlashCommandInteractionData) (moderation.Command, error) {
	switch data.CommandName() {
	case "ban":
		return moderation.BanCommand{
			PlayerID: data.String("playerid"),
			Reason:   data.String("reason"),
		}, nil

	case "tempban":
		return moderation.TempBanCommand{
			PlayerID: data.String("playerid"),
			Minutes:  data.Int("minutes"),
			Reason:   data.String("reason"),
		}, nil

	case "unban":
		return moderation.UnbanCommand{
			PlayerID: data.String("playerid"),
		}, nil

	case "banlist":
		return moderation.BanListCommand{}, nil

	case "clearbans":
		return moderation.ClearBansCommand{}, nil

	case "whitelist":
		return parseWhitelistCommand(data)

	case "history":
		return moderation.HistoryCommand{
			Value: data.String("value"),
		}, nil

	default:
		return nil, errUnknownCommand
	}
}

// parseWhitelistCommand resolves the whitelist subcommands.
func parseWhitelistCommand(data discord.SlashCommandInteractionData) (moderation.Command, error) {
	if data.SubCommandName == nil {
		return nil, errUnknownSubcommand
	}

	switch *data.SubCommandName {
	case "add":
		cmd := moderation.WhitelistAddCommand{
			PlayerID: data.String("playerid"),
		}

		if userID, ok := data.OptSnowflake("user"); ok {
			cmd.UserID = uint64(userID)
		}

		if username, ok := data.OptString("username"); ok {
			cmd.Username = username
		}

		if display, ok := data.OptString("display"); ok {
			cmd.DisplayName = display
		}

		return cmd, nil

	case "remove":
		cmd := moderation.WhitelistRemoveCommand{}

		if playerID, ok := data.OptString("playerid"); ok {
			cmd.PlayerID = playerID
		}

		if userID, ok := data.OptSnowflake("user"); ok {
			cmd.UserID = uint64(userID)
		}

		if cmd.PlayerID == "" && cmd.UserID == 0 {
			return nil, errMissingTarget
		}

		return cmd, nil

	case "list":
		return moderation.WhitelistListCommand{}, nil

	default:
		return nil, errUnknownSubcommand
	}
}
