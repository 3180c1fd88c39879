// Package command provides the command vocabulary, the text parser, and the
// typo-tolerant matcher that resolves raw chat input to a canonical command.
package command

// Categories for organizing commands in help output.
const (
	CategoryAccount   = "account"
	CategoryGame      = "game"
	CategoryBattle    = "battle"
	CategoryDiplomacy = "diplomacy"
	CategoryInfo      = "info"
	CategoryAdmin     = "admin"
)

// Handler identifiers mapping canonical commands to engine handlers.
const (
	HandlerRegister   = "register"
	HandlerCreate     = "create"
	HandlerCreateGame = "create_game"
	HandlerJoin       = "join"
	HandlerAttack     = "attack"
	HandlerDefend     = "defend"
	HandlerCollect    = "collect"
	HandlerAlliance   = "alliance"
	HandlerStatus     = "status"
	HandlerPlayers    = "players"
	HandlerLeave      = "leave"
	HandlerHelp       = "help"
	HandlerHistory    = "history"
	HandlerLanguage   = "language"
	HandlerDelete     = "delete"
	HandlerGive       = "give"
	HandlerSetLevel   = "setlevel"
)

// RepeatShortcut re-invokes the caller's last full command. It is matched
// exactly, never fuzzily, and is not part of the vocabulary.
const RepeatShortcut = "."

// Command defines a player-invocable chat command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate exact spellings for this command.
	Aliases []string
	// Usage is the argument signature shown in help output.
	Usage string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command for help output.
	Category string
	// Handler maps to the engine handler.
	Handler string
	// Admin restricts the command to admin callers.
	Admin bool
}

// BuiltinCommands returns the full vocabulary in declaration order. Fuzzy
// matching ties resolve to the earliest entry, so the ordering is part of
// the matcher contract.
func BuiltinCommands() []Command {
	return []Command{
		// Account commands
		{Name: "register", Usage: "register <name>", Help: "Set your player name", Category: CategoryAccount, Handler: HandlerRegister},
		{Name: "language", Aliases: []string{"config"}, Usage: "language <code>", Help: "Set your language", Category: CategoryAccount, Handler: HandlerLanguage},

		// Game lifecycle
		{Name: "create", Usage: "create <name>", Help: "Create a new game", Category: CategoryGame, Handler: HandlerCreate},
		{Name: "join", Usage: "join <game_id>", Help: "Join a game", Category: CategoryGame, Handler: HandlerJoin},
		{Name: "leave", Usage: "leave", Help: "Leave your current game", Category: CategoryGame, Handler: HandlerLeave},

		// Battle commands
		{Name: "attack", Usage: "attack <player>", Help: "Attack another player", Category: CategoryBattle, Handler: HandlerAttack},
		{Name: "defend", Usage: "defend", Help: "Boost your defense", Category: CategoryBattle, Handler: HandlerDefend},
		{Name: "collect", Usage: "collect", Help: "Gather resources", Category: CategoryBattle, Handler: HandlerCollect},

		// Diplomacy
		{Name: "alliance", Usage: "alliance <player>", Help: "Propose or accept an alliance", Category: CategoryDiplomacy, Handler: HandlerAlliance},

		// Info commands
		{Name: "status", Usage: "status", Help: "Check your status", Category: CategoryInfo, Handler: HandlerStatus},
		{Name: "players", Usage: "players", Help: "List players", Category: CategoryInfo, Handler: HandlerPlayers},
		{Name: "history", Usage: "history", Help: "Show your recent commands", Category: CategoryInfo, Handler: HandlerHistory},
		{Name: "help", Aliases: []string{"?"}, Usage: "help", Help: "Show available commands", Category: CategoryInfo, Handler: HandlerHelp},

		// Admin commands
		{Name: "create_game", Usage: "create_game <name> <duration_hours> <max_players>", Help: "Create a game with explicit settings (admin only)", Category: CategoryAdmin, Handler: HandlerCreateGame, Admin: true},
		{Name: "delete", Usage: "delete <player>", Help: "Delete a player (admin only)", Category: CategoryAdmin, Handler: HandlerDelete, Admin: true},
		{Name: "give", Usage: "give <player> <amount>", Help: "Give resources to a player (admin only)", Category: CategoryAdmin, Handler: HandlerGive, Admin: true},
		{Name: "setlevel", Usage: "setlevel <player> <level>", Help: "Set a player's level (admin only)", Category: CategoryAdmin, Handler: HandlerSetLevel, Admin: true},
	}
}
