package state

// GameStatus tags the lifecycle stage of a game.
type GameStatus string

const (
	StatusPending   GameStatus = "pending"
	StatusActive    GameStatus = "active"
	StatusCompleted GameStatus = "completed"
)

// GameConfig holds the immutable parameters of one created game.
type GameConfig struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Duration          int64  `json:"duration"`
	MaxPlayers        int    `json:"maxPlayers"`
	StartingResources int    `json:"startingResources"`
	StartingDefense   int    `json:"startingDefense"`
	StartingAttack    int    `json:"startingAttack"`
	CreatedAt         int64  `json:"createdAt"`
	HostID            string `json:"hostId"`
}

// GameData is the aggregate persisted per game: its config, the roster of
// player ids currently inside, and the status tag.
type GameData struct {
	Config  GameConfig      `json:"config"`
	Players map[string]bool `json:"players"`
	Status  GameStatus      `json:"status"`
}

// NewGameData creates an active game for a validated config with an empty
// roster.
func NewGameData(cfg GameConfig) *GameData {
	return &GameData{
		Config:  cfg,
		Players: make(map[string]bool),
		Status:  StatusActive,
	}
}

// Full reports whether the roster has reached the configured capacity.
func (g *GameData) Full() bool {
	return len(g.Players) >= g.Config.MaxPlayers
}

// AddPlayer places id on the roster.
//
// Precondition: the game must not be full.
func (g *GameData) AddPlayer(id string) {
	if g.Players == nil {
		g.Players = make(map[string]bool)
	}
	g.Players[id] = true
}

// RemovePlayer drops id from the roster.
func (g *GameData) RemovePlayer(id string) {
	delete(g.Players, id)
}

// ValidateGameConfig checks the config invariants and fills unset starting
// stat fields with the global defaults.
//
// Postcondition: returns a complete config, or a *GameError with code
// INVALID_GAME_CONFIG.
func ValidateGameConfig(cfg GameConfig) (GameConfig, error) {
	if cfg.ID == "" {
		return GameConfig{}, NewGameError(CodeInvalidGameConfig, "game id must not be empty")
	}
	if cfg.Duration <= 0 {
		return GameConfig{}, NewGameError(CodeInvalidGameConfig, "game duration must be positive")
	}
	if cfg.MaxPlayers <= 1 {
		return GameConfig{}, NewGameError(CodeInvalidGameConfig, "games are multiplayer only: max players must exceed 1")
	}
	if cfg.StartingResources == 0 {
		cfg.StartingResources = DefaultStartingResources
	}
	if cfg.StartingDefense == 0 {
		cfg.StartingDefense = DefaultStartingDefense
	}
	if cfg.StartingAttack == 0 {
		cfg.StartingAttack = DefaultStartingAttack
	}
	return cfg, nil
}
