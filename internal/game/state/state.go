// Package state defines the Alliance Wars data model: per-player state,
// game configuration, and the aggregate game record, together with their
// validation rules.
package state

// Default starting values and rule constants. Game configs may override the
// starting stats; the cooldowns and recovery rules are global.
const (
	DefaultStartingResources = 100
	DefaultStartingDefense   = 50
	DefaultStartingAttack    = 30
	DefaultGameDuration      = 24 * 3600
	DefaultMaxPlayers        = 10

	// Cooldowns in seconds.
	CooldownAttack  = 21600
	CooldownDefend  = 3600
	CooldownCollect = 600

	// Recovery boost: once per interval, players below the threshold share
	// of the default starting resources receive a resource and defense grant.
	RecoveryInterval      = 24 * 3600
	RecoveryBoostAmount   = 50
	WeakPlayerThresholdPc = 50

	// HistoryLimit caps the per-player command history, most recent first.
	HistoryLimit = 5
)

// PlayerState is the persistent record for one player identity. The id is
// the stable external identity (phone number or web-client id) and doubles
// as the storage key.
type PlayerState struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Registered        bool     `json:"registered"`
	GameID            string   `json:"gameId"`
	Resources         int      `json:"resources"`
	DefensePoints     int      `json:"defensePoints"`
	AttackPower       int      `json:"attackPower"`
	Level             int      `json:"level"`
	LastAttack        int64    `json:"lastAttack"`
	LastCollect       int64    `json:"lastCollect"`
	LastDefense       int64    `json:"lastDefense"`
	LastRecoveryCheck int64    `json:"lastRecoveryCheck"`
	Alliances         []string `json:"alliances"`
	PendingAlliances  []string `json:"pendingAlliances"`
	SuccessfulBattles int      `json:"successfulBattles"`
	Language          string   `json:"language"`
	MessageHistory    []string `json:"messageHistory"`
	LastMessage       string   `json:"lastMessage"`
	IsAdmin           bool     `json:"isAdmin"`
}

// NewPlayerState returns the default state for a previously unseen player id.
//
// Postcondition: the returned state is unregistered, unaffiliated, and valid.
func NewPlayerState(id string) *PlayerState {
	return &PlayerState{
		ID:            id,
		Resources:     DefaultStartingResources,
		DefensePoints: DefaultStartingDefense,
		AttackPower:   DefaultStartingAttack,
		Level:         1,
		Language:      "en",
	}
}

// InGame reports whether the player is currently affiliated with a game.
func (p *PlayerState) InGame() bool {
	return p.GameID != ""
}

// AlliedWith reports whether id is in the player's formed alliances.
func (p *PlayerState) AlliedWith(id string) bool {
	for _, a := range p.Alliances {
		if a == id {
			return true
		}
	}
	return false
}

// HasPendingAllianceWith reports whether this player has an outstanding
// alliance proposal toward id.
func (p *PlayerState) HasPendingAllianceWith(id string) bool {
	for _, a := range p.PendingAlliances {
		if a == id {
			return true
		}
	}
	return false
}

// RemovePendingAlliance deletes id from the pending proposal list if present.
func (p *PlayerState) RemovePendingAlliance(id string) {
	for i, a := range p.PendingAlliances {
		if a == id {
			p.PendingAlliances = append(p.PendingAlliances[:i], p.PendingAlliances[i+1:]...)
			return
		}
	}
}

// SpendResources debits amount from the player's resources, flooring at zero.
func (p *PlayerState) SpendResources(amount int) {
	p.Resources -= amount
	if p.Resources < 0 {
		p.Resources = 0
	}
}

// RecordCommand pushes the full command text onto the bounded history
// (most recent first) and makes it the repeat-shortcut target.
func (p *PlayerState) RecordCommand(text string) {
	p.MessageHistory = append([]string{text}, p.MessageHistory...)
	if len(p.MessageHistory) > HistoryLimit {
		p.MessageHistory = p.MessageHistory[:HistoryLimit]
	}
	p.LastMessage = text
}

// ResetToDefaults restores the lobby state after leaving a game: default
// stats, cleared cooldowns, and no alliances.
func (p *PlayerState) ResetToDefaults() {
	p.GameID = ""
	p.Resources = DefaultStartingResources
	p.DefensePoints = DefaultStartingDefense
	p.AttackPower = DefaultStartingAttack
	p.LastAttack = 0
	p.LastCollect = 0
	p.LastDefense = 0
	p.Alliances = nil
	p.PendingAlliances = nil
}

// ValidatePlayerState checks the player-state invariants.
//
// Postcondition: returns nil, or a *GameError with code INVALID_PLAYER_STATE.
func ValidatePlayerState(p *PlayerState) error {
	if p.ID == "" {
		return NewGameError(CodeInvalidPlayerState, "player id must not be empty")
	}
	if p.Resources < 0 {
		return NewGameError(CodeInvalidPlayerState, "resources must not be negative")
	}
	if p.Level < 1 {
		return NewGameError(CodeInvalidPlayerState, "level must be at least 1")
	}
	return nil
}
