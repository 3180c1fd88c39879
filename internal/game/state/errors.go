package state

import (
	"errors"
	"fmt"
)

// GameError codes. These travel to the transport boundary where they are
// converted into a user-facing error reply.
const (
	CodeInvalidGameConfig  = "INVALID_GAME_CONFIG"
	CodeInvalidPlayerState = "INVALID_PLAYER_STATE"
	CodeGameNotFound       = "GAME_NOT_FOUND"
)

// GameError is a structured error with a machine-readable code, raised for
// validation and storage-consistency failures. Ordinary user mistakes
// (cooldowns, unknown targets, missing arguments) are never GameErrors; they
// are plain reply messages.
type GameError struct {
	Code    string
	Message string
}

// NewGameError creates a GameError with the given code and message.
func NewGameError(code, message string) *GameError {
	return &GameError{Code: code, Message: message}
}

// Error implements the error interface.
func (e *GameError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsGameError extracts a *GameError from err or its chain.
func IsGameError(err error) (*GameError, bool) {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
