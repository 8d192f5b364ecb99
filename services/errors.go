package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed       = errors.New("validation failed")
	ErrPlayerNameRequired     = errors.New("player name is required")
	ErrGameNameRequired       = errors.New("game name is required")
	ErrGameWeightOutOfRange   = errors.New("game weight must be between 1.0 and 5.0")
	ErrMatchNeedsTwoResults   = errors.New("a match needs at least two results")
	ErrMatchDuplicatePlayer   = errors.New("a player appears more than once in the match")
	ErrMatchInvalidPosition   = errors.New("result positions must be 1 or greater")
	ErrMatchDateRequired      = errors.New("match date is required")
	ErrPickerNeedsTwoPlayers  = errors.New("the draw needs at least two players")

	// Conflicts
	ErrPlayerNameConflict = errors.New("player name is already in use")
	ErrGameNameConflict   = errors.New("game name is already in use")

	// Authentication
	ErrAuthInvalidCredentials = errors.New("invalid credentials")

	// Entity-specific not-found errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrGameNotFound    = errors.New("game not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrSessionNotFound = errors.New("session not found")

	// External lookups
	ErrBGGGameNotFound = errors.New("game not found on BGG")

	// Deployment configuration
	ErrUploadsDisabled = errors.New("cover uploads are not configured on this server")
)
