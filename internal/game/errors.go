package game

import (
	"errors"
	"fmt"
)

// Rule violation categories. All of them reject the attempted action and
// leave the game state untouched; only ErrInvariant indicates a programming
// error rather than user feedback.
var (
	// ErrInvalidSelection is an empty or unclassifiable card selection
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrWrongTurn is an action by a seat that does not hold the turn
	ErrWrongTurn = errors.New("not your turn")

	// ErrAlreadyPassed is a play attempted by a seat that passed this round
	ErrAlreadyPassed = errors.New("already passed this round")

	// ErrIllegalPlay fails the opening, type-matching, ranking or chomp rules
	ErrIllegalPlay = errors.New("illegal play")

	// ErrInvariant indicates corrupted game state, e.g. a complete deck with
	// no 3♠. Callers should treat it as fatal.
	ErrInvariant = errors.New("invariant violation")
)

// RuleError is a rejected action: a category plus the human-readable reason
// for display to the player.
type RuleError struct {
	category error
	reason   string
}

// Error implements the error interface
func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.category, e.reason)
}

// Unwrap allows errors.Is matching against the category sentinel
func (e *RuleError) Unwrap() error {
	return e.category
}

// Reason returns the display reason without the category prefix
func (e *RuleError) Reason() string {
	return e.reason
}

func rejectf(category error, format string, args ...any) *RuleError {
	return &RuleError{category: category, reason: fmt.Sprintf(format, args...)}
}
