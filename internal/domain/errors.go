package domain

import "errors"

var (
	// ErrDataLoad wraps every failure to fetch or parse category data. It is fatal at startup.
	ErrDataLoad = errors.New("category data could not be loaded")
	// ErrCategoryNotFound is returned when a category ID is not configured.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidCategory indicates a category document failed validation.
	ErrInvalidCategory = errors.New("invalid category data")
	// ErrEmptyCategory is returned when the selected category has no questions.
	ErrEmptyCategory = errors.New("no questions available for this category")
	// ErrEmptyGuess rejects blank guesses without consuming a guess.
	ErrEmptyGuess = errors.New("guess is empty")
	// ErrRoundNotActive is returned for guesses or draws outside of an active round.
	ErrRoundNotActive = errors.New("no round in progress")
	// ErrRoundInProgress is returned when advancing before the current round ended.
	ErrRoundInProgress = errors.New("round still in progress")
	// ErrGameNotFound is returned when a game session has not been created.
	ErrGameNotFound = errors.New("game not found")
)
