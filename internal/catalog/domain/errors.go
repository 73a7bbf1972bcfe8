package domain

import "errors"

// Common domain errors
var (
	// ErrMovieNotFound is returned when a movie is not found
	ErrMovieNotFound = errors.New("movie not found")

	// ErrDuplicateMovie is returned when a movie with the same title and
	// release date already exists
	ErrDuplicateMovie = errors.New("movie with this title and release date already exists")

	// ErrEmptyName is returned when a reference entity name is empty
	ErrEmptyName = errors.New("reference entity name must not be empty")
)
