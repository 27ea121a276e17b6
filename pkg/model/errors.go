package model

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateStudyItem is returned when a study item with the same
	// text and translation (case-insensitive) already exists.
	ErrDuplicateStudyItem = errors.New("study item already exists")
)
