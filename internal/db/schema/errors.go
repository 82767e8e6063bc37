package schema

import (
	"errors"
)

var (
	// ErrEmptyPath is returned when Initialize is called with an empty
	// database path. No file is created.
	ErrEmptyPath = errors.New("database path is empty")

	// ErrCreateDir is returned when the parent directory of the database
	// file cannot be created.
	ErrCreateDir = errors.New("cannot create directory")

	// ErrOpenDatabase is returned when the driver fails to open the
	// database file.
	ErrOpenDatabase = errors.New("failed to open database")

	// ErrCreateSchema is returned when one of the CREATE TABLE statements
	// fails.
	ErrCreateSchema = errors.New("failed to create schema")
)
