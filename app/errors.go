package app

import (
	"errors"
)

// errNoDBPath is returned when no --db flag was given and no previously used
// database path is remembered.
var errNoDBPath = errors.New("no database path given and none remembered, use --db")
