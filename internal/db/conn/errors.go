package conn

import (
	"errors"
)

var (
	// ErrNameInUse is recorded on a guard when its connection name is
	// already held by another live guard.
	ErrNameInUse = errors.New("connection name already in use")

	// ErrEmptyPath is recorded on a guard opened with an empty database path.
	ErrEmptyPath = errors.New("database path is empty")
)
