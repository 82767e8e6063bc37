package registry

import (
	"errors"
)

// ErrSettingsUpdate is returned when one or more settings rows could not be
// written during a save.
var ErrSettingsUpdate = errors.New("settings update failed")
