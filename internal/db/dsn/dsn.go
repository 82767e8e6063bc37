// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"
)

const defaultBusyTimeoutMS = 10000

// Create builds the SQLite Data Source Name for the given database file.
// Pragmas are passed as query parameters so they apply to every connection
// the pool hands out:
//
//	busy_timeout  wait instead of failing on a locked file
//	journal_mode  WAL
//	synchronous   NORMAL
//	foreign_keys  ON
func Create(path string, busyTimeoutMS int) string {
	// the in-memory database used by tests takes no parameters
	if path == ":memory:" {
		return path
	}

	if busyTimeoutMS <= 0 {
		busyTimeoutMS = defaultBusyTimeoutMS
	}

	params := []string{
		fmt.Sprintf("_pragma=busy_timeout(%d)", busyTimeoutMS),
		"_pragma=journal_mode(WAL)",
		"_pragma=synchronous(NORMAL)",
		"_pragma=foreign_keys(1)",
	}

	return path + "?" + strings.Join(params, "&")
}
