package config

// DB holds the registry database configuration settings.
type DB struct {
	// Path to the SQLite registry database file. When empty, the last path
	// remembered by the preference store is used.
	Path string

	// BusyTimeout in milliseconds applied to every connection. Zero keeps
	// the driver default.
	BusyTimeout int
}
