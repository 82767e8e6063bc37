// Package main provides the entry point for the ID registry administration
// tool. It initializes a SQLite registry database, manages the settings stored
// inside it, and runs a web server using the Fiber framework that generates,
// confirms, and looks up registry identifiers through a REST API.
package main
