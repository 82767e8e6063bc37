package handler

// ErrNilArgsMsg is used if the app, cfg, db or state pointer is nil.
const ErrNilArgsMsg = "app, cfg, db or state is nil"

// Error is the JSON error envelope returned by the API.
type Error struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewError builds an error envelope.
func NewError(code, message string) Error {
	return Error{Error: code, Message: message}
}
