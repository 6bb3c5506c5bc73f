package command

import "errors"

var (
	ErrMissingSchema      = errors.New("no schema file given")
	ErrMissingType        = errors.New("no message type given")
	ErrUnknownType        = errors.New("unknown message type")
	ErrMissingDescriptors = errors.New("no descriptor set given")
	ErrFailedToRead       = errors.New("failed to read document")
	ErrInvalidDocument    = errors.New("invalid document")
	ErrPreviousDocument   = errors.New("previous document must contain exactly one document")
	ErrWatch              = errors.New("failed to watch files")
	ErrWatchStdin         = errors.New("watch mode needs document files, not standard input")
)

// Exit codes reported by the commands.
const (
	ExitViolations = 1
	ExitErrors     = 2
)
