package messages

import "errors"

var (
	ErrParsingCancelled = errors.New("message catalog parsing cancelled")
	ErrFailedToParse    = errors.New("failed to parse message catalog")
	ErrFailedToReadFile = errors.New("failed to read message catalog file")
	ErrUnsupportedFile  = errors.New("unsupported message catalog file")
	ErrInvalidLanguage  = errors.New("invalid language tag")
)
