package imwheel

import "errors"

var (
	// ErrWriteConfig is returned when the imwheel configuration cannot be replaced
	ErrWriteConfig = errors.New("failed to write imwheel configuration")

	// ErrEmptyCommand is returned when a command template parses to no arguments
	ErrEmptyCommand = errors.New("empty command")
)
