package model

import "errors"

// Error variables for command execution.
var (
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrUnsupportedCommand = errors.New("unsupported command")
	ErrEmptyEntry         = errors.New("entry text is empty")
	ErrUnsavableEntry     = errors.New("entry would not read back unchanged")
)
