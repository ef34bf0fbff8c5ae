package config

import "errors"

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrTodoFileEmpty      = errors.New("todo-file cannot be empty")
	ErrDoneFileEmpty      = errors.New("done-file cannot be empty")
)
