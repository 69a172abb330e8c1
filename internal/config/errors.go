package config

import (
	"errors"
)

var (
	ErrConfigLoadFailed = errors.New("failed to load configuration")
	ErrInvalidDocument  = errors.New("configuration document invalid")
)
