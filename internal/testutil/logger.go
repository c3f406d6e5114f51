package testutil

import (
	"io"

	"github.com/dtroode/gophkeeper-profile/internal/logger"
)

// MakeNoopLogger returns a logger that discards all records.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}
