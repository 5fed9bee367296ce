// Package testhelpers provides shared fixtures for the test suites.
package testhelpers

import (
	"github.com/jonesrussell/product-curator/internal/logger"
)

// NewTestLogger returns a logger that discards output.
func NewTestLogger() logger.Logger {
	return logger.NewNopLogger()
}
