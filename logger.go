package texbridge

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/texbridge/bundle"
	"github.com/wippyai/texbridge/config"
	"github.com/wippyai/texbridge/driver"
	"github.com/wippyai/texbridge/header"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the texbridge logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the logger of texbridge and all of its packages.
// This must be called before any rendering.
func SetLogger(l *zap.Logger) {
	logger = l
	bundle.SetLogger(l.Named("bundle"))
	config.SetLogger(l.Named("config"))
	driver.SetLogger(l.Named("driver"))
	header.SetLogger(l.Named("header"))
}
