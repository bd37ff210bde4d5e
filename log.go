package lightning

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	loggerMu sync.RWMutex
	logger   = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "lightning",
		Level:  log.WarnLevel,
	})
)

// Logger returns the package logger.
func Logger() *log.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogger replaces the package logger. A nil logger is ignored.
func SetLogger(l *log.Logger) {
	if l == nil {
		return
	}
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// applyLogLevel sets the package logger level from a config string,
// leaving the level alone when the string is not recognised.
func applyLogLevel(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		Logger().Warn("ignoring log level", "level", level, "err", err)
		return
	}
	Logger().SetLevel(lvl)
}
