package logger

import (
	"sync"

	"go.uber.org/zap"
)

// Log is the process-wide logger. Call Init before using it.
var Log *zap.Logger

var once sync.Once

// Init builds the logger once; later calls are no-ops.
func Init() {
	once.Do(func() {
		var err error
		Log, err = zap.NewProduction()
		if err != nil {
			Log = zap.NewNop()
		}
	})
}

// InitDevelopment swaps in a human-readable logger for debug runs.
// Safe to call instead of Init at startup.
func InitDevelopment() {
	once.Do(func() {
		var err error
		Log, err = zap.NewDevelopment()
		if err != nil {
			Log = zap.NewNop()
		}
	})
}
