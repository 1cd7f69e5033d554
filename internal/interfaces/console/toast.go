package console

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Toaster prints notifications to the terminal and mirrors them to the log
type Toaster struct {
	mu     sync.Mutex
	w      io.Writer
	logger *zap.Logger
}

// NewToaster creates a toaster writing to w
func NewToaster(w io.Writer, logger *zap.Logger) *Toaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Toaster{w: w, logger: logger}
}

// Success shows a confirmation
func (t *Toaster) Success(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "[ok] %s\n", message)
	t.logger.Info("Toast", zap.String("level", "success"), zap.String("message", message))
}

// Error shows a failure
func (t *Toaster) Error(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "[error] %s\n", message)
	t.logger.Warn("Toast", zap.String("level", "error"), zap.String("message", message))
}
