// Package notify is the toast sink: transient success/failure notices the
// UI shows and forgets. Notices accumulate in a small ring the storefront
// drains; nothing here is durable.
package notify

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level marks how a notice should be rendered.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is one transient message.
type Notice struct {
	ID      string    `json:"id"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

const ringSize = 32

// Feed collects notices until the UI drains them. Safe for concurrent use.
type Feed struct {
	mu      sync.Mutex
	notices []Notice
	logger  *log.Logger
	now     func() time.Time
}

func NewFeed(logger *log.Logger) *Feed {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Feed{logger: logger, now: time.Now}
}

// Success records a success toast.
func (f *Feed) Success(msg string) { f.push(LevelSuccess, msg) }

// Error records a failure toast.
func (f *Feed) Error(msg string) { f.push(LevelError, msg) }

// Drain returns all pending notices, oldest first, and clears the feed.
func (f *Feed) Drain() []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.notices
	f.notices = nil
	return out
}

func (f *Feed) push(level Level, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logger.Printf("notice [%s] %s", level, msg)
	f.notices = append(f.notices, Notice{
		ID:      uuid.NewString(),
		Level:   level,
		Message: msg,
		At:      f.now(),
	})
	if len(f.notices) > ringSize {
		f.notices = f.notices[len(f.notices)-ringSize:]
	}
}
