package logging

import (
	"sync"

	"github.com/rs/zerolog"
)

// MessageLog stores recent log messages for the in-game overlay. It is a
// zerolog hook: attach it with logger.Hook(ml).
type MessageLog struct {
	mu          sync.Mutex
	messages    []string
	maxMessages int
	minLevel    zerolog.Level
}

// NewMessageLog creates a message log keeping at most max messages at or
// above minLevel.
func NewMessageLog(max int, minLevel zerolog.Level) *MessageLog {
	if max <= 0 {
		max = 100
	}
	return &MessageLog{
		maxMessages: max,
		minLevel:    minLevel,
	}
}

// Run implements zerolog.Hook.
func (ml *MessageLog) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	if level < ml.minLevel || level == zerolog.NoLevel || msg == "" {
		return
	}
	ml.Add(level.String() + ": " + msg)
}

// Add adds a message to the log
func (ml *MessageLog) Add(message string) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.messages = append(ml.messages, message)
	if len(ml.messages) > ml.maxMessages {
		ml.messages = ml.messages[len(ml.messages)-ml.maxMessages:]
	}
}

// RecentMessages gets the n most recent messages, newest first
func (ml *MessageLog) RecentMessages(n int) []string {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	if n > len(ml.messages) {
		n = len(ml.messages)
	}
	result := make([]string, n)
	for i := 0; i < n; i++ {
		result[i] = ml.messages[len(ml.messages)-1-i]
	}
	return result
}

// Len returns the number of stored messages.
func (ml *MessageLog) Len() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}

// Clear clears all messages
func (ml *MessageLog) Clear() {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.messages = nil
}
