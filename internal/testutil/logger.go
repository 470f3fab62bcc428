package testutil

import (
	"bytes"
	"log/slog"
	"sync"
)

// syncBuffer guards a bytes.Buffer so handlers logging from several goroutines stay race free.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// LogBuffer exposes what a buffer logger has written.
type LogBuffer struct {
	sb *syncBuffer
}

func (l *LogBuffer) String() string {
	l.sb.mu.Lock()
	defer l.sb.mu.Unlock()
	return l.sb.buf.String()
}

func (l *LogBuffer) Len() int {
	l.sb.mu.Lock()
	defer l.sb.mu.Unlock()
	return l.sb.buf.Len()
}

// NewBufferLogger returns a debug-level slog logger backed by a buffer, and the buffer for assertions.
func NewBufferLogger() (*slog.Logger, *LogBuffer) {
	sb := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(sb, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &LogBuffer{sb: sb}
}
