// Package notify provides core.Notifier implementations.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/folio/pkg/core"
)

// Log reports notifications through a structured logger.
type Log struct {
	Logger *slog.Logger
}

func (n Log) logger() *slog.Logger {
	if n.Logger == nil {
		return slog.Default()
	}
	return n.Logger
}

func (n Log) Success(msg string) { n.logger().Info("notification", "level", "success", "message", msg) }
func (n Log) Error(msg string)   { n.logger().Warn("notification", "level", "error", "message", msg) }

// Writer prints notifications as single lines, the way a terminal shows a toast.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter creates a notifier printing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

func (n *Writer) Success(msg string) { n.print("✓", msg) }
func (n *Writer) Error(msg string)   { n.print("✗", msg) }

func (n *Writer) print(mark, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "%s %s\n", mark, msg)
}

// Level distinguishes success from error notifications.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one recorded notification.
type Notification struct {
	Level   Level
	Message string
	At      time.Time
}

// Recorder keeps every notification in order. Safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	list []Notification
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, Notification{Level: level, Message: msg, At: time.Now()})
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.list))
	copy(out, r.list)
	return out
}

// Messages returns the messages recorded at level.
func (r *Recorder) Messages(level Level) []string {
	var out []string
	for _, n := range r.All() {
		if n.Level == level {
			out = append(out, n.Message)
		}
	}
	return out
}

// Multi fans a notification out to several notifiers.
type Multi []core.Notifier

func (m Multi) Success(msg string) {
	for _, n := range m {
		n.Success(msg)
	}
}

func (m Multi) Error(msg string) {
	for _, n := range m {
		n.Error(msg)
	}
}

var (
	_ core.Notifier = Log{}
	_ core.Notifier = (*Writer)(nil)
	_ core.Notifier = (*Recorder)(nil)
	_ core.Notifier = Multi(nil)
)
