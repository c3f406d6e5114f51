// Package notify delivers user-visible notices.
package notify

import (
	"context"
	"sync"

	"github.com/dtroode/gophkeeper-profile/internal/logger"
	"github.com/dtroode/gophkeeper-profile/internal/model"
)

var (
	_ model.Notifier = (*Log)(nil)
	_ model.Notifier = (*Recorder)(nil)
	_ model.Notifier = Multi(nil)
)

// Log writes notices to the application log.
type Log struct {
	logger *logger.Logger
}

func NewLog(logger *logger.Logger) *Log {
	return &Log{logger: logger}
}

func (n *Log) Notify(ctx context.Context, notice model.Notice) {
	args := []any{"level", notice.Level, "title", notice.Title, "message", notice.Message}
	if notice.Level == model.NoticeError {
		n.logger.WarnContext(ctx, "notice", args...)
		return
	}
	n.logger.InfoContext(ctx, "notice", args...)
}

// Recorder keeps the most recent notices until they are drained.
type Recorder struct {
	mu      sync.Mutex
	limit   int
	notices []model.Notice
}

// NewRecorder creates a Recorder holding at most limit notices; older
// notices are dropped first.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 1
	}
	return &Recorder{limit: limit}
}

func (r *Recorder) Notify(_ context.Context, notice model.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notices = append(r.notices, notice)
	if over := len(r.notices) - r.limit; over > 0 {
		r.notices = append(r.notices[:0], r.notices[over:]...)
	}
}

// Drain returns recorded notices oldest first and forgets them.
func (r *Recorder) Drain() []model.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.notices
	r.notices = nil
	return out
}

// Multi fans a notice out to every notifier in order.
type Multi []model.Notifier

func (m Multi) Notify(ctx context.Context, notice model.Notice) {
	for _, n := range m {
		n.Notify(ctx, notice)
	}
}
