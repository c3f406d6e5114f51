package model

import (
	"context"
	"time"
)

// NoticeLevel classifies user-visible notices.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is a user-visible message.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	At      time.Time   `json:"at"`
}

// Notifier delivers notices without acknowledgement.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}
