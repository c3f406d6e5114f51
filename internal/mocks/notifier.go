package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/gophkeeper-profile/internal/model"
)

// Notifier mocks model.Notifier.
type Notifier struct {
	mock.Mock
}

func NewNotifier(t testingT) *Notifier {
	m := &Notifier{}
	register(t, &m.Mock)
	return m
}

func (m *Notifier) Notify(ctx context.Context, notice model.Notice) {
	m.Called(ctx, notice)
}
