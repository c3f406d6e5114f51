package mocks

import (
	"context"
	"net"

	"github.com/stretchr/testify/mock"
)

// SecurityLayer mocks model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

func NewSecurityLayer(t testingT) *SecurityLayer {
	m := &SecurityLayer{}
	register(t, &m.Mock)
	return m
}

func (m *SecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	args := m.Called(protocol, addr)
	ln, _ := args.Get(0).(net.Listener)
	return ln, args.Error(1)
}

// ContextManager mocks model.ContextManager.
type ContextManager struct {
	mock.Mock
}

func NewContextManager(t testingT) *ContextManager {
	m := &ContextManager{}
	register(t, &m.Mock)
	return m
}

func (m *ContextManager) SetSubjectToContext(ctx context.Context, subject string) context.Context {
	args := m.Called(ctx, subject)
	return args.Get(0).(context.Context)
}

func (m *ContextManager) GetSubjectFromContext(ctx context.Context) (string, bool) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1)
}

// TokenManager mocks model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func NewTokenManager(t testingT) *TokenManager {
	m := &TokenManager{}
	register(t, &m.Mock)
	return m
}

func (m *TokenManager) GenerateAccessToken(subject string) (string, error) {
	args := m.Called(subject)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) ParseAccessToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}
