// Package mocks holds testify mocks for the model interfaces.
package mocks

import "github.com/stretchr/testify/mock"

// testingT is satisfied by *testing.T.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}
