package model

import (
	"context"
	"net"
)

// SecurityLayer opens listeners for the control API.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a startable and stoppable network server.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
