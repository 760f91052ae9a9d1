//go:build windows

package pkg

import (
	"context"
	"errors"
	"time"
)

// SSH hosting is unsupported on Windows

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
)

type Server struct {
	Binary string
}

func NewServer(addr, binary, hostKey string, idle time.Duration) (*Server, error) {
	return nil, errors.New("ssh hosting is not supported on windows")
}

func (s *Server) ListenAndServe() error {
	return errors.New("ssh hosting is not supported on windows")
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}
