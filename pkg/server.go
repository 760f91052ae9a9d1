//go:build !windows

package pkg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
)

// Server hosts the game binary over SSH. Every connection gets its own
// pseudo-terminal running an independent single player session.
type Server struct {
	*ssh.Server

	// Binary is the game executable started for each session.
	Binary string
}

func NewServer(addr, binary, hostKey string, idle time.Duration) (*Server, error) {
	if binary == "" {
		return nil, errors.New("game binary must be specified")
	}
	if addr == "" {
		addr = SshPort
	}
	if idle <= 0 {
		idle = ServerIdleTimeout
	}

	s := &Server{Binary: binary}
	s.Server = &ssh.Server{
		Addr:        addr,
		IdleTimeout: idle,
		Handler:     s.handle,
		PtyCallback: func(ctx ssh.Context, pty ssh.Pty) bool {
			return true
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	if hostKey != "" {
		if err := s.SetOption(ssh.HostKeyFile(hostKey)); err != nil {
			return nil, fmt.Errorf("load host key %s: %w", hostKey, err)
		}
	}

	return s, nil
}

// Command builds the game process for a session of user with the given
// terminal type.
func (s *Server) Command(ctx context.Context, user string, term string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, s.Binary, "--name", Nickname(user))
	cmd.Env = append(os.Environ(), fmt.Sprintf("TERM=%s", term))

	return cmd
}

func (s *Server) handle(sshSession ssh.Session) {
	ptyReq, winCh, isPty := sshSession.Pty()
	if !isPty {
		io.WriteString(sshSession, "failed to start tetristerm: non-interactive terminals are not supported\n")

		sshSession.Exit(1)
		return
	}

	cmdCtx, cancelCmd := context.WithCancel(sshSession.Context())
	defer cancelCmd()

	cmd := s.Command(cmdCtx, sshSession.User(), ptyReq.Term)

	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(ptyReq.Window.Height),
		Cols: uint16(ptyReq.Window.Width),
	})
	if err != nil {
		log.Printf("failed to start session for %s: %v", sshSession.User(), err)
		io.WriteString(sshSession, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))

		sshSession.Exit(1)
		return
	}
	defer f.Close()

	log.Printf("session started for %s from %s", sshSession.User(), sshSession.RemoteAddr())

	go func() {
		for win := range winCh {
			pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
		}
	}()

	go func() {
		io.Copy(f, sshSession)
	}()
	io.Copy(sshSession, f)

	cancelCmd()
	if err := cmd.Wait(); err != nil {
		log.Printf("session for %s ended: %v", sshSession.User(), err)
	} else {
		log.Printf("session for %s ended", sshSession.User())
	}
}

// Shutdown stops accepting connections and waits for open sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}
