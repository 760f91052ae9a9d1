// Package console is the plain terminal surface of a game session. It puts
// the terminal in raw mode and redraws the whole frame on every display.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/game"
)

const readBufferSize = 64

// escapeDelay is how long a lone Escape waits for the rest of a key
// sequence before it is taken as a quit.
const escapeDelay = 100 * time.Millisecond

type Console struct {
	in  io.Reader
	out io.Writer
	fd  int

	queue *event.Queue
	quit  func()

	oldState *term.State

	// prompt receives raw input while the name prompt is open.
	prompt *io.PipeWriter

	// pending holds an escape sequence split across reads.
	pending     []byte
	escapeDelay time.Duration
	escapeGen   int
	escapeTimer *time.Timer

	sync.Mutex
}

var _ game.Port = (*Console)(nil)

// New returns a console reading keys from in and drawing to out. quit is
// called on Ctrl-C or Escape.
func New(in io.Reader, out io.Writer, quit func()) *Console {
	if quit == nil {
		quit = func() {}
	}

	c := &Console{in: in, out: out, fd: -1, queue: event.NewQueue(), quit: quit, escapeDelay: escapeDelay}
	if f, ok := in.(*os.File); ok {
		c.fd = int(f.Fd())
	}

	return c
}

// Start switches the terminal to raw mode and starts reading keys.
func (c *Console) Start() error {
	if c.fd >= 0 && term.IsTerminal(c.fd) {
		oldState, err := term.MakeRaw(c.fd)
		if err != nil {
			return fmt.Errorf("enter raw mode: %w", err)
		}
		c.oldState = oldState
	}

	io.WriteString(c.out, "\x1b[?25l")

	go c.handleRead()
	return nil
}

// Restore returns the terminal to the state it had before Start.
func (c *Console) Restore() error {
	io.WriteString(c.out, "\x1b[?25h")

	if c.oldState == nil {
		return nil
	}

	err := term.Restore(c.fd, c.oldState)
	c.oldState = nil
	return err
}

func (c *Console) handleRead() {
	buf := make([]byte, readBufferSize)
	for {
		n, err := c.in.Read(buf)
		if n > 0 {
			c.handleInput(buf[:n])
		}
		if err != nil {
			c.Lock()
			if c.prompt != nil {
				c.prompt.CloseWithError(err)
			}
			c.Unlock()
			return
		}
	}
}

func (c *Console) handleInput(b []byte) {
	c.Lock()
	prompt := c.prompt
	if len(c.pending) > 0 {
		b = append(c.pending, b...)
		c.pending = nil
	}
	c.escapeGen++
	if c.escapeTimer != nil {
		c.escapeTimer.Stop()
		c.escapeTimer = nil
	}
	c.Unlock()

	if prompt != nil {
		if len(b) == 1 && b[0] == keyEscape {
			prompt.CloseWithError(io.EOF)
			return
		}
		if bytesContain(b, keyCtrlC) {
			prompt.CloseWithError(io.EOF)
			c.quit()
			return
		}

		prompt.Write(b)
		return
	}

	actions, quit, rest := decodeKeys(b)
	for _, a := range actions {
		c.queue.Push(a)
	}
	if quit {
		c.quit()
		return
	}

	if len(rest) > 0 {
		c.Lock()
		c.pending = append([]byte(nil), rest...)
		gen := c.escapeGen
		c.escapeTimer = time.AfterFunc(c.escapeDelay, func() {
			c.flushEscape(gen)
		})
		c.Unlock()
	}
}

// flushEscape resolves a pending escape prefix no further input completed.
// A lone Escape quits, a partial sequence is dropped.
func (c *Console) flushEscape(gen int) {
	c.Lock()
	if gen != c.escapeGen || len(c.pending) == 0 {
		c.Unlock()
		return
	}
	lone := len(c.pending) == 1
	c.pending = nil
	c.escapeTimer = nil
	c.Unlock()

	if lone {
		c.quit()
	}
}

func bytesContain(b []byte, v byte) bool {
	for _, c := range b {
		if c == v {
			return true
		}
	}
	return false
}

func (c *Console) Poll() (event.Intent, bool) {
	return c.queue.Poll()
}

func (c *Console) Display(s game.Snapshot) {
	var b strings.Builder
	b.WriteString(clearScreen)
	renderFrame(&b, s)

	io.WriteString(c.out, b.String())
}

type promptIO struct {
	io.Reader
	io.Writer
}

// InputName reads a line with an editable prompt. Escape, Ctrl-C and
// Ctrl-D decline.
func (c *Console) InputName(ctx context.Context) (string, bool) {
	pr, pw := io.Pipe()

	c.Lock()
	c.prompt = pw
	c.Unlock()

	defer func() {
		c.Lock()
		c.prompt = nil
		c.Unlock()
		pw.Close()
	}()

	t := term.NewTerminal(promptIO{pr, c.out}, "Enter your name: ")
	io.WriteString(c.out, "\r\n\x1b[?25h")

	type line struct {
		text string
		err  error
	}
	lines := make(chan line, 1)
	go func() {
		text, err := t.ReadLine()
		lines <- line{text, err}
	}()

	select {
	case l := <-lines:
		io.WriteString(c.out, "\x1b[?25l")
		if l.err != nil {
			if !errors.Is(l.err, io.EOF) && !errors.Is(l.err, io.ErrClosedPipe) {
				io.WriteString(c.out, fmt.Sprintf("\r\nfailed to read name: %s\r\n", l.err))
			}
			return "", false
		}
		return l.text, true
	case <-ctx.Done():
		return "", false
	}
}
