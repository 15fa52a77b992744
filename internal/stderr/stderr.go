//go:build !windows

// Package stderr moves file descriptor 2 into the log while the UI owns the
// terminal. C audio libraries (ALSA underneath oto) write there directly,
// bypassing os.Stderr.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// Capture is an active redirection of fd 2.
type Capture struct {
	orig int
	r, w *os.File
	done chan struct{}
}

// Start redirects fd 2 into a pipe whose lines are logged at warn level.
// The logger must not itself write to stderr.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, errors.Wrap(err, "create pipe")
	}

	fd := int(os.Stderr.Fd())
	orig, err := syscall.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, errors.Wrap(err, "dup stderr")
	}
	if err := syscall.Dup2(int(w.Fd()), fd); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, errors.Wrap(err, "redirect stderr")
	}

	c := &Capture{orig: orig, r: r, w: w, done: make(chan struct{})}
	go c.drain()
	return c, nil
}

func (c *Capture) drain() {
	defer close(c.done)
	scanner := bufio.NewScanner(c.r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			zlog.Warn().Str("source", "stderr").Msg(line)
		}
	}
}

// WriteOriginal writes to the terminal's stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = syscall.Write(c.orig, []byte(msg))
}

// Stop restores fd 2 and waits for pending lines to be logged.
func (c *Capture) Stop() {
	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)
	c.w.Close()
	<-c.done
	c.r.Close()
}
