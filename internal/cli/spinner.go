package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// spinnerFrames fill a 2x2 block one quadrant at a time.
var spinnerFrames = []string{"▖", "▌", "▛", "█", "▜", "▐", "▗", " "}

const spinnerInterval = 90 * time.Millisecond

// spinner animates a status line on a terminal until stopped or until its
// context ends. On anything other than a terminal it writes nothing.
type spinner struct {
	out    io.Writer
	msg    string
	active bool

	mu       sync.Mutex
	stopOnce sync.Once
	quit     chan struct{}
	done     chan struct{}
}

// startSpinner starts a spinner writing to out.
func startSpinner(ctx context.Context, out io.Writer, msg string) *spinner {
	return runSpinner(ctx, out, msg, isTerminal(out))
}

func runSpinner(ctx context.Context, out io.Writer, msg string, active bool) *spinner {
	s := &spinner{
		out:    out,
		msg:    msg,
		active: active,
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.loop(ctx)
	return s
}

func (s *spinner) loop(ctx context.Context) {
	defer close(s.done)
	if !s.active {
		select {
		case <-ctx.Done():
		case <-s.quit:
		}
		return
	}

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	for i := 0; ; i++ {
		s.draw(spinnerFrames[i%len(spinnerFrames)])
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-s.quit:
			s.clear()
			return
		case <-ticker.C:
		}
	}
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s %s", StyleHighlight.Render(frame), StyleDim.Render(s.msg))
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.msg)+4))
}

// stop ends the animation and clears the line. It is safe to call more
// than once and after the context has ended.
func (s *spinner) stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	<-s.done
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
