package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line while a layout runs. On non-terminal
// output it draws nothing. After a second the elapsed time is appended.
type spinner struct {
	out     *output
	message string
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	start   time.Time

	mu      sync.Mutex
	width   int // length of the last drawn line
	running bool
	once    sync.Once
}

// newSpinner creates a spinner that also stops when ctx is cancelled.
func newSpinner(ctx context.Context, out *output, message string) *spinner {
	if ctx == nil {
		ctx = context.Background()
	}
	sctx, cancel := context.WithCancel(ctx)
	return &spinner{
		out:     out,
		message: message,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *spinner) Start() {
	s.start = time.Now()
	if !s.out.terminal {
		close(s.stopped)
		return
	}
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *spinner) draw(frame string) {
	msg := s.message
	if d := time.Since(s.start); d >= time.Second {
		msg = fmt.Sprintf("%s %ds", msg, int(d.Seconds()))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(msg))
	s.width = len(msg) + 2
}

// Stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		if s.start.IsZero() {
			return
		}
		<-s.stopped
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.running && s.width > 0 {
			fmt.Fprintf(s.out.w, "\r%s\r", strings.Repeat(" ", s.width))
		}
	})
}

// Fail stops the spinner and prints message as a failure.
func (s *spinner) Fail(message string) {
	s.Stop()
	s.out.failure("%s", message)
}

// Cancelled reports whether the parent context was cancelled.
func (s *spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
