package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const spinnerInterval = 100 * time.Millisecond

var frames = []string{"|", "/", "-", "\\"}

// Spinner renders an animated status line for long-running operations.
type Spinner struct {
	out io.Writer

	mu   sync.Mutex
	msg  string
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewSpinner creates a Spinner writing to stderr (not yet running).
func NewSpinner() *Spinner {
	return &Spinner{out: os.Stderr}
}

// Start begins the animation with the given message. A started spinner must
// be stopped before the process writes anything else to its output.
func (s *Spinner) Start(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.stop = make(chan struct{})
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop()
}

// Update changes the status message while the spinner is running.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// Stop halts the animation and clears the status line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
	fmt.Fprint(s.out, "\r\033[K")
}

func (s *Spinner) loop() {
	defer s.wg.Done()

	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	s.mu.Lock()
	stop := s.stop
	s.mu.Unlock()

	for i := 0; ; i++ {
		select {
		case <-stop:
			return
		case <-tick.C:
			s.mu.Lock()
			msg := s.msg
			s.mu.Unlock()
			fmt.Fprintf(s.out, "\r\033[K%s %s", frames[i%len(frames)], msg)
		}
	}
}
