// Package spinning shows a spinning symbol followed by a status line while a long computation,
// like training, runs. It also handles Ctrl+C gracefully.
package spinning

import (
	"context"
	"fmt"
	"io"
	"k8s.io/klog/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

var (
	ThemeAscii = []rune("|/-\\")

	// Theme used by New. It defaults to ThemeAscii.
	Theme = ThemeAscii

	// Period between updates of the display.
	Period = 250 * time.Millisecond
)

// SafeInterrupt captures SIGINT (Ctrl+C) and SIGTERM and calls onInterrupt, typically the cancel
// function of the context training runs with.
// If the program hasn't exited after gracePeriod, the terminal is reset and the program exits.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Interrupted (signal %q), stopping within %s", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}
		time.Sleep(gracePeriod)
		Reset(os.Stdout)
		klog.Exitf("Grace period of %s expired, exiting.", gracePeriod)
	}()
}

// Reset terminal: make cursor visible, restore default colors.
func Reset(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[?25h\033[39;49;0m\n")
}

// Spinning displays a spinning symbol and the latest status on one terminal line.
type Spinning struct {
	out    io.Writer
	wg     sync.WaitGroup
	cancel func()

	mu     sync.Mutex
	status string
}

// New starts the display on stdout. It runs on a separate goroutine until Done is called or ctx
// is cancelled.
func New(ctx context.Context) *Spinning {
	return NewWithWriter(ctx, os.Stdout)
}

// NewWithWriter is like New, but writes to out.
func NewWithWriter(ctx context.Context, out io.Writer) *Spinning {
	s := &Spinning{out: out}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(Period)
		defer ticker.Stop()
		_, _ = fmt.Fprint(out, "\033[?25l")      // Hide cursor.
		defer fmt.Fprint(out, "\033[?25h\033[K") // Clear line, restore cursor.
		for idx := 0; ; idx = (idx + 1) % len(Theme) {
			_, _ = fmt.Fprintf(out, "\r\033[K%c %s", Theme[idx], s.Status())
			select {
			case <-ctx.Done():
				_, _ = fmt.Fprint(out, "\r")
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// SetStatus sets the text displayed after the spinning symbol. Safe for concurrent use.
func (s *Spinning) SetStatus(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = fmt.Sprintf(format, args...)
}

// Status returns the current status text.
func (s *Spinning) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Done stops the display and waits for it to clear the line.
func (s *Spinning) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}
