// Package notify signals the user when a countdown finishes.
package notify

import (
	"fmt"
	"io"
)

// Notifier delivers a completion notice.
type Notifier interface {
	Notify(title, body string) error
}

// Bell rings the terminal bell and optionally prints a line.
type Bell struct {
	W       io.Writer
	Verbose bool
}

// Notify implements Notifier.
func (b Bell) Notify(title, body string) error {
	if b.W == nil {
		return nil
	}
	if _, err := io.WriteString(b.W, "\a"); err != nil {
		return fmt.Errorf("failed to ring bell: %w", err)
	}
	if !b.Verbose {
		return nil
	}
	if _, err := fmt.Fprintf(b.W, "%s: %s\n", title, body); err != nil {
		return fmt.Errorf("failed to write notice: %w", err)
	}
	return nil
}

// Nop discards notices.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(string, string) error { return nil }
