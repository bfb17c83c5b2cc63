package main

import (
	"fmt"
	"io"
	"sync"
)

// Notifier shows short-lived messages to the user.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

type ConsoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Info(msg string) {
	n.print("✅", msg)
}

func (n *ConsoleNotifier) Error(msg string) {
	n.print("❌", msg)
}

// writes from save goroutines interleave with the command output
func (n *ConsoleNotifier) print(icon, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s %s\n", icon, msg)
}
