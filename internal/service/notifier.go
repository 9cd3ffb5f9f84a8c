package service

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// WriterNotifier writes failure messages to w, one per line.
// It is used when no interactive terminal is available.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier creates a notifier writing to w
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Notify writes text followed by a newline
func (n *WriterNotifier) Notify(_ context.Context, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, text)
}
