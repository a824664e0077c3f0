package domain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// MessageHandler dispatches one raw JSON-RPC message and returns the
// serialized response, or nil for notifications (which get no reply).
type MessageHandler interface {
	HandleMessage(ctx context.Context, data []byte) []byte
}

// Transport defines the interface for MCP transport mechanisms.
// Implementations carry JSON-RPC messages between MCP clients and the
// dispatcher over either stdio or HTTP.
type Transport interface {
	// Start begins listening for incoming MCP messages.
	// Returns an error if the transport cannot be initialized.
	Start(ctx context.Context) error

	// Close gracefully shuts down the transport.
	Close() error
}

// StdioTransport implements Transport using stdin/stdout for
// communication. It reads newline-delimited JSON-RPC messages from stdin
// and writes one response line per request; notifications produce no
// output at all.
type StdioTransport struct {
	reader  *bufio.Reader
	writer  *bufio.Writer
	handler MessageHandler
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// NewStdioTransport creates a new StdioTransport over os.Stdin/os.Stdout.
func NewStdioTransport(handler MessageHandler) *StdioTransport {
	return NewStdioTransportWithIO(handler, os.Stdin, os.Stdout)
}

// NewStdioTransportWithIO creates a new StdioTransport with custom IO
// streams. This is primarily used for testing.
func NewStdioTransportWithIO(handler MessageHandler, reader io.Reader, writer io.Writer) *StdioTransport {
	return &StdioTransport{
		reader:  bufio.NewReader(reader),
		writer:  bufio.NewWriter(writer),
		handler: handler,
		done:    make(chan struct{}),
	}
}

// Start begins reading JSON-RPC messages from the input stream.
func (t *StdioTransport) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return fmt.Errorf("transport is closed")
	}
	t.mu.Unlock()

	go t.readLoop(ctx)
	return nil
}

// Done is closed when the read loop has exited, either because the input
// stream ended or the context was cancelled.
func (t *StdioTransport) Done() <-chan struct{} {
	return t.done
}

// readLoop reads one message per line and writes responses back.
func (t *StdioTransport) readLoop(ctx context.Context) {
	defer close(t.done)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := t.reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if err != nil {
				return
			}
			continue
		}

		out := t.handler.HandleMessage(ctx, []byte(trimmed))
		if out != nil {
			if writeErr := t.write(out); writeErr != nil {
				return
			}
		}

		if err != nil {
			return
		}
	}
}

// write sends one response line and flushes it immediately.
func (t *StdioTransport) write(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transport is closed")
	}

	if _, err := t.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	if err := t.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush response: %w", err)
	}

	return nil
}

// Close gracefully shuts down the transport.
func (t *StdioTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}

	t.closed = true
	return nil
}
