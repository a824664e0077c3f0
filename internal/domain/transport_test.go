package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// scriptedHandler answers messages containing "id" and stays silent for
// notifications, mimicking the dispatcher's contract.
type scriptedHandler struct {
	received []string
}

func (h *scriptedHandler) HandleMessage(ctx context.Context, data []byte) []byte {
	h.received = append(h.received, string(data))

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return []byte(`{"jsonrpc":"2.0","id":null,"error":{"code":-32700,"message":"Parse error"}}`)
	}
	if req.IsNotification() {
		return nil
	}
	return []byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":{"status":"ok"}}`)
}

// TestStdioTransportRequestResponse verifies one response line per
// request and no output for notifications.
func TestStdioTransportRequestResponse(t *testing.T) {
	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"ping"}`,
		``,
		`{"jsonrpc":"2.0","method":"initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	}, "\n") + "\n"

	handler := &scriptedHandler{}
	var output bytes.Buffer
	transport := NewStdioTransportWithIO(handler, strings.NewReader(input), &output)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := transport.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	select {
	case <-transport.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("transport did not finish reading input")
	}

	if len(handler.received) != 3 {
		t.Fatalf("handler received %d messages, want 3 (blank line skipped)", len(handler.received))
	}

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d output lines, want 2: %q", len(lines), output.String())
	}
	if !strings.Contains(lines[0], `"id":1`) {
		t.Errorf("first response = %s, want id 1", lines[0])
	}
	if !strings.Contains(lines[1], `"id":2`) {
		t.Errorf("second response = %s, want id 2", lines[1])
	}
}

// TestStdioTransportClosed verifies a closed transport refuses to start.
func TestStdioTransportClosed(t *testing.T) {
	transport := NewStdioTransportWithIO(&scriptedHandler{}, strings.NewReader(""), &bytes.Buffer{})

	if err := transport.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := transport.Start(context.Background()); err == nil {
		t.Fatal("expected Start() to fail on a closed transport")
	}
	// Close is idempotent.
	if err := transport.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
