package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"website-mcp-server/internal/domain"
)

// protocolVersion is the MCP protocol revision this server speaks.
const protocolVersion = "2024-11-05"

// Server is the JSON-RPC dispatcher. It is stateless: each message is
// parsed, routed by method name and answered independently, so transports
// may call HandleMessage from any number of goroutines.
type Server struct {
	router *RequestRouter
	config *domain.Config
	logger *StructuredLogger
}

// NewServer creates a new dispatcher over the given router.
func NewServer(router *RequestRouter, config *domain.Config) *Server {
	return &Server{
		router: router,
		config: config,
		logger: NewStructuredLogger(),
	}
}

// HandleMessage dispatches one raw JSON-RPC message. The return value is
// the serialized response, or nil when the message is a notification and
// must not produce a JSON body.
func (s *Server) HandleMessage(ctx context.Context, data []byte) []byte {
	var req domain.Request
	if err := json.Unmarshal(data, &req); err != nil {
		s.logger.LogError("failed to parse request", err, nil)
		return marshalResponse(domain.NewErrorResponse(domain.NullID, domain.ParseError, "Parse error", err.Error()))
	}

	// No id means notification: never a JSON body, whatever the method.
	if req.IsNotification() {
		s.logger.LogInfo("notification received", map[string]interface{}{
			"method": req.Method,
		})
		return nil
	}

	// The original server treats initialized as a notification even when
	// an id is supplied. Strict JSON-RPC would answer; we keep the
	// original behavior for client compatibility.
	if req.Method == "initialized" {
		s.logger.LogInfo("initialized received", map[string]interface{}{
			"request_id": string(req.ID),
		})
		return nil
	}

	return marshalResponse(s.dispatch(ctx, &req))
}

// dispatch routes a request by method name. A recover guard converts
// panics into InternalError responses so no request can crash the process
// or leak a stack trace to the caller.
func (s *Server) dispatch(ctx context.Context, req *domain.Request) (resp *domain.Response) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.LogError("panic during dispatch", fmt.Errorf("%v", r), map[string]interface{}{
				"method": req.Method,
			})
			resp = domain.NewErrorResponse(req.ID, domain.InternalError, "Internal error", nil)
		}
	}()

	s.logger.LogInfo("received request", map[string]interface{}{
		"method":     req.Method,
		"request_id": string(req.ID),
	})

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "ping":
		return domain.NewResultResponse(req.ID, map[string]interface{}{"status": "ok"})
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return domain.NewErrorResponse(req.ID, domain.MethodNotFound, "Method not found",
			fmt.Sprintf("unknown method: %s", req.Method))
	}
}

// handleInitialize handles the MCP initialize handshake.
func (s *Server) handleInitialize(req *domain.Request) *domain.Response {
	result := map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools":   map[string]interface{}{},
			"logging": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    s.config.Server.Name,
			"version": s.config.Server.Version,
		},
	}

	return domain.NewResultResponse(req.ID, result)
}

// handleToolsList returns the static tool registry.
func (s *Server) handleToolsList(req *domain.Request) *domain.Response {
	result := map[string]interface{}{
		"tools": s.router.ListAllTools(),
	}

	return domain.NewResultResponse(req.ID, result)
}

// handleToolsCall executes a tool call. Error mapping happens here, once:
// typed *domain.Error values keep their code (-32601 unknown tool, -32602
// bad arguments); anything else becomes -32603 with the message only.
func (s *Server) handleToolsCall(ctx context.Context, req *domain.Request) *domain.Response {
	toolReq, err := parseToolRequest(req.Params)
	if err != nil {
		return domain.NewErrorResponse(req.ID, domain.InvalidParams, "Invalid params", err.Error())
	}

	toolResp, err := s.router.Route(ctx, toolReq)
	if err != nil {
		s.logger.LogError("tool execution failed", err, map[string]interface{}{
			"tool":       toolReq.Name,
			"request_id": string(req.ID),
		})

		var rpcErr *domain.Error
		if errors.As(err, &rpcErr) {
			return &domain.Response{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
		}
		return domain.NewErrorResponse(req.ID, domain.InternalError, "Internal error", err.Error())
	}

	return domain.NewResultResponse(req.ID, toolResp)
}

// parseToolRequest parses the params field into a ToolRequest.
func parseToolRequest(params json.RawMessage) (*domain.ToolRequest, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("params is required for tools/call")
	}

	var toolReq domain.ToolRequest
	if err := json.Unmarshal(params, &toolReq); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tool request: %w", err)
	}

	if toolReq.Name == "" {
		return nil, fmt.Errorf("tool name is required")
	}

	if toolReq.Arguments == nil {
		toolReq.Arguments = make(map[string]interface{})
	}

	return &toolReq, nil
}

// marshalResponse serializes a response, falling back to a canned
// internal error if marshaling itself fails.
func marshalResponse(resp *domain.Response) []byte {
	data, err := json.Marshal(resp)
	if err != nil {
		return []byte(`{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"Internal error"}}`)
	}
	return data
}

// StructuredLogger provides structured logging with context.
type StructuredLogger struct {
	logger *log.Logger
}

// NewStructuredLogger creates a new structured logger.
func NewStructuredLogger() *StructuredLogger {
	return &StructuredLogger{
		logger: log.Default(),
	}
}

// LogInfo logs an informational message with context.
func (l *StructuredLogger) LogInfo(message string, context map[string]interface{}) {
	l.logger.Println(l.buildLogEntry("INFO", message, nil, context))
}

// LogError logs an error message with context.
func (l *StructuredLogger) LogError(message string, err error, context map[string]interface{}) {
	l.logger.Println(l.buildLogEntry("ERROR", message, err, context))
}

// buildLogEntry constructs a structured log entry.
func (l *StructuredLogger) buildLogEntry(level, message string, err error, context map[string]interface{}) string {
	entry := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"level":     level,
		"message":   message,
	}

	if err != nil {
		entry["error"] = err.Error()
	}

	for k, v := range context {
		entry[k] = v
	}

	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"level":"ERROR","message":"failed to marshal log entry","error":"%s"}`, err.Error())
	}

	return string(jsonData)
}
