package domain

import "encoding/json"

// Request represents a JSON-RPC 2.0 request message.
// ID is kept as raw JSON so that an absent id (a notification) can be
// distinguished from an explicit id of 0, "" or null.
type Request struct {
	JSONRPC string          `json:"jsonrpc"` // Must be "2.0"
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request carries no id field.
// A request with id 0 or id null is NOT a notification.
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0
}

// Response represents a JSON-RPC 2.0 response message.
// Exactly one of Result or Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"` // Must be "2.0"
	ID      json.RawMessage `json:"id,omitempty"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error represents a JSON-RPC 2.0 error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error implements the error interface for Error.
func (e *Error) Error() string {
	return e.Message
}

// NullID is the id used on responses to unparseable requests.
var NullID = json.RawMessage("null")

// NewResultResponse builds a successful response echoing the request id.
func NewResultResponse(id json.RawMessage, result interface{}) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Result: result}
}

// NewErrorResponse builds an error response echoing the request id.
func NewErrorResponse(id json.RawMessage, code int, message string, data interface{}) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &Error{Code: code, Message: message, Data: data},
	}
}

// JSON-RPC 2.0 error codes
const (
	ParseError     = -32700 // Invalid JSON received
	InvalidRequest = -32600 // Invalid JSON-RPC request structure
	MethodNotFound = -32601 // Unknown method or tool
	InvalidParams  = -32602 // Invalid method parameters
	InternalError  = -32603 // Server internal error
)
