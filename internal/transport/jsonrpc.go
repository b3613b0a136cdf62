package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// maxRPCBody caps a JSON-RPC request body.
const maxRPCBody = 1 << 20

var (
	// ErrRPCParse is returned when the body is not valid JSON.
	ErrRPCParse = errors.New("parse error")
	// ErrRPCInvalidRequest is returned for well-formed JSON that is not a request.
	ErrRPCInvalidRequest = errors.New("invalid request")
)

// Request is a JSON-RPC 2.0 call. Params must be an object or absent.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id,omitempty"`
}

// Response is a JSON-RPC 2.0 reply carrying either a result or an error.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
	ID      any    `json:"id,omitempty"`
}

// Error is the JSON-RPC error object. Data holds the dashboard error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ParseRequest reads one JSON-RPC request. Errors wrap ErrRPCParse or
// ErrRPCInvalidRequest; the returned request keeps its id when one was sent.
func ParseRequest(body io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(io.LimitReader(body, maxRPCBody)).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Request{}, fmt.Errorf("%w: %w", ErrRPCInvalidRequest, err)
		}
		return Request{}, fmt.Errorf("%w: %w", ErrRPCParse, err)
	}
	if req.JSONRPC != "2.0" {
		return req, fmt.Errorf("%w: jsonrpc must be \"2.0\"", ErrRPCInvalidRequest)
	}
	if req.Method == "" {
		return req, fmt.Errorf("%w: missing method", ErrRPCInvalidRequest)
	}
	if p := bytes.TrimSpace(req.Params); len(p) > 0 && p[0] != '{' && !bytes.Equal(p, []byte("null")) {
		return req, fmt.Errorf("%w: params must be an object", ErrRPCInvalidRequest)
	}
	return req, nil
}

// rpcCode maps a dashboard API error code onto a JSON-RPC error code.
func rpcCode(apiCode string) int {
	switch apiCode {
	case "INVALID_PARAMS":
		return CodeInvalidParams
	case "METHOD_NOT_FOUND":
		return CodeMethodNotFound
	default:
		return CodeInternalError
	}
}

// WriteResult writes a JSON-RPC success response.
func WriteResult(w http.ResponseWriter, id any, result any) {
	writeJSON(w, http.StatusOK, Response{JSONRPC: "2.0", Result: result, ID: id})
}

// WriteError writes a JSON-RPC error response. JSON-RPC errors travel with
// HTTP 200.
func WriteError(w http.ResponseWriter, id any, code int, message string, data any) {
	writeJSON(w, http.StatusOK, Response{
		JSONRPC: "2.0",
		Error:   &Error{Code: code, Message: message, Data: data},
		ID:      id,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
