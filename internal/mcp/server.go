// Package mcp serves the mail operations over the Model Context Protocol:
// newline-delimited JSON-RPC 2.0 on a reader/writer pair, usually stdio.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/crystaldolphin/mailbridge/internal/dispatch"
	"github.com/crystaldolphin/mailbridge/internal/tools"
)

// Handler is the operation surface the server exposes.
type Handler interface {
	Operations() []tools.Definition
	Dispatch(ctx context.Context, call dispatch.Call) dispatch.Envelope
}

// Info identifies the server in the initialize handshake.
type Info struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Server answers requests strictly in arrival order.
type Server struct {
	handler Handler
	info    Info
}

// NewServer returns a Server for handler.
func NewServer(handler Handler, info Info) *Server {
	return &Server{handler: handler, info: info}
}

// Serve reads requests from r and writes responses to w until r is
// exhausted (returns nil) or ctx is cancelled (returns ctx.Err()).
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if strings.TrimSpace(line) != "" {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					readErr <- err
				}
				return
			}
		}
	}()

	slog.Info("mcp: serving", "server", s.info.Name, "version", s.info.Version)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return fmt.Errorf("read request: %w", err)
				default:
				}
				slog.Info("mcp: input closed")
				return nil
			}
			resp := s.handle(ctx, line)
			if resp == nil {
				continue
			}
			if err := writeResponse(w, resp); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
		}
	}
}

// handle processes one raw line and returns the response, or nil for notifications.
func (s *Server) handle(ctx context.Context, line string) *response {
	var req request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		slog.Warn("mcp: unparsable request", "err", err)
		return errorResponse(nullID, codeParseError, "Parse error")
	}
	if req.Method == "" {
		if req.isNotification() {
			return nil
		}
		return errorResponse(req.ID, codeInvalidRequest, "Invalid request: missing method")
	}

	if req.isNotification() {
		slog.Debug("mcp: notification", "method", req.Method)
		return nil
	}

	switch req.Method {
	case "initialize":
		return s.initialize(req)
	case "ping":
		return resultResponse(req.ID, map[string]any{})
	case "tools/list":
		return resultResponse(req.ID, map[string]any{"tools": s.handler.Operations()})
	case "tools/call":
		return s.callTool(ctx, req)
	default:
		return errorResponse(req.ID, codeMethodNotFound, "Method not found: "+req.Method)
	}
}

func (s *Server) initialize(req request) *response {
	var params initializeParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, codeInvalidParams, "Invalid params: "+err.Error())
		}
	}
	version := params.ProtocolVersion
	if version == "" {
		version = DefaultProtocolVersion
	}
	return resultResponse(req.ID, initializeResult{
		ProtocolVersion: version,
		Capabilities:    map[string]any{"tools": map[string]any{}},
		ServerInfo:      s.info,
	})
}

func (s *Server) callTool(ctx context.Context, req request) *response {
	var params callToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
		msg := "Invalid params: tool name is required"
		if err != nil {
			msg = "Invalid params: " + err.Error()
		}
		return errorResponse(req.ID, codeInvalidParams, msg)
	}

	env := s.handler.Dispatch(ctx, dispatch.Call{Name: params.Name, Arguments: params.Arguments})
	return resultResponse(req.ID, env)
}

func resultResponse(id json.RawMessage, result any) *response {
	return &response{JSONRPC: "2.0", ID: id, Result: result}
}

func errorResponse(id json.RawMessage, code int, msg string) *response {
	return &response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: msg}}
}

func writeResponse(w io.Writer, resp *response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
