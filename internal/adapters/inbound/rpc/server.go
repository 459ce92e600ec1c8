// Package rpc serves the tool catalog as line-delimited JSON-RPC 2.0 over a
// pair of streams, normally stdin and stdout.
package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/usecases/tools"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

var nullID = json.RawMessage("null")

type (
	Catalog interface {
		Tools() []tools.Tool
		Lookup(name string) (tools.Tool, bool)
	}

	Config struct {
		Name               string
		Version            string
		MaxConcurrentCalls int64
		MaxMessageBytes    int
	}

	Server struct {
		catalog Catalog
		cfg     Config
		log     logger.Logger

		calls *semaphore.Weighted

		writeMu sync.Mutex
		out     *bufio.Writer
	}
)

func NewServer(catalog Catalog, cfg Config, log logger.Logger) *Server {
	if cfg.MaxConcurrentCalls < 1 {
		cfg.MaxConcurrentCalls = 1
	}

	if cfg.MaxMessageBytes < bufio.MaxScanTokenSize {
		cfg.MaxMessageBytes = bufio.MaxScanTokenSize
	}

	return &Server{
		catalog: catalog,
		cfg:     cfg,
		log:     log.Component("rpc"),
		calls:   semaphore.NewWeighted(cfg.MaxConcurrentCalls),
	}
}

// Serve reads one request per line until in reaches EOF or ctx is cancelled.
// Tool calls run concurrently; Serve waits for them before returning.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.out = bufio.NewWriter(out)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), s.cfg.MaxMessageBytes)

	var inflight sync.WaitGroup
	defer inflight.Wait()

	lines := make(chan []byte)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		defer func() { scanErr <- scanner.Err() }()

		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)

			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("reading requests: %w", err)
				}

				s.log.Info().Msg("input closed, stopping rpc server")

				return nil
			}

			s.dispatch(ctx, line, &inflight)
		}
	}
}

func (s *Server) dispatch(ctx context.Context, line []byte, inflight *sync.WaitGroup) {
	if len(strings.TrimSpace(string(line))) == 0 {
		return
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.reply(Response{ID: nullID, Error: &Error{Code: CodeParseError, Message: "parse error"}})

		return
	}

	if req.JSONRPC != jsonRPCVersion || req.Method == "" {
		if !req.IsNotification() {
			s.reply(Response{ID: req.ID, Error: &Error{Code: CodeInvalidRequest, Message: "invalid request"}})
		}

		return
	}

	if req.Method != MethodToolsCall {
		s.handle(ctx, req)

		return
	}

	if err := s.calls.Acquire(ctx, 1); err != nil {
		return
	}

	inflight.Add(1)

	go func() {
		defer inflight.Done()
		defer s.calls.Release(1)

		s.handle(ctx, req)
	}()
}

func (s *Server) handle(ctx context.Context, req Request) {
	result, rpcErr := s.route(ctx, req)

	if req.IsNotification() {
		return
	}

	if rpcErr != nil {
		s.reply(Response{ID: req.ID, Error: rpcErr})

		return
	}

	s.reply(Response{ID: req.ID, Result: result})
}

func (s *Server) route(ctx context.Context, req Request) (any, *Error) {
	switch req.Method {
	case MethodInitialize:
		return InitializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities:    map[string]any{"tools": map[string]any{}},
			ServerInfo:      ServerInfo{Name: s.cfg.Name, Version: s.cfg.Version},
		}, nil
	case MethodInitialized:
		return nil, nil
	case MethodPing:
		return struct{}{}, nil
	case MethodToolsList:
		return s.listTools(), nil
	case MethodToolsCall:
		return s.callTool(ctx, req.Params)
	default:
		return nil, &Error{Code: CodeMethodNotFound, Message: fmt.Sprintf("method %q not found", req.Method)}
	}
}

func (s *Server) listTools() ToolsListResult {
	all := s.catalog.Tools()

	result := ToolsListResult{Tools: make([]ToolDescriptor, 0, len(all))}
	for _, tool := range all {
		result.Tools = append(result.Tools, ToolDescriptor{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.Schema.JSONSchema(),
		})
	}

	return result
}

func (s *Server) callTool(ctx context.Context, raw json.RawMessage) (any, *Error) {
	var params CallParams
	if err := json.Unmarshal(raw, &params); err != nil || params.Name == "" {
		return nil, &Error{Code: CodeInvalidParams, Message: "params must name a tool"}
	}

	tool, ok := s.catalog.Lookup(params.Name)
	if !ok {
		return nil, &Error{Code: CodeInvalidParams, Message: fmt.Sprintf("unknown tool %q", params.Name)}
	}

	ctx = logger.WithToolCall(ctx, tool.Name, uuid.NewString())
	log := s.log.WithContext(ctx)

	data, err := tool.Call(ctx, params.Arguments)
	if err != nil {
		log.Warn().Err(err).Int("status", model.StatusOf(err)).Msg("tool call failed")

		return failure(err), nil
	}

	log.Debug().Int("bytes", len(data)).Msg("tool call succeeded")

	return CallResult{Content: []Content{{Type: "text", Text: string(data)}}}, nil
}

// failure reports a tool error as content. Upstream errors already carry the
// status and a truncated body.
func failure(err error) CallResult {
	return CallResult{Content: []Content{{Type: "text", Text: err.Error()}}, IsError: true}
}

func (s *Server) reply(resp Response) {
	resp.JSONRPC = jsonRPCVersion

	encoded, err := json.Marshal(resp)
	if err != nil {
		s.log.Error().Err(err).Msg("encoding response")

		encoded, _ = json.Marshal(Response{
			JSONRPC: jsonRPCVersion,
			ID:      resp.ID,
			Error:   &Error{Code: CodeInternalError, Message: "response could not be encoded"},
		})
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, _ = s.out.Write(append(encoded, '\n'))

	if err := s.out.Flush(); err != nil {
		s.log.Error().Err(err).Msg("writing response")
	}
}
