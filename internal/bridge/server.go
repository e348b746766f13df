package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/manualmind/mcp-bridge/internal/tools"
)

const (
	// ServerName is the MCP server name
	ServerName = "manualmind-mcp"
	// ServerVersion is the current server version
	ServerVersion = "0.1.0"
	// ProtocolVersion is the MCP revision the bridge speaks
	ProtocolVersion = "2024-11-05"
)

// maxLineBytes bounds one stdin message.
const maxLineBytes = 1 << 20

// Server reads newline-delimited JSON-RPC messages, dispatches them, and
// writes one response line per request. Processing is strictly
// sequential: a line is fully handled, including any backend HTTP call,
// before the next is read, so responses leave in request order.
type Server struct {
	invoker  *tools.Invoker
	in       io.Reader
	out      io.Writer
	log      *slog.Logger
	handlers map[string]handlerFunc
}

// NewServer wires the stdio loop to a tool invoker. Pass os.Stdin and
// os.Stdout in production; tests substitute buffers.
func NewServer(invoker *tools.Invoker, in io.Reader, out io.Writer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		invoker: invoker,
		in:      in,
		out:     out,
		log:     log,
	}
	s.handlers = map[string]handlerFunc{
		"initialize": s.handleInitialize,
		"tools/list": s.handleToolsList,
		"tools/call": s.handleToolsCall,
	}
	return s
}

// Run consumes input until EOF and returns nil when the stream ends
// cleanly. Blank and unparsable lines are skipped; nothing that happens
// on one line stops the next from being read.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.handleLine(ctx, line)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	s.log.Info("input closed, shutting down")
	return nil
}

// handleLine decodes and dispatches one line. A line that does not decode
// carries no usable id, so no error response is possible for it.
func (s *Server) handleLine(ctx context.Context, line string) {
	var req Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		s.log.Warn("skipping unparsable line", "error", err)
		return
	}

	if resp := s.dispatch(ctx, &req); resp != nil {
		s.write(resp)
	}
}

// internalErrorFrame is written if a response itself fails to marshal.
var internalErrorFrame = []byte(`{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"Internal error"}}`)

func (s *Server) write(resp *Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("marshal response", "error", err)
		data = internalErrorFrame
	}
	if _, err := fmt.Fprintf(s.out, "%s\n", data); err != nil {
		s.log.Error("write response", "error", err)
	}
}
