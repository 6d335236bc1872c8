package lsp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/hqltools/hqlint/internal/config"
	"github.com/hqltools/hqlint/pkg/format"
)

// ErrExitWithoutShutdown is returned by Run when the client sends exit
// without a preceding shutdown request. The protocol maps this to a
// non-zero process exit code.
var ErrExitWithoutShutdown = errors.New("exit received before shutdown")

// errExit signals the read loop that an exit notification arrived.
var errExit = errors.New("exit")

// JSON-RPC error codes used by the server.
const (
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
)

// Server speaks JSON-RPC 2.0 with Content-Length framing over a pair
// of byte streams, usually stdin/stdout. The write side carries
// protocol traffic only; logging must go elsewhere.
type Server struct {
	documents *DocumentStore

	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex

	logger *slog.Logger

	// cfg is the active configuration snapshot. Handlers take it once
	// per message; SetConfig may swap it from another goroutine.
	cfgMu sync.RWMutex
	cfg   *config.Config

	// reload re-resolves configuration when the client announces a
	// configuration change. Nil keeps the current snapshot.
	reload func() (*config.Config, error)

	// shutdown is only touched from the Run goroutine.
	shutdown bool
}

// NewServer creates a server reading from in and writing to out. A nil
// cfg falls back to the defaults and a nil logger discards output.
func NewServer(in io.Reader, out io.Writer, cfg *config.Config, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		documents: NewDocumentStore(),
		reader:    bufio.NewReader(in),
		writer:    out,
		logger:    logger,
		cfg:       cfg,
	}
}

// OnConfigReload registers fn as the resolver invoked when the client
// sends workspace/didChangeConfiguration.
func (s *Server) OnConfigReload(fn func() (*config.Config, error)) {
	s.reload = fn
}

// SetConfig swaps the configuration snapshot and republishes
// diagnostics for every open document. Safe to call from another
// goroutine while Run is looping.
func (s *Server) SetConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()

	s.republishAll()
}

func (s *Server) snapshot() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

func (s *Server) republishAll() {
	for _, uri := range s.documents.URIs() {
		s.publishDiagnostics(uri)
	}
}

// Run processes messages until the client sends exit or closes the
// stream. It returns ErrExitWithoutShutdown when exit arrives before
// shutdown; every other way out is clean.
func (s *Server) Run() error {
	s.logger.Info("language server starting")

	for {
		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.logger.Info("client disconnected")
				return nil
			}
			s.logger.Error("read message", "error", err)
			continue
		}

		if err := s.handleMessage(msg); err != nil {
			if errors.Is(err, errExit) {
				if s.shutdown {
					return nil
				}
				return ErrExitWithoutShutdown
			}
			s.logger.Error("handle message", "method", msg.Method, "error", err)
		}
	}
}

// JSONRPCMessage represents a JSON-RPC 2.0 message.
type JSONRPCMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *JSONRPCError    `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC error object.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// readMessage reads one framed message from the input stream.
func (s *Server) readMessage() (*JSONRPCMessage, error) {
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break // end of headers
		}

		if value, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			contentLength, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
		}
	}

	if contentLength <= 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	var msg JSONRPCMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("parsing message: %w", err)
	}
	return &msg, nil
}

// sendResponse sends a response for the request identified by id.
func (s *Server) sendResponse(id *json.RawMessage, result any, respErr *JSONRPCError) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      id,
	}

	if respErr != nil {
		msg.Error = respErr
	} else {
		resultBytes, _ := json.Marshal(result)
		msg.Result = resultBytes
	}

	s.writeMessage(&msg)
}

// sendNotification sends a notification (a message without an ID).
func (s *Server) sendNotification(method string, params any) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		Method:  method,
	}

	if params != nil {
		paramsBytes, _ := json.Marshal(params)
		msg.Params = paramsBytes
	}

	s.writeMessage(&msg)
}

// writeMessage frames and writes one message to the output stream.
func (s *Server) writeMessage(msg *JSONRPCMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("marshal message", "error", err)
		return
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body))
	_, _ = s.writer.Write([]byte(header))
	_, _ = s.writer.Write(body)
}

// handleMessage dispatches a message to the appropriate handler.
func (s *Server) handleMessage(msg *JSONRPCMessage) error {
	s.logger.Debug("received", "method", msg.Method)

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return s.handleInitialized(msg)
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		return errExit
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/formatting":
		return s.handleFormatting(msg)
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	default:
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{
				Code:    codeMethodNotFound,
				Message: "Method not found: " + msg.Method,
			})
			return nil
		}
		s.logger.Debug("ignoring notification", "method", msg.Method)
		return nil
	}
}

// --- Lifecycle handlers ---

func (s *Server) handleInitialize(msg *JSONRPCMessage) error {
	var params InitializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
			return err
		}
	}
	if params.RootURI != "" {
		s.logger.Info("workspace root", "uri", params.RootURI)
	}

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
			},
			CompletionProvider: &CompletionOptions{
				TriggerCharacters: []string{"$", "."},
			},
			DocumentFormattingProvider: true,
		},
		ServerInfo: ServerInfo{Name: "hqlint"},
	}

	s.sendResponse(msg.ID, result, nil)
	return nil
}

func (s *Server) handleInitialized(_ *JSONRPCMessage) error {
	s.logger.Info("HQL language server initialized")
	return nil
}

func (s *Server) handleShutdown(msg *JSONRPCMessage) error {
	s.shutdown = true
	s.sendResponse(msg.ID, nil, nil)
	return nil
}

// --- Document handlers ---

func (s *Server) handleDidOpen(msg *JSONRPCMessage) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Set(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
	s.logger.Debug("opened", "uri", params.TextDocument.URI)

	s.publishDiagnostics(params.TextDocument.URI)
	return nil
}

func (s *Server) handleDidChange(msg *JSONRPCMessage) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}

	// Full sync: the last change carries the complete text.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.documents.Set(params.TextDocument.URI, text, params.TextDocument.Version)

	s.publishDiagnostics(params.TextDocument.URI)
	return nil
}

func (s *Server) handleDidClose(msg *JSONRPCMessage) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Close(params.TextDocument.URI)
	s.logger.Debug("closed", "uri", params.TextDocument.URI)

	// Clear stale findings on the client.
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []Diagnostic{},
	})
	return nil
}

// --- Language feature handlers ---

func (s *Server) handleCompletion(msg *JSONRPCMessage) error {
	// The catalog is position-independent, so the params go unread.
	s.sendResponse(msg.ID, CompletionList{Items: completionCatalog}, nil)
	return nil
}

func (s *Server) handleFormatting(msg *JSONRPCMessage) error {
	var params DocumentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	doc := s.documents.Get(params.TextDocument.URI)
	cfg := s.snapshot()
	if doc == nil || !cfg.Formatting.Enabled {
		s.sendResponse(msg.ID, nil, nil)
		return nil
	}

	opts := cfg.Formatting.Options()
	opts.Indent = params.Options.indent()

	formatted, err := format.Format(doc.Content, opts)
	if err != nil {
		// Lex errors already surface as diagnostics; a formatting
		// request on broken input gets a null result, not an error.
		s.logger.Debug("formatting skipped", "uri", doc.URI, "error", err)
		s.sendResponse(msg.ID, nil, nil)
		return nil
	}

	edits := []TextEdit{{
		Range:   Range{End: doc.EndPosition()},
		NewText: formatted,
	}}
	s.sendResponse(msg.ID, edits, nil)
	return nil
}

func (s *Server) handleDidChangeConfiguration(_ *JSONRPCMessage) error {
	if s.reload == nil {
		s.republishAll()
		return nil
	}

	cfg, err := s.reload()
	if err != nil {
		s.logger.Warn("config reload failed, keeping previous snapshot", "error", err)
		return nil
	}

	s.SetConfig(cfg)
	s.logger.Info("configuration reloaded")
	return nil
}

// indent converts the editor's indentation settings into a literal
// indent string.
func (o FormattingOptions) indent() string {
	if !o.InsertSpaces {
		return "\t"
	}
	size := o.TabSize
	if size <= 0 {
		size = 2
	}
	return strings.Repeat(" ", size)
}
