// Package server exposes the command layer as a JSON-RPC 2.0 endpoint over
// HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rpnesseling/adbw/utils"
)

// JSON-RPC 2.0 error codes
const (
	// Parse error: invalid JSON was received by the server
	ErrCodeParseError = -32700

	// Invalid Request: the JSON sent is not a valid request object
	ErrCodeInvalidRequest = -32600

	// Method not found: the method does not exist / is not available
	ErrCodeMethodNotFound = -32601

	// Invalid params: invalid method parameters
	ErrCodeInvalidParams = -32602

	// Internal error: internal JSON-RPC error
	ErrCodeInternalError = -32603

	// Server error: command execution failed
	ErrCodeServerError = -32000
)

// Server timeouts
const (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 120 * time.Second

	// device operations (installs, bugreports) can run long
	requestDeadline = 10 * time.Minute
)

var okResponse = map[string]interface{}{"status": "ok"}

// JSONRPCRequest is an incoming JSON-RPC call.
type JSONRPCRequest struct {
	// fields are omitempty so missing ones can be reported to the client
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id,omitempty"`
}

// JSONRPCResponse is an outgoing JSON-RPC reply.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Options configures a Server.
type Options struct {
	Addr       string // listen address, a bare port gets a ":" prefix
	EnableCORS bool
	Token      string // non-empty enables bearer auth
}

// Server is the JSON-RPC endpoint with its connection bookkeeping.
type Server struct {
	opts       Options
	httpServer *http.Server

	mu      sync.Mutex
	wsConns map[*wsConnection]struct{}
}

// New builds a Server from options, normalizing the listen address.
func New(opts Options) (*Server, error) {
	if !strings.Contains(opts.Addr, ":") {
		port, err := strconv.Atoi(opts.Addr)
		if err != nil {
			return nil, fmt.Errorf("invalid port: %v", err)
		}
		opts.Addr = fmt.Sprintf(":%d", port)
	}

	s := &Server{
		opts:    opts,
		wsConns: make(map[*wsConnection]struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", sendBanner)
	mux.HandleFunc("/rpc", s.requireAuth(s.handleJSONRPC))
	mux.HandleFunc("/ws", s.requireAuth(s.handleWebSocket))

	var handler http.Handler = mux
	if opts.EnableCORS {
		handler = corsMiddleware(mux)
	}

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      handler,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}
	return s, nil
}

// Start listens and serves until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	if err := utils.CheckListenAddr(s.opts.Addr); err != nil {
		return err
	}

	if s.opts.Token != "" {
		utils.Info("API token auth is enabled")
	}
	utils.Info("Starting server on http://%s...", s.httpServer.Addr)

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains WebSocket connections and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.wsConns {
		conn.close()
	}
	s.mu.Unlock()

	return s.httpServer.Shutdown(ctx)
}

// corsMiddleware handles CORS preflight requests and adds CORS headers.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireAuth enforces the bearer token when one is configured.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.opts.Token != "" {
			header := r.Header.Get("Authorization")
			if header != "Bearer "+s.opts.Token {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// installs and reports outlive the default write timeout
	_ = http.NewResponseController(w).SetWriteDeadline(time.Now().Add(requestDeadline))

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONRPCError(w, nil, ErrCodeParseError, "Parse error", "expecting jsonrpc payload")
		return
	}

	if req.JSONRPC != "2.0" {
		sendJSONRPCError(w, req.ID, ErrCodeInvalidRequest, "Invalid Request", "'jsonrpc' must be '2.0'")
		return
	}
	if req.ID == nil {
		sendJSONRPCError(w, nil, ErrCodeInvalidRequest, "Invalid Request", "'id' field is required")
		return
	}
	if req.Method == "" {
		sendJSONRPCError(w, req.ID, ErrCodeInvalidRequest, "Invalid Request", "'method' is required")
		return
	}

	utils.Info("Request ID: %v, Method: %s, Params: %s", req.ID, req.Method, string(req.Params))

	handler, exists := s.methodRegistry()[req.Method]
	if !exists {
		sendJSONRPCError(w, req.ID, ErrCodeMethodNotFound, "Method not found", fmt.Sprintf("Method '%s' not found", req.Method))
		return
	}

	result, err := handler(r.Context(), req.Params)
	if err != nil {
		utils.Warn("Method %s failed: %v", req.Method, err)
		code := errCodeFor(err)
		sendJSONRPCError(w, req.ID, code, errMessage(code), err.Error())
		return
	}

	sendJSONRPCResponse(w, req.ID, result)
}

// paramsError marks a handler failure as an invalid-params condition.
type paramsError struct{ msg string }

func (e *paramsError) Error() string { return e.msg }

func invalidParams(format string, args ...interface{}) error {
	return &paramsError{msg: fmt.Sprintf(format, args...)}
}

func errCodeFor(err error) int {
	if _, ok := err.(*paramsError); ok {
		return ErrCodeInvalidParams
	}
	return ErrCodeServerError
}

func errMessage(code int) string {
	if code == ErrCodeInvalidParams {
		return "Invalid params"
	}
	return "Server error"
}

func sendJSONRPCResponse(w http.ResponseWriter, id interface{}, result interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendJSONRPCError(w http.ResponseWriter, id interface{}, code int, message string, data interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Error: map[string]interface{}{
			"code":    code,
			"message": message,
			"data":    data,
		},
		ID: id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendBanner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(okResponse)
}
