// Package httpapi exposes the gateway over HTTP/JSON.
//
// Each operation lives at a fixed path. Every response, including errors and
// preflight replies, carries permissive CORS headers so a browser-hosted
// Godot web export can call the server directly.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"godotmcp/internal/apperr"
	"godotmcp/internal/gateway"
	"godotmcp/internal/logging"
	"godotmcp/internal/metrics"

	"github.com/google/uuid"
)

// RequestIDHeader is echoed back, or generated when the client sent none.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes bounds a request body. Scripts are the largest payload.
const maxBodyBytes = 16 << 20

const shutdownTimeout = 5 * time.Second

type route struct {
	method string
	path   string
	op     gateway.Operation
}

var routes = []route{
	{method: http.MethodGet, path: "/status", op: gateway.OpStatus},
	{method: http.MethodPost, path: "/set-project", op: gateway.OpSetProject},
	{method: http.MethodGet, path: "/project-structure", op: gateway.OpGetStructure},
	{method: http.MethodGet, path: "/scenes", op: gateway.OpListScenes},
	{method: http.MethodGet, path: "/scripts", op: gateway.OpListScripts},
	{method: http.MethodPost, path: "/create-script", op: gateway.OpCreateScript},
	{method: http.MethodPost, path: "/run-godot", op: gateway.OpRunCommand},
	{method: http.MethodPost, path: "/analyze-scene", op: gateway.OpAnalyzeScene},
	{method: http.MethodPost, path: "/relay", op: gateway.OpRelayToEngine},
	{method: http.MethodPost, path: "/from-godot", op: gateway.OpReceiveFromEngine},
}

// Handler serves the REST routes.
type Handler struct {
	gateway *gateway.Gateway
	logger  *logging.AppLogger
}

// New creates a Handler over gw.
func New(gw *gateway.Gateway, logger *logging.AppLogger) *Handler {
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &Handler{gateway: gw, logger: logger}
}

// Register wires every route plus /metrics into mux.
func (h *Handler) Register(mux *http.ServeMux) {
	for _, rt := range routes {
		mux.Handle(rt.path, metrics.Middleware(rt.path, h.wrap(rt)))
	}
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/", metrics.Middleware("other", h.withCommonHeaders(http.HandlerFunc(h.handleNotFound))))
}

// Routes returns a ready-to-serve mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.Register(mux)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (h *Handler) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          h.logger.StandardLogger(),
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	h.logger.Info("HTTP server stopped")
	return nil
}

// withCommonHeaders sets CORS and request ID headers and answers preflight
// requests.
func (h *Handler) withCommonHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := w.Header()
		hdr.Set("Access-Control-Allow-Origin", "*")
		hdr.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		hdr.Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		hdr.Set("Access-Control-Expose-Headers", RequestIDHeader)

		reqID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if reqID == "" || len(reqID) > 128 {
			reqID = uuid.NewString()
		}
		hdr.Set(RequestIDHeader, reqID)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) wrap(rt route) http.Handler {
	return h.withCommonHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := h.logger.With(
			"req_id", w.Header().Get(RequestIDHeader),
			"method", r.Method,
			"path", r.URL.Path,
		)

		if r.Method != rt.method {
			w.Header().Set("Allow", rt.method+", "+http.MethodOptions)
			h.writeError(w, http.StatusMethodNotAllowed,
				apperr.New(apperr.MalformedInput, "method %s not allowed on %s", r.Method, rt.path))
			return
		}

		var args map[string]any
		if rt.method == http.MethodPost {
			decoded, err := decodeBody(w, r)
			if err != nil {
				logger.Warn("Rejected request body", "error", err)
				h.writeError(w, http.StatusBadRequest, err)
				return
			}
			args = decoded
		}

		resp := h.gateway.Dispatch(r.Context(), rt.op.String(), args)

		status := http.StatusOK
		if !resp.Success {
			status = StatusFor(resp.Kind)
			logger.Debug("Operation failed", "operation", rt.op.String(), "status", status, "error", resp.Error)
		}
		h.writeJSON(w, status, resp)
	}))
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, http.StatusNotFound,
		apperr.New(apperr.UnknownOperation, "no route for %s %s", r.Method, r.URL.Path))
}

// decodeBody reads a JSON object. An empty body is an empty object.
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, apperr.Wrap(apperr.MalformedInput, err, "failed to read request body")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal(body, &args); err != nil {
		return nil, apperr.Wrap(apperr.MalformedInput, err, "request body must be a JSON object")
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// StatusFor maps an error kind to an HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.InvalidPath, apperr.NoProjectBound, apperr.MalformedInput, apperr.UnknownOperation:
		return http.StatusBadRequest
	case apperr.NotFound, apperr.ExecutableNotFound:
		return http.StatusNotFound
	case apperr.Timeout:
		return http.StatusRequestTimeout
	case apperr.ConnectionError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, gateway.Response{Error: err.Error(), Kind: apperr.KindOf(err)})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Debug("Failed to write response", "error", err)
	}
}
