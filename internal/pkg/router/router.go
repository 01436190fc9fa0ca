package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/gosignin/internal/pkg/config"
	"github.com/shandysiswandi/gosignin/internal/pkg/goerror"
	"github.com/shandysiswandi/gosignin/internal/pkg/instrument"
	"github.com/shandysiswandi/gosignin/internal/pkg/jwt"
	"github.com/shandysiswandi/gosignin/internal/pkg/uid"
	"github.com/shandysiswandi/gosignin/internal/pkg/validator"
)

type errorResponse struct {
	Success bool              `json:"success" example:"false"`
	Message string            `json:"message" example:"example string message"`
	Error   map[string]string `json:"error,omitempty"`
}

type successResponse struct {
	Success bool           `json:"success" example:"true"`
	Message string         `json:"message" example:"example string message"`
	Data    any            `json:"data,omitempty" swaggertype:"object"`
	Meta    map[string]any `json:"meta,omitempty" swaggertype:"object"`
}

// Handler is the application-style handler used by this router. The
// returned value is wrapped in the success envelope; a returned error goes
// through the goerror mapping.
type Handler func(r *Request) (any, error)

// A response value may implement any of these to shape its envelope.
type (
	messenger interface{ Message() string }
	dataer    interface{ Data() any }
	metaer    interface{ Meta() map[string]any }
	statuser  interface{ StatusCode() int }
)

// Config holds dependencies required to build a Router.
type Config struct {
	Config     config.Config
	UUID       uid.StringID // fallback correlation ids
	JWT        jwt.JWT      // verifies session tokens on protected routes
	Instrument instrument.Instrumentation
}

// Router is an http.Handler that wraps httprouter and a middleware chain.
type Router struct {
	hr  *httprouter.Router
	mws []Middleware
}

// NewRouter builds the application router with the standard middleware
// chain: recover, request context, observability, maintenance, auth.
func NewRouter(cfg Config) *Router {
	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		SaveMatchedRoutePath:   true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Message: "endpoint not found"}, http.StatusNotFound)
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Message: "method not allowed"}, http.StatusMethodNotAllowed)
		}),
	}

	trustProxy := cfg.Config != nil && cfg.Config.GetBool("app.server.trust_proxy_headers")

	ro := &Router{
		hr: hr,
		mws: []Middleware{
			middlewareRecoverer,
			middlewareRequestContext(cfg.UUID, trustProxy),
			middlewareObservability(cfg.Config, cfg.Instrument),
			middlewareMaintenance(cfg.Config),
			middlewareAuthentication(cfg.JWT, publicRoutes),
		},
	}

	ro.GET("/", func(*Request) (any, error) {
		return welcome{}, nil
	})

	return ro
}

type welcome struct{}

func (welcome) Message() string { return "Welcome to API GoSignin" }

func (welcome) Data() any { return nil }

// GET registers a GET endpoint.
func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.Handle(http.MethodGet, path, h, mws...)
}

// POST registers a POST endpoint.
func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.Handle(http.MethodPost, path, h, mws...)
}

// Handle registers h for method and path behind the router middleware and
// then mws.
func (r *Router) Handle(method, path string, h Handler, mws ...Middleware) {
	final := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp, err := h(&Request{Request: req})
		if err != nil {
			if setter, ok := w.(interface{ SetError(error) }); ok {
				setter.SetError(err)
			}
			writeError(req.Context(), w, err)
			return
		}
		writeSuccess(w, resp)
	})
	r.hr.Handler(method, path, Chain(final, append(slices.Clone(r.mws), mws...)...))
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	gerr, ok := goerror.As(err)
	if !ok {
		slog.ErrorContext(ctx, "unhandled error reached the router", "error", err)
		writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		return
	}

	resp := errorResponse{Message: gerr.Msg()}
	var verr validator.V10ValidationError
	switch {
	case errors.As(err, &verr):
		resp.Error = verr.Values()
	case len(gerr.Fields()) > 0:
		resp.Error = gerr.Fields()
	}
	writeJSON(w, resp, gerr.StatusCode())
}

func writeSuccess(w http.ResponseWriter, resp any) {
	code := http.StatusOK
	if v, ok := resp.(statuser); ok {
		code = v.StatusCode()
	}
	if code == http.StatusNoContent {
		w.WriteHeader(code)
		return
	}

	env := successResponse{Success: true, Message: "request has been successfully", Data: resp}
	if v, ok := resp.(messenger); ok {
		env.Message = v.Message()
	}
	if v, ok := resp.(dataer); ok {
		env.Data = v.Data()
	}
	if v, ok := resp.(metaer); ok {
		env.Meta = v.Meta()
	}
	writeJSON(w, env, code)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

// writeJSON marks every body no-store since responses can carry session
// tokens and user records.
func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("server: failed to encode data to json", "error", err)
	}
}
