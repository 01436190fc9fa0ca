package instrument

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/trace"
)

const maskValue = "***"

// Verification codes and bearer tokens never reach a log line, whatever the
// configured mask list says.
var alwaysMasked = []string{"code", "authorization", "access_token"}

type logOptions struct {
	service string
	level   slog.Level
	masks   []string
	lp      *sdklog.LoggerProvider
}

func initLogging(opts logOptions) {
	slog.SetDefault(newLogger(os.Stdout, opts))
}

// parseLevel accepts the slog level names ("debug", "INFO", "warn+2").
// Anything unparsable falls back to info.
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func newLogger(w io.Writer, opts logOptions) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       opts.level,
		AddSource:   true,
		ReplaceAttr: renameAttr,
	})

	if opts.lp != nil {
		handler = fanout{handler, otelslog.NewHandler(opts.service, otelslog.WithLoggerProvider(opts.lp))}
	}

	masks := newMaskSet(slices.Concat(opts.masks, alwaysMasked))
	return slog.New(&contextHandler{
		Handler: &maskHandler{next: handler, masks: masks},
		service: opts.service,
	})
}

// renameAttr shortens the built-in keys and keeps source paths relative to
// the module root.
func renameAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		a.Key = "ts"
	case slog.LevelKey:
		a.Key = "severity"
	case slog.SourceKey:
		src, ok := a.Value.Any().(*slog.Source)
		if !ok {
			return a
		}
		_, rel, found := strings.Cut(src.File, "/internal/")
		if !found {
			return slog.Attr{}
		}
		return slog.String("file", fmt.Sprintf("internal/%s:%d", rel, src.Line))
	}
	return a
}

// contextHandler stamps every record with the request correlation id, the
// active trace ids and the service name.
type contextHandler struct {
	slog.Handler
	service string
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if cID := GetCorrelationID(ctx); cID != "" {
		r.AddAttrs(slog.String("_cID", cID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(slog.String("trace_id", sc.TraceID().String()), slog.String("span_id", sc.SpanID().String()))
	}
	r.AddAttrs(slog.String("service", h.service))

	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), service: h.service}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), service: h.service}
}

// fanout writes each record to every enabled handler.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

type maskSet map[string]struct{}

func newMaskSet(fields []string) maskSet {
	s := make(maskSet, len(fields))
	for _, f := range fields {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			s[f] = struct{}{}
		}
	}
	return s
}

func (s maskSet) hides(key string) bool {
	_, ok := s[strings.ToLower(key)]
	return ok
}

// attr masks a by key, then looks inside groups, maps and JSON payloads.
func (s maskSet) attr(a slog.Attr) slog.Attr {
	if s.hides(a.Key) {
		return slog.String(a.Key, maskValue)
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		group := a.Value.Group()
		out := make([]slog.Attr, len(group))
		for i, ga := range group {
			out[i] = s.attr(ga)
		}
		a.Value = slog.GroupValue(out...)
	case slog.KindString:
		if masked, ok := s.json([]byte(a.Value.String())); ok {
			a.Value = slog.StringValue(masked)
		}
	case slog.KindAny:
		switch v := a.Value.Any().(type) {
		case map[string]any, []any:
			a.Value = slog.AnyValue(s.data(v))
		case map[string]string:
			m := make(map[string]any, len(v))
			for k, val := range v {
				m[k] = val
			}
			a.Value = slog.AnyValue(s.data(m))
		case []byte:
			if masked, ok := s.json(v); ok {
				a.Value = slog.StringValue(masked)
			}
		}
	}
	return a
}

func (s maskSet) json(payload []byte) (string, bool) {
	if len(payload) == 0 || (payload[0] != '{' && payload[0] != '[') {
		return "", false
	}
	var body any
	if err := json.Unmarshal(payload, &body); err != nil {
		return "", false
	}
	out, err := json.Marshal(s.data(body))
	if err != nil {
		return "", false
	}
	return string(out), true
}

func (s maskSet) data(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if s.hides(k) {
				out[k] = maskValue
				continue
			}
			out[k] = s.data(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = s.data(inner)
		}
		return out
	}
	return v
}

type maskHandler struct {
	next  slog.Handler
	masks maskSet
}

func (h *maskHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *maskHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.masks.attr(a))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *maskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.masks.attr(a)
	}
	return &maskHandler{next: h.next.WithAttrs(masked), masks: h.masks}
}

func (h *maskHandler) WithGroup(name string) slog.Handler {
	return &maskHandler{next: h.next.WithGroup(name), masks: h.masks}
}
