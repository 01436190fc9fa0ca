package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestLoggerMasksFields(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := newLogger(&buf, logOptions{service: "gosignin", level: slog.LevelInfo, masks: []string{" Password "}})
	ctx := SetCorrelationID(context.Background(), "cid-123")

	// Act
	logger.InfoContext(ctx, "code issued",
		"channel", "sms",
		"code", "123456",
		"payload", map[string]any{"password": "hunter2", "email": "a@b.co"},
	)

	// Assert
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if line["code"] != "***" {
		t.Fatalf("code should be masked, got %v", line["code"])
	}
	if line["channel"] != "sms" {
		t.Fatalf("channel should be kept, got %v", line["channel"])
	}
	payload, ok := line["payload"].(map[string]any)
	if !ok {
		t.Fatalf("payload should be an object, got %T", line["payload"])
	}
	if payload["password"] != "***" || payload["email"] != "a@b.co" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if line["_cID"] != "cid-123" {
		t.Fatalf("correlation id missing, got %v", line["_cID"])
	}
	if line["service"] != "gosignin" {
		t.Fatalf("service missing, got %v", line["service"])
	}
	if _, ok := line["ts"]; !ok {
		t.Fatal("expected ts key")
	}
}

func TestCorrelationID(t *testing.T) {
	if got := GetCorrelationID(context.Background()); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}

	ctx := SetCorrelationID(context.Background(), "abc")
	if got := GetCorrelationID(ctx); got != "abc" {
		t.Fatalf("GetCorrelationID = %q", got)
	}
}

func TestNewDisabledReturnsNoop(t *testing.T) {
	ins, err := New(context.Background(), &Config{Enabled: false, ServiceName: "gosignin"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := ins.(*noopInstrumentation); !ok {
		t.Fatalf("expected noop instrumentation, got %T", ins)
	}
	if err := ins.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestLoggerLevelAndTraceIDs(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := newLogger(&buf, logOptions{service: "gosignin", level: parseLevel("WARN")})
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3},
		SpanID:     trace.SpanID{4, 5, 6},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	// Act
	logger.InfoContext(ctx, "dropped")
	logger.With("authorization", "Bearer abc").WarnContext(ctx, "kept")

	// Assert
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected exactly one line, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "kept" {
		t.Fatalf("unexpected msg %v", line["msg"])
	}
	if line["trace_id"] != sc.TraceID().String() || line["span_id"] != sc.SpanID().String() {
		t.Fatalf("trace ids missing: %v", line)
	}
	if line["authorization"] != "***" {
		t.Fatalf("authorization should always be masked, got %v", line["authorization"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		" Info": slog.LevelInfo,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
