package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/pkg/instrument"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

// ErrUnexpectedResponse is returned when the user service answers with a
// non-2xx status or a body without a user.
var ErrUnexpectedResponse = errors.New("resolver: unexpected user service response")

type HTTPConfig struct {
	// BaseURL is the user service root, e.g. "http://localhost:8080".
	BaseURL string
	Timeout time.Duration
}

// HTTP resolves users by calling POST {BaseURL}/auth/user.
type HTTP struct {
	client  *http.Client
	baseURL string
	ins     instrument.Instrumentation
}

func NewHTTP(cfg HTTPConfig, ins instrument.Instrumentation) *HTTP {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &HTTP{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		ins:     ins,
	}
}

type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *entity.User `json:"data"`
}

func (h *HTTP) FindOrCreate(ctx context.Context, in entity.ResolveUser) (_ *entity.User, err error) {
	ctx, span := h.ins.Tracer("auth.outbound.resolver").Start(ctx, "FindOrCreate")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/auth/user", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if cID := instrument.GetCorrelationID(ctx); cID != "" {
		req.Header.Set("X-Correlation-ID", cID)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedResponse, resp.StatusCode)
	}

	var out envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return nil, err
	}
	if !out.Success || out.Data == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedResponse, out.Message)
	}

	return out.Data, nil
}
