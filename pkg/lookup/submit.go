package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	applicationJSON    = "application/json"
	requestIDHeader    = "X-Request-Id"
	maxErrBodyLogBytes = 800
)

const (
	outcomeOK        = "ok"
	outcomeNotFound  = "not_found"
	outcomeHTTPError = "http_error"
	outcomeError     = "error"
)

// Lookup sends exactly one request for email. The caller validates and trims
// the address; no retry is attempted.
func (s *service) Lookup(ctx context.Context, email string) (resp Response, err error) {
	if s.timeout > 0 {
		if _, hasDeadline := ctx.Deadline(); !hasDeadline {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
	}

	requestID := uuid.NewString()

	ctx, span := s.tracer.Start(ctx, "lookup.Lookup",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("lookup.request_id", requestID)),
	)
	defer span.End()

	log := s.logger.With(
		slog.String("request_id", requestID),
		slog.String("email", maskEmail(email)),
	)

	start := time.Now()
	outcome := outcomeError
	defer func() {
		attrs := metric.WithAttributes(attribute.String("outcome", outcome))
		s.requests.Add(ctx, 1, attrs)
		s.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)

		span.SetAttributes(attribute.String("lookup.outcome", outcome))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	body, err := json.Marshal(Request{Email: email})
	if err != nil {
		log.Error("lookup marshal failed", slog.Any("error", err))
		return Response{}, fmt.Errorf("marshal lookup body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Error("lookup create request failed", slog.Any("error", err))
		return Response{}, fmt.Errorf("create lookup request: %w", err)
	}

	req.Header.Set("Content-Type", applicationJSON)
	req.Header.Set("Accept", applicationJSON)
	req.Header.Set(requestIDHeader, requestID)

	log.Debug("lookup request prepared",
		slog.String("method", req.Method),
		slog.String("host", req.URL.Host),
		slog.String("path", req.URL.Path),
	)

	httpResp, err := s.client.Do(req)
	latency := time.Since(start)

	if err != nil {
		log.Error("lookup request failed",
			slog.Any("error", err),
			slog.Duration("latency", latency),
		)
		return Response{}, fmt.Errorf("lookup request: %w", err)
	}
	defer httpResp.Body.Close()

	respBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		log.Error("lookup read body failed", slog.Any("error", err))
		return Response{}, fmt.Errorf("read lookup response: %w", err)
	}

	log.Info("lookup response received",
		slog.Int("status", httpResp.StatusCode),
		slog.String("content_type", httpResp.Header.Get("Content-Type")),
		slog.Duration("latency", latency),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		snippet := string(respBytes)
		if len(snippet) > maxErrBodyLogBytes {
			snippet = snippet[:maxErrBodyLogBytes] + "..."
		}

		log.Error("lookup non-2xx",
			slog.Int("status", httpResp.StatusCode),
			slog.String("body_snippet", snippet),
		)

		outcome = outcomeHTTPError
		return Response{}, &StatusError{Code: httpResp.StatusCode}
	}

	out, err := decodeResponse(respBytes)
	if err != nil {
		log.Error("lookup decode failed", slog.Any("error", err))
		return Response{}, fmt.Errorf("decode lookup response: %w", err)
	}

	outcome = outcomeOK
	if len(out.Data) == 0 || out.Data[0] == nil {
		outcome = outcomeNotFound
	}

	log.Debug("lookup decoded successfully", slog.Int("records", len(out.Data)))
	return out, nil
}

// maskEmail keeps the first character of the local part and the domain.
func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	_, size := utf8.DecodeRuneInString(local)
	return local[:size] + "***@" + domain
}
