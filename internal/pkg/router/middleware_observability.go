package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/h7ml/denoAuthenticator/internal/pkg/config"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
)

// maxLoggedBodyBytes caps how much of a JSON body is kept for the access log.
const maxLoggedBodyBytes = 16 * 1024

// recorder captures the status, size and, for JSON responses, a prefix of the
// body written by the handler.
type recorder struct {
	http.ResponseWriter
	status int
	bytes  int
	body   bytes.Buffer
	json   bool
	err    error
}

func (w *recorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
		w.json = isJSON(w.Header().Get("Content-Type"))
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *recorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	if w.json {
		if room := maxLoggedBodyBytes - w.body.Len(); room > 0 {
			w.body.Write(p[:min(len(p), room)])
		}
	}

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// SetError records the handler error for the span. The router calls it.
func (w *recorder) SetError(err error) { w.err = err }

func (w *recorder) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func isJSON(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "application/json")
}

func matchedRoutePath(r *http.Request) string {
	if pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}

func maskHeaders(headers http.Header, keys map[string]struct{}) http.Header {
	out := headers.Clone()
	for key := range out {
		if _, found := keys[strings.ToLower(key)]; found {
			out.Set(key, instrument.Masked)
		}
	}
	return out
}

func maskQuery(raw string, keys map[string]struct{}) string {
	if raw == "" {
		return ""
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return instrument.Masked
	}
	for key := range values {
		if _, found := keys[strings.ToLower(key)]; found {
			values.Set(key, instrument.Masked)
		}
	}
	return values.Encode()
}

// jsonBody decodes and masks a captured body. Anything that is not JSON is
// summarized by size only.
func jsonBody(body []byte, keys map[string]struct{}) any {
	if len(body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return map[string]any{"omitted_bytes": len(body)}
	}
	return instrument.MaskData(v, keys)
}

// peekRequestBody reads up to maxLoggedBodyBytes of a JSON request body and
// puts it back for the handler.
func peekRequestBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody || !isJSON(r.Header.Get("Content-Type")) {
		return nil
	}

	head, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
	return head
}

func logLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

type httpMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	inflight metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) httpMetrics {
	var m httpMetrics
	var err error

	if m.requests, err = meter.Int64Counter("http.server.requests",
		metric.WithDescription("Number of HTTP requests served")); err != nil {
		slog.Error("failed to create http request counter", "error", err)
	}
	if m.duration, err = meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request duration"), metric.WithUnit("ms")); err != nil {
		slog.Error("failed to create http duration histogram", "error", err)
	}
	if m.inflight, err = meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("HTTP requests currently being served")); err != nil {
		slog.Error("failed to create http active request counter", "error", err)
	}

	return m
}

func (m httpMetrics) begin(ctx context.Context, attrs metric.MeasurementOption) {
	if m.inflight != nil {
		m.inflight.Add(ctx, 1, attrs)
	}
}

func (m httpMetrics) end(ctx context.Context, elapsed time.Duration, begin, done metric.MeasurementOption) {
	if m.inflight != nil {
		m.inflight.Add(ctx, -1, begin)
	}
	if m.requests != nil {
		m.requests.Add(ctx, 1, done)
	}
	if m.duration != nil {
		m.duration.Record(ctx, float64(elapsed.Microseconds())/1000, done)
	}
}

func middlewareObservability(cfg config.Config, ins instrument.Instrumentation) Middleware {
	var keys map[string]struct{}
	if cfg != nil {
		keys = instrument.MaskKeys(cfg.GetArray("instrument.log_mask_fields"))
	}
	tracer := ins.Tracer("http.server")
	metrics := newHTTPMetrics(ins.Meter("http.server"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := matchedRoutePath(r)
			routeAttrs := []attribute.KeyValue{
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(route),
			}

			ctx, span := tracer.Start(r.Context(), r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(routeAttrs...),
			)
			defer span.End()

			begin := metric.WithAttributes(routeAttrs...)
			metrics.begin(ctx, begin)

			slog.InfoContext(ctx, "request received",
				"method", r.Method,
				"path", route,
				"query", maskQuery(r.URL.RawQuery, keys),
				"headers", maskHeaders(r.Header, keys),
				"body", jsonBody(peekRequestBody(r), keys),
			)

			rec := &recorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.statusCode()
			elapsed := time.Since(start)
			done := append(routeAttrs, semconv.HTTPResponseStatusCodeKey.Int(status))

			span.SetAttributes(done...)
			span.SetAttributes(
				semconv.UserAgentOriginal(r.UserAgent()),
				attribute.Int("http.response.body.size", rec.bytes),
			)
			switch {
			case status >= http.StatusInternalServerError && rec.err != nil:
				span.RecordError(rec.err)
				span.SetStatus(codes.Error, rec.err.Error())
			case status >= http.StatusInternalServerError:
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			metrics.end(ctx, elapsed, begin, metric.WithAttributes(done...))

			var body any
			if rec.json {
				body = jsonBody(rec.body.Bytes(), keys)
			}
			slog.Log(ctx, logLevel(status), "response sent",
				"method", r.Method,
				"path", route,
				"status", status,
				"bytes", rec.bytes,
				"latency_ms", elapsed.Milliseconds(),
				"body", body,
			)
		})
	}
}
