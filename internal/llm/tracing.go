package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/codeforge/challengegen/internal/llm"

// TracingProvider is a decorator that opens one span per Generate call.
// It uses the global tracer provider, which is a no-op until telemetry is
// initialised.
type TracingProvider struct {
	inner    Provider
	provider string
	tracer   trace.Tracer
}

// WithTracing wraps a Provider with OpenTelemetry spans.
func WithTracing(p Provider, provider string) Provider {
	return &TracingProvider{
		inner:    p,
		provider: provider,
		tracer:   otel.Tracer(tracerName),
	}
}

func (t *TracingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, span := t.tracer.Start(ctx, "llm.generate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.provider", t.provider),
			attribute.String("llm.model", t.inner.ModelID()),
			attribute.String("llm.purpose", string(PurposeFrom(ctx))),
			attribute.Int("llm.max_tokens", req.MaxTokens),
			attribute.Float64("llm.temperature", req.Temperature),
		),
	)
	defer span.End()

	if req.Schema != nil {
		span.SetAttributes(attribute.String("llm.schema", req.Schema.Name))
	}

	resp, err := t.inner.Generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("llm.response_model", resp.Model),
		attribute.String("llm.stop_reason", resp.StopReason),
		attribute.Int("llm.usage.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.usage.output_tokens", resp.Usage.OutputTokens),
	)
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

func (t *TracingProvider) ModelID() string {
	return t.inner.ModelID()
}
