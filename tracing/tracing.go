package tracing

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/viant/procsim"

// Config represents tracing configuration
type Config struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	// Output is a file path; empty writes to stdout
	Output string `json:"output" yaml:"output"`
}

// DefaultConfig returns disabled tracing
func DefaultConfig() Config {
	return Config{ServiceName: "procsim", ServiceVersion: "0.1.0"}
}

// Init configures OpenTelemetry with the stdout exporter writing to os.Stdout
// or to outputFile. The first successful initialisation wins; the output file
// stays open until Shutdown.
func Init(serviceName, serviceVersion, outputFile string) error {
	var w io.Writer = os.Stdout
	var f *os.File
	if outputFile != "" {
		var err error
		if f, err = os.Create(outputFile); err != nil {
			return err
		}
		w = f
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err == nil {
		var installed bool
		if installed, err = installProvider(serviceName, serviceVersion, exporter); installed && f != nil {
			mux.Lock()
			output = f
			mux.Unlock()
			return nil
		}
	}
	if f != nil {
		_ = f.Close()
	}
	return err
}

var (
	providerOnce sync.Once
	providerErr  error
	provider     *sdktrace.TracerProvider

	mux    sync.Mutex
	output io.Closer
)

// installProvider reports whether this call installed the global provider.
func installProvider(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (installed bool, err error) {
	providerOnce.Do(func() {
		res, err := resource.New(context.Background(),
			resource.WithAttributes(
				attribute.String("service.name", serviceName),
				attribute.String("service.version", serviceVersion),
			),
		)
		if err != nil {
			providerErr = err
			return
		}
		provider = sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(provider)
		installed = true
	})
	return installed, providerErr
}

// Shutdown flushes and stops the installed provider, then closes its output
// file, if any.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	mux.Lock()
	defer mux.Unlock()
	if output != nil {
		err = errors.Join(err, output.Close())
		output = nil
	}
	return err
}

// Span wraps an OpenTelemetry span
type Span struct {
	span trace.Span
}

// WithAttributes attaches string attributes to the span.
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	otelAttrs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		otelAttrs = append(otelAttrs, attribute.String(k, v))
	}
	s.span.SetAttributes(otelAttrs...)
	return s
}

// WithInt attaches an integer attribute to the span.
func (s *Span) WithInt(key string, value int) *Span {
	if s == nil {
		return s
	}
	s.span.SetAttributes(attribute.Int(key, value))
	return s
}

// SetStatus records an error status on the span, or OK when err is nil.
func (s *Span) SetStatus(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
		return
	}
	s.span.SetStatus(codes.Ok, "")
}

// StartSpan starts a child span of whatever span ctx carries.
func StartSpan(ctx context.Context, name string, attrs ...map[string]string) (context.Context, *Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	ret := &Span{span: span}
	for _, attr := range attrs {
		ret.WithAttributes(attr)
	}
	return ctx, ret
}

// EndSpan finalises the span and records status depending on err.
func EndSpan(sp *Span, err error) {
	if sp == nil {
		return
	}
	sp.SetStatus(err)
	sp.span.End()
}
