package autograph

import (
	"log/slog"
	"time"

	"github.com/autograph-dev/autograph/internal/compiler"
	"github.com/autograph-dev/autograph/internal/decompiler"
	"github.com/autograph-dev/autograph/internal/observability"
	"github.com/autograph-dev/autograph/internal/validator"
	"github.com/autograph-dev/autograph/pkg/domain"
)

// Version of the autograph library.
var Version = "0.4.0"

// Compiler is the high-level entry point for the autograph library.
// It wraps the internal transforms and provides a simplified API for
// consumers. Safe for concurrent use: each Compile call owns its own
// scratch state.
type Compiler struct {
	logger          *slog.Logger
	maxPaths        int
	defaultFlowName string
	metrics         *observability.Metrics
}

// Option defines a functional option for configuring the Compiler.
type Option func(*Compiler)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithMaxPaths overrides the fan-out guard on OR/AND gates. Zero keeps
// the default; a negative value disables the guard entirely.
func WithMaxPaths(n int) Option {
	return func(c *Compiler) {
		c.maxPaths = n
	}
}

// WithDefaultFlowName sets the name used for rules compiled from unnamed
// flows.
func WithDefaultFlowName(name string) Option {
	return func(c *Compiler) {
		c.defaultFlowName = name
	}
}

// WithMetrics attaches Prometheus collectors; every compile is recorded.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Compiler) {
		c.metrics = m
	}
}

// New initializes a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Compile transforms one flow snapshot into executable automations. It
// never returns an error: graph problems surface as diagnostics on the
// result, and callers distinguish hard failure (IsSuccess false with
// errors) from a degenerate-but-clean compile (IsEmpty true, no errors).
func (c *Compiler) Compile(flow domain.Flow) *domain.CompilationResult {
	if flow.Name == "" {
		flow.Name = c.defaultFlowName
	}

	start := time.Now()
	result := compiler.Compile(flow, compiler.Options{
		MaxPaths: c.maxPaths,
		Logger:   c.logger,
	})

	c.logger.Info("compiled flow",
		"flow", flow.Name,
		"rules", len(result.Automations),
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
		"duration", time.Since(start),
	)

	if c.metrics != nil {
		c.metrics.CompileDuration.Observe(time.Since(start).Seconds())
		c.metrics.RulesEmitted.Add(float64(len(result.Automations)))
		switch {
		case len(result.Errors) > 0:
			c.metrics.Compiles.WithLabelValues(observability.StatusError).Inc()
		case result.IsEmpty():
			c.metrics.Compiles.WithLabelValues(observability.StatusEmpty).Inc()
		default:
			c.metrics.Compiles.WithLabelValues(observability.StatusSuccess).Inc()
		}
	}
	return result
}

// Decompile lays an automation back out as an editable graph description.
func (c *Compiler) Decompile(rule domain.Automation) domain.GraphDescription {
	return decompiler.Decompile(rule)
}

// Validate runs the structural pre-checks on a flow without compiling it.
func (c *Compiler) Validate(flow domain.Flow) []domain.Diagnostic {
	return validator.Validate(flow)
}
