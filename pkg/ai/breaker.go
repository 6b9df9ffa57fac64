package ai

import (
	"context"
	"errors"
	"time"

	"creatitube/pkg/logger"
	"creatitube/pkg/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerGenerator stops calling the model for a while after repeated
// failures, so callers fall back immediately instead of waiting on timeouts.
type BreakerGenerator struct {
	next TextGenerator
	cb   *gobreaker.CircuitBreaker[string]
	name string
	log  *logger.Logger
}

type BreakerSettings struct {
	Name        string
	MaxFailures uint32
	Timeout     time.Duration
}

func NewBreakerGenerator(next TextGenerator, settings BreakerSettings, log *logger.Logger) *BreakerGenerator {
	if settings.Name == "" {
		settings.Name = "gemini"
	}
	if settings.MaxFailures == 0 {
		settings.MaxFailures = 5
	}
	if settings.Timeout <= 0 {
		settings.Timeout = time.Minute
	}

	metrics.CircuitBreakerState.WithLabelValues(settings.Name).Set(0)

	g := &BreakerGenerator{next: next, name: settings.Name, log: log}
	g.cb = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if log != nil {
				log.Warn("[CIRCUIT BREAKER] %s: %s -> %s", name, from, to)
			}
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		// Caller cancellation says nothing about the model's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return g
}

func (g *BreakerGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.execute(func() (string, error) {
		return g.next.GenerateText(ctx, prompt)
	})
}

func (g *BreakerGenerator) GenerateJSON(ctx context.Context, prompt string, schema map[string]any) (string, error) {
	return g.execute(func() (string, error) {
		return g.next.GenerateJSON(ctx, prompt, schema)
	})
}

// State exposes the breaker state for health reporting.
func (g *BreakerGenerator) State() gobreaker.State {
	return g.cb.State()
}

func (g *BreakerGenerator) execute(fn func() (string, error)) (string, error) {
	out, err := g.cb.Execute(fn)
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "failure").Inc()
	}
	return out, err
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
