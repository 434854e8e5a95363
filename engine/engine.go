// Package engine orchestrates validation runs: it derives focus nodes
// from shape target classes, fans (focus node, shape) pairs out across a
// worker pool, and aggregates the results into a report.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/c360studio/semshapes/pkg/worker"
	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/report"
	"github.com/c360studio/semshapes/shapes"
	"github.com/c360studio/semshapes/validator"
)

// Engine runs shape validation over a graph. Validators only read the
// graph and allocate fresh results, so pairs are safe to evaluate in
// parallel.
type Engine struct {
	workers int
	logger  *slog.Logger
	metrics *runMetrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the fan-out width. Values <= 1 run sequentially.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine. The zero configuration validates sequentially
// and logs to the default logger.
func New(opts ...Option) *Engine {
	e := &Engine{
		workers: 1,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// pair is one unit of validation work.
type pair struct {
	focus rdf.Term
	shape *shapes.NodeShape
}

// Validate checks every target node of every shape against the graph and
// returns the aggregated report. When explicit focus nodes are given
// they are validated against every shape instead of deriving targets
// from the shapes' target classes.
func (e *Engine) Validate(ctx context.Context, g *rdf.Graph, shapeList []*shapes.NodeShape, focus ...rdf.Term) (*report.Report, error) {
	start := time.Now()

	pairs := e.collectPairs(g, shapeList, focus)
	e.logger.Debug("validation run starting",
		"shapes", len(shapeList), "pairs", len(pairs), "workers", e.workers)

	var results []report.Result
	var err error
	if e.workers <= 1 || len(pairs) < 2 {
		results = e.runSequential(ctx, g, pairs)
	} else {
		results, err = e.runParallel(ctx, g, pairs)
		if err != nil {
			return nil, err
		}
	}

	rep := report.New(results)
	e.observe(rep, time.Since(start))
	e.logger.Info("validation run complete",
		"conforms", rep.Conforms,
		"violations", len(rep.Violations),
		"warnings", len(rep.Warnings),
		"duration", time.Since(start))
	return rep, nil
}

// collectPairs derives the (focus node, shape) work list. Targets come
// from direct rdf:type assertions against each shape's target class.
func (e *Engine) collectPairs(g *rdf.Graph, shapeList []*shapes.NodeShape, focus []rdf.Term) []pair {
	var pairs []pair
	for _, shape := range shapeList {
		if len(focus) > 0 {
			for _, f := range focus {
				pairs = append(pairs, pair{focus: f, shape: shape})
			}
			continue
		}
		if shape.TargetClass == nil {
			e.logger.Debug("shape has no target class and no explicit focus nodes; skipping",
				"shape", shape.ID.Value)
			continue
		}
		for _, subject := range subjectsOfClass(g, *shape.TargetClass) {
			pairs = append(pairs, pair{focus: subject, shape: shape})
		}
	}
	return pairs
}

func (e *Engine) runSequential(ctx context.Context, g *rdf.Graph, pairs []pair) []report.Result {
	var results []report.Result
	for _, p := range pairs {
		results = append(results, validator.ValidateNode(ctx, g, p.focus, p.shape)...)
	}
	return results
}

func (e *Engine) runParallel(ctx context.Context, g *rdf.Graph, pairs []pair) ([]report.Result, error) {
	var mu sync.Mutex
	var results []report.Result

	pool := worker.NewPool(e.workers, len(pairs), func(ctx context.Context, p pair) error {
		out := validator.ValidateNode(ctx, g, p.focus, p.shape)
		mu.Lock()
		results = append(results, out...)
		mu.Unlock()
		return nil
	})

	if err := pool.Start(ctx); err != nil {
		return nil, fmt.Errorf("start validation pool: %w", err)
	}
	for _, p := range pairs {
		if err := pool.Submit(p); err != nil {
			return nil, fmt.Errorf("submit validation pair: %w", err)
		}
	}
	if err := pool.Stop(time.Minute); err != nil {
		return nil, fmt.Errorf("drain validation pool: %w", err)
	}
	return results, nil
}

// subjectsOfClass returns every subject with a direct rdf:type assertion
// for the class, deduplicated in first-seen order.
func subjectsOfClass(g *rdf.Graph, class rdf.Term) []rdf.Term {
	typePred := rdf.NewIRI(rdf.RdfType)
	var subjects []rdf.Term
	seen := make(map[rdf.Term]bool)
	for _, t := range g.TriplesWith(nil, &typePred) {
		if t.Object != class || seen[t.Subject] {
			continue
		}
		seen[t.Subject] = true
		subjects = append(subjects, t.Subject)
	}
	return subjects
}
