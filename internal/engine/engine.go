package engine

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kingrea/lattice-paths/internal/checkpoint"
	"github.com/kingrea/lattice-paths/internal/cogload"
	"github.com/kingrea/lattice-paths/internal/config"
	"github.com/kingrea/lattice-paths/internal/finding"
	"github.com/kingrea/lattice-paths/internal/graph"
	"github.com/kingrea/lattice-paths/internal/objective"
	"github.com/kingrea/lattice-paths/internal/path"
	"github.com/kingrea/lattice-paths/internal/personalize"
	"github.com/kingrea/lattice-paths/internal/sequence"
)

// DefaultParallelism bounds OptimizeBatch when no WithParallelism option is
// given.
const DefaultParallelism = 4

// Engine runs the sequencing pipeline. It holds no per-call state and is safe
// for concurrent use.
type Engine struct {
	logger      *zap.Logger
	parallelism int
}

// Option customizes the engine instance.
type Option func(*Engine)

// WithLogger sets the logger used for stage summaries and findings.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithParallelism caps how many requests OptimizeBatch runs at once.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// New builds an engine. Without options it logs nothing.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:      zap.NewNop(),
		parallelism: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Optimize is New().Optimize.
func Optimize(objectives []objective.Objective, profile *objective.Profile, cfg config.Config) (path.LearningPath, finding.List, error) {
	return New().Optimize(objectives, profile, cfg)
}

var validate = validator.New()

// Optimize turns objectives into an ordered, balanced, personalized path with
// checkpoints. Only an invalid cfg returns an error, before any stage runs;
// irregular objectives are reported as findings next to a best-effort path.
// An empty objective list yields an empty path without checkpoints.
func (e *Engine) Optimize(objectives []objective.Objective, profile *objective.Profile, cfg config.Config) (path.LearningPath, finding.List, error) {
	if err := cfg.Validate(); err != nil {
		return path.LearningPath{}, nil, err
	}
	log := e.logger
	var learner *objective.Profile
	if profile != nil {
		clone := profile.Clone()
		learner = &clone
		log = log.With(zap.String("profile", learner.ID))
		if err := validate.Struct(clone); err != nil {
			log.Warn("learner profile failed validation; invalid fields are ignored", zap.Error(err))
		}
	}

	g, findings := graph.Build(objectives)
	log.Debug("dependency graph built",
		zap.Int("objectives", g.Len()),
		zap.Int("roots", len(g.Roots())))

	order, cycleFindings := sequence.Topological(g)
	findings = append(findings, cycleFindings...)

	scaffolded := sequence.Scaffold(g, order)
	log.Debug("scaffolded", zap.Strings("sequence", g.IDs(scaffolded)))

	balanced := cogload.Balance(g, scaffolded, cfg)
	log.Debug("load balanced",
		zap.Int("reviews", len(balanced.Reviews)),
		zap.Float64("ceiling", cfg.LoadCeiling))

	arena := g.Len()
	final := personalize.Apply(g, balanced.Sequence, learner, cfg)
	ids := g.IDs(final)

	p := path.Assemble(path.Input{
		Graph:        g,
		Sequence:     final,
		Checkpoints:  checkpoint.Plan(ids, cfg),
		Assessment:   cogload.Assess(g, final),
		Profile:      learner,
		ReviewWindow: cfg.ReviewWindow,
		PaceReviews:  g.Len() - arena,
	})

	for _, f := range findings {
		log.Warn("structural finding",
			zap.String("kind", string(f.Kind)),
			zap.Strings("objectives", f.Objectives),
			zap.String("detail", f.Detail))
	}
	log.Info("path optimized",
		zap.String("path", p.ID),
		zap.Int("length", len(p.Sequence)),
		zap.Int("checkpoints", len(p.Checkpoints)),
		zap.Int("findings", len(findings)))
	return p, findings, nil
}

// Request is one unit of work for OptimizeBatch.
type Request struct {
	ID         string
	Objectives []objective.Objective
	Profile    *objective.Profile
	Config     config.Config
}

// Result pairs a request with its outcome. Err holds configuration errors.
type Result struct {
	RequestID string
	Path      path.LearningPath
	Findings  finding.List
	Err       error
}

// OptimizeBatch optimizes independent requests concurrently. Results keep the
// request order. Per-request configuration errors are reported in
// Result.Err; the returned error is only set when ctx ends before every
// request was started.
func (e *Engine) OptimizeBatch(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(e.parallelism)
	for idx := range reqs {
		idx := idx
		req := reqs[idx]
		if err := gctx.Err(); err != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("engine: request %s not started: %w", req.ID, err)
			}
			p, findings, err := e.Optimize(req.Objectives, req.Profile, req.Config)
			results[idx] = Result{RequestID: req.ID, Path: p, Findings: findings, Err: err}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("engine: batch interrupted: %w", err)
	}
	return results, nil
}
