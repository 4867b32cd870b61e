// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/veritas/internal/adapters/repository"
	"github.com/okian/veritas/internal/domain/classify"
	"github.com/okian/veritas/internal/domain/evaluate"
	"github.com/okian/veritas/internal/domain/normalize"
	"github.com/okian/veritas/internal/domain/record"
	"github.com/okian/veritas/pkg/logger"
	"github.com/okian/veritas/pkg/metrics"
)

// Service implements the API dependencies for the evaluation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	evaluator *evaluate.Evaluator

	// Configuration
	databasePath      string
	storeSize         int
	metadataPrefix    string
	minorThreshold    float64
	semanticThreshold float64
	nullAliases       []string
	fieldRules        []normalize.Rule
	weightRules       []classify.WeightRule
	defaultWeight     float64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithStore injects a prebuilt report store, overriding the database path.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDatabasePath selects the sqlite report archive. Empty keeps reports in
// memory only.
func WithDatabasePath(path string) Option {
	return func(s *Service) {
		s.databasePath = path
	}
}

// WithStoreSize bounds the in-memory report store.
func WithStoreSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.storeSize = size
		}
	}
}

// WithMetadataPrefix overrides the reserved non-content field prefix.
func WithMetadataPrefix(prefix string) Option {
	return func(s *Service) {
		if prefix != "" {
			s.metadataPrefix = prefix
		}
	}
}

// WithThresholds sets the similarity cutoffs for minor and semantic errors.
func WithThresholds(minor, semantic float64) Option {
	return func(s *Service) {
		if minor > semantic && semantic > 0 && minor <= 1 {
			s.minorThreshold = minor
			s.semanticThreshold = semantic
		}
	}
}

// WithNullAliases sets the string forms treated as absent values.
func WithNullAliases(aliases []string) Option {
	return func(s *Service) {
		if len(aliases) > 0 {
			s.nullAliases = aliases
		}
	}
}

// WithFieldRules sets the field-semantic normalization rules.
func WithFieldRules(rules []normalize.Rule) Option {
	return func(s *Service) {
		if rules != nil {
			s.fieldRules = rules
		}
	}
}

// WithWeightRules sets the field-weighting rules.
func WithWeightRules(rules []classify.WeightRule) Option {
	return func(s *Service) {
		if rules != nil {
			s.weightRules = rules
		}
	}
}

// WithDefaultWeight sets the weight for fields no rule matches.
func WithDefaultWeight(weight float64) Option {
	return func(s *Service) {
		if weight > 0 {
			s.defaultWeight = weight
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storeSize:         1_000,
		metadataPrefix:    evaluate.DefaultMetadataPrefix,
		minorThreshold:    0.9,
		semanticThreshold: 0.5,
		defaultWeight:     1.0,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting evaluation service...")

	if s.store == nil {
		if s.databasePath != "" {
			store, err := repository.NewSQLiteStore(s.databasePath)
			if err != nil {
				return fmt.Errorf("open report store: %w", err)
			}
			s.store = store
			s.logger.Info(ctx, "using sqlite report store", logger.String("path", s.databasePath))
		} else {
			s.store = repository.NewMemoryStore(repository.WithMaxSize(s.storeSize))
			s.logger.Info(ctx, "using in-memory report store", logger.Int("maxSize", s.storeSize))
		}
	}

	var normOpts []normalize.Option
	if len(s.nullAliases) > 0 {
		normOpts = append(normOpts, normalize.WithNullAliases(s.nullAliases))
	}
	if s.fieldRules != nil {
		normOpts = append(normOpts, normalize.WithRules(s.fieldRules))
	}
	norm := normalize.New(normOpts...)

	s.evaluator = evaluate.New(
		evaluate.WithNormalizer(norm),
		evaluate.WithClassifier(classify.New(
			classify.WithNormalizer(norm),
			classify.WithThresholds(s.minorThreshold, s.semanticThreshold),
		)),
		evaluate.WithWeighter(newWeighter(s.weightRules, s.defaultWeight)),
		evaluate.WithMetadataPrefix(s.metadataPrefix),
	)

	s.started = true
	s.logger.Info(ctx, "evaluation service started",
		logger.Float64("minorThreshold", s.minorThreshold),
		logger.Float64("semanticThreshold", s.semanticThreshold),
	)
	return nil
}

func newWeighter(rules []classify.WeightRule, defaultWeight float64) *classify.Weighter {
	opts := []classify.WeighterOption{classify.WithDefaultWeight(defaultWeight)}
	if rules != nil {
		opts = append(opts, classify.WithWeightRules(rules))
	}
	return classify.NewWeighter(opts...)
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping evaluation service...")

	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "evaluation service stopped")
}

// Evaluate scores a prediction against a gold record, persists the report,
// and returns the stored evaluation.
func (s *Service) Evaluate(ctx context.Context, gold, pred record.Record, validations []evaluate.Validation) (repository.Evaluation, error) {
	s.mu.RLock()
	evaluator, store := s.evaluator, s.store
	s.mu.RUnlock()

	start := time.Now()
	report := evaluator.Evaluate(gold, pred, validations)
	metrics.RecordEvaluationLatency(float64(time.Since(start).Microseconds()) / 1e3)
	metrics.RecordEvaluation(report.FinalScore, len(report.FieldScores))

	eval := repository.Evaluation{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Report:    report,
	}
	if err := s.save(ctx, store, eval); err != nil {
		return repository.Evaluation{}, err
	}

	s.logger.Info(ctx, "evaluation stored",
		logger.String("id", eval.ID),
		logger.Float64("finalScore", report.FinalScore),
		logger.Int("fields", len(report.FieldScores)),
		logger.Int("missing", len(report.MissingFields)),
	)
	return eval, nil
}

// ApplyValidations replays the aggregation with the given overrides forced
// to perfect and persists the recomputed report.
func (s *Service) ApplyValidations(ctx context.Context, id string, validations []evaluate.Validation) (repository.Evaluation, error) {
	s.mu.RLock()
	evaluator, store := s.evaluator, s.store
	s.mu.RUnlock()

	eval, err := store.Get(ctx, id)
	if err != nil {
		return repository.Evaluation{}, fmt.Errorf("load evaluation %s: %w", id, err)
	}

	before := len(eval.Report.AppliedValidations)
	evaluator.ApplyValidations(eval.Report, validations)
	metrics.RecordValidationsApplied(len(eval.Report.AppliedValidations) - before)

	if err := s.save(ctx, store, eval); err != nil {
		return repository.Evaluation{}, err
	}

	s.logger.Info(ctx, "validations applied",
		logger.String("id", eval.ID),
		logger.Int("applied", len(eval.Report.AppliedValidations)),
		logger.Float64("finalScore", eval.Report.FinalScore),
	)
	return eval, nil
}

func (s *Service) save(ctx context.Context, store repository.Store, eval repository.Evaluation) error {
	start := time.Now()
	err := store.Save(ctx, eval)
	metrics.RecordStoreLatency(float64(time.Since(start).Microseconds()) / 1e3)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("save evaluation %s: %w", eval.ID, err)
	}
	metrics.UpdateReportsStored(store.Count(ctx))
	return nil
}

// Report returns the stored evaluation with the given id.
func (s *Service) Report(ctx context.Context, id string) (repository.Evaluation, error) {
	return s.store.Get(ctx, id)
}

// Recent returns up to n stored evaluations, newest first.
func (s *Service) Recent(ctx context.Context, n int) ([]repository.Evaluation, error) {
	return s.store.Recent(ctx, n)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"metadataPrefix":    s.metadataPrefix,
		"minorThreshold":    s.minorThreshold,
		"semanticThreshold": s.semanticThreshold,
	}

	if s.started {
		count := s.store.Count(context.Background())
		stats["reportsStored"] = count
		metrics.UpdateReportsStored(count)
	}

	return stats
}
