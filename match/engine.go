package match

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/core"
)

// Mode selects the matching strategy for a single request.
type Mode string

const (
	// ModeFilter runs the eligibility filter pipeline and the rule-based
	// scorer over the corpus.
	ModeFilter Mode = "filter"

	// ModeSimilarity runs embedding-similarity search, degrading to the
	// default-ordered fallback when no embedding provider is configured.
	ModeSimilarity Mode = "similarity"
)

const (
	// DefaultSimilarityThreshold is the minimum cosine similarity for a grant
	// to appear in similarity results.
	DefaultSimilarityThreshold = 0.5

	// DefaultLimit is the result window size when the request doesn't set one.
	DefaultLimit = 10

	// DefaultEmbedTimeout bounds the single external embedding call.
	DefaultEmbedTimeout = 15 * time.Second
)

// Request describes one matching request. The corpus is treated as an
// immutable snapshot for the duration of the request; the engine never
// mutates corpus entries.
type Request struct {
	Mode     Mode
	Profile  RawProfile
	Criteria Criteria
	Corpus   []*core.Grant
	Limit    int // 0 means DefaultLimit
}

// Response is the outcome of one matching request.
type Response struct {
	// ModeUsed is the strategy that actually ran.
	ModeUsed Mode

	// Results is the scored, ordered, truncated result set. Empty is a valid
	// success. When Degraded is true the results carry no scores.
	Results []*core.MatchResult

	// Degraded is true when similarity mode fell back to the default-ordered
	// result set because the embedding provider is unconfigured or the corpus
	// carries no stored vectors. This is a first-class outcome, not an error.
	Degraded bool
}

// Engine turns a startup profile and a grant corpus into a scored, ordered,
// filtered result set. It is stateless across requests: each Match call is
// synchronous and pure apart from the single external embedding call in
// similarity mode. An Engine is safe for concurrent use.
type Engine struct {
	embedder       ai.Embedder // nil means similarity mode degrades
	defaultCountry string
	threshold      float32
	embedTimeout   time.Duration
	logger         *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithEmbedder sets the embedding service used by similarity mode.
// Without one, similarity requests return the degraded fallback result.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(e *Engine) {
		e.embedder = embedder
	}
}

// WithDefaultCountry sets the country assumed for profiles that don't state
// one. Default is no country, which matches every grant.
func WithDefaultCountry(country string) Option {
	return func(e *Engine) {
		e.defaultCountry = country
	}
}

// WithSimilarityThreshold sets the minimum cosine similarity for similarity
// results. Default is DefaultSimilarityThreshold.
func WithSimilarityThreshold(threshold float32) Option {
	return func(e *Engine) {
		e.threshold = threshold
	}
}

// WithEmbedTimeout bounds the external embedding call.
// Default is DefaultEmbedTimeout.
func WithEmbedTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		e.embedTimeout = timeout
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewEngine creates a matching engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		threshold:    DefaultSimilarityThreshold,
		embedTimeout: DefaultEmbedTimeout,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Match runs one matching request.
func (e *Engine) Match(ctx context.Context, req *Request) (*Response, error) {
	return e.MatchWithMonitor(ctx, req, nil)
}

// MatchWithMonitor runs one matching request with monitoring.
// The monitor receives callbacks at each stage of the matching process.
func (e *Engine) MatchWithMonitor(ctx context.Context, req *Request, monitor Monitor) (*Response, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}
	monitor.Start(req)

	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	switch req.Mode {
	case ModeFilter:
		return e.matchFilter(req, limit, monitor)
	case ModeSimilarity:
		return e.matchSimilarity(ctx, req, limit, monitor)
	default:
		// Unreachable after validation; kept for exhaustiveness.
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, req.Mode)
	}
}

// matchFilter runs the eligibility filter pipeline over the corpus, scores
// every candidate with the rule-based scorer, and returns the candidates in
// default (deadline) order.
func (e *Engine) matchFilter(req *Request, limit int, monitor Monitor) (*Response, error) {
	profile := NormalizeProfile(req.Profile, e.defaultCountry)
	monitor.AfterNormalize(profile)

	candidates := Filter(req.Corpus, req.Criteria)
	monitor.AfterFilter(candidates)

	ranked := SortByDeadline(candidates)
	results := make([]*core.MatchResult, len(ranked))
	for i, grant := range ranked {
		score, reasons := ScoreGrant(profile, grant)
		results[i] = &core.MatchResult{
			Grant:   grant,
			Score:   score,
			Reasons: reasons,
		}
	}

	resp := &Response{
		ModeUsed: ModeFilter,
		Results:  truncate(results, limit),
	}
	monitor.Finish(resp)
	return resp, nil
}

// matchSimilarity embeds the query text and scores the corpus by cosine
// similarity. When the embedder is unconfigured, or the corpus carries no
// stored vectors, it substitutes the documented fallback: the first limit
// grants in default order, with no scores and Degraded set. A reachable
// embedder that errors, or returns an unusable vector, fails the request
// with ErrUpstreamEmbedding instead.
func (e *Engine) matchSimilarity(ctx context.Context, req *Request, limit int, monitor Monitor) (*Response, error) {
	if e.embedder == nil {
		e.logger.Info("no embedding provider configured, returning fallback results")
		monitor.Degraded("embedding provider not configured")
		return e.fallback(req, limit, monitor), nil
	}
	if !hasEmbeddings(req.Corpus) {
		e.logger.Info("corpus has no stored embeddings, returning fallback results")
		monitor.Degraded("corpus has no stored embeddings")
		return e.fallback(req, limit, monitor), nil
	}

	embedCtx, cancel := context.WithTimeout(ctx, e.embedTimeout)
	defer cancel()

	query, err := e.embedder.EmbedText(embedCtx, req.Criteria.Text)
	if err != nil {
		e.logger.Error("error generating query embedding", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstreamEmbedding, err)
	}
	if len(query) == 0 {
		return nil, fmt.Errorf("%w: provider returned an empty vector", ErrUpstreamEmbedding)
	}
	monitor.AfterEmbed(len(query))

	// The request may have been aborted while the provider call was in
	// flight; don't hand back results computed for a canceled caller.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results, err := SimilarityScores(query, req.Corpus, e.threshold, limit)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		ModeUsed: ModeSimilarity,
		Results:  results,
	}
	monitor.Finish(resp)
	return resp, nil
}

// fallback builds the degraded similarity result: the first limit grants of
// the corpus in default order, with no scores attached.
func (e *Engine) fallback(req *Request, limit int, monitor Monitor) *Response {
	ranked := SortByDeadline(req.Corpus)
	results := make([]*core.MatchResult, 0, limit)
	for _, grant := range ranked {
		if len(results) == limit {
			break
		}
		results = append(results, &core.MatchResult{Grant: grant})
	}

	resp := &Response{
		ModeUsed: ModeSimilarity,
		Results:  results,
		Degraded: true,
	}
	monitor.Finish(resp)
	return resp
}

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}
	if req.Mode != ModeFilter && req.Mode != ModeSimilarity {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, req.Mode)
	}
	if req.Limit < 0 {
		return fmt.Errorf("%w: negative result limit %d", ErrInvalidRequest, req.Limit)
	}
	if req.Mode == ModeSimilarity && strings.TrimSpace(req.Criteria.Text) == "" {
		return fmt.Errorf("%w: similarity mode requires query text", ErrInvalidRequest)
	}
	return nil
}

func hasEmbeddings(corpus []*core.Grant) bool {
	for _, grant := range corpus {
		if grant != nil && len(grant.Embedding) > 0 {
			return true
		}
	}
	return false
}
