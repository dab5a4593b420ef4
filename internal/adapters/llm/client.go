package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/core/dates"
	"inkwell/internal/core/similarity"
	"inkwell/internal/platform/logger"
	"inkwell/internal/platform/store"
	ptime "inkwell/internal/platform/time"

	"golang.org/x/time/rate"
)

// embedder and generator are the provider seams, langchaingo in production
type embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client implements Capabilities
// every provider call waits on a shared limiter and runs under cfg.Timeout
type Client struct {
	cfg     Config
	emb     embedder
	gen     generator
	cache   *embedCache
	limiter *rate.Limiter
	now     ptime.Clock
	loc     *time.Location
	log     logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithCache enables the redis embedding cache, nil leaves it off
func WithCache(kv store.KV) Option {
	return func(c *Client) {
		if kv != nil {
			c.cache = &embedCache{kv: kv, ttl: c.cfg.CacheTTL}
		}
	}
}

// WithClock sets the clock used for "today" in date extraction
func WithClock(clk ptime.Clock) Option {
	return func(c *Client) {
		if clk != nil {
			c.now = clk
		}
	}
}

// WithLocation sets the calendar for date extraction
func WithLocation(loc *time.Location) Option {
	return func(c *Client) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// New builds a Client; without an API key or with Offline set it uses the
// hashed embedder and has no generation
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Dimension <= 0 {
		cfg.Dimension = similarity.DefaultDimension
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	lim := rate.NewLimiter(rate.Inf, 0)
	if cfg.RatePerSec > 0 {
		lim = rate.NewLimiter(rate.Limit(cfg.RatePerSec), max(cfg.Burst, 1))
	}
	c := &Client{
		cfg:     cfg,
		limiter: lim,
		now:     ptime.System,
		loc:     time.Local,
		log:     *logger.Named("llm"),
	}
	for _, o := range opts {
		o(c)
	}

	if cfg.Offline || strings.TrimSpace(cfg.APIKey) == "" {
		if !cfg.Offline {
			c.log.Warn().Msg("no INKWELL_LLM_API_KEY, using the offline hashed embedder")
		}
		c.cfg.Offline = true
		c.emb = hashedEmbedder{dim: cfg.Dimension}
		return c, nil
	}

	emb, gen, err := newOpenAI(cfg)
	if err != nil {
		return nil, fmt.Errorf("llm: provider: %w", err)
	}
	c.emb, c.gen = emb, gen
	return c, nil
}

// Offline reports whether the client runs without a provider
func (c *Client) Offline() bool { return c.cfg.Offline }

// Dimension implements Capabilities
func (c *Client) Dimension() int { return c.cfg.Dimension }

// Model names the embedding model, used in cache keys
func (c *Client) Model() string {
	if c.cfg.Offline {
		return "offline-sha256"
	}
	return c.cfg.EmbeddingModel
}

// Embed implements Capabilities, results are cached per model and text
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", ErrEmbeddingUnavailable)
	}
	key := cacheKey(c.Model(), text)
	if v, ok := c.cache.get(ctx, key, c.cfg.Dimension); ok {
		return v, nil
	}

	var v []float32
	err := c.call(ctx, func(ctx context.Context) error {
		var err error
		v, err = c.emb.EmbedQuery(ctx, text)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)
	}
	if err := similarity.CheckDimension(v, c.cfg.Dimension); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)
	}
	c.cache.set(ctx, key, v)
	return v, nil
}

// Generate implements Capabilities with a single attempt
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.gen == nil {
		return "", fmt.Errorf("%w: offline", ErrGenerationUnavailable)
	}
	var out string
	err := c.call(ctx, func(ctx context.Context) error {
		var err error
		out, err = c.gen.Generate(ctx, prompt)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationUnavailable, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: empty completion", ErrGenerationUnavailable)
	}
	return out, nil
}

// ExtractDateFilter implements Capabilities
func (c *Client) ExtractDateFilter(ctx context.Context, query string) dates.Filter {
	if c.gen == nil || strings.TrimSpace(query) == "" {
		return dates.NoFilter()
	}
	today := ptime.Day(c.now().In(c.loc))
	raw, err := c.Generate(ctx, dateFilterPrompt(query, today))
	if err != nil {
		logger.C(ctx).Debug().Err(err).Msg("date filter extraction failed")
		return dates.NoFilter()
	}
	f, err := parseDateFilter(raw)
	if err != nil {
		logger.C(ctx).Debug().Err(err).Str("raw", raw).Msg("date filter reply unparseable")
		return dates.NoFilter()
	}
	return f
}

// call waits for a limiter token then runs fn under the provider timeout
func (c *Client) call(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	start := time.Now()
	err := fn(ctx)
	ev := logger.C(ctx).Debug()
	if err != nil {
		ev = logger.C(ctx).Warn().Err(err)
		if errors.Is(err, context.DeadlineExceeded) {
			ev = ev.Bool("timeout", true)
		}
	}
	ev.Dur("elapsed", time.Since(start)).Msg("llm call")
	return err
}
