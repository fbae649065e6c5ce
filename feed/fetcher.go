package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultMaxBody = 5 << 20
)

// UpstreamError is a non-200 answer from an upstream endpoint
type UpstreamError struct {
	Source string
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.Source, e.Status)
}

// Result is the normalized answer of one upstream
type Result struct {
	Source string
	Tokens []Token
}

// Fetcher fetches whitelisted upstreams
type Fetcher struct {
	sources []Source
	client  *http.Client
	timeout time.Duration
	maxBody int64
	logger  *zap.Logger
}

type FetcherOption func(*Fetcher)

func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = client }
}

func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

func WithMaxBody(n int64) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBody = n
		}
	}
}

func WithLogger(logger *zap.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = logger }
}

func NewFetcher(sources []Source, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		sources: append([]Source(nil), sources...),
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
		maxBody: DefaultMaxBody,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.Named("feed")
	return f
}

// Sources lists the whitelisted source names in order
func (f *Fetcher) Sources() []string {
	names := make([]string, len(f.sources))
	for i, src := range f.sources {
		names[i] = src.Name
	}
	return names
}

// Fetch returns at most limit tokens from the named source. With an empty name
// every source is queried and the first one in whitelist order that answers wins.
func (f *Fetcher) Fetch(ctx context.Context, name string, limit int) (Result, error) {
	if limit < 1 || limit > MaxLimit {
		return Result{}, ErrInvalidLimit
	}

	if name != "" {
		src, ok := f.lookup(name)
		if !ok {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownSource, name)
		}
		tokens, err := f.fetchOne(ctx, src)
		if err != nil {
			f.logger.Warn("upstream failed", zap.String("source", src.Name), zap.Error(err))
			return Result{}, fmt.Errorf("%w: %w", ErrAllUpstreamsFailed, err)
		}
		return Result{Source: src.Name, Tokens: capTokens(tokens, limit)}, nil
	}

	results := make([][]Token, len(f.sources))
	errs := make([]error, len(f.sources))

	var g errgroup.Group
	for i, src := range f.sources {
		g.Go(func() error {
			results[i], errs[i] = f.fetchOne(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	for i, src := range f.sources {
		if errs[i] == nil {
			return Result{Source: src.Name, Tokens: capTokens(results[i], limit)}, nil
		}
		f.logger.Warn("upstream failed", zap.String("source", src.Name), zap.Error(errs[i]))
	}
	return Result{}, ErrAllUpstreamsFailed
}

func (f *Fetcher) lookup(name string) (Source, bool) {
	for _, src := range f.sources {
		if src.Name == name {
			return src, true
		}
	}
	return Source{}, false
}

func (f *Fetcher) fetchOne(ctx context.Context, src Source) ([]Token, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Source: src.Name, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src.Name, err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, ErrBodyTooLarge
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src.Name, err)
	}
	return normalizeAll(records), nil
}

func capTokens(tokens []Token, limit int) []Token {
	if len(tokens) > limit {
		return tokens[:limit]
	}
	return tokens
}
