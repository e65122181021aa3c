package validator

import (
	"context"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// CacheKey identifies one (validator, word) lookup for the cross-request
// result cache.
type CacheKey struct {
	Validator string
	Word      string
}

// NewCache builds the bounded LRU that memoizes (validator, word) lookups
// across requests so that repeatedly solving overlapping puzzles against
// the same live validator does not repeat outbound calls for words
// already confirmed. Construct once per process and share it across every
// Pipeline.
func NewCache(size int) (*lru.Cache[CacheKey, WordEntry], error) {
	return lru.New[CacheKey, WordEntry](size)
}

// Pipeline probes variant for each candidate in a call to Run, throttling
// outbound requests and tolerating per-word failure. A Pipeline is
// constructed fresh per request (variant construction is stateless), but
// the cache it is given may be shared and long-lived.
type Pipeline struct {
	variant Variant
	client  *http.Client
	limiter *rate.Limiter
	cache   *lru.Cache[CacheKey, WordEntry]
	timeout time.Duration
}

// NewPipeline constructs a Pipeline. client defaults to http.DefaultClient
// if nil. cache may be nil to disable cross-request memoization. throttle
// is the minimum delay between two consecutive outbound requests (the
// first request is never delayed); timeout bounds each individual
// outbound call.
func NewPipeline(variant Variant, client *http.Client, cache *lru.Cache[CacheKey, WordEntry], throttle, timeout time.Duration) *Pipeline {
	if client == nil {
		client = http.DefaultClient
	}
	return &Pipeline{
		variant: variant,
		client:  client,
		limiter: rate.NewLimiter(rate.Every(throttle), 1),
		cache:   cache,
		timeout: timeout,
	}
}

// Run probes candidates, in order, against the Pipeline's variant. After
// each candidate it calls sink with a progress event; on completion it
// calls sink once more with the final result and returns the same
// summary. If ctx is cancelled between candidates, Run returns ctx.Err()
// without calling sink again and without returning a partial summary.
func (p *Pipeline) Run(ctx context.Context, candidates []string, sink EventSink) (*ValidationSummary, error) {
	total := len(candidates)
	summary := &ValidationSummary{Candidates: total}

	for i, word := range candidates {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		entry, err := p.lookup(ctx, word)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			summary.Entries = append(summary.Entries, *entry)
		}

		if sink != nil {
			sink(Event{Progress: &ProgressEvent{Done: i + 1, Total: total}})
		}
	}

	summary.Validated = len(summary.Entries)
	if sink != nil {
		sink(Event{Result: summary})
	}
	return summary, nil
}

// lookup resolves one word, preferring the cache. A non-nil error always
// means the parent ctx was cancelled or timed out — every other failure
// mode (network error, unrecognized response shape, per-word timeout) is
// absorbed here and reported as a nil entry with a nil error, which Run
// treats as "not validated, continue".
func (p *Pipeline) lookup(ctx context.Context, word string) (*WordEntry, error) {
	key := CacheKey{Validator: p.variant.Name(), Word: word}

	if p.cache != nil {
		if entry, ok := p.cache.Get(key); ok {
			return &entry, nil
		}
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	lookupCtx := ctx
	cancel := func() {}
	if p.timeout > 0 {
		lookupCtx, cancel = context.WithTimeout(ctx, p.timeout)
	}
	defer cancel()

	entry, lookupErr := p.variant.Lookup(lookupCtx, p.client, word)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if lookupErr != nil || entry == nil {
		return nil, nil
	}

	if p.cache != nil {
		p.cache.Add(key, *entry)
	}
	return entry, nil
}
