package cep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Lookup results reported through Options.OnResult.
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
	ResultError    = "error"
	ResultCached   = "cached"
)

// Options tune a Client. The zero value queries without a cache, with a five
// second timeout per provider and without logging.
type Options struct {
	Timeout  time.Duration
	Cache    Cache
	Logger   zerolog.Logger
	OnResult func(provider, result string)
}

// Client races every configured provider and keeps the first address found.
type Client struct {
	providers []Provider
	timeout   time.Duration
	cache     Cache
	log       zerolog.Logger
	onResult  func(provider, result string)
}

func NewClient(providers []Provider, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.OnResult == nil {
		opts.OnResult = func(string, string) {}
	}
	return &Client{
		providers: providers,
		timeout:   opts.Timeout,
		cache:     opts.Cache,
		log:       opts.Logger,
		onResult:  opts.OnResult,
	}
}

type lookupResult struct {
	provider string
	addr     *Address
	err      error
}

// Lookup normalizes raw and resolves it to an address. The error wraps
// ErrInvalid, ErrNotFound or ErrUnavailable.
func (c *Client) Lookup(ctx context.Context, raw string) (*Address, error) {
	code, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	if addr := c.cached(ctx, code); addr != nil {
		c.onResult("cache", ResultCached)
		return addr, nil
	}

	if len(c.providers) == 0 {
		return nil, fmt.Errorf("cep %s: %w: no providers configured", code, ErrUnavailable)
	}

	// Cancelled once a provider wins so the others stop early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan lookupResult, len(c.providers))
	for _, p := range c.providers {
		go func(p Provider) {
			pctx, pcancel := context.WithTimeout(ctx, c.timeout)
			defer pcancel()
			addr, err := p.Lookup(pctx, code)
			results <- lookupResult{provider: p.Name(), addr: addr, err: err}
		}(p)
	}

	notFound := 0
	var failures []error
	for range c.providers {
		r := <-results
		switch {
		case r.err == nil && r.addr != nil:
			cancel()
			c.onResult(r.provider, ResultFound)
			c.store(ctx, code, r.addr)
			return r.addr, nil
		case errors.Is(r.err, ErrNotFound):
			notFound++
			c.onResult(r.provider, ResultNotFound)
		default:
			if r.err == nil {
				r.err = fmt.Errorf("%s: empty answer", r.provider)
			}
			failures = append(failures, r.err)
			c.onResult(r.provider, ResultError)
			c.log.Warn().Err(r.err).Str("provider", r.provider).Str("cep", code).Msg("cep provider failed")
		}
	}

	if notFound == len(c.providers) {
		return nil, fmt.Errorf("cep %s: %w", code, ErrNotFound)
	}
	return nil, fmt.Errorf("cep %s: %w: %w", code, ErrUnavailable, errors.Join(failures...))
}

func (c *Client) cached(ctx context.Context, code string) *Address {
	if c.cache == nil {
		return nil
	}
	addr, ok, err := c.cache.Get(ctx, code)
	if err != nil {
		c.log.Warn().Err(err).Str("cep", code).Msg("cep cache read failed")
		return nil
	}
	if !ok {
		return nil
	}
	return addr
}

func (c *Client) store(ctx context.Context, code string, addr *Address) {
	if c.cache == nil {
		return
	}
	// The lookup context is already cancelled once a provider wins.
	if err := c.cache.Set(context.WithoutCancel(ctx), code, addr); err != nil {
		c.log.Warn().Err(err).Str("cep", code).Msg("cep cache write failed")
	}
}
