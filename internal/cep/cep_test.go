package cep_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winsbygroup.com/brvalida/internal/cep"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"84033106", "84033106", false},
		{"84033-106", "84033106", false},
		{"84.033-106", "84033106", false},
		{"1001000", "01001000", false},
		{"123", "00000123", false},
		{"840331060", "", true},
		{"abc", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := cep.Normalize(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, cep.ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestViaCEP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/ws/84033106/json/":
			w.Write([]byte(`{"cep":"84033-106","logradouro":"Rua A","bairro":"PQ Pinheiros","localidade":"Ponta Grossa","uf":"PR"}`))
		case "/ws/99999999/json/":
			w.Write([]byte(`{"erro": true}`))
		case "/ws/99999998/json/":
			w.Write([]byte(`{"erro": "true"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	p := cep.NewViaCEP(srv.URL+"/ws/", srv.Client())
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		addr, err := p.Lookup(ctx, "84033106")
		require.NoError(t, err)
		assert.Equal(t, &cep.Address{
			CEP:          "84033106",
			State:        "PR",
			City:         "Ponta Grossa",
			Neighborhood: "PQ Pinheiros",
			Street:       "Rua A",
			Service:      "viacep",
		}, addr)
	})

	t.Run("not found as boolean", func(t *testing.T) {
		_, err := p.Lookup(ctx, "99999999")
		assert.ErrorIs(t, err, cep.ErrNotFound)
	})

	t.Run("not found as string", func(t *testing.T) {
		_, err := p.Lookup(ctx, "99999998")
		assert.ErrorIs(t, err, cep.ErrNotFound)
	})

	t.Run("server error is not a not-found", func(t *testing.T) {
		_, err := p.Lookup(ctx, "00000000")
		require.Error(t, err)
		assert.NotErrorIs(t, err, cep.ErrNotFound)
	})
}

func TestBrasilAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cep/v1/01001000":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"cep":"01001000","state":"SP","city":"São Paulo","neighborhood":"Sé","street":"Praça da Sé","service":"correios"}`))
		case "/api/cep/v1/99999999":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	p := cep.NewBrasilAPI(srv.URL+"/api/cep/v1", srv.Client())
	ctx := context.Background()

	addr, err := p.Lookup(ctx, "01001000")
	require.NoError(t, err)
	assert.Equal(t, "São Paulo", addr.City)
	assert.Equal(t, "brasilapi", addr.Service)

	_, err = p.Lookup(ctx, "99999999")
	assert.ErrorIs(t, err, cep.ErrNotFound)

	_, err = p.Lookup(ctx, "12345678")
	require.Error(t, err)
	assert.NotErrorIs(t, err, cep.ErrNotFound)
}

type fakeProvider struct {
	name  string
	delay time.Duration
	addr  *cep.Address
	err   error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Lookup(ctx context.Context, code string) (*cep.Address, error) {
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	a := *f.addr
	a.CEP = code
	return &a, nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string]cep.Address
	err  error
}

func (m *memCache) Get(_ context.Context, code string) (*cep.Address, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, false, m.err
	}
	a, ok := m.data[code]
	if !ok {
		return nil, false, nil
	}
	return &a, true, nil
}

func (m *memCache) Set(_ context.Context, code string, addr *cep.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string]cep.Address{}
	}
	m.data[code] = *addr
	return nil
}

type recorder struct {
	mu      sync.Mutex
	results map[string]string
}

func (r *recorder) record(provider, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.results == nil {
		r.results = map[string]string{}
	}
	r.results[provider] = result
}

func TestClientLookup(t *testing.T) {
	ctx := context.Background()
	found := &cep.Address{City: "Ponta Grossa", State: "PR"}

	t.Run("rejects invalid input before querying", func(t *testing.T) {
		c := cep.NewClient([]cep.Provider{&fakeProvider{name: "p", addr: found}}, cep.Options{})
		_, err := c.Lookup(ctx, "123456789")
		assert.ErrorIs(t, err, cep.ErrInvalid)
	})

	t.Run("fastest successful provider wins", func(t *testing.T) {
		rec := &recorder{}
		c := cep.NewClient([]cep.Provider{
			&fakeProvider{name: "slow", delay: time.Second, addr: &cep.Address{City: "Lenta"}},
			&fakeProvider{name: "fast", addr: found},
		}, cep.Options{OnResult: rec.record})

		start := time.Now()
		addr, err := c.Lookup(ctx, "84033-106")
		require.NoError(t, err)
		assert.Equal(t, "Ponta Grossa", addr.City)
		assert.Equal(t, "84033106", addr.CEP)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
		assert.Equal(t, cep.ResultFound, rec.results["fast"])
	})

	t.Run("a failing provider does not hide a success", func(t *testing.T) {
		c := cep.NewClient([]cep.Provider{
			&fakeProvider{name: "down", err: errors.New("connection refused")},
			&fakeProvider{name: "up", delay: 10 * time.Millisecond, addr: found},
		}, cep.Options{})

		addr, err := c.Lookup(ctx, "84033106")
		require.NoError(t, err)
		assert.Equal(t, "PR", addr.State)
	})

	t.Run("not found when every provider says so", func(t *testing.T) {
		c := cep.NewClient([]cep.Provider{
			&fakeProvider{name: "a", err: cep.ErrNotFound},
			&fakeProvider{name: "b", err: cep.ErrNotFound},
		}, cep.Options{})

		_, err := c.Lookup(ctx, "99999999")
		assert.ErrorIs(t, err, cep.ErrNotFound)
		assert.NotErrorIs(t, err, cep.ErrUnavailable)
	})

	t.Run("unavailable when any provider failed without an answer", func(t *testing.T) {
		c := cep.NewClient([]cep.Provider{
			&fakeProvider{name: "a", err: cep.ErrNotFound},
			&fakeProvider{name: "b", err: errors.New("boom")},
		}, cep.Options{})

		_, err := c.Lookup(ctx, "99999999")
		assert.ErrorIs(t, err, cep.ErrUnavailable)
		assert.NotErrorIs(t, err, cep.ErrNotFound)
	})

	t.Run("provider timeout counts as unavailable", func(t *testing.T) {
		c := cep.NewClient([]cep.Provider{
			&fakeProvider{name: "hung", delay: time.Second, addr: found},
		}, cep.Options{Timeout: 20 * time.Millisecond})

		_, err := c.Lookup(ctx, "84033106")
		assert.ErrorIs(t, err, cep.ErrUnavailable)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("no providers", func(t *testing.T) {
		c := cep.NewClient(nil, cep.Options{})
		_, err := c.Lookup(ctx, "84033106")
		assert.ErrorIs(t, err, cep.ErrUnavailable)
	})

	t.Run("found addresses are cached", func(t *testing.T) {
		cache := &memCache{}
		rec := &recorder{}
		c := cep.NewClient([]cep.Provider{&fakeProvider{name: "p", addr: found}}, cep.Options{Cache: cache, OnResult: rec.record})

		_, err := c.Lookup(ctx, "84033106")
		require.NoError(t, err)
		_, ok, _ := cache.Get(ctx, "84033106")
		require.True(t, ok)

		// Providers that would fail are never reached on a cache hit.
		c = cep.NewClient([]cep.Provider{&fakeProvider{name: "p", err: errors.New("down")}}, cep.Options{Cache: cache, OnResult: rec.record})
		addr, err := c.Lookup(ctx, "84033-106")
		require.NoError(t, err)
		assert.Equal(t, "Ponta Grossa", addr.City)
		assert.Equal(t, cep.ResultCached, rec.results["cache"])
	})

	t.Run("cache errors fall back to providers", func(t *testing.T) {
		cache := &memCache{err: errors.New("redis down")}
		c := cep.NewClient([]cep.Provider{&fakeProvider{name: "p", addr: found}}, cep.Options{Cache: cache})

		addr, err := c.Lookup(ctx, "84033106")
		require.NoError(t, err)
		assert.Equal(t, "Ponta Grossa", addr.City)
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "cep:84033106", cep.Key("84033106"))
}
