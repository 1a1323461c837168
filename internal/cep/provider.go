package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const userAgent = "BrValida/1.0"

// Provider answers lookups for a normalized eight digit CEP. It returns
// ErrNotFound when the provider positively knows the CEP does not exist.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, code string) (*Address, error)
}

func getJSON(ctx context.Context, hc *http.Client, url string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// ViaCEP queries https://viacep.com.br.
type ViaCEP struct {
	baseURL string
	http    *http.Client
}

func NewViaCEP(baseURL string, hc *http.Client) *ViaCEP {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &ViaCEP{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	// "erro" is sent as true or "true" depending on the API version
	Erro any `json:"erro"`
}

func (v *ViaCEP) Name() string { return "viacep" }

func (v *ViaCEP) Lookup(ctx context.Context, code string) (*Address, error) {
	var resp viaCEPResponse
	status, err := getJSON(ctx, v.http, fmt.Sprintf("%s/%s/json/", v.baseURL, code), &resp)
	if err != nil {
		return nil, fmt.Errorf("viacep: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("viacep: unexpected status %d", status)
	}
	if isTrue(resp.Erro) {
		return nil, fmt.Errorf("viacep: %w", ErrNotFound)
	}

	return &Address{
		CEP:          strings.ReplaceAll(resp.CEP, "-", ""),
		State:        resp.UF,
		City:         resp.Localidade,
		Neighborhood: resp.Bairro,
		Street:       resp.Logradouro,
		Service:      v.Name(),
	}, nil
}

func isTrue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true")
	}
	return false
}

// BrasilAPI queries https://brasilapi.com.br.
type BrasilAPI struct {
	baseURL string
	http    *http.Client
}

func NewBrasilAPI(baseURL string, hc *http.Client) *BrasilAPI {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &BrasilAPI{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

type brasilAPIResponse struct {
	CEP          string `json:"cep"`
	State        string `json:"state"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
}

func (b *BrasilAPI) Name() string { return "brasilapi" }

func (b *BrasilAPI) Lookup(ctx context.Context, code string) (*Address, error) {
	var resp brasilAPIResponse
	status, err := getJSON(ctx, b.http, fmt.Sprintf("%s/%s", b.baseURL, code), &resp)
	if err != nil {
		return nil, fmt.Errorf("brasilapi: %w", err)
	}
	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("brasilapi: %w", ErrNotFound)
	default:
		return nil, fmt.Errorf("brasilapi: unexpected status %d", status)
	}

	return &Address{
		CEP:          resp.CEP,
		State:        resp.State,
		City:         resp.City,
		Neighborhood: resp.Neighborhood,
		Street:       resp.Street,
		Service:      b.Name(),
	}, nil
}
