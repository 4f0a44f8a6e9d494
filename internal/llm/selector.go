// Package llm routes generation requests to the first available language-model
// provider. Providers are registered in a fixed priority order based on which
// credentials are configured; an explicit override bypasses the policy.
package llm

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Request is a provider-agnostic generation request.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int64
	Temperature *float64
}

// Response is the generated output with provider attribution.
type Response struct {
	Text     string
	Provider string
	Model    string
}

// Provider is one configured language-model backend.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Response, error)
}

// ErrNoProvider is returned when no language-model credentials are configured
// or an explicit override names an unconfigured provider.
var ErrNoProvider = eris.New("llm: no provider available")

// Selector holds the ordered provider list. The registration order is the
// fallback priority.
type Selector struct {
	providers []Provider
}

// NewSelector builds a selector from the given providers, skipping nils.
func NewSelector(providers ...Provider) *Selector {
	s := &Selector{}
	for _, p := range providers {
		if p != nil {
			s.providers = append(s.providers, p)
		}
	}
	return s
}

// Available reports whether at least one provider is configured.
func (s *Selector) Available() bool {
	return len(s.providers) > 0
}

// Names returns the provider names in priority order.
func (s *Selector) Names() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name()
	}
	return names
}

// Generate sends the request to the selected provider. With an empty or
// "auto" override it walks providers in priority order until one succeeds;
// with an explicit override it uses only the named provider.
func (s *Selector) Generate(ctx context.Context, override string, req Request) (*Response, error) {
	if len(s.providers) == 0 {
		return nil, ErrNoProvider
	}

	if override != "" && override != "auto" {
		for _, p := range s.providers {
			if p.Name() == override {
				return p.Generate(ctx, req)
			}
		}
		return nil, eris.Wrap(ErrNoProvider, fmt.Sprintf("llm: provider %q not configured", override))
	}

	var lastErr error
	for _, p := range s.providers {
		resp, err := p.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		zap.L().Warn("llm: provider failed, trying next",
			zap.String("provider", p.Name()),
			zap.Error(err),
		)
	}

	return nil, eris.Wrap(lastErr, "llm: all providers failed")
}
