package provider

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Factory constructs a gateway for one provider id.
type Factory func(ctx context.Context) (Gateway, error)

// Registry resolves provider ids to gateway constructors. Construction
// happens eagerly at session start so that bad setup fails fast with a
// ConfigurationError instead of mid-debate.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry with the built-in providers registered.
func NewRegistry() *Registry {
	r := &Registry{factories: map[string]Factory{}}
	r.Register("gemini", func(ctx context.Context) (Gateway, error) { return NewGemini(ctx) })
	r.Register("zhipu", func(ctx context.Context) (Gateway, error) { return NewZhipu() })
	r.Register("anthropic", func(ctx context.Context) (Gateway, error) { return NewAnthropic() })
	return r
}

// Register adds or replaces a provider factory. Tests use this to install
// deterministic stubs.
func (r *Registry) Register(id string, f Factory) {
	r.factories[strings.ToLower(id)] = f
}

// Resolve constructs the gateway for a provider id.
func (r *Registry) Resolve(ctx context.Context, id string) (Gateway, error) {
	f, ok := r.factories[strings.ToLower(id)]
	if !ok {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unknown provider %q", id)}
	}
	gw, err := f(ctx)
	if err != nil {
		return nil, err
	}
	return gw, nil
}

// apiKeyFromEnv returns the first non-empty value among the named env vars,
// or a ConfigurationError telling the user which variable to set.
func apiKeyFromEnv(providerID string, names ...string) (string, error) {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, nil
		}
	}
	return "", &ConfigurationError{
		Reason: fmt.Sprintf("%s: none of %s is set", providerID, strings.Join(names, ", ")),
	}
}
