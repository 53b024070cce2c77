package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantKind Kind
	}{
		{"deadline becomes timeout", context.DeadlineExceeded, KindTimeout},
		{"anything else is transport", errors.New("connection refused"), KindTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := classify("p", tt.err)
			kind, ok := KindOf(got)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, kind)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassify_CancellationPassesThrough(t *testing.T) {
	t.Parallel()

	got := classify("p", context.Canceled)
	assert.ErrorIs(t, got, context.Canceled)
	_, ok := KindOf(got)
	assert.False(t, ok, "cancellation must stay unclassified")
}

func TestRefusal(t *testing.T) {
	t.Parallel()

	err := refusal("gemini", "empty candidate list")
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindRefusal, kind)
	assert.Contains(t, err.Error(), "gemini")
	assert.Contains(t, err.Error(), "empty candidate list")
}

func TestKindOf_PlainError(t *testing.T) {
	t.Parallel()

	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestRegistryResolve_UnknownProvider(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry().Resolve(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestRegistryResolve_CaseInsensitive(t *testing.T) {
	t.Parallel()

	stub := gatewayFunc(func(context.Context, string, string) (string, error) { return "ok", nil })
	r := NewRegistry()
	r.Register("MyProvider", func(context.Context) (Gateway, error) { return stub, nil })

	gw, err := r.Resolve(context.Background(), "myprovider")
	require.NoError(t, err)
	out, err := gw.Invoke(context.Background(), "m", "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestRegistryResolve_FactoryErrorPropagates(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register("broken", func(context.Context) (Gateway, error) {
		return nil, &ConfigurationError{Reason: "broken: API key missing"}
	})

	_, err := r.Resolve(context.Background(), "broken")
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}

func TestApiKeyFromEnv(t *testing.T) {
	t.Setenv("CONSILIUM_TEST_KEY_A", "")
	t.Setenv("CONSILIUM_TEST_KEY_B", "  secret  ")

	key, err := apiKeyFromEnv("p", "CONSILIUM_TEST_KEY_A", "CONSILIUM_TEST_KEY_B")
	require.NoError(t, err)
	assert.Equal(t, "secret", key)

	_, err = apiKeyFromEnv("p", "CONSILIUM_TEST_KEY_A")
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
	assert.Contains(t, err.Error(), "CONSILIUM_TEST_KEY_A")
}

type gatewayFunc func(ctx context.Context, model, prompt string) (string, error)

func (f gatewayFunc) Invoke(ctx context.Context, model, prompt string) (string, error) {
	return f(ctx, model, prompt)
}
