// Package provider defines the gateway contract for AI providers and the
// concrete adapters consilium ships with.
//
// A Gateway is a single capability: given a model name and a prompt, return
// raw text or fail with a classified error. Retry and fallback policy live in
// the debate orchestrator, never here, so any implementation of Gateway is
// substitutable, including the deterministic stubs used in tests.
package provider

import (
	"context"
	"errors"
	"fmt"
)

// Gateway is the uniform call contract consumed by the orchestrator.
type Gateway interface {
	// Invoke sends prompt to the given model and returns the raw text reply.
	// Failures carry a Kind via *Error; context cancellation passes through
	// unclassified so callers can distinguish caller-initiated aborts.
	Invoke(ctx context.Context, model, prompt string) (string, error)
}

// Kind classifies a gateway failure.
type Kind string

const (
	// KindTimeout marks a call abandoned at its deadline.
	KindTimeout Kind = "timeout"
	// KindTransport marks network or authentication failures.
	KindTransport Kind = "transport_error"
	// KindRefusal marks an explicit empty or blocked response.
	KindRefusal Kind = "provider_refusal"
)

// Error is a classified gateway failure.
type Error struct {
	Kind     Kind
	Provider string
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return "", false
}

// classify wraps a transport-level error with a Kind. Caller-initiated
// cancellation is returned untouched.
func classify(providerID string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	kind := KindTransport
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &Error{Kind: kind, Provider: providerID, Err: err}
}

// refusal builds a KindRefusal error for an empty or blocked reply.
func refusal(providerID, detail string) error {
	return &Error{Kind: KindRefusal, Provider: providerID, Err: errors.New(detail)}
}

// ConfigurationError marks invalid provider setup. It is fatal at session
// construction time and never retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// IsConfigurationError reports whether err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
