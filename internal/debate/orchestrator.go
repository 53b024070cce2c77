// Package debate drives the proposer/auditor exchange and converges it into
// a validated project specification.
//
// One Orchestrator owns one session at a time and holds no shared mutable
// state; callers that want fan-out run one Orchestrator per session.
package debate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voletro/consilium/internal/config"
	"github.com/voletro/consilium/internal/provider"
	"github.com/voletro/consilium/internal/spec"
	"github.com/voletro/consilium/internal/structured"
)

// Error classifications surfaced on degraded results.
const (
	ClassTimeout   = "timeout"
	ClassTransport = "transport_error"
	ClassRefusal   = "provider_refusal"
	ClassMalformed = "malformed_output"
	ClassSchema    = "schema_violation"
	ClassCancelled = "cancelled"
)

type binding struct {
	role          string
	providerID    string
	gateway       provider.Gateway
	model         string
	fallbackModel string
}

// Orchestrator runs the PROPOSING -> AUDITING -> SYNTHESIZING state machine
// for a single debate session. Configuration is copied in at construction
// and read-only afterwards.
type Orchestrator struct {
	cfg      config.Config
	proposer binding
	auditor  binding
}

// New validates the configuration, resolves both role gateways, and returns
// an orchestrator ready to run sessions. Invalid setup fails here with a
// ConfigurationError; nothing about a bad config can be retried away later.
func New(ctx context.Context, cfg config.Config, reg *provider.Registry) (*Orchestrator, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, &provider.ConfigurationError{Reason: err.Error()}
	}

	o := &Orchestrator{cfg: cfg}
	var err error
	if o.proposer, err = bind(ctx, cfg, reg, config.RoleProposer); err != nil {
		return nil, err
	}
	if o.auditor, err = bind(ctx, cfg, reg, config.RoleAuditor); err != nil {
		return nil, err
	}
	return o, nil
}

func bind(ctx context.Context, cfg config.Config, reg *provider.Registry, role string) (binding, error) {
	rc := cfg.Roles[role]
	gw, err := reg.Resolve(ctx, rc.Provider)
	if err != nil {
		return binding{}, fmt.Errorf("bind role %q: %w", role, err)
	}
	fb, _ := cfg.FallbackModel(rc.Provider)
	return binding{
		role:          role,
		providerID:    rc.Provider,
		gateway:       gw,
		model:         rc.Model,
		fallbackModel: fb,
	}, nil
}

// Run conducts one debate for the requirement. It always returns an artifact:
// a converged specification on success, or a degraded placeholder flagged
// with the last error classification when every bounded recovery strategy is
// exhausted or the caller cancels.
func (o *Orchestrator) Run(ctx context.Context, requirement string) Result {
	sess := newSession(requirement)
	log.Info().Str("session", sess.ID).Msg("debate: session started")

	proposal, rawProposal, err := runStep(ctx, o, sess, o.proposer, proposerPrompt(requirement), spec.DecodeProposal)
	if err != nil {
		return o.fail(sess, err)
	}
	sess.Proposal = &proposal
	sess.record(SpeakerProposer, "proposed initial solution", rawProposal)
	proposalJSON := mustJSON(proposal)

	sess.State = StateAuditing
	critique, rawCritique, err := runStep(ctx, o, sess, o.auditor, auditorPrompt(proposalJSON), spec.DecodeCritique)
	if err != nil {
		return o.fail(sess, err)
	}
	sess.Critique = &critique
	sess.record(SpeakerAuditor, "identified technical weaknesses", rawCritique)

	sess.State = StateSynthesizing
	consensus, rawConsensus, err := runStep(ctx, o, sess, o.proposer,
		consensusPrompt(requirement, proposalJSON, mustJSON(critique)), decodeValidatedConsensus)
	if err != nil {
		return o.fail(sess, err)
	}
	sess.record(SpeakerConsensus, "converged on final specification", rawConsensus)

	sess.State = StateDone
	log.Info().Str("session", sess.ID).Int("tasks", len(consensus.Tasks)).Msg("debate: consensus reached")
	return Result{SessionID: sess.ID, Spec: consensus, Transcript: sess.Transcript}
}

// runStep performs one producing state: invoke the role, decode the reply,
// and re-prompt with an augmented instruction on malformed or schema-violating
// output. The repair counter is independent of the transport retry counter
// inside invoke; both start fresh for every state. When the primary model
// exhausts its repair budget the fallback model gets one attempt with the
// augmented prompt before the state fails.
func runStep[T any](ctx context.Context, o *Orchestrator, sess *Session, b binding, basePrompt string, decode func(string) (T, error)) (T, string, error) {
	var zero T
	prompt := basePrompt
	for repair := 0; ; repair++ {
		raw, err := o.invoke(ctx, b, prompt)
		if err != nil {
			return zero, "", err
		}
		v, decodeErr := decode(raw)
		if decodeErr == nil {
			return v, raw, nil
		}
		if !isRepairable(decodeErr) {
			return zero, "", decodeErr
		}
		prompt = repairPrompt(basePrompt, decodeErr.Error())
		if repair >= o.cfg.RepairAttempts {
			return repairOnFallback(ctx, o, sess, b, prompt, decode, decodeErr)
		}
		log.Warn().
			Str("session", sess.ID).
			Str("role", b.role).
			Int("repair", repair+1).
			Err(decodeErr).
			Msg("debate: unusable structured output, re-prompting")
	}
}

// repairOnFallback is the last resort of a producing state: one call to the
// role's fallback model with the augmented prompt. A transport failure here
// surfaces the original decode error, which names the condition that put the
// session on this path.
func repairOnFallback[T any](ctx context.Context, o *Orchestrator, sess *Session, b binding, prompt string, decode func(string) (T, error), primaryErr error) (T, string, error) {
	var zero T
	if b.fallbackModel == "" {
		return zero, "", primaryErr
	}
	if err := ctx.Err(); err != nil {
		return zero, "", err
	}
	log.Info().
		Str("session", sess.ID).
		Str("role", b.role).
		Str("model", b.fallbackModel).
		Msg("debate: repair budget exhausted, trying fallback model")
	raw, err := o.call(ctx, b, b.fallbackModel, prompt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return zero, "", err
		}
		return zero, "", primaryErr
	}
	v, decodeErr := decode(raw)
	if decodeErr != nil {
		return zero, "", decodeErr
	}
	return v, raw, nil
}

func isRepairable(err error) bool {
	return errors.Is(err, structured.ErrMalformedOutput) || structured.IsSchemaError(err)
}

// invoke applies the transport retry policy: exhaust the primary model, then
// try the provider's fallback model once. No retries survive a caller cancel.
func (o *Orchestrator) invoke(ctx context.Context, b binding, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= o.cfg.RetryAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		out, err := o.call(ctx, b, b.model, prompt)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		lastErr = err
		log.Warn().
			Str("role", b.role).
			Str("model", b.model).
			Int("attempt", attempt).
			Int("max", o.cfg.RetryAttempts).
			Err(err).
			Msg("debate: provider call failed")
	}

	if b.fallbackModel != "" {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		log.Info().Str("role", b.role).Str("model", b.fallbackModel).Msg("debate: trying fallback model")
		out, err := o.call(ctx, b, b.fallbackModel, prompt)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		lastErr = err
	}

	return "", lastErr
}

func (o *Orchestrator) call(ctx context.Context, b binding, model, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(o.cfg.APITimeout)*time.Second)
	defer cancel()
	return b.gateway.Invoke(callCtx, model, prompt)
}

func (o *Orchestrator) fail(sess *Session, err error) Result {
	sess.State = StateFailed
	class := classification(err)
	sess.LastError = class
	log.Error().Str("session", sess.ID).Str("class", class).Err(err).Msg("debate: session failed, emitting degraded specification")
	return Result{
		SessionID:  sess.ID,
		Spec:       placeholderSpec(sess.Requirement),
		Degraded:   true,
		LastError:  class,
		Transcript: sess.Transcript,
	}
}

func classification(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return ClassCancelled
	case errors.Is(err, structured.ErrMalformedOutput):
		return ClassMalformed
	case structured.IsSchemaError(err):
		return ClassSchema
	}
	if kind, ok := provider.KindOf(err); ok {
		switch kind {
		case provider.KindTimeout:
			return ClassTimeout
		case provider.KindRefusal:
			return ClassRefusal
		}
	}
	return ClassTransport
}

func decodeValidatedConsensus(raw string) (spec.ProjectSpec, error) {
	s, err := spec.DecodeConsensus(raw)
	if err != nil {
		return spec.ProjectSpec{}, err
	}
	if violations := spec.Validate(s); len(violations) > 0 {
		msgs := make([]string, 0, len(violations))
		for _, v := range violations {
			msgs = append(msgs, v.String())
		}
		return spec.ProjectSpec{}, &structured.SchemaError{Violations: msgs}
	}
	return s, nil
}

// placeholderSpec is the degraded artifact: a minimal valid specification
// that tells the user to finish the job by hand. Strictly better than
// returning nothing under persistent provider failure.
func placeholderSpec(requirement string) spec.ProjectSpec {
	return spec.ProjectSpec{
		ProjectName: "unnamed-project",
		Description: requirement,
		Version:     "0.0.0",
		Tasks: []spec.Task{
			{
				ID:           "task-1",
				Title:        "Write the project specification manually",
				Description:  "The debate could not converge; capture the requirement as a specification by hand.",
				TargetPath:   "SPEC.md",
				Verification: "SPEC.md exists and describes the requirement",
				Flexibility:  spec.FlexibilityFlexible,
			},
		},
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func mustJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}
