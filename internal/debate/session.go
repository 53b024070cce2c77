package debate

import (
	"github.com/google/uuid"

	"github.com/voletro/consilium/internal/spec"
)

// State names the phase a debate session is in.
type State string

// Session states. FAILED is terminal and reachable from every producing
// state; DONE is only reachable through a validated consensus.
const (
	StateProposing    State = "PROPOSING"
	StateAuditing     State = "AUDITING"
	StateSynthesizing State = "SYNTHESIZING"
	StateDone         State = "DONE"
	StateFailed       State = "FAILED"
)

// Speakers recorded in the transcript.
const (
	SpeakerProposer  = "proposer"
	SpeakerAuditor   = "auditor"
	SpeakerConsensus = "consensus"
)

// Entry is one transcript record of a debate session.
type Entry struct {
	Speaker string `json:"speaker"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// Session is the ephemeral state tying one requirement to its proposal,
// critique, and consensus. It lives for exactly one Run call and is owned by
// a single orchestrator; it is never shared or persisted by the core.
type Session struct {
	ID          string
	Requirement string
	State       State
	Proposal    *spec.ProjectSpec
	Critique    *spec.Critique
	Transcript  []Entry
	LastError   string
}

func newSession(requirement string) *Session {
	return &Session{
		ID:          uuid.NewString(),
		Requirement: requirement,
		State:       StateProposing,
	}
}

func (s *Session) record(speaker, summary, content string) {
	s.Transcript = append(s.Transcript, Entry{Speaker: speaker, Summary: summary, Content: content})
}

// Result is the orchestrator's sole output artifact. Spec is always populated:
// a converged consensus specification when Degraded is false, a flagged
// placeholder carrying the last error classification when true.
type Result struct {
	SessionID  string           `json:"session_id"`
	Spec       spec.ProjectSpec `json:"spec"`
	Degraded   bool             `json:"degraded"`
	LastError  string           `json:"last_error,omitempty"`
	Transcript []Entry          `json:"transcript"`
}
