package debate

import "strings"

// Prompt builders for the three debate roles. The JSON contracts here must
// stay in sync with the schemas in the spec package.

const specShape = `{
  "project_name": "...",
  "description": "...",
  "version": "1.0.0",
  "architecture_proposal": "...",
  "tasks": [
    {
      "id": "task-1",
      "title": "...",
      "description": "...",
      "technical_requirement": "...",
      "target_path": "...",
      "verification": "...",
      "flexibility": "fixed",
      "dependencies": []
    }
  ]
}`

func proposerPrompt(requirement string) string {
	var b strings.Builder
	b.WriteString("You are the proposer in a two-party technical design debate.\n")
	b.WriteString("Design a complete solution for the following requirement:\n\n")
	b.WriteString(requirement)
	b.WriteString("\n\nCover concrete implementation steps, technology choices, and risk assessment.\n")
	b.WriteString("Respond with a single JSON object of this structure and nothing else:\n")
	b.WriteString(specShape)
	b.WriteString("\nEvery task needs a physical target_path and a checkable verification step. ")
	b.WriteString("Task dependencies reference other task ids in the same list.")
	return b.String()
}

func auditorPrompt(proposalJSON string) string {
	var b strings.Builder
	b.WriteString("You are the auditor in a two-party technical design debate.\n")
	b.WriteString("Review the proposal below and identify at least three distinct technical weaknesses, ")
	b.WriteString("each referencing a concrete part of the proposal, plus suggested remediations.\n\n")
	b.WriteString("Proposal:\n")
	b.WriteString(proposalJSON)
	b.WriteString("\n\nRespond with a single JSON object of this structure and nothing else:\n")
	b.WriteString(`{
  "weaknesses": [
    {"summary": "...", "detail": "..."}
  ],
  "remediations": ["..."]
}`)
	return b.String()
}

func consensusPrompt(requirement, proposalJSON, critiqueJSON string) string {
	var b strings.Builder
	b.WriteString("You are the proposer concluding a two-party technical design debate.\n")
	b.WriteString("Merge your proposal with the auditor's critique into the final project specification. ")
	b.WriteString("Resolve every weakness the auditor raised while keeping the core functionality intact.\n\n")
	b.WriteString("Requirement:\n")
	b.WriteString(requirement)
	b.WriteString("\n\nProposal:\n")
	b.WriteString(proposalJSON)
	b.WriteString("\n\nCritique:\n")
	b.WriteString(critiqueJSON)
	b.WriteString("\n\nRespond with a single JSON object of this structure and nothing else:\n")
	b.WriteString(specShape)
	b.WriteString("\nRules:\n")
	b.WriteString("1. Every task must carry a non-empty target_path and a non-empty verification step.\n")
	b.WriteString("2. Task dependencies must reference task ids present in the list and must not form cycles.\n")
	b.WriteString("3. architecture_proposal describes the overall design: directory layout, technology decisions, core algorithms.\n")
	b.WriteString("4. flexibility is either \"fixed\" or \"flexible\" per task.")
	return b.String()
}

// repairPrompt augments a prompt after unusable output, asking the same role
// for corrected structured output.
func repairPrompt(prompt, reason string) string {
	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\nYour previous reply could not be used: ")
	b.WriteString(reason)
	b.WriteString("\nRespond again with only a valid JSON object matching the required structure. ")
	b.WriteString("Do not include prose, markdown fences, or anything outside the JSON object.")
	return b.String()
}
