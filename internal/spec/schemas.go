package spec

// JSON schemas for the structured payloads exchanged during a debate. Task
// ids arrive as either strings or integers depending on the model; decoding
// normalizes them to strings.

// ProposalSchema accepts a provisional specification draft: the shape must be
// right, but target paths and verification strings may still be missing.
const ProposalSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "project_name": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "version": {"type": "string"},
    "architecture_proposal": {"type": ["string", "object"]},
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": ["string", "integer"]},
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "technical_requirement": {"type": ["string", "object"]},
          "target_path": {"type": "string"},
          "verification": {"type": ["string", "array"]},
          "flexibility": {"type": "string"},
          "dependencies": {"type": "array", "items": {"type": ["string", "integer"]}}
        },
        "required": ["id", "title"]
      }
    }
  },
  "required": ["project_name", "tasks"]
}`

// CritiqueSchema requires at least three weaknesses; distinctness is checked
// separately after decode.
const CritiqueSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "weaknesses": {
      "type": "array",
      "minItems": 3,
      "items": {
        "type": "object",
        "properties": {
          "summary": {"type": "string", "minLength": 1},
          "detail": {"type": "string"}
        },
        "required": ["summary"]
      }
    },
    "remediations": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "required": ["weaknesses", "remediations"]
}`

// ConsensusSchema is the strict final shape: every task must declare its
// target path and verification fields. Emptiness and dependency resolution
// are checked by Validate, which runs on the decoded value.
const ConsensusSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "project_name": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "version": {"type": "string"},
    "architecture_proposal": {"type": ["string", "object"]},
    "tasks": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": ["string", "integer"]},
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "technical_requirement": {"type": ["string", "object"]},
          "target_path": {"type": "string"},
          "verification": {"type": ["string", "array"]},
          "flexibility": {"type": "string", "enum": ["fixed", "flexible"]},
          "dependencies": {"type": "array", "items": {"type": ["string", "integer"]}}
        },
        "required": ["id", "title", "description", "target_path", "verification"]
      }
    }
  },
  "required": ["project_name", "description", "tasks"]
}`
