// Package scaffold materializes a validated project specification as a
// directory tree of stub files and task metadata. It is a consumer of the
// debate output, not part of the debate engine.
package scaffold

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voletro/consilium/internal/spec"
)

// Result reports what materialization touched. Existing files are never
// overwritten; they land in Skipped.
type Result struct {
	Root    string
	Created []string
	Skipped []string
}

// Materialize writes the project skeleton for s under outputRoot: one stub
// file per task target path, the machine-readable spec.json, a SPEC.md
// summary, and a development log seed.
func Materialize(s spec.ProjectSpec, outputRoot string) (Result, error) {
	root := filepath.Join(outputRoot, slug(s.ProjectName))
	res := Result{Root: root}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return res, fmt.Errorf("create project root: %w", err)
	}

	specJSON, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return res, fmt.Errorf("marshal spec: %w", err)
	}
	if err := writeOnce(&res, root, "spec.json", append(specJSON, '\n')); err != nil {
		return res, err
	}
	if err := writeOnce(&res, root, "SPEC.md", []byte(summaryMarkdown(s))); err != nil {
		return res, err
	}
	if err := writeOnce(&res, root, "DEVELOPMENT_LOG.md", []byte(devLogSeed(s))); err != nil {
		return res, err
	}

	for _, t := range s.Tasks {
		rel := filepath.Clean(t.TargetPath)
		if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
			return res, fmt.Errorf("task %s: target path %q escapes the project root", t.ID, t.TargetPath)
		}
		if dir := filepath.Dir(rel); dir != "." {
			if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
				return res, fmt.Errorf("create dir for task %s: %w", t.ID, err)
			}
		}
		if err := writeOnce(&res, root, rel, []byte(stubContent(t))); err != nil {
			return res, err
		}
	}

	log.Info().Str("root", root).Int("created", len(res.Created)).Int("skipped", len(res.Skipped)).Msg("scaffold: project materialized")
	return res, nil
}

func writeOnce(res *Result, root, rel string, content []byte) error {
	path := filepath.Join(root, rel)
	if _, err := os.Stat(path); err == nil {
		res.Skipped = append(res.Skipped, rel)
		return nil
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	res.Created = append(res.Created, rel)
	return nil
}

// stubContent renders a placeholder for the task's target file, with the task
// metadata in a comment style matching the file extension.
func stubContent(t spec.Task) string {
	header := []string{
		"Task: " + t.ID + " - " + t.Title,
		"Description: " + t.Description,
	}
	if t.TechnicalRequirement != "" {
		header = append(header, "Technical requirement: "+t.TechnicalRequirement)
	}
	header = append(header, "Verification: "+t.Verification)

	switch strings.ToLower(filepath.Ext(t.TargetPath)) {
	case ".go":
		return comment(header, "// ") + "\npackage main\n\n// TODO: implement " + t.Title + "\n"
	case ".py":
		return comment(header, "# ") + "\n\ndef main():\n    raise NotImplementedError(\"" + t.Title + "\")\n"
	case ".js", ".ts":
		return comment(header, "// ") + "\n\nthrow new Error(" + fmt.Sprintf("%q", t.Title+" is not implemented") + ");\n"
	case ".sh":
		return "#!/usr/bin/env bash\nset -euo pipefail\n" + comment(header, "# ") + "\necho \"not implemented: " + t.Title + "\"\nexit 1\n"
	case ".md":
		return "# " + t.Title + "\n\n" + t.Description + "\n\n> Verification: " + t.Verification + "\n"
	case ".json":
		meta, _ := json.MarshalIndent(map[string]string{
			"task":         t.ID,
			"title":        t.Title,
			"verification": t.Verification,
		}, "", "  ")
		return string(meta) + "\n"
	case ".yml", ".yaml":
		return comment(header, "# ") + "\n"
	default:
		return comment(header, "# ") + "\n"
	}
}

func comment(lines []string, prefix string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(prefix)
		b.WriteString(l)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func summaryMarkdown(s spec.ProjectSpec) string {
	var b strings.Builder
	b.WriteString("# " + s.ProjectName + "\n\n")
	b.WriteString(s.Description + "\n\n")
	if s.ArchitectureProposal != "" {
		b.WriteString("## Architecture\n\n" + s.ArchitectureProposal + "\n\n")
	}
	b.WriteString("## Tasks\n\n")
	for _, t := range s.Tasks {
		b.WriteString(fmt.Sprintf("- **%s** `%s`: %s\n", t.ID, t.TargetPath, t.Title))
		if len(t.Dependencies) > 0 {
			b.WriteString("  - depends on: " + strings.Join(t.Dependencies, ", ") + "\n")
		}
		b.WriteString("  - verify: " + t.Verification + "\n")
	}
	return b.String()
}

func devLogSeed(s spec.ProjectSpec) string {
	var b strings.Builder
	b.WriteString("# Development log\n\n")
	b.WriteString("Generated " + time.Now().UTC().Format(time.RFC3339) + " for " + s.ProjectName + ".\n\n")
	for _, t := range s.Tasks {
		b.WriteString(fmt.Sprintf("- [ ] %s: %s (%s)\n", t.ID, t.Title, t.TargetPath))
	}
	return b.String()
}

// slug turns a project name into a directory name.
func slug(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "project"
	}
	return out
}
