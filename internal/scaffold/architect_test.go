package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voletro/consilium/internal/spec"
)

func sampleSpec() spec.ProjectSpec {
	return spec.ProjectSpec{
		ProjectName:          "Link Shortener",
		Description:          "A URL shortening service.",
		ArchitectureProposal: "cmd/ entrypoint, internal/store for persistence.",
		Tasks: []spec.Task{
			{ID: "t1", Title: "Store", Description: "Persist mappings.", TargetPath: "internal/store/store.go", Verification: "go test ./internal/store"},
			{ID: "t2", Title: "Handler", Description: "Redirect endpoint.", TargetPath: "internal/api/handler.go", Verification: "curl follows redirect", Dependencies: []string{"t1"}},
			{ID: "t3", Title: "Runbook", Description: "Ops notes.", TargetPath: "docs/runbook.md", Verification: "reviewed"},
		},
	}
}

func TestMaterialize(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	res, err := Materialize(sampleSpec(), out)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "link-shortener"), res.Root)
	assert.ElementsMatch(t, []string{
		"spec.json", "SPEC.md", "DEVELOPMENT_LOG.md",
		filepath.Join("internal", "store", "store.go"),
		filepath.Join("internal", "api", "handler.go"),
		filepath.Join("docs", "runbook.md"),
	}, res.Created)
	assert.Empty(t, res.Skipped)

	goStub, err := os.ReadFile(filepath.Join(res.Root, "internal", "store", "store.go"))
	require.NoError(t, err)
	assert.Contains(t, string(goStub), "// Task: t1 - Store")
	assert.Contains(t, string(goStub), "package main")

	mdStub, err := os.ReadFile(filepath.Join(res.Root, "docs", "runbook.md"))
	require.NoError(t, err)
	assert.Contains(t, string(mdStub), "# Runbook")

	summary, err := os.ReadFile(filepath.Join(res.Root, "SPEC.md"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "# Link Shortener")
	assert.Contains(t, string(summary), "depends on: t1")
}

func TestMaterialize_NeverOverwrites(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	s := sampleSpec()

	_, err := Materialize(s, out)
	require.NoError(t, err)

	// Simulate work done in a stub, then re-materialize.
	edited := filepath.Join(out, "link-shortener", "internal", "store", "store.go")
	require.NoError(t, os.WriteFile(edited, []byte("package store\n"), 0o644))

	res, err := Materialize(s, out)
	require.NoError(t, err)
	assert.Empty(t, res.Created)
	assert.Len(t, res.Skipped, 6)

	kept, err := os.ReadFile(edited)
	require.NoError(t, err)
	assert.Equal(t, "package store\n", string(kept))
}

func TestMaterialize_RejectsEscapingPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
	}{
		{"parent traversal", "../evil.go"},
		{"nested traversal", "src/../../evil.go"},
		{"absolute", "/etc/passwd"},
		{"dot", "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := sampleSpec()
			s.Tasks[0].TargetPath = tt.path

			_, err := Materialize(s, t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "escapes the project root")
		})
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Link Shortener", "link-shortener"},
		{"  spaced  out  ", "spaced-out"},
		{"Already-Slugged-42", "already-slugged-42"},
		{"!!!", "project"},
		{"", "project"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slug(tt.in), "slug(%q)", tt.in)
	}
}

func TestStubContentByExtension(t *testing.T) {
	t.Parallel()

	base := spec.Task{ID: "t", Title: "Thing", Description: "d", Verification: "v"}

	py := base
	py.TargetPath = "run.py"
	assert.Contains(t, stubContent(py), "raise NotImplementedError")

	sh := base
	sh.TargetPath = "deploy.sh"
	got := stubContent(sh)
	assert.True(t, len(got) > 0 && got[0] == '#')
	assert.Contains(t, got, "set -euo pipefail")

	js := base
	js.TargetPath = "index.ts"
	assert.Contains(t, stubContent(js), "throw new Error")

	other := base
	other.TargetPath = "Makefile"
	assert.Contains(t, stubContent(other), "# Task: t - Thing")
}
