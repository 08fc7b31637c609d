package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderStartsWithDefaults(t *testing.T) {
	l := NewLoader()
	c := l.Catalog()
	assert.Len(t, c.Questions, 5)
	assert.Len(t, c.Interactions, 5)
}

func TestLoadFromFileAppendsTemplates(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalogFile(t, dir, "extra.yaml", `
questions:
  - icon: "❓"
    title: "Trivia round"
    description: "A themed trivia question"
    type: multiple-choice
interactions:
  - icon: "🎥"
    title: "Watch the launch video"
    type: content-engagement
`)

	l := NewLoader()
	require.NoError(t, l.LoadFromFile(path))

	c := l.Catalog()
	assert.Len(t, c.Questions, 6)
	assert.Len(t, c.Interactions, 6)

	tmpl := c.Find("Trivia round")
	require.NotNil(t, tmpl)
	assert.Equal(t, TypeMultipleChoice, tmpl.Type)
	assert.Equal(t, "❓", tmpl.Icon)
}

func TestLoadFromFileRejectsBadEntries(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"missing title", "questions:\n  - type: multiple-choice\n"},
		{"unknown type", "questions:\n  - title: X\n    type: quiz\n"},
		{"wrong section", "questions:\n  - title: X\n    type: external-link\n"},
		{"not yaml", "{{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalogFile(t, dir, "bad.yaml", tt.content)
			l := NewLoader()
			assert.Error(t, l.LoadFromFile(path))
			// A rejected file leaves the catalog untouched
			assert.Len(t, l.Catalog().Questions, 5)
		})
	}
}

func TestLoadFromDirSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "good.yaml", `
questions:
  - title: "Trivia round"
    type: multiple-choice
`)
	writeCatalogFile(t, dir, "broken.yml", "{{{{")
	writeCatalogFile(t, dir, "ignored.txt", "not a catalog")

	l := NewLoader()
	require.NoError(t, l.LoadFromDir(dir))

	c := l.Catalog()
	assert.Len(t, c.Questions, 6)
	assert.NotNil(t, c.Find("Trivia round"))
}

func TestLoadFromDirMissingDirectory(t *testing.T) {
	l := NewLoader()
	require.NoError(t, l.LoadFromDir(filepath.Join(t.TempDir(), "absent")))
	assert.Len(t, l.Catalog().Questions, 5)
}
