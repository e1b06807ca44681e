package lookup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextLookups(t *testing.T) {
	t.Parallel()
	ctx := New(Options{
		GlobalAccessors:   []string{"Up", "Top"},
		FieldMethods:      map[string]string{"Nice": "Date"},
		CollectionMethods: []string{"Count"},
		Rules:             []Rule{{Pattern: "Image", Type: "Image"}},
		DefaultType:       "Text",
		KnownTypes:        []string{"Member"},
	})

	// accessor matching is case-insensitive
	assert.True(t, ctx.IsGlobal("up"))
	assert.True(t, ctx.IsGlobal("UP"))
	assert.False(t, ctx.IsGlobal("Items"))

	typ, ok := ctx.FieldMethodType("NICE")
	require.True(t, ok)
	assert.Equal(t, "Date", typ)

	assert.True(t, ctx.IsCollectionMethod("count"))
	assert.False(t, ctx.IsCollectionMethod("title"))

	assert.True(t, ctx.IsKnownType("member"))
	assert.False(t, ctx.IsKnownType("Category"))

	assert.Equal(t, "Text", ctx.DefaultType())
	require.Len(t, ctx.Rules(), 1)
}

func TestContextKnownTypeFunc(t *testing.T) {
	t.Parallel()
	catalog := map[string]bool{"Product": true}
	ctx := New(Options{
		KnownTypeFunc: func(name string) bool { return catalog[name] },
	})

	assert.True(t, ctx.IsKnownType("Product"))
	assert.False(t, ctx.IsKnownType("Widget"))
}

func TestWithGlobalsDoesNotMutateBase(t *testing.T) {
	t.Parallel()
	base := Base()
	page := base.WithGlobals("Menu", "Breadcrumbs")

	assert.True(t, page.IsGlobal("menu"))
	assert.False(t, base.IsGlobal("menu"))

	// base tables carried over
	assert.True(t, page.IsGlobal("Up"))
	assert.Equal(t, base.DefaultType(), page.DefaultType())
}

func TestPresets(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		ctx     *Context
		global  string
		missing string
	}{
		{"page adds navigation accessors", Page(), "Breadcrumbs", "Subject"},
		{"message adds header accessors", Message(), "Subject", "Breadcrumbs"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, tt.ctx.IsGlobal(tt.global))
			assert.False(t, tt.ctx.IsGlobal(tt.missing))
			// every preset keeps the base accessors
			assert.True(t, tt.ctx.IsGlobal("Up"))
		})
	}
}

func TestConfigContext(t *testing.T) {
	t.Parallel()
	cfg := Config{
		Preset:          "page",
		GlobalAccessors: []string{"Basket"},
		FieldMethods:    map[string]string{"Thumb": "Image"},
		Rules:           []Rule{{Pattern: "Headline", Type: "Varchar"}},
		DefaultType:     "String",
		KnownTypes:      []string{"Product"},
	}

	ctx, err := cfg.Context()
	require.NoError(t, err)

	assert.True(t, ctx.IsGlobal("basket"))
	assert.True(t, ctx.IsGlobal("breadcrumbs"))

	typ, ok := ctx.FieldMethodType("thumb")
	require.True(t, ok)
	assert.Equal(t, "Image", typ)

	// user rules are prepended so they win over the preset table
	assert.Equal(t, Rule{Pattern: "Headline", Type: "Varchar"}, ctx.Rules()[0])
	assert.Equal(t, "String", ctx.DefaultType())
	assert.True(t, ctx.IsKnownType("Product"))
}

func TestConfigUnknownPreset(t *testing.T) {
	t.Parallel()
	cfg := Config{Preset: "bogus"}

	_, err := cfg.Context()
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	tmpDir, err := os.MkdirTemp("", "lookup-test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, ".tvin.yaml")
	content := `name: tvin
preset: message
globalAccessors:
  - UnsubscribeLink
rules:
  - pattern: Avatar
    type: Image
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "message", cfg.Preset)

	ctx, err := cfg.Context()
	require.NoError(t, err)
	assert.True(t, ctx.IsGlobal("unsubscribelink"))
	assert.True(t, ctx.IsGlobal("subject"))
}

func TestSnapshotDeterministic(t *testing.T) {
	t.Parallel()
	snap := Base().Snapshot("base")

	assert.Equal(t, "base", snap.Preset)
	assert.Contains(t, snap.GlobalAccessors, "up")
	assert.NotEmpty(t, snap.Rules)
	assert.Equal(t, snap, Base().Snapshot("base"))
}
