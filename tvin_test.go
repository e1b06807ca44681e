package tvin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templang/tvin/lookup"
)

func TestProcessCanonicalExample(t *testing.T) {
	t.Parallel()
	source := `<div>
	<h2>$Headline</h2>
	<% loop $Items %>
		<p>$Title</p>
	<% end_loop %>
	<% with $FeaturedProduct %>
		$Description
	<% end_with %>
</div>`

	tree, err := Process(source, lookup.Base())
	require.NoError(t, err)

	assert.Equal(t, "Text", tree.Root().Variables()["Headline"])

	top := tree.TopLevel()
	require.Len(t, top, 2)
	assert.Equal(t, "Items", top[0].Name())
	assert.Equal(t, "FeaturedProduct", top[1].Name())
	assert.Equal(t, "Text", top[1].Variables()["Description"])
}

func TestProcessNilContextUsesBase(t *testing.T) {
	t.Parallel()
	tree, err := Process("$StartDate", nil)
	require.NoError(t, err)
	assert.Equal(t, "Date", tree.Root().Variables()["StartDate"])
}

func TestNewWithConfig(t *testing.T) {
	t.Parallel()
	tmpDir, err := os.MkdirTemp("", "tvin-test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	cfgPath := filepath.Join(tmpDir, ".tvin.yaml")
	cfg := `name: tvin
preset: page
globalAccessors:
  - Basket
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	engine, err := New(cfgPath)
	require.NoError(t, err)

	// the configured accessor never becomes a variable
	tree, err := engine.RunSource([]byte("$Basket $Headline"))
	require.NoError(t, err)
	assert.NotContains(t, tree.Root().Variables(), "Basket")
	assert.Contains(t, tree.Root().Variables(), "Headline")
}

func TestNewBadConfigPath(t *testing.T) {
	t.Parallel()
	_, err := New("no-such-config.yaml")
	assert.Error(t, err)
}
