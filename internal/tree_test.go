package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templang/tvin/lookup"
)

func TestProcessNesting(t *testing.T) {
	t.Parallel()
	source := "<h1>$Title</h1>" +
		"<% loop $Items %>" +
		"$Name" +
		"<% with $Detail %>$Body<% end_with %>" +
		"<% end_loop %>" +
		"<% with $Footer %>$Copyright<% end_with %>"

	tree, err := Process(source, lookup.Base())
	require.NoError(t, err)

	top := tree.TopLevel()
	require.Len(t, top, 2)
	assert.Equal(t, "Items", top[0].Name())
	assert.Equal(t, LoopBlock, top[0].Kind())
	assert.Equal(t, "Footer", top[1].Name())
	assert.Equal(t, WithBlock, top[1].Kind())

	require.Len(t, top[0].Children(), 1)
	detail := top[0].Children()[0]
	assert.Equal(t, "Detail", detail.Name())
	assert.Equal(t, top[0], detail.Parent())
	assert.Equal(t, tree.Root(), top[0].Parent())

	// every child's span is strictly contained within the parent's span and
	// sibling spans never overlap
	for _, b := range tree.Blocks() {
		ps, pe := b.Span()
		prevEnd := ps
		for _, c := range b.Children() {
			cs, ce := c.Span()
			assert.Greater(t, cs, ps)
			assert.Less(t, ce, pe)
			assert.GreaterOrEqual(t, cs, prevEnd)
			prevEnd = ce
		}
	}
}

func TestProcessBlockIDsAreOffsets(t *testing.T) {
	t.Parallel()
	source := "abc<% loop $Items %>x<% end_loop %>"

	tree, err := Process(source, lookup.Base())
	require.NoError(t, err)

	assert.Equal(t, 0, tree.Root().ID())
	require.Len(t, tree.Blocks(), 1)
	b := tree.Blocks()[0]
	assert.Equal(t, 3, b.ID())

	byID, ok := tree.Block(3)
	require.True(t, ok)
	assert.Equal(t, b, byID)
}

func TestProcessAddressablePlusExcludedEqualsOpens(t *testing.T) {
	t.Parallel()
	source := "<% with $Up %>$Title<% end_with %>" +
		"<% loop $Items %>$Name<% end_loop %>"

	tree, err := Process(source, lookup.Base())
	require.NoError(t, err)

	// two opens scanned: one addressable, one excluded by accessor name
	assert.Len(t, tree.Blocks(), 1)
	assert.Equal(t, 1, tree.Excluded())

	// the excluded block's content stays in the residual top-level text
	assert.Contains(t, tree.Root().OwnContent(), "<% with $Up %>")
	assert.NotContains(t, tree.Root().OwnContent(), "<% loop $Items %>")
}

func TestProcessUnresolvedParent(t *testing.T) {
	t.Parallel()
	source := "<% with $Up %><% loop $Items %>$Name<% end_loop %><% end_with %>"

	_, err := Process(source, lookup.Base())
	require.Error(t, err)

	var unresolved *UnresolvedParentError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "Items", unresolved.Name)
	assert.Equal(t, 0, unresolved.Parent)
	assert.Equal(t, 14, unresolved.Offset)
}

func TestProcessMalformed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		source string
	}{
		{
			name:   "more opens than closes",
			source: "<% loop %>a<% loop %>b<% loop %>c<% end_loop %><% end_loop %>",
		},
		{
			name:   "close before open",
			source: "<% end_loop %><% loop $Items %>",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tree, err := Process(tt.source, lookup.Base())
			require.Error(t, err)
			assert.Nil(t, tree)

			var malformed *MalformedTemplateError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestProcessRoundTrip(t *testing.T) {
	t.Parallel()
	source := "<p>$Intro</p>" +
		"<% loop $Items %>$Name<% loop $Tags %>$Label<% end_loop %><% end_loop %>" +
		"<hr>" +
		"<% with $Author %>$Bio<% end_with %>" +
		"<footer>$Legal</footer>"

	tree, err := Process(source, lookup.Base())
	require.NoError(t, err)

	// reinserting every top-level block's outer content at its original
	// offset reproduces the normalized source exactly
	reconstructed := tree.Root().Raw()
	for _, b := range tree.TopLevel() {
		start, _ := b.Span()
		reconstructed = reconstructed[:start] + b.Raw() + reconstructed[start:]
	}
	assert.Equal(t, tree.Source(), reconstructed)
}

func TestOwnContentMasksChildren(t *testing.T) {
	t.Parallel()
	source := "<% with $A %>$X<% loop $B %>$Y<% end_loop %>$Z<% end_with %>"

	tree, err := Process(source, lookup.Base())
	require.NoError(t, err)

	require.Len(t, tree.TopLevel(), 1)
	outer := tree.TopLevel()[0]
	require.Len(t, outer.Children(), 1)
	inner := outer.Children()[0]

	cs, ce := inner.Span()
	want := "$X" + strings.Repeat(" ", ce-cs) + "$Z"
	assert.Equal(t, want, outer.OwnContent())
	assert.NotContains(t, outer.OwnContent(), "$Y")

	assert.Equal(t, "$Y", inner.OwnContent())
}
