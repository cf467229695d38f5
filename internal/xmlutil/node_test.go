package xmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndLookup(t *testing.T) {
	doc := `<p:sp xmlns:p="ns"><p:spPr><a:xfrm rot="5400000"><a:off x="914400" y="914400"/><a:ext cx="914400" cy="457200"/></a:xfrm></p:spPr></p:sp>`
	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "sp", root.Name)

	off := Lookup(root, "spPr", "xfrm", "off")
	require.NotNil(t, off)
	assert.Equal(t, "914400", Attr(off, "x"))

	assert.Nil(t, Lookup(root, "spPr", "nope", "off"))
	assert.Equal(t, "", Attr(nil, "x"))
}

func TestChildrenToleratesSingleOrMany(t *testing.T) {
	doc := `<root><item v="1"/><item v="2"/><other/></root>`
	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	items := Children(root, "item")
	require.Len(t, items, 2)
	assert.Equal(t, "1", Attr(items[0], "v"))
	assert.Equal(t, "2", Attr(items[1], "v"))

	single := Children(root, "other")
	require.Len(t, single, 1)
}

func TestHasChild(t *testing.T) {
	doc := `<spPr><noFill/></spPr>`
	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.True(t, HasChild(root, "noFill"))
	assert.False(t, HasChild(root, "solidFill"))
}
