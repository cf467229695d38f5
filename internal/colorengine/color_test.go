package colorengine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

func parseColorNode(t *testing.T, xml string) *xmlutil.Node {
	t.Helper()
	n, err := xmlutil.Parse(strings.NewReader(xml))
	require.NoError(t, err)
	return n
}

func TestDecodeColorSrgb(t *testing.T) {
	n := parseColorNode(t, `<solidFill><srgbClr val="FF0000"/></solidFill>`)
	c, ok := DecodeColor(n, SchemeContext{})
	require.True(t, ok)
	assert.Equal(t, "#FF0000", c.String())
}

func TestDecodeColorAlphaRoundTrips6Digit(t *testing.T) {
	n := parseColorNode(t, `<solidFill><srgbClr val="112233"><alpha val="100000"/></srgbClr></solidFill>`)
	c, ok := DecodeColor(n, SchemeContext{})
	require.True(t, ok)
	assert.Equal(t, "#112233FF", c.String())
}

func TestDecodeColorLumModLumOffIdentity(t *testing.T) {
	n := parseColorNode(t, `<solidFill><srgbClr val="4472C4"><lumMod val="100000"/><lumOff val="0"/></srgbClr></solidFill>`)
	c, ok := DecodeColor(n, SchemeContext{})
	require.True(t, ok)
	assert.Equal(t, "#4472C4", c.String())
}

func TestDecodeColorLumModLumOff(t *testing.T) {
	n := parseColorNode(t, `<solidFill><schemeClr val="accent1"><lumMod val="75000"/><lumOff val="25000"/></schemeClr></solidFill>`)
	ctx := SchemeContext{Scheme: map[string]string{"accent1": "4472C4"}}
	c, ok := DecodeColor(n, ctx)
	require.True(t, ok)
	r, g, b := rgbFromHex(c.Hex)
	_, _, l := rgbToHSL(r, g, b)
	_, _, baseL := rgbToHSL(rgbFromHex("4472C4"))
	assert.InDelta(t, clamp01(baseL*0.75+0.25), l, 0.01)
}

func TestTintYieldsWhiteShadeYieldsBlack(t *testing.T) {
	n := parseColorNode(t, `<solidFill><srgbClr val="336699"><tint val="100000"/></srgbClr></solidFill>`)
	c, ok := DecodeColor(n, SchemeContext{})
	require.True(t, ok)
	assert.Equal(t, "#FFFFFF", c.String())

	n2 := parseColorNode(t, `<solidFill><srgbClr val="336699"><shade val="0"/></srgbClr></solidFill>`)
	c2, ok := DecodeColor(n2, SchemeContext{})
	require.True(t, ok)
	assert.Equal(t, "#000000", c2.String())
}

func TestResolveSchemeClrMapIndirectionAndPhClr(t *testing.T) {
	ctx := SchemeContext{
		Scheme: map[string]string{"lt1": "FFFFFF", "dk1": "000000"},
		ClrMap: map[string]string{"bg1": "lt1"},
		PhClr:  "AABBCC",
	}
	assert.Equal(t, "FFFFFF", ResolveScheme("bg1", ctx))
	assert.Equal(t, "AABBCC", ResolveScheme("phClr", ctx))
}

func TestDecodeColorMissingNode(t *testing.T) {
	_, ok := DecodeColor(nil, SchemeContext{})
	assert.False(t, ok)
}

func TestPresetColor(t *testing.T) {
	hex, ok := PresetColor("navy")
	require.True(t, ok)
	assert.Equal(t, "000080", hex)

	_, ok = PresetColor("not-a-color")
	assert.False(t, ok)
}
