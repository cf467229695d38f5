package fillresolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminC1989/pptxtojson-go/internal/colorengine"
	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

func parse(t *testing.T, x string) *xmlutil.Node {
	t.Helper()
	n, err := xmlutil.Parse(strings.NewReader(x))
	require.NoError(t, err)
	return n
}

func TestFillKind(t *testing.T) {
	assert.Equal(t, KindNone, FillKind(parse(t, `<spPr><noFill/></spPr>`)))
	assert.Equal(t, KindSolid, FillKind(parse(t, `<spPr><solidFill/></spPr>`)))
	assert.Equal(t, KindGradient, FillKind(parse(t, `<spPr><gradFill/></spPr>`)))
	assert.Equal(t, KindPicture, FillKind(parse(t, `<spPr><blipFill/></spPr>`)))
	assert.Equal(t, KindGroup, FillKind(parse(t, `<spPr><grpFill/></spPr>`)))
}

func TestResolveGradientSortedAndRotDefault(t *testing.T) {
	n := parse(t, `<gradFill><gsLst>
		<gs pos="100000"><srgbClr val="000000"/></gs>
		<gs pos="0"><srgbClr val="FFFFFF"/></gs>
	</gsLst><lin ang="5400000"/></gradFill>`)
	g := ResolveGradient(n, colorengine.SchemeContext{})
	require.Len(t, g.Colors, 2)
	assert.Equal(t, "0%", g.Colors[0].Pos)
	assert.Equal(t, "#FFFFFF", g.Colors[0].Color)
	assert.Equal(t, "100%", g.Colors[1].Pos)
	assert.Equal(t, 180, g.Rot)
}

func TestResolveGradientDefaultRot90(t *testing.T) {
	n := parse(t, `<gradFill><gsLst><gs pos="0"><srgbClr val="FFFFFF"/></gs></gsLst></gradFill>`)
	g := ResolveGradient(n, colorengine.SchemeContext{})
	assert.Equal(t, 90, g.Rot)
}

func TestResolveShapeFillPrecedence(t *testing.T) {
	spPr := parse(t, `<spPr><solidFill><srgbClr val="FF0000"/></solidFill></spPr>`)
	assert.Equal(t, "#FF0000", ResolveShapeFill(spPr, nil, colorengine.SchemeContext{}))

	noFillSpPr := parse(t, `<spPr><noFill/></spPr>`)
	assert.Equal(t, "none", ResolveShapeFill(noFillSpPr, nil, colorengine.SchemeContext{}))

	styleRef := parse(t, `<fillRef><schemeClr val="accent1"/></fillRef>`)
	ctx := colorengine.SchemeContext{Scheme: map[string]string{"accent1": "4472C4"}}
	assert.Equal(t, "#4472C4", ResolveShapeFill(nil, styleRef, ctx))
}

func TestResolveImageFillMissingBlip(t *testing.T) {
	n := parse(t, `<blipFill/>`)
	_, ok := ResolveImageFill(n, func(string) (string, bool) { return "", false })
	assert.False(t, ok)
}

func TestResolveImageFillDereferencesEmbed(t *testing.T) {
	n := parse(t, `<blipFill><blip embed="rId3"/></blipFill>`)
	url, ok := ResolveImageFill(n, func(rID string) (string, bool) {
		assert.Equal(t, "rId3", rID)
		return "data:image/png;base64,AA==", true
	})
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,AA==", url)
}

func TestResolveBackgroundFillDefaultWhite(t *testing.T) {
	bg := ResolveBackgroundFill(nil, colorengine.SchemeContext{})
	assert.Equal(t, BgColor, bg.Type)
	assert.Equal(t, "#fff", bg.Value)
}

func TestResolveBackgroundFillPrecedence(t *testing.T) {
	layoutBg := parse(t, `<bg><bgPr><solidFill><srgbClr val="00FF00"/></solidFill></bgPr></bg>`)
	sources := []BgSource{
		{Bg: nil},
		{Bg: layoutBg},
	}
	bg := ResolveBackgroundFill(sources, colorengine.SchemeContext{})
	assert.Equal(t, BgColor, bg.Type)
	assert.Equal(t, "#00FF00", bg.Value)
}
