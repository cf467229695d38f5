package dispatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminC1989/pptxtojson-go/internal/inherit"
	"github.com/VitaminC1989/pptxtojson-go/internal/model"
	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

func parse(t *testing.T, x string) *xmlutil.Node {
	t.Helper()
	n, err := xmlutil.Parse(strings.NewReader(x))
	require.NoError(t, err)
	return n
}

func baseCtx() Context {
	return Context{LayoutIndex: &inherit.Index{}, MasterIndex: &inherit.Index{}, Source: "slide"}
}

func TestDispatchRoutesShapeAndPicture(t *testing.T) {
	spTree := parse(t, `<spTree>
		<nvGrpSpPr/><grpSpPr/>
		<sp><nvSpPr><cNvPr id="2" name="R"/><cNvSpPr/><nvPr/></nvSpPr>
			<spPr><xfrm><off x="0" y="0"/><ext cx="10" cy="10"/></xfrm><prstGeom prst="rect"/></spPr></sp>
		<pic><nvPicPr><cNvPr id="3" name="Pic"/><cNvPicPr/><nvPr/></nvPicPr>
			<blipFill><blip embed="rId9"/></blipFill>
			<spPr><xfrm><off x="0" y="0"/><ext cx="10" cy="10"/></xfrm></spPr></pic>
	</spTree>`)
	ctx := baseCtx()
	ctx.FetchImage = func(rID string) (string, bool) {
		assert.Equal(t, "rId9", rID)
		return "data:image/png;base64,AA==", true
	}
	els := Dispatch(spTree, ctx)
	require.Len(t, els, 2)
	assert.Equal(t, model.TypeShape, els[0].Type)
	assert.Equal(t, model.TypeImage, els[1].Type)
	assert.Equal(t, "data:image/png;base64,AA==", els[1].Src)
}

func TestDispatchGroupRemapsChildren(t *testing.T) {
	spTree := parse(t, `<spTree>
		<grpSp>
			<nvGrpSpPr><cNvPr id="5" name="G"/></nvGrpSpPr>
			<grpSpPr><xfrm><off x="0" y="0"/><ext cx="2000" cy="1000"/><chOff x="0" y="0"/><chExt cx="1000" cy="500"/></xfrm></grpSpPr>
			<sp><nvSpPr><cNvPr id="6" name="Inner"/><cNvSpPr/><nvPr/></nvSpPr>
				<spPr><xfrm><off x="500" y="250"/><ext cx="100" cy="100"/></xfrm><prstGeom prst="rect"/></spPr></sp>
		</grpSp>
	</spTree>`)
	els := Dispatch(spTree, baseCtx())
	require.Len(t, els, 1)
	grp := els[0]
	assert.Equal(t, model.TypeGroup, grp.Type)
	require.Len(t, grp.Elements, 1)
	child := grp.Elements[0]
	assert.InDelta(t, xmlutil.EMU("1000"), child.Left, 1e-9)
	assert.InDelta(t, xmlutil.EMU("500"), child.Top, 1e-9)
	assert.InDelta(t, xmlutil.EMU("200"), child.Width, 1e-9)
	assert.InDelta(t, xmlutil.EMU("200"), child.Height, 1e-9)
}

func TestDispatchAlternateContentRecursesIntoFallback(t *testing.T) {
	spTree := parse(t, `<spTree><AlternateContent>
		<Choice><sp><nvSpPr><cNvPr id="1" name="nope"/><cNvSpPr/><nvPr/></nvSpPr></sp></Choice>
		<Fallback>
			<sp><nvSpPr><cNvPr id="2" name="R"/><cNvSpPr/><nvPr/></nvSpPr>
				<spPr><xfrm><off x="0" y="0"/><ext cx="1" cy="1"/></xfrm><prstGeom prst="rect"/></spPr></sp>
		</Fallback>
	</AlternateContent></spTree>`)
	els := Dispatch(spTree, baseCtx())
	require.Len(t, els, 1)
	assert.Equal(t, model.TypeGroup, els[0].Type)
	require.Len(t, els[0].Elements, 1)
	assert.Equal(t, "R", els[0].Elements[0].Name)
}

func TestDispatchSkipsUnknownTags(t *testing.T) {
	spTree := parse(t, `<spTree><nvGrpSpPr/><grpSpPr/></spTree>`)
	els := Dispatch(spTree, baseCtx())
	assert.Empty(t, els)
}

func TestDispatchUsesFrameHandlerForGraphicFrame(t *testing.T) {
	spTree := parse(t, `<spTree><graphicFrame/></spTree>`)
	ctx := baseCtx()
	ctx.FrameHandler = func(gf *xmlutil.Node, c Context) (model.Element, bool) {
		return model.Element{Type: model.TypeTable}, true
	}
	els := Dispatch(spTree, ctx)
	require.Len(t, els, 1)
	assert.Equal(t, model.TypeTable, els[0].Type)
}
