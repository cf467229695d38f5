package frame

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminC1989/pptxtojson-go/internal/colorengine"
	"github.com/VitaminC1989/pptxtojson-go/internal/model"
	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

func parse(t *testing.T, x string) *xmlutil.Node {
	t.Helper()
	n, err := xmlutil.Parse(strings.NewReader(x))
	require.NoError(t, err)
	return n
}

func TestBuildTableHeaderAndBanding(t *testing.T) {
	tableStyles := parse(t, `<tableStyleList>
		<tblStyle styleId="s1">
			<firstRow><tcStyle><fill><solidFill><srgbClr val="000080"/></solidFill></fill></tcStyle></firstRow>
			<band2H><tcStyle><fill><solidFill><srgbClr val="D3D3D3"/></solidFill></fill></tcStyle></band2H>
		</tblStyle>
	</tableStyleList>`)

	gf := parse(t, `<graphicFrame>
		<xfrm><off x="0" y="0"/><ext cx="100" cy="100"/></xfrm>
		<graphic><graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">
			<tbl>
				<tblPr firstRow="1" bandRow="1"><tableStyleId>s1</tableStyleId></tblPr>
				<tr><tc><txBody><p><r><t>H1</t></r></p></txBody></tc><tc><txBody><p><r><t>H2</t></r></p></txBody></tc></tr>
				<tr><tc><txBody><p><r><t>A1</t></r></p></txBody></tc><tc><txBody><p><r><t>A2</t></r></p></txBody></tc></tr>
				<tr><tc><txBody><p><r><t>B1</t></r></p></txBody></tc><tc><txBody><p><r><t>B2</t></r></p></txBody></tc></tr>
			</tbl>
		</graphicData></graphic>
	</graphicFrame>`)

	el, ok := Route(gf, Deps{TableStyles: tableStyles, Scheme: colorengine.SchemeContext{}})
	require.True(t, ok)
	assert.Equal(t, model.TypeTable, el.Type)
	data := el.Data.([][]model.TableCell)
	require.Len(t, data, 3)
	assert.Equal(t, "#000080", data[0][0].FillColor)
	assert.Equal(t, "H1", data[0][0].Text)
	assert.Equal(t, "#D3D3D3", data[2][0].FillColor)
	assert.Empty(t, data[1][0].FillColor)
}

func TestBuildTableMergesAndSpans(t *testing.T) {
	gf := parse(t, `<graphicFrame>
		<graphic><graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">
			<tbl><tblPr/>
				<tr><tc gridSpan="2"><txBody><p><r><t>Merged</t></r></p></txBody></tc><tc hMerge="1"><txBody/></tc></tr>
			</tbl>
		</graphicData></graphic>
	</graphicFrame>`)
	el, ok := Route(gf, Deps{})
	require.True(t, ok)
	data := el.Data.([][]model.TableCell)
	assert.Equal(t, 2, data[0][0].ColSpan)
	assert.True(t, data[0][1].HMerge)
}

func TestRouteChart(t *testing.T) {
	chartSpace := parse(t, `<chartSpace><chart><plotArea><barChart>
		<barDir val="col"/>
		<grouping val="clustered"/>
		<ser><cat><strRef><strCache><pt><v>Q1</v></pt></strCache></strRef></cat>
			<val><numRef><numCache><pt><v>10</v></pt></numCache></numRef></val></ser>
	</barChart></plotArea></chart></chartSpace>`)
	gf := parse(t, `<graphicFrame>
		<xfrm><off x="0" y="0"/><ext cx="100" cy="100"/></xfrm>
		<graphic><graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart"><chart id="rId2"/></graphicData></graphic>
	</graphicFrame>`)
	el, ok := Route(gf, Deps{FetchChartPart: func(rID string) (*xmlutil.Node, bool) {
		assert.Equal(t, "rId2", rID)
		return chartSpace, true
	}})
	require.True(t, ok)
	assert.Equal(t, model.TypeChart, el.Type)
	assert.Equal(t, "barChart", el.ChartType)
	assert.Equal(t, "col", el.BarDir)
	assert.Equal(t, "clustered", el.Grouping)
}

func TestRouteDiagram(t *testing.T) {
	diagramContent := parse(t, `<root><drawing><spTree><sp><nvSpPr><cNvPr id="1" name="X"/><cNvSpPr/><nvPr/></nvSpPr></sp></spTree></drawing></root>`)
	gf := parse(t, `<graphicFrame>
		<graphic><graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/diagram"/></graphic>
	</graphicFrame>`)
	called := false
	el, ok := Route(gf, Deps{DiagramContent: diagramContent, Dispatch: func(spTree *xmlutil.Node) []model.Element {
		called = true
		return []model.Element{{Type: model.TypeShape, Name: "X"}}
	}})
	require.True(t, ok)
	assert.True(t, called)
	assert.Equal(t, model.TypeDiagram, el.Type)
	require.Len(t, el.Elements, 1)
}

func TestRouteOLEYieldsNothing(t *testing.T) {
	gf := parse(t, `<graphicFrame><graphic><graphicData uri="http://schemas.openxmlformats.org/presentationml/2006/ole"/></graphic></graphicFrame>`)
	_, ok := Route(gf, Deps{})
	assert.False(t, ok)
}
