package resource

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

func minimalDeck() MemArchive {
	return MemArchive{
		"[Content_Types].xml": []byte(`<?xml version="1.0"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Override PartName="/ppt/slides/slide2.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>
  <Override PartName="/ppt/slides/slide1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>
  <Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>
</Types>`),
		"ppt/presentation.xml": []byte(`<p:presentation xmlns:p="p"><p:sldSz cx="9144000" cy="6858000"/></p:presentation>`),
		"ppt/_rels/presentation.xml.rels": []byte(`<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="theme/theme1.xml"/>
</Relationships>`),
		"ppt/theme/theme1.xml": []byte(`<a:theme xmlns:a="a"><a:themeElements><a:clrScheme>
  <a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>
  <a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>
  <a:accent1><a:srgbClr val="4472C4"/></a:accent1>
</a:clrScheme></a:themeElements></a:theme>`),
		"ppt/slides/slide1.xml": []byte(`<p:sld xmlns:p="p"/>`),
		"ppt/slides/_rels/slide1.xml.rels": []byte(`<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>
</Relationships>`),
		"ppt/slideLayouts/slideLayout1.xml": []byte(`<p:sldLayout xmlns:p="p"/>`),
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels": []byte(`<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>
</Relationships>`),
		"ppt/slideMasters/slideMaster1.xml": []byte(`<p:sldMaster xmlns:p="p"><p:clrMap bg1="lt1" tx1="dk1" accent1="accent1"/></p:sldMaster>`),
		"ppt/slideMasters/_rels/slideMaster1.xml.rels": []byte(`<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>
</Relationships>`),
	}
}

func TestLoadPackageSortsSlidesNumerically(t *testing.T) {
	pkg, err := LoadPackage(minimalDeck())
	require.NoError(t, err)
	assert.Equal(t, []string{"ppt/slides/slide1.xml", "ppt/slides/slide2.xml"}, pkg.SlidePaths)
	assert.InDelta(t, 720, pkg.SlideWidth, 1e-9)
	assert.InDelta(t, 540, pkg.SlideHeight, 1e-9)
	assert.Equal(t, "ppt/theme/theme1.xml", pkg.ThemePath)
}

func TestLoadPackageMissingThemeFails(t *testing.T) {
	ar := minimalDeck()
	delete(ar, "ppt/_rels/presentation.xml.rels")
	ar["ppt/_rels/presentation.xml.rels"] = []byte(`<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`)
	_, err := LoadPackage(ar)
	assert.ErrorIs(t, err, ErrThemeMissing)
}

func TestLoadSlideWalksFullChain(t *testing.T) {
	ar := minimalDeck()
	pkg, err := LoadPackage(ar)
	require.NoError(t, err)

	wc, err := LoadSlide(ar, "ppt/slides/slide1.xml", pkg)
	require.NoError(t, err)
	assert.NotNil(t, wc.SlideLayoutContent)
	assert.NotNil(t, wc.SlideMasterContent)
	assert.NotNil(t, wc.ThemeContent)
	assert.Nil(t, wc.DiagramContent)
}

func TestThemeSchemeAndClrMap(t *testing.T) {
	ar := minimalDeck()
	pkg, err := LoadPackage(ar)
	require.NoError(t, err)
	scheme := ThemeScheme(pkg.ThemeContent)
	assert.Equal(t, "000000", scheme["dk1"])
	assert.Equal(t, "FFFFFF", scheme["lt1"])
	assert.Equal(t, "4472C4", scheme["accent1"])

	wc, err := LoadSlide(ar, "ppt/slides/slide1.xml", pkg)
	require.NoError(t, err)
	clrMap := ClrMap(wc.SlideMasterContent)
	assert.Equal(t, "lt1", clrMap["bg1"])
	assert.Equal(t, "dk1", clrMap["tx1"])
}

func TestResolveClrMapPrecedence(t *testing.T) {
	master := parseRels(t, `<p:sldMaster xmlns:p="p"><p:clrMap bg1="lt1" tx1="dk1"/></p:sldMaster>`)
	noOverride := parseRels(t, `<p:sld xmlns:p="p"/>`)
	layoutOverride := parseRels(t, `<p:sldLayout xmlns:p="p"><p:clrMapOvr><a:overrideClrMapping xmlns:a="a" bg1="dk1" tx1="lt1"/></p:clrMapOvr></p:sldLayout>`)
	slideOverride := parseRels(t, `<p:sld xmlns:p="p"><p:clrMapOvr><a:overrideClrMapping xmlns:a="a" bg1="dk2" tx1="lt2"/></p:clrMapOvr></p:sld>`)
	masterClrMapping := parseRels(t, `<p:sld xmlns:p="p"><p:clrMapOvr><a:masterClrMapping xmlns:a="a"/></p:clrMapOvr></p:sld>`)

	assert.Equal(t, "lt1", ResolveClrMap(noOverride, nil, master)["bg1"])
	assert.Equal(t, "dk1", ResolveClrMap(noOverride, layoutOverride, master)["bg1"])
	assert.Equal(t, "dk2", ResolveClrMap(slideOverride, layoutOverride, master)["bg1"])
	assert.Equal(t, "lt1", ResolveClrMap(masterClrMapping, nil, master)["bg1"])
}

func parseRels(t *testing.T, x string) *xmlutil.Node {
	t.Helper()
	n, err := xmlutil.Parse(strings.NewReader(x))
	require.NoError(t, err)
	return n
}

func TestRelsPathForAndResolveTarget(t *testing.T) {
	assert.Equal(t, "ppt/slides/_rels/slide1.xml.rels", RelsPathFor("ppt/slides/slide1.xml"))
	assert.Equal(t, "ppt/slideLayouts/slideLayout1.xml", ResolveTarget("ppt/slides/slide1.xml", "../slideLayouts/slideLayout1.xml"))
	assert.Equal(t, "ppt/media/image1.png", ResolveTarget("ppt/slides/slide1.xml", "/ppt/media/image1.png"))
}

func TestLoadRelsMissingFileYieldsEmptyMap(t *testing.T) {
	rm, err := LoadRels(MemArchive{}, "ppt/slides/slide9.xml")
	require.NoError(t, err)
	assert.Empty(t, rm)
}
