package pptxtojson

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildZip packages files into an in-memory .pptx-shaped ZIP so Process
// can be exercised against a real archive/zip.Reader rather than a
// MemArchive test double (internal/resource's own tests cover MemArchive
// directly; this test proves the public entry point's zip plumbing).
func buildZip(t *testing.T, files map[string]string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return bytes.NewReader(buf.Bytes())
}

func minimalPPTX() map[string]string {
	return map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Override PartName="/ppt/slides/slide1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>
</Types>`,
		"ppt/presentation.xml": `<p:presentation xmlns:p="p"><p:sldSz cx="9144000" cy="6858000"/></p:presentation>`,
		"ppt/_rels/presentation.xml.rels": `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="theme/theme1.xml"/>
</Relationships>`,
		"ppt/theme/theme1.xml": `<a:theme xmlns:a="a"><a:themeElements><a:clrScheme>
  <a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>
  <a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>
  <a:accent1><a:srgbClr val="4472C4"/></a:accent1>
</a:clrScheme></a:themeElements></a:theme>`,
		"ppt/slides/slide1.xml": `<p:sld xmlns:p="p"><p:cSld><p:spTree/></p:cSld></p:sld>`,
		"ppt/slides/_rels/slide1.xml.rels": `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>
</Relationships>`,
		"ppt/slideLayouts/slideLayout1.xml": `<p:sldLayout xmlns:p="p"><p:cSld><p:spTree/></p:cSld></p:sldLayout>`,
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels": `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>
</Relationships>`,
		"ppt/slideMasters/slideMaster1.xml": `<p:sldMaster xmlns:p="p"><p:cSld><p:spTree/></p:cSld><p:clrMap bg1="lt1" tx1="dk1" accent1="accent1"/></p:sldMaster>`,
		"ppt/slideMasters/_rels/slideMaster1.xml.rels": `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>
</Relationships>`,
	}
}

func TestProcessMinimalDeck(t *testing.T) {
	zr := buildZip(t, minimalPPTX())
	out, err := Process(zr, int64(zr.Len()), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, out.Slides, 1)
	assert.InDelta(t, 720, out.Size.Width, 1e-9)
	assert.InDelta(t, 540, out.Size.Height, 1e-9)
	assert.Empty(t, out.Slides[0].Elements)
	assert.NoError(t, Validate(out))
}

func TestProcessNoSlidesFails(t *testing.T) {
	files := minimalPPTX()
	files["[Content_Types].xml"] = `<?xml version="1.0"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`
	zr := buildZip(t, files)
	_, err := Process(zr, int64(zr.Len()), DefaultOptions())
	assert.ErrorIs(t, err, ErrNoSlides)
}

func TestProcessMissingThemeFails(t *testing.T) {
	files := minimalPPTX()
	files["ppt/_rels/presentation.xml.rels"] = `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`
	zr := buildZip(t, files)
	_, err := Process(zr, int64(zr.Len()), DefaultOptions())
	assert.ErrorIs(t, err, ErrThemeMissing)
}
