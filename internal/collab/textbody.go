package collab

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/VitaminC1989/pptxtojson-go/internal/colorengine"
	"github.com/VitaminC1989/pptxtojson-go/internal/legacytext"
	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// LinkResolver resolves a hyperlink relationship id (an a:hlinkClick/@r:id)
// to its target href, per spec's supplemented Hyperlinks feature. A nil
// LinkResolver (or a lookup miss) simply omits the <a> wrapper rather than
// failing the run.
type LinkResolver func(rID string) (href string, ok bool)

// GenTextBody renders a p:txBody (or a:txBody) into the HTML fragment
// spec.md §3 calls an Element's Content: one <p> per a:p paragraph, one
// <span> per a:r run carrying the run's resolved bold/italic/underline/
// size/color/typeface as inline style, with the paragraph's alignment on
// the <p>. A run's own a:rPr/a:hlinkClick resolves through resolveLink into
// a wrapping <a href>; paragraph- or shape-level hyperlinks are not read.
// layoutTxBody is accepted but not consulted: run styling comes only from
// each run's own a:rPr, so layout defRPr defaults are not applied. A
// paragraph's a:buChar bullet is written as its literal glyph.
func GenTextBody(txBody, layoutTxBody *xmlutil.Node, ctx colorengine.SchemeContext, resolveLink LinkResolver) string {
	if txBody == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range xmlutil.Children(txBody, "p") {
		renderParagraph(&b, p, layoutTxBody, ctx, resolveLink)
	}
	return b.String()
}

func renderParagraph(b *strings.Builder, p, layoutTxBody *xmlutil.Node, ctx colorengine.SchemeContext, resolveLink LinkResolver) {
	pPr := xmlutil.FirstChild(p, "pPr")
	align := xmlutil.Attr(pPr, "algn")
	style := ""
	if align != "" {
		style = fmt.Sprintf(` style="text-align:%s"`, cssAlign(align))
	}
	b.WriteString("<p" + style + ">")

	if buChar := xmlutil.Lookup(pPr, "buChar"); buChar != nil {
		if glyph := xmlutil.Attr(buChar, "char"); glyph != "" {
			b.WriteString(xmlutil.HTMLEscape(glyph) + " ")
		}
	}

	runs := xmlutil.Children(p, "r")
	if len(runs) == 0 {
		if br := xmlutil.FirstChild(p, "br"); br != nil {
			b.WriteString("<br/>")
		}
	}
	for _, r := range runs {
		renderRun(b, r, ctx, resolveLink)
	}
	b.WriteString("</p>")
}

func runHref(rPr *xmlutil.Node, resolveLink LinkResolver) (string, bool) {
	if resolveLink == nil {
		return "", false
	}
	hlink := xmlutil.FirstChild(rPr, "hlinkClick")
	if hlink == nil {
		return "", false
	}
	rID := xmlutil.Attr(hlink, "id")
	if rID == "" {
		return "", false
	}
	return resolveLink(rID)
}

func renderRun(b *strings.Builder, r *xmlutil.Node, ctx colorengine.SchemeContext, resolveLink LinkResolver) {
	t := xmlutil.FirstChild(r, "t")
	if t == nil {
		return
	}
	text := legacytext.Recover([]byte(t.Text))
	rPr := xmlutil.FirstChild(r, "rPr")

	var styles []string
	if sz := xmlutil.Attr(rPr, "sz"); sz != "" {
		if pts, err := strconv.Atoi(sz); err == nil {
			styles = append(styles, fmt.Sprintf("font-size:%dpt", pts/100))
		}
	}
	if xmlutil.Attr(rPr, "b") == "1" {
		styles = append(styles, "font-weight:bold")
	}
	if xmlutil.Attr(rPr, "i") == "1" {
		styles = append(styles, "font-style:italic")
	}
	if u := xmlutil.Attr(rPr, "u"); u != "" && u != "none" {
		styles = append(styles, "text-decoration:underline")
	}
	if solidFill := xmlutil.FirstChild(rPr, "solidFill"); solidFill != nil {
		if c, ok := colorengine.DecodeColor(solidFill, ctx); ok {
			styles = append(styles, "color:"+c.String())
		}
	}
	if latin := xmlutil.FirstChild(rPr, "latin"); latin != nil {
		if face := xmlutil.Attr(latin, "typeface"); face != "" {
			styles = append(styles, fmt.Sprintf("font-family:%q", face))
		}
	}

	var rendered string
	if len(styles) == 0 {
		rendered = xmlutil.HTMLEscape(text)
	} else {
		rendered = fmt.Sprintf(`<span style="%s">%s</span>`, strings.Join(styles, ";"), xmlutil.HTMLEscape(text))
	}
	if href, ok := runHref(rPr, resolveLink); ok {
		rendered = fmt.Sprintf(`<a href="%s">%s</a>`, xmlutil.HTMLEscape(href), rendered)
	}
	b.WriteString(rendered)
}

func cssAlign(algn string) string {
	switch algn {
	case "ctr":
		return "center"
	case "r":
		return "right"
	case "just":
		return "justify"
	default:
		return "left"
	}
}
