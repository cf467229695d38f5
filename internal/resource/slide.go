package resource

import (
	"fmt"
	"strings"

	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// WarpContext bundles everything a single slide's resolution needs: its
// own XML tree plus the layout/master/theme trees above it in the
// inheritance chain, and the relationship maps (*ResObj in spec's own
// naming) used to dereference r:embed/r:id media and cross-part links at
// each of those four scopes, plus an optional SmartArt diagram scope.
type WarpContext struct {
	Archive Archive

	SlideContent       *xmlutil.Node
	SlideLayoutContent *xmlutil.Node
	SlideMasterContent *xmlutil.Node
	ThemeContent       *xmlutil.Node
	DiagramContent     *xmlutil.Node

	SlideResObj   RelMap
	LayoutResObj  RelMap
	MasterResObj  RelMap
	ThemeResObj   RelMap
	DiagramResObj RelMap

	TableStyles           *xmlutil.Node
	SlideMasterTextStyles *xmlutil.Node
	DefaultTextStyle      *xmlutil.Node

	// ImageCache memoizes target-path -> data-URL conversions within a
	// single slide's resolution, since a blip is often referenced from
	// both a fill and its preset-geometry's duotone/alpha-mod siblings.
	ImageCache map[string]string
}

// relTypeSlideLayout / relTypeSlideMaster / relTypeDiagramData /
// relTypeDiagramDraw are the relationship-type suffixes (see
// Rel.TypeSuffix) used to walk the inheritance chain from a slide.
const (
	relTypeSlideLayout   = "slideLayout"
	relTypeSlideMaster   = "slideMaster"
	relTypeDiagramData   = "diagramData"
	relTypeDiagramDraw   = "diagramDrawing"
)

func readXML(ar Archive, p string) (*xmlutil.Node, error) {
	data, err := ar.Read(p)
	if err != nil {
		return nil, err
	}
	return xmlutil.Parse(strings.NewReader(string(data)))
}

// LoadSlide resolves slidePath's full slide -> layout -> master -> theme
// chain into a WarpContext, reusing pkg's already-parsed theme (a slide's
// master may point at the same theme part pkg.LoadPackage already read;
// re-reading per slide would be wasted I/O for a multi-hundred-slide deck).
func LoadSlide(ar Archive, slidePath string, pkg *PackageInfo) (*WarpContext, error) {
	slideContent, err := readXML(ar, slidePath)
	if err != nil {
		return nil, fmt.Errorf("resource: read slide %s: %w", slidePath, err)
	}
	slideResObj, err := LoadRels(ar, slidePath)
	if err != nil {
		return nil, fmt.Errorf("resource: load slide rels %s: %w", slidePath, err)
	}

	layoutRel, ok := slideResObj.FindByTypeSuffix(relTypeSlideLayout)
	if !ok {
		return nil, fmt.Errorf("resource: slide %s has no slideLayout relationship", slidePath)
	}
	layoutContent, err := readXML(ar, layoutRel.Target)
	if err != nil {
		return nil, fmt.Errorf("resource: read layout %s: %w", layoutRel.Target, err)
	}
	layoutResObj, err := LoadRels(ar, layoutRel.Target)
	if err != nil {
		return nil, fmt.Errorf("resource: load layout rels %s: %w", layoutRel.Target, err)
	}

	masterRel, ok := layoutResObj.FindByTypeSuffix(relTypeSlideMaster)
	if !ok {
		return nil, fmt.Errorf("resource: layout %s has no slideMaster relationship", layoutRel.Target)
	}
	masterContent, err := readXML(ar, masterRel.Target)
	if err != nil {
		return nil, fmt.Errorf("resource: read master %s: %w", masterRel.Target, err)
	}
	masterResObj, err := LoadRels(ar, masterRel.Target)
	if err != nil {
		return nil, fmt.Errorf("resource: load master rels %s: %w", masterRel.Target, err)
	}

	themeResObj, err := LoadRels(ar, pkg.ThemePath)
	if err != nil {
		return nil, fmt.Errorf("resource: load theme rels %s: %w", pkg.ThemePath, err)
	}

	wc := &WarpContext{
		Archive:               ar,
		SlideContent:          slideContent,
		SlideLayoutContent:    layoutContent,
		SlideMasterContent:    masterContent,
		ThemeContent:          pkg.ThemeContent,
		SlideResObj:           slideResObj,
		LayoutResObj:          layoutResObj,
		MasterResObj:          masterResObj,
		ThemeResObj:           themeResObj,
		SlideMasterTextStyles: xmlutil.FirstChild(masterContent, "txStyles"),
		DefaultTextStyle:      pkg.DefaultTextStyle,
		ImageCache:            make(map[string]string),
	}

	if tsData, err := ar.Read("ppt/tableStyles.xml"); err == nil {
		if ts, err := xmlutil.Parse(strings.NewReader(string(tsData))); err == nil {
			wc.TableStyles = ts
		}
	}

	loadDiagram(ar, slideResObj, wc)

	return wc, nil
}

// loadDiagram follows a SmartArt diagram's two-hop relationship chain
// (slide -> diagramData part -> diagramDrawing part) when the slide has
// one. A deck without SmartArt simply leaves wc.DiagramContent nil; this
// is the non-fatal "reference-dangling" path, not an error.
func loadDiagram(ar Archive, slideResObj RelMap, wc *WarpContext) {
	dataRel, ok := slideResObj.FindByTypeSuffix(relTypeDiagramData)
	if !ok {
		return
	}
	dataResObj, err := LoadRels(ar, dataRel.Target)
	if err != nil {
		return
	}
	wc.DiagramResObj = dataResObj

	drawRel, ok := dataResObj.FindByTypeSuffix(relTypeDiagramDraw)
	if !ok {
		return
	}
	raw, err := ar.Read(drawRel.Target)
	if err != nil {
		return
	}
	// The cached SmartArt drawing part is authored in the dsp: (DrawingML
	// diagram shapes) namespace but uses the same element vocabulary as
	// p:spTree; substituting its prefix lets the ordinary shape dispatcher
	// walk it unmodified.
	substituted := strings.ReplaceAll(strings.ReplaceAll(string(raw), "<dsp:", "<p:"), "</dsp:", "</p:")
	diagramContent, err := xmlutil.Parse(strings.NewReader(substituted))
	if err != nil {
		return
	}
	wc.DiagramContent = diagramContent
}

// ThemeScheme extracts the 12-entry color scheme (dk1/lt1/dk2/lt2/accent1-6/
// hlink/folHlink) from a theme's clrScheme node into the flat name->hex map
// colorengine.SchemeContext expects.
func ThemeScheme(themeContent *xmlutil.Node) map[string]string {
	out := make(map[string]string)
	clrScheme := xmlutil.Lookup(themeContent, "themeElements", "clrScheme")
	if clrScheme == nil {
		return out
	}
	for _, child := range clrScheme.Children {
		if len(child.Children) == 0 {
			continue
		}
		colorNode := child.Children[0]
		hex := xmlutil.Attr(colorNode, "val")
		if hex == "" && colorNode.Name == "sysClr" {
			hex = xmlutil.Attr(colorNode, "lastClr")
		}
		if hex != "" {
			out[child.Name] = hex
		}
	}
	return out
}

// ClrMap extracts a slide master's p:clrMap attribute set (which maps the
// scheme's logical slots — bg1/tx1/bg2/tx2/accentN/hlink/folHlink — onto
// the 12 theme scheme names) into a flat map for colorengine's clrMap
// indirection step.
func ClrMap(masterContent *xmlutil.Node) map[string]string {
	out := make(map[string]string)
	clrMap := xmlutil.FirstChild(masterContent, "clrMap")
	if clrMap == nil {
		return out
	}
	for k, v := range clrMap.Attrs {
		out[k] = v
	}
	return out
}

// overrideClrMapping reads a slide's or slideLayout's p:clrMapOvr, which
// carries either an a:overrideClrMapping (a full replacement clrMap) or an
// a:masterClrMapping (explicitly "use the master's map, unchanged"). It
// returns nil both when content has no clrMapOvr and when the override is
// a masterClrMapping; either way the caller falls through to the next scope.
func overrideClrMapping(content *xmlutil.Node) map[string]string {
	clrMapOvr := xmlutil.FirstChild(content, "clrMapOvr")
	if clrMapOvr == nil {
		return nil
	}
	ovr := xmlutil.FirstChild(clrMapOvr, "overrideClrMapping")
	if ovr == nil {
		return nil
	}
	out := make(map[string]string, len(ovr.Attrs))
	for k, v := range ovr.Attrs {
		out[k] = v
	}
	return out
}

// ResolveClrMap implements spec §4.2's active color map precedence: a
// slide's own clrMapOvr wins, then its layout's, then the master's base
// clrMap (the map colorengine's clrMap indirection step receives is not
// the master's unconditionally).
func ResolveClrMap(slideContent, layoutContent, masterContent *xmlutil.Node) map[string]string {
	if m := overrideClrMapping(slideContent); m != nil {
		return m
	}
	if m := overrideClrMapping(layoutContent); m != nil {
		return m
	}
	return ClrMap(masterContent)
}
