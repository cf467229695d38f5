package resource

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// ErrThemeMissing is returned when the package's presentation part carries
// no theme relationship — a malformed-package condition spec §7 treats as
// fatal, since every downstream color resolution depends on a theme.
var ErrThemeMissing = errors.New("resource: presentation.xml.rels has no theme relationship")

const contentTypesPath = "[Content_Types].xml"
const presentationPath = "ppt/presentation.xml"

var slideNumberPattern = regexp.MustCompile(`(\d+)\.xml$`)

// PackageInfo is everything the resolution pipeline reads once per
// presentation, before descending into any individual slide.
type PackageInfo struct {
	SlidePaths       []string
	SlideLayoutPaths []string
	SlideWidth       float64 // points
	SlideHeight      float64 // points
	DefaultTextStyle *xmlutil.Node
	ThemePath        string
	ThemeContent     *xmlutil.Node
	PresentationRels RelMap
}

// numericSuffix extracts the trailing slideN/slideLayoutN ordinal so
// slides sort by their authored order rather than by relationship id or
// lexicographic filename order (spec invariant: "slide order follows the
// numeric filename suffix, not rels document order").
func numericSuffix(p string) int {
	m := slideNumberPattern.FindStringSubmatch(p)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

func sortByNumericSuffix(paths []string) {
	sort.Slice(paths, func(i, j int) bool { return numericSuffix(paths[i]) < numericSuffix(paths[j]) })
}

// LoadPackage reads [Content_Types].xml, ppt/presentation.xml, and the
// presentation's theme relationship, assembling the context every slide
// load needs.
func LoadPackage(ar Archive) (*PackageInfo, error) {
	ctData, err := ar.Read(contentTypesPath)
	if err != nil {
		return nil, fmt.Errorf("resource: read %s: %w", contentTypesPath, err)
	}
	ctRoot, err := xmlutil.Parse(strings.NewReader(string(ctData)))
	if err != nil {
		return nil, fmt.Errorf("resource: parse %s: %w", contentTypesPath, err)
	}

	info := &PackageInfo{}
	for _, override := range xmlutil.Children(ctRoot, "Override") {
		ct := xmlutil.Attr(override, "ContentType")
		partName := strings.TrimPrefix(xmlutil.Attr(override, "PartName"), "/")
		switch {
		case strings.HasSuffix(ct, "presentationml.slide+xml"):
			info.SlidePaths = append(info.SlidePaths, partName)
		case strings.HasSuffix(ct, "presentationml.slideLayout+xml"):
			info.SlideLayoutPaths = append(info.SlideLayoutPaths, partName)
		}
	}
	sortByNumericSuffix(info.SlidePaths)
	sortByNumericSuffix(info.SlideLayoutPaths)

	presData, err := ar.Read(presentationPath)
	if err != nil {
		return nil, fmt.Errorf("resource: read %s: %w", presentationPath, err)
	}
	presRoot, err := xmlutil.Parse(strings.NewReader(string(presData)))
	if err != nil {
		return nil, fmt.Errorf("resource: parse %s: %w", presentationPath, err)
	}
	if sldSz := xmlutil.FirstChild(presRoot, "sldSz"); sldSz != nil {
		info.SlideWidth = xmlutil.EMU(xmlutil.Attr(sldSz, "cx"))
		info.SlideHeight = xmlutil.EMU(xmlutil.Attr(sldSz, "cy"))
	} else {
		// spec's supplemented default: a standard 16:9 widescreen slide
		// (12192000 x 6858000 EMU, the default PowerPoint ships with) when
		// p:sldSz is absent.
		info.SlideWidth = xmlutil.EMUInt(12192000)
		info.SlideHeight = xmlutil.EMUInt(6858000)
	}
	info.DefaultTextStyle = xmlutil.FirstChild(presRoot, "defaultTextStyle")

	presRels, err := LoadRels(ar, presentationPath)
	if err != nil {
		return nil, fmt.Errorf("resource: load presentation rels: %w", err)
	}
	info.PresentationRels = presRels

	themeRel, ok := presRels.FindByTypeSuffix("theme")
	if !ok {
		return nil, ErrThemeMissing
	}
	info.ThemePath = themeRel.Target
	themeData, err := ar.Read(info.ThemePath)
	if err != nil {
		return nil, fmt.Errorf("resource: read theme %s: %w", info.ThemePath, err)
	}
	themeRoot, err := xmlutil.Parse(strings.NewReader(string(themeData)))
	if err != nil {
		return nil, fmt.Errorf("resource: parse theme %s: %w", info.ThemePath, err)
	}
	info.ThemeContent = themeRoot
	return info, nil
}
