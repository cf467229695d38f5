// Package colorengine implements the OOXML color algebra: decoding a
// <a:...Clr> subtree to an RGB(A) value, then applying the fixed
// modulation chain (alpha, hueMod, lumMod, lumOff, satMod, shade, tint) in
// the order mandated by spec.md §4.2. The chain does not commute, so
// callers must use DecodeColor (which already applies modifiers in the
// correct order) rather than calling the Apply* helpers ad hoc.
package colorengine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// Color is an RGB or RGBA color produced by the engine. Hex is always
// uppercase, 6 or 8 characters, without a leading '#'.
type Color struct {
	Hex      string
	HasAlpha bool
}

// String renders the semantic "#RRGGBB"/"#RRGGBBAA" form required by
// spec.md invariant (c).
func (c Color) String() string {
	if c.Hex == "" {
		return ""
	}
	return "#" + c.Hex
}

// rgbFromHex parses a 6-digit hex string (leading '#' optional) to 0..255
// channel values. Malformed input decodes to black, mirroring the
// tolerant-fallback stance the teacher's NewColor takes.
func rgbFromHex(s string) (r, g, b uint8) {
	s = strings.TrimPrefix(strings.ToUpper(s), "#")
	if len(s) < 6 {
		return 0, 0, 0
	}
	rv, _ := strconv.ParseUint(s[0:2], 16, 8)
	gv, _ := strconv.ParseUint(s[2:4], 16, 8)
	bv, _ := strconv.ParseUint(s[4:6], 16, 8)
	return uint8(rv), uint8(gv), uint8(bv)
}

func alphaFromHex(s string) (uint8, bool) {
	s = strings.TrimPrefix(strings.ToUpper(s), "#")
	if len(s) < 8 {
		return 0, false
	}
	av, err := strconv.ParseUint(s[6:8], 16, 8)
	if err != nil {
		return 0, false
	}
	return uint8(av), true
}

func hexFromRGB(r, g, b uint8) string {
	return fmt.Sprintf("%02X%02X%02X", r, g, b)
}

// rgbToHSL converts 0..255 RGB channels to HSL in [0,1] ranges (h is
// fraction-of-360, not degrees).
func rgbToHSL(r, g, b uint8) (h, s, l float64) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	l = (max + min) / 2
	if max == min {
		return 0, 0, l
	}
	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h /= 6
	return h, s, l
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// hslToRGB converts HSL in [0,1] ranges back to 0..255 RGB channels,
// clamping each input to [0,1] first.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	h = clamp01(h)
	s = clamp01(s)
	l = clamp01(l)
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	rf := hueToRGB(p, q, h+1.0/3)
	gf := hueToRGB(p, q, h)
	bf := hueToRGB(p, q, h-1.0/3)
	return uint8(math.Round(rf * 255)), uint8(math.Round(gf * 255)), uint8(math.Round(bf * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ApplyAlpha sets c's alpha channel to val (0..1, already divided by
// 100000), marking c as alpha-bearing. Per spec step 2, once a color gains
// an alpha byte, subsequent modulation steps must preserve it.
func ApplyAlpha(c Color, val float64) Color {
	a := uint8(math.Round(clamp01(val) * 255))
	r, g, b := rgbFromHex(c.Hex)
	return Color{Hex: hexFromRGB(r, g, b) + fmt.Sprintf("%02X", a), HasAlpha: true}
}

func withModulatedHSL(c Color, f func(h, s, l float64) (float64, float64, float64)) Color {
	r, g, b := rgbFromHex(c.Hex)
	h, s, l := rgbToHSL(r, g, b)
	h, s, l = f(h, s, l)
	nr, ng, nb := hslToRGB(h, s, l)
	out := hexFromRGB(nr, ng, nb)
	if c.HasAlpha {
		a, ok := alphaFromHex(c.Hex)
		if ok {
			out += fmt.Sprintf("%02X", a)
		}
	}
	return Color{Hex: out, HasAlpha: c.HasAlpha}
}

// ApplyHueMod multiplies the hue channel by val (mod 360 worth of
// rotation), per spec step 3.
func ApplyHueMod(c Color, val float64) Color {
	return withModulatedHSL(c, func(h, s, l float64) (float64, float64, float64) {
		deg := math.Mod(h*360*val, 360)
		if deg < 0 {
			deg += 360
		}
		return deg / 360, s, l
	})
}

// ApplyLumMod multiplies lightness by val.
func ApplyLumMod(c Color, val float64) Color {
	return withModulatedHSL(c, func(h, s, l float64) (float64, float64, float64) {
		return h, s, clamp01(l * val)
	})
}

// ApplyLumOff adds val to lightness.
func ApplyLumOff(c Color, val float64) Color {
	return withModulatedHSL(c, func(h, s, l float64) (float64, float64, float64) {
		return h, s, clamp01(l + val)
	})
}

// ApplySatMod multiplies saturation by val.
func ApplySatMod(c Color, val float64) Color {
	return withModulatedHSL(c, func(h, s, l float64) (float64, float64, float64) {
		return h, clamp01(s * val), l
	})
}

// ApplyShade blends toward black: L' = L*val (spec: "shade = L*s").
func ApplyShade(c Color, val float64) Color {
	return withModulatedHSL(c, func(h, s, l float64) (float64, float64, float64) {
		return h, s, clamp01(l * val)
	})
}

// ApplyTint blends toward white: L' = L + (1-L)*val.
func ApplyTint(c Color, val float64) Color {
	return withModulatedHSL(c, func(h, s, l float64) (float64, float64, float64) {
		return h, s, clamp01(l + (1-l)*val)
	})
}

// SchemeContext is the theme/color-map environment a schemeClr reference
// resolves against (spec §4.2's resolveScheme).
type SchemeContext struct {
	// Scheme maps theme slot name (e.g. "accent1", "dk1") to its base hex.
	Scheme map[string]string
	// ClrMap remaps a semantic name (e.g. "bg1") to the theme slot that
	// actually backs it in the current scope (slide/layout/master clrMap).
	ClrMap map[string]string
	// PhClr is the inherited placeholder color substituted whenever a
	// schemeClr's val is literally "phClr".
	PhClr string
}

// ResolveScheme resolves a scheme color name to a hex string (without '#'),
// following ClrMap once and substituting PhClr when applicable, per
// spec.md §4.2.
func ResolveScheme(name string, ctx SchemeContext) string {
	if name == "phClr" {
		return ctx.PhClr
	}
	slot := name
	if ctx.ClrMap != nil {
		if mapped, ok := ctx.ClrMap[name]; ok {
			slot = mapped
		}
	}
	if slot == "phClr" {
		return ctx.PhClr
	}
	if ctx.Scheme != nil {
		if hex, ok := ctx.Scheme[slot]; ok {
			return hex
		}
	}
	return ""
}

// DecodeColor decodes a color-spec node (one of srgbClr/schemeClr/
// scrgbClr/prstClr/hslClr/sysClr) and applies its modifier children
// (alpha, hueMod, lumMod, lumOff, satMod, shade, tint) in the fixed order
// from spec.md §4.2. ok is false when node is nil or no recognized color
// kind is present (reference-dangling / unknown-enum per spec §7 — callers
// should treat this as "no color" rather than fail the slide).
func DecodeColor(node *xmlutil.Node, ctx SchemeContext) (Color, bool) {
	if node == nil {
		return Color{}, false
	}

	var base Color
	var found bool

	if n := xmlutil.FirstChild(node, "srgbClr"); n != nil {
		base = Color{Hex: strings.ToUpper(strings.TrimPrefix(xmlutil.Attr(n, "val"), "#"))}
		found = true
		node = n
	} else if n := xmlutil.FirstChild(node, "schemeClr"); n != nil {
		hex := ResolveScheme(xmlutil.Attr(n, "val"), ctx)
		base = Color{Hex: strings.ToUpper(strings.TrimPrefix(hex, "#"))}
		found = hex != ""
		node = n
	} else if n := xmlutil.FirstChild(node, "scrgbClr"); n != nil {
		r := pctToByte(xmlutil.Attr(n, "r"))
		g := pctToByte(xmlutil.Attr(n, "g"))
		b := pctToByte(xmlutil.Attr(n, "b"))
		base = Color{Hex: hexFromRGB(r, g, b)}
		found = true
		node = n
	} else if n := xmlutil.FirstChild(node, "prstClr"); n != nil {
		hex, ok := PresetColor(xmlutil.Attr(n, "val"))
		base = Color{Hex: hex}
		found = ok
		node = n
	} else if n := xmlutil.FirstChild(node, "hslClr"); n != nil {
		hueVal, _ := strconv.ParseFloat(xmlutil.Attr(n, "hue"), 64)
		sat, _ := xmlutil.PercentVal(xmlutil.Attr(n, "sat"))
		lum, _ := xmlutil.PercentVal(xmlutil.Attr(n, "lum"))
		r, g, b := hslToRGB(hueVal/36000000.0, sat, lum)
		base = Color{Hex: hexFromRGB(r, g, b)}
		found = true
		node = n
	} else if n := xmlutil.FirstChild(node, "sysClr"); n != nil {
		hex := xmlutil.Attr(n, "lastClr")
		base = Color{Hex: strings.ToUpper(hex)}
		found = hex != ""
		node = n
	}

	if !found {
		return Color{}, false
	}

	if v, ok := xmlutil.PercentVal(xmlutil.Attr(xmlutil.FirstChild(node, "alpha"), "val")); ok {
		base = ApplyAlpha(base, v)
	}
	if v, ok := xmlutil.PercentVal(xmlutil.Attr(xmlutil.FirstChild(node, "hueMod"), "val")); ok {
		base = ApplyHueMod(base, v)
	}
	if v, ok := xmlutil.PercentVal(xmlutil.Attr(xmlutil.FirstChild(node, "lumMod"), "val")); ok {
		base = ApplyLumMod(base, v)
	}
	if v, ok := xmlutil.PercentVal(xmlutil.Attr(xmlutil.FirstChild(node, "lumOff"), "val")); ok {
		base = ApplyLumOff(base, v)
	}
	if v, ok := xmlutil.PercentVal(xmlutil.Attr(xmlutil.FirstChild(node, "satMod"), "val")); ok {
		base = ApplySatMod(base, v)
	}
	if v, ok := xmlutil.PercentVal(xmlutil.Attr(xmlutil.FirstChild(node, "shade"), "val")); ok {
		base = ApplyShade(base, v)
	}
	if v, ok := xmlutil.PercentVal(xmlutil.Attr(xmlutil.FirstChild(node, "tint"), "val")); ok {
		base = ApplyTint(base, v)
	}

	return base, true
}

func pctToByte(s string) uint8 {
	if s == "" {
		return 0
	}
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	// scrgbClr percentages are in thousandths of a percent (0..100000).
	if v > 100 {
		v /= 1000
	}
	return uint8(math.Round(clamp01(v/100) * 255))
}
