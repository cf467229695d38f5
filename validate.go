package pptxtojson

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/VitaminC1989/pptxtojson-go/internal/model"
)

// Validate checks a resolved Output against spec.md §8's testable
// invariants — colors well-formed, gradient stops sorted, geometry
// non-negative — and returns every violation found, or nil if none.
func Validate(out *model.Output) error {
	var errs []string

	if out.Size.Width <= 0 || out.Size.Height <= 0 {
		errs = append(errs, "slide size must be positive")
	}
	if len(out.Slides) == 0 {
		errs = append(errs, "presentation must have at least one slide")
	}

	for i, slide := range out.Slides {
		prefix := fmt.Sprintf("slide %d", i+1)
		if err := validateFill(slide.Fill); err != "" {
			errs = append(errs, prefix+": "+err)
		}
		for j, el := range slide.Elements {
			errs = append(errs, validateElement(el, fmt.Sprintf("%s element %d", prefix, j+1))...)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateFill(fill model.Fill) string {
	switch v := fill.Value.(type) {
	case string:
		if v != "" && v != "none" && !isValidColor(v) {
			return "fill color is malformed: " + v
		}
	case model.Gradient:
		return validateGradient(v)
	}
	return ""
}

func validateGradient(g model.Gradient) string {
	prev := -1
	for _, stop := range g.Colors {
		if !isValidColor(stop.Color) {
			return "gradient stop color is malformed: " + stop.Color
		}
		n, err := strconv.Atoi(strings.TrimSuffix(stop.Pos, "%"))
		if err != nil {
			return "gradient stop position is malformed: " + stop.Pos
		}
		if n < prev {
			return "gradient stops are not sorted ascending"
		}
		prev = n
	}
	return ""
}

func validateElement(el model.Element, prefix string) []string {
	var errs []string
	if el.Width < 0 || el.Height < 0 {
		errs = append(errs, prefix+": negative dimension")
	}
	if el.FillColor != "" && el.FillColor != "none" && !isValidColor(el.FillColor) {
		errs = append(errs, prefix+": fill color is malformed: "+el.FillColor)
	}
	switch el.Type {
	case model.TypeTable:
		if data, ok := el.Data.([][]model.TableCell); ok && len(data) == 0 {
			errs = append(errs, prefix+": table has no rows")
		}
	case model.TypeGroup, model.TypeDiagram:
		for k, child := range el.Elements {
			errs = append(errs, validateElement(child, fmt.Sprintf("%s child %d", prefix, k+1))...)
		}
	}
	return errs
}

// isValidColor implements spec §8's color invariant:
// /^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$/.
func isValidColor(s string) bool {
	if len(s) != 7 && len(s) != 9 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		if !isHexDigit(byte(c)) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
